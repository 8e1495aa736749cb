package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Duration 提供更灵活的反序列化能力，同时兼容纯秒整数与 Go Duration 字符串。
type Duration time.Duration

// UnmarshalText 使 Viper 可以识别诸如 "30s"、"5m" 或纯数字秒值等配置写法。
func (d *Duration) UnmarshalText(text []byte) error {
	raw := strings.TrimSpace(string(text))
	if raw == "" {
		*d = Duration(0)
		return nil
	}

	if parsed, err := time.ParseDuration(raw); err == nil {
		*d = Duration(parsed)
		return nil
	}

	if intVal, err := strconv.ParseInt(raw, 10, 64); err == nil {
		*d = Duration(time.Duration(intVal) * time.Second)
		return nil
	}

	return fmt.Errorf("invalid duration value: %s", raw)
}

// DurationValue 返回真实的 time.Duration，便于调用方计算。
func (d Duration) DurationValue() time.Duration {
	return time.Duration(d)
}

// GlobalConfig 描述进程级参数，启动后不再修改。
type GlobalConfig struct {
	ListenPort    int    `mapstructure:"ListenPort"`
	LogLevel      string `mapstructure:"LogLevel"`
	LogFilePath   string `mapstructure:"LogFilePath"`
	LogMaxSize    int    `mapstructure:"LogMaxSize"`
	LogMaxBackups int    `mapstructure:"LogMaxBackups"`
	LogCompress   bool   `mapstructure:"LogCompress"`
	// CachePath 指向 Nginx fastcgi_cache_path；留空表示禁用页面缓存清理。
	CachePath    string   `mapstructure:"CachePath"`
	PurgeToken   string   `mapstructure:"PurgeToken"`
	PurgeTimeout Duration `mapstructure:"PurgeTimeout"`
}

// ObjectCacheConfig 描述可选的 Redis 对象缓存，Addr 为空时禁用。
type ObjectCacheConfig struct {
	Addr        string   `mapstructure:"Addr"`
	Password    string   `mapstructure:"Password"`
	DB          int      `mapstructure:"DB"`
	Prefix      string   `mapstructure:"Prefix"`
	DialTimeout Duration `mapstructure:"DialTimeout"`
}

// Config 是 TOML 文件映射的整体结构。
type Config struct {
	Global      GlobalConfig      `mapstructure:",squash"`
	ObjectCache ObjectCacheConfig `mapstructure:"ObjectCache"`
}

// PageCacheEnabled 表示是否配置了页面缓存目录。
func (c *Config) PageCacheEnabled() bool {
	return c != nil && c.Global.CachePath != ""
}

// Enabled 表示是否启用 Redis 对象缓存清理。
func (o ObjectCacheConfig) Enabled() bool {
	return strings.TrimSpace(o.Addr) != ""
}

// Features 返回启用能力的摘要，供启动日志输出，例如 page_cache:on。
func (c *Config) Features() []string {
	return []string{
		fmt.Sprintf("page_cache:%s", onOff(c.PageCacheEnabled())),
		fmt.Sprintf("object_cache:%s", onOff(c.ObjectCache.Enabled())),
	}
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
