package config

import (
	"fmt"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// EnvPrefix 是环境变量覆盖前缀，例如 PURGEHUB_PURGETOKEN。
const EnvPrefix = "PURGEHUB"

// Load 读取并解析 TOML 配置文件，同时注入默认值与校验逻辑。
func Load(path string) (*Config, error) {
	if path == "" {
		path = "config.toml"
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置失败: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(durationDecodeHook())); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	applyGlobalDefaults(&cfg.Global)
	applyObjectCacheDefaults(&cfg.ObjectCache)

	// 校验使用原始 CachePath："." 需要在转绝对路径之前拒绝，
	// 落到根目录的相对路径由 validateCachePath 自行解析后拒绝。
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Global.CachePath != "" {
		absCache, err := filepath.Abs(cfg.Global.CachePath)
		if err != nil {
			return nil, fmt.Errorf("无法解析缓存目录: %w", err)
		}
		cfg.Global.CachePath = absCache
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ListenPort", 8080)
	v.SetDefault("LogLevel", "info")
	v.SetDefault("LogFilePath", "")
	v.SetDefault("LogMaxSize", 100)
	v.SetDefault("LogMaxBackups", 10)
	v.SetDefault("LogCompress", true)
	v.SetDefault("CachePath", "")
	v.SetDefault("PurgeToken", "")
	v.SetDefault("PurgeTimeout", "30s")
	v.SetDefault("ObjectCache.Addr", "")
	v.SetDefault("ObjectCache.Password", "")
	v.SetDefault("ObjectCache.DB", 0)
	v.SetDefault("ObjectCache.Prefix", "")
	v.SetDefault("ObjectCache.DialTimeout", "5s")
}

func applyGlobalDefaults(g *GlobalConfig) {
	if g.ListenPort == 0 {
		g.ListenPort = 8080
	}
	if g.PurgeTimeout.DurationValue() == 0 {
		g.PurgeTimeout = Duration(30 * time.Second)
	}
	g.CachePath = strings.TrimSpace(g.CachePath)
	g.PurgeToken = strings.TrimSpace(g.PurgeToken)
}

func applyObjectCacheDefaults(o *ObjectCacheConfig) {
	o.Addr = strings.TrimSpace(o.Addr)
	if o.DialTimeout.DurationValue() == 0 {
		o.DialTimeout = Duration(5 * time.Second)
	}
}

func durationDecodeHook() mapstructure.DecodeHookFunc {
	targetType := reflect.TypeOf(Duration(0))

	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != targetType {
			return data, nil
		}

		switch v := data.(type) {
		case string:
			if v == "" {
				return Duration(0), nil
			}
			if parsed, err := time.ParseDuration(v); err == nil {
				return Duration(parsed), nil
			}
			if seconds, err := strconv.ParseFloat(v, 64); err == nil {
				return Duration(time.Duration(seconds * float64(time.Second))), nil
			}
			return nil, fmt.Errorf("无法解析 Duration 字段: %s", v)
		case int:
			return Duration(time.Duration(v) * time.Second), nil
		case int64:
			return Duration(time.Duration(v) * time.Second), nil
		case float64:
			return Duration(time.Duration(v * float64(time.Second))), nil
		case time.Duration:
			return Duration(v), nil
		case Duration:
			return v, nil
		default:
			return nil, fmt.Errorf("不支持的 Duration 类型: %T", v)
		}
	}
}
