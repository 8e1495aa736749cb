package config

import (
	"errors"
	"net"
	"path/filepath"
	"strings"
)

// Validate 针对语义级别做进一步校验，防止非法配置启动服务。
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("配置为空")
	}

	g := c.Global
	if g.ListenPort <= 0 || g.ListenPort > 65535 {
		return globalFieldError("ListenPort", "必须在 1-65535")
	}
	if g.PurgeTimeout.DurationValue() <= 0 {
		return globalFieldError("PurgeTimeout", "必须大于 0")
	}
	if err := validateCachePath(g.CachePath); err != nil {
		return err
	}

	o := c.ObjectCache
	if !o.Enabled() {
		return nil
	}
	if _, _, err := net.SplitHostPort(o.Addr); err != nil {
		return objectCacheFieldError("Addr", "必须是 host:port 形式")
	}
	if o.DB < 0 {
		return objectCacheFieldError("DB", "不能为负数")
	}
	if o.DialTimeout.DurationValue() <= 0 {
		return objectCacheFieldError("DialTimeout", "必须大于 0")
	}
	if strings.ContainsAny(o.Prefix, "*?[]") {
		return objectCacheFieldError("Prefix", "不允许包含通配符")
	}
	return nil
}

// validateCachePath 拒绝会导致整站清理误删系统目录的路径。相对路径按当前
// 工作目录解析后再判断，"../../.." 这类最终落到根目录的写法同样被拒绝。
func validateCachePath(path string) error {
	if path == "" {
		return nil
	}
	if filepath.Clean(path) == "." {
		return globalFieldError("CachePath", "不能指向当前目录")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return FieldError{Field: sectionGlobal + ".CachePath", Value: path, Reason: "无法解析为绝对路径"}
	}
	if filepath.Dir(abs) == abs {
		return FieldError{Field: sectionGlobal + ".CachePath", Value: abs, Reason: "不能指向根目录"}
	}
	return nil
}
