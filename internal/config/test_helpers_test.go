package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fixture 返回 testdata 下已存在的配置样例。
func fixture(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join("testdata", name)
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("缺少测试配置 %s: %v", path, err)
	}
	return path
}

// writeConfig 把内联 TOML 写到临时目录，去掉测试里为对齐留下的首尾空行。
func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "purgehub.toml")
	if err := os.WriteFile(path, []byte(strings.TrimSpace(body)+"\n"), 0o600); err != nil {
		t.Fatalf("写入临时配置失败: %v", err)
	}
	return path
}

// requireFieldError 断言 err 是指向 field 的 FieldError 并返回它。
func requireFieldError(t *testing.T, err error, field string) FieldError {
	t.Helper()
	var fieldErr FieldError
	if !errors.As(err, &fieldErr) || fieldErr.Field != field {
		t.Fatalf("期望 %s 的 FieldError，得到 %v", field, err)
	}
	return fieldErr
}
