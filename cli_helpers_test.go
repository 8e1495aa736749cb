package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// cliOutput 收集 run 写到 stdOut/stdErr 的内容。
type cliOutput struct {
	stdout bytes.Buffer
	stderr bytes.Buffer
}

// captureCLI 在测试期间把 stdOut/stdErr 指向内存，结束后恢复。
func captureCLI(t *testing.T) *cliOutput {
	t.Helper()
	out := &cliOutput{}
	prevOut, prevErr := stdOut, stdErr
	stdOut, stdErr = &out.stdout, &out.stderr
	t.Cleanup(func() {
		stdOut, stdErr = prevOut, prevErr
	})
	return out
}

// configFixture 指向 config 包的 testdata；go test 以包目录为工作目录。
func configFixture(name string) string {
	return filepath.Join("internal", "config", "testdata", name)
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(file, []byte(strings.TrimSpace(content)), 0o600); err != nil {
		t.Fatalf("写入配置失败: %v", err)
	}
	return file
}

// pageCacheConfig 写出只启用页面缓存、日志压到 error 级别的配置。
func pageCacheConfig(t *testing.T, cacheDir string) string {
	t.Helper()
	return writeConfigFile(t, fmt.Sprintf("LogLevel = \"error\"\nCachePath = %q\n", cacheDir))
}
