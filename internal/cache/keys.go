package cache

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// keyMethod 固定为 GET：清理只针对 GET 缓存的变体。
const keyMethod = "GET"

// ErrInvalidURL 表示 URL 缺少 scheme 或 host，无法推导缓存键。
var ErrInvalidURL = errors.New("invalid cache url")

// NormalizeURL 解析 URL 并补齐路径末尾的斜杠，同时丢弃 query 与 fragment，
// 与上游缓存键只使用 host+path 的约定保持一致。
func NormalizeURL(rawURL string) (*url.URL, error) {
	raw := strings.TrimSpace(rawURL)
	if raw == "" {
		return nil, fmt.Errorf("%w: empty url", ErrInvalidURL)
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if parsed.Scheme == "" || parsed.Hostname() == "" {
		return nil, fmt.Errorf("%w: %s", ErrInvalidURL, raw)
	}

	normalized := &url.URL{
		Scheme: strings.ToLower(parsed.Scheme),
		Host:   strings.ToLower(strings.TrimSuffix(parsed.Hostname(), ".")),
	}

	escaped := parsed.EscapedPath()
	if escaped == "" {
		escaped = "/"
	}
	if !strings.HasSuffix(escaped, "/") {
		escaped += "/"
	}
	if err := setEscapedPath(normalized, escaped); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	return normalized, nil
}

// ArtifactKey 返回 md5(scheme + "GET" + host + path) 的 32 位小写十六进制串。
func ArtifactKey(rawURL string) (string, error) {
	u, err := NormalizeURL(rawURL)
	if err != nil {
		return "", err
	}
	return keyFor(u), nil
}

// DeriveArtifactPath 计算 URL 对应的缓存文件绝对路径：
//
//	<cacheRoot>/<key[31:]>/<key[29:31]>/<key>
func DeriveArtifactPath(cacheRoot, rawURL string) (string, error) {
	if cacheRoot == "" {
		return "", errors.New("cache root required")
	}
	key, err := ArtifactKey(rawURL)
	if err != nil {
		return "", err
	}
	level1, level2 := shardLevels(key)
	return filepath.Join(cacheRoot, level1, level2, key), nil
}

func keyFor(u *url.URL) string {
	sum := md5.Sum([]byte(u.Scheme + keyMethod + u.Host + u.EscapedPath()))
	return hex.EncodeToString(sum[:])
}

// shardLevels 对应 Nginx levels=1:2：先取最后 1 个字符，再取其前面的 2 个字符。
func shardLevels(key string) (string, string) {
	n := len(key)
	return key[n-1:], key[n-3 : n-1]
}

func setEscapedPath(u *url.URL, escaped string) error {
	unescaped, err := url.PathUnescape(escaped)
	if err != nil {
		return err
	}
	u.Path = unescaped
	u.RawPath = escaped
	return nil
}
