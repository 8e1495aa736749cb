// Package objectcache flushes the Redis-backed object cache that sits next to
// the page cache. It is optional: without an address the server only purges
// page cache files.
package objectcache

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/purgehub/purgehub/internal/config"
)

// scanBatch 控制 SCAN/DEL 每批处理的 key 数量。
const scanBatch = 500

// ErrUnavailable 表示对象缓存未启用。
var ErrUnavailable = errors.New("object cache unavailable")

// Flusher 清空对象缓存。
type Flusher interface {
	Flush(ctx context.Context) error
}

// NewClient 根据配置创建 Redis 客户端；未配置 Addr 时返回 nil。
func NewClient(cfg config.ObjectCacheConfig) *redis.Client {
	if !cfg.Enabled() {
		return nil
	}
	timeout := cfg.DialTimeout.DurationValue()
	return redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
		MaxRetries:   -1,
	})
}

// RedisFlusher 在 prefix 为空时执行 FLUSHDB，否则只删除匹配 prefix* 的 key，
// 避免误删同库中其它应用的数据。
type RedisFlusher struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisFlusher 构造基于 go-redis 的 Flusher。
func NewRedisFlusher(client redis.UniversalClient, prefix string) *RedisFlusher {
	return &RedisFlusher{client: client, prefix: prefix}
}

func (f *RedisFlusher) Flush(ctx context.Context) error {
	if f == nil || f.client == nil {
		return ErrUnavailable
	}
	if f.prefix == "" {
		if err := f.client.FlushDB(ctx).Err(); err != nil {
			return fmt.Errorf("flushdb failed: %w", err)
		}
		return nil
	}
	return f.deletePrefix(ctx)
}

func (f *RedisFlusher) deletePrefix(ctx context.Context) error {
	var cursor uint64
	pattern := f.prefix + "*"
	for {
		keys, next, err := f.client.Scan(ctx, cursor, pattern, scanBatch).Result()
		if err != nil {
			return fmt.Errorf("scan %s failed: %w", pattern, err)
		}
		if len(keys) > 0 {
			if err := f.client.Unlink(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("unlink %d keys failed: %w", len(keys), err)
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}
