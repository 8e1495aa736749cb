package purge

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/purgehub/purgehub/internal/cache"
	"github.com/purgehub/purgehub/internal/logging"
)

// ErrIOFailure 包装删除阶段的任何文件系统错误。
var ErrIOFailure = errors.New("cache purge failed")

// Executor 将 Request 落到文件系统上。cacheRoot 在构造后不再变化。
type Executor struct {
	cacheRoot string
	deleter   cache.Deleter
	logger    *logrus.Logger
}

// NewExecutor 构造执行器；cacheRoot 为空时页面缓存清理被禁用。
func NewExecutor(cacheRoot string, deleter cache.Deleter, logger *logrus.Logger) *Executor {
	if deleter == nil {
		deleter = cache.NewFSDeleter(nil)
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Executor{
		cacheRoot: cacheRoot,
		deleter:   deleter,
		logger:    logger,
	}
}

// Enabled 表示是否配置了页面缓存目录。
func (e *Executor) Enabled() bool {
	return e != nil && e.cacheRoot != ""
}

// CacheRoot 返回配置的缓存根目录，可能为空。
func (e *Executor) CacheRoot() string {
	if e == nil {
		return ""
	}
	return e.cacheRoot
}

// Purge 执行一次清理，不做重试；是否重试由调用方决定。
func (e *Executor) Purge(ctx context.Context, req Request) (Result, error) {
	started := time.Now()
	result := Result{Request: req}

	if !e.Enabled() {
		result.Skipped = true
		e.log(result, started, nil)
		return result, nil
	}

	var err error
	switch req.Scope {
	case ScopeFull:
		result.Target = e.cacheRoot
		err = e.wrapIO(e.deleter.Delete(ctx, e.cacheRoot, true))
	case ScopeSingle:
		var target string
		target, err = cache.DeriveArtifactPath(e.cacheRoot, req.URL)
		if err == nil {
			result.Target = target
			err = e.wrapIO(e.deleter.Delete(ctx, target, false))
		}
	default:
		err = fmt.Errorf("unknown purge scope %q", req.Scope)
	}

	e.log(result, started, err)
	return result, err
}

func (e *Executor) wrapIO(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrIOFailure, err)
}

func (e *Executor) log(result Result, started time.Time, err error) {
	fields := logging.PurgeFields(string(result.Request.Scope), result.Request.URL, result.Target)
	fields["skipped"] = result.Skipped
	fields["elapsed_ms"] = time.Since(started).Milliseconds()
	entry := e.logger.WithFields(fields)
	switch {
	case err != nil:
		entry.WithError(err).Error("purge failed")
	case result.Skipped:
		entry.Debug("page cache disabled, purge skipped")
	default:
		entry.Info("purge completed")
	}
}
