package server

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/purgehub/purgehub/internal/events"
	"github.com/purgehub/purgehub/internal/logging"
	"github.com/purgehub/purgehub/internal/objectcache"
	"github.com/purgehub/purgehub/internal/purge"
)

// ManualScope 是后台手动清理的范围选择器。
type ManualScope string

const (
	ManualAll    ManualScope = "all"
	ManualPage   ManualScope = "page"
	ManualObject ManualScope = "object"
)

var (
	// ErrUnknownScope 表示手动清理的 scope 不是 all/page/object。
	ErrUnknownScope = errors.New("unknown purge scope")
	// ErrUnknownSource 表示事件来源没有注册适配器。
	ErrUnknownSource = errors.New("unknown event source")
)

// ParseManualScope 解析 scope 参数，空值视为 all。
func ParseManualScope(raw string) (ManualScope, error) {
	switch ManualScope(strings.ToLower(strings.TrimSpace(raw))) {
	case "", ManualAll:
		return ManualAll, nil
	case ManualPage:
		return ManualPage, nil
	case ManualObject:
		return ManualObject, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownScope, raw)
	}
}

// Outcome 是返回给宿主 UI 的通知内容：一次触发只有一个成功标志。
type Outcome struct {
	Success bool   `json:"success"`
	Scope   string `json:"scope"`
	Target  string `json:"target,omitempty"`
	Skipped bool   `json:"skipped,omitempty"`
}

// PurgeService 组合页面缓存执行器与可选的对象缓存，按触发类型执行清理。
type PurgeService struct {
	executor *purge.Executor
	objects  objectcache.Flusher
	timeout  time.Duration
	logger   *logrus.Logger
}

// NewPurgeService 构造服务；objects 为 nil 表示未启用对象缓存。
func NewPurgeService(executor *purge.Executor, objects objectcache.Flusher, timeout time.Duration, logger *logrus.Logger) *PurgeService {
	if executor == nil {
		executor = purge.NewExecutor("", nil, logger)
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &PurgeService{
		executor: executor,
		objects:  objects,
		timeout:  timeout,
		logger:   logger,
	}
}

// PageCacheEnabled 表示是否配置了页面缓存目录。
func (s *PurgeService) PageCacheEnabled() bool {
	return s.executor.Enabled()
}

// PageCachePath 返回页面缓存根目录。
func (s *PurgeService) PageCachePath() string {
	return s.executor.CacheRoot()
}

// ObjectCacheEnabled 表示是否启用了对象缓存清理。
func (s *PurgeService) ObjectCacheEnabled() bool {
	return s.objects != nil
}

// Manual 执行后台手动清理。页面缓存部分总是整站清理。
func (s *PurgeService) Manual(ctx context.Context, scope ManualScope) Outcome {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	outcome := Outcome{Success: true, Scope: string(scope)}
	if scope == ManualAll || scope == ManualPage {
		result, err := s.executor.Purge(ctx, purge.Manual())
		outcome.Target = result.Target
		outcome.Skipped = result.Skipped
		if err != nil {
			outcome.Success = false
		}
	}
	if scope == ManualAll || scope == ManualObject {
		if err := s.flushObjects(ctx); err != nil {
			outcome.Success = false
		}
	}
	return outcome
}

// PurgeURL 清理单个 URL 的缓存文件。
func (s *PurgeService) PurgeURL(ctx context.Context, rawURL string) (Outcome, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.execute(ctx, purge.Single(rawURL))
}

// HandleEvent 通过 source 对应的适配器解码事件，决定清理范围后执行。
// 返回的 error 只用于区分调用方输入错误（未知来源、非法 payload、非法 URL）。
func (s *PurgeService) HandleEvent(ctx context.Context, source string, body []byte) (Outcome, error) {
	adapter, ok := events.Fetch(source)
	if !ok {
		return Outcome{}, fmt.Errorf("%w: %s", ErrUnknownSource, source)
	}
	transition, err := adapter.Decode(body)
	if err != nil {
		return Outcome{}, err
	}

	req, ok := purge.Resolve(transition)
	fields := logging.EventFields(source, string(transition.OldStatus), string(transition.NewStatus), transition.ContentType)
	fields["url"] = transition.URL
	fields["purge"] = ok
	s.logger.WithFields(fields).Info("content event received")
	if !ok {
		return Outcome{Success: true, Scope: "none"}, nil
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.execute(ctx, req)
}

func (s *PurgeService) execute(ctx context.Context, req purge.Request) (Outcome, error) {
	result, err := s.executor.Purge(ctx, req)
	outcome := Outcome{
		Success: err == nil,
		Scope:   string(req.Scope),
		Target:  result.Target,
		Skipped: result.Skipped,
	}
	if err != nil && !errors.Is(err, purge.ErrIOFailure) {
		return outcome, err
	}
	return outcome, nil
}

func (s *PurgeService) flushObjects(ctx context.Context) error {
	fields := logrus.Fields{"action": "object_cache_flush"}
	if s.objects == nil {
		s.logger.WithFields(fields).Debug("object cache disabled, flush skipped")
		return nil
	}
	if err := s.objects.Flush(ctx); err != nil {
		s.logger.WithFields(fields).WithError(err).Error("object cache flush failed")
		return err
	}
	s.logger.WithFields(fields).Info("object cache flushed")
	return nil
}

func (s *PurgeService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}
