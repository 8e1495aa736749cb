// Package events translates content-lifecycle payloads from a host CMS into
// purge.Transition values. Each payload shape is handled by an Adapter
// registered under a source key ("generic", "wordpress"); the HTTP layer
// looks the adapter up by the :source path segment.
package events

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/purgehub/purgehub/internal/purge"
)

// Adapter 将宿主事件的原始 body 解码为状态变更。
type Adapter interface {
	Decode(body []byte) (purge.Transition, error)
}

// AdapterFunc adapts a function to the Adapter interface.
type AdapterFunc func(body []byte) (purge.Transition, error)

// Decode makes AdapterFunc satisfy Adapter.
func (f AdapterFunc) Decode(body []byte) (purge.Transition, error) {
	return f(body)
}

var registry sync.Map

// ErrDuplicateAdapter indicates a source key already has an adapter registered.
var ErrDuplicateAdapter = errors.New("adapter already registered")

// ErrInvalidPayload 表示事件缺少必要字段或不是合法 JSON。
var ErrInvalidPayload = errors.New("invalid event payload")

// Register stores the adapter for the given source key.
func Register(source string, adapter Adapter) error {
	key := normalizeKey(source)
	if key == "" {
		return errors.New("source key required")
	}
	if adapter == nil {
		return errors.New("adapter required")
	}
	if _, loaded := registry.LoadOrStore(key, adapter); loaded {
		return ErrDuplicateAdapter
	}
	return nil
}

// MustRegister panics on registration failure.
func MustRegister(source string, adapter Adapter) {
	if err := Register(source, adapter); err != nil {
		panic(err)
	}
}

// Fetch retrieves the adapter associated with a source key.
func Fetch(source string) (Adapter, bool) {
	key := normalizeKey(source)
	if key == "" {
		return nil, false
	}
	if value, ok := registry.Load(key); ok {
		if adapter, ok := value.(Adapter); ok {
			return adapter, true
		}
	}
	return nil, false
}

// Keys 返回已注册的来源，按字母排序，供 /-/status 输出。
func Keys() []string {
	var keys []string
	registry.Range(func(key, _ any) bool {
		if k, ok := key.(string); ok {
			keys = append(keys, k)
		}
		return true
	})
	sort.Strings(keys)
	return keys
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
