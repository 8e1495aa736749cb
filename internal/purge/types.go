package purge

import "strings"

// Scope 表示一次清理的范围：整棵缓存树或单个 URL。
type Scope string

const (
	ScopeFull   Scope = "full"
	ScopeSingle Scope = "single"
)

// Status 是内容的生命周期状态，除 draft/publish 外的值一律视为 other。
type Status string

const (
	StatusDraft   Status = "draft"
	StatusPublish Status = "publish"
)

// Request 描述一次待执行的清理。Scope 为 ScopeSingle 时 URL 必须非空。
type Request struct {
	Scope Scope
	URL   string
}

// Full 构造整站清理请求。
func Full() Request {
	return Request{Scope: ScopeFull}
}

// Single 构造单 URL 清理请求。
func Single(url string) Request {
	return Request{Scope: ScopeSingle, URL: url}
}

// Transition 是宿主事件适配后的状态变更元组。
type Transition struct {
	OldStatus   Status
	NewStatus   Status
	ContentType string
	URL         string
}

// Result 汇总一次执行的结果，供 HTTP/CLI 层输出。
type Result struct {
	Request Request
	// Target 是实际删除的路径：单 URL 时为派生文件，整站时为缓存根目录。
	Target string
	// Skipped 为 true 表示未配置缓存目录，本次调用没有触碰文件系统。
	Skipped bool
}

func normalizeStatus(s Status) Status {
	return Status(strings.ToLower(strings.TrimSpace(string(s))))
}

func normalizeContentType(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}
