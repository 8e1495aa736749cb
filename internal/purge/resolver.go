package purge

// purgeableTypes 列出会触发页面缓存清理的内容类型。
var purgeableTypes = map[string]struct{}{
	"post": {},
	"page": {},
}

// Resolve 根据状态变更决定清理范围，第二个返回值为 false 表示无需清理。
//
//   - 内容类型不是 post/page：不清理
//   - 新状态不是 publish：不清理
//   - publish -> publish：只清理该内容自身的 URL
//   - 其它 -> publish：首次发布会影响列表、归档和搜索页，清理整站
func Resolve(t Transition) (Request, bool) {
	if _, ok := purgeableTypes[normalizeContentType(t.ContentType)]; !ok {
		return Request{}, false
	}
	if normalizeStatus(t.NewStatus) != StatusPublish {
		return Request{}, false
	}
	if normalizeStatus(t.OldStatus) == StatusPublish {
		return Single(t.URL), true
	}
	return Full(), true
}

// Manual 对应后台手动触发的清理，与内容状态无关，始终整站清理。
func Manual() Request {
	return Full()
}
