package routes

import (
	"github.com/gofiber/fiber/v3"

	"github.com/purgehub/purgehub/internal/events"
	"github.com/purgehub/purgehub/internal/server"
	"github.com/purgehub/purgehub/internal/version"
)

type statusPayload struct {
	Version      string             `json:"version"`
	PageCache    pageCachePayload   `json:"page_cache"`
	ObjectCache  objectCachePayload `json:"object_cache"`
	EventSources []string           `json:"event_sources"`
}

type pageCachePayload struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path,omitempty"`
	Layout  string `json:"layout"`
}

type objectCachePayload struct {
	Enabled bool `json:"enabled"`
}

// RegisterStatusRoutes 暴露 /-/status 诊断接口，不需要 token，也不返回任何密钥。
func RegisterStatusRoutes(app *fiber.App, svc *server.PurgeService) {
	if app == nil || svc == nil {
		return
	}

	app.Get("/-/status", func(c fiber.Ctx) error {
		return c.JSON(encodeStatus(svc))
	})
}

func encodeStatus(svc *server.PurgeService) statusPayload {
	return statusPayload{
		Version: version.Full(),
		PageCache: pageCachePayload{
			Enabled: svc.PageCacheEnabled(),
			Path:    svc.PageCachePath(),
			Layout:  "levels=1:2",
		},
		ObjectCache: objectCachePayload{
			Enabled: svc.ObjectCacheEnabled(),
		},
		EventSources: events.Keys(),
	}
}
