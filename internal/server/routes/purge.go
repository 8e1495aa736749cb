package routes

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"github.com/purgehub/purgehub/internal/cache"
	"github.com/purgehub/purgehub/internal/events"
	"github.com/purgehub/purgehub/internal/server"
)

// RegisterPurgeRoutes 挂载 /-/purge 与 /-/events 接口，全部需要 X-Purge-Token。
func RegisterPurgeRoutes(app *fiber.App, svc *server.PurgeService, token string, logger *logrus.Logger) {
	if app == nil || svc == nil {
		return
	}

	guard := server.RequireToken(token, logger)

	app.Post("/-/purge", guard, func(c fiber.Ctx) error {
		scope, err := server.ParseManualScope(requestValue(c, "scope"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_scope"})
		}
		outcome := svc.Manual(c.Context(), scope)
		return respond(c, outcome)
	})

	app.Post("/-/purge/url", guard, func(c fiber.Ctx) error {
		rawURL := requestValue(c, "url")
		if rawURL == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "url_required"})
		}
		outcome, err := svc.PurgeURL(c.Context(), rawURL)
		if err != nil {
			return renderInputError(c, err)
		}
		return respond(c, outcome)
	})

	app.Post("/-/events/:source", guard, func(c fiber.Ctx) error {
		source := strings.ToLower(strings.TrimSpace(c.Params("source")))
		outcome, err := svc.HandleEvent(c.Context(), source, c.Body())
		if err != nil {
			return renderInputError(c, err)
		}
		return respond(c, outcome)
	})
}

// respond 把 Outcome 原样返回；I/O 失败也用 200 + success=false 表达，宿主只关心布尔通知。
func respond(c fiber.Ctx, outcome server.Outcome) error {
	return c.JSON(fiber.Map{
		"success":    outcome.Success,
		"scope":      outcome.Scope,
		"target":     outcome.Target,
		"skipped":    outcome.Skipped,
		"request_id": server.RequestID(c),
	})
}

func renderInputError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, server.ErrUnknownSource):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "source_not_found"})
	case errors.Is(err, events.ErrInvalidPayload):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_payload", "detail": err.Error()})
	case errors.Is(err, cache.ErrInvalidURL):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_url", "detail": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "purge_error"})
	}
}

// requestValue 依次从 query、表单和 JSON body 中读取参数。
func requestValue(c fiber.Ctx, key string) string {
	if v := strings.TrimSpace(c.Query(key)); v != "" {
		return v
	}
	if v := strings.TrimSpace(string(c.Request().PostArgs().Peek(key))); v != "" {
		return v
	}
	body := c.Body()
	if len(body) > 0 && gjson.ValidBytes(body) {
		return strings.TrimSpace(gjson.GetBytes(body, key).String())
	}
	return ""
}
