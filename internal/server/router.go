package server

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// HeaderPurgeToken 携带调用方的鉴权 token。
const HeaderPurgeToken = "X-Purge-Token"

// AppOptions controls how the Fiber application should behave on a specific port.
type AppOptions struct {
	Logger     *logrus.Logger
	ListenPort int
}

const contextKeyRequestID = "_purgehub_request_id"

// NewApp builds a Fiber application with request-ID middleware, panic
// recovery. Callers register routes (and the token guard via RequireToken)
// afterwards, then RegisterFallback.
func NewApp(opts AppOptions) (*fiber.App, error) {
	if opts.Logger == nil {
		return nil, errors.New("logger is required")
	}
	if opts.ListenPort <= 0 {
		return nil, fmt.Errorf("invalid listen port: %d", opts.ListenPort)
	}

	app := fiber.New(fiber.Config{
		CaseSensitive: true,
		AppName:       "purgehub",
	})

	app.Use(recover.New())
	app.Use(requestContextMiddleware())

	return app, nil
}

// RegisterFallback 为未匹配的路径返回 JSON 404，需在所有路由注册之后调用。
func RegisterFallback(app *fiber.App, logger *logrus.Logger) {
	app.Use(func(c fiber.Ctx) error {
		logger.WithFields(logrus.Fields{
			"action":     "route_lookup",
			"method":     c.Method(),
			"path":       c.Path(),
			"request_id": RequestID(c),
		}).Debug("route not found")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "route_not_found",
		})
	})
}

// requestContextMiddleware 为每个请求生成请求 ID 并回写响应头。
func requestContextMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		reqID := strings.TrimSpace(c.Get("X-Request-ID"))
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Locals(contextKeyRequestID, reqID)
		c.Set("X-Request-ID", reqID)
		return c.Next()
	}
}

// RequireToken 校验 X-Purge-Token。未配置 token 时拒绝所有请求，避免清理接口被匿名调用。
func RequireToken(token string, logger *logrus.Logger) fiber.Handler {
	expected := []byte(token)
	return func(c fiber.Ctx) error {
		if len(expected) == 0 {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "token_not_configured",
			})
		}
		provided := []byte(c.Get(HeaderPurgeToken))
		if subtle.ConstantTimeCompare(provided, expected) != 1 {
			logger.WithFields(logrus.Fields{
				"action":     "auth",
				"path":       c.Path(),
				"request_id": RequestID(c),
			}).Warn("purge token rejected")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid_token",
			})
		}
		return c.Next()
	}
}

// RequestID returns the request identifier stored by the router middleware.
func RequestID(c fiber.Ctx) string {
	if value := c.Locals(contextKeyRequestID); value != nil {
		if reqID, ok := value.(string); ok {
			return reqID
		}
	}
	return ""
}
