package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"mediawatch.dev/backend/internal/constant"
	"mediawatch.dev/backend/internal/pkg/flog"
)

// RequestID repopulates the request id injected by the logger chain into
// ctx.Locals, where the error handler and sentry enrichment read it.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if id, ok := flog.IDFromFiberCtx(c); ok {
			c.Locals(constant.ContextKeyRequestID, id.String())
		}
		return c.Next()
	}
}
