package middlewares

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"

	"mediawatch.dev/backend/internal/pkg/apierr"
	"mediawatch.dev/backend/internal/pkg/bearer"
)

// AdminKey guards the admin endpoint group with a static bearer key. An empty
// key disables the group entirely.
func AdminKey(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if key == "" {
			return apierr.ErrForbidden.Msg("admin API is disabled on this server")
		}
		token := bearer.Extract(c)
		if subtle.ConstantTimeCompare([]byte(token), []byte(key)) != 1 {
			return apierr.ErrUnauthorized.Msg("invalid admin key")
		}
		return c.Next()
	}
}
