package svr

import (
	"github.com/go-redsync/redsync/v4"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"mediawatch.dev/backend/internal/app/appconfig"
	"mediawatch.dev/backend/internal/constant"
	"mediawatch.dev/backend/internal/model"
	"mediawatch.dev/backend/internal/pkg/fiberstore"
	"mediawatch.dev/backend/internal/pkg/middlewares"
)

// Api is the public API mounted at /api.
type Api struct {
	fiber.Router
}

// Meta holds service introspection endpoints at /api/_.
type Meta struct {
	fiber.Router
}

// Admin holds operator endpoints at /api/_/admin, guarded by the admin key.
type Admin struct {
	fiber.Router
}

// Guards are the shared per-route middlewares controllers attach themselves.
type Guards struct {
	LetterRateLimit fiber.Handler
	Idempotency     fiber.Handler
}

func CreateEndpointGroups(app *fiber.App, conf *appconfig.Config, client *redis.Client) (*Api, *Meta, *Admin) {
	meta := app.Group("/api/_")
	admin := meta.Group("/admin", middlewares.AdminKey(conf.AdminKey))

	api := app.Group("/api", middlewares.RateLimit(middlewares.RateLimitConfig{
		Name:    "api",
		Max:     conf.RateLimitMax,
		Window:  conf.RateLimitWindow,
		Storage: fiberstore.NewRedis(client, constant.RateLimitRedisPrefix),
		Message: "Too many requests from this IP, please try again later.",
	}))

	return &Api{Router: api}, &Meta{Router: meta}, &Admin{Router: admin}
}

func CreateGuards(conf *appconfig.Config, client *redis.Client, redSync *redsync.Redsync) *Guards {
	return &Guards{
		LetterRateLimit: middlewares.RateLimit(middlewares.RateLimitConfig{
			Name:    "letter",
			Max:     conf.LetterRateLimitMax,
			Window:  conf.LetterRateLimitWindow,
			Storage: fiberstore.NewRedis(client, constant.RateLimitRedisPrefix),
			Message: "Letter generation limit reached. Please try again later.",
		}),
		Idempotency: middlewares.Idempotency(middlewares.IdempotencyConfig{
			Storage: fiberstore.NewRedis(client, constant.IdempotencyRedisPrefix),
			Lock:    middlewares.RedsyncKeyLock(redSync),
			Scope:   accountScope,
		}),
	}
}

// accountScope keys idempotent requests by the account RequireAccount attached.
func accountScope(c *fiber.Ctx) string {
	if account, ok := c.Locals(constant.LocalsAccountKey).(*model.Account); ok {
		return account.AccountID
	}
	return ""
}
