package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"mediawatch.dev/backend/internal/pkg/apierr"
	"mediawatch.dev/backend/internal/pkg/flog"
)

type RateLimitConfig struct {
	// Name tells limiters sharing a storage apart, and is logged when the limit is reached.
	Name string

	Max    int
	Window time.Duration

	Storage fiber.Storage

	Message string
}

// RateLimit limits requests per client IP with a sliding window.
func RateLimit(conf RateLimitConfig) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:               conf.Max,
		Expiration:        conf.Window,
		Storage:           conf.Storage,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator: func(c *fiber.Ctx) string {
			return conf.Name + ":" + c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			flog.WarnFrom(c, "http.ratelimit.reached").
				Str("limiter", conf.Name).
				Msg("rate limit reached")
			return apierr.ErrTooManyRequests.Msg("%s", conf.Message)
		},
	})
}
