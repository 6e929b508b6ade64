package cachectrl

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

// OptIn marks the response as publicly cacheable for offset, starting at t.
func OptIn(ctx *fiber.Ctx, t time.Time, offset time.Duration) {
	ctx.Set(fiber.HeaderCacheControl, "public, max-age="+strconv.Itoa(int(offset.Seconds())))
	ctx.Set(fiber.HeaderExpires, t.Add(offset).Format(time.RFC1123))

	ctx.Response().Header.SetLastModified(t)
}

// OptOut marks the response as never cacheable. Used for aggregates that must
// be recomputed on every request.
func OptOut(ctx *fiber.Ctx) {
	ctx.Set(fiber.HeaderCacheControl, "no-cache, no-store, must-revalidate")
	ctx.Set(fiber.HeaderPragma, "no-cache")
	ctx.Set(fiber.HeaderExpires, "0")
}
