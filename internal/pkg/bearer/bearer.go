// Package bearer issues and extracts the opaque tokens carried in the
// Authorization header.
package bearer

import (
	"strings"

	"github.com/dchest/uniuri"
	"github.com/gofiber/fiber/v2"

	"mediawatch.dev/backend/internal/constant"
)

// Extract returns the token of an `Authorization: Bearer <token>` header, or
// an empty string when the header is missing or uses another scheme.
func Extract(ctx *fiber.Ctx) string {
	return Parse(ctx.Get(fiber.HeaderAuthorization))
}

func Parse(authorization string) string {
	realm, token, found := strings.Cut(strings.TrimSpace(authorization), " ")
	if !found || !strings.EqualFold(realm, constant.AuthorizationRealm) {
		return ""
	}
	return strings.TrimSpace(token)
}

// New generates a new access token.
func New() string {
	return uniuri.NewLen(constant.AccessTokenLength)
}
