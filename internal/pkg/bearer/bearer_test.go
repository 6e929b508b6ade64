package bearer

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"mediawatch.dev/backend/internal/constant"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name   string
		header string
		want   string
	}{
		{"empty", "", ""},
		{"bearer", "Bearer abc123", "abc123"},
		{"case-insensitive realm", "bearer abc123", "abc123"},
		{"surrounding spaces", "  Bearer   abc123  ", "abc123"},
		{"other scheme", "Basic dXNlcjpwYXNz", ""},
		{"realm only", "Bearer", ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Parse(c.header))
		})
	}
}

func TestExtract(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.SendString(Extract(ctx))
	})

	req := httptest.NewRequest(fiber.MethodGet, "/", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer token-value")
	resp, err := app.Test(req)
	assert.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	assert.Equal(t, "token-value", string(body))
}

func TestNew(t *testing.T) {
	a, b := New(), New()
	assert.Len(t, a, constant.AccessTokenLength)
	assert.NotEqual(t, a, b)
}
