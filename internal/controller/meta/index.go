package meta

import "github.com/gofiber/fiber/v2"

func RegisterIndex(app *fiber.App) {
	app.Get("/api", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"@link":   "https://mediawatch.dev",
			"message": "MediaWatch API: report media misinformation and hold broadcasters to account",
		})
	})
}
