package middlewares

import (
	"github.com/gofiber/fiber/v2"
)

func Chained(r fiber.Router, middlewares ...fiber.Handler) {
	for _, middleware := range middlewares {
		r.Use(middleware)
	}
}
