package v1

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"mediawatch.dev/backend/internal/model/types"
	"mediawatch.dev/backend/internal/server/svr"
	"mediawatch.dev/backend/internal/service"
	"mediawatch.dev/backend/internal/util/rekuest"
)

type Suggestion struct {
	fx.In

	SuggestionService *service.Suggestion
}

func RegisterSuggestion(api *svr.Api, c Suggestion) {
	api.Post("/suggestions", c.CreateSuggestion)
}

func (c *Suggestion) CreateSuggestion(ctx *fiber.Ctx) error {
	var request types.CreateSuggestionRequest
	if err := rekuest.ValidBody(ctx, &request); err != nil {
		return err
	}

	suggestion, err := c.SuggestionService.CreateSuggestion(ctx.UserContext(), &request)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Thank you for your suggestion",
		"suggestion": suggestion,
	})
}
