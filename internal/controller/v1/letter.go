package v1

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"mediawatch.dev/backend/internal/model/types"
	"mediawatch.dev/backend/internal/server/svr"
	"mediawatch.dev/backend/internal/service"
	"mediawatch.dev/backend/internal/util/rekuest"
)

type Letter struct {
	fx.In

	ComplaintService *service.Complaint
	AccountService   *service.Account
	Guards           *svr.Guards
}

func RegisterLetter(api *svr.Api, c Letter) {
	letters := api.Group("/generate-letter", c.Guards.LetterRateLimit, RequireAccount(c.AccountService))
	letters.Post("/", c.Guards.Idempotency, c.GenerateLetter)
	letters.Post("/regenerate/:complaintId", c.RegenerateLetter)
}

func (c *Letter) GenerateLetter(ctx *fiber.Ctx) error {
	var request types.GenerateLetterRequest
	if err := rekuest.ValidBody(ctx, &request); err != nil {
		return err
	}

	complaint, err := c.ComplaintService.GenerateLetter(ctx.UserContext(), accountOf(ctx), &request)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":   "Letter generated successfully",
		"complaint": complaint,
		"outlet":    complaint.Incident.Outlet,
	})
}

func (c *Letter) RegenerateLetter(ctx *fiber.Ctx) error {
	complaint, err := c.ComplaintService.RegenerateLetter(ctx.UserContext(), accountOf(ctx), ctx.Params("complaintId"))
	if err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{
		"message":   "Letter regenerated successfully",
		"complaint": complaint,
	})
}
