package v1

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"mediawatch.dev/backend/internal/model/types"
	"mediawatch.dev/backend/internal/server/svr"
	"mediawatch.dev/backend/internal/service"
	"mediawatch.dev/backend/internal/util/rekuest"
)

type Incident struct {
	fx.In

	IncidentService *service.Incident
	AccountService  *service.Account
}

func RegisterIncident(api *svr.Api, c Incident) {
	incidents := api.Group("/incidents")
	incidents.Get("/", c.ListIncidents)
	incidents.Get("/:incidentId", c.GetIncident)

	auth := RequireAccount(c.AccountService)
	incidents.Post("/", auth, c.CreateIncident)
	incidents.Put("/:incidentId", auth, c.UpdateIncident)
	incidents.Delete("/:incidentId", auth, c.DeleteIncident)
}

func (c *Incident) ListIncidents(ctx *fiber.Ctx) error {
	var query types.IncidentListQuery
	if err := rekuest.ValidQuery(ctx, &query); err != nil {
		return err
	}

	incidents, pagination, err := c.IncidentService.ListIncidents(ctx.UserContext(), &query)
	if err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{
		"incidents":  incidents,
		"pagination": pagination,
	})
}

func (c *Incident) GetIncident(ctx *fiber.Ctx) error {
	incident, err := c.IncidentService.GetIncidentDetail(ctx.UserContext(), ctx.Params("incidentId"))
	if err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{
		"incident": incident,
	})
}

func (c *Incident) CreateIncident(ctx *fiber.Ctx) error {
	var request types.CreateIncidentRequest
	if err := rekuest.ValidBody(ctx, &request); err != nil {
		return err
	}

	incident, err := c.IncidentService.CreateIncident(ctx.UserContext(), accountOf(ctx), &request)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Incident reported successfully",
		"incident": incident,
	})
}

func (c *Incident) UpdateIncident(ctx *fiber.Ctx) error {
	var request types.UpdateIncidentRequest
	if err := rekuest.ValidBody(ctx, &request); err != nil {
		return err
	}

	incident, err := c.IncidentService.UpdateIncident(ctx.UserContext(), accountOf(ctx), ctx.Params("incidentId"), &request)
	if err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{
		"message":  "Incident updated successfully",
		"incident": incident,
	})
}

func (c *Incident) DeleteIncident(ctx *fiber.Ctx) error {
	if err := c.IncidentService.DeleteIncident(ctx.UserContext(), accountOf(ctx), ctx.Params("incidentId")); err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{
		"message": "Incident deleted successfully",
	})
}
