package v1

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"mediawatch.dev/backend/internal/model/types"
	"mediawatch.dev/backend/internal/server/svr"
	"mediawatch.dev/backend/internal/service"
	"mediawatch.dev/backend/internal/util/rekuest"
)

type Outlet struct {
	fx.In

	OutletService  *service.Outlet
	AccountService *service.Account
}

func RegisterOutlet(api *svr.Api, c Outlet) {
	outlets := api.Group("/outlets")
	outlets.Get("/", c.GetOutlets)
	outlets.Post("/", RequireAccount(c.AccountService), c.CreateOutlet)
	outlets.Get("/:outletId", c.GetOutlet)
	outlets.Get("/:outletId/contact", c.GetOutletContact)
}

func (c *Outlet) GetOutlets(ctx *fiber.Ctx) error {
	outlets, err := c.OutletService.GetOutlets(ctx.UserContext())
	if err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{
		"outlets": outlets,
	})
}

func (c *Outlet) GetOutlet(ctx *fiber.Ctx) error {
	outlet, err := c.OutletService.GetOutletWithRecentIncidents(ctx.UserContext(), ctx.Params("outletId"))
	if err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{
		"outlet": outlet,
	})
}

func (c *Outlet) GetOutletContact(ctx *fiber.Ctx) error {
	contact, err := c.OutletService.GetOutletContact(ctx.UserContext(), ctx.Params("outletId"))
	if err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{
		"contact": contact,
	})
}

func (c *Outlet) CreateOutlet(ctx *fiber.Ctx) error {
	var request types.CreateOutletRequest
	if err := rekuest.ValidBody(ctx, &request); err != nil {
		return err
	}

	outlet, err := c.OutletService.CreateOutlet(ctx.UserContext(), &request)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Outlet created successfully",
		"outlet":  outlet,
	})
}
