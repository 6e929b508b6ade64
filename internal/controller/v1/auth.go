package v1

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"mediawatch.dev/backend/internal/model"
	"mediawatch.dev/backend/internal/model/types"
	"mediawatch.dev/backend/internal/server/svr"
	"mediawatch.dev/backend/internal/service"
	"mediawatch.dev/backend/internal/util/rekuest"
)

type Auth struct {
	fx.In

	AccountService *service.Account
}

type AuthResponse struct {
	Message string             `json:"message"`
	Token   string             `json:"token"`
	User    *model.AccountView `json:"user"`
}

func RegisterAuth(api *svr.Api, c Auth) {
	auth := api.Group("/auth")
	auth.Post("/register", c.Register)
	auth.Post("/login", c.Login)
	auth.Get("/me", RequireAccount(c.AccountService), c.Me)
	auth.Put("/preferences", RequireAccount(c.AccountService), c.UpdatePreferences)
}

func (c *Auth) Register(ctx *fiber.Ctx) error {
	var request types.RegisterRequest
	if err := rekuest.ValidBody(ctx, &request); err != nil {
		return err
	}

	account, err := c.AccountService.Register(ctx.UserContext(), &request)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(AuthResponse{
		Message: "User created successfully",
		Token:   account.AccessToken,
		User:    c.AccountService.View(account),
	})
}

func (c *Auth) Login(ctx *fiber.Ctx) error {
	var request types.LoginRequest
	if err := rekuest.ValidBody(ctx, &request); err != nil {
		return err
	}

	account, err := c.AccountService.Login(ctx.UserContext(), &request)
	if err != nil {
		return err
	}

	return ctx.JSON(AuthResponse{
		Message: "Login successful",
		Token:   account.AccessToken,
		User:    c.AccountService.View(account),
	})
}

func (c *Auth) Me(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{
		"user": c.AccountService.View(accountOf(ctx)),
	})
}

func (c *Auth) UpdatePreferences(ctx *fiber.Ctx) error {
	var request types.UpdatePreferencesRequest
	if err := rekuest.ValidBody(ctx, &request); err != nil {
		return err
	}

	account, err := c.AccountService.UpdatePreferences(ctx.UserContext(), accountOf(ctx), &request)
	if err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{
		"user": c.AccountService.View(account),
	})
}
