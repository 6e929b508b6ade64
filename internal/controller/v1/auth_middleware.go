package v1

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"mediawatch.dev/backend/internal/constant"
	"mediawatch.dev/backend/internal/model"
	"mediawatch.dev/backend/internal/pkg/bearer"
	"mediawatch.dev/backend/internal/pkg/flog"
	"mediawatch.dev/backend/internal/service"
)

// RequireAccount rejects requests without a valid access token and stores
// the resolved account in the request locals.
func RequireAccount(accountService *service.Account) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		account, err := accountService.GetAccountFromRequest(ctx)
		if err != nil {
			return err
		}
		attachAccount(ctx, account)
		return ctx.Next()
	}
}

// OptionalAccount resolves the account when a token is present. A bad token
// is ignored and the request continues anonymously.
func OptionalAccount(accountService *service.Account) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if bearer.Extract(ctx) == "" {
			return ctx.Next()
		}
		if account, err := accountService.GetAccountFromRequest(ctx); err == nil {
			attachAccount(ctx, account)
		}
		return ctx.Next()
	}
}

func attachAccount(ctx *fiber.Ctx, account *model.Account) {
	ctx.Locals(constant.LocalsAccountKey, account)
	flog.FromFiberCtx(ctx).UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("account_id", account.AccountID)
	})
}

// accountOf returns the account attached by RequireAccount or OptionalAccount.
func accountOf(ctx *fiber.Ctx) *model.Account {
	account, _ := ctx.Locals(constant.LocalsAccountKey).(*model.Account)
	return account
}
