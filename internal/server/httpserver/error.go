package httpserver

import (
	"strconv"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/contrib/fibersentry"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"mediawatch.dev/backend/internal/constant"
	"mediawatch.dev/backend/internal/model"
	"mediawatch.dev/backend/internal/pkg/apierr"
	"mediawatch.dev/backend/internal/pkg/flog"
)

func renderError(ctx *fiber.Ctx, e *apierr.Error) error {
	body := fiber.Map{
		"code":    e.ErrorCode,
		"message": e.Message,
	}

	// Add extra details if needed
	if e.Extras != nil && len(*e.Extras) > 0 {
		for k, v := range *e.Extras {
			body[k] = v
		}
	}

	return ctx.Status(e.StatusCode).JSON(body)
}

func ErrorHandler(ctx *fiber.Ctx, err error) error {
	var e *apierr.Error
	if errors.As(err, &e) && e.StatusCode < fiber.StatusInternalServerError {
		flog.WarnFrom(ctx, "http.error.client").
			Err(err).
			Int("status", e.StatusCode).
			Msg(e.Message)
		return renderError(ctx, e)
	}

	// Default 500 statuscode
	re := apierr.ErrInternalError
	if e != nil {
		re = e
	} else if fe, ok := err.(*fiber.Error); ok {
		// fiber's own errors (404 on unknown routes, 405, body too large) are client errors
		re = apierr.New(fe.Code, "UNKNOWN_ERROR", fe.Message)
		if fe.Code < fiber.StatusInternalServerError {
			return renderError(ctx, re)
		}
	}

	flog.ErrorFrom(ctx, "http.error.server").
		Stack().
		Err(err).
		Int("status", re.StatusCode).
		Msg("Internal Server Error")

	if hub := fibersentry.GetHubFromContext(ctx); hub != nil {
		hub.Scope().SetTag("status", strconv.Itoa(re.StatusCode))
		if account, ok := ctx.Locals(constant.LocalsAccountKey).(*model.Account); ok {
			hub.Scope().SetUser(sentry.User{
				ID: account.AccountID,
			})
		}
		hub.CaptureException(err)
	}

	return renderError(ctx, re)
}
