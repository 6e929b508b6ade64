package meta

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	"mediawatch.dev/backend/internal/model/cache"
	"mediawatch.dev/backend/internal/model/types"
	"mediawatch.dev/backend/internal/pkg/apierr"
	"mediawatch.dev/backend/internal/pkg/archiver"
	"mediawatch.dev/backend/internal/server/svr"
	"mediawatch.dev/backend/internal/service"
	"mediawatch.dev/backend/internal/util/rekuest"
)

type AdminController struct {
	fx.In

	SuggestionService *service.Suggestion
	ArchiveService    *service.Archive
}

func RegisterAdmin(admin *svr.Admin, c AdminController) {
	admin.Post("/purge", c.PurgeCache)
	admin.Get("/suggestions", c.GetSuggestions)
	admin.Post("/archive", c.ArchiveComplaints)
}

func (c *AdminController) PurgeCache(ctx *fiber.Ctx) error {
	var request types.PurgeCacheRequest
	if err := rekuest.ValidBody(ctx, &request); err != nil {
		return err
	}

	purged := make([]string, 0, len(request.Pairs))
	for _, pair := range request.Pairs {
		if err := cache.Delete(pair.Name, pair.Key); err != nil {
			if errors.Is(err, cache.ErrUnknownCache) {
				return apierr.ErrInvalidReq.Msg("unknown cache %q: known caches are %v", pair.Name, cache.Names())
			}
			return err
		}
		purged = append(purged, pair.Name)
	}

	return ctx.JSON(fiber.Map{
		"purged": purged,
	})
}

func (c *AdminController) GetSuggestions(ctx *fiber.Ctx) error {
	suggestions, err := c.SuggestionService.GetSuggestions(ctx.UserContext())
	if err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{
		"suggestions": suggestions,
	})
}

func (c *AdminController) ArchiveComplaints(ctx *fiber.Ctx) error {
	var request types.ArchiveComplaintsRequest
	if err := rekuest.ValidBody(ctx, &request); err != nil {
		return err
	}
	date, err := time.Parse(time.DateOnly, request.Date)
	if err != nil {
		return apierr.ErrInvalidReq.Msg("invalid date: %s", err)
	}

	key, count, err := c.ArchiveService.ArchiveByDate(ctx.UserContext(), date)
	switch {
	case errors.Is(err, archiver.ErrFileAlreadyExists):
		return apierr.New(fiber.StatusConflict, "ARCHIVE_EXISTS", "an archive for this date already exists").WithCause(err)
	case errors.Is(err, service.ErrArchiveDisabled):
		return apierr.ErrForbidden.Msg("archiving is disabled on this server")
	case err != nil:
		return err
	}

	return ctx.JSON(fiber.Map{
		"key":   key,
		"count": count,
	})
}
