package v1

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"mediawatch.dev/backend/internal/core/leaderboard"
	"mediawatch.dev/backend/internal/model/types"
	"mediawatch.dev/backend/internal/pkg/cachectrl"
	"mediawatch.dev/backend/internal/server/svr"
	"mediawatch.dev/backend/internal/service"
	"mediawatch.dev/backend/internal/util/rekuest"
)

type Stats struct {
	fx.In

	LeaderboardService *service.Leaderboard
	AccountService     *service.Account
}

func RegisterStats(api *svr.Api, c Stats) {
	stats := api.Group("/stats", OptionalAccount(c.AccountService))
	stats.Get("/league-table", c.GetLeagueTable)
	stats.Get("/overview", c.GetOverview)
}

func (c *Stats) GetLeagueTable(ctx *fiber.Ctx) error {
	query := types.LeaderboardQuery{
		GroupBy: string(leaderboard.GroupByPresenter),
		Limit:   leaderboard.DefaultLimit,
	}
	if err := rekuest.ValidQuery(ctx, &query); err != nil {
		return err
	}

	result, err := c.LeaderboardService.ComputeLeaderboard(ctx.UserContext(), query.GroupBy, query.Limit)
	if err != nil {
		return err
	}

	cachectrl.OptOut(ctx)
	return ctx.JSON(result)
}

func (c *Stats) GetOverview(ctx *fiber.Ctx) error {
	overview, err := c.LeaderboardService.ComputePlatformOverview(ctx.UserContext())
	if err != nil {
		return err
	}

	cachectrl.OptOut(ctx)
	return ctx.JSON(overview)
}
