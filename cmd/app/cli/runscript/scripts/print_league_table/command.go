package script_print_league_table

import (
	"os"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	"mediawatch.dev/backend/internal/core/leaderboard"
	"mediawatch.dev/backend/internal/service"
)

type CommandDeps struct {
	fx.In

	LeaderboardService *service.Leaderboard
}

func Command(depsFn func() CommandDeps) *cli.Command {
	return &cli.Command{
		Name:        "print-league-table",
		Description: "compute the presenter or outlet league table and print it as JSON",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "group-by",
				Value: string(leaderboard.GroupByPresenter),
				Usage: "presenter or outlet",
			},
			&cli.IntFlag{
				Name:  "limit",
				Value: leaderboard.DefaultLimit,
			},
			&cli.BoolFlag{
				Name:  "overview",
				Usage: "print the platform overview instead",
			},
		},
		Action: func(ctx *cli.Context) error {
			deps := depsFn()

			var result any
			var err error
			if ctx.Bool("overview") {
				result, err = deps.LeaderboardService.ComputePlatformOverview(ctx.Context)
			} else {
				result, err = deps.LeaderboardService.ComputeLeaderboard(ctx.Context, ctx.String("group-by"), ctx.Int("limit"))
			}
			if err != nil {
				return err
			}

			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(result)
		},
	}
}
