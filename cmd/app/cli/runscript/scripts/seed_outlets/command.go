package script_seed_outlets

import (
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	"mediawatch.dev/backend/internal/service"
)

type CommandDeps struct {
	fx.In

	OutletService *service.Outlet
}

func Command(depsFn func() CommandDeps) *cli.Command {
	return &cli.Command{
		Name:        "seed-outlets",
		Description: "upsert media outlets from a YAML file, or the built-in UK outlet list when no file is given",
		Flags: []cli.Flag{
			&cli.PathFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "YAML file with a top-level `outlets` list",
			},
		},
		Action: func(ctx *cli.Context) error {
			return run(ctx, depsFn(), ctx.Path("file"))
		},
	}
}
