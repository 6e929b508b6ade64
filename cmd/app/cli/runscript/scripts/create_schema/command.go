package script_create_schema

import (
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	"mediawatch.dev/backend/internal/repo"
)

type CommandDeps struct {
	fx.In

	AdminRepo *repo.Admin
}

func Command(depsFn func() CommandDeps) *cli.Command {
	return &cli.Command{
		Name:        "create-schema",
		Description: "create missing tables and indexes",
		Action: func(ctx *cli.Context) error {
			deps := depsFn()
			n, err := deps.AdminRepo.CreateSchema(ctx.Context)
			if err != nil {
				return err
			}
			log.Info().Int("statements", n).Msg("schema is up to date")
			return nil
		},
	}
}
