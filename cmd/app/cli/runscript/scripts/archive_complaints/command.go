package script_archive_complaints

import (
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	"mediawatch.dev/backend/internal/service"
)

type CommandDeps struct {
	fx.In

	ArchiveService *service.Archive
}

func Command(depsFn func() CommandDeps) *cli.Command {
	return &cli.Command{
		Name:        "archive-complaints",
		Description: "archive one UTC day of sent complaints to S3",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "date",
				Usage:    "day to archive, YYYY-MM-DD",
				Required: true,
			},
		},
		Action: func(ctx *cli.Context) error {
			return run(ctx, depsFn(), ctx.String("date"))
		},
	}
}
