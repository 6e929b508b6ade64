package app

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"mediawatch.dev/backend/cmd/app/cli/runscript"
	"mediawatch.dev/backend/cmd/app/server"
	"mediawatch.dev/backend/internal/pkg/bininfo"
)

func Run() {
	app := &cli.App{
		Name:        "mwbackend",
		Description: "MediaWatch backend. Collects media misinformation incidents, drafts complaint letters and ranks outlets and presenters. Built with Go, fiber, bun and go.uber.org/fx. Uses NATS as MQ and Redis as state synchronization.",
		Version:     bininfo.Version,
		Commands: []*cli.Command{
			server.Command(),
			runscript.Command(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("failed to run app")
	}
}
