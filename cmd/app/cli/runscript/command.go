package runscript

import (
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	cliapp "mediawatch.dev/backend/cmd/app/cli"
	script_archive_complaints "mediawatch.dev/backend/cmd/app/cli/runscript/scripts/archive_complaints"
	script_create_schema "mediawatch.dev/backend/cmd/app/cli/runscript/scripts/create_schema"
	script_print_league_table "mediawatch.dev/backend/cmd/app/cli/runscript/scripts/print_league_table"
	script_seed_outlets "mediawatch.dev/backend/cmd/app/cli/runscript/scripts/seed_outlets"
)

func depsFn[T any]() func() T {
	return func() T {
		var deps T
		cliapp.Start(fx.Populate(&deps))
		return deps
	}
}

func Command() *cli.Command {
	return &cli.Command{
		Name:        "run-script",
		Description: "run maintenance go scripts",
		Subcommands: []*cli.Command{
			script_create_schema.Command(depsFn[script_create_schema.CommandDeps]()),
			script_seed_outlets.Command(depsFn[script_seed_outlets.CommandDeps]()),
			script_print_league_table.Command(depsFn[script_print_league_table.CommandDeps]()),
			script_archive_complaints.Command(depsFn[script_archive_complaints.CommandDeps]()),
		},
	}
}
