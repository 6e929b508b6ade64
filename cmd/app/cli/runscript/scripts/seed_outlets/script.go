package script_seed_outlets

import (
	"bytes"
	_ "embed"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"mediawatch.dev/backend/internal/model/types"
	"mediawatch.dev/backend/internal/util/rekuest"
)

//go:embed outlets.yaml
var builtinOutlets []byte

func run(ctx *cli.Context, deps CommandDeps, path string) error {
	data := builtinOutlets
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return errors.Wrap(err, "failed to read seed file")
		}
	}

	file, err := parse(data)
	if err != nil {
		return err
	}

	n, err := deps.OutletService.SeedOutlets(ctx.Context, file.Outlets)
	if err != nil {
		return errors.Wrap(err, "failed to seed outlets")
	}

	log.Info().
		Str("evt.name", "script.seed_outlets.finished").
		Int("outlets", len(file.Outlets)).
		Int64("affected", n).
		Msg("outlets seeded")
	return nil
}

func parse(data []byte) (*types.SeedOutletFile, error) {
	var file types.SeedOutletFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return nil, errors.Wrap(err, "failed to parse seed file")
	}
	if err := rekuest.ValidStruct(&file); err != nil {
		return nil, err
	}
	return &file, nil
}
