package server

import (
	"go.uber.org/fx"

	"mediawatch.dev/backend/internal/server/httpserver"
	"mediawatch.dev/backend/internal/server/svr"
)

func Module() fx.Option {
	return fx.Module("server",
		fx.Provide(httpserver.Create),
		fx.Provide(svr.CreateEndpointGroups),
		fx.Provide(svr.CreateGuards))
}
