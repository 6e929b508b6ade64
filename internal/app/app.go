package app

import (
	"time"

	"go.uber.org/fx"

	"mediawatch.dev/backend/internal/app/appconfig"
	"mediawatch.dev/backend/internal/app/appcontext"
	"mediawatch.dev/backend/internal/controller"
	"mediawatch.dev/backend/internal/infra"
	"mediawatch.dev/backend/internal/model/cache"
	"mediawatch.dev/backend/internal/pkg/logger"
	"mediawatch.dev/backend/internal/repo"
	"mediawatch.dev/backend/internal/server"
	"mediawatch.dev/backend/internal/service"
	"mediawatch.dev/backend/internal/workers/dispatchwkr"
)

func Options(ctx appcontext.Ctx, additionalOpts ...fx.Option) []fx.Option {
	conf, err := appconfig.Parse(ctx)
	if err != nil {
		panic(err)
	}

	// logger and configuration are the only two things that are not in the fx graph
	// because some other packages need them to be initialized before fx starts
	logger.Configure(conf)

	baseOpts := []fx.Option{
		// fx meta
		fx.WithLogger(logger.Fx),

		// Misc
		fx.Supply(conf),

		// Infrastructures
		infra.Module(),

		// Servers
		server.Module(),

		// Repositories
		repo.Module(),

		// Services
		service.Module(),

		// Global Singleton Inits: Keep those before controllers to ensure they are initialized
		// before controllers are registered as controllers are also fx#Invoke functions which
		// are called in the order of their registration.
		fx.Invoke(infra.SentryInit),
		fx.Invoke(infra.Tracing),
		fx.Invoke(cache.Initialize),

		// Controllers
		controller.Module(),

		// fx Extra Options
		fx.StartTimeout(5 * time.Second),
		// StopTimeout is not typically needed, since we're using fiber's Shutdown(),
		// in which fiber has its own IdleTimeout for controlling the shutdown timeout.
		// It acts as a countermeasure in case the fiber app is not properly shutting down.
		fx.StopTimeout(5 * time.Minute),
	}

	// scripts share the graph but must not compete with servers for dispatch tasks
	if ctx.Env == appcontext.EnvServer {
		baseOpts = append(baseOpts, fx.Invoke(dispatchwkr.Start))
	}

	return append(baseOpts, additionalOpts...)
}

func New(ctx appcontext.Ctx, additionalOpts ...fx.Option) *fx.App {
	return fx.New(Options(ctx, additionalOpts...)...)
}
