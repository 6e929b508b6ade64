package infra

import (
	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"mediawatch.dev/backend/internal/app/appconfig"
	"mediawatch.dev/backend/internal/pkg/bininfo"
)

// SentryInit initializes sentry with side-effect
func SentryInit(conf *appconfig.Config) error {
	if conf.SentryDSN == "" {
		log.Warn().
			Str("evt.name", "infra.sentry.disabled").
			Msg("Sentry is disabled due to missing DSN.")
		return nil
	}

	log.Info().
		Str("evt.name", "infra.sentry.init").
		Msg("Initializing Sentry...")
	return sentry.Init(sentry.ClientOptions{
		Dsn:              conf.SentryDSN,
		Release:          "mediawatch-backend@" + bininfo.Version,
		Environment:      lo.Ternary(conf.DevMode, "dev", "prod"),
		Debug:            conf.DevMode,
		AttachStacktrace: true,
		TracesSampleRate: 0.01,
	})
}
