package infra

import (
	"github.com/rs/zerolog/log"
	"github.com/wneessen/go-mail"

	"mediawatch.dev/backend/internal/app/appconfig"
)

// Mailer returns the SMTP client complaints are delivered with, or nil when
// no relay is configured.
func Mailer(conf *appconfig.Config) (*mail.Client, error) {
	if conf.SMTPHost == "" {
		log.Warn().
			Str("evt.name", "infra.mailer.disabled").
			Msg("complaint delivery is disabled due to missing SMTP host")
		return nil, nil
	}

	opts := []mail.Option{
		mail.WithPort(conf.SMTPPort),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if conf.SMTPUsername != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(conf.SMTPUsername),
			mail.WithPassword(conf.SMTPPassword),
		)
	}

	client, err := mail.NewClient(conf.SMTPHost, opts...)
	if err != nil {
		log.Error().Err(err).Msg("infra: mailer: failed to create SMTP client")
		return nil, err
	}

	return client, nil
}
