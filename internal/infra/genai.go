package infra

import (
	"context"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"

	"mediawatch.dev/backend/internal/app/appconfig"
)

// GenAI returns the language model client used to draft letters, or nil when
// no API key is configured.
func GenAI(conf *appconfig.Config) (*genai.Client, error) {
	if conf.GenAIAPIKey == "" {
		log.Warn().
			Str("evt.name", "infra.genai.disabled").
			Msg("letter generation is disabled due to missing GenAI API key")
		return nil, nil
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  conf.GenAIAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		log.Error().Err(err).Msg("infra: genai: failed to create client")
		return nil, err
	}

	return client, nil
}
