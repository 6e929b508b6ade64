package service

import (
	"context"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"google.golang.org/genai"

	"mediawatch.dev/backend/internal/app/appconfig"
	"mediawatch.dev/backend/internal/core/letter"
	"mediawatch.dev/backend/internal/model"
	"mediawatch.dev/backend/internal/pkg/apierr"
	"mediawatch.dev/backend/internal/pkg/observability"
)

const letterGenerationAttempts = 3

var ErrEmptyGeneration = errors.New("language model returned no text")

// Letter drafts complaint letters with the configured language model.
type Letter struct {
	client *genai.Client
	model  string

	maxOutputTokens int32
	timeout         time.Duration
}

func NewLetter(client *genai.Client, conf *appconfig.Config) *Letter {
	return &Letter{
		client:          client,
		model:           conf.GenAIModel,
		maxOutputTokens: conf.LetterMaxOutputTokens,
		timeout:         conf.LetterGenerationTimeout,
	}
}

// Enabled reports whether a language model is configured.
func (s *Letter) Enabled() bool {
	return s.client != nil
}

// Generate drafts a letter about incident, which must carry its Outlet.
func (s *Letter) Generate(ctx context.Context, incident *model.Incident, writer letter.Writer, variation int) (string, error) {
	if !s.Enabled() {
		return "", apierr.ErrLetterGenerationDisabled
	}

	prompt, err := letter.BuildPrompt(incident, writer, variation)
	if err != nil {
		return "", errors.Wrap(err, "failed to build prompt")
	}

	start := time.Now()
	text, err := retry.DoWithData(
		func() (string, error) {
			return s.generateOnce(ctx, prompt)
		},
		retry.Context(ctx),
		retry.Attempts(letterGenerationAttempts),
		retry.Delay(time.Second),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Warn().
				Str("evt.name", "letter.generate.retry").
				Err(err).
				Uint("attempt", n+1).
				Msg("letter generation failed, retrying")
		}),
	)

	result := "ok"
	if err != nil {
		result = "error"
	}
	observability.LetterGenerateDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())

	if err != nil {
		return "", errors.Wrap(err, "failed to generate letter")
	}
	return text, nil
}

func (s *Letter) generateOnce(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), &genai.GenerateContentConfig{
		MaxOutputTokens: s.maxOutputTokens,
		Temperature:     genai.Ptr[float32](1),
	})
	if err != nil {
		return "", err
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyGeneration
	}
	return text, nil
}
