package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"mediawatch.dev/backend/internal/model"
	"mediawatch.dev/backend/internal/model/types"
	"mediawatch.dev/backend/internal/repo"
)

const SuggestionStatusPending = "pending"

type Suggestion struct {
	SuggestionRepo *repo.Suggestion
}

func NewSuggestion(suggestionRepo *repo.Suggestion) *Suggestion {
	return &Suggestion{
		SuggestionRepo: suggestionRepo,
	}
}

func (s *Suggestion) CreateSuggestion(ctx context.Context, req *types.CreateSuggestionRequest) (*model.OutletSuggestion, error) {
	suggestion := &model.OutletSuggestion{
		SuggestionID:   uuid.NewString(),
		OutletName:     strings.TrimSpace(req.OutletName),
		OutletType:     optionalString(req.OutletType),
		WebsiteURL:     optionalString(req.WebsiteURL),
		SuggestedBy:    optionalString(req.SuggestedBy),
		AdditionalInfo: optionalString(req.AdditionalInfo),
		Status:         SuggestionStatusPending,
	}
	if err := s.SuggestionRepo.CreateSuggestion(ctx, suggestion); err != nil {
		return nil, errors.Wrap(err, "failed to create suggestion")
	}

	log.Info().
		Str("evt.name", "suggestion.create").
		Str("suggestionId", suggestion.SuggestionID).
		Str("outletName", suggestion.OutletName).
		Msg("outlet suggested")

	return suggestion, nil
}

func (s *Suggestion) GetSuggestions(ctx context.Context) ([]*model.OutletSuggestion, error) {
	return s.SuggestionRepo.GetSuggestions(ctx)
}
