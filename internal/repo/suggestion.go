package repo

import (
	"context"

	"github.com/uptrace/bun"

	"mediawatch.dev/backend/internal/model"
	"mediawatch.dev/backend/internal/repo/selector"
)

type Suggestion struct {
	db  *bun.DB
	sel selector.S[model.OutletSuggestion]
}

func NewSuggestion(db *bun.DB) *Suggestion {
	return &Suggestion{
		db:  db,
		sel: selector.New[model.OutletSuggestion](db),
	}
}

func (r *Suggestion) CreateSuggestion(ctx context.Context, suggestion *model.OutletSuggestion) error {
	_, err := r.db.NewInsert().
		Model(suggestion).
		Returning("created_at").
		Exec(ctx)
	return err
}

func (r *Suggestion) GetSuggestions(ctx context.Context) ([]*model.OutletSuggestion, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Order("created_at DESC")
	})
}
