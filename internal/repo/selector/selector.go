package selector

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"mediawatch.dev/backend/internal/pkg/apierr"
)

type S[T any] struct {
	DB bun.IDB
}

func New[T any](db bun.IDB) S[T] {
	return S[T]{
		DB: db,
	}
}

func (r S[T]) SelectOne(ctx context.Context, fn func(q *bun.SelectQuery) *bun.SelectQuery) (*T, error) {
	var model T
	err := fn(r.DB.NewSelect().Model(&model)).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apierr.ErrNotFound
	} else if err != nil {
		return nil, err
	}

	return &model, nil
}

// SelectMany returns an empty slice, not ErrNotFound, when nothing matches.
func (r S[T]) SelectMany(ctx context.Context, fn func(q *bun.SelectQuery) *bun.SelectQuery) ([]*T, error) {
	model := make([]*T, 0)
	err := fn(r.DB.NewSelect().Model(&model)).Scan(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	return model, nil
}

func (r S[T]) SelectManyAndCount(ctx context.Context, fn func(q *bun.SelectQuery) *bun.SelectQuery) ([]*T, int, error) {
	model := make([]*T, 0)
	count, err := fn(r.DB.NewSelect().Model(&model)).ScanAndCount(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, 0, err
	}

	return model, count, nil
}

func (r S[T]) Count(ctx context.Context, fn func(q *bun.SelectQuery) *bun.SelectQuery) (int, error) {
	return fn(r.DB.NewSelect().Model((*T)(nil))).Count(ctx)
}
