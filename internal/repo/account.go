package repo

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"mediawatch.dev/backend/internal/model"
	"mediawatch.dev/backend/internal/repo/selector"
)

type Account struct {
	db  *bun.DB
	sel selector.S[model.Account]
}

func NewAccount(db *bun.DB) *Account {
	return &Account{
		db:  db,
		sel: selector.New[model.Account](db),
	}
}

// CreateAccount inserts account. A taken email or token yields ErrConflict.
func (r *Account) CreateAccount(ctx context.Context, account *model.Account) error {
	_, err := r.db.NewInsert().
		Model(account).
		Returning("created_at, updated_at").
		Exec(ctx)
	return translateWriteErr(err)
}

func (r *Account) GetAccountByID(ctx context.Context, accountID string) (*model.Account, error) {
	return r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("account_id = ?", accountID)
	})
}

func (r *Account) GetAccountByEmail(ctx context.Context, email string) (*model.Account, error) {
	return r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("email = ?", email)
	})
}

func (r *Account) GetAccountByAccessToken(ctx context.Context, token string) (*model.Account, error) {
	return r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("access_token = ?", token)
	})
}

func (r *Account) UpdatePreferences(ctx context.Context, account *model.Account) error {
	account.UpdatedAt = time.Now()
	_, err := r.db.NewUpdate().
		Model(account).
		Column("name", "preferred_tone", "updated_at").
		WherePK().
		Exec(ctx)
	return err
}

func (r *Account) CountAccounts(ctx context.Context) (int, error) {
	return r.sel.Count(ctx, func(q *bun.SelectQuery) *bun.SelectQuery { return q })
}
