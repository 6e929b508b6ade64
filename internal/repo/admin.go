package repo

import (
	"context"
	"database/sql"
	_ "embed"
	"strings"

	"github.com/uptrace/bun"
)

//go:embed schema.sql
var schema string

type Admin struct {
	db *bun.DB
}

func NewAdmin(db *bun.DB) *Admin {
	return &Admin{db: db}
}

// CreateSchema creates every table and index that does not exist yet, in a
// single transaction.
func (r *Admin) CreateSchema(ctx context.Context) (int, error) {
	statements := splitStatements(schema)
	err := r.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		for _, stmt := range statements {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return err
			}
		}
		return nil
	})
	return len(statements), err
}

func splitStatements(s string) []string {
	var statements []string
	for _, stmt := range strings.Split(s, ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			statements = append(statements, stmt)
		}
	}
	return statements
}
