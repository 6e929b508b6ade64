package repo

import (
	"github.com/pkg/errors"
	"github.com/uptrace/bun/driver/pgdriver"
)

// ErrConflict is returned when a write violates a unique constraint.
var ErrConflict = errors.New("repo: unique constraint violated")

const (
	pgCodeUniqueViolation     = "23505"
	pgCodeForeignKeyViolation = "23503"
)

// ErrDanglingReference is returned when a write references a missing row.
var ErrDanglingReference = errors.New("repo: referenced row does not exist")

func translateWriteErr(err error) error {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		switch pgErr.Field('C') {
		case pgCodeUniqueViolation:
			return errors.Wrap(ErrConflict, pgErr.Field('n'))
		case pgCodeForeignKeyViolation:
			return errors.Wrap(ErrDanglingReference, pgErr.Field('n'))
		}
	}
	return err
}
