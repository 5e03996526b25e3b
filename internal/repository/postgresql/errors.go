package postgresql

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// uniqueViolation reports a unique_violation and the violated constraint.
func uniqueViolation(err error) (string, bool) {
	return pgErrorWithCode(err, pgUniqueViolation)
}

// foreignKeyViolation reports a foreign_key_violation and the violated constraint.
func foreignKeyViolation(err error) (string, bool) {
	return pgErrorWithCode(err, pgForeignKeyViolation)
}

func pgErrorWithCode(err error, code string) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == code {
		return pgErr.ConstraintName, true
	}
	return "", false
}
