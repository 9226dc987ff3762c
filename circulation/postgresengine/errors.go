package postgresengine

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// SQLSTATE codes the store translates into domain errors.
const (
	sqlStateForeignKeyViolation = "23503"
	sqlStateUniqueViolation     = "23505"
	sqlStateCheckViolation      = "23514"
)

// sqlState extracts the SQLSTATE code from a pgx or lib/pq error, or returns "" for anything else.
func sqlState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}

	return ""
}

// translateWriteError maps constraint violations raised by a write to the given domain errors.
// A nil target keeps the original error for that violation.
func translateWriteError(err error, onForeignKey, onUnique, onCheck error) error {
	if err == nil {
		return nil
	}

	var target error

	switch sqlState(err) {
	case sqlStateForeignKeyViolation:
		target = onForeignKey
	case sqlStateUniqueViolation:
		target = onUnique
	case sqlStateCheckViolation:
		target = onCheck
	}

	if target == nil {
		return err
	}

	return errors.Join(target, err)
}
