// Package pgerr translates PostgreSQL driver errors into the errs taxonomy.
package pgerr

import (
	"errors"

	"shipping/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolation = "23505"
	undefinedTable  = "42P01"
)

// IsUniqueViolation reports whether err is a unique constraint violation.
func IsUniqueViolation(err error) bool {
	return hasCode(err, uniqueViolation)
}

// IsUndefinedTable reports whether err was raised because a relation does not exist.
func IsUndefinedTable(err error) bool {
	return hasCode(err, undefinedTable)
}

// Conflict maps a unique violation to *errs.ConflictError and returns any other error unchanged.
func Conflict(err error, resource string) error {
	if err == nil || !IsUniqueViolation(err) {
		return err
	}

	var pgErr *pgconn.PgError
	reason := "already exists"
	if errors.As(err, &pgErr) && pgErr.ConstraintName != "" {
		reason = "violates " + pgErr.ConstraintName
	}
	return errs.NewConflictErrorWithCause(resource, reason, err)
}

// ConstraintName returns the constraint a PostgreSQL error refers to, or "".
func ConstraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return false
}
