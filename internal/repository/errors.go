package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// unique_violation, см. https://www.postgresql.org/docs/current/errcodes-appendix.html
const codeUniqueViolation = "23505"

// IsDuplicate reports whether err is a unique constraint violation,
// e.g. a second courier registered with the same phone.
func IsDuplicate(err error) bool {
	var pgerr *pgconn.PgError
	if !errors.As(err, &pgerr) {
		return false
	}
	return pgerr.Code == codeUniqueViolation
}

// IsNotFound reports whether err means the row does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
