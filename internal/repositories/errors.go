package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Unique-constraint violations surfaced to services. The store is the sole
// authority on uniqueness; services react to these instead of pre-checking.
var (
	ErrEmailExists       = errors.New("email already exists")
	ErrReferenceIDExists = errors.New("reference id already exists")
)

// uniqueViolation reports whether err is a PostgreSQL unique-constraint
// violation (SQLSTATE 23505) and returns the violated constraint name.
func uniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return pgErr.ConstraintName, true
	}
	return "", false
}
