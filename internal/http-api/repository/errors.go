package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the Postgres SQLSTATE for unique-constraint failures.
const uniqueViolation = "23505"

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation, e.g. a duplicate login or a duplicate (creator, hash) pair.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
