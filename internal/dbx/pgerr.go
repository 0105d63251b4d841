package dbx

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes we branch on.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// IsUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation, optionally on a specific constraint (empty matches any).
func IsUniqueViolation(err error, constraint string) bool {
	return hasCode(err, codeUniqueViolation, constraint)
}

// IsForeignKeyViolation reports whether err is a PostgreSQL foreign key
// violation, optionally on a specific constraint (empty matches any).
func IsForeignKeyViolation(err error, constraint string) bool {
	return hasCode(err, codeForeignKeyViolation, constraint)
}

func hasCode(err error, code, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != code {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}
