package repositories

import (
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/cockroachdb/errors"

	"github.com/offkey/offkey/models"
)

const uniqueViolationCode = "23505"

// translatePgError maps constraint violations to the matching sentinel so
// callers can test with errors.Is.
func translatePgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return errors.Wrap(models.ConflictError, pgErr.Detail)
	}
	return errors.Wrap(err, "error executing statement")
}
