package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicateAction surfaces the job_actions unique constraint: the
// employee already applied to or referred for the job.
var ErrDuplicateAction = errors.New("employee already acted on this job")

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
