package repository

import (
	"context"
	"errors"
	"time"

	"talent-hub/internal/database"
	"talent-hub/internal/domain/job"

	"github.com/google/uuid"
)

var (
	ErrJobNotFound       = errors.New("job not found")
	ErrJobStatusConflict = errors.New("job status changed concurrently")
)

// ActionKind mirrors the job_actions.kind column.
type ActionKind string

const (
	ActionApplied  ActionKind = "applied"
	ActionReferred ActionKind = "referred"
)

type JobCounts struct {
	Applications int
	Referrals    int
}

type JobRepository interface {
	Create(ctx context.Context, j job.Job) error
	Update(ctx context.Context, j job.Job) error
	GetByID(ctx context.Context, id uuid.UUID) (job.Job, error)
	ListByStatus(ctx context.Context, statuses []job.Status, limit, offset int) ([]job.Job, error)
	// SetStatus is a compare-and-set on the posting status; a lost race
	// yields ErrJobStatusConflict.
	SetStatus(ctx context.Context, id uuid.UUID, from, to job.Status) error
	// CloseExpired closes every active posting whose deadline has passed
	// and reports how many were swept.
	CloseExpired(ctx context.Context, now time.Time) (int64, error)
	// ActionFlags reports which of the given jobs the employee has already
	// acted on, and how.
	ActionFlags(ctx context.Context, employeeID uuid.UUID, jobIDs []uuid.UUID) (map[uuid.UUID]ActionKind, error)
	CountsByJob(ctx context.Context, jobIDs []uuid.UUID) (map[uuid.UUID]JobCounts, error)
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

const jobColumns = `id, title, description, department, location, status, deadline, required_skills, COALESCE(created_by, '00000000-0000-0000-0000-000000000000'::uuid), created_at, updated_at`

func (r *PostgresJobRepository) Create(ctx context.Context, j job.Job) error {
	now := time.Now().UTC()
	_, err := r.db.Exec(ctx,
		`INSERT INTO jobs (id, title, description, department, location, status, deadline, required_skills, created_by, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)`,
		j.ID, j.Title, j.Description, j.Department, j.Location, string(j.Status), j.Deadline.UTC(), skillsOrEmpty(j.RequiredSkills), j.CreatedBy, now,
	)
	return err
}

func (r *PostgresJobRepository) Update(ctx context.Context, j job.Job) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE jobs
		 SET title = $2, description = $3, department = $4, location = $5, deadline = $6, required_skills = $7, updated_at = $8
		 WHERE id = $1`,
		j.ID, j.Title, j.Description, j.Department, j.Location, j.Deadline.UTC(), skillsOrEmpty(j.RequiredSkills), time.Now().UTC(),
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *PostgresJobRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	row := r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	j, err := scanJob(row)
	if err != nil {
		if isNoRows(err) {
			return job.Job{}, ErrJobNotFound
		}
		return job.Job{}, err
	}
	return j, nil
}

func (r *PostgresJobRepository) ListByStatus(ctx context.Context, statuses []job.Status, limit, offset int) ([]job.Job, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	// No statuses means no filter. ANY over an empty array matches nothing,
	// so the predicate has to be dropped, not passed an empty text[].
	var (
		rows database.Rows
		err  error
	)
	if len(statuses) == 0 {
		rows, err = r.db.Query(ctx,
			`SELECT `+jobColumns+`
			 FROM jobs
			 ORDER BY created_at DESC
			 LIMIT $1 OFFSET $2`,
			limit, offset,
		)
	} else {
		raw := make([]string, 0, len(statuses))
		for _, s := range statuses {
			raw = append(raw, string(s))
		}
		rows, err = r.db.Query(ctx,
			`SELECT `+jobColumns+`
			 FROM jobs
			 WHERE status = ANY($1)
			 ORDER BY created_at DESC
			 LIMIT $2 OFFSET $3`,
			raw, limit, offset,
		)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Job, 0)
	for rows.Next() {
		j, err := scanJobRows(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresJobRepository) SetStatus(ctx context.Context, id uuid.UUID, from, to job.Status) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE jobs SET status = $3, updated_at = $4 WHERE id = $1 AND status = $2`,
		id, string(from), string(to), time.Now().UTC(),
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		var exists bool
		row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM jobs WHERE id = $1)`, id)
		if perr := row.Scan(&exists); perr != nil {
			return perr
		}
		if exists {
			return ErrJobStatusConflict
		}
		return ErrJobNotFound
	}
	return nil
}

func (r *PostgresJobRepository) CloseExpired(ctx context.Context, now time.Time) (int64, error) {
	return r.db.Exec(ctx,
		`UPDATE jobs SET status = 'closed', updated_at = $1 WHERE status = 'active' AND deadline < $1`,
		now.UTC(),
	)
}

func (r *PostgresJobRepository) ActionFlags(ctx context.Context, employeeID uuid.UUID, jobIDs []uuid.UUID) (map[uuid.UUID]ActionKind, error) {
	out := make(map[uuid.UUID]ActionKind, len(jobIDs))
	if len(jobIDs) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT job_id, kind FROM job_actions WHERE employee_id = $1 AND job_id = ANY($2)`,
		employeeID, jobIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var kind string
		if err := rows.Scan(&id, &kind); err != nil {
			return nil, err
		}
		out[id] = ActionKind(kind)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresJobRepository) CountsByJob(ctx context.Context, jobIDs []uuid.UUID) (map[uuid.UUID]JobCounts, error) {
	out := make(map[uuid.UUID]JobCounts, len(jobIDs))
	if len(jobIDs) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT job_id, kind, COUNT(*)
		 FROM job_actions
		 WHERE job_id = ANY($1)
		 GROUP BY job_id, kind`,
		jobIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var kind string
		var n int
		if err := rows.Scan(&id, &kind, &n); err != nil {
			return nil, err
		}
		c := out[id]
		switch ActionKind(kind) {
		case ActionApplied:
			c.Applications = n
		case ActionReferred:
			c.Referrals = n
		}
		out[id] = c
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanJob(row database.Row) (job.Job, error) {
	var j job.Job
	var status string
	err := row.Scan(&j.ID, &j.Title, &j.Description, &j.Department, &j.Location, &status, &j.Deadline, &j.RequiredSkills, &j.CreatedBy, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return job.Job{}, err
	}
	j.Status = job.Status(status)
	return j, nil
}

func scanJobRows(rows database.Rows) (job.Job, error) {
	var j job.Job
	var status string
	err := rows.Scan(&j.ID, &j.Title, &j.Description, &j.Department, &j.Location, &status, &j.Deadline, &j.RequiredSkills, &j.CreatedBy, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return job.Job{}, err
	}
	j.Status = job.Status(status)
	return j, nil
}
