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
	ErrApplicationNotFound       = errors.New("application not found")
	ErrApplicationStatusConflict = errors.New("application status changed concurrently")
)

type ApplicationRepository interface {
	// Create writes the job_actions membership row and the application in
	// one transaction; a second action on the same (job, employee) pair
	// fails with ErrDuplicateAction.
	Create(ctx context.Context, a job.Application) error
	GetByID(ctx context.Context, id uuid.UUID) (job.Application, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]job.Application, error)
	ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]job.Application, error)
	SetStatus(ctx context.Context, id uuid.UUID, from, to job.ApplicationStatus) error
}

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

const applicationColumns = `id, job_id, employee_id, status, resume_kind, COALESCE(updated_resume_url, ''), match_percentage, applied_at, updated_at`

func (r *PostgresApplicationRepository) Create(ctx context.Context, a job.Application) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	_, err = tx.Exec(ctx,
		`INSERT INTO job_actions (job_id, employee_id, kind) VALUES ($1, $2, $3)`,
		a.JobID, a.EmployeeID, string(ActionApplied),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateAction
		}
		return err
	}

	var resumeURL *string
	if a.UpdatedResumeURL != "" {
		resumeURL = &a.UpdatedResumeURL
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO applications (id, job_id, employee_id, status, resume_kind, updated_resume_url, match_percentage, applied_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)`,
		a.ID, a.JobID, a.EmployeeID, string(a.Status), string(a.ResumeKind), resumeURL, a.MatchPercentage, a.AppliedAt.UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateAction
		}
		return err
	}

	return tx.Commit(ctx)
}

func (r *PostgresApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Application, error) {
	row := r.db.QueryRow(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)
	a, err := scanApplication(row)
	if err != nil {
		if isNoRows(err) {
			return job.Application{}, ErrApplicationNotFound
		}
		return job.Application{}, err
	}
	return a, nil
}

func (r *PostgresApplicationRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]job.Application, error) {
	return r.list(ctx, `job_id`, jobID)
}

func (r *PostgresApplicationRepository) ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]job.Application, error) {
	return r.list(ctx, `employee_id`, employeeID)
}

func (r *PostgresApplicationRepository) list(ctx context.Context, column string, id uuid.UUID) ([]job.Application, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE `+column+` = $1 ORDER BY applied_at ASC`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Application, 0)
	for rows.Next() {
		a, err := scanApplicationRows(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresApplicationRepository) SetStatus(ctx context.Context, id uuid.UUID, from, to job.ApplicationStatus) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE applications SET status = $3, updated_at = $4 WHERE id = $1 AND status = $2`,
		id, string(from), string(to), time.Now().UTC(),
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		var exists bool
		row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM applications WHERE id = $1)`, id)
		if perr := row.Scan(&exists); perr != nil {
			return perr
		}
		if exists {
			return ErrApplicationStatusConflict
		}
		return ErrApplicationNotFound
	}
	return nil
}

func scanApplication(row database.Row) (job.Application, error) {
	var a job.Application
	var status, kind string
	err := row.Scan(&a.ID, &a.JobID, &a.EmployeeID, &status, &kind, &a.UpdatedResumeURL, &a.MatchPercentage, &a.AppliedAt, &a.UpdatedAt)
	if err != nil {
		return job.Application{}, err
	}
	a.Status = job.ApplicationStatus(status)
	a.ResumeKind = job.ResumeKind(kind)
	return a, nil
}

func scanApplicationRows(rows database.Rows) (job.Application, error) {
	var a job.Application
	var status, kind string
	err := rows.Scan(&a.ID, &a.JobID, &a.EmployeeID, &status, &kind, &a.UpdatedResumeURL, &a.MatchPercentage, &a.AppliedAt, &a.UpdatedAt)
	if err != nil {
		return job.Application{}, err
	}
	a.Status = job.ApplicationStatus(status)
	a.ResumeKind = job.ResumeKind(kind)
	return a, nil
}
