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
	ErrReferralNotFound       = errors.New("referral not found")
	ErrReferralStatusConflict = errors.New("referral status changed concurrently")
)

type ReferralRepository interface {
	// Create writes the job_actions membership row and the referral in one
	// transaction, sharing the action slot with applications.
	Create(ctx context.Context, ref job.Referral) error
	GetByID(ctx context.Context, id uuid.UUID) (job.Referral, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]job.Referral, error)
	SetStatus(ctx context.Context, id uuid.UUID, from, to job.ReferralStatus) error
}

type PostgresReferralRepository struct {
	db database.DB
}

func NewPostgresReferralRepository(db database.DB) *PostgresReferralRepository {
	return &PostgresReferralRepository{db: db}
}

const referralColumns = `id, job_id, referred_by, candidate_name, candidate_email, candidate_phone, candidate_resume_url, candidate_skills, candidate_years_experience, status, referred_at, updated_at`

func (r *PostgresReferralRepository) Create(ctx context.Context, ref job.Referral) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	_, err = tx.Exec(ctx,
		`INSERT INTO job_actions (job_id, employee_id, kind) VALUES ($1, $2, $3)`,
		ref.JobID, ref.ReferredBy, string(ActionReferred),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateAction
		}
		return err
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO referrals (id, job_id, referred_by, candidate_name, candidate_email, candidate_phone, candidate_resume_url, candidate_skills, candidate_years_experience, status, referred_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)`,
		ref.ID, ref.JobID, ref.ReferredBy,
		ref.Candidate.Name, ref.Candidate.Email, ref.Candidate.Phone, ref.Candidate.ResumeURL,
		skillsOrEmpty(ref.Candidate.Skills), ref.Candidate.YearsExperience,
		string(ref.Status), ref.ReferredAt.UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateAction
		}
		return err
	}

	return tx.Commit(ctx)
}

func (r *PostgresReferralRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Referral, error) {
	row := r.db.QueryRow(ctx, `SELECT `+referralColumns+` FROM referrals WHERE id = $1`, id)
	ref, err := scanReferral(row)
	if err != nil {
		if isNoRows(err) {
			return job.Referral{}, ErrReferralNotFound
		}
		return job.Referral{}, err
	}
	return ref, nil
}

func (r *PostgresReferralRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]job.Referral, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+referralColumns+` FROM referrals WHERE job_id = $1 ORDER BY referred_at ASC`,
		jobID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Referral, 0)
	for rows.Next() {
		ref, err := scanReferralRows(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresReferralRepository) SetStatus(ctx context.Context, id uuid.UUID, from, to job.ReferralStatus) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE referrals SET status = $3, updated_at = $4 WHERE id = $1 AND status = $2`,
		id, string(from), string(to), time.Now().UTC(),
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		var exists bool
		row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM referrals WHERE id = $1)`, id)
		if perr := row.Scan(&exists); perr != nil {
			return perr
		}
		if exists {
			return ErrReferralStatusConflict
		}
		return ErrReferralNotFound
	}
	return nil
}

func scanReferral(row database.Row) (job.Referral, error) {
	var ref job.Referral
	var status string
	err := row.Scan(
		&ref.ID, &ref.JobID, &ref.ReferredBy,
		&ref.Candidate.Name, &ref.Candidate.Email, &ref.Candidate.Phone, &ref.Candidate.ResumeURL,
		&ref.Candidate.Skills, &ref.Candidate.YearsExperience,
		&status, &ref.ReferredAt, &ref.UpdatedAt,
	)
	if err != nil {
		return job.Referral{}, err
	}
	ref.Status = job.ReferralStatus(status)
	return ref, nil
}

func scanReferralRows(rows database.Rows) (job.Referral, error) {
	var ref job.Referral
	var status string
	err := rows.Scan(
		&ref.ID, &ref.JobID, &ref.ReferredBy,
		&ref.Candidate.Name, &ref.Candidate.Email, &ref.Candidate.Phone, &ref.Candidate.ResumeURL,
		&ref.Candidate.Skills, &ref.Candidate.YearsExperience,
		&status, &ref.ReferredAt, &ref.UpdatedAt,
	)
	if err != nil {
		return job.Referral{}, err
	}
	ref.Status = job.ReferralStatus(status)
	return ref, nil
}
