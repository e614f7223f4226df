package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"talent-hub/internal/database"
	"talent-hub/internal/domain/eligibility"
	"talent-hub/internal/domain/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrRequestNotFound   = errors.New("eligibility request not found")
	ErrRequestNotPending = errors.New("eligibility request already processed")
	ErrPendingExists     = errors.New("pending eligibility request already exists")
)

// ReviewUpdate carries the fields the reviewer stamps onto a pending
// request. Rejection fields stay nil on approval.
type ReviewUpdate struct {
	Status          eligibility.Status
	ReviewedAt      time.Time
	RejectionReason *string
	RejectedAt      *time.Time
	CanApplyAfter   *time.Time
}

type EligibilityRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (eligibility.Request, error)
	// GetLatestByEmployee resolves the head of the employee's request chain
	// through employees.current_request_id; nil means no request yet.
	GetLatestByEmployee(ctx context.Context, employeeID uuid.UUID) (*eligibility.Request, error)
	CreatePending(ctx context.Context, employeeID uuid.UUID, requestedAt time.Time) (eligibility.Request, error)
	// Review applies the update only if the request is still pending; a
	// processed request yields ErrRequestNotPending, a missing one
	// ErrRequestNotFound.
	Review(ctx context.Context, id uuid.UUID, upd ReviewUpdate) (eligibility.Request, error)
	ListPending(ctx context.Context, limit, offset int) ([]eligibility.Request, error)
}

type PostgresEligibilityRepository struct {
	db database.DB
}

func NewPostgresEligibilityRepository(db database.DB) *PostgresEligibilityRepository {
	return &PostgresEligibilityRepository{db: db}
}

const requestColumns = `id, employee_id, status, requested_at, reviewed_at, rejection_reason, rejected_at, can_apply_after`

func (r *PostgresEligibilityRepository) GetByID(ctx context.Context, id uuid.UUID) (eligibility.Request, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+requestColumns+` FROM eligibility_requests WHERE id = $1`, id)
	req, err := scanRequest(row)
	if err != nil {
		if isNoRows(err) {
			return eligibility.Request{}, ErrRequestNotFound
		}
		return eligibility.Request{}, err
	}
	return req, nil
}

func (r *PostgresEligibilityRepository) GetLatestByEmployee(ctx context.Context, employeeID uuid.UUID) (*eligibility.Request, error) {
	row := r.db.QueryRow(ctx,
		`SELECT r.id, r.employee_id, r.status, r.requested_at, r.reviewed_at, r.rejection_reason, r.rejected_at, r.can_apply_after
		 FROM employees e
		 JOIN eligibility_requests r ON r.id = e.current_request_id
		 WHERE e.id = $1`,
		employeeID,
	)
	req, err := scanRequest(row)
	if err != nil {
		if isNoRows(err) {
			// Distinguish "no request yet" from "no such employee".
			var exists bool
			probe := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM employees WHERE id = $1)`, employeeID)
			if perr := probe.Scan(&exists); perr != nil {
				return nil, perr
			}
			if !exists {
				return nil, user.ErrNotFound
			}
			return nil, nil
		}
		return nil, err
	}
	return &req, nil
}

func (r *PostgresEligibilityRepository) CreatePending(ctx context.Context, employeeID uuid.UUID, requestedAt time.Time) (eligibility.Request, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return eligibility.Request{}, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	id := uuid.New()

	// Guarded insert: the WHERE NOT EXISTS clause plus the partial unique
	// index keep "one pending request per employee" true under races.
	affected, err := tx.Exec(ctx,
		`INSERT INTO eligibility_requests (id, employee_id, status, requested_at)
		 SELECT $1, $2, 'pending', $3
		 WHERE NOT EXISTS (
			SELECT 1 FROM eligibility_requests WHERE employee_id = $2 AND status = 'pending'
		 )`,
		id, employeeID, requestedAt.UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return eligibility.Request{}, ErrPendingExists
		}
		return eligibility.Request{}, err
	}
	if affected == 0 {
		return eligibility.Request{}, ErrPendingExists
	}

	affected, err = tx.Exec(ctx,
		`UPDATE employees SET current_request_id = $2, updated_at = $3 WHERE id = $1`,
		employeeID, id, requestedAt.UTC(),
	)
	if err != nil {
		return eligibility.Request{}, err
	}
	if affected == 0 {
		return eligibility.Request{}, user.ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return eligibility.Request{}, err
	}

	return eligibility.Request{
		ID:          id,
		EmployeeID:  employeeID,
		Status:      eligibility.StatusPending,
		RequestedAt: requestedAt.UTC(),
	}, nil
}

func (r *PostgresEligibilityRepository) Review(ctx context.Context, id uuid.UUID, upd ReviewUpdate) (eligibility.Request, error) {
	// Single conditional update: the status predicate is the compare half
	// of the compare-and-set, so two concurrent reviews cannot both win.
	row := r.db.QueryRow(ctx,
		`UPDATE eligibility_requests
		 SET status = $2, reviewed_at = $3, rejection_reason = $4, rejected_at = $5, can_apply_after = $6, updated_at = $3
		 WHERE id = $1 AND status = 'pending'
		 RETURNING `+requestColumns,
		id, string(upd.Status), upd.ReviewedAt.UTC(), upd.RejectionReason, upd.RejectedAt, upd.CanApplyAfter,
	)
	req, err := scanRequest(row)
	if err != nil {
		if isNoRows(err) {
			var exists bool
			probe := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM eligibility_requests WHERE id = $1)`, id)
			if perr := probe.Scan(&exists); perr != nil {
				return eligibility.Request{}, perr
			}
			if exists {
				return eligibility.Request{}, ErrRequestNotPending
			}
			return eligibility.Request{}, ErrRequestNotFound
		}
		return eligibility.Request{}, err
	}
	return req, nil
}

func (r *PostgresEligibilityRepository) ListPending(ctx context.Context, limit, offset int) ([]eligibility.Request, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+requestColumns+`
		 FROM eligibility_requests
		 WHERE status = 'pending'
		 ORDER BY requested_at ASC
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]eligibility.Request, 0)
	for rows.Next() {
		req, err := scanRequestRows(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanRequest(row database.Row) (eligibility.Request, error) {
	var req eligibility.Request
	var status string
	var reason *string
	err := row.Scan(&req.ID, &req.EmployeeID, &status, &req.RequestedAt, &req.ReviewedAt, &reason, &req.RejectedAt, &req.CanApplyAfter)
	if err != nil {
		return eligibility.Request{}, err
	}
	req.Status = eligibility.Status(status)
	if reason != nil {
		req.RejectionReason = *reason
	}
	return req, nil
}

func scanRequestRows(rows database.Rows) (eligibility.Request, error) {
	var req eligibility.Request
	var status string
	var reason *string
	err := rows.Scan(&req.ID, &req.EmployeeID, &status, &req.RequestedAt, &req.ReviewedAt, &reason, &req.RejectedAt, &req.CanApplyAfter)
	if err != nil {
		return eligibility.Request{}, err
	}
	req.Status = eligibility.Status(status)
	if reason != nil {
		req.RejectionReason = *reason
	}
	return req, nil
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows)
}
