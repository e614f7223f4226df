package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"talent-hub/internal/database"
	"talent-hub/internal/domain/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PostgresEmployeeRepository struct {
	db database.DB
}

func NewPostgresEmployeeRepository(db database.DB) *PostgresEmployeeRepository {
	return &PostgresEmployeeRepository{db: db}
}

const employeeColumns = `id, email, password_hash, full_name, role, skills, current_request_id, created_at, updated_at`

func (r *PostgresEmployeeRepository) Create(ctx context.Context, e user.Employee) error {
	now := time.Now().UTC()
	_, err := r.db.Exec(ctx,
		`INSERT INTO employees (id, email, password_hash, full_name, role, skills, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $7)`,
		e.ID, e.Email, e.PasswordHash, e.FullName, string(e.Role), skillsOrEmpty(e.Skills), now,
	)
	return err
}

func (r *PostgresEmployeeRepository) GetByID(ctx context.Context, id uuid.UUID) (user.Employee, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id)
	return scanEmployee(row)
}

func (r *PostgresEmployeeRepository) GetByEmail(ctx context.Context, email string) (user.Employee, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE email = $1`, email)
	return scanEmployee(row)
}

func (r *PostgresEmployeeRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM employees WHERE email = $1)`, email)
	if err := row.Scan(&exists); err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return exists, nil
}

func (r *PostgresEmployeeRepository) UpdateSkills(ctx context.Context, id uuid.UUID, skills []string) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE employees SET skills = $2, updated_at = $3 WHERE id = $1`,
		id, skillsOrEmpty(skills), time.Now().UTC(),
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return user.ErrNotFound
	}
	return nil
}

func scanEmployee(row database.Row) (user.Employee, error) {
	var e user.Employee
	var role string
	err := row.Scan(&e.ID, &e.Email, &e.PasswordHash, &e.FullName, &role, &e.Skills, &e.CurrentRequestID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return user.Employee{}, user.ErrNotFound
		}
		return user.Employee{}, err
	}
	e.Role = user.Role(role)
	return e, nil
}

func skillsOrEmpty(skills []string) []string {
	if skills == nil {
		return []string{}
	}
	return skills
}
