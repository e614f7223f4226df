package repository

import (
	"context"

	"talent-hub/internal/database"
)

type StatusCount struct {
	Status string
	Count  int
}

type AnalyticsRepository interface {
	PendingRequestCount(ctx context.Context) (int, error)
	ActiveJobCount(ctx context.Context) (int, error)
	ApplicationCountsByStatus(ctx context.Context) ([]StatusCount, error)
	ReferralCountsByStatus(ctx context.Context) ([]StatusCount, error)
	AverageMatchPercentage(ctx context.Context) (float64, error)
}

type PostgresAnalyticsRepository struct {
	db database.DB
}

func NewPostgresAnalyticsRepository(db database.DB) *PostgresAnalyticsRepository {
	return &PostgresAnalyticsRepository{db: db}
}

func (r *PostgresAnalyticsRepository) PendingRequestCount(ctx context.Context) (int, error) {
	var n int
	row := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM eligibility_requests WHERE status = 'pending'`)
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *PostgresAnalyticsRepository) ActiveJobCount(ctx context.Context) (int, error) {
	var n int
	row := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs WHERE status = 'active'`)
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *PostgresAnalyticsRepository) ApplicationCountsByStatus(ctx context.Context) ([]StatusCount, error) {
	return r.countsByStatus(ctx, `SELECT status, COUNT(*) FROM applications GROUP BY status ORDER BY status`)
}

func (r *PostgresAnalyticsRepository) ReferralCountsByStatus(ctx context.Context) ([]StatusCount, error) {
	return r.countsByStatus(ctx, `SELECT status, COUNT(*) FROM referrals GROUP BY status ORDER BY status`)
}

func (r *PostgresAnalyticsRepository) AverageMatchPercentage(ctx context.Context) (float64, error) {
	var avg float64
	row := r.db.QueryRow(ctx, `SELECT COALESCE(AVG(match_percentage), 0) FROM applications`)
	if err := row.Scan(&avg); err != nil {
		return 0, err
	}
	return avg, nil
}

func (r *PostgresAnalyticsRepository) countsByStatus(ctx context.Context, query string) ([]StatusCount, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]StatusCount, 0)
	for rows.Next() {
		var sc StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
