package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"talent-hub/internal/database"
	"talent-hub/internal/domain/job"
)

// capturingDB records every query so tests can assert the SQL a repository
// actually issues.
type capturingDB struct {
	queries []string
	args    [][]any
}

func (c *capturingDB) Exec(_ context.Context, query string, args ...any) (int64, error) {
	c.record(query, args)
	return 0, nil
}

func (c *capturingDB) Query(_ context.Context, query string, args ...any) (database.Rows, error) {
	c.record(query, args)
	return emptyRows{}, nil
}

func (c *capturingDB) QueryRow(_ context.Context, query string, args ...any) database.Row {
	c.record(query, args)
	return emptyRows{}
}

func (c *capturingDB) Begin(context.Context) (database.Tx, error) {
	return nil, errors.New("not implemented")
}

func (c *capturingDB) Ping(context.Context) error { return nil }
func (c *capturingDB) Close() error               { return nil }
func (c *capturingDB) SQLDB() *sql.DB             { return nil }

func (c *capturingDB) record(query string, args []any) {
	c.queries = append(c.queries, query)
	c.args = append(c.args, args)
}

type emptyRows struct{}

func (emptyRows) Close()            {}
func (emptyRows) Next() bool        { return false }
func (emptyRows) Scan(...any) error { return errors.New("no rows") }
func (emptyRows) Err() error        { return nil }

func TestJobListByStatus_NoFilterOmitsPredicate(t *testing.T) {
	db := &capturingDB{}
	repo := NewPostgresJobRepository(db)

	jobs, err := repo.ListByStatus(context.Background(), nil, 20, 0)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(jobs) != 0 {
		t.Fatalf("expected no rows from empty result set, got %d", len(jobs))
	}

	if len(db.queries) != 1 {
		t.Fatalf("expected one query, got %d", len(db.queries))
	}
	// An empty text[] in `status = ANY($1)` matches no rows, so the
	// unfiltered list must not carry the predicate at all.
	if strings.Contains(db.queries[0], "ANY") {
		t.Fatalf("unfiltered list must not filter by status, got query: %s", db.queries[0])
	}
	if len(db.args[0]) != 2 {
		t.Fatalf("expected only limit and offset args, got %v", db.args[0])
	}
}

func TestJobListByStatus_FilterPassesStatuses(t *testing.T) {
	db := &capturingDB{}
	repo := NewPostgresJobRepository(db)

	if _, err := repo.ListByStatus(context.Background(), []job.Status{job.StatusActive}, 20, 0); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if len(db.queries) != 1 || !strings.Contains(db.queries[0], "status = ANY($1)") {
		t.Fatalf("expected a status predicate, got: %v", db.queries)
	}
	raw, ok := db.args[0][0].([]string)
	if !ok || len(raw) != 1 || raw[0] != "active" {
		t.Fatalf("expected statuses as first arg, got %v", db.args[0])
	}
}
