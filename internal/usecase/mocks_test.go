package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"talent-hub/internal/domain/eligibility"
	"talent-hub/internal/domain/job"
	"talent-hub/internal/domain/user"
	"talent-hub/internal/repository"
)

type mockEligibilityRepo struct {
	getLatestFn     func(ctx context.Context, employeeID uuid.UUID) (*eligibility.Request, error)
	createPendingFn func(ctx context.Context, employeeID uuid.UUID, requestedAt time.Time) (eligibility.Request, error)
	reviewFn        func(ctx context.Context, id uuid.UUID, upd repository.ReviewUpdate) (eligibility.Request, error)
	listPendingFn   func(ctx context.Context, limit, offset int) ([]eligibility.Request, error)
}

func (m *mockEligibilityRepo) GetByID(context.Context, uuid.UUID) (eligibility.Request, error) {
	return eligibility.Request{}, repository.ErrRequestNotFound
}

func (m *mockEligibilityRepo) GetLatestByEmployee(ctx context.Context, employeeID uuid.UUID) (*eligibility.Request, error) {
	if m.getLatestFn == nil {
		return nil, nil
	}
	return m.getLatestFn(ctx, employeeID)
}

func (m *mockEligibilityRepo) CreatePending(ctx context.Context, employeeID uuid.UUID, requestedAt time.Time) (eligibility.Request, error) {
	if m.createPendingFn == nil {
		return eligibility.Request{ID: uuid.New(), EmployeeID: employeeID, Status: eligibility.StatusPending, RequestedAt: requestedAt}, nil
	}
	return m.createPendingFn(ctx, employeeID, requestedAt)
}

func (m *mockEligibilityRepo) Review(ctx context.Context, id uuid.UUID, upd repository.ReviewUpdate) (eligibility.Request, error) {
	if m.reviewFn == nil {
		return eligibility.Request{}, repository.ErrRequestNotFound
	}
	return m.reviewFn(ctx, id, upd)
}

func (m *mockEligibilityRepo) ListPending(ctx context.Context, limit, offset int) ([]eligibility.Request, error) {
	if m.listPendingFn == nil {
		return nil, nil
	}
	return m.listPendingFn(ctx, limit, offset)
}

type mockEmployeeRepo struct {
	byID map[uuid.UUID]user.Employee
}

func (m *mockEmployeeRepo) Create(context.Context, user.Employee) error { return nil }

func (m *mockEmployeeRepo) GetByID(_ context.Context, id uuid.UUID) (user.Employee, error) {
	if emp, ok := m.byID[id]; ok {
		return emp, nil
	}
	return user.Employee{}, user.ErrNotFound
}

func (m *mockEmployeeRepo) GetByEmail(context.Context, string) (user.Employee, error) {
	return user.Employee{}, user.ErrNotFound
}

func (m *mockEmployeeRepo) ExistsByEmail(context.Context, string) (bool, error) { return false, nil }

func (m *mockEmployeeRepo) UpdateSkills(context.Context, uuid.UUID, []string) error { return nil }

type mockJobRepo struct {
	byID        map[uuid.UUID]job.Job
	listed      []job.Job
	listFilters [][]job.Status
	flags       map[uuid.UUID]repository.ActionKind
	counts      map[uuid.UUID]repository.JobCounts
	setStatusFn func(ctx context.Context, id uuid.UUID, from, to job.Status) error
	created     []job.Job
	updated     []job.Job
}

func (m *mockJobRepo) Create(_ context.Context, j job.Job) error {
	m.created = append(m.created, j)
	return nil
}

func (m *mockJobRepo) Update(_ context.Context, j job.Job) error {
	m.updated = append(m.updated, j)
	return nil
}

func (m *mockJobRepo) GetByID(_ context.Context, id uuid.UUID) (job.Job, error) {
	if j, ok := m.byID[id]; ok {
		return j, nil
	}
	return job.Job{}, repository.ErrJobNotFound
}

func (m *mockJobRepo) ListByStatus(_ context.Context, statuses []job.Status, _, _ int) ([]job.Job, error) {
	m.listFilters = append(m.listFilters, statuses)
	return m.listed, nil
}

func (m *mockJobRepo) SetStatus(ctx context.Context, id uuid.UUID, from, to job.Status) error {
	if m.setStatusFn == nil {
		return nil
	}
	return m.setStatusFn(ctx, id, from, to)
}

func (m *mockJobRepo) CloseExpired(context.Context, time.Time) (int64, error) { return 0, nil }

func (m *mockJobRepo) ActionFlags(context.Context, uuid.UUID, []uuid.UUID) (map[uuid.UUID]repository.ActionKind, error) {
	if m.flags == nil {
		return map[uuid.UUID]repository.ActionKind{}, nil
	}
	return m.flags, nil
}

func (m *mockJobRepo) CountsByJob(context.Context, []uuid.UUID) (map[uuid.UUID]repository.JobCounts, error) {
	if m.counts == nil {
		return map[uuid.UUID]repository.JobCounts{}, nil
	}
	return m.counts, nil
}

type mockApplicationRepo struct {
	createFn    func(ctx context.Context, a job.Application) error
	byID        map[uuid.UUID]job.Application
	setStatusFn func(ctx context.Context, id uuid.UUID, from, to job.ApplicationStatus) error
	created     []job.Application
}

func (m *mockApplicationRepo) Create(ctx context.Context, a job.Application) error {
	if m.createFn != nil {
		if err := m.createFn(ctx, a); err != nil {
			return err
		}
	}
	m.created = append(m.created, a)
	return nil
}

func (m *mockApplicationRepo) GetByID(_ context.Context, id uuid.UUID) (job.Application, error) {
	if a, ok := m.byID[id]; ok {
		return a, nil
	}
	return job.Application{}, repository.ErrApplicationNotFound
}

func (m *mockApplicationRepo) ListByJob(context.Context, uuid.UUID) ([]job.Application, error) {
	return nil, nil
}

func (m *mockApplicationRepo) ListByEmployee(context.Context, uuid.UUID) ([]job.Application, error) {
	return nil, nil
}

func (m *mockApplicationRepo) SetStatus(ctx context.Context, id uuid.UUID, from, to job.ApplicationStatus) error {
	if m.setStatusFn == nil {
		return nil
	}
	return m.setStatusFn(ctx, id, from, to)
}

type mockReferralRepo struct {
	createFn    func(ctx context.Context, ref job.Referral) error
	byID        map[uuid.UUID]job.Referral
	setStatusFn func(ctx context.Context, id uuid.UUID, from, to job.ReferralStatus) error
	created     []job.Referral
}

func (m *mockReferralRepo) Create(ctx context.Context, ref job.Referral) error {
	if m.createFn != nil {
		if err := m.createFn(ctx, ref); err != nil {
			return err
		}
	}
	m.created = append(m.created, ref)
	return nil
}

func (m *mockReferralRepo) GetByID(_ context.Context, id uuid.UUID) (job.Referral, error) {
	if r, ok := m.byID[id]; ok {
		return r, nil
	}
	return job.Referral{}, repository.ErrReferralNotFound
}

func (m *mockReferralRepo) ListByJob(context.Context, uuid.UUID) ([]job.Referral, error) {
	return nil, nil
}

func (m *mockReferralRepo) SetStatus(ctx context.Context, id uuid.UUID, from, to job.ReferralStatus) error {
	if m.setStatusFn == nil {
		return nil
	}
	return m.setStatusFn(ctx, id, from, to)
}

type mockInvalidator struct {
	prefixes []string
}

func (m *mockInvalidator) DeleteByPrefix(_ context.Context, prefix string) error {
	m.prefixes = append(m.prefixes, prefix)
	return nil
}

type mockMailer struct {
	sent []eligibility.Request
}

func (m *mockMailer) SendReviewDecision(_ string, req eligibility.Request) error {
	m.sent = append(m.sent, req)
	return nil
}
