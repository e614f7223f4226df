package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"talent-hub/internal/domain/eligibility"
	"talent-hub/internal/domain/job"
	"talent-hub/internal/domain/user"
	"talent-hub/internal/repository"
)

func approvedRequest(employeeID uuid.UUID) *eligibility.Request {
	return &eligibility.Request{EmployeeID: employeeID, Status: eligibility.StatusApproved}
}

func applyFixture(t *testing.T, now time.Time) (uuid.UUID, uuid.UUID, *mockJobRepo, *mockEmployeeRepo) {
	t.Helper()
	employeeID := uuid.New()
	jobID := uuid.New()
	jobs := &mockJobRepo{byID: map[uuid.UUID]job.Job{jobID: {
		ID:             jobID,
		Title:          "Platform Engineer",
		Status:         job.StatusActive,
		Deadline:       now.Add(72 * time.Hour),
		RequiredSkills: []string{"React", "Python"},
	}}}
	employees := &mockEmployeeRepo{byID: map[uuid.UUID]user.Employee{employeeID: {
		ID:     employeeID,
		Email:  "omar@talent-hub.test",
		Skills: []string{"React", "Node"},
	}}}
	return employeeID, jobID, jobs, employees
}

func newApplicationUsecase(apps *mockApplicationRepo, jobs *mockJobRepo, requests *mockEligibilityRepo, employees *mockEmployeeRepo, cache *mockInvalidator, now time.Time) *applicationUsecase {
	uc := &applicationUsecase{
		applications: apps,
		jobs:         jobs,
		requests:     requests,
		employees:    employees,
		now:          func() time.Time { return now },
	}
	if cache != nil {
		uc.cache = cache
	}
	return uc
}

func TestApply_ScoresSkillOverlap(t *testing.T) {
	now := time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC)
	employeeID, jobID, jobs, employees := applyFixture(t, now)
	requests := &mockEligibilityRepo{
		getLatestFn: func(context.Context, uuid.UUID) (*eligibility.Request, error) {
			return approvedRequest(employeeID), nil
		},
	}
	apps := &mockApplicationRepo{}
	cache := &mockInvalidator{}
	uc := newApplicationUsecase(apps, jobs, requests, employees, cache, now)

	app, err := uc.Apply(context.Background(), ApplyInput{
		EmployeeID: employeeID,
		JobID:      jobID,
		ResumeKind: "current",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	// one of two required skills matches
	if app.MatchPercentage != 50 {
		t.Fatalf("expected match 50, got %d", app.MatchPercentage)
	}
	if app.Status != job.ApplicationPending {
		t.Fatalf("expected pending, got %s", app.Status)
	}
	if len(apps.created) != 1 {
		t.Fatalf("expected one stored application, got %d", len(apps.created))
	}
	if len(cache.prefixes) != 1 {
		t.Fatalf("expected cache invalidation after apply")
	}
}

func TestApply_UpdatedResumeRequiresURL(t *testing.T) {
	now := time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC)
	employeeID, jobID, jobs, employees := applyFixture(t, now)
	uc := newApplicationUsecase(&mockApplicationRepo{}, jobs, &mockEligibilityRepo{}, employees, nil, now)

	_, err := uc.Apply(context.Background(), ApplyInput{
		EmployeeID: employeeID,
		JobID:      jobID,
		ResumeKind: "updated",
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestApply_WithoutApprovedRequest(t *testing.T) {
	now := time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC)
	employeeID, jobID, jobs, employees := applyFixture(t, now)
	requests := &mockEligibilityRepo{} // no request on file
	uc := newApplicationUsecase(&mockApplicationRepo{}, jobs, requests, employees, nil, now)

	_, err := uc.Apply(context.Background(), ApplyInput{EmployeeID: employeeID, JobID: jobID, ResumeKind: "current"})
	if !errors.Is(err, ErrNotEligible) {
		t.Fatalf("expected ErrNotEligible, got %v", err)
	}
	var ne *NotEligibleError
	if !errors.As(err, &ne) || ne.Reason != eligibility.ReasonNoRequest {
		t.Fatalf("expected no-request reason, got %v", err)
	}
}

func TestApply_AfterReferralOnSameJob(t *testing.T) {
	now := time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC)
	employeeID, jobID, jobs, employees := applyFixture(t, now)
	jobs.flags = map[uuid.UUID]repository.ActionKind{jobID: repository.ActionReferred}
	requests := &mockEligibilityRepo{
		getLatestFn: func(context.Context, uuid.UUID) (*eligibility.Request, error) {
			return approvedRequest(employeeID), nil
		},
	}
	uc := newApplicationUsecase(&mockApplicationRepo{}, jobs, requests, employees, nil, now)

	_, err := uc.Apply(context.Background(), ApplyInput{EmployeeID: employeeID, JobID: jobID, ResumeKind: "current"})
	if !errors.Is(err, ErrDuplicateAction) {
		t.Fatalf("expected ErrDuplicateAction, got %v", err)
	}
}

func TestApply_InsertRaceLosesToUniqueKey(t *testing.T) {
	now := time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC)
	employeeID, jobID, jobs, employees := applyFixture(t, now)
	requests := &mockEligibilityRepo{
		getLatestFn: func(context.Context, uuid.UUID) (*eligibility.Request, error) {
			return approvedRequest(employeeID), nil
		},
	}
	apps := &mockApplicationRepo{
		createFn: func(context.Context, job.Application) error {
			return repository.ErrDuplicateAction
		},
	}
	uc := newApplicationUsecase(apps, jobs, requests, employees, nil, now)

	_, err := uc.Apply(context.Background(), ApplyInput{EmployeeID: employeeID, JobID: jobID, ResumeKind: "current"})
	if !errors.Is(err, ErrDuplicateAction) {
		t.Fatalf("expected ErrDuplicateAction, got %v", err)
	}
}

func TestApply_PastDeadline(t *testing.T) {
	now := time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC)
	employeeID, jobID, jobs, employees := applyFixture(t, now)
	j := jobs.byID[jobID]
	j.Deadline = now.Add(-time.Hour)
	jobs.byID[jobID] = j
	uc := newApplicationUsecase(&mockApplicationRepo{}, jobs, &mockEligibilityRepo{}, employees, nil, now)

	_, err := uc.Apply(context.Background(), ApplyInput{EmployeeID: employeeID, JobID: jobID, ResumeKind: "current"})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for expired posting, got %v", err)
	}
}

func TestApplicationUpdateStatus_IllegalTransition(t *testing.T) {
	id := uuid.New()
	apps := &mockApplicationRepo{byID: map[uuid.UUID]job.Application{
		id: {ID: id, Status: job.ApplicationRejected},
	}}
	uc := newApplicationUsecase(apps, &mockJobRepo{}, &mockEligibilityRepo{}, &mockEmployeeRepo{}, nil, time.Now())

	_, err := uc.UpdateStatus(context.Background(), id, "approved")
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestApplicationUpdateStatus_LostRace(t *testing.T) {
	id := uuid.New()
	apps := &mockApplicationRepo{
		byID: map[uuid.UUID]job.Application{id: {ID: id, Status: job.ApplicationPending}},
		setStatusFn: func(context.Context, uuid.UUID, job.ApplicationStatus, job.ApplicationStatus) error {
			return repository.ErrApplicationStatusConflict
		},
	}
	uc := newApplicationUsecase(apps, &mockJobRepo{}, &mockEligibilityRepo{}, &mockEmployeeRepo{}, nil, time.Now())

	_, err := uc.UpdateStatus(context.Background(), id, "under_review")
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState on lost race, got %v", err)
	}
}
