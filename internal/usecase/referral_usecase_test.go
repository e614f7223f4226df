package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"talent-hub/internal/domain/job"
	"talent-hub/internal/repository"
)

func newReferralUsecase(refs *mockReferralRepo, jobs *mockJobRepo, cache *mockInvalidator, now time.Time) *referralUsecase {
	uc := &referralUsecase{
		referrals: refs,
		jobs:      jobs,
		now:       func() time.Time { return now },
	}
	if cache != nil {
		uc.cache = cache
	}
	return uc
}

func activeJob(id uuid.UUID, now time.Time) job.Job {
	return job.Job{ID: id, Title: "Data Engineer", Status: job.StatusActive, Deadline: now.Add(48 * time.Hour)}
}

func validCandidate() job.Candidate {
	return job.Candidate{Name: "Priya N", Email: "priya@example.com", ResumeURL: "https://cdn.example.com/priya.pdf"}
}

// Referring never consults the job-switch gate: an employee with no request
// on file can still put candidates forward.
func TestRefer_NoEligibilityRequired(t *testing.T) {
	now := time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC)
	jobID := uuid.New()
	jobs := &mockJobRepo{byID: map[uuid.UUID]job.Job{jobID: activeJob(jobID, now)}}
	refs := &mockReferralRepo{}
	cache := &mockInvalidator{}
	uc := newReferralUsecase(refs, jobs, cache, now)

	ref, err := uc.Refer(context.Background(), ReferInput{
		EmployeeID: uuid.New(),
		JobID:      jobID,
		Candidate:  validCandidate(),
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if ref.Status != job.ReferralPending {
		t.Fatalf("expected pending, got %s", ref.Status)
	}
	if len(refs.created) != 1 {
		t.Fatalf("expected one stored referral, got %d", len(refs.created))
	}
	if len(cache.prefixes) != 1 {
		t.Fatalf("expected cache invalidation after refer")
	}
}

func TestRefer_MissingCandidateFields(t *testing.T) {
	now := time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC)
	jobID := uuid.New()
	jobs := &mockJobRepo{byID: map[uuid.UUID]job.Job{jobID: activeJob(jobID, now)}}
	uc := newReferralUsecase(&mockReferralRepo{}, jobs, nil, now)

	_, err := uc.Refer(context.Background(), ReferInput{
		EmployeeID: uuid.New(),
		JobID:      jobID,
		Candidate:  job.Candidate{Name: "No Resume"},
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestRefer_AfterApplyOnSameJob(t *testing.T) {
	now := time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC)
	jobID := uuid.New()
	jobs := &mockJobRepo{byID: map[uuid.UUID]job.Job{jobID: activeJob(jobID, now)}}
	refs := &mockReferralRepo{
		createFn: func(context.Context, job.Referral) error {
			return repository.ErrDuplicateAction
		},
	}
	uc := newReferralUsecase(refs, jobs, nil, now)

	_, err := uc.Refer(context.Background(), ReferInput{
		EmployeeID: uuid.New(),
		JobID:      jobID,
		Candidate:  validCandidate(),
	})
	if !errors.Is(err, ErrDuplicateAction) {
		t.Fatalf("expected ErrDuplicateAction, got %v", err)
	}
}

func TestRefer_ClosedJob(t *testing.T) {
	now := time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC)
	jobID := uuid.New()
	closed := activeJob(jobID, now)
	closed.Status = job.StatusClosed
	jobs := &mockJobRepo{byID: map[uuid.UUID]job.Job{jobID: closed}}
	uc := newReferralUsecase(&mockReferralRepo{}, jobs, nil, now)

	_, err := uc.Refer(context.Background(), ReferInput{
		EmployeeID: uuid.New(),
		JobID:      jobID,
		Candidate:  validCandidate(),
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for closed posting, got %v", err)
	}
}

func TestReferralUpdateStatus_PendingToHired(t *testing.T) {
	id := uuid.New()
	refs := &mockReferralRepo{byID: map[uuid.UUID]job.Referral{
		id: {ID: id, Status: job.ReferralPending},
	}}
	uc := newReferralUsecase(refs, &mockJobRepo{}, nil, time.Now())

	ref, err := uc.UpdateStatus(context.Background(), id, "hired")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if ref.Status != job.ReferralHired {
		t.Fatalf("expected hired, got %s", ref.Status)
	}
}

func TestReferralUpdateStatus_TerminalIsFinal(t *testing.T) {
	id := uuid.New()
	refs := &mockReferralRepo{byID: map[uuid.UUID]job.Referral{
		id: {ID: id, Status: job.ReferralHired},
	}}
	uc := newReferralUsecase(refs, &mockJobRepo{}, nil, time.Now())

	_, err := uc.UpdateStatus(context.Background(), id, "rejected")
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}
