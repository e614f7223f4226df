package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"talent-hub/internal/domain/job"
	"talent-hub/internal/repository"
	"talent-hub/internal/ws"
)

// ReferInput is an employee putting an external candidate forward for a job.
type ReferInput struct {
	EmployeeID uuid.UUID
	JobID      uuid.UUID
	Candidate  job.Candidate
}

type ReferralUsecase interface {
	Refer(ctx context.Context, in ReferInput) (job.Referral, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, to string) (job.Referral, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]job.Referral, error)
}

type referralUsecase struct {
	referrals repository.ReferralRepository
	jobs      repository.JobRepository
	cache     listInvalidator
	logger    *log.Logger
	now       func() time.Time
}

func NewReferralUsecase(
	referrals repository.ReferralRepository,
	jobs repository.JobRepository,
	cache listInvalidator,
	logger *log.Logger,
) ReferralUsecase {
	return &referralUsecase{
		referrals: referrals,
		jobs:      jobs,
		cache:     cache,
		logger:    logger,
		now:       time.Now,
	}
}

// Refer records a referral. Unlike applying, referring needs no approved
// job-switch request; the only per-job constraint is that the referrer has
// not already applied or referred, which the job_actions key enforces.
func (u *referralUsecase) Refer(ctx context.Context, in ReferInput) (job.Referral, error) {
	if err := in.Candidate.Validate(); err != nil {
		return job.Referral{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	posting, err := u.jobs.GetByID(ctx, in.JobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return job.Referral{}, fmt.Errorf("%w: job %s", ErrNotFound, in.JobID)
		}
		return job.Referral{}, fmt.Errorf("%w: load job: %v", ErrInternal, err)
	}
	now := u.now()
	if !posting.AcceptsActionsAt(now) {
		return job.Referral{}, fmt.Errorf("%w: job is not accepting referrals", ErrValidation)
	}

	ref := job.Referral{
		ID:         uuid.New(),
		JobID:      in.JobID,
		ReferredBy: in.EmployeeID,
		Candidate:  in.Candidate,
		Status:     job.ReferralPending,
		ReferredAt: now,
	}
	if err := u.referrals.Create(ctx, ref); err != nil {
		if errors.Is(err, repository.ErrDuplicateAction) {
			return job.Referral{}, fmt.Errorf("%w: already applied or referred for this job", ErrDuplicateAction)
		}
		return job.Referral{}, fmt.Errorf("%w: create referral: %v", ErrInternal, err)
	}

	u.invalidateListsFor(ctx, in.EmployeeID)
	ws.NotifyReferralReceived(in.JobID, in.EmployeeID, in.Candidate.Name)
	return ref, nil
}

func (u *referralUsecase) UpdateStatus(ctx context.Context, id uuid.UUID, to string) (job.Referral, error) {
	target, err := job.ParseReferralStatus(to)
	if err != nil {
		return job.Referral{}, fmt.Errorf("%w: referral status %q", ErrValidation, to)
	}

	ref, err := u.referrals.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReferralNotFound) {
			return job.Referral{}, fmt.Errorf("%w: referral %s", ErrNotFound, id)
		}
		return job.Referral{}, fmt.Errorf("%w: load referral: %v", ErrInternal, err)
	}
	if !job.IsReferralTransitionAllowed(ref.Status, target) {
		return job.Referral{}, fmt.Errorf("%w: cannot move referral from %s to %s", ErrInvalidState, ref.Status, target)
	}

	if err := u.referrals.SetStatus(ctx, id, ref.Status, target); err != nil {
		switch {
		case errors.Is(err, repository.ErrReferralStatusConflict):
			return job.Referral{}, fmt.Errorf("%w: referral changed concurrently", ErrInvalidState)
		case errors.Is(err, repository.ErrReferralNotFound):
			return job.Referral{}, fmt.Errorf("%w: referral %s", ErrNotFound, id)
		default:
			return job.Referral{}, fmt.Errorf("%w: update referral status: %v", ErrInternal, err)
		}
	}

	ref.Status = target
	return ref, nil
}

func (u *referralUsecase) ListByJob(ctx context.Context, jobID uuid.UUID) ([]job.Referral, error) {
	refs, err := u.referrals.ListByJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("%w: list referrals: %v", ErrInternal, err)
	}
	return refs, nil
}

func (u *referralUsecase) invalidateListsFor(ctx context.Context, employeeID uuid.UUID) {
	if u.cache == nil {
		return
	}
	if err := u.cache.DeleteByPrefix(ctx, EmployeeJobListPrefix(employeeID)); err != nil && u.logger != nil {
		u.logger.Printf("referrals: invalidate job-list cache for %s: %v", employeeID, err)
	}
}
