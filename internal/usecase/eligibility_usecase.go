package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"talent-hub/internal/domain/eligibility"
	"talent-hub/internal/domain/user"
	"talent-hub/internal/email"
	"talent-hub/internal/repository"
	"talent-hub/internal/ws"
)

const defaultRejectionReason = "Not provided"

// EligibilityStatus is the gate verdict for one employee together with the
// request it was derived from, if any.
type EligibilityStatus struct {
	Verdict eligibility.Verdict
	Latest  *eligibility.Request
}

// ReviewInput is an HR decision on a pending job-switch request.
type ReviewInput struct {
	RequestID uuid.UUID
	Decision  eligibility.Decision
	Reason    string
}

type EligibilityUsecase interface {
	StatusFor(ctx context.Context, employeeID uuid.UUID) (EligibilityStatus, error)
	Submit(ctx context.Context, employeeID uuid.UUID) (eligibility.Request, error)
	Review(ctx context.Context, in ReviewInput) (eligibility.Request, error)
	ListPending(ctx context.Context, limit, offset int) ([]eligibility.Request, error)
}

// listInvalidator drops cached job-list views after a state change that
// affects what an employee is allowed to do.
type listInvalidator interface {
	DeleteByPrefix(ctx context.Context, prefix string) error
}

type eligibilityUsecase struct {
	requests  repository.EligibilityRepository
	employees user.Repository
	mailer    email.Sender
	cache     listInvalidator
	logger    *log.Logger
	now       func() time.Time
}

func NewEligibilityUsecase(
	requests repository.EligibilityRepository,
	employees user.Repository,
	mailer email.Sender,
	cache listInvalidator,
	logger *log.Logger,
) EligibilityUsecase {
	return &eligibilityUsecase{
		requests:  requests,
		employees: employees,
		mailer:    mailer,
		cache:     cache,
		logger:    logger,
		now:       time.Now,
	}
}

func (u *eligibilityUsecase) StatusFor(ctx context.Context, employeeID uuid.UUID) (EligibilityStatus, error) {
	latest, err := u.requests.GetLatestByEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return EligibilityStatus{}, fmt.Errorf("%w: employee %s", ErrNotFound, employeeID)
		}
		return EligibilityStatus{}, fmt.Errorf("%w: load latest request: %v", ErrInternal, err)
	}
	return EligibilityStatus{
		Verdict: eligibility.Evaluate(latest, u.now()),
		Latest:  latest,
	}, nil
}

// Submit files a new job-switch request after the gate allows it. The
// single-pending guarantee is enforced again inside the repository, so a
// concurrent duplicate surfaces as a pending-review denial rather than a
// second row.
func (u *eligibilityUsecase) Submit(ctx context.Context, employeeID uuid.UUID) (eligibility.Request, error) {
	status, err := u.StatusFor(ctx, employeeID)
	if err != nil {
		return eligibility.Request{}, err
	}
	if !status.Verdict.CanSubmitNewRequest {
		return eligibility.Request{}, &NotEligibleError{Reason: status.Verdict.Reason}
	}

	req, err := u.requests.CreatePending(ctx, employeeID, u.now())
	if err != nil {
		if errors.Is(err, repository.ErrPendingExists) {
			return eligibility.Request{}, &NotEligibleError{Reason: eligibility.ReasonPendingReview}
		}
		if errors.Is(err, user.ErrNotFound) {
			return eligibility.Request{}, fmt.Errorf("%w: employee %s", ErrNotFound, employeeID)
		}
		return eligibility.Request{}, fmt.Errorf("%w: create request: %v", ErrInternal, err)
	}

	ws.NotifyRequestSubmitted(req.ID, employeeID)
	return req, nil
}

// Review applies an HR decision. Exactly one reviewer can win: the update is
// conditional on the request still being pending, and a lost race comes back
// as ErrInvalidState.
func (u *eligibilityUsecase) Review(ctx context.Context, in ReviewInput) (eligibility.Request, error) {
	now := u.now()
	update := repository.ReviewUpdate{ReviewedAt: now}

	switch in.Decision {
	case eligibility.DecisionApproved:
		update.Status = eligibility.StatusApproved
	case eligibility.DecisionRejected:
		update.Status = eligibility.StatusRejected
		reason := strings.TrimSpace(in.Reason)
		if reason == "" {
			reason = defaultRejectionReason
		}
		update.RejectionReason = &reason
		rejectedAt := now
		canApplyAfter := eligibility.RestrictionEnd(rejectedAt)
		update.RejectedAt = &rejectedAt
		update.CanApplyAfter = &canApplyAfter
	default:
		return eligibility.Request{}, fmt.Errorf("%w: decision %q", ErrValidation, in.Decision)
	}

	req, err := u.requests.Review(ctx, in.RequestID, update)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRequestNotFound):
			return eligibility.Request{}, fmt.Errorf("%w: request %s", ErrNotFound, in.RequestID)
		case errors.Is(err, repository.ErrRequestNotPending):
			return eligibility.Request{}, fmt.Errorf("%w: request already processed", ErrInvalidState)
		default:
			return eligibility.Request{}, fmt.Errorf("%w: review request: %v", ErrInternal, err)
		}
	}

	u.invalidateListsFor(ctx, req.EmployeeID)
	u.notifyDecision(ctx, req)
	return req, nil
}

func (u *eligibilityUsecase) ListPending(ctx context.Context, limit, offset int) ([]eligibility.Request, error) {
	reqs, err := u.requests.ListPending(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: list pending requests: %v", ErrInternal, err)
	}
	return reqs, nil
}

func (u *eligibilityUsecase) invalidateListsFor(ctx context.Context, employeeID uuid.UUID) {
	if u.cache == nil {
		return
	}
	if err := u.cache.DeleteByPrefix(ctx, EmployeeJobListPrefix(employeeID)); err != nil && u.logger != nil {
		u.logger.Printf("eligibility: invalidate job-list cache for %s: %v", employeeID, err)
	}
}

func (u *eligibilityUsecase) notifyDecision(ctx context.Context, req eligibility.Request) {
	if u.mailer == nil {
		return
	}
	emp, err := u.employees.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if u.logger != nil {
			u.logger.Printf("eligibility: load employee %s for decision email: %v", req.EmployeeID, err)
		}
		return
	}
	if err := u.mailer.SendReviewDecision(emp.Email, req); err != nil && u.logger != nil {
		u.logger.Printf("eligibility: send decision email to %s: %v", emp.Email, err)
	}
}
