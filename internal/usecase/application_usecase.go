package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"talent-hub/internal/domain/eligibility"
	"talent-hub/internal/domain/job"
	"talent-hub/internal/domain/matching"
	"talent-hub/internal/domain/user"
	"talent-hub/internal/repository"
	"talent-hub/internal/ws"
)

// ApplyInput is an employee's application to one job posting.
type ApplyInput struct {
	EmployeeID       uuid.UUID
	JobID            uuid.UUID
	ResumeKind       string
	UpdatedResumeURL string
}

type ApplicationUsecase interface {
	Apply(ctx context.Context, in ApplyInput) (job.Application, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, to string) (job.Application, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]job.Application, error)
	ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]job.Application, error)
}

type applicationUsecase struct {
	applications repository.ApplicationRepository
	jobs         repository.JobRepository
	requests     repository.EligibilityRepository
	employees    user.Repository
	cache        listInvalidator
	logger       *log.Logger
	now          func() time.Time
}

func NewApplicationUsecase(
	applications repository.ApplicationRepository,
	jobs repository.JobRepository,
	requests repository.EligibilityRepository,
	employees user.Repository,
	cache listInvalidator,
	logger *log.Logger,
) ApplicationUsecase {
	return &applicationUsecase{
		applications: applications,
		jobs:         jobs,
		requests:     requests,
		employees:    employees,
		cache:        cache,
		logger:       logger,
		now:          time.Now,
	}
}

// Apply records an application after every precondition holds: valid resume
// choice, an open posting, no prior action on it, and an approved job-switch
// request. The job_actions unique key is the final arbiter under concurrency.
func (u *applicationUsecase) Apply(ctx context.Context, in ApplyInput) (job.Application, error) {
	kind, err := job.ParseResumeKind(in.ResumeKind)
	if err != nil {
		return job.Application{}, fmt.Errorf("%w: resume kind %q", ErrValidation, in.ResumeKind)
	}
	if kind == job.ResumeUpdated && in.UpdatedResumeURL == "" {
		return job.Application{}, fmt.Errorf("%w: updated resume requires a resume URL", ErrValidation)
	}

	posting, err := u.jobs.GetByID(ctx, in.JobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return job.Application{}, fmt.Errorf("%w: job %s", ErrNotFound, in.JobID)
		}
		return job.Application{}, fmt.Errorf("%w: load job: %v", ErrInternal, err)
	}
	now := u.now()
	if !posting.AcceptsActionsAt(now) {
		return job.Application{}, fmt.Errorf("%w: job is not accepting applications", ErrValidation)
	}

	flags, err := u.jobs.ActionFlags(ctx, in.EmployeeID, []uuid.UUID{in.JobID})
	if err != nil {
		return job.Application{}, fmt.Errorf("%w: load action flags: %v", ErrInternal, err)
	}
	if _, acted := flags[in.JobID]; acted {
		return job.Application{}, fmt.Errorf("%w: already applied or referred for this job", ErrDuplicateAction)
	}

	latest, err := u.requests.GetLatestByEmployee(ctx, in.EmployeeID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return job.Application{}, fmt.Errorf("%w: employee %s", ErrNotFound, in.EmployeeID)
		}
		return job.Application{}, fmt.Errorf("%w: load latest request: %v", ErrInternal, err)
	}
	verdict := eligibility.Evaluate(latest, now)
	if !verdict.CanApply {
		return job.Application{}, &NotEligibleError{Reason: verdict.Reason}
	}

	emp, err := u.employees.GetByID(ctx, in.EmployeeID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return job.Application{}, fmt.Errorf("%w: employee %s", ErrNotFound, in.EmployeeID)
		}
		return job.Application{}, fmt.Errorf("%w: load employee: %v", ErrInternal, err)
	}

	app := job.Application{
		ID:               uuid.New(),
		JobID:            in.JobID,
		EmployeeID:       in.EmployeeID,
		Status:           job.ApplicationPending,
		ResumeKind:       kind,
		UpdatedResumeURL: in.UpdatedResumeURL,
		MatchPercentage:  matching.Score(emp.Skills, posting.RequiredSkills),
		AppliedAt:        now,
	}
	if err := u.applications.Create(ctx, app); err != nil {
		if errors.Is(err, repository.ErrDuplicateAction) {
			return job.Application{}, fmt.Errorf("%w: already applied or referred for this job", ErrDuplicateAction)
		}
		return job.Application{}, fmt.Errorf("%w: create application: %v", ErrInternal, err)
	}

	u.invalidateListsFor(ctx, in.EmployeeID)
	ws.NotifyApplicationReceived(in.JobID, in.EmployeeID, app.MatchPercentage)
	return app, nil
}

// UpdateStatus moves an application through its review lifecycle. The
// transition is checked against the allowed graph, then applied with a
// compare-and-set so two reviewers cannot both advance the same record.
func (u *applicationUsecase) UpdateStatus(ctx context.Context, id uuid.UUID, to string) (job.Application, error) {
	target, err := job.ParseApplicationStatus(to)
	if err != nil {
		return job.Application{}, fmt.Errorf("%w: application status %q", ErrValidation, to)
	}

	app, err := u.applications.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return job.Application{}, fmt.Errorf("%w: application %s", ErrNotFound, id)
		}
		return job.Application{}, fmt.Errorf("%w: load application: %v", ErrInternal, err)
	}
	if !job.IsApplicationTransitionAllowed(app.Status, target) {
		return job.Application{}, fmt.Errorf("%w: cannot move application from %s to %s", ErrInvalidState, app.Status, target)
	}

	if err := u.applications.SetStatus(ctx, id, app.Status, target); err != nil {
		switch {
		case errors.Is(err, repository.ErrApplicationStatusConflict):
			return job.Application{}, fmt.Errorf("%w: application changed concurrently", ErrInvalidState)
		case errors.Is(err, repository.ErrApplicationNotFound):
			return job.Application{}, fmt.Errorf("%w: application %s", ErrNotFound, id)
		default:
			return job.Application{}, fmt.Errorf("%w: update application status: %v", ErrInternal, err)
		}
	}

	app.Status = target
	u.invalidateListsFor(ctx, app.EmployeeID)
	return app, nil
}

func (u *applicationUsecase) ListByJob(ctx context.Context, jobID uuid.UUID) ([]job.Application, error) {
	apps, err := u.applications.ListByJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("%w: list applications: %v", ErrInternal, err)
	}
	return apps, nil
}

func (u *applicationUsecase) ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]job.Application, error) {
	apps, err := u.applications.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("%w: list applications: %v", ErrInternal, err)
	}
	return apps, nil
}

func (u *applicationUsecase) invalidateListsFor(ctx context.Context, employeeID uuid.UUID) {
	if u.cache == nil {
		return
	}
	if err := u.cache.DeleteByPrefix(ctx, EmployeeJobListPrefix(employeeID)); err != nil && u.logger != nil {
		u.logger.Printf("applications: invalidate job-list cache for %s: %v", employeeID, err)
	}
}
