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
	"talent-hub/internal/domain/user"
	"talent-hub/internal/repository"
)

// JobListCachePrefix is the namespace for cached per-employee job-list views.
const JobListCachePrefix = "jobs:list:"

// EmployeeJobListPrefix keys every cached list page for one employee, so a
// single prefix delete invalidates all of them.
func EmployeeJobListPrefix(employeeID uuid.UUID) string {
	return JobListCachePrefix + employeeID.String() + ":"
}

func jobListCacheKey(employeeID uuid.UUID, limit, offset int) string {
	return fmt.Sprintf("%s%d:%d", EmployeeJobListPrefix(employeeID), limit, offset)
}

// JobListItem is one active posting annotated with what the viewing employee
// may do with it.
type JobListItem struct {
	Job             job.Job `json:"job"`
	HasApplied      bool    `json:"has_applied"`
	HasReferred     bool    `json:"has_referred"`
	CanApply        bool    `json:"can_apply"`
	CanRefer        bool    `json:"can_refer"`
	ActionBlockedBy string  `json:"action_blocked_by,omitempty"`
}

// JobListResult is the employee-facing jobs board.
type JobListResult struct {
	Jobs        []JobListItem       `json:"jobs"`
	Eligibility eligibility.Verdict `json:"eligibility"`
}

// listCache is the subset of the redis cache the job list needs.
type listCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

type JobListUsecase interface {
	ListForEmployee(ctx context.Context, employeeID uuid.UUID, limit, offset int) (JobListResult, error)
}

type jobListUsecase struct {
	jobs     repository.JobRepository
	requests repository.EligibilityRepository
	cache    listCache
	logger   *log.Logger
	now      func() time.Time
}

func NewJobListUsecase(
	jobs repository.JobRepository,
	requests repository.EligibilityRepository,
	cache listCache,
	logger *log.Logger,
) JobListUsecase {
	return &jobListUsecase{
		jobs:     jobs,
		requests: requests,
		cache:    cache,
		logger:   logger,
		now:      time.Now,
	}
}

// ListForEmployee returns active postings with per-employee action flags.
// Applying requires an approved job-switch request; referring only requires
// that the employee has not already acted on the posting.
func (u *jobListUsecase) ListForEmployee(ctx context.Context, employeeID uuid.UUID, limit, offset int) (JobListResult, error) {
	key := jobListCacheKey(employeeID, limit, offset)
	if u.cache != nil {
		var cached JobListResult
		if hit, err := u.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	latest, err := u.requests.GetLatestByEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return JobListResult{}, fmt.Errorf("%w: employee %s", ErrNotFound, employeeID)
		}
		return JobListResult{}, fmt.Errorf("%w: load latest request: %v", ErrInternal, err)
	}
	now := u.now()
	verdict := eligibility.Evaluate(latest, now)

	jobs, err := u.jobs.ListByStatus(ctx, []job.Status{job.StatusActive}, limit, offset)
	if err != nil {
		return JobListResult{}, fmt.Errorf("%w: list active jobs: %v", ErrInternal, err)
	}

	ids := make([]uuid.UUID, len(jobs))
	for i, j := range jobs {
		ids[i] = j.ID
	}
	flags, err := u.jobs.ActionFlags(ctx, employeeID, ids)
	if err != nil {
		return JobListResult{}, fmt.Errorf("%w: load action flags: %v", ErrInternal, err)
	}

	result := JobListResult{Jobs: make([]JobListItem, 0, len(jobs)), Eligibility: verdict}
	for _, j := range jobs {
		item := JobListItem{Job: j}
		switch flags[j.ID] {
		case repository.ActionApplied:
			item.HasApplied = true
		case repository.ActionReferred:
			item.HasReferred = true
		}
		acted := item.HasApplied || item.HasReferred
		open := j.AcceptsActionsAt(now)
		item.CanApply = verdict.CanApply && !acted && open
		item.CanRefer = !acted && open
		if !item.CanApply && !acted && open && !verdict.CanApply {
			item.ActionBlockedBy = verdict.Reason
		}
		result.Jobs = append(result.Jobs, item)
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, key, result, 0); err != nil && u.logger != nil {
			u.logger.Printf("jobs: cache list for %s: %v", employeeID, err)
		}
	}
	return result, nil
}
