package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"talent-hub/internal/domain/job"
	"talent-hub/internal/repository"
)

// JobInput is the HR-authored content of a posting.
type JobInput struct {
	Title          string
	Description    string
	Department     string
	Location       string
	Deadline       time.Time
	RequiredSkills []string
}

// HRJobItem is a posting with its review workload attached.
type HRJobItem struct {
	Job          job.Job `json:"job"`
	Applications int     `json:"applications"`
	Referrals    int     `json:"referrals"`
}

type HRJobUsecase interface {
	Create(ctx context.Context, createdBy uuid.UUID, in JobInput) (job.Job, error)
	Update(ctx context.Context, id uuid.UUID, in JobInput) (job.Job, error)
	Publish(ctx context.Context, id uuid.UUID) (job.Job, error)
	Close(ctx context.Context, id uuid.UUID) (job.Job, error)
	Get(ctx context.Context, id uuid.UUID) (job.Job, error)
	List(ctx context.Context, statuses []string, limit, offset int) ([]HRJobItem, error)
}

type hrJobUsecase struct {
	jobs   repository.JobRepository
	cache  listInvalidator
	logger *log.Logger
	now    func() time.Time
}

func NewHRJobUsecase(jobs repository.JobRepository, cache listInvalidator, logger *log.Logger) HRJobUsecase {
	return &hrJobUsecase{jobs: jobs, cache: cache, logger: logger, now: time.Now}
}

func validateJobInput(in JobInput) error {
	var missing []string
	if strings.TrimSpace(in.Title) == "" {
		missing = append(missing, "title")
	}
	if in.Deadline.IsZero() {
		missing = append(missing, "deadline")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}

// Create stores a new posting as a draft. Drafts are invisible to employees
// until published.
func (u *hrJobUsecase) Create(ctx context.Context, createdBy uuid.UUID, in JobInput) (job.Job, error) {
	if err := validateJobInput(in); err != nil {
		return job.Job{}, err
	}
	now := u.now()
	j := job.Job{
		ID:             uuid.New(),
		Title:          strings.TrimSpace(in.Title),
		Description:    in.Description,
		Department:     in.Department,
		Location:       in.Location,
		Status:         job.StatusDraft,
		Deadline:       in.Deadline,
		RequiredSkills: in.RequiredSkills,
		CreatedBy:      createdBy,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := u.jobs.Create(ctx, j); err != nil {
		return job.Job{}, fmt.Errorf("%w: create job: %v", ErrInternal, err)
	}
	return j, nil
}

func (u *hrJobUsecase) Update(ctx context.Context, id uuid.UUID, in JobInput) (job.Job, error) {
	if err := validateJobInput(in); err != nil {
		return job.Job{}, err
	}
	j, err := u.getJob(ctx, id)
	if err != nil {
		return job.Job{}, err
	}
	if j.Status == job.StatusClosed {
		return job.Job{}, fmt.Errorf("%w: closed jobs cannot be edited", ErrInvalidState)
	}

	j.Title = strings.TrimSpace(in.Title)
	j.Description = in.Description
	j.Department = in.Department
	j.Location = in.Location
	j.Deadline = in.Deadline
	j.RequiredSkills = in.RequiredSkills
	j.UpdatedAt = u.now()
	if err := u.jobs.Update(ctx, j); err != nil {
		return job.Job{}, fmt.Errorf("%w: update job: %v", ErrInternal, err)
	}

	u.invalidateAllLists(ctx)
	return j, nil
}

func (u *hrJobUsecase) Publish(ctx context.Context, id uuid.UUID) (job.Job, error) {
	return u.transition(ctx, id, job.StatusActive)
}

func (u *hrJobUsecase) Close(ctx context.Context, id uuid.UUID) (job.Job, error) {
	return u.transition(ctx, id, job.StatusClosed)
}

func (u *hrJobUsecase) Get(ctx context.Context, id uuid.UUID) (job.Job, error) {
	return u.getJob(ctx, id)
}

func (u *hrJobUsecase) List(ctx context.Context, statuses []string, limit, offset int) ([]HRJobItem, error) {
	var parsed []job.Status
	for _, s := range statuses {
		st, err := job.ParseStatus(s)
		if err != nil {
			return nil, fmt.Errorf("%w: job status %q", ErrValidation, s)
		}
		parsed = append(parsed, st)
	}

	jobs, err := u.jobs.ListByStatus(ctx, parsed, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: list jobs: %v", ErrInternal, err)
	}

	ids := make([]uuid.UUID, len(jobs))
	for i, j := range jobs {
		ids[i] = j.ID
	}
	counts, err := u.jobs.CountsByJob(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: count actions: %v", ErrInternal, err)
	}

	items := make([]HRJobItem, 0, len(jobs))
	for _, j := range jobs {
		c := counts[j.ID]
		items = append(items, HRJobItem{Job: j, Applications: c.Applications, Referrals: c.Referrals})
	}
	return items, nil
}

func (u *hrJobUsecase) transition(ctx context.Context, id uuid.UUID, to job.Status) (job.Job, error) {
	j, err := u.getJob(ctx, id)
	if err != nil {
		return job.Job{}, err
	}
	if !job.IsStatusTransitionAllowed(j.Status, to) {
		return job.Job{}, fmt.Errorf("%w: cannot move job from %s to %s", ErrInvalidState, j.Status, to)
	}
	if err := u.jobs.SetStatus(ctx, id, j.Status, to); err != nil {
		switch {
		case errors.Is(err, repository.ErrJobStatusConflict):
			return job.Job{}, fmt.Errorf("%w: job changed concurrently", ErrInvalidState)
		case errors.Is(err, repository.ErrJobNotFound):
			return job.Job{}, fmt.Errorf("%w: job %s", ErrNotFound, id)
		default:
			return job.Job{}, fmt.Errorf("%w: update job status: %v", ErrInternal, err)
		}
	}

	j.Status = to
	u.invalidateAllLists(ctx)
	return j, nil
}

func (u *hrJobUsecase) getJob(ctx context.Context, id uuid.UUID) (job.Job, error) {
	j, err := u.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return job.Job{}, fmt.Errorf("%w: job %s", ErrNotFound, id)
		}
		return job.Job{}, fmt.Errorf("%w: load job: %v", ErrInternal, err)
	}
	return j, nil
}

// invalidateAllLists drops every employee's cached job list. Posting changes
// affect everyone, so the whole namespace goes.
func (u *hrJobUsecase) invalidateAllLists(ctx context.Context) {
	if u.cache == nil {
		return
	}
	if err := u.cache.DeleteByPrefix(ctx, JobListCachePrefix); err != nil && u.logger != nil {
		u.logger.Printf("jobs: invalidate job-list caches: %v", err)
	}
}
