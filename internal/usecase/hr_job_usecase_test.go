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

func newHRJobUsecase(jobs *mockJobRepo, cache *mockInvalidator, now time.Time) *hrJobUsecase {
	uc := &hrJobUsecase{jobs: jobs, now: func() time.Time { return now }}
	if cache != nil {
		uc.cache = cache
	}
	return uc
}

func validJobInput(now time.Time) JobInput {
	return JobInput{Title: "SRE", Deadline: now.Add(14 * 24 * time.Hour), RequiredSkills: []string{"Go", "Kubernetes"}}
}

func TestHRJobCreate_StartsAsDraft(t *testing.T) {
	now := time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)
	jobs := &mockJobRepo{}
	uc := newHRJobUsecase(jobs, nil, now)

	j, err := uc.Create(context.Background(), uuid.New(), validJobInput(now))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if j.Status != job.StatusDraft {
		t.Fatalf("expected draft, got %s", j.Status)
	}
	if len(jobs.created) != 1 {
		t.Fatalf("expected one stored job, got %d", len(jobs.created))
	}
}

func TestHRJobCreate_MissingFields(t *testing.T) {
	uc := newHRJobUsecase(&mockJobRepo{}, nil, time.Now())

	_, err := uc.Create(context.Background(), uuid.New(), JobInput{Description: "no title, no deadline"})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestHRJobPublish_DraftToActive(t *testing.T) {
	now := time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)
	id := uuid.New()
	jobs := &mockJobRepo{byID: map[uuid.UUID]job.Job{id: {ID: id, Status: job.StatusDraft}}}
	cache := &mockInvalidator{}
	uc := newHRJobUsecase(jobs, cache, now)

	j, err := uc.Publish(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if j.Status != job.StatusActive {
		t.Fatalf("expected active, got %s", j.Status)
	}
	if len(cache.prefixes) != 1 || cache.prefixes[0] != JobListCachePrefix {
		t.Fatalf("expected whole-namespace invalidation, got %v", cache.prefixes)
	}
}

func TestHRJobPublish_ClosedJob(t *testing.T) {
	id := uuid.New()
	jobs := &mockJobRepo{byID: map[uuid.UUID]job.Job{id: {ID: id, Status: job.StatusClosed}}}
	uc := newHRJobUsecase(jobs, nil, time.Now())

	_, err := uc.Publish(context.Background(), id)
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestHRJobClose_LostRace(t *testing.T) {
	id := uuid.New()
	jobs := &mockJobRepo{
		byID: map[uuid.UUID]job.Job{id: {ID: id, Status: job.StatusActive}},
		setStatusFn: func(context.Context, uuid.UUID, job.Status, job.Status) error {
			return repository.ErrJobStatusConflict
		},
	}
	uc := newHRJobUsecase(jobs, nil, time.Now())

	_, err := uc.Close(context.Background(), id)
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState on lost race, got %v", err)
	}
}

func TestHRJobUpdate_ClosedJobRejected(t *testing.T) {
	now := time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)
	id := uuid.New()
	jobs := &mockJobRepo{byID: map[uuid.UUID]job.Job{id: {ID: id, Status: job.StatusClosed}}}
	uc := newHRJobUsecase(jobs, nil, now)

	_, err := uc.Update(context.Background(), id, validJobInput(now))
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestHRJobList_AttachesCounts(t *testing.T) {
	id := uuid.New()
	jobs := &mockJobRepo{
		listed: []job.Job{{ID: id, Status: job.StatusActive}},
		counts: map[uuid.UUID]repository.JobCounts{id: {Applications: 4, Referrals: 2}},
	}
	uc := newHRJobUsecase(jobs, nil, time.Now())

	items, err := uc.List(context.Background(), []string{"active"}, 20, 0)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(items) != 1 || items[0].Applications != 4 || items[0].Referrals != 2 {
		t.Fatalf("counts misattached: %+v", items)
	}
}

func TestHRJobList_NoFilterListsAll(t *testing.T) {
	draft, active, closed := uuid.New(), uuid.New(), uuid.New()
	jobs := &mockJobRepo{
		listed: []job.Job{
			{ID: draft, Status: job.StatusDraft},
			{ID: active, Status: job.StatusActive},
			{ID: closed, Status: job.StatusClosed},
		},
	}
	uc := newHRJobUsecase(jobs, nil, time.Now())

	items, err := uc.List(context.Background(), nil, 20, 0)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected all 3 jobs without a filter, got %d", len(items))
	}
	if len(jobs.listFilters) != 1 || len(jobs.listFilters[0]) != 0 {
		t.Fatalf("expected an empty status filter to reach the repository, got %v", jobs.listFilters)
	}
}

func TestHRJobList_UnknownStatus(t *testing.T) {
	uc := newHRJobUsecase(&mockJobRepo{}, nil, time.Now())

	_, err := uc.List(context.Background(), []string{"archived"}, 20, 0)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
