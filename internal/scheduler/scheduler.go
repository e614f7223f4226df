// Package scheduler runs background sweeps on a cron cadence.
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"talent-hub/internal/repository"
)

// Hourly sweep unless DEADLINE_SWEEP_SPEC overrides it.
const defaultSweepSpec = "@hourly"

const sweepTimeout = 30 * time.Second

// Scheduler closes postings whose deadline has passed so they stop accepting
// applications and referrals even if nobody touches them through the API.
type Scheduler struct {
	cron   *cron.Cron
	jobs   repository.JobRepository
	logger *log.Logger
}

func New(jobs repository.JobRepository, logger *log.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		jobs:   jobs,
		logger: logger,
	}
}

// Start registers the deadline sweep and begins the cron loop. An empty spec
// falls back to the hourly default.
func (s *Scheduler) Start(spec string) error {
	if spec == "" {
		spec = defaultSweepSpec
	}
	if _, err := s.cron.AddFunc(spec, s.sweep); err != nil {
		return err
	}
	s.cron.Start()
	s.logf("scheduler: deadline sweep scheduled (%s)", spec)
	return nil
}

// Stop halts the cron loop and waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	closed, err := s.jobs.CloseExpired(ctx, time.Now().UTC())
	if err != nil {
		s.logf("scheduler: deadline sweep failed: %v", err)
		return
	}
	if closed > 0 {
		s.logf("scheduler: closed %d expired postings", closed)
	}
}

func (s *Scheduler) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}
