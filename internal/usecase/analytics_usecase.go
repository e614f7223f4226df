package usecase

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"talent-hub/internal/repository"
)

// AnalyticsOverview is the HR dashboard summary.
type AnalyticsOverview struct {
	PendingRequests      int            `json:"pending_requests"`
	ActiveJobs           int            `json:"active_jobs"`
	ApplicationsByStatus map[string]int `json:"applications_by_status"`
	ReferralsByStatus    map[string]int `json:"referrals_by_status"`
	AverageMatch         float64        `json:"average_match_percentage"`
	GeneratedAt          time.Time      `json:"generated_at"`
}

type AnalyticsUsecase interface {
	Overview(ctx context.Context) (AnalyticsOverview, error)
}

type analyticsUsecase struct {
	analytics repository.AnalyticsRepository
	logger    *log.Logger
	now       func() time.Time
}

func NewAnalyticsUsecase(analytics repository.AnalyticsRepository, logger *log.Logger) AnalyticsUsecase {
	return &analyticsUsecase{analytics: analytics, logger: logger, now: time.Now}
}

// Overview gathers the dashboard counters concurrently. The first repository
// error wins; later ones are logged and dropped.
func (u *analyticsUsecase) Overview(ctx context.Context) (AnalyticsOverview, error) {
	out := AnalyticsOverview{
		ApplicationsByStatus: map[string]int{},
		ReferralsByStatus:    map[string]int{},
		GeneratedAt:          u.now().UTC(),
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		} else if u.logger != nil {
			u.logger.Printf("analytics: %v", err)
		}
		mu.Unlock()
	}

	wg.Add(5)
	go func() {
		defer wg.Done()
		n, err := u.analytics.PendingRequestCount(ctx)
		if err != nil {
			fail(fmt.Errorf("pending request count: %w", err))
			return
		}
		mu.Lock()
		out.PendingRequests = n
		mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		n, err := u.analytics.ActiveJobCount(ctx)
		if err != nil {
			fail(fmt.Errorf("active job count: %w", err))
			return
		}
		mu.Lock()
		out.ActiveJobs = n
		mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		counts, err := u.analytics.ApplicationCountsByStatus(ctx)
		if err != nil {
			fail(fmt.Errorf("application counts: %w", err))
			return
		}
		mu.Lock()
		for _, c := range counts {
			out.ApplicationsByStatus[c.Status] = c.Count
		}
		mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		counts, err := u.analytics.ReferralCountsByStatus(ctx)
		if err != nil {
			fail(fmt.Errorf("referral counts: %w", err))
			return
		}
		mu.Lock()
		for _, c := range counts {
			out.ReferralsByStatus[c.Status] = c.Count
		}
		mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		avg, err := u.analytics.AverageMatchPercentage(ctx)
		if err != nil {
			fail(fmt.Errorf("average match percentage: %w", err))
			return
		}
		mu.Lock()
		out.AverageMatch = avg
		mu.Unlock()
	}()
	wg.Wait()

	if firstErr != nil {
		return AnalyticsOverview{}, fmt.Errorf("%w: %v", ErrInternal, firstErr)
	}
	return out, nil
}
