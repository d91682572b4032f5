package dashboard

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	revenueMonths  = 12
	upcomingWindow = 7 * 24 * time.Hour
	topClientLimit = 5
)

// Service assembles the dashboard summary. The four aggregates are
// independent queries, so they run concurrently; the whole result is
// cached under the current cache version.
type Service struct {
	repo  Repository
	cache *Cache
	now   func() time.Time
}

func NewService(repo Repository, cache *Cache) *Service {
	return &Service{repo: repo, cache: cache, now: time.Now}
}

func (s *Service) Summary(ctx context.Context) (Summary, error) {
	key, err := s.cache.BuildKey(ctx, "dashboard", "summary")
	if err != nil {
		return Summary{}, err
	}

	var summary Summary
	err = s.cache.FetchJSON(ctx, key, &summary, func(ctx context.Context) (interface{}, error) {
		return s.load(ctx)
	})
	return summary, err
}

// Invalidate bumps the cache version; event writes call this.
func (s *Service) Invalidate(ctx context.Context) error {
	return s.cache.Bump(ctx)
}

func (s *Service) load(ctx context.Context) (Summary, error) {
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	since := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -(revenueMonths - 1), 0)

	summary := Summary{GeneratedAt: now}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		counts, err := s.repo.StatusCounts(ctx)
		summary.StatusCounts = counts
		return err
	})
	g.Go(func() error {
		months, err := s.repo.MonthlyRevenue(ctx, since)
		summary.MonthlyRevenue = months
		return err
	})
	g.Go(func() error {
		events, err := s.repo.Upcoming(ctx, today, today.Add(upcomingWindow))
		summary.Upcoming = events
		return err
	})
	g.Go(func() error {
		top, err := s.repo.TopClients(ctx, since, topClientLimit)
		summary.TopClients = top
		return err
	})
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}
	return summary, nil
}
