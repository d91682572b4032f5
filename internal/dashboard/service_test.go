package dashboard

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	loads      atomic.Int64
	statusErr  error
	upcomingAt time.Time
}

func (m *mockRepo) StatusCounts(ctx context.Context) ([]StatusCount, error) {
	m.loads.Add(1)
	if m.statusErr != nil {
		return nil, m.statusErr
	}
	return []StatusCount{{Status: "CONFIRMED", Count: 3}, {Status: "DRAFT", Count: 1}}, nil
}

func (m *mockRepo) MonthlyRevenue(ctx context.Context, since time.Time) ([]MonthRevenue, error) {
	return []MonthRevenue{{Month: "2026-08", Events: 3, Revenue: 4200}}, nil
}

func (m *mockRepo) Upcoming(ctx context.Context, from, to time.Time) ([]UpcomingEvent, error) {
	m.upcomingAt = from
	return []UpcomingEvent{{ID: 1, DocNumber: "EV-2608-0001", Name: "Launch Party"}}, nil
}

func (m *mockRepo) TopClients(ctx context.Context, since time.Time, limit int) ([]ClientRevenue, error) {
	return []ClientRevenue{{ClientID: 1, ClientName: "Acme Corp", Events: 3, Revenue: 4200}}, nil
}

func newTestCache(t *testing.T) (*Cache, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCache(client, time.Minute), client
}

func TestSummaryAggregates(t *testing.T) {
	cache, _ := newTestCache(t)
	repo := &mockRepo{}
	svc := NewService(repo, cache)

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.Len(t, summary.StatusCounts, 2)
	require.Len(t, summary.MonthlyRevenue, 1)
	assert.Equal(t, 4200.0, summary.MonthlyRevenue[0].Revenue)
	require.Len(t, summary.Upcoming, 1)
	assert.Equal(t, "EV-2608-0001", summary.Upcoming[0].DocNumber)
	assert.Len(t, summary.TopClients, 1)
}

func TestSummaryCachesUntilInvalidated(t *testing.T) {
	cache, _ := newTestCache(t)
	repo := &mockRepo{}
	svc := NewService(repo, cache)

	_, err := svc.Summary(context.Background())
	require.NoError(t, err)
	_, err = svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), repo.loads.Load(), "second read should hit the cache")

	require.NoError(t, svc.Invalidate(context.Background()))
	_, err = svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), repo.loads.Load(), "bump should force a reload")
}

func TestSummaryPropagatesRepoError(t *testing.T) {
	cache, _ := newTestCache(t)
	repo := &mockRepo{statusErr: errors.New("boom")}
	svc := NewService(repo, cache)

	_, err := svc.Summary(context.Background())
	require.Error(t, err)
}

func TestSummaryWithoutRedis(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo, NewCache(nil, 0))

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Len(t, summary.StatusCounts, 2)
}
