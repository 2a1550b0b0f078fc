package tests

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"evtrips/internal/domain"
	"evtrips/internal/service"
)

// MockStatsRepository is a mock implementation of StatsRepository.
type MockStatsRepository struct {
	Stats *domain.Stats

	// Counters for verification
	CollectCallCount int32

	// Error injection
	CollectError error
}

func (m *MockStatsRepository) Collect(ctx context.Context) (*domain.Stats, error) {
	atomic.AddInt32(&m.CollectCallCount, 1)
	if m.CollectError != nil {
		return nil, m.CollectError
	}
	copy := *m.Stats
	return &copy, nil
}

func TestGetStats(t *testing.T) {
	t.Parallel()

	repo := &MockStatsRepository{
		Stats: &domain.Stats{
			Manufacturers:   1,
			Models:          1,
			Variants:        1,
			Locations:       2,
			Trips:           1,
			TotalDistanceKm: 584,
			AvgCO2GPerKm:    12.5,
		},
	}
	svc := service.NewStatsService(repo, nil)

	stats, err := svc.GetStats(context.Background())
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats.Trips != 1 || stats.Locations != 2 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if got := atomic.LoadInt32(&repo.CollectCallCount); got != 1 {
		t.Errorf("expected 1 collect call, got %d", got)
	}
}

func TestGetStatsPropagatesErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("query timeout")
	repo := &MockStatsRepository{CollectError: boom}
	svc := service.NewStatsService(repo, nil)

	_, err := svc.GetStats(context.Background())
	if !errors.Is(err, boom) {
		t.Errorf("expected %v, got %v", boom, err)
	}
}
