package service

import (
	"context"

	"evtrips/internal/domain"
	"evtrips/internal/redis"
	"evtrips/internal/repository"
)

// StatsService serves the statistics read path with a Redis cache in front
// of the aggregate query.
type StatsService struct {
	statsRepo repository.StatsRepository
	cache     *redis.StatsCache
}

// NewStatsService creates a new StatsService. The cache may be nil.
func NewStatsService(statsRepo repository.StatsRepository, cache *redis.StatsCache) *StatsService {
	return &StatsService{statsRepo: statsRepo, cache: cache}
}

// GetStats returns entity counts and fleet-wide figures.
func (s *StatsService) GetStats(ctx context.Context) (*domain.Stats, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx); err == nil && cached != nil {
			return cached, nil
		}
		// Cache errors fall through to the database.
	}

	stats, err := s.statsRepo.Collect(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, stats)
	}
	return stats, nil
}
