package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"evtrips/internal/domain"
)

// StatsCache caches the statistics aggregate in Redis. Writes invalidate
// it, so the TTL only bounds staleness across processes.
type StatsCache struct {
	client *redis.Client
}

// NewStatsCache creates a new StatsCache.
func NewStatsCache(client *redis.Client) *StatsCache {
	return &StatsCache{client: client}
}

const (
	statsCacheKey = "cache:stats"
	statsCacheTTL = 30 * time.Second
)

// Get retrieves cached statistics. Returns nil, nil on a cache miss.
func (s *StatsCache) Get(ctx context.Context) (*domain.Stats, error) {
	data, err := s.client.Get(ctx, statsCacheKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var stats domain.Stats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Set stores statistics in the cache.
func (s *StatsCache) Set(ctx context.Context, stats *domain.Stats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, statsCacheKey, data, statsCacheTTL).Err()
}

// Invalidate drops the cached statistics.
func (s *StatsCache) Invalidate(ctx context.Context) error {
	return s.client.Del(ctx, statsCacheKey).Err()
}
