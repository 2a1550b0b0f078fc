package postgres

import (
	"context"
	"database/sql"

	"evtrips/internal/domain"
	"evtrips/internal/repository"
)

// StatsRepository is a PostgreSQL implementation of repository.StatsRepository.
type StatsRepository struct {
	q Querier
}

// NewStatsRepository creates a new PostgreSQL stats repository.
func NewStatsRepository(db *sql.DB) *StatsRepository {
	return &StatsRepository{q: db}
}

// Collect counts all entities and computes fleet-wide figures in one round
// trip.
func (r *StatsRepository) Collect(ctx context.Context) (*domain.Stats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM manufacturers),
			(SELECT COUNT(*) FROM vehicle_models),
			(SELECT COUNT(*) FROM vehicle_variants),
			(SELECT COUNT(*) FROM locations),
			(SELECT COUNT(*) FROM trips),
			COALESCE((SELECT SUM(distance_km) FROM trips), 0),
			COALESCE((SELECT AVG(co2_g_per_km) FROM trips), 0)
	`

	var stats domain.Stats
	err := r.q.QueryRowContext(ctx, query).Scan(
		&stats.Manufacturers,
		&stats.Models,
		&stats.Variants,
		&stats.Locations,
		&stats.Trips,
		&stats.TotalDistanceKm,
		&stats.AvgCO2GPerKm,
	)
	if err != nil {
		return nil, err
	}

	return &stats, nil
}

// Ensure StatsRepository implements repository.StatsRepository.
var _ repository.StatsRepository = (*StatsRepository)(nil)
