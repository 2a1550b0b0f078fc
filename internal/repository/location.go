package repository

import (
	"context"

	"evtrips/internal/domain"
)

// LocationRepository defines the persistence operations for locations.
type LocationRepository interface {
	// Create persists a new location and fills its ID and timestamps.
	// Returns ErrDuplicate if (city, country) is already taken.
	Create(ctx context.Context, l *domain.Location) error

	// GetByCityCountry retrieves a location by exact (city, country).
	// Matching is case-sensitive with no whitespace normalization.
	GetByCityCountry(ctx context.Context, city, country string) (*domain.Location, error)

	// GetByID retrieves a location by ID.
	GetByID(ctx context.Context, id int64) (*domain.Location, error)

	// Delete removes a location by ID.
	Delete(ctx context.Context, id int64) error
}
