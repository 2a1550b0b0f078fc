package repository

import (
	"context"
	"time"

	"evtrips/internal/domain"
)

// TripFilter narrows ListTrips results. Zero values mean "no constraint".
type TripFilter struct {
	Manufacturer    string
	OriginCity      string
	DestinationCity string
	From            time.Time
	To              time.Time
	Limit           int
}

// TripRepository defines the persistence operations for trips.
type TripRepository interface {
	// Create persists a new trip and fills its ID and timestamps.
	Create(ctx context.Context, t *domain.Trip) error

	// GetByID retrieves a trip by ID.
	GetByID(ctx context.Context, id int64) (*domain.Trip, error)

	// FindIdentical searches for a trip with the same identity tuple
	// (trip_date, variant, origin, destination, distance). Emissions
	// fields are not part of the tuple. Returns nil, nil when absent.
	FindIdentical(ctx context.Context, tripDate time.Time, variantID, originID, destinationID int64, distanceKm float64) (*domain.Trip, error)

	// List retrieves trips matching the filter, newest first.
	List(ctx context.Context, filter TripFilter) ([]*domain.Trip, error)

	// Update persists all scalar and foreign-key fields of a trip.
	Update(ctx context.Context, t *domain.Trip) error

	// Delete removes a trip by ID.
	Delete(ctx context.Context, id int64) error

	// CountByVariant counts trips referencing a vehicle variant.
	CountByVariant(ctx context.Context, variantID int64) (int64, error)

	// CountByLocation counts trips referencing a location as either
	// origin or destination.
	CountByLocation(ctx context.Context, locationID int64) (int64, error)
}

// StatsRepository aggregates entity counts for the statistics endpoint.
type StatsRepository interface {
	// Collect counts all entities and computes fleet-wide figures.
	Collect(ctx context.Context) (*domain.Stats, error)
}
