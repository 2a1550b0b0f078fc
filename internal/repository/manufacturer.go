package repository

import (
	"context"

	"evtrips/internal/domain"
)

// ManufacturerRepository defines the persistence operations for manufacturers.
type ManufacturerRepository interface {
	// Create persists a new manufacturer and fills its ID and timestamps.
	// Returns ErrDuplicate if the name is already taken.
	Create(ctx context.Context, m *domain.Manufacturer) error

	// GetByName retrieves a manufacturer by exact, case-sensitive name.
	GetByName(ctx context.Context, name string) (*domain.Manufacturer, error)

	// GetByID retrieves a manufacturer by ID.
	GetByID(ctx context.Context, id int64) (*domain.Manufacturer, error)

	// Delete removes a manufacturer by ID.
	Delete(ctx context.Context, id int64) error
}
