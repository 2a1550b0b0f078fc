package repository

import (
	"context"

	"evtrips/internal/domain"
)

// VehicleModelRepository defines the persistence operations for vehicle models.
type VehicleModelRepository interface {
	// Create persists a new model and fills its ID and timestamps.
	// Returns ErrDuplicate if (manufacturer_id, name) is already taken.
	Create(ctx context.Context, m *domain.VehicleModel) error

	// GetByNaturalKey retrieves a model by (manufacturer_id, name).
	GetByNaturalKey(ctx context.Context, manufacturerID int64, name string) (*domain.VehicleModel, error)

	// GetByID retrieves a model by ID.
	GetByID(ctx context.Context, id int64) (*domain.VehicleModel, error)

	// UpdateAttrs overwrites body type and segment on an existing model.
	UpdateAttrs(ctx context.Context, id int64, bodyType domain.BodyType, segment domain.Segment) error

	// CountByManufacturer counts models referencing a manufacturer.
	CountByManufacturer(ctx context.Context, manufacturerID int64) (int64, error)

	// Delete removes a model by ID.
	Delete(ctx context.Context, id int64) error
}
