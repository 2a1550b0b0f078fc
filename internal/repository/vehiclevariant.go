package repository

import (
	"context"

	"evtrips/internal/domain"
)

// VehicleVariantRepository defines the persistence operations for vehicle
// variants.
type VehicleVariantRepository interface {
	// Create persists a new variant and fills its ID and timestamps.
	// Returns ErrDuplicate if (model_id, battery_kwh, range_km,
	// charging_type) is already taken.
	Create(ctx context.Context, v *domain.VehicleVariant) error

	// GetByNaturalKey retrieves a variant by its identity tuple. Price is
	// not part of the key.
	GetByNaturalKey(ctx context.Context, modelID int64, batteryKwh, rangeKm int, chargingType domain.ChargingType) (*domain.VehicleVariant, error)

	// GetByID retrieves a variant by ID.
	GetByID(ctx context.Context, id int64) (*domain.VehicleVariant, error)

	// UpdatePrice overwrites the price of an existing variant.
	UpdatePrice(ctx context.Context, id int64, priceEur float64) error

	// CountByModel counts variants referencing a model.
	CountByModel(ctx context.Context, modelID int64) (int64, error)

	// Delete removes a variant by ID.
	Delete(ctx context.Context, id int64) error
}
