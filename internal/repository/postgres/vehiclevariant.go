package postgres

import (
	"context"
	"database/sql"
	"errors"

	"evtrips/internal/domain"
	"evtrips/internal/repository"
)

// VehicleVariantRepository is a PostgreSQL implementation of
// repository.VehicleVariantRepository.
type VehicleVariantRepository struct {
	q Querier
}

// NewVehicleVariantRepository creates a new PostgreSQL vehicle variant
// repository.
func NewVehicleVariantRepository(db *sql.DB) *VehicleVariantRepository {
	return &VehicleVariantRepository{q: db}
}

// NewVehicleVariantRepositoryWithTx creates a vehicle variant repository
// using a transaction.
func NewVehicleVariantRepositoryWithTx(tx *sql.Tx) *VehicleVariantRepository {
	return &VehicleVariantRepository{q: tx}
}

// Create persists a new vehicle variant.
func (r *VehicleVariantRepository) Create(ctx context.Context, v *domain.VehicleVariant) error {
	query := `
		INSERT INTO vehicle_variants (model_id, battery_kwh, range_km, charging_type, price_eur)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.q.QueryRowContext(ctx, query,
		v.ModelID,
		v.BatteryKwh,
		v.RangeKm,
		v.ChargingType,
		v.PriceEur,
	).Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt)

	return mapInsertError(err)
}

// GetByNaturalKey retrieves a variant by (model_id, battery_kwh, range_km,
// charging_type). Price is not part of the key.
func (r *VehicleVariantRepository) GetByNaturalKey(ctx context.Context, modelID int64, batteryKwh, rangeKm int, chargingType domain.ChargingType) (*domain.VehicleVariant, error) {
	query := `
		SELECT id, model_id, battery_kwh, range_km, charging_type, price_eur, created_at, updated_at
		FROM vehicle_variants
		WHERE model_id = $1 AND battery_kwh = $2 AND range_km = $3 AND charging_type = $4
	`

	return r.scanOne(r.q.QueryRowContext(ctx, query, modelID, batteryKwh, rangeKm, chargingType))
}

// GetByID retrieves a variant by ID.
func (r *VehicleVariantRepository) GetByID(ctx context.Context, id int64) (*domain.VehicleVariant, error) {
	query := `
		SELECT id, model_id, battery_kwh, range_km, charging_type, price_eur, created_at, updated_at
		FROM vehicle_variants WHERE id = $1
	`

	return r.scanOne(r.q.QueryRowContext(ctx, query, id))
}

// UpdatePrice overwrites the price of an existing variant.
func (r *VehicleVariantRepository) UpdatePrice(ctx context.Context, id int64, priceEur float64) error {
	query := `
		UPDATE vehicle_variants
		SET price_eur = $1, updated_at = NOW()
		WHERE id = $2
	`

	result, err := r.q.ExecContext(ctx, query, priceEur, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// CountByModel counts variants referencing a model.
func (r *VehicleVariantRepository) CountByModel(ctx context.Context, modelID int64) (int64, error) {
	query := `SELECT COUNT(*) FROM vehicle_variants WHERE model_id = $1`

	var count int64
	if err := r.q.QueryRowContext(ctx, query, modelID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// Delete removes a variant by ID.
func (r *VehicleVariantRepository) Delete(ctx context.Context, id int64) error {
	return execDelete(ctx, r.q, `DELETE FROM vehicle_variants WHERE id = $1`, id)
}

func (r *VehicleVariantRepository) scanOne(row *sql.Row) (*domain.VehicleVariant, error) {
	var v domain.VehicleVariant
	err := row.Scan(
		&v.ID,
		&v.ModelID,
		&v.BatteryKwh,
		&v.RangeKm,
		&v.ChargingType,
		&v.PriceEur,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

// Ensure VehicleVariantRepository implements
// repository.VehicleVariantRepository.
var _ repository.VehicleVariantRepository = (*VehicleVariantRepository)(nil)
