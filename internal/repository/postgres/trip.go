package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"evtrips/internal/domain"
	"evtrips/internal/repository"
)

// TripRepository is a PostgreSQL implementation of repository.TripRepository.
type TripRepository struct {
	q Querier
}

// NewTripRepository creates a new PostgreSQL trip repository.
func NewTripRepository(db *sql.DB) *TripRepository {
	return &TripRepository{q: db}
}

// NewTripRepositoryWithTx creates a trip repository using a transaction.
func NewTripRepositoryWithTx(tx *sql.Tx) *TripRepository {
	return &TripRepository{q: tx}
}

const tripColumns = `id, trip_date, vehicle_variant_id, origin_id, destination_id,
	distance_km, co2_g_per_km, grid_intensity_gco2_per_kwh, created_at, updated_at`

// Create persists a new trip.
func (r *TripRepository) Create(ctx context.Context, t *domain.Trip) error {
	query := `
		INSERT INTO trips (trip_date, vehicle_variant_id, origin_id, destination_id,
			distance_km, co2_g_per_km, grid_intensity_gco2_per_kwh)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := r.q.QueryRowContext(ctx, query,
		t.TripDate,
		t.VehicleVariantID,
		t.OriginID,
		t.DestinationID,
		t.DistanceKm,
		t.CO2GPerKm,
		t.GridIntensityGCO2PerKwh,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)

	return mapInsertError(err)
}

// GetByID retrieves a trip by ID.
func (r *TripRepository) GetByID(ctx context.Context, id int64) (*domain.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE id = $1`

	return r.scanOne(r.q.QueryRowContext(ctx, query, id))
}

// FindIdentical searches for a trip matching the 5-field identity tuple.
// Emissions fields are deliberately excluded from the match.
func (r *TripRepository) FindIdentical(ctx context.Context, tripDate time.Time, variantID, originID, destinationID int64, distanceKm float64) (*domain.Trip, error) {
	query := `SELECT ` + tripColumns + `
		FROM trips
		WHERE trip_date = $1 AND vehicle_variant_id = $2 AND origin_id = $3
			AND destination_id = $4 AND distance_km = $5
		LIMIT 1`

	trip, err := r.scanOne(r.q.QueryRowContext(ctx, query, tripDate, variantID, originID, destinationID, distanceKm))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return trip, nil
}

// List retrieves trips matching the filter, newest first.
func (r *TripRepository) List(ctx context.Context, filter repository.TripFilter) ([]*domain.Trip, error) {
	query := `SELECT t.id, t.trip_date, t.vehicle_variant_id, t.origin_id, t.destination_id,
		t.distance_km, t.co2_g_per_km, t.grid_intensity_gco2_per_kwh, t.created_at, t.updated_at
		FROM trips t`

	var conditions []string
	var args []any

	if filter.Manufacturer != "" {
		query += `
		JOIN vehicle_variants vv ON vv.id = t.vehicle_variant_id
		JOIN vehicle_models vm ON vm.id = vv.model_id
		JOIN manufacturers mf ON mf.id = vm.manufacturer_id`
		args = append(args, filter.Manufacturer)
		conditions = append(conditions, fmt.Sprintf("mf.name = $%d", len(args)))
	}
	if filter.OriginCity != "" {
		args = append(args, filter.OriginCity)
		conditions = append(conditions, fmt.Sprintf("t.origin_id IN (SELECT id FROM locations WHERE city = $%d)", len(args)))
	}
	if filter.DestinationCity != "" {
		args = append(args, filter.DestinationCity)
		conditions = append(conditions, fmt.Sprintf("t.destination_id IN (SELECT id FROM locations WHERE city = $%d)", len(args)))
	}
	if !filter.From.IsZero() {
		args = append(args, filter.From)
		conditions = append(conditions, fmt.Sprintf("t.trip_date >= $%d", len(args)))
	}
	if !filter.To.IsZero() {
		args = append(args, filter.To)
		conditions = append(conditions, fmt.Sprintf("t.trip_date <= $%d", len(args)))
	}

	if len(conditions) > 0 {
		query += "\n\t\tWHERE " + strings.Join(conditions, " AND ")
	}

	query += "\n\t\tORDER BY t.trip_date DESC, t.id DESC"

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []*domain.Trip
	for rows.Next() {
		var t domain.Trip
		if err := rows.Scan(
			&t.ID,
			&t.TripDate,
			&t.VehicleVariantID,
			&t.OriginID,
			&t.DestinationID,
			&t.DistanceKm,
			&t.CO2GPerKm,
			&t.GridIntensityGCO2PerKwh,
			&t.CreatedAt,
			&t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		trips = append(trips, &t)
	}

	return trips, rows.Err()
}

// Update persists all scalar and foreign-key fields of a trip.
func (r *TripRepository) Update(ctx context.Context, t *domain.Trip) error {
	query := `
		UPDATE trips
		SET trip_date = $1, vehicle_variant_id = $2, origin_id = $3, destination_id = $4,
			distance_km = $5, co2_g_per_km = $6, grid_intensity_gco2_per_kwh = $7,
			updated_at = NOW()
		WHERE id = $8
		RETURNING updated_at
	`

	err := r.q.QueryRowContext(ctx, query,
		t.TripDate,
		t.VehicleVariantID,
		t.OriginID,
		t.DestinationID,
		t.DistanceKm,
		t.CO2GPerKm,
		t.GridIntensityGCO2PerKwh,
		t.ID,
	).Scan(&t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return repository.ErrNotFound
		}
		return err
	}

	return nil
}

// Delete removes a trip by ID.
func (r *TripRepository) Delete(ctx context.Context, id int64) error {
	return execDelete(ctx, r.q, `DELETE FROM trips WHERE id = $1`, id)
}

// CountByVariant counts trips referencing a vehicle variant.
func (r *TripRepository) CountByVariant(ctx context.Context, variantID int64) (int64, error) {
	query := `SELECT COUNT(*) FROM trips WHERE vehicle_variant_id = $1`

	var count int64
	if err := r.q.QueryRowContext(ctx, query, variantID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// CountByLocation counts trips referencing a location from either side.
func (r *TripRepository) CountByLocation(ctx context.Context, locationID int64) (int64, error) {
	query := `SELECT COUNT(*) FROM trips WHERE origin_id = $1 OR destination_id = $1`

	var count int64
	if err := r.q.QueryRowContext(ctx, query, locationID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *TripRepository) scanOne(row *sql.Row) (*domain.Trip, error) {
	var t domain.Trip
	err := row.Scan(
		&t.ID,
		&t.TripDate,
		&t.VehicleVariantID,
		&t.OriginID,
		&t.DestinationID,
		&t.DistanceKm,
		&t.CO2GPerKm,
		&t.GridIntensityGCO2PerKwh,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Ensure TripRepository implements repository.TripRepository.
var _ repository.TripRepository = (*TripRepository)(nil)
