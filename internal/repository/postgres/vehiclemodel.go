package postgres

import (
	"context"
	"database/sql"
	"errors"

	"evtrips/internal/domain"
	"evtrips/internal/repository"
)

// VehicleModelRepository is a PostgreSQL implementation of
// repository.VehicleModelRepository.
type VehicleModelRepository struct {
	q Querier
}

// NewVehicleModelRepository creates a new PostgreSQL vehicle model repository.
func NewVehicleModelRepository(db *sql.DB) *VehicleModelRepository {
	return &VehicleModelRepository{q: db}
}

// NewVehicleModelRepositoryWithTx creates a vehicle model repository using a
// transaction.
func NewVehicleModelRepositoryWithTx(tx *sql.Tx) *VehicleModelRepository {
	return &VehicleModelRepository{q: tx}
}

// Create persists a new vehicle model.
func (r *VehicleModelRepository) Create(ctx context.Context, m *domain.VehicleModel) error {
	query := `
		INSERT INTO vehicle_models (manufacturer_id, name, body_type, segment)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := r.q.QueryRowContext(ctx, query,
		m.ManufacturerID,
		m.Name,
		m.BodyType,
		m.Segment,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)

	return mapInsertError(err)
}

// GetByNaturalKey retrieves a model by (manufacturer_id, name).
func (r *VehicleModelRepository) GetByNaturalKey(ctx context.Context, manufacturerID int64, name string) (*domain.VehicleModel, error) {
	query := `
		SELECT id, manufacturer_id, name, body_type, segment, created_at, updated_at
		FROM vehicle_models WHERE manufacturer_id = $1 AND name = $2
	`

	return r.scanOne(r.q.QueryRowContext(ctx, query, manufacturerID, name))
}

// GetByID retrieves a model by ID.
func (r *VehicleModelRepository) GetByID(ctx context.Context, id int64) (*domain.VehicleModel, error) {
	query := `
		SELECT id, manufacturer_id, name, body_type, segment, created_at, updated_at
		FROM vehicle_models WHERE id = $1
	`

	return r.scanOne(r.q.QueryRowContext(ctx, query, id))
}

// UpdateAttrs overwrites body type and segment on an existing model.
func (r *VehicleModelRepository) UpdateAttrs(ctx context.Context, id int64, bodyType domain.BodyType, segment domain.Segment) error {
	query := `
		UPDATE vehicle_models
		SET body_type = $1, segment = $2, updated_at = NOW()
		WHERE id = $3
	`

	result, err := r.q.ExecContext(ctx, query, bodyType, segment, id)
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

// CountByManufacturer counts models referencing a manufacturer.
func (r *VehicleModelRepository) CountByManufacturer(ctx context.Context, manufacturerID int64) (int64, error) {
	query := `SELECT COUNT(*) FROM vehicle_models WHERE manufacturer_id = $1`

	var count int64
	if err := r.q.QueryRowContext(ctx, query, manufacturerID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// Delete removes a model by ID.
func (r *VehicleModelRepository) Delete(ctx context.Context, id int64) error {
	return execDelete(ctx, r.q, `DELETE FROM vehicle_models WHERE id = $1`, id)
}

func (r *VehicleModelRepository) scanOne(row *sql.Row) (*domain.VehicleModel, error) {
	var m domain.VehicleModel
	err := row.Scan(
		&m.ID,
		&m.ManufacturerID,
		&m.Name,
		&m.BodyType,
		&m.Segment,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// Ensure VehicleModelRepository implements repository.VehicleModelRepository.
var _ repository.VehicleModelRepository = (*VehicleModelRepository)(nil)
