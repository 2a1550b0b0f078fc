package postgres

import (
	"context"
	"database/sql"
	"errors"

	"evtrips/internal/domain"
	"evtrips/internal/repository"
)

// ManufacturerRepository is a PostgreSQL implementation of
// repository.ManufacturerRepository.
type ManufacturerRepository struct {
	q Querier
}

// NewManufacturerRepository creates a new PostgreSQL manufacturer repository.
func NewManufacturerRepository(db *sql.DB) *ManufacturerRepository {
	return &ManufacturerRepository{q: db}
}

// NewManufacturerRepositoryWithTx creates a manufacturer repository using a
// transaction.
func NewManufacturerRepositoryWithTx(tx *sql.Tx) *ManufacturerRepository {
	return &ManufacturerRepository{q: tx}
}

// Create persists a new manufacturer.
func (r *ManufacturerRepository) Create(ctx context.Context, m *domain.Manufacturer) error {
	query := `
		INSERT INTO manufacturers (name)
		VALUES ($1)
		RETURNING id, created_at, updated_at
	`

	err := r.q.QueryRowContext(ctx, query, m.Name).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	return mapInsertError(err)
}

// GetByName retrieves a manufacturer by exact name.
func (r *ManufacturerRepository) GetByName(ctx context.Context, name string) (*domain.Manufacturer, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM manufacturers WHERE name = $1
	`

	return r.scanOne(r.q.QueryRowContext(ctx, query, name))
}

// GetByID retrieves a manufacturer by ID.
func (r *ManufacturerRepository) GetByID(ctx context.Context, id int64) (*domain.Manufacturer, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM manufacturers WHERE id = $1
	`

	return r.scanOne(r.q.QueryRowContext(ctx, query, id))
}

// Delete removes a manufacturer by ID.
func (r *ManufacturerRepository) Delete(ctx context.Context, id int64) error {
	return execDelete(ctx, r.q, `DELETE FROM manufacturers WHERE id = $1`, id)
}

func (r *ManufacturerRepository) scanOne(row *sql.Row) (*domain.Manufacturer, error) {
	var m domain.Manufacturer
	err := row.Scan(&m.ID, &m.Name, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// Ensure ManufacturerRepository implements repository.ManufacturerRepository.
var _ repository.ManufacturerRepository = (*ManufacturerRepository)(nil)
