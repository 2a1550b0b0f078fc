package postgres

import (
	"context"
	"database/sql"
	"errors"

	"evtrips/internal/domain"
	"evtrips/internal/repository"
)

// LocationRepository is a PostgreSQL implementation of
// repository.LocationRepository.
type LocationRepository struct {
	q Querier
}

// NewLocationRepository creates a new PostgreSQL location repository.
func NewLocationRepository(db *sql.DB) *LocationRepository {
	return &LocationRepository{q: db}
}

// NewLocationRepositoryWithTx creates a location repository using a
// transaction.
func NewLocationRepositoryWithTx(tx *sql.Tx) *LocationRepository {
	return &LocationRepository{q: tx}
}

// Create persists a new location.
func (r *LocationRepository) Create(ctx context.Context, l *domain.Location) error {
	query := `
		INSERT INTO locations (city, country)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`

	err := r.q.QueryRowContext(ctx, query, l.City, l.Country).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
	return mapInsertError(err)
}

// GetByCityCountry retrieves a location by exact (city, country).
func (r *LocationRepository) GetByCityCountry(ctx context.Context, city, country string) (*domain.Location, error) {
	query := `
		SELECT id, city, country, created_at, updated_at
		FROM locations WHERE city = $1 AND country = $2
	`

	return r.scanOne(r.q.QueryRowContext(ctx, query, city, country))
}

// GetByID retrieves a location by ID.
func (r *LocationRepository) GetByID(ctx context.Context, id int64) (*domain.Location, error) {
	query := `
		SELECT id, city, country, created_at, updated_at
		FROM locations WHERE id = $1
	`

	return r.scanOne(r.q.QueryRowContext(ctx, query, id))
}

// Delete removes a location by ID.
func (r *LocationRepository) Delete(ctx context.Context, id int64) error {
	return execDelete(ctx, r.q, `DELETE FROM locations WHERE id = $1`, id)
}

func (r *LocationRepository) scanOne(row *sql.Row) (*domain.Location, error) {
	var l domain.Location
	err := row.Scan(&l.ID, &l.City, &l.Country, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &l, nil
}

// Ensure LocationRepository implements repository.LocationRepository.
var _ repository.LocationRepository = (*LocationRepository)(nil)
