package postgres

import (
	"context"
	"database/sql"

	"evtrips/internal/repository"
)

// Store is the PostgreSQL-backed persistence handle. It hands out
// pool-scoped repositories for reads and wraps multi-step write sequences
// in a single transaction.
type Store struct {
	db *sql.DB
}

// NewStore creates a new Store over the shared connection pool.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Repos returns repositories bound to the shared connection pool.
func (s *Store) Repos() repository.Repos {
	return repository.Repos{
		Manufacturers: NewManufacturerRepository(s.db),
		Models:        NewVehicleModelRepository(s.db),
		Variants:      NewVehicleVariantRepository(s.db),
		Locations:     NewLocationRepository(s.db),
		Trips:         NewTripRepository(s.db),
	}
}

// RunInTx executes fn with transaction-scoped repositories at repeatable-read
// isolation, so reference counts and the deletes that depend on them stay
// consistent against concurrent writers.
func (s *Store) RunInTx(ctx context.Context, fn func(repository.Repos) error) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		return err
	}

	repos := repository.Repos{
		Manufacturers: NewManufacturerRepositoryWithTx(tx),
		Models:        NewVehicleModelRepositoryWithTx(tx),
		Variants:      NewVehicleVariantRepositoryWithTx(tx),
		Locations:     NewLocationRepositoryWithTx(tx),
		Trips:         NewTripRepositoryWithTx(tx),
	}

	if err := fn(repos); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// Ensure Store implements repository.Store.
var _ repository.Store = (*Store)(nil)
