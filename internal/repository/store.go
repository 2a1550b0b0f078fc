package repository

import "context"

// Repos bundles the per-entity repositories the trip write path operates on.
// Inside a transaction all members are scoped to that transaction.
type Repos struct {
	Manufacturers ManufacturerRepository
	Models        VehicleModelRepository
	Variants      VehicleVariantRepository
	Locations     LocationRepository
	Trips         TripRepository
}

// Store is the injected persistence handle. Its lifecycle is owned by the
// process entry point, not by the services that use it.
type Store interface {
	// Repos returns repositories bound to the shared connection pool.
	Repos() Repos

	// RunInTx executes fn with transaction-scoped repositories. The
	// transaction commits when fn returns nil and rolls back otherwise,
	// leaving all entities as they were before the call.
	RunInTx(ctx context.Context, fn func(Repos) error) error
}
