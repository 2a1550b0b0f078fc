package tests

import (
	"context"
	"errors"
	"testing"

	"evtrips/internal/repository"
)

func TestDeleteTripCascadesFullChain(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	ctx := context.Background()

	trip, _, err := env.svc.CreateTrip(ctx, baseCreateRequest())
	if err != nil {
		t.Fatalf("CreateTrip failed: %v", err)
	}

	if err := env.svc.DeleteTrip(ctx, trip.ID); err != nil {
		t.Fatalf("DeleteTrip failed: %v", err)
	}

	// Nothing referenced the chain anymore, so every level goes.
	if got := env.trips.Count(); got != 0 {
		t.Errorf("expected 0 trips, got %d", got)
	}
	if got := env.variants.Count(); got != 0 {
		t.Errorf("expected 0 variants, got %d", got)
	}
	if got := env.models.Count(); got != 0 {
		t.Errorf("expected 0 models, got %d", got)
	}
	if got := env.manufacturers.Count(); got != 0 {
		t.Errorf("expected 0 manufacturers, got %d", got)
	}
	if got := env.locations.Count(); got != 0 {
		t.Errorf("expected 0 locations, got %d", got)
	}
}

func TestDeleteTripPreservesSharedChain(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	ctx := context.Background()

	first, _, err := env.svc.CreateTrip(ctx, baseCreateRequest())
	if err != nil {
		t.Fatalf("first CreateTrip failed: %v", err)
	}

	req := baseCreateRequest()
	req.TripDate = "11/02/2025"
	if _, _, err := env.svc.CreateTrip(ctx, req); err != nil {
		t.Fatalf("second CreateTrip failed: %v", err)
	}

	if err := env.svc.DeleteTrip(ctx, first.ID); err != nil {
		t.Fatalf("DeleteTrip failed: %v", err)
	}

	// The second trip still references everything.
	if got := env.trips.Count(); got != 1 {
		t.Errorf("expected 1 trip, got %d", got)
	}
	if got := env.variants.Count(); got != 1 {
		t.Errorf("expected variant to survive, got %d", got)
	}
	if got := env.manufacturers.Count(); got != 1 {
		t.Errorf("expected manufacturer to survive, got %d", got)
	}
	if got := env.locations.Count(); got != 2 {
		t.Errorf("expected both locations to survive, got %d", got)
	}
}

func TestDeleteTripRemovesOnlyUnreferencedLocations(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	ctx := context.Background()

	first, _, err := env.svc.CreateTrip(ctx, baseCreateRequest())
	if err != nil {
		t.Fatalf("first CreateTrip failed: %v", err)
	}

	// Second trip reuses Berlin as origin; Munich is only on the first.
	req := baseCreateRequest()
	req.OriginCity = "Berlin"
	req.DestinationCity = "Hamburg"
	if _, _, err := env.svc.CreateTrip(ctx, req); err != nil {
		t.Fatalf("second CreateTrip failed: %v", err)
	}

	if err := env.svc.DeleteTrip(ctx, first.ID); err != nil {
		t.Fatalf("DeleteTrip failed: %v", err)
	}

	if env.locations.HasLocation("Munich", "Germany") {
		t.Error("expected Munich to be removed")
	}
	// Berlin is still the second trip's origin. Origin and destination
	// references count against the same pool.
	if !env.locations.HasLocation("Berlin", "Germany") {
		t.Error("expected Berlin to survive as a shared location")
	}
	if !env.locations.HasLocation("Hamburg", "Germany") {
		t.Error("expected Hamburg to survive")
	}
}

func TestDeleteTripPreservesSiblingVariants(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	ctx := context.Background()

	first, _, err := env.svc.CreateTrip(ctx, baseCreateRequest())
	if err != nil {
		t.Fatalf("first CreateTrip failed: %v", err)
	}

	// A sibling variant of the same model keeps the model and the
	// manufacturer alive after the first variant is cleaned up.
	req := baseCreateRequest()
	req.BatteryKwh = 100
	second, _, err := env.svc.CreateTrip(ctx, req)
	if err != nil {
		t.Fatalf("second CreateTrip failed: %v", err)
	}

	if err := env.svc.DeleteTrip(ctx, first.ID); err != nil {
		t.Fatalf("DeleteTrip failed: %v", err)
	}

	if env.variants.GetVariant(first.VehicleVariantID) != nil {
		t.Error("expected the orphaned variant to be removed")
	}
	if env.variants.GetVariant(second.VehicleVariantID) == nil {
		t.Error("expected the sibling variant to survive")
	}
	if got := env.models.Count(); got != 1 {
		t.Errorf("expected model to survive, got %d", got)
	}
	if got := env.manufacturers.Count(); got != 1 {
		t.Errorf("expected manufacturer to survive, got %d", got)
	}
}

func TestDeleteTripSameOriginAndDestination(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	ctx := context.Background()

	req := baseCreateRequest()
	req.DestinationCity = "Munich"
	trip, _, err := env.svc.CreateTrip(ctx, req)
	if err != nil {
		t.Fatalf("CreateTrip failed: %v", err)
	}

	// Both sides point at the same row; the delete must not trip over
	// removing it twice.
	if err := env.svc.DeleteTrip(ctx, trip.ID); err != nil {
		t.Fatalf("DeleteTrip failed: %v", err)
	}
	if got := env.locations.Count(); got != 0 {
		t.Errorf("expected 0 locations, got %d", got)
	}
}

func TestDeleteTripNotFound(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	ctx := context.Background()

	if err := env.svc.DeleteTrip(ctx, 42); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	// A second delete of the same ID is NotFound, not a no-op.
	trip, _, err := env.svc.CreateTrip(ctx, baseCreateRequest())
	if err != nil {
		t.Fatalf("CreateTrip failed: %v", err)
	}
	if err := env.svc.DeleteTrip(ctx, trip.ID); err != nil {
		t.Fatalf("first DeleteTrip failed: %v", err)
	}
	if err := env.svc.DeleteTrip(ctx, trip.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}
