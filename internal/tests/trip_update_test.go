package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"evtrips/internal/repository"
	"evtrips/internal/service"
)

func TestUpdateTripScalarPatch(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	ctx := context.Background()

	trip, _, err := env.svc.CreateTrip(ctx, baseCreateRequest())
	if err != nil {
		t.Fatalf("CreateTrip failed: %v", err)
	}

	updated, err := env.svc.UpdateTrip(ctx, trip.ID, service.UpdateTripRequest{
		DistanceKm: floatPtr(600),
		CO2GPerKm:  floatPtr(14.2),
	})
	if err != nil {
		t.Fatalf("UpdateTrip failed: %v", err)
	}

	if updated.DistanceKm != 600 {
		t.Errorf("expected distance 600, got %v", updated.DistanceKm)
	}
	if updated.CO2GPerKm != 14.2 {
		t.Errorf("expected co2 14.2, got %v", updated.CO2GPerKm)
	}
	// Untouched fields survive the patch.
	if updated.GridIntensityGCO2PerKwh != 380 {
		t.Errorf("expected grid intensity 380, got %v", updated.GridIntensityGCO2PerKwh)
	}
	if updated.VehicleVariantID != trip.VehicleVariantID {
		t.Error("expected scalar patch to leave the variant untouched")
	}
}

func TestUpdateTripDatePatch(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	ctx := context.Background()

	trip, _, err := env.svc.CreateTrip(ctx, baseCreateRequest())
	if err != nil {
		t.Fatalf("CreateTrip failed: %v", err)
	}

	updated, err := env.svc.UpdateTrip(ctx, trip.ID, service.UpdateTripRequest{
		TripDate: strPtr("2025-03-01"),
	})
	if err != nil {
		t.Fatalf("UpdateTrip failed: %v", err)
	}

	want := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	if !updated.TripDate.Equal(want) {
		t.Errorf("expected trip date %v, got %v", want, updated.TripDate)
	}

	_, err = env.svc.UpdateTrip(ctx, trip.ID, service.UpdateTripRequest{
		TripDate: strPtr("not-a-date"),
	})
	if !errors.Is(err, service.ErrInvalidTripDate) {
		t.Errorf("expected ErrInvalidTripDate, got %v", err)
	}
}

func TestUpdateTripPriceOnlyKeepsVariant(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	ctx := context.Background()

	trip, _, err := env.svc.CreateTrip(ctx, baseCreateRequest())
	if err != nil {
		t.Fatalf("CreateTrip failed: %v", err)
	}

	updated, err := env.svc.UpdateTrip(ctx, trip.ID, service.UpdateTripRequest{
		PriceEur: floatPtr(59900),
	})
	if err != nil {
		t.Fatalf("UpdateTrip failed: %v", err)
	}

	// Price is non-identifying: the same variant row gets the new price.
	if updated.VehicleVariantID != trip.VehicleVariantID {
		t.Errorf("expected variant %d to be kept, got %d", trip.VehicleVariantID, updated.VehicleVariantID)
	}
	if got := env.variants.Count(); got != 1 {
		t.Errorf("expected 1 variant, got %d", got)
	}
	if got := env.variants.GetVariant(trip.VehicleVariantID).PriceEur; got != 59900 {
		t.Errorf("expected price 59900, got %v", got)
	}
}

func TestUpdateTripBatteryChangeRelinksVariant(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	ctx := context.Background()

	trip, _, err := env.svc.CreateTrip(ctx, baseCreateRequest())
	if err != nil {
		t.Fatalf("CreateTrip failed: %v", err)
	}

	updated, err := env.svc.UpdateTrip(ctx, trip.ID, service.UpdateTripRequest{
		BatteryKwh: intPtr(100),
	})
	if err != nil {
		t.Fatalf("UpdateTrip failed: %v", err)
	}

	// A different battery capacity is a different variant identity; the
	// trip relinks to a new row under the same model.
	if updated.VehicleVariantID == trip.VehicleVariantID {
		t.Error("expected the trip to relink to a new variant")
	}
	if updated.Variant.BatteryKwh != 100 {
		t.Errorf("expected battery 100, got %d", updated.Variant.BatteryKwh)
	}
	// Range and charging type were backfilled from the old chain.
	if updated.Variant.RangeKm != 460 {
		t.Errorf("expected backfilled range 460, got %d", updated.Variant.RangeKm)
	}
	if updated.Variant.ChargingType != "DC" {
		t.Errorf("expected backfilled charging type DC, got %s", updated.Variant.ChargingType)
	}

	// The predecessor variant is not cleaned up by updates.
	if env.variants.GetVariant(trip.VehicleVariantID) == nil {
		t.Error("expected the old variant to survive the update")
	}
	if got := env.variants.Count(); got != 2 {
		t.Errorf("expected 2 variants, got %d", got)
	}
	if got := env.models.Count(); got != 1 {
		t.Errorf("expected both variants under 1 model, got %d", got)
	}
}

func TestUpdateTripRelinksToExistingVariant(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	ctx := context.Background()

	first, _, err := env.svc.CreateTrip(ctx, baseCreateRequest())
	if err != nil {
		t.Fatalf("first CreateTrip failed: %v", err)
	}

	big := baseCreateRequest()
	big.TripDate = "15/02/2025"
	big.BatteryKwh = 100
	second, _, err := env.svc.CreateTrip(ctx, big)
	if err != nil {
		t.Fatalf("second CreateTrip failed: %v", err)
	}

	// Patching the first trip to the 100 kWh identity must reuse the
	// second trip's variant, not mint a third row.
	updated, err := env.svc.UpdateTrip(ctx, first.ID, service.UpdateTripRequest{
		BatteryKwh: intPtr(100),
	})
	if err != nil {
		t.Fatalf("UpdateTrip failed: %v", err)
	}
	if updated.VehicleVariantID != second.VehicleVariantID {
		t.Errorf("expected relink to existing variant %d, got %d", second.VehicleVariantID, updated.VehicleVariantID)
	}
	if got := env.variants.Count(); got != 2 {
		t.Errorf("expected 2 variants, got %d", got)
	}
}

func TestUpdateTripManufacturerChangeBuildsNewChain(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	ctx := context.Background()

	trip, _, err := env.svc.CreateTrip(ctx, baseCreateRequest())
	if err != nil {
		t.Fatalf("CreateTrip failed: %v", err)
	}

	updated, err := env.svc.UpdateTrip(ctx, trip.ID, service.UpdateTripRequest{
		Manufacturer: strPtr("Audi"),
		Model:        strPtr("Q4 e-tron"),
	})
	if err != nil {
		t.Fatalf("UpdateTrip failed: %v", err)
	}

	if updated.Variant.Model.Manufacturer.Name != "Audi" {
		t.Errorf("expected manufacturer Audi, got %s", updated.Variant.Model.Manufacturer.Name)
	}
	if updated.Variant.Model.Name != "Q4 e-tron" {
		t.Errorf("expected model Q4 e-tron, got %s", updated.Variant.Model.Name)
	}
	// Body type, segment, and variant identity were backfilled from the
	// old chain onto the new one.
	if updated.Variant.Model.BodyType != "SUV" {
		t.Errorf("expected backfilled body type SUV, got %s", updated.Variant.Model.BodyType)
	}
	if updated.Variant.BatteryKwh != 80 {
		t.Errorf("expected backfilled battery 80, got %d", updated.Variant.BatteryKwh)
	}

	// The old chain stays; updates never cascade-clean.
	if got := env.manufacturers.Count(); got != 2 {
		t.Errorf("expected 2 manufacturers, got %d", got)
	}
	if got := env.models.Count(); got != 2 {
		t.Errorf("expected 2 models, got %d", got)
	}
	if got := env.variants.Count(); got != 2 {
		t.Errorf("expected 2 variants, got %d", got)
	}
}

func TestUpdateTripRelinkByNameKeepsModelAttrs(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	ctx := context.Background()

	sedan := baseCreateRequest()
	sedan.Model = "i4"
	sedan.BodyType = "SEDAN"
	sedan.Segment = "E"
	sedan.BatteryKwh = 60
	if _, _, err := env.svc.CreateTrip(ctx, sedan); err != nil {
		t.Fatalf("first CreateTrip failed: %v", err)
	}

	suv, _, err := env.svc.CreateTrip(ctx, baseCreateRequest())
	if err != nil {
		t.Fatalf("second CreateTrip failed: %v", err)
	}

	// Relinking by name alone lands on the existing i4 model. Its body
	// type and segment were not in the patch, so the values backfilled
	// from the iX3 chain must not touch it.
	updated, err := env.svc.UpdateTrip(ctx, suv.ID, service.UpdateTripRequest{
		Model: strPtr("i4"),
	})
	if err != nil {
		t.Fatalf("UpdateTrip failed: %v", err)
	}

	if updated.Variant.Model.Name != "i4" {
		t.Errorf("expected relink to model i4, got %s", updated.Variant.Model.Name)
	}
	if updated.Variant.Model.BodyType != "SEDAN" {
		t.Errorf("expected i4 to keep body type SEDAN, got %s", updated.Variant.Model.BodyType)
	}
	if updated.Variant.Model.Segment != "E" {
		t.Errorf("expected i4 to keep segment E, got %s", updated.Variant.Model.Segment)
	}

	stored := env.models.GetModel(updated.Variant.ModelID)
	if stored.BodyType != "SEDAN" || stored.Segment != "E" {
		t.Errorf("expected stored i4 attrs SEDAN/E, got %s/%s", stored.BodyType, stored.Segment)
	}

	// An explicitly patched attribute still overwrites the target model.
	updated, err = env.svc.UpdateTrip(ctx, suv.ID, service.UpdateTripRequest{
		Segment: strPtr("D"),
	})
	if err != nil {
		t.Fatalf("second UpdateTrip failed: %v", err)
	}
	if updated.Variant.Model.Segment != "D" {
		t.Errorf("expected supplied segment D to apply, got %s", updated.Variant.Model.Segment)
	}
	if updated.Variant.Model.BodyType != "SEDAN" {
		t.Errorf("expected body type SEDAN to survive a segment-only patch, got %s", updated.Variant.Model.BodyType)
	}
}

func TestUpdateTripRelinkKeepsVariantPrice(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	ctx := context.Background()

	sedan := baseCreateRequest()
	sedan.Model = "i4"
	sedan.BodyType = "SEDAN"
	sedan.Segment = "E"
	sedan.PriceEur = 50000
	first, _, err := env.svc.CreateTrip(ctx, sedan)
	if err != nil {
		t.Fatalf("first CreateTrip failed: %v", err)
	}

	suv, _, err := env.svc.CreateTrip(ctx, baseCreateRequest())
	if err != nil {
		t.Fatalf("second CreateTrip failed: %v", err)
	}

	// The patch relinks to the i4 variant with the same identity tuple.
	// The iX3's backfilled price must not leak onto it.
	updated, err := env.svc.UpdateTrip(ctx, suv.ID, service.UpdateTripRequest{
		Model: strPtr("i4"),
	})
	if err != nil {
		t.Fatalf("UpdateTrip failed: %v", err)
	}

	if updated.VehicleVariantID != first.VehicleVariantID {
		t.Errorf("expected relink to variant %d, got %d", first.VehicleVariantID, updated.VehicleVariantID)
	}
	if got := env.variants.GetVariant(first.VehicleVariantID).PriceEur; got != 50000 {
		t.Errorf("expected i4 variant to keep price 50000, got %v", got)
	}
}

func TestUpdateTripOverwritesModelAttrs(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	ctx := context.Background()

	trip, _, err := env.svc.CreateTrip(ctx, baseCreateRequest())
	if err != nil {
		t.Fatalf("CreateTrip failed: %v", err)
	}

	// Unlike the create path, an update overwrites body type and segment
	// on the existing model.
	updated, err := env.svc.UpdateTrip(ctx, trip.ID, service.UpdateTripRequest{
		BodyType: strPtr("wagon"),
	})
	if err != nil {
		t.Fatalf("UpdateTrip failed: %v", err)
	}
	if updated.Variant.Model.BodyType != "WAGON" {
		t.Errorf("expected body type WAGON, got %s", updated.Variant.Model.BodyType)
	}

	model := env.models.GetModel(updated.Variant.ModelID)
	if model.BodyType != "WAGON" {
		t.Errorf("expected stored body type WAGON, got %s", model.BodyType)
	}
	if got := env.models.Count(); got != 1 {
		t.Errorf("expected the same model row, got %d models", got)
	}
}

func TestUpdateTripOriginSideOnly(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	ctx := context.Background()

	trip, _, err := env.svc.CreateTrip(ctx, baseCreateRequest())
	if err != nil {
		t.Fatalf("CreateTrip failed: %v", err)
	}

	// Patching only the origin city re-resolves with the current country
	// backfilled; the destination side is untouched.
	updated, err := env.svc.UpdateTrip(ctx, trip.ID, service.UpdateTripRequest{
		OriginCity: strPtr("Hamburg"),
	})
	if err != nil {
		t.Fatalf("UpdateTrip failed: %v", err)
	}

	if updated.Origin.City != "Hamburg" || updated.Origin.Country != "Germany" {
		t.Errorf("expected origin Hamburg/Germany, got %s/%s", updated.Origin.City, updated.Origin.Country)
	}
	if updated.DestinationID != trip.DestinationID {
		t.Error("expected destination side to be untouched")
	}

	// The old origin row survives; only DELETE cleans up.
	if !env.locations.HasLocation("Munich", "Germany") {
		t.Error("expected the old origin row to survive the update")
	}
	if got := env.locations.Count(); got != 3 {
		t.Errorf("expected 3 locations, got %d", got)
	}
}

func TestUpdateTripRejectsEmptyLocationHalf(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	ctx := context.Background()

	trip, _, err := env.svc.CreateTrip(ctx, baseCreateRequest())
	if err != nil {
		t.Fatalf("CreateTrip failed: %v", err)
	}

	_, err = env.svc.UpdateTrip(ctx, trip.ID, service.UpdateTripRequest{
		OriginCity: strPtr(""),
	})
	if !errors.Is(err, service.ErrMissingOrigin) {
		t.Errorf("expected ErrMissingOrigin, got %v", err)
	}

	_, err = env.svc.UpdateTrip(ctx, trip.ID, service.UpdateTripRequest{
		DestinationCountry: strPtr(""),
	})
	if !errors.Is(err, service.ErrMissingDestination) {
		t.Errorf("expected ErrMissingDestination, got %v", err)
	}
}

func TestUpdateTripNotFound(t *testing.T) {
	t.Parallel()

	env := newTestEnv()

	_, err := env.svc.UpdateTrip(context.Background(), 42, service.UpdateTripRequest{
		DistanceKm: floatPtr(100),
	})
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateTripRejectsInvalidPatchValues(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	ctx := context.Background()

	trip, _, err := env.svc.CreateTrip(ctx, baseCreateRequest())
	if err != nil {
		t.Fatalf("CreateTrip failed: %v", err)
	}

	cases := []struct {
		name    string
		patch   service.UpdateTripRequest
		wantErr error
	}{
		{"bad body type", service.UpdateTripRequest{BodyType: strPtr("BOAT")}, service.ErrInvalidBodyType},
		{"bad segment", service.UpdateTripRequest{Segment: strPtr("Z")}, service.ErrInvalidSegment},
		{"bad charging type", service.UpdateTripRequest{ChargingType: strPtr("WIRELESS")}, service.ErrInvalidChargingType},
		{"zero battery", service.UpdateTripRequest{BatteryKwh: intPtr(0)}, service.ErrInvalidBatteryCapacity},
		{"negative range", service.UpdateTripRequest{RangeKm: intPtr(-5)}, service.ErrInvalidRange},
		{"negative distance", service.UpdateTripRequest{DistanceKm: floatPtr(-1)}, service.ErrInvalidDistance},
		{"blank manufacturer", service.UpdateTripRequest{Manufacturer: strPtr(" ")}, service.ErrMissingManufacturer},
		{"blank model", service.UpdateTripRequest{Model: strPtr("")}, service.ErrMissingModel},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.svc.UpdateTrip(ctx, trip.ID, tc.patch)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}
