package tests

import (
	"evtrips/internal/repository"
	"evtrips/internal/service"
)

// testEnv bundles the mock repositories with a TripService wired on top of
// them, so tests can drive the service and assert against the stores.
type testEnv struct {
	store         *MockStore
	manufacturers *MockManufacturerRepository
	models        *MockVehicleModelRepository
	variants      *MockVehicleVariantRepository
	locations     *MockLocationRepository
	trips         *MockTripRepository
	svc           *service.TripService
}

func newTestEnv() *testEnv {
	manufacturers := NewMockManufacturerRepository()
	models := NewMockVehicleModelRepository()
	variants := NewMockVehicleVariantRepository()
	locations := NewMockLocationRepository()
	trips := NewMockTripRepository()

	store := NewMockStore(repository.Repos{
		Manufacturers: manufacturers,
		Models:        models,
		Variants:      variants,
		Locations:     locations,
		Trips:         trips,
	})

	return &testEnv{
		store:         store,
		manufacturers: manufacturers,
		models:        models,
		variants:      variants,
		locations:     locations,
		trips:         trips,
		svc:           service.NewTripService(store, nil),
	}
}

// baseCreateRequest returns a valid flat row. Tests mutate copies of it.
func baseCreateRequest() service.CreateTripRequest {
	return service.CreateTripRequest{
		TripDate:                "10/02/2025",
		Manufacturer:            "BMW",
		Model:                   "iX3",
		BodyType:                "SUV",
		Segment:                 "D",
		BatteryKwh:              80,
		RangeKm:                 460,
		ChargingType:            "DC",
		PriceEur:                69900,
		OriginCity:              "Munich",
		OriginCountry:           "Germany",
		DestinationCity:         "Berlin",
		DestinationCountry:      "Germany",
		DistanceKm:              584,
		CO2GPerKm:               12.5,
		GridIntensityGCO2PerKwh: 380,
	}
}

func strPtr(s string) *string     { return &s }
func intPtr(n int) *int           { return &n }
func floatPtr(f float64) *float64 { return &f }
