package domain

import "time"

// Trip is a single recorded EV journey. It references exactly one vehicle
// variant and two locations (origin and destination may be the same row).
// TripDate is always truncated to UTC midnight.
type Trip struct {
	ID                      int64
	TripDate                time.Time
	VehicleVariantID        int64
	OriginID                int64
	DestinationID           int64
	DistanceKm              float64
	CO2GPerKm               float64
	GridIntensityGCO2PerKwh float64
	CreatedAt               time.Time
	UpdatedAt               time.Time

	// Resolved relations, populated by the service layer.
	Variant     *VehicleVariant
	Origin      *Location
	Destination *Location
}

// Stats aggregates entity counts and fleet-wide figures for the
// statistics endpoint.
type Stats struct {
	Manufacturers   int64   `json:"manufacturers"`
	Models          int64   `json:"models"`
	Variants        int64   `json:"variants"`
	Locations       int64   `json:"locations"`
	Trips           int64   `json:"trips"`
	TotalDistanceKm float64 `json:"total_distance_km"`
	AvgCO2GPerKm    float64 `json:"avg_co2_g_per_km"`
}
