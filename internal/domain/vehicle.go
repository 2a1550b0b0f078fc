package domain

import "time"

// BodyType is the canonical body style of a vehicle model.
type BodyType string

const (
	BodyTypeSedan     BodyType = "SEDAN"
	BodyTypeHatchback BodyType = "HATCHBACK"
	BodyTypeSUV       BodyType = "SUV"
	BodyTypeCoupe     BodyType = "COUPE"
	BodyTypeWagon     BodyType = "WAGON"
	BodyTypeVan       BodyType = "VAN"
	BodyTypePickup    BodyType = "PICKUP"
)

var validBodyTypes = map[BodyType]bool{
	BodyTypeSedan:     true,
	BodyTypeHatchback: true,
	BodyTypeSUV:       true,
	BodyTypeCoupe:     true,
	BodyTypeWagon:     true,
	BodyTypeVan:       true,
	BodyTypePickup:    true,
}

// Valid reports whether the body type is part of the fixed domain.
func (b BodyType) Valid() bool { return validBodyTypes[b] }

// Segment is the European market segment of a vehicle model.
type Segment string

const (
	SegmentA Segment = "A"
	SegmentB Segment = "B"
	SegmentC Segment = "C"
	SegmentD Segment = "D"
	SegmentE Segment = "E"
	SegmentF Segment = "F"
	SegmentS Segment = "S"
	SegmentM Segment = "M"
	SegmentJ Segment = "J"
)

var validSegments = map[Segment]bool{
	SegmentA: true, SegmentB: true, SegmentC: true,
	SegmentD: true, SegmentE: true, SegmentF: true,
	SegmentS: true, SegmentM: true, SegmentJ: true,
}

// Valid reports whether the segment is part of the fixed domain.
func (s Segment) Valid() bool { return validSegments[s] }

// ChargingType is the charging interface of a vehicle variant.
type ChargingType string

const (
	ChargingTypeAC ChargingType = "AC"
	ChargingTypeDC ChargingType = "DC"
)

// Valid reports whether the charging type is AC or DC.
func (c ChargingType) Valid() bool {
	return c == ChargingTypeAC || c == ChargingTypeDC
}

// VehicleModel is a model line under a manufacturer, unique by
// (manufacturer_id, name).
type VehicleModel struct {
	ID             int64
	ManufacturerID int64
	Name           string
	BodyType       BodyType
	Segment        Segment
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Manufacturer *Manufacturer
}

// VehicleVariant is a concrete spec combination under a model, unique by
// (model_id, battery_kwh, range_km, charging_type). Price is mutable and
// not part of the identity key.
type VehicleVariant struct {
	ID           int64
	ModelID      int64
	BatteryKwh   int
	RangeKm      int
	ChargingType ChargingType
	PriceEur     float64
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Model *VehicleModel
}
