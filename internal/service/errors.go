package service

import "errors"

var (
	// ErrMissingTripDate is returned when a create request has no trip date.
	ErrMissingTripDate = errors.New("missing trip date")

	// ErrInvalidTripDate is returned when a trip date matches neither
	// DD/MM/YYYY nor YYYY-MM-DD.
	ErrInvalidTripDate = errors.New("invalid trip date")

	// ErrMissingManufacturer is returned when the manufacturer name is empty.
	ErrMissingManufacturer = errors.New("missing manufacturer")

	// ErrMissingModel is returned when the model name is empty.
	ErrMissingModel = errors.New("missing model")

	// ErrInvalidBodyType is returned when a body type does not normalize to a
	// known value.
	ErrInvalidBodyType = errors.New("invalid body type")

	// ErrInvalidSegment is returned when a segment does not normalize to a
	// known value.
	ErrInvalidSegment = errors.New("invalid segment")

	// ErrInvalidChargingType is returned when a charging type does not
	// normalize to AC or DC.
	ErrInvalidChargingType = errors.New("invalid charging type")

	// ErrInvalidBatteryCapacity is returned when battery capacity is not
	// positive.
	ErrInvalidBatteryCapacity = errors.New("invalid battery capacity")

	// ErrInvalidRange is returned when range is not positive.
	ErrInvalidRange = errors.New("invalid range")

	// ErrInvalidDistance is returned when distance is negative.
	ErrInvalidDistance = errors.New("invalid distance")

	// ErrMissingOrigin is returned when origin city or country is empty.
	ErrMissingOrigin = errors.New("missing origin city or country")

	// ErrMissingDestination is returned when destination city or country is
	// empty.
	ErrMissingDestination = errors.New("missing destination city or country")

	// ErrInvalidCSVHeader is returned when an imported CSV is missing
	// required columns.
	ErrInvalidCSVHeader = errors.New("invalid csv header")
)
