package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"evtrips/internal/repository"
)

// csvColumns is the canonical flat-row column set, shared by import and
// export so an exported file re-imports cleanly.
var csvColumns = []string{
	"trip_date",
	"manufacturer",
	"model",
	"body_type",
	"segment",
	"battery_kwh",
	"range_km",
	"charging_type",
	"price_eur",
	"origin_city",
	"origin_country",
	"destination_city",
	"destination_country",
	"distance_km",
	"co2_g_per_km",
	"grid_intensity_gco2_per_kwh",
}

// RowError records a failed import row.
type RowError struct {
	Line  int    `json:"line"`
	Error string `json:"error"`
}

// ImportResult summarizes a CSV import.
type ImportResult struct {
	Created      int        `json:"created"`
	Deduplicated int        `json:"deduplicated"`
	Failed       int        `json:"failed"`
	Errors       []RowError `json:"errors,omitempty"`
}

// ImportCSV reads a flat-row CSV and feeds each row through the create
// path. Rows are independent: each runs in its own transaction and a
// failed row does not abort the batch.
func (s *TripService) ImportCSV(ctx context.Context, r io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, ErrInvalidCSVHeader
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	for _, name := range csvColumns {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrInvalidCSVHeader, name)
		}
	}

	result := &ImportResult{}
	line := 1

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, RowError{Line: line, Error: err.Error()})
			continue
		}

		req, err := rowToCreateRequest(record, index)
		if err == nil {
			_, created, createErr := s.CreateTrip(ctx, req)
			if createErr == nil {
				if created {
					result.Created++
				} else {
					result.Deduplicated++
				}
				continue
			}
			err = createErr
		}

		result.Failed++
		result.Errors = append(result.Errors, RowError{Line: line, Error: err.Error()})
	}

	return result, nil
}

// rowToCreateRequest maps a CSV record onto the flat create request.
func rowToCreateRequest(record []string, index map[string]int) (CreateTripRequest, error) {
	field := func(name string) string {
		i := index[name]
		if i >= len(record) {
			return ""
		}
		return record[i]
	}

	batteryKwh, err := strconv.Atoi(field("battery_kwh"))
	if err != nil {
		return CreateTripRequest{}, ErrInvalidBatteryCapacity
	}
	rangeKm, err := strconv.Atoi(field("range_km"))
	if err != nil {
		return CreateTripRequest{}, ErrInvalidRange
	}
	priceEur, err := strconv.ParseFloat(field("price_eur"), 64)
	if err != nil {
		return CreateTripRequest{}, fmt.Errorf("invalid price_eur %q", field("price_eur"))
	}
	distanceKm, err := strconv.ParseFloat(field("distance_km"), 64)
	if err != nil {
		return CreateTripRequest{}, ErrInvalidDistance
	}
	co2, err := strconv.ParseFloat(field("co2_g_per_km"), 64)
	if err != nil {
		return CreateTripRequest{}, fmt.Errorf("invalid co2_g_per_km %q", field("co2_g_per_km"))
	}
	gridIntensity, err := strconv.ParseFloat(field("grid_intensity_gco2_per_kwh"), 64)
	if err != nil {
		return CreateTripRequest{}, fmt.Errorf("invalid grid_intensity_gco2_per_kwh %q", field("grid_intensity_gco2_per_kwh"))
	}

	return CreateTripRequest{
		TripDate:                field("trip_date"),
		Manufacturer:            field("manufacturer"),
		Model:                   field("model"),
		BodyType:                field("body_type"),
		Segment:                 field("segment"),
		BatteryKwh:              batteryKwh,
		RangeKm:                 rangeKm,
		ChargingType:            field("charging_type"),
		PriceEur:                priceEur,
		OriginCity:              field("origin_city"),
		OriginCountry:           field("origin_country"),
		DestinationCity:         field("destination_city"),
		DestinationCountry:      field("destination_country"),
		DistanceKm:              distanceKm,
		CO2GPerKm:               co2,
		GridIntensityGCO2PerKwh: gridIntensity,
	}, nil
}

// ExportCSV writes every trip, joined to its full chain, in the flat-row
// layout. The output round-trips through ImportCSV thanks to create
// idempotency.
func (s *TripService) ExportCSV(ctx context.Context, w io.Writer) error {
	trips, err := s.ListTrips(ctx, repository.TripFilter{})
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(csvColumns); err != nil {
		return err
	}

	for _, trip := range trips {
		variant := trip.Variant
		model := variant.Model
		record := []string{
			trip.TripDate.Format("2006-01-02"),
			model.Manufacturer.Name,
			model.Name,
			string(model.BodyType),
			string(model.Segment),
			strconv.Itoa(variant.BatteryKwh),
			strconv.Itoa(variant.RangeKm),
			string(variant.ChargingType),
			strconv.FormatFloat(variant.PriceEur, 'f', -1, 64),
			trip.Origin.City,
			trip.Origin.Country,
			trip.Destination.City,
			trip.Destination.Country,
			strconv.FormatFloat(trip.DistanceKm, 'f', -1, 64),
			strconv.FormatFloat(trip.CO2GPerKm, 'f', -1, 64),
			strconv.FormatFloat(trip.GridIntensityGCO2PerKwh, 'f', -1, 64),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
