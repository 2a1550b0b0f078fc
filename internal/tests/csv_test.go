package tests

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"strings"
	"testing"

	"evtrips/internal/service"
)

const csvHeader = "trip_date,manufacturer,model,body_type,segment,battery_kwh,range_km,charging_type,price_eur,origin_city,origin_country,destination_city,destination_country,distance_km,co2_g_per_km,grid_intensity_gco2_per_kwh"

func TestImportCSV(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	ctx := context.Background()

	input := strings.Join([]string{
		csvHeader,
		"10/02/2025,BMW,iX3,SUV,D,80,460,DC,69900,Munich,Germany,Berlin,Germany,584,12.5,380",
		"10/02/2025,BMW,iX3,SUV,D,80,460,DC,69900,Munich,Germany,Berlin,Germany,584,12.5,380",
		"2025-02-11,Tesla,Model 3,SEDAN,D,60,510,DC,42990,Paris,France,Lyon,France,465,9.8,55",
		"not-a-date,BMW,iX3,SUV,D,80,460,DC,69900,Munich,Germany,Berlin,Germany,584,12.5,380",
	}, "\n")

	result, err := env.svc.ImportCSV(ctx, strings.NewReader(input))
	if err != nil {
		t.Fatalf("ImportCSV failed: %v", err)
	}

	if result.Created != 2 {
		t.Errorf("expected 2 created, got %d", result.Created)
	}
	if result.Deduplicated != 1 {
		t.Errorf("expected 1 deduplicated, got %d", result.Deduplicated)
	}
	if result.Failed != 1 {
		t.Errorf("expected 1 failed, got %d", result.Failed)
	}
	if len(result.Errors) != 1 || result.Errors[0].Line != 5 {
		t.Errorf("expected one row error on line 5, got %+v", result.Errors)
	}

	// A failed row does not abort the batch.
	if got := env.trips.Count(); got != 2 {
		t.Errorf("expected 2 trips, got %d", got)
	}
	if got := env.manufacturers.Count(); got != 2 {
		t.Errorf("expected 2 manufacturers, got %d", got)
	}
}

func TestImportCSVRejectsMissingColumns(t *testing.T) {
	t.Parallel()

	env := newTestEnv()

	input := "trip_date,manufacturer,model\n10/02/2025,BMW,iX3\n"
	_, err := env.svc.ImportCSV(context.Background(), strings.NewReader(input))
	if !errors.Is(err, service.ErrInvalidCSVHeader) {
		t.Errorf("expected ErrInvalidCSVHeader, got %v", err)
	}
}

func TestExportCSVRoundTrips(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	ctx := context.Background()

	if _, _, err := env.svc.CreateTrip(ctx, baseCreateRequest()); err != nil {
		t.Fatalf("CreateTrip failed: %v", err)
	}

	var buf bytes.Buffer
	if err := env.svc.ExportCSV(ctx, &buf); err != nil {
		t.Fatalf("ExportCSV failed: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(buf.Bytes())).ReadAll()
	if err != nil {
		t.Fatalf("exported CSV does not parse: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected header plus 1 row, got %d records", len(records))
	}
	if strings.Join(records[0], ",") != csvHeader {
		t.Errorf("unexpected header: %v", records[0])
	}

	row := records[1]
	if row[0] != "2025-02-10" {
		t.Errorf("expected exported date 2025-02-10, got %s", row[0])
	}
	if row[1] != "BMW" || row[2] != "iX3" {
		t.Errorf("expected BMW iX3, got %s %s", row[1], row[2])
	}

	// Re-importing the export into a fresh store recreates the same shape.
	fresh := newTestEnv()
	result, err := fresh.svc.ImportCSV(ctx, bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("re-import failed: %v", err)
	}
	if result.Created != 1 || result.Failed != 0 {
		t.Errorf("expected clean re-import, got %+v", result)
	}

	// And importing it back into the original store only deduplicates.
	result, err = env.svc.ImportCSV(ctx, bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("dedup re-import failed: %v", err)
	}
	if result.Created != 0 || result.Deduplicated != 1 {
		t.Errorf("expected pure dedup on re-import, got %+v", result)
	}
}
