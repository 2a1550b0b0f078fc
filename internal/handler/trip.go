package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"evtrips/internal/domain"
	"evtrips/internal/repository"
	"evtrips/internal/service"
)

// tripDateFormat renders trip dates as UTC-midnight instants with
// millisecond precision.
const tripDateFormat = "2006-01-02T15:04:05.000Z07:00"

// TripHandler handles HTTP requests for trips.
type TripHandler struct {
	tripService *service.TripService
}

// NewTripHandler creates a new TripHandler.
func NewTripHandler(tripService *service.TripService) *TripHandler {
	return &TripHandler{tripService: tripService}
}

// CreateTripRequest is the HTTP request body for creating a trip.
type CreateTripRequest struct {
	TripDate                string  `json:"trip_date"`
	Manufacturer            string  `json:"manufacturer"`
	Model                   string  `json:"model"`
	BodyType                string  `json:"body_type"`
	Segment                 string  `json:"segment"`
	BatteryKwh              int     `json:"battery_kwh"`
	RangeKm                 int     `json:"range_km"`
	ChargingType            string  `json:"charging_type"`
	PriceEur                float64 `json:"price_eur"`
	OriginCity              string  `json:"origin_city"`
	OriginCountry           string  `json:"origin_country"`
	DestinationCity         string  `json:"destination_city"`
	DestinationCountry      string  `json:"destination_country"`
	DistanceKm              float64 `json:"distance_km"`
	CO2GPerKm               float64 `json:"co2_g_per_km"`
	GridIntensityGCO2PerKwh float64 `json:"grid_intensity_gco2_per_kwh"`
}

// UpdateTripRequest is the HTTP request body for updating a trip. Absent
// fields keep their current value.
type UpdateTripRequest struct {
	TripDate                *string  `json:"trip_date"`
	Manufacturer            *string  `json:"manufacturer"`
	Model                   *string  `json:"model"`
	BodyType                *string  `json:"body_type"`
	Segment                 *string  `json:"segment"`
	BatteryKwh              *int     `json:"battery_kwh"`
	RangeKm                 *int     `json:"range_km"`
	ChargingType            *string  `json:"charging_type"`
	PriceEur                *float64 `json:"price_eur"`
	OriginCity              *string  `json:"origin_city"`
	OriginCountry           *string  `json:"origin_country"`
	DestinationCity         *string  `json:"destination_city"`
	DestinationCountry      *string  `json:"destination_country"`
	DistanceKm              *float64 `json:"distance_km"`
	CO2GPerKm               *float64 `json:"co2_g_per_km"`
	GridIntensityGCO2PerKwh *float64 `json:"grid_intensity_gco2_per_kwh"`
}

// ManufacturerInfo contains manufacturer details in the response.
type ManufacturerInfo struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ModelInfo contains vehicle model details in the response.
type ModelInfo struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	BodyType string `json:"body_type"`
	Segment  string `json:"segment"`
}

// VariantInfo contains vehicle variant details in the response.
type VariantInfo struct {
	ID           int64   `json:"id"`
	BatteryKwh   int     `json:"battery_kwh"`
	RangeKm      int     `json:"range_km"`
	ChargingType string  `json:"charging_type"`
	PriceEur     float64 `json:"price_eur"`
}

// LocationInfo contains location details in the response.
type LocationInfo struct {
	ID      int64  `json:"id"`
	City    string `json:"city"`
	Country string `json:"country"`
}

// TripResponse is the HTTP response for trip operations.
type TripResponse struct {
	ID                      int64             `json:"id"`
	TripDate                string            `json:"trip_date"`
	DistanceKm              float64           `json:"distance_km"`
	CO2GPerKm               float64           `json:"co2_g_per_km"`
	GridIntensityGCO2PerKwh float64           `json:"grid_intensity_gco2_per_kwh"`
	Manufacturer            *ManufacturerInfo `json:"manufacturer,omitempty"`
	Model                   *ModelInfo        `json:"model,omitempty"`
	Variant                 *VariantInfo      `json:"variant,omitempty"`
	Origin                  *LocationInfo     `json:"origin,omitempty"`
	Destination             *LocationInfo     `json:"destination,omitempty"`
	CreatedAt               string            `json:"created_at"`
	UpdatedAt               string            `json:"updated_at"`
}

// CreateTrip handles POST /v1/trips
func (h *TripHandler) CreateTrip(c *gin.Context) {
	var req CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	trip, created, err := h.tripService.CreateTrip(c.Request.Context(), service.CreateTripRequest(req))
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusCreated
	if !created {
		// Idempotent resubmission of the same logical row.
		status = http.StatusOK
	}
	respondJSON(c, status, toTripResponse(trip))
}

// GetTrip handles GET /v1/trips/:id
func (h *TripHandler) GetTrip(c *gin.Context) {
	id, err := parseTripID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid trip id"})
		return
	}

	trip, err := h.tripService.GetTrip(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toTripResponse(trip))
}

// ListTrips handles GET /v1/trips
func (h *TripHandler) ListTrips(c *gin.Context) {
	filter := repository.TripFilter{
		Manufacturer:    c.Query("manufacturer"),
		OriginCity:      c.Query("origin_city"),
		DestinationCity: c.Query("destination_city"),
		Limit:           100,
	}

	if limit := c.Query("limit"); limit != "" {
		if n, err := strconv.Atoi(limit); err == nil && n > 0 {
			filter.Limit = n
		}
	}
	if from := c.Query("from"); from != "" {
		t, err := service.ParseTripDate(from)
		if err != nil {
			respondError(c, err)
			return
		}
		filter.From = t
	}
	if to := c.Query("to"); to != "" {
		t, err := service.ParseTripDate(to)
		if err != nil {
			respondError(c, err)
			return
		}
		filter.To = t
	}

	trips, err := h.tripService.ListTrips(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]TripResponse, 0, len(trips))
	for _, trip := range trips {
		response = append(response, toTripResponse(trip))
	}
	respondJSON(c, http.StatusOK, response)
}

// UpdateTrip handles PATCH /v1/trips/:id
func (h *TripHandler) UpdateTrip(c *gin.Context) {
	id, err := parseTripID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid trip id"})
		return
	}

	var req UpdateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	trip, err := h.tripService.UpdateTrip(c.Request.Context(), id, service.UpdateTripRequest(req))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toTripResponse(trip))
}

// DeleteTrip handles DELETE /v1/trips/:id
func (h *TripHandler) DeleteTrip(c *gin.Context) {
	id, err := parseTripID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid trip id"})
		return
	}

	if err := h.tripService.DeleteTrip(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{"ok": true})
}

// ImportTrips handles POST /v1/trips/import
func (h *TripHandler) ImportTrips(c *gin.Context) {
	result, err := h.tripService.ImportCSV(c.Request.Context(), c.Request.Body)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, result)
}

// ExportTrips handles GET /v1/trips/export
func (h *TripHandler) ExportTrips(c *gin.Context) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="trips.csv"`)
	c.Status(http.StatusOK)

	if err := h.tripService.ExportCSV(c.Request.Context(), c.Writer); err != nil {
		_ = c.Error(err)
	}
}

func parseTripID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

func toTripResponse(trip *domain.Trip) TripResponse {
	response := TripResponse{
		ID:                      trip.ID,
		TripDate:                trip.TripDate.UTC().Format(tripDateFormat),
		DistanceKm:              trip.DistanceKm,
		CO2GPerKm:               trip.CO2GPerKm,
		GridIntensityGCO2PerKwh: trip.GridIntensityGCO2PerKwh,
		CreatedAt:               trip.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:               trip.UpdatedAt.UTC().Format(time.RFC3339),
	}

	if trip.Variant != nil {
		response.Variant = &VariantInfo{
			ID:           trip.Variant.ID,
			BatteryKwh:   trip.Variant.BatteryKwh,
			RangeKm:      trip.Variant.RangeKm,
			ChargingType: string(trip.Variant.ChargingType),
			PriceEur:     trip.Variant.PriceEur,
		}
		if trip.Variant.Model != nil {
			response.Model = &ModelInfo{
				ID:       trip.Variant.Model.ID,
				Name:     trip.Variant.Model.Name,
				BodyType: string(trip.Variant.Model.BodyType),
				Segment:  string(trip.Variant.Model.Segment),
			}
			if trip.Variant.Model.Manufacturer != nil {
				response.Manufacturer = &ManufacturerInfo{
					ID:   trip.Variant.Model.Manufacturer.ID,
					Name: trip.Variant.Model.Manufacturer.Name,
				}
			}
		}
	}

	if trip.Origin != nil {
		response.Origin = &LocationInfo{ID: trip.Origin.ID, City: trip.Origin.City, Country: trip.Origin.Country}
	}
	if trip.Destination != nil {
		response.Destination = &LocationInfo{ID: trip.Destination.ID, City: trip.Destination.City, Country: trip.Destination.Country}
	}

	return response
}
