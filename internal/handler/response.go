package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"evtrips/internal/repository"
	"evtrips/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrMissingTripDate),
		errors.Is(err, service.ErrInvalidTripDate),
		errors.Is(err, service.ErrMissingManufacturer),
		errors.Is(err, service.ErrMissingModel),
		errors.Is(err, service.ErrInvalidBodyType),
		errors.Is(err, service.ErrInvalidSegment),
		errors.Is(err, service.ErrInvalidChargingType),
		errors.Is(err, service.ErrInvalidBatteryCapacity),
		errors.Is(err, service.ErrInvalidRange),
		errors.Is(err, service.ErrInvalidDistance),
		errors.Is(err, service.ErrMissingOrigin),
		errors.Is(err, service.ErrMissingDestination),
		errors.Is(err, service.ErrInvalidCSVHeader):
		return http.StatusBadRequest

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
