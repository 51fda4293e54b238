package common

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details,omitempty"`
	} `json:"error"`
}

// CreateErrorResponse creates a standardized error response
func CreateErrorResponse(code string, message string, details map[string]string) *ErrorResponse {
	var resp ErrorResponse
	resp.Error.Code = code
	resp.Error.Message = message
	resp.Error.Details = details
	return &resp
}

// SendValidationError sends a 400 response for a single invalid field
func SendValidationError(c echo.Context, field, message string) error {
	details := map[string]string{
		field: message,
	}
	return c.JSON(http.StatusBadRequest, CreateErrorResponse("INVALID_REQUEST", "Validation failed", details))
}

// SendClientError sends a 400 response for malformed requests
func SendClientError(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, CreateErrorResponse("INVALID_REQUEST", message, nil))
}

// SendNotFoundError sends a 404 response
func SendNotFoundError(c echo.Context, resource string) error {
	return c.JSON(http.StatusNotFound, CreateErrorResponse("NOT_FOUND", fmt.Sprintf("%s not found", resource), nil))
}

// SendProductUnavailableError sends a 502 response when the catalog call failed
func SendProductUnavailableError(c echo.Context, message string) error {
	return c.JSON(http.StatusBadGateway, CreateErrorResponse("PRODUCT_UNAVAILABLE", message, nil))
}

// SendServerError sends a 500 response for datastore failures
func SendServerError(c echo.Context, message string) error {
	return c.JSON(http.StatusInternalServerError, CreateErrorResponse("PERSISTENCE_FAILURE", message, nil))
}
