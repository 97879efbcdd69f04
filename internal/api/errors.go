package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"example.com/westo/services/garment/internal/service"
)

// ErrorResponse is the JSON body returned for failed requests
type ErrorResponse struct {
	Message   string `json:"message"`
	Code      string `json:"code"`
	Requested int    `json:"requested,omitempty"`
	Available int    `json:"available,omitempty"`
}

// RespondError maps service errors to HTTP responses. Validation
// errors carry the requested and available quantities so the client
// can correct the request.
func RespondError(c *gin.Context, err error) {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message:   validationErr.Message,
			Code:      "VALIDATION_ERROR",
			Requested: validationErr.Requested,
			Available: validationErr.Available,
		})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "Resource not found",
			Code:    "NOT_FOUND",
		})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, ErrorResponse{
			Message: "Identifier already exists, retry the request",
			Code:    "CONFLICT",
		})
	case errors.Is(err, service.ErrDependency):
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Message: "A required dependency is unavailable",
			Code:    "SERVICE_UNAVAILABLE",
		})
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
			Code:    "INTERNAL_ERROR",
		})
	}
}
