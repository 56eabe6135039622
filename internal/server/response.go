package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/at-ishikawa/revisit/internal/learning"
)

// Error kinds reported in ErrorResponse.Error.
const (
	ErrorKindNotFound       = "NotFound"
	ErrorKindValidation     = "ValidationError"
	ErrorKindConflict       = "Conflict"
	ErrorKindInternalServer = "InternalServerError"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string                    `json:"error"`
	Message string                    `json:"message"`
	Details []learning.FieldViolation `json:"details,omitempty"`
}

func respondValidationError(c *gin.Context, message string, violations []learning.FieldViolation) {
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:   ErrorKindValidation,
		Message: message,
		Details: violations,
	})
}

// respondError maps service errors to status codes. Unexpected errors are logged
// and reported without their details.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	var validationErr *learning.ValidationError
	switch {
	case errors.As(err, &validationErr):
		respondValidationError(c, validationErr.Error(), validationErr.Violations)
	case errors.Is(err, learning.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, ErrorResponse{
			Error:   ErrorKindNotFound,
			Message: notFoundMessage(c.Param("id")),
		})
	case errors.Is(err, learning.ErrConflict):
		c.AbortWithStatusJSON(http.StatusConflict, ErrorResponse{
			Error:   ErrorKindConflict,
			Message: fmt.Sprintf("Learning item with ID %s was modified by another request, please retry", c.Param("id")),
		})
	default:
		logger.ErrorContext(c.Request.Context(), "request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
			Error:   ErrorKindInternalServer,
			Message: "Internal server error",
		})
	}
}

func notFoundMessage(id string) string {
	if id == "" {
		return "Learning item not found"
	}
	return fmt.Sprintf("Learning item with ID %s not found", id)
}
