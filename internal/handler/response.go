package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tabsplit/internal/domain"
)

// ErrorResponse is the envelope for all failed requests.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, msg string) {
	c.JSON(status, ErrorResponse{Success: false, Error: msg})
}

// RespondDomainError maps a domain error to an HTTP status and sends it.
func RespondDomainError(c *gin.Context, err error) {
	status := MapDomainError(err)
	RespondError(c, status, err.Error())
}

// MapDomainError translates domain errors to HTTP status codes. Input errors
// are the caller's fault, invariant violations are the model's, and upstream
// errors are the provider's.
func MapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrMissingImageSource),
		errors.Is(err, domain.ErrConflictingImage),
		errors.Is(err, domain.ErrEmptyInstructions),
		errors.Is(err, domain.ErrEmptyParticipants),
		errors.Is(err, domain.ErrDuplicateParticipant):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrTurnNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvariantViolation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrExtraction),
		errors.Is(err, domain.ErrReasoning),
		errors.Is(err, domain.ErrUpstreamUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
