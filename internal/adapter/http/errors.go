package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/simaogato/fintrack-backend/internal/domain"
)

const (
	msgUnauthenticated = "authentication required"
	msgInternal        = "internal server error"
	msgStoreTimeout    = "service temporarily unavailable"
	msgAggregation     = "failed to compute dashboard stats"
)

// mapError converts an error into an HTTP status and a client-safe message.
// Unknown errors become a generic 500; their detail is only logged.
func mapError(err error) (int, string) {
	var fiberErr *fiber.Error
	var validationErr *domain.ValidationError

	switch {
	case errors.As(err, &fiberErr):
		return fiberErr.Code, fiberErr.Message
	case errors.Is(err, domain.ErrStoreTimeout):
		// checked first: an aggregation failure may wrap a timeout
		return fiber.StatusServiceUnavailable, msgStoreTimeout
	case errors.As(err, &validationErr):
		return fiber.StatusBadRequest, validationErr.Message
	case errors.Is(err, domain.ErrValidation):
		return fiber.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrUnauthenticated):
		return fiber.StatusUnauthorized, msgUnauthenticated
	case errors.Is(err, domain.ErrInvalidCredentials):
		return fiber.StatusUnauthorized, domain.ErrInvalidCredentials.Error()
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, notFoundMessage(err)
	case errors.Is(err, domain.ErrAggregationFailed):
		return fiber.StatusInternalServerError, msgAggregation
	default:
		return fiber.StatusInternalServerError, msgInternal
	}
}

// notFoundMessage keeps the entity name ("transaction not found") but never
// anything a repository may have wrapped around it
func notFoundMessage(err error) string {
	for _, candidate := range []error{domain.ErrTransactionNotFound, domain.ErrInvestmentNotFound, domain.ErrUserNotFound} {
		if errors.Is(err, candidate) {
			return candidate.Error()
		}
	}
	return domain.ErrNotFound.Error()
}

// errorHandler is the Fiber error handler. Every error body is {"error": msg}.
func errorHandler(c *fiber.Ctx, err error) error {
	status, message := mapError(err)

	if status >= fiber.StatusInternalServerError {
		zerolog.Ctx(c.UserContext()).Error().Err(err).Int("status", status).Msg("request failed")
	}

	return c.Status(status).JSON(errorResponse{Error: message})
}
