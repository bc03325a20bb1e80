package http

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/simaogato/fintrack-backend/internal/domain"
	"github.com/simaogato/fintrack-backend/internal/logging"
	"github.com/simaogato/fintrack-backend/internal/usecase/auth"
)

const (
	headerAuthToken = "x-auth-token"
	localsUserID    = "user_id"
)

// Authenticator resolves a bearer token into a user id
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (uuid.UUID, error)
}

// AccessGate rejects requests without a valid token before any data access.
// On success the user id is stored in the request's user context and locals.
func AccessGate(authenticator Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1. Get token from Authorization or x-auth-token
		token := bearerToken(c.Get(fiber.HeaderAuthorization))
		if token == "" {
			token = strings.TrimSpace(c.Get(headerAuthToken))
		}
		if token == "" {
			return domain.ErrUnauthenticated
		}

		// 2. Verify it
		ctx := c.UserContext()
		userID, err := authenticator.Authenticate(ctx, token)
		if err != nil {
			return domain.ErrUnauthenticated
		}

		// 3. Save user id so handlers know who is calling
		logger := zerolog.Ctx(ctx).With().Str(logging.FieldUserID, userID.String()).Logger()
		ctx = logger.WithContext(auth.WithUserID(ctx, userID))
		c.SetUserContext(ctx)
		c.Locals(localsUserID, userID)

		return c.Next()
	}
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// currentUserID returns the id stored by AccessGate
func currentUserID(c *fiber.Ctx) (uuid.UUID, error) {
	userID, ok := auth.UserIDFromContext(c.UserContext())
	if !ok {
		return uuid.Nil, domain.ErrUnauthenticated
	}
	return userID, nil
}

// RequestLogger attaches a request scoped logger to the user context and
// logs every completed request with its status and latency.
func RequestLogger(base zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		logger := base.With().
			Str(logging.FieldRequestID, c.GetRespHeader(fiber.HeaderXRequestID)).
			Str(logging.FieldMethod, c.Method()).
			Str(logging.FieldPath, c.Path()).
			Logger()
		c.SetUserContext(logger.WithContext(c.UserContext()))

		// Run the error handler here so the final status is known when logging
		if err := c.Next(); err != nil {
			if handlerErr := c.App().ErrorHandler(c, err); handlerErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		var event *zerolog.Event
		switch {
		case status >= fiber.StatusInternalServerError:
			event = logger.Error()
		case status >= fiber.StatusBadRequest:
			event = logger.Warn()
		default:
			event = logger.Info()
		}

		if userID, ok := c.Locals(localsUserID).(uuid.UUID); ok {
			event = event.Str(logging.FieldUserID, userID.String())
		}

		event.
			Int(logging.FieldStatus, status).
			Dur(logging.FieldLatency, time.Since(start)).
			Msg("request")

		return nil
	}
}
