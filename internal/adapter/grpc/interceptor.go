package grpc

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/simaogato/fintrack-backend/internal/logging"
	"github.com/simaogato/fintrack-backend/internal/usecase/auth"
)

// healthMethodPrefix marks the standard health service, which stays public
const healthMethodPrefix = "/grpc.health.v1.Health/"

const msgUnauthenticated = "authentication required"

// Authenticator resolves a bearer token into a user id
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (uuid.UUID, error)
}

// AuthInterceptor returns a gRPC unary server interceptor that validates
// the bearer token from the authorization metadata.
// If the token is missing or invalid, it returns status.Unauthenticated with
// the same message in every case.
// If valid, it calls the handler with the user id stored in the context.
func AuthInterceptor(authenticator Authenticator) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		if strings.HasPrefix(info.FullMethod, healthMethodPrefix) {
			return handler(ctx, req)
		}

		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return nil, status.Error(codes.Unauthenticated, msgUnauthenticated)
		}

		authHeaders := md.Get("authorization")
		if len(authHeaders) == 0 {
			return nil, status.Error(codes.Unauthenticated, msgUnauthenticated)
		}

		token := strings.TrimSpace(authHeaders[0])
		if scheme, rest, found := strings.Cut(token, " "); found && strings.EqualFold(scheme, "Bearer") {
			token = strings.TrimSpace(rest)
		}
		if token == "" {
			return nil, status.Error(codes.Unauthenticated, msgUnauthenticated)
		}

		userID, err := authenticator.Authenticate(ctx, token)
		if err != nil {
			return nil, status.Error(codes.Unauthenticated, msgUnauthenticated)
		}

		logger := zerolog.Ctx(ctx).With().Str(logging.FieldUserID, userID.String()).Logger()
		ctx = logger.WithContext(auth.WithUserID(ctx, userID))

		return handler(ctx, req)
	}
}

// LoggingInterceptor attaches a request scoped logger to the context and logs
// each call with its status code and latency.
func LoggingInterceptor(base zerolog.Logger) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		start := time.Now()
		logger := base.With().Str(logging.FieldMethod, info.FullMethod).Logger()

		resp, err := handler(logger.WithContext(ctx), req)

		code := status.Code(err)
		event := logger.Info()
		switch code {
		case codes.OK:
		case codes.Internal, codes.Unknown, codes.Unavailable:
			event = logger.Error().Err(err)
		default:
			event = logger.Warn()
		}
		event.
			Str(logging.FieldStatus, code.String()).
			Dur(logging.FieldLatency, time.Since(start)).
			Msg("rpc")

		return resp, err
	}
}
