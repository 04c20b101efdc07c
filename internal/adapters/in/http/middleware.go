package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/ports"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const actorContextKey = "actor"

// Authenticate resolves the bearer token into an actor stored on the echo context.
// Requests without a valid token are answered with 401.
func Authenticate(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			token, ok := bearerToken(ctx.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return unauthorized(ctx, "Missing bearer token")
			}
			a, err := verifier.Verify(token)
			if err != nil {
				return unauthorized(ctx, "Invalid or expired token")
			}
			ctx.Set(actorContextKey, a)
			return next(ctx)
		}
	}
}

// RequireRole lets the request through only when the authenticated actor has one of roles.
func RequireRole(roles ...actor.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			a, ok := actorFrom(ctx)
			if !ok {
				return unauthorized(ctx, "Missing bearer token")
			}
			for _, role := range roles {
				if a.Is(role) {
					return next(ctx)
				}
			}
			return ctx.JSON(http.StatusForbidden, Error{
				Code:    http.StatusForbidden,
				Message: a.Role().String() + " is not allowed to perform this action",
			})
		}
	}
}

func actorFrom(ctx echo.Context) (actor.Actor, bool) {
	a, ok := ctx.Get(actorContextKey).(actor.Actor)
	return a, ok
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthorized(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusUnauthorized, Error{Code: http.StatusUnauthorized, Message: message})
}

// RequestLogger writes one structured line per request.
func RequestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	logger = logger.With("component", "http")
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogRequestID: true,
		LogValuesFunc: func(ctx echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("remote_ip", v.RemoteIP),
			}
			if v.RequestID != "" {
				attrs = append(attrs, slog.String("request_id", v.RequestID))
			}
			if a, ok := actorFrom(ctx); ok {
				attrs = append(attrs, slog.String("user_id", a.ID().String()))
			}

			level := slog.LevelInfo
			if v.Error != nil {
				level = slog.LevelError
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			logger.LogAttrs(context.Background(), level, "request", attrs...)
			return nil
		},
	})
}
