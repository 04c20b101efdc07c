package ws

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/realtime"
	"fooddelivery/internal/core/domain/model/restaurant"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// RestaurantResolver finds the restaurant a restaurant-role connection listens to.
type RestaurantResolver interface {
	GetByOwner(ctx context.Context, ownerID kernel.UUID) (*restaurant.Restaurant, error)
}

// Handler upgrades authenticated requests on the realtime endpoint.
type Handler struct {
	hub         *Hub
	verifier    ports.TokenVerifier
	restaurants RestaurantResolver
	upgrader    websocket.Upgrader
	logger      *slog.Logger
}

// NewHandler builds the endpoint. allowedOrigins empty or containing "*" accepts any origin.
func NewHandler(
	hub *Hub,
	verifier ports.TokenVerifier,
	restaurants RestaurantResolver,
	allowedOrigins []string,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		hub:         hub,
		verifier:    verifier,
		restaurants: restaurants,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		logger: logger.With("component", "ws-handler"),
	}
}

// Serve rejects the handshake with 401 before upgrading when the token is missing or invalid.
func (h *Handler) Serve(c echo.Context) error {
	token := bearerToken(c.Request())
	if token == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}
	a, err := h.verifier.Verify(token)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	channels, err := h.channelsFor(c.Request().Context(), a)
	if err != nil {
		h.logger.ErrorContext(c.Request().Context(), "failed to resolve channels", "user_id", a.ID().String(), "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade already wrote the error response.
		h.logger.Warn("websocket upgrade failed", "error", err)
		return nil
	}

	client := newClient(conn, a, channels)
	h.hub.join(client)
	go func() {
		client.readPump()
		h.hub.leave(client)
	}()
	go client.writePump()

	return nil
}

// channelsFor lists the channels a connection joins: its own user channel, the
// riders channel for riders, and the owned restaurant channel for restaurants.
func (h *Handler) channelsFor(ctx context.Context, a actor.Actor) ([]realtime.Channel, error) {
	channels := []realtime.Channel{realtime.UserChannel(a.ID())}

	switch a.Role() {
	case actor.Rider:
		channels = append(channels, realtime.RidersOnline)
	case actor.Restaurant:
		r, err := h.restaurants.GetByOwner(ctx, a.ID())
		switch {
		case err == nil:
			channels = append(channels, realtime.RestaurantChannel(r.ID()))
		case errors.Is(err, errs.ErrObjectNotFound):
			// owner has not created a restaurant yet
		default:
			return nil, err
		}
	case actor.Customer, actor.Admin, actor.Unknown:
	}
	return channels, nil
}

// bearerToken reads the token query parameter first, then the Authorization header.
func bearerToken(r *http.Request) string {
	if t := r.URL.Query().Get("token"); t != "" {
		return t
	}
	h := r.Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}

func originChecker(allowed []string) func(r *http.Request) bool {
	for _, o := range allowed {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
	}
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, o := range allowed {
			if strings.EqualFold(o, origin) {
				return true
			}
		}
		return false
	}
}
