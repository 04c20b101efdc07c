package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/ports"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

// RouterConfig carries everything NewRouter mounts.
type RouterConfig struct {
	Server   *Server
	Verifier ports.TokenVerifier
	// Realtime serves the websocket endpoint. Nil leaves /ws unmounted.
	Realtime       echo.HandlerFunc
	Doc            *openapi3.T
	AllowedOrigins []string
	Logger         *slog.Logger
}

// NewRouter builds the echo instance serving the REST API under /api/v1, the
// realtime endpoint, the health check and the API docs.
func NewRouter(cfg RouterConfig) (*echo.Echo, error) {
	docJSON, err := cfg.Doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("encode openapi document: %w", err)
	}
	validator, err := OpenAPIValidator(cfg.Doc)
	if err != nil {
		return nil, err
	}
	registerSwaggerDoc(docJSON)

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = HTTPErrorHandler

	e.Use(middleware.RequestID())
	e.Use(RequestLogger(cfg.Logger))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.GET("/health", func(ctx echo.Context) error {
		return ctx.String(http.StatusOK, "Healthy")
	})
	if cfg.Realtime != nil {
		e.GET("/ws", cfg.Realtime)
	}
	e.GET("/api/v1/openapi.json", func(ctx echo.Context) error {
		return ctx.JSONBlob(http.StatusOK, docJSON)
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	RegisterHandlers(e.Group("/api/v1"), cfg.Server, Authenticate(cfg.Verifier), validator)
	return e, nil
}

// RegisterHandlers mounts every REST operation on g. auth guards the
// operations that need a caller and runs before validate, so an anonymous
// request is refused before its body is looked at. Order transitions are
// authorized by the state machine, so they only require authentication here.
func RegisterHandlers(g *echo.Group, s *Server, auth, validate echo.MiddlewareFunc) {
	restaurantOnly := RequireRole(actor.Restaurant)

	g.POST("/auth/register", s.Register, validate)
	g.POST("/auth/login", s.Login, validate)
	g.GET("/users/me", s.GetMe, auth, validate)
	g.PUT("/users/profile", s.UpdateProfile, auth, validate)

	g.GET("/restaurants", s.ListRestaurants, validate)
	g.POST("/restaurants", s.CreateRestaurant, auth, restaurantOnly, validate)
	g.GET("/restaurants/me/restaurant", s.GetMyRestaurant, auth, restaurantOnly, validate)
	g.PUT("/restaurants/me/restaurant", s.UpdateMyRestaurant, auth, restaurantOnly, validate)
	g.POST("/restaurants/me/menu-items", s.CreateMenuItem, auth, restaurantOnly, validate)
	g.PUT("/restaurants/me/menu-items/:menuItemId", s.UpdateMenuItem, auth, restaurantOnly, validate)
	g.DELETE("/restaurants/me/menu-items/:menuItemId", s.DeleteMenuItem, auth, restaurantOnly, validate)
	g.GET("/restaurants/:restaurantId", s.GetRestaurant, validate)
	g.GET("/restaurants/:restaurantId/menu", s.GetRestaurantMenu, validate)
	g.GET("/menu-items/my", s.GetMyMenu, auth, restaurantOnly, validate)

	g.POST("/orders", s.PlaceOrder, auth, validate)
	g.GET("/orders/available", s.ListAvailableOrders, auth, RequireRole(actor.Rider), validate)
	g.GET("/orders/my-orders", s.ListMyOrders, auth, validate)
	g.GET("/orders/:orderId", s.GetOrder, auth, validate)
	g.POST("/orders/:orderId/accept", s.AcceptOrder, auth, validate)
	g.POST("/orders/:orderId/accept-rider", s.ClaimOrder, auth, validate)
	g.PATCH("/orders/:orderId/status", s.UpdateOrderStatus, auth, validate)

	g.GET("/notifications", s.ListNotifications, auth, validate)
	g.PATCH("/notifications/read-all", s.MarkAllNotificationsRead, auth, validate)
	g.PATCH("/notifications/:notificationId/read", s.MarkNotificationRead, auth, validate)
}

type swaggerDoc struct {
	doc []byte
}

func (d swaggerDoc) ReadDoc() string {
	return string(d.doc)
}

var swaggerOnce sync.Once

// registerSwaggerDoc exposes the document to echo-swagger. swag panics on a
// second registration under the same name, so only the first router registers.
func registerSwaggerDoc(doc []byte) {
	swaggerOnce.Do(func() {
		swag.Register(swag.Name, swaggerDoc{doc: doc})
	})
}
