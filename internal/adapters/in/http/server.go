package http

import (
	"log/slog"
	"net/http"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	// Command handlers
	PlaceOrder        commands.PlaceOrderCommandHandler
	AcceptOrder       commands.AcceptOrderCommandHandler
	ClaimOrder        commands.ClaimOrderCommandHandler
	UpdateOrderStatus commands.UpdateOrderStatusCommandHandler
	CreateRestaurant  commands.CreateRestaurantCommandHandler
	UpdateRestaurant  commands.UpdateRestaurantCommandHandler
	MenuItems         commands.MenuItemCommandHandler
	Users             commands.UserCommandHandler
	Notifications     commands.NotificationCommandHandler

	// Query handlers
	Orders             queries.OrderQueryHandler
	ListRestaurants    queries.ListRestaurantsQueryHandler
	Restaurants        queries.RestaurantQueryHandler
	Accounts           queries.UserQueryHandler
	NotificationsQuery queries.NotificationQueryHandler
}

// Server translates HTTP requests into commands and queries and renders their results.
type Server struct {
	h      Handlers
	logger *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(h Handlers, logger *slog.Logger) *Server {
	return &Server{
		h:      h,
		logger: logger.With("component", "http-server"),
	}
}

type placeOrderItem struct {
	MenuItemID kernel.UUID `json:"menuItemId"`
	Quantity   int         `json:"quantity"`
}

type placeOrderRequest struct {
	RestaurantID kernel.UUID      `json:"restaurantId"`
	Items        []placeOrderItem `json:"items"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status"`
}

// PlaceOrder handles POST /api/v1/orders. Prices come from the menu, never from the body.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	var body placeOrderRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	items := make([]commands.PlaceOrderItem, 0, len(body.Items))
	for _, item := range body.Items {
		items = append(items, commands.PlaceOrderItem{MenuItemID: item.MenuItemID, Quantity: item.Quantity})
	}

	a, _ := actorFrom(ctx)
	cmd, err := commands.NewPlaceOrderCommand(a, body.RestaurantID, items)
	if err != nil {
		return s.fail(ctx, err)
	}

	view, err := s.h.PlaceOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, view)
}

// AcceptOrder handles POST /api/v1/orders/:orderId/accept.
func (s *Server) AcceptOrder(ctx echo.Context) error {
	orderID, err := uuidParam(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "Invalid orderId")
	}

	a, _ := actorFrom(ctx)
	cmd, err := commands.NewAcceptOrderCommand(a, orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	view, err := s.h.AcceptOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, view)
}

// ClaimOrder handles POST /api/v1/orders/:orderId/accept-rider. A lost race is a 409.
func (s *Server) ClaimOrder(ctx echo.Context) error {
	orderID, err := uuidParam(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "Invalid orderId")
	}

	a, _ := actorFrom(ctx)
	cmd, err := commands.NewClaimOrderCommand(a, orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	view, err := s.h.ClaimOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, view)
}

// UpdateOrderStatus handles PATCH /api/v1/orders/:orderId/status.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	orderID, err := uuidParam(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "Invalid orderId")
	}

	var body updateOrderStatusRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	a, _ := actorFrom(ctx)
	cmd, err := commands.NewUpdateOrderStatusCommand(a, orderID, body.Status)
	if err != nil {
		return s.fail(ctx, err)
	}

	view, err := s.h.UpdateOrderStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, view)
}

// ListAvailableOrders handles GET /api/v1/orders/available.
func (s *Server) ListAvailableOrders(ctx echo.Context) error {
	orders, err := s.h.Orders.ListAvailable(ctx.Request().Context(), queries.NewListAvailableOrdersQuery())
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, orders)
}

// ListMyOrders handles GET /api/v1/orders/my-orders.
func (s *Server) ListMyOrders(ctx echo.Context) error {
	a, _ := actorFrom(ctx)
	query, err := queries.NewListMyOrdersQuery(a)
	if err != nil {
		return s.fail(ctx, err)
	}

	orders, err := s.h.Orders.ListMyOrders(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, orders)
}

// GetOrder handles GET /api/v1/orders/:orderId.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := uuidParam(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "Invalid orderId")
	}

	a, _ := actorFrom(ctx)
	query, err := queries.NewGetOrderQuery(a, orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	view, err := s.h.Orders.GetOrder(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, view)
}

// uuidParam binds a simple-style path parameter into a kernel.UUID.
func uuidParam(ctx echo.Context, name string) (kernel.UUID, error) {
	var id kernel.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return kernel.UUID{}, err
	}
	return id, nil
}
