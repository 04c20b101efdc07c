package http

import (
	"net/http"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/restaurant"

	"github.com/labstack/echo/v4"
)

type restaurantRequest struct {
	Name    string `json:"name"`
	Cuisine string `json:"cuisine"`
	Banner  string `json:"banner"`
}

type createMenuItemRequest struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Price       kernel.Money `json:"price"`
	Image       string       `json:"image"`
	Veg         *bool        `json:"veg"`
}

type updateMenuItemRequest struct {
	Name        *string       `json:"name"`
	Description *string       `json:"description"`
	Price       *kernel.Money `json:"price"`
	Image       *string       `json:"image"`
	Veg         *bool         `json:"veg"`
}

// ListRestaurants handles GET /api/v1/restaurants.
func (s *Server) ListRestaurants(ctx echo.Context) error {
	list, err := s.h.ListRestaurants.Handle(ctx.Request().Context(), queries.NewListRestaurantsQuery())
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, list)
}

// GetRestaurant handles GET /api/v1/restaurants/:restaurantId.
func (s *Server) GetRestaurant(ctx echo.Context) error {
	id, err := uuidParam(ctx, "restaurantId")
	if err != nil {
		return badRequest(ctx, "Invalid restaurantId")
	}

	view, err := s.h.Restaurants.GetRestaurant(ctx.Request().Context(), id)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, view)
}

// GetRestaurantMenu handles GET /api/v1/restaurants/:restaurantId/menu.
func (s *Server) GetRestaurantMenu(ctx echo.Context) error {
	id, err := uuidParam(ctx, "restaurantId")
	if err != nil {
		return badRequest(ctx, "Invalid restaurantId")
	}

	menu, err := s.h.Restaurants.GetMenu(ctx.Request().Context(), id)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, menu)
}

// CreateRestaurant handles POST /api/v1/restaurants.
func (s *Server) CreateRestaurant(ctx echo.Context) error {
	var body restaurantRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	a, _ := actorFrom(ctx)
	cmd, err := commands.NewCreateRestaurantCommand(a, body.Name, body.Cuisine, body.Banner)
	if err != nil {
		return s.fail(ctx, err)
	}

	view, err := s.h.CreateRestaurant.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, view)
}

// GetMyRestaurant handles GET /api/v1/restaurants/me/restaurant.
func (s *Server) GetMyRestaurant(ctx echo.Context) error {
	a, _ := actorFrom(ctx)
	view, err := s.h.Restaurants.GetMine(ctx.Request().Context(), a)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, view)
}

// UpdateMyRestaurant handles PUT /api/v1/restaurants/me/restaurant. Empty fields keep their value.
func (s *Server) UpdateMyRestaurant(ctx echo.Context) error {
	var body restaurantRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	a, _ := actorFrom(ctx)
	cmd, err := commands.NewUpdateRestaurantCommand(a, body.Name, body.Cuisine, body.Banner)
	if err != nil {
		return s.fail(ctx, err)
	}

	view, err := s.h.UpdateRestaurant.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, view)
}

// CreateMenuItem handles POST /api/v1/restaurants/me/menu-items. Veg defaults to true.
func (s *Server) CreateMenuItem(ctx echo.Context) error {
	var body createMenuItemRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	veg := true
	if body.Veg != nil {
		veg = *body.Veg
	}

	a, _ := actorFrom(ctx)
	cmd, err := commands.NewCreateMenuItemCommand(a, restaurant.MenuItemDetails{
		Name:        body.Name,
		Description: body.Description,
		Price:       body.Price,
		Image:       body.Image,
		Veg:         veg,
	})
	if err != nil {
		return s.fail(ctx, err)
	}

	view, err := s.h.MenuItems.Create(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, view)
}

// UpdateMenuItem handles PUT /api/v1/restaurants/me/menu-items/:menuItemId.
func (s *Server) UpdateMenuItem(ctx echo.Context) error {
	id, err := uuidParam(ctx, "menuItemId")
	if err != nil {
		return badRequest(ctx, "Invalid menuItemId")
	}

	var body updateMenuItemRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	a, _ := actorFrom(ctx)
	cmd, err := commands.NewUpdateMenuItemCommand(a, id, restaurant.MenuItemChanges{
		Name:        body.Name,
		Description: body.Description,
		Price:       body.Price,
		Image:       body.Image,
		Veg:         body.Veg,
	})
	if err != nil {
		return s.fail(ctx, err)
	}

	view, err := s.h.MenuItems.Update(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, view)
}

// DeleteMenuItem handles DELETE /api/v1/restaurants/me/menu-items/:menuItemId.
func (s *Server) DeleteMenuItem(ctx echo.Context) error {
	id, err := uuidParam(ctx, "menuItemId")
	if err != nil {
		return badRequest(ctx, "Invalid menuItemId")
	}

	a, _ := actorFrom(ctx)
	cmd, err := commands.NewDeleteMenuItemCommand(a, id)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err := s.h.MenuItems.Delete(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// GetMyMenu handles GET /api/v1/menu-items/my.
func (s *Server) GetMyMenu(ctx echo.Context) error {
	a, _ := actorFrom(ctx)
	menu, err := s.h.Restaurants.MyMenu(ctx.Request().Context(), a)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, menu)
}
