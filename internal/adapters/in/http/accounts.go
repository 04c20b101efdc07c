package http

import (
	"net/http"

	"fooddelivery/internal/core/application/usecases/commands"

	"github.com/labstack/echo/v4"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateProfileRequest struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

type readAllResponse struct {
	Count int64 `json:"count"`
}

// Register handles POST /api/v1/auth/register.
func (s *Server) Register(ctx echo.Context) error {
	var body registerRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewRegisterUserCommand(body.Name, body.Email, body.Password, body.Role)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.h.Users.Register(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, result)
}

// Login handles POST /api/v1/auth/login.
func (s *Server) Login(ctx echo.Context) error {
	var body loginRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewLoginCommand(body.Email, body.Password)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.h.Users.Login(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, result)
}

// GetMe handles GET /api/v1/users/me.
func (s *Server) GetMe(ctx echo.Context) error {
	a, _ := actorFrom(ctx)
	view, err := s.h.Accounts.Me(ctx.Request().Context(), a)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, view)
}

// UpdateProfile handles PUT /api/v1/users/profile.
func (s *Server) UpdateProfile(ctx echo.Context) error {
	var body updateProfileRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	a, _ := actorFrom(ctx)
	cmd, err := commands.NewUpdateProfileCommand(a, body.Name, body.Image)
	if err != nil {
		return s.fail(ctx, err)
	}

	view, err := s.h.Users.UpdateProfile(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, view)
}

// ListNotifications handles GET /api/v1/notifications?limit=N.
func (s *Server) ListNotifications(ctx echo.Context) error {
	var limit int
	if err := echo.QueryParamsBinder(ctx).Int("limit", &limit).BindError(); err != nil {
		return badRequest(ctx, "Invalid limit")
	}

	a, _ := actorFrom(ctx)
	list, err := s.h.NotificationsQuery.List(ctx.Request().Context(), a, limit)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, list)
}

// MarkNotificationRead handles PATCH /api/v1/notifications/:notificationId/read.
func (s *Server) MarkNotificationRead(ctx echo.Context) error {
	a, _ := actorFrom(ctx)
	cmd, err := commands.NewMarkNotificationReadCommand(a, ctx.Param("notificationId"))
	if err != nil {
		return s.fail(ctx, err)
	}

	view, err := s.h.Notifications.MarkRead(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, view)
}

// MarkAllNotificationsRead handles PATCH /api/v1/notifications/read-all.
func (s *Server) MarkAllNotificationsRead(ctx echo.Context) error {
	a, _ := actorFrom(ctx)
	count, err := s.h.Notifications.MarkAllRead(ctx.Request().Context(), a)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, readAllResponse{Count: count})
}
