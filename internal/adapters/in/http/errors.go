package http

import (
	"errors"
	"net/http"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

const internalErrorMessage = "Internal server error"

// statusOf maps application errors onto HTTP statuses. The order matters:
// AlreadyAssigned is checked before the generic conflict and credential errors
// before lookups.
func statusOf(err error) int {
	switch {
	case errors.Is(err, order.ErrAlreadyAssigned), errors.Is(err, errs.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, commands.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, commands.ErrInvalidItem),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as an Error body. Internal errors are logged with the request
// and the caller and answered with a generic message.
func (s *Server) fail(ctx echo.Context, err error) error {
	status := statusOf(err)
	if status != http.StatusInternalServerError {
		return ctx.JSON(status, Error{Code: status, Message: err.Error()})
	}

	req := ctx.Request()
	attrs := []any{"method", req.Method, "path", req.URL.Path, "error", err}
	if a, ok := actorFrom(ctx); ok {
		attrs = append(attrs, "user_id", a.ID().String(), "role", a.Role().String())
	}
	s.logger.ErrorContext(req.Context(), "request failed", attrs...)

	return ctx.JSON(http.StatusInternalServerError, Error{
		Code:    http.StatusInternalServerError,
		Message: internalErrorMessage,
	})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: message})
}

// HTTPErrorHandler renders errors raised by echo itself (unknown routes, bad
// methods, recovered panics) with the same body shape as handler errors.
func HTTPErrorHandler(err error, ctx echo.Context) {
	if ctx.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := internalErrorMessage
	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		if m, ok := he.Message.(string); ok && status < http.StatusInternalServerError {
			message = m
		}
	}

	if ctx.Request().Method == http.MethodHead {
		_ = ctx.NoContent(status)
		return
	}
	_ = ctx.JSON(status, Error{Code: status, Message: message})
}
