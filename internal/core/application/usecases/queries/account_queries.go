package queries

import (
	"context"

	"fooddelivery/internal/core/application/views"
	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/notification"
	"fooddelivery/internal/core/ports"
)

// UserQueryHandler reads the caller's profile.
type UserQueryHandler struct {
	users UserReader
}

func NewUserQueryHandler(users UserReader) UserQueryHandler {
	return UserQueryHandler{users: users}
}

func (h UserQueryHandler) Me(ctx context.Context, a actor.Actor) (views.User, error) {
	u, err := h.users.Get(ctx, a.ID())
	if err != nil {
		return views.User{}, err
	}
	return views.NewUser(u), nil
}

// NotificationQueryHandler reads the caller's inbox.
type NotificationQueryHandler struct {
	store ports.NotificationStore
}

func NewNotificationQueryHandler(store ports.NotificationStore) NotificationQueryHandler {
	return NotificationQueryHandler{store: store}
}

// List returns newest first. Non-positive limits fall back to
// notification.DefaultListLimit and larger ones are capped at notification.MaxListLimit.
func (h NotificationQueryHandler) List(ctx context.Context, a actor.Actor, limit int) ([]views.Notification, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	list, err := h.store.ListByUser(ctx, a.ID(), notification.ClampLimit(limit))
	if err != nil {
		return nil, err
	}
	return views.NewNotifications(list), nil
}
