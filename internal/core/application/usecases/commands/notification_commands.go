package commands

import (
	"context"
	"errors"
	"strings"

	"fooddelivery/internal/core/application/views"
	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrMarkNotificationReadCommandIsNotConstructed = errors.New(
	"MarkNotificationReadCommand must be created via NewMarkNotificationReadCommand constructor",
)

// MarkNotificationReadCommand flags one notification of the caller as read.
type MarkNotificationReadCommand struct {
	actor          actor.Actor
	notificationID string

	guard guard.ConstructorGuard
}

func NewMarkNotificationReadCommand(a actor.Actor, notificationID string) (MarkNotificationReadCommand, error) {
	var idErr error
	if strings.TrimSpace(notificationID) == "" {
		idErr = errs.NewValueIsRequiredError("notificationId")
	}
	if err := errors.Join(a.Validate(), idErr); err != nil {
		return MarkNotificationReadCommand{}, err
	}
	return MarkNotificationReadCommand{
		actor:          a,
		notificationID: notificationID,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c MarkNotificationReadCommand) Validate() error {
	return c.guard.Validate(ErrMarkNotificationReadCommandIsNotConstructed)
}

// NotificationCommandHandler updates the read flags of the caller's inbox.
type NotificationCommandHandler struct {
	store ports.NotificationStore
}

func NewNotificationCommandHandler(store ports.NotificationStore) NotificationCommandHandler {
	return NotificationCommandHandler{store: store}
}

// MarkRead is idempotent. Notifications of other users are reported as not found.
func (h NotificationCommandHandler) MarkRead(ctx context.Context, cmd MarkNotificationReadCommand) (views.Notification, error) {
	if err := cmd.Validate(); err != nil {
		return views.Notification{}, err
	}

	n, err := h.store.MarkRead(ctx, cmd.notificationID, cmd.actor.ID())
	if err != nil {
		return views.Notification{}, err
	}
	return views.NewNotification(n), nil
}

// MarkAllRead returns the number of notifications that changed.
func (h NotificationCommandHandler) MarkAllRead(ctx context.Context, a actor.Actor) (int64, error) {
	if err := a.Validate(); err != nil {
		return 0, err
	}
	return h.store.MarkAllRead(ctx, a.ID())
}
