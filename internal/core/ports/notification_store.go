package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/notification"
)

// NotificationStore is the durable per-user inbox.
type NotificationStore interface {
	// Append stores n and returns it with its assigned identifier.
	Append(ctx context.Context, n notification.Notification) (notification.Notification, error)

	// ListByUser returns at most limit notifications, newest first.
	ListByUser(ctx context.Context, userID kernel.UUID, limit int) ([]notification.Notification, error)

	// MarkRead flags one notification as read. Marking an already read notification
	// succeeds. Returns errs.ErrObjectNotFound if it does not exist or belongs to another user.
	MarkRead(ctx context.Context, id string, userID kernel.UUID) (notification.Notification, error)

	// MarkAllRead flags every unread notification of the user and returns how many changed.
	MarkAllRead(ctx context.Context, userID kernel.UUID) (int64, error)
}
