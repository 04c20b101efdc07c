// Package notification models the per-user inbox entries produced by order transitions.
package notification

import (
	"errors"
	"strings"
	"time"

	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
)

const (
	// DefaultListLimit is applied when the caller does not ask for a page size.
	DefaultListLimit = 50
	// MaxListLimit caps a single page.
	MaxListLimit = 100
)

// Notification is created unread and only ever changes by being marked read.
// The identifier is assigned by the store on append.
type Notification struct {
	id            string
	recipientID   kernel.UUID
	recipientRole actor.Role
	orderID       *kernel.UUID
	message       string
	read          bool
	createdAt     time.Time
}

// NewNotification builds an unread notification addressed to recipient.
func NewNotification(recipient actor.Actor, orderID *kernel.UUID, message string, createdAt time.Time) (Notification, error) {
	var messageErr error
	if strings.TrimSpace(message) == "" {
		messageErr = errs.NewValueIsRequiredError("message")
	}
	if err := errors.Join(recipient.Validate(), messageErr); err != nil {
		return Notification{}, err
	}

	return Notification{
		recipientID:   recipient.ID(),
		recipientRole: recipient.Role(),
		orderID:       orderID,
		message:       message,
		createdAt:     createdAt.UTC(),
	}, nil
}

// Restore rebuilds a stored notification.
func Restore(
	id string,
	recipientID kernel.UUID,
	recipientRole actor.Role,
	orderID *kernel.UUID,
	message string,
	read bool,
	createdAt time.Time,
) Notification {
	return Notification{
		id:            id,
		recipientID:   recipientID,
		recipientRole: recipientRole,
		orderID:       orderID,
		message:       message,
		read:          read,
		createdAt:     createdAt.UTC(),
	}
}

// WithID returns a copy carrying the store-assigned identifier.
func (n Notification) WithID(id string) Notification {
	n.id = id
	return n
}

func (n Notification) ID() string {
	return n.id
}

func (n Notification) RecipientID() kernel.UUID {
	return n.recipientID
}

func (n Notification) RecipientRole() actor.Role {
	return n.recipientRole
}

// OrderID is nil for notifications not tied to an order.
func (n Notification) OrderID() *kernel.UUID {
	return n.orderID
}

func (n Notification) Message() string {
	return n.message
}

func (n Notification) IsRead() bool {
	return n.read
}

func (n Notification) CreatedAt() time.Time {
	return n.createdAt
}

// ClampLimit applies DefaultListLimit to non-positive values and caps at MaxListLimit.
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	default:
		return limit
	}
}
