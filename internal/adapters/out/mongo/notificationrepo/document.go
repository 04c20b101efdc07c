// Package notificationrepo stores the per-user notification inbox in MongoDB.
package notificationrepo

import (
	"time"

	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/notification"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Document is the stored shape of a notification.
type Document struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"userId"`
	Role      string             `bson:"role"`
	OrderID   *string            `bson:"orderId,omitempty"`
	Message   string             `bson:"message"`
	Read      bool               `bson:"read"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func fromDomain(n notification.Notification) Document {
	var orderID *string
	if id := n.OrderID(); id != nil {
		s := id.String()
		orderID = &s
	}
	return Document{
		UserID:    n.RecipientID().String(),
		Role:      n.RecipientRole().String(),
		OrderID:   orderID,
		Message:   n.Message(),
		Read:      n.IsRead(),
		CreatedAt: n.CreatedAt(),
	}
}

func toDomain(doc Document) (notification.Notification, error) {
	userID, err := kernel.UUIDFromString(doc.UserID)
	if err != nil {
		return notification.Notification{}, err
	}
	role, err := actor.ParseRole(doc.Role)
	if err != nil {
		return notification.Notification{}, err
	}

	var orderID *kernel.UUID
	if doc.OrderID != nil {
		id, idErr := kernel.UUIDFromString(*doc.OrderID)
		if idErr != nil {
			return notification.Notification{}, idErr
		}
		orderID = &id
	}

	return notification.Restore(doc.ID.Hex(), userID, role, orderID, doc.Message, doc.Read, doc.CreatedAt), nil
}
