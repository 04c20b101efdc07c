package views

import (
	"time"

	"fooddelivery/internal/core/domain/model/notification"
	"fooddelivery/internal/core/domain/model/user"
)

// User never carries the password hash.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewUser(u *user.User) User {
	return User{
		ID:        u.ID().String(),
		Name:      u.Name(),
		Email:     u.Email(),
		Role:      u.Role().String(),
		Image:     u.Image(),
		CreatedAt: u.CreatedAt(),
	}
}

type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	OrderID   *string   `json:"orderId"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewNotification(n notification.Notification) Notification {
	v := Notification{
		ID:        n.ID(),
		Message:   n.Message(),
		Read:      n.IsRead(),
		CreatedAt: n.CreatedAt(),
	}
	if id := n.OrderID(); id != nil {
		s := id.String()
		v.OrderID = &s
	}
	return v
}

func NewNotifications(list []notification.Notification) []Notification {
	out := make([]Notification, 0, len(list))
	for _, n := range list {
		out = append(out, NewNotification(n))
	}
	return out
}
