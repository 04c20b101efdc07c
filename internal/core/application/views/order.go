// Package views holds the read models returned by queries and carried in realtime payloads.
package views

import (
	"time"

	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
)

type Order struct {
	ID           string       `json:"id"`
	CustomerID   string       `json:"customerId"`
	RestaurantID string       `json:"restaurantId"`
	RiderID      *string      `json:"riderId,omitempty"`
	Restaurant   *OrderParty  `json:"restaurant,omitempty"`
	Customer     *OrderParty  `json:"customer,omitempty"`
	Status       string       `json:"status"`
	Total        kernel.Money `json:"total"`
	Items        []OrderLine  `json:"items"`
	Payment      Payment      `json:"payment"`
	CreatedAt    time.Time    `json:"createdAt"`
}

// OrderParty names a party of the order.
type OrderParty struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// OrderParties is the restaurant and customer an order event is denormalized with.
type OrderParties struct {
	Restaurant *OrderParty
	Customer   *OrderParty
}

type OrderLine struct {
	MenuItemID string       `json:"menuItemId"`
	Name       string       `json:"name"`
	Quantity   int          `json:"quantity"`
	Price      kernel.Money `json:"price"`
}

type Payment struct {
	ID            string       `json:"id"`
	Amount        kernel.Money `json:"amount"`
	Status        string       `json:"status"`
	TransactionID string       `json:"transactionId"`
}

// NewOrder renders o for a reader of the given role. The rider is left out
// when the rider visibility policy hides it from that role.
func NewOrder(o *order.Order, audience actor.Role) Order {
	v := Order{
		ID:           o.ID().String(),
		CustomerID:   o.CustomerID().String(),
		RestaurantID: o.RestaurantID().String(),
		Status:       o.Status().String(),
		Total:        o.Total(),
		CreatedAt:    o.CreatedAt(),
	}

	if riderID := o.RiderID(); riderID != nil && services.RiderVisibleTo(audience, o.Status()) {
		id := riderID.String()
		v.RiderID = &id
	}

	lines := o.Lines()
	v.Items = make([]OrderLine, 0, len(lines))
	for _, line := range lines {
		v.Items = append(v.Items, OrderLine{
			MenuItemID: line.MenuItemID().String(),
			Name:       line.Name(),
			Quantity:   line.Quantity(),
			Price:      line.UnitPrice(),
		})
	}

	p := o.Payment()
	v.Payment = Payment{
		ID:            p.ID().String(),
		Amount:        p.Amount(),
		Status:        string(p.Status()),
		TransactionID: p.TransactionID(),
	}
	return v
}

// NewOrders renders a list for one audience.
func NewOrders(orders []*order.Order, audience actor.Role) []Order {
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, NewOrder(o, audience))
	}
	return out
}

// OrderEvent is the payload of order-carrying realtime events.
type OrderEvent struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
	Order   Order  `json:"order"`
}

func NewOrderEvent(o *order.Order, audience actor.Role) OrderEvent {
	return OrderEvent{
		OrderID: o.ID().String(),
		Status:  o.Status().String(),
		Order:   NewOrder(o, audience),
	}
}

// WithParties embeds the restaurant and customer names into the carried order.
func (e OrderEvent) WithParties(p OrderParties) OrderEvent {
	e.Order.Restaurant = p.Restaurant
	e.Order.Customer = p.Customer
	return e
}
