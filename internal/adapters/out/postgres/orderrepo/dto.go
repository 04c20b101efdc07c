// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// An order is stored across three tables: orders, order_lines and payments.
package orderrepo

import (
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Indexed for the role-scoped listings and the available-orders scan.
type OrderDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	RestaurantID uuid.UUID       `gorm:"type:uuid;not null;index"`
	RiderID      *uuid.UUID      `gorm:"type:uuid;index"`
	Status       string          `gorm:"type:varchar(16);not null;index"`
	Total        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	CreatedAt    time.Time       `gorm:"not null;index"`
	Lines        []OrderLineDTO  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Payment      PaymentDTO      `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderLineDTO stores one line with the menu item name and price captured at order time.
type OrderLineDTO struct {
	ID         uint            `gorm:"primaryKey;autoIncrement"`
	OrderID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position   int             `gorm:"not null"`
	MenuItemID uuid.UUID       `gorm:"type:uuid;not null"`
	Name       string          `gorm:"type:varchar(255);not null"`
	Quantity   int             `gorm:"not null"`
	UnitPrice  decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

func (OrderLineDTO) TableName() string {
	return "order_lines"
}

// PaymentDTO stores the payment record created with the order.
type PaymentDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	Amount        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Status        string          `gorm:"type:varchar(16);not null"`
	TransactionID string          `gorm:"type:varchar(128);not null;uniqueIndex"`
	CreatedAt     time.Time       `gorm:"not null"`
}

func (PaymentDTO) TableName() string {
	return "payments"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(o *order.Order) OrderDTO {
	var riderID *uuid.UUID
	if id := o.RiderID(); id != nil {
		raw := id.Bytes()
		riderID = &raw
	}

	lines := make([]OrderLineDTO, 0, len(o.Lines()))
	for i, line := range o.Lines() {
		lines = append(lines, OrderLineDTO{
			OrderID:    o.ID().Bytes(),
			Position:   i,
			MenuItemID: line.MenuItemID().Bytes(),
			Name:       line.Name(),
			Quantity:   line.Quantity(),
			UnitPrice:  line.UnitPrice().Decimal(),
		})
	}

	p := o.Payment()
	return OrderDTO{
		ID:           o.ID().Bytes(),
		CustomerID:   o.CustomerID().Bytes(),
		RestaurantID: o.RestaurantID().Bytes(),
		RiderID:      riderID,
		Status:       o.Status().String(),
		Total:        o.Total().Decimal(),
		CreatedAt:    o.CreatedAt(),
		Lines:        lines,
		Payment: PaymentDTO{
			ID:            p.ID().Bytes(),
			OrderID:       o.ID().Bytes(),
			Amount:        p.Amount().Decimal(),
			Status:        string(p.Status()),
			TransactionID: p.TransactionID(),
			CreatedAt:     p.CreatedAt(),
		},
	}
}

// toDomain rebuilds the aggregate. Lines must be preloaded in Position order.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}

	var riderID *kernel.UUID
	if dto.RiderID != nil {
		rID, riderErr := kernel.UUIDFromBytes((*dto.RiderID)[:])
		if riderErr != nil {
			return nil, riderErr
		}
		riderID = &rID
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	total, err := kernel.NewMoney(dto.Total)
	if err != nil {
		return nil, err
	}

	lines := make([]order.Line, 0, len(dto.Lines))
	for _, l := range dto.Lines {
		menuItemID, idErr := kernel.UUIDFromBytes(l.MenuItemID[:])
		if idErr != nil {
			return nil, idErr
		}
		price, priceErr := kernel.NewMoney(l.UnitPrice)
		if priceErr != nil {
			return nil, priceErr
		}
		line, lineErr := order.NewLine(menuItemID, l.Name, l.Quantity, price)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	payment, err := paymentToDomain(dto.Payment)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(id, customerID, restaurantID, riderID, status, total, lines, payment, dto.CreatedAt)
}

func paymentToDomain(dto PaymentDTO) (order.Payment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return order.Payment{}, err
	}
	amount, err := kernel.NewMoney(dto.Amount)
	if err != nil {
		return order.Payment{}, err
	}
	return order.RestorePayment(id, amount, order.PaymentStatus(dto.Status), dto.TransactionID, dto.CreatedAt), nil
}
