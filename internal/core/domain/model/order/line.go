package order

import (
	"errors"
	"fmt"
	"strings"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrLineIsNotConstructed = errors.New("Line must be created via NewLine constructor")

// Line is one ordered menu item with the price it had when the order was placed.
type Line struct {
	menuItemID kernel.UUID
	name       string
	quantity   int
	unitPrice  kernel.Money
	guard      guard.ConstructorGuard
}

// NewLine snapshots a menu item into an order line. The unit price must come
// from the restaurant menu, never from the client.
func NewLine(menuItemID kernel.UUID, name string, quantity int, unitPrice kernel.Money) (Line, error) {
	var nameErr error
	if strings.TrimSpace(name) == "" {
		nameErr = errs.NewValueIsRequiredError("name")
	}

	var quantityErr error
	if quantity < 1 {
		quantityErr = errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is less than 1", quantity))
	}

	if err := errors.Join(menuItemID.Validate(), nameErr, quantityErr); err != nil {
		return Line{}, err
	}

	return Line{
		menuItemID: menuItemID,
		name:       name,
		quantity:   quantity,
		unitPrice:  unitPrice,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (l Line) MenuItemID() kernel.UUID {
	return l.menuItemID
}

// Name is the menu item name at order time.
func (l Line) Name() string {
	return l.name
}

func (l Line) Quantity() int {
	return l.quantity
}

func (l Line) UnitPrice() kernel.Money {
	return l.unitPrice
}

// Subtotal is quantity × unit price.
func (l Line) Subtotal() kernel.Money {
	return l.unitPrice.Times(l.quantity)
}

func (l Line) Validate() error {
	return l.guard.Validate(ErrLineIsNotConstructed)
}
