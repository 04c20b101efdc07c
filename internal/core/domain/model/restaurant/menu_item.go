package restaurant

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
)

var ErrMenuItemIsNotConstructed = errors.New("MenuItem must be created via NewMenuItem constructor")

// MenuItem is a dish of a restaurant. Its price is authoritative for new orders.
type MenuItem struct {
	id           kernel.UUID
	restaurantID kernel.UUID
	name         string
	description  string
	price        kernel.Money
	image        string
	veg          bool
	createdAt    time.Time

	isConstructed bool
}

// MenuItemDetails carries the editable attributes of a menu item.
type MenuItemDetails struct {
	Name        string
	Description string
	Price       kernel.Money
	Image       string
	Veg         bool
}

// MenuItemChanges is a partial update; nil fields are left untouched.
type MenuItemChanges struct {
	Name        *string
	Description *string
	Price       *kernel.Money
	Image       *string
	Veg         *bool
}

func NewMenuItem(id, restaurantID kernel.UUID, details MenuItemDetails, createdAt time.Time) (*MenuItem, error) {
	item := &MenuItem{
		description:   strings.TrimSpace(details.Description),
		image:         strings.TrimSpace(details.Image),
		veg:           details.Veg,
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		id.Validate(),
		restaurantID.Validate(),
		item.setName(details.Name),
		item.setPrice(details.Price),
	); err != nil {
		return nil, err
	}
	item.id = id
	item.restaurantID = restaurantID

	return item, nil
}

// RestoreMenuItem rebuilds a stored menu item.
func RestoreMenuItem(id, restaurantID kernel.UUID, details MenuItemDetails, createdAt time.Time) (*MenuItem, error) {
	return NewMenuItem(id, restaurantID, details, createdAt)
}

func (m *MenuItem) Validate() error {
	if m == nil || !m.isConstructed {
		return ErrMenuItemIsNotConstructed
	}
	return nil
}

func (m *MenuItem) ID() kernel.UUID {
	return m.id
}

func (m *MenuItem) RestaurantID() kernel.UUID {
	return m.restaurantID
}

func (m *MenuItem) Name() string {
	return m.name
}

func (m *MenuItem) Description() string {
	return m.description
}

func (m *MenuItem) Price() kernel.Money {
	return m.price
}

func (m *MenuItem) Image() string {
	return m.image
}

func (m *MenuItem) Veg() bool {
	return m.veg
}

func (m *MenuItem) CreatedAt() time.Time {
	return m.createdAt
}

// BelongsTo reports whether the item is on the given restaurant's menu.
func (m *MenuItem) BelongsTo(restaurantID kernel.UUID) bool {
	return m.restaurantID.IsEqual(restaurantID)
}

// Apply updates the provided fields, validating them first so a failed
// update leaves the item untouched.
func (m *MenuItem) Apply(changes MenuItemChanges) error {
	next := *m
	var nameErr, priceErr error
	if changes.Name != nil {
		nameErr = next.setName(*changes.Name)
	}
	if changes.Price != nil {
		priceErr = next.setPrice(*changes.Price)
	}
	if err := errors.Join(nameErr, priceErr); err != nil {
		return err
	}
	if changes.Description != nil {
		next.description = strings.TrimSpace(*changes.Description)
	}
	if changes.Image != nil {
		next.image = strings.TrimSpace(*changes.Image)
	}
	if changes.Veg != nil {
		next.veg = *changes.Veg
	}
	*m = next
	return nil
}

func (m *MenuItem) setName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return errs.NewValueIsRequiredError("name")
	}
	m.name = trimmed
	return nil
}

func (m *MenuItem) setPrice(price kernel.Money) error {
	if !price.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%s is not greater than 0", price))
	}
	m.price = price
	return nil
}
