package commands

import (
	"errors"
	"fmt"

	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var (
	ErrPlaceOrderCommandIsNotConstructed = errors.New(
		"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
	)
	ErrItemsAreRequired = errs.NewValueIsRequiredError("items")
)

// PlaceOrderItem is one requested line. Prices are never taken from the client.
type PlaceOrderItem struct {
	MenuItemID kernel.UUID
	Quantity   int
}

// PlaceOrderCommand represents a customer placing an order at one restaurant.
//
// Example:
//
//	cmd, err := NewPlaceOrderCommand(customer, restaurantID, []PlaceOrderItem{
//	    {MenuItemID: paneerID, Quantity: 1},
//	    {MenuItemID: naanID, Quantity: 2},
//	})
//	if err != nil {
//	    return err
//	}
//	view, err := handler.Handle(ctx, cmd)
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	actor        actor.Actor
	restaurantID kernel.UUID
	items        []PlaceOrderItem

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand validates that at least one item is requested and every
// quantity is at least 1.
func NewPlaceOrderCommand(a actor.Actor, restaurantID kernel.UUID, items []PlaceOrderItem) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(a),
		cmd.setRestaurantID(restaurantID),
		cmd.setItems(items),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

func (c PlaceOrderCommand) Actor() actor.Actor {
	return c.actor
}

func (c PlaceOrderCommand) RestaurantID() kernel.UUID {
	return c.restaurantID
}

// Items returns a copy of the requested lines in request order.
func (c PlaceOrderCommand) Items() []PlaceOrderItem {
	items := make([]PlaceOrderItem, len(c.items))
	copy(items, c.items)
	return items
}

func (c *PlaceOrderCommand) setActor(a actor.Actor) error {
	if err := a.Validate(); err != nil {
		return err
	}
	c.actor = a
	return nil
}

func (c *PlaceOrderCommand) setRestaurantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("restaurantId", err)
	}
	c.restaurantID = id
	return nil
}

func (c *PlaceOrderCommand) setItems(items []PlaceOrderItem) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}
	for i, item := range items {
		if err := item.MenuItemID.Validate(); err != nil {
			return errs.NewValueIsRequiredErrorWithCause(fmt.Sprintf("items[%d].menuItemId", i), err)
		}
		if item.Quantity < 1 {
			return errs.NewValueIsOutOfRangeError(fmt.Sprintf("items[%d].quantity", i), item.Quantity, 1, "unbounded")
		}
	}
	c.items = make([]PlaceOrderItem, len(items))
	copy(c.items, items)
	return nil
}
