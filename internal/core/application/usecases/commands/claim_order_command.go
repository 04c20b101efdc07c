package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrClaimOrderCommandIsNotConstructed = errors.New(
	"ClaimOrderCommand must be created via NewClaimOrderCommand constructor",
)

// ClaimOrderCommand represents a rider trying to become the assigned rider of an order.
type ClaimOrderCommand struct {
	rider   actor.Actor
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewClaimOrderCommand(rider actor.Actor, orderID kernel.UUID) (ClaimOrderCommand, error) {
	if err := errors.Join(rider.Validate(), orderID.Validate()); err != nil {
		return ClaimOrderCommand{}, err
	}
	return ClaimOrderCommand{
		rider:   rider,
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ClaimOrderCommand) Validate() error {
	return c.guard.Validate(ErrClaimOrderCommandIsNotConstructed)
}

func (c ClaimOrderCommand) Rider() actor.Actor {
	return c.rider
}

func (c ClaimOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
