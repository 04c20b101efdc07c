package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrAcceptOrderCommandIsNotConstructed = errors.New(
	"AcceptOrderCommand must be created via NewAcceptOrderCommand constructor",
)

// AcceptOrderCommand represents a restaurant confirming a PLACED order.
type AcceptOrderCommand struct {
	actor   actor.Actor
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewAcceptOrderCommand(a actor.Actor, orderID kernel.UUID) (AcceptOrderCommand, error) {
	if err := errors.Join(a.Validate(), orderID.Validate()); err != nil {
		return AcceptOrderCommand{}, err
	}
	return AcceptOrderCommand{
		actor:   a,
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c AcceptOrderCommand) Validate() error {
	return c.guard.Validate(ErrAcceptOrderCommandIsNotConstructed)
}

func (c AcceptOrderCommand) Actor() actor.Actor {
	return c.actor
}

func (c AcceptOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
