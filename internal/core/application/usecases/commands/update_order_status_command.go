package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/guard"
)

var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

// UpdateOrderStatusCommand represents the generic status update by any party of an order.
type UpdateOrderStatusCommand struct {
	actor   actor.Actor
	orderID kernel.UUID
	status  order.Status

	guard guard.ConstructorGuard
}

// NewUpdateOrderStatusCommand parses status; an unknown value fails with order.ErrInvalidStatus.
func NewUpdateOrderStatusCommand(a actor.Actor, orderID kernel.UUID, status string) (UpdateOrderStatusCommand, error) {
	target, statusErr := order.ParseStatus(status)
	if err := errors.Join(a.Validate(), orderID.Validate(), statusErr); err != nil {
		return UpdateOrderStatusCommand{}, err
	}
	return UpdateOrderStatusCommand{
		actor:   a,
		orderID: orderID,
		status:  target,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

func (c UpdateOrderStatusCommand) Actor() actor.Actor {
	return c.actor
}

func (c UpdateOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c UpdateOrderStatusCommand) Status() order.Status {
	return c.status
}
