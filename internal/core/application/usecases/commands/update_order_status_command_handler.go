package commands

import (
	"context"

	"fooddelivery/internal/core/application/views"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
)

const maxStatusUpdateAttempts = 2

// UpdateOrderStatusCommandHandler applies the generic status update. Any updatable
// status may be set by an authorized party regardless of the current one.
type UpdateOrderStatusCommandHandler struct {
	uowFactory   OrderUoWFactory
	stateMachine services.OrderStateMachine
	sideEffects  *SideEffects
}

func NewUpdateOrderStatusCommandHandler(uowFactory OrderUoWFactory, sideEffects *SideEffects) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory:   uowFactory,
		stateMachine: services.NewOrderStateMachine(),
		sideEffects:  sideEffects,
	}
}

func (h UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) (views.Order, error) {
	if err := cmd.Validate(); err != nil {
		return views.Order{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return views.Order{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	for attempt := 1; ; attempt++ {
		o, err := orderRepo.Get(ctx, cmd.OrderID())
		if err != nil {
			return views.Order{}, err
		}

		r, err := uow.RestaurantRepository().Get(ctx, o.RestaurantID())
		if err != nil {
			return views.Order{}, err
		}

		match := matchAsRead(o)
		plan, err := h.stateMachine.UpdateStatus(cmd.Actor(), o, r.OwnerID(), cmd.Status())
		if err != nil {
			return views.Order{}, err
		}

		status := o.Status()
		n, err := orderRepo.ConditionalUpdate(ctx, o.ID(), match, ports.OrderMutation{Status: &status})
		if err != nil {
			return views.Order{}, err
		}
		if n == 0 {
			// A claim or another update landed after the read.
			if attempt < maxStatusUpdateAttempts {
				continue
			}
			return views.Order{}, errs.NewConflictError("order status")
		}

		if err = uow.Commit(ctx); err != nil {
			return views.Order{}, err
		}

		h.sideEffects.Apply(ctx, o, plan)
		return views.NewOrder(o, cmd.Actor().Role()), nil
	}
}

// matchAsRead pins the write to the rider and status the plan was computed from.
func matchAsRead(o *order.Order) ports.OrderMatch {
	match := ports.OrderMatch{StatusIn: []order.Status{o.Status()}}
	if riderID := o.RiderID(); riderID != nil {
		match.RiderIs = riderID
	} else {
		match.RiderUnassigned = true
	}
	return match
}
