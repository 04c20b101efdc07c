package commands

import (
	"context"

	"fooddelivery/internal/core/application/views"
	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
)

// ClaimOrderCommandHandler assigns a rider to an order with a single conditional
// write. No application lock is taken; the storage decides the winner.
//
// Example:
//
//	cmd, _ := NewClaimOrderCommand(rider, orderID)
//	view, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, order.ErrAlreadyAssigned):
//	    // lost the race, refresh the available list
//	case err != nil:
//	    return err
//	}
type ClaimOrderCommandHandler struct {
	uowFactory   OrderUoWFactory
	stateMachine services.OrderStateMachine
	sideEffects  *SideEffects
}

func NewClaimOrderCommandHandler(uowFactory OrderUoWFactory, sideEffects *SideEffects) ClaimOrderCommandHandler {
	return ClaimOrderCommandHandler{
		uowFactory:   uowFactory,
		stateMachine: services.NewOrderStateMachine(),
		sideEffects:  sideEffects,
	}
}

// Handle fails with errs.ErrObjectNotFound, errs.ErrForbidden, order.ErrInvalidTransition
// or order.ErrAlreadyAssigned. A lost race is never retried.
func (h ClaimOrderCommandHandler) Handle(ctx context.Context, cmd ClaimOrderCommand) (views.Order, error) {
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
	current, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return views.Order{}, err
	}

	target, err := h.stateMachine.Claim(cmd.Rider(), current)
	if err != nil {
		return views.Order{}, err
	}

	riderID := cmd.Rider().ID()
	n, err := orderRepo.ConditionalUpdate(ctx, current.ID(),
		ports.OrderMatch{RiderUnassigned: true, StatusIn: order.ClaimableStatuses()},
		ports.OrderMutation{RiderID: &riderID, Status: &target},
	)
	if err != nil {
		return views.Order{}, err
	}
	if n == 0 {
		return views.Order{}, order.ErrAlreadyAssigned
	}

	claimed, err := orderRepo.Get(ctx, current.ID())
	if err != nil {
		return views.Order{}, err
	}

	r, err := uow.RestaurantRepository().Get(ctx, claimed.RestaurantID())
	if err != nil {
		return views.Order{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return views.Order{}, err
	}

	h.sideEffects.Apply(ctx, claimed, h.stateMachine.Claimed(claimed, r.OwnerID()))
	return views.NewOrder(claimed, actor.Rider), nil
}
