package commands

import (
	"context"
	"fmt"

	"fooddelivery/internal/core/application/views"
	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
)

// AcceptOrderCommandHandler moves a PLACED order to ACCEPTED and announces it to riders.
type AcceptOrderCommandHandler struct {
	uowFactory   OrderUoWFactory
	stateMachine services.OrderStateMachine
	sideEffects  *SideEffects
}

func NewAcceptOrderCommandHandler(uowFactory OrderUoWFactory, sideEffects *SideEffects) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{
		uowFactory:   uowFactory,
		stateMachine: services.NewOrderStateMachine(),
		sideEffects:  sideEffects,
	}
}

// Handle writes the new status only if the order is still PLACED, so two accepts
// racing each other produce one success and one ErrInvalidTransition.
func (h AcceptOrderCommandHandler) Handle(ctx context.Context, cmd AcceptOrderCommand) (views.Order, error) {
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
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return views.Order{}, err
	}

	r, err := uow.RestaurantRepository().Get(ctx, o.RestaurantID())
	if err != nil {
		return views.Order{}, err
	}

	plan, err := h.stateMachine.Accept(cmd.Actor(), o, r.OwnerID())
	if err != nil {
		return views.Order{}, err
	}

	accepted := order.Accepted
	n, err := orderRepo.ConditionalUpdate(ctx, o.ID(),
		ports.OrderMatch{StatusIn: []order.Status{order.Placed}},
		ports.OrderMutation{Status: &accepted},
	)
	if err != nil {
		return views.Order{}, err
	}
	if n == 0 {
		return views.Order{}, fmt.Errorf("%w: order %s is no longer PLACED", order.ErrInvalidTransition, o.ID())
	}

	if err = uow.Commit(ctx); err != nil {
		return views.Order{}, err
	}

	h.sideEffects.Apply(ctx, o, plan)
	return views.NewOrder(o, actor.Restaurant), nil
}
