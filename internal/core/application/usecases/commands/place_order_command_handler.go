package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fooddelivery/internal/core/application/views"
	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/restaurant"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/pkg/errs"
)

// ErrInvalidItem is returned when a requested menu item is missing, deleted or
// belongs to another restaurant.
var ErrInvalidItem = errors.New("menu item is not available at this restaurant")

// PlaceOrderCommandHandler creates an order together with its lines and payment
// in one transaction, then notifies the restaurant and the customer.
type PlaceOrderCommandHandler struct {
	uowFactory   OrderUoWFactory
	stateMachine services.OrderStateMachine
	sideEffects  *SideEffects
}

func NewPlaceOrderCommandHandler(uowFactory OrderUoWFactory, sideEffects *SideEffects) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory:   uowFactory,
		stateMachine: services.NewOrderStateMachine(),
		sideEffects:  sideEffects,
	}
}

// Handle prices every line from the restaurant menu, so the total is always
// computed from authoritative prices.
func (h PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (views.Order, error) {
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

	r, err := uow.RestaurantRepository().Get(ctx, cmd.RestaurantID())
	if err != nil {
		return views.Order{}, err
	}

	lines, err := h.priceLines(ctx, uow.MenuItemRepository(), r, cmd.Items())
	if err != nil {
		return views.Order{}, err
	}

	o, err := order.NewOrder(kernel.NewUUID(), cmd.Actor().ID(), r.ID(), lines, time.Now())
	if err != nil {
		return views.Order{}, err
	}

	plan, err := h.stateMachine.Place(cmd.Actor(), o, r.OwnerID())
	if err != nil {
		return views.Order{}, err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return views.Order{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return views.Order{}, err
	}

	h.sideEffects.Apply(ctx, o, plan)
	return views.NewOrder(o, actor.Customer), nil
}

func (h PlaceOrderCommandHandler) priceLines(
	ctx context.Context,
	menu menuItemGetter,
	r *restaurant.Restaurant,
	items []PlaceOrderItem,
) ([]order.Line, error) {
	lines := make([]order.Line, 0, len(items))
	for _, item := range items {
		menuItem, err := menu.Get(ctx, item.MenuItemID)
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidItem, item.MenuItemID)
		}
		if err != nil {
			return nil, err
		}
		if !menuItem.BelongsTo(r.ID()) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidItem, item.MenuItemID)
		}

		line, err := order.NewLine(menuItem.ID(), menuItem.Name(), item.Quantity, menuItem.Price())
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

type menuItemGetter interface {
	Get(ctx context.Context, id kernel.UUID) (*restaurant.MenuItem, error)
}
