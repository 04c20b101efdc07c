package queries

import (
	"context"

	"fooddelivery/internal/core/application/views"
	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/pkg/errs"
)

// OrderQueryHandler serves role-scoped order reads.
//
// Example:
//
//	handler := NewOrderQueryHandler(orderRepo, restaurantRepo)
//	q, _ := NewGetOrderQuery(customer, orderID)
//	view, err := handler.GetOrder(ctx, q)
type OrderQueryHandler struct {
	orders       OrderReader
	restaurants  RestaurantReader
	stateMachine services.OrderStateMachine
}

func NewOrderQueryHandler(orders OrderReader, restaurants RestaurantReader) OrderQueryHandler {
	return OrderQueryHandler{
		orders:       orders,
		restaurants:  restaurants,
		stateMachine: services.NewOrderStateMachine(),
	}
}

// GetOrder returns errs.ErrForbidden when the caller has no relation to the order.
func (h OrderQueryHandler) GetOrder(ctx context.Context, q GetOrderQuery) (views.Order, error) {
	if err := q.Validate(); err != nil {
		return views.Order{}, err
	}

	o, err := h.orders.Get(ctx, q.orderID)
	if err != nil {
		return views.Order{}, err
	}

	r, err := h.restaurants.Get(ctx, o.RestaurantID())
	if err != nil {
		return views.Order{}, err
	}

	if err = h.stateMachine.CanView(q.actor, o, r.OwnerID()); err != nil {
		return views.Order{}, err
	}

	return views.NewOrder(o, q.actor.Role()), nil
}

// ListMyOrders returns newest first. Admins have no "own" orders and are refused.
func (h OrderQueryHandler) ListMyOrders(ctx context.Context, q ListMyOrdersQuery) ([]views.Order, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	var (
		orders []*order.Order
		err    error
	)
	switch q.actor.Role() {
	case actor.Customer:
		orders, err = h.orders.ListByCustomer(ctx, q.actor.ID())
	case actor.Restaurant:
		r, lookupErr := h.restaurants.GetByOwner(ctx, q.actor.ID())
		if lookupErr != nil {
			return nil, lookupErr
		}
		orders, err = h.orders.ListByRestaurant(ctx, r.ID())
	case actor.Rider:
		orders, err = h.orders.ListByRider(ctx, q.actor.ID())
	case actor.Admin, actor.Unknown:
		return nil, errs.NewForbiddenError("list my orders", q.actor.Role().String()+" has no own orders")
	}
	if err != nil {
		return nil, err
	}

	return views.NewOrders(orders, q.actor.Role()), nil
}

// ListAvailable returns claimable orders as riders see them.
func (h OrderQueryHandler) ListAvailable(ctx context.Context, q ListAvailableOrdersQuery) ([]views.Order, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.orders.ListAvailable(ctx)
	if err != nil {
		return nil, err
	}
	return views.NewOrders(orders, actor.Rider), nil
}
