package queries

import (
	"errors"

	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
	ErrListMyOrdersQueryIsNotConstructed = errors.New(
		"ListMyOrdersQuery must be created via NewListMyOrdersQuery constructor",
	)
	ErrListAvailableOrdersQueryIsNotConstructed = errors.New(
		"ListAvailableOrdersQuery must be created via NewListAvailableOrdersQuery constructor",
	)
)

// GetOrderQuery reads one order on behalf of a party related to it.
type GetOrderQuery struct {
	actor   actor.Actor
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(a actor.Actor, orderID kernel.UUID) (GetOrderQuery, error) {
	if err := errors.Join(a.Validate(), orderID.Validate()); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{actor: a, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// ListMyOrdersQuery lists the orders of the caller according to its role.
type ListMyOrdersQuery struct {
	actor actor.Actor

	guard guard.ConstructorGuard
}

func NewListMyOrdersQuery(a actor.Actor) (ListMyOrdersQuery, error) {
	if err := a.Validate(); err != nil {
		return ListMyOrdersQuery{}, err
	}
	return ListMyOrdersQuery{actor: a, guard: guard.NewConstructorGuard()}, nil
}

func (q ListMyOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListMyOrdersQueryIsNotConstructed)
}

// ListAvailableOrdersQuery lists unassigned orders riders can claim.
type ListAvailableOrdersQuery struct {
	guard guard.ConstructorGuard
}

func NewListAvailableOrdersQuery() ListAvailableOrdersQuery {
	return ListAvailableOrdersQuery{guard: guard.NewConstructorGuard()}
}

func (q ListAvailableOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListAvailableOrdersQueryIsNotConstructed)
}
