// Package ports defines the contracts between the ordering core and its infrastructure:
// relational repositories, the notification store, the realtime broadcaster and token handling.
package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
)

// OrderMatch is the predicate of a conditional order update. Zero fields do not constrain.
type OrderMatch struct {
	// RiderUnassigned requires rider_id IS NULL.
	RiderUnassigned bool
	// RiderIs requires rider_id to equal the given rider.
	RiderIs *kernel.UUID
	// StatusIn requires the current status to be one of the listed values.
	StatusIn []order.Status
}

// OrderMutation lists the columns a conditional update writes. Nil fields are left untouched.
type OrderMutation struct {
	RiderID *kernel.UUID
	Status  *order.Status
}

// OrderRepository defines the persistence contract for order aggregates.
// Orders are stored together with their lines and payment record.
type OrderRepository interface {
	// Add persists a new order with its lines and payment.
	// Callers run it inside a unit of work so the three writes commit together.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its lines and payment.
	// Returns errs.ErrObjectNotFound when absent.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ConditionalUpdate applies mutation to the order only if match still holds and
	// returns the number of rows changed. The predicate and the write are one statement,
	// so concurrent callers cannot both observe a match.
	//
	// Example:
	//
	//	target := order.Preparing
	//	n, err := repo.ConditionalUpdate(ctx, id,
	//	    ports.OrderMatch{RiderUnassigned: true, StatusIn: order.ClaimableStatuses()},
	//	    ports.OrderMutation{RiderID: &riderID, Status: &target},
	//	)
	//	if n == 0 {
	//	    // another rider won
	//	}
	ConditionalUpdate(ctx context.Context, id kernel.UUID, match OrderMatch, mutation OrderMutation) (int64, error)

	// ListByCustomer returns the customer's orders, newest first.
	ListByCustomer(ctx context.Context, customerID kernel.UUID) ([]*order.Order, error)

	// ListByRestaurant returns the restaurant's orders, newest first.
	ListByRestaurant(ctx context.Context, restaurantID kernel.UUID) ([]*order.Order, error)

	// ListByRider returns orders assigned to the rider, newest first.
	ListByRider(ctx context.Context, riderID kernel.UUID) ([]*order.Order, error)

	// ListAvailable returns unassigned orders in a claimable status, newest first.
	ListAvailable(ctx context.Context) ([]*order.Order, error)
}
