// Package queries contains read operations. Queries never change state and build
// their responses from the views package.
package queries

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/restaurant"
	"fooddelivery/internal/core/domain/model/user"
)

type (
	// OrderReader is the read side of the order repository.
	OrderReader interface {
		Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
		ListByCustomer(ctx context.Context, customerID kernel.UUID) ([]*order.Order, error)
		ListByRestaurant(ctx context.Context, restaurantID kernel.UUID) ([]*order.Order, error)
		ListByRider(ctx context.Context, riderID kernel.UUID) ([]*order.Order, error)
		ListAvailable(ctx context.Context) ([]*order.Order, error)
	}

	// RestaurantReader is the read side of the restaurant repository.
	RestaurantReader interface {
		Get(ctx context.Context, id kernel.UUID) (*restaurant.Restaurant, error)
		GetByOwner(ctx context.Context, ownerID kernel.UUID) (*restaurant.Restaurant, error)
	}

	// MenuReader is the read side of the menu item repository.
	MenuReader interface {
		ListByRestaurant(ctx context.Context, restaurantID kernel.UUID) ([]*restaurant.MenuItem, error)
	}

	// UserReader is the read side of the user repository.
	UserReader interface {
		Get(ctx context.Context, id kernel.UUID) (*user.User, error)
	}
)
