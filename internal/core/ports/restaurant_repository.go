package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/restaurant"
)

// RestaurantRepository persists restaurants. An owner has at most one restaurant.
type RestaurantRepository interface {
	// Add stores a new restaurant. Returns errs.ErrConflict if the owner already has one.
	Add(ctx context.Context, aggregate *restaurant.Restaurant) error
	Update(ctx context.Context, aggregate *restaurant.Restaurant) error
	Get(ctx context.Context, id kernel.UUID) (*restaurant.Restaurant, error)
	// GetByOwner returns errs.ErrObjectNotFound when the user owns no restaurant.
	GetByOwner(ctx context.Context, ownerID kernel.UUID) (*restaurant.Restaurant, error)
	// List returns all restaurants, newest first.
	List(ctx context.Context) ([]*restaurant.Restaurant, error)
}

// MenuItemRepository persists menu items. Deleted items are hidden from every read.
type MenuItemRepository interface {
	Add(ctx context.Context, item *restaurant.MenuItem) error
	Update(ctx context.Context, item *restaurant.MenuItem) error
	Get(ctx context.Context, id kernel.UUID) (*restaurant.MenuItem, error)
	Delete(ctx context.Context, id kernel.UUID) error
	// ListByRestaurant returns the menu, newest first.
	ListByRestaurant(ctx context.Context, restaurantID kernel.UUID) ([]*restaurant.MenuItem, error)
}
