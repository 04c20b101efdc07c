// Package commands contains business operations that modify system state.
// Every command is built through a validating constructor and executed by its handler
// inside a unit of work; realtime and inbox side effects run after commit.
package commands

import (
	"context"

	"fooddelivery/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// RestaurantRepoFactory provides access to restaurant repository within a transaction.
	RestaurantRepoFactory interface {
		RestaurantRepository() ports.RestaurantRepository
	}

	// MenuItemRepoFactory provides access to menu item repository within a transaction.
	MenuItemRepoFactory interface {
		MenuItemRepository() ports.MenuItemRepository
	}

	// UserRepoFactory provides access to user repository within a transaction.
	UserRepoFactory interface {
		UserRepository() ports.UserRepository
	}

	// OrderUoW manages transactions for order transitions. Restaurants and menu items
	// are read in the same transaction to resolve ownership and authoritative prices.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   restaurant, err := uow.RestaurantRepository().Get(ctx, restaurantID)
	//   // ... build the order
	//   err = uow.OrderRepository().Add(ctx, o)
	//
	//   err = uow.Commit(ctx)
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		RestaurantRepoFactory
		MenuItemRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// RestaurantUoW manages transactions for restaurant and menu maintenance.
	RestaurantUoW interface {
		TxManager
		RestaurantRepoFactory
		MenuItemRepoFactory
	}

	// RestaurantUoWFactory creates new restaurant unit of work instances.
	RestaurantUoWFactory interface {
		Create() RestaurantUoW
	}

	// UserUoW manages transactions for account operations.
	UserUoW interface {
		TxManager
		UserRepoFactory
	}

	// UserUoWFactory creates new user unit of work instances.
	UserUoWFactory interface {
		Create() UserUoW
	}
)
