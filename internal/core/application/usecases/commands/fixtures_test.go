package commands_test

import (
	"testing"
	"time"

	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/restaurant"

	"github.com/stretchr/testify/require"
)

func newActor(t *testing.T, role actor.Role) actor.Actor {
	t.Helper()
	a, err := actor.NewActor(kernel.NewUUID(), role)
	require.NoError(t, err)
	return a
}

func newRestaurant(t *testing.T, owner actor.Actor) *restaurant.Restaurant {
	t.Helper()
	r, err := restaurant.NewRestaurant(kernel.NewUUID(), owner.ID(), "Spice Route", "Indian", "", time.Now())
	require.NoError(t, err)
	return r
}

func newMenuItem(t *testing.T, restaurantID kernel.UUID, name, price string) *restaurant.MenuItem {
	t.Helper()
	item, err := restaurant.NewMenuItem(kernel.NewUUID(), restaurantID, restaurant.MenuItemDetails{
		Name:  name,
		Price: kernel.MustMoney(price),
		Veg:   true,
	}, time.Now())
	require.NoError(t, err)
	return item
}

// orderIn builds an order of customer at r in the given status and rider assignment.
func orderIn(t *testing.T, customer actor.Actor, r *restaurant.Restaurant, status order.Status, riderID *kernel.UUID) *order.Order {
	t.Helper()
	line, err := order.NewLine(kernel.NewUUID(), "Thali", 1, kernel.MustMoney("12.50"))
	require.NoError(t, err)
	placed, err := order.NewOrder(kernel.NewUUID(), customer.ID(), r.ID(), []order.Line{line}, time.Now())
	require.NoError(t, err)

	o, err := order.RestoreOrder(placed.ID(), placed.CustomerID(), placed.RestaurantID(), riderID,
		status, placed.Total(), placed.Lines(), placed.Payment(), placed.CreatedAt())
	require.NoError(t, err)
	return o
}
