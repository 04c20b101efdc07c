package queries

import (
	"context"
	"errors"

	"fooddelivery/internal/core/application/views"
	"fooddelivery/internal/core/domain/model/kernel"
)

// OrderPartiesQueryHandler resolves the restaurant and customer names carried in
// order events.
type OrderPartiesQueryHandler struct {
	restaurants RestaurantReader
	users       UserReader
}

func NewOrderPartiesQueryHandler(restaurants RestaurantReader, users UserReader) OrderPartiesQueryHandler {
	return OrderPartiesQueryHandler{restaurants: restaurants, users: users}
}

// OrderParties returns what it could resolve together with the lookup errors,
// so a missing customer still leaves the restaurant in place.
func (h OrderPartiesQueryHandler) OrderParties(
	ctx context.Context,
	restaurantID, customerID kernel.UUID,
) (views.OrderParties, error) {
	var parties views.OrderParties

	r, restaurantErr := h.restaurants.Get(ctx, restaurantID)
	if restaurantErr == nil {
		parties.Restaurant = &views.OrderParty{ID: r.ID().String(), Name: r.Name()}
	}

	u, userErr := h.users.Get(ctx, customerID)
	if userErr == nil {
		parties.Customer = &views.OrderParty{ID: u.ID().String(), Name: u.Name()}
	}

	return parties, errors.Join(restaurantErr, userErr)
}
