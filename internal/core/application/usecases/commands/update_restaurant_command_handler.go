package commands

import (
	"context"

	"fooddelivery/internal/core/application/views"
)

type UpdateRestaurantCommandHandler struct {
	uowFactory RestaurantUoWFactory
}

func NewUpdateRestaurantCommandHandler(uowFactory RestaurantUoWFactory) UpdateRestaurantCommandHandler {
	return UpdateRestaurantCommandHandler{uowFactory: uowFactory}
}

func (h UpdateRestaurantCommandHandler) Handle(ctx context.Context, cmd UpdateRestaurantCommand) (views.Restaurant, error) {
	if err := cmd.Validate(); err != nil {
		return views.Restaurant{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return views.Restaurant{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.RestaurantRepository()
	r, err := repo.GetByOwner(ctx, cmd.Owner().ID())
	if err != nil {
		return views.Restaurant{}, err
	}

	if err = r.Update(cmd.Name(), cmd.Cuisine(), cmd.Banner()); err != nil {
		return views.Restaurant{}, err
	}

	if err = repo.Update(ctx, r); err != nil {
		return views.Restaurant{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return views.Restaurant{}, err
	}

	return views.NewRestaurant(r, nil), nil
}
