package commands

import (
	"context"
	"errors"
	"time"

	"fooddelivery/internal/core/application/views"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/restaurant"
	"fooddelivery/internal/pkg/errs"
)

type CreateRestaurantCommandHandler struct {
	uowFactory RestaurantUoWFactory
}

func NewCreateRestaurantCommandHandler(uowFactory RestaurantUoWFactory) CreateRestaurantCommandHandler {
	return CreateRestaurantCommandHandler{uowFactory: uowFactory}
}

// Handle returns errs.ErrConflict if the owner already has a restaurant.
func (h CreateRestaurantCommandHandler) Handle(ctx context.Context, cmd CreateRestaurantCommand) (views.Restaurant, error) {
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
	_, err := repo.GetByOwner(ctx, cmd.Owner().ID())
	if err == nil {
		return views.Restaurant{}, errs.NewConflictError("restaurant already exists for this owner")
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return views.Restaurant{}, err
	}

	r, err := restaurant.NewRestaurant(kernel.NewUUID(), cmd.Owner().ID(), cmd.Name(), cmd.Cuisine(), cmd.Banner(), time.Now())
	if err != nil {
		return views.Restaurant{}, err
	}

	if err = repo.Add(ctx, r); err != nil {
		return views.Restaurant{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return views.Restaurant{}, err
	}

	return views.NewRestaurant(r, nil), nil
}
