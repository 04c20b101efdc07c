package commands

import (
	"context"
	"time"

	"fooddelivery/internal/core/application/views"
	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/restaurant"
	"fooddelivery/internal/pkg/errs"
)

// MenuItemCommandHandler maintains the menu of the caller's restaurant.
// Items of other restaurants are reported as not found.
type MenuItemCommandHandler struct {
	uowFactory RestaurantUoWFactory
}

func NewMenuItemCommandHandler(uowFactory RestaurantUoWFactory) MenuItemCommandHandler {
	return MenuItemCommandHandler{uowFactory: uowFactory}
}

func (h MenuItemCommandHandler) Create(ctx context.Context, cmd CreateMenuItemCommand) (views.MenuItem, error) {
	if err := cmd.Validate(); err != nil {
		return views.MenuItem{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return views.MenuItem{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	r, err := uow.RestaurantRepository().GetByOwner(ctx, cmd.Owner().ID())
	if err != nil {
		return views.MenuItem{}, err
	}

	item, err := restaurant.NewMenuItem(kernel.NewUUID(), r.ID(), cmd.Details(), time.Now())
	if err != nil {
		return views.MenuItem{}, err
	}

	if err = uow.MenuItemRepository().Add(ctx, item); err != nil {
		return views.MenuItem{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return views.MenuItem{}, err
	}

	return views.NewMenuItem(item), nil
}

func (h MenuItemCommandHandler) Update(ctx context.Context, cmd UpdateMenuItemCommand) (views.MenuItem, error) {
	if err := cmd.Validate(); err != nil {
		return views.MenuItem{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return views.MenuItem{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	item, err := ownedMenuItem(ctx, uow, cmd.Owner(), cmd.MenuItemID())
	if err != nil {
		return views.MenuItem{}, err
	}

	if err = item.Apply(cmd.Changes()); err != nil {
		return views.MenuItem{}, err
	}

	if err = uow.MenuItemRepository().Update(ctx, item); err != nil {
		return views.MenuItem{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return views.MenuItem{}, err
	}

	return views.NewMenuItem(item), nil
}

func (h MenuItemCommandHandler) Delete(ctx context.Context, cmd DeleteMenuItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	item, err := ownedMenuItem(ctx, uow, cmd.Owner(), cmd.MenuItemID())
	if err != nil {
		return err
	}

	if err = uow.MenuItemRepository().Delete(ctx, item.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func ownedMenuItem(ctx context.Context, uow RestaurantUoW, owner actor.Actor, id kernel.UUID) (*restaurant.MenuItem, error) {
	r, err := uow.RestaurantRepository().GetByOwner(ctx, owner.ID())
	if err != nil {
		return nil, err
	}

	item, err := uow.MenuItemRepository().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !item.BelongsTo(r.ID()) {
		return nil, errs.NewObjectNotFoundError("menuItem", id.String())
	}
	return item, nil
}
