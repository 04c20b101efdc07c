package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/restaurant"
	"fooddelivery/internal/pkg/guard"
)

var (
	ErrCreateMenuItemCommandIsNotConstructed = errors.New(
		"CreateMenuItemCommand must be created via NewCreateMenuItemCommand constructor",
	)
	ErrUpdateMenuItemCommandIsNotConstructed = errors.New(
		"UpdateMenuItemCommand must be created via NewUpdateMenuItemCommand constructor",
	)
	ErrDeleteMenuItemCommandIsNotConstructed = errors.New(
		"DeleteMenuItemCommand must be created via NewDeleteMenuItemCommand constructor",
	)
)

// CreateMenuItemCommand adds a dish to the owner's restaurant.
type CreateMenuItemCommand struct {
	owner   actor.Actor
	details restaurant.MenuItemDetails

	guard guard.ConstructorGuard
}

func NewCreateMenuItemCommand(owner actor.Actor, details restaurant.MenuItemDetails) (CreateMenuItemCommand, error) {
	if err := owner.Validate(); err != nil {
		return CreateMenuItemCommand{}, err
	}
	return CreateMenuItemCommand{owner: owner, details: details, guard: guard.NewConstructorGuard()}, nil
}

func (c CreateMenuItemCommand) Validate() error {
	return c.guard.Validate(ErrCreateMenuItemCommandIsNotConstructed)
}

func (c CreateMenuItemCommand) Owner() actor.Actor {
	return c.owner
}

func (c CreateMenuItemCommand) Details() restaurant.MenuItemDetails {
	return c.details
}

// UpdateMenuItemCommand is a partial update of one dish.
type UpdateMenuItemCommand struct {
	owner      actor.Actor
	menuItemID kernel.UUID
	changes    restaurant.MenuItemChanges

	guard guard.ConstructorGuard
}

func NewUpdateMenuItemCommand(
	owner actor.Actor,
	menuItemID kernel.UUID,
	changes restaurant.MenuItemChanges,
) (UpdateMenuItemCommand, error) {
	if err := errors.Join(owner.Validate(), menuItemID.Validate()); err != nil {
		return UpdateMenuItemCommand{}, err
	}
	return UpdateMenuItemCommand{
		owner:      owner,
		menuItemID: menuItemID,
		changes:    changes,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateMenuItemCommand) Validate() error {
	return c.guard.Validate(ErrUpdateMenuItemCommandIsNotConstructed)
}

func (c UpdateMenuItemCommand) Owner() actor.Actor {
	return c.owner
}

func (c UpdateMenuItemCommand) MenuItemID() kernel.UUID {
	return c.menuItemID
}

func (c UpdateMenuItemCommand) Changes() restaurant.MenuItemChanges {
	return c.changes
}

// DeleteMenuItemCommand hides a dish from the menu. Past orders keep their lines.
type DeleteMenuItemCommand struct {
	owner      actor.Actor
	menuItemID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteMenuItemCommand(owner actor.Actor, menuItemID kernel.UUID) (DeleteMenuItemCommand, error) {
	if err := errors.Join(owner.Validate(), menuItemID.Validate()); err != nil {
		return DeleteMenuItemCommand{}, err
	}
	return DeleteMenuItemCommand{owner: owner, menuItemID: menuItemID, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteMenuItemCommand) Validate() error {
	return c.guard.Validate(ErrDeleteMenuItemCommandIsNotConstructed)
}

func (c DeleteMenuItemCommand) Owner() actor.Actor {
	return c.owner
}

func (c DeleteMenuItemCommand) MenuItemID() kernel.UUID {
	return c.menuItemID
}
