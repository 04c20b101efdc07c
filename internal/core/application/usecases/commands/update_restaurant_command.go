package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/pkg/guard"
)

var ErrUpdateRestaurantCommandIsNotConstructed = errors.New(
	"UpdateRestaurantCommand must be created via NewUpdateRestaurantCommand constructor",
)

// UpdateRestaurantCommand is a partial update of the owner's restaurant.
// Empty fields keep their stored values.
type UpdateRestaurantCommand struct {
	owner   actor.Actor
	name    string
	cuisine string
	banner  string

	guard guard.ConstructorGuard
}

func NewUpdateRestaurantCommand(owner actor.Actor, name, cuisine, banner string) (UpdateRestaurantCommand, error) {
	if err := owner.Validate(); err != nil {
		return UpdateRestaurantCommand{}, err
	}
	return UpdateRestaurantCommand{
		owner:   owner,
		name:    name,
		cuisine: cuisine,
		banner:  banner,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateRestaurantCommand) Validate() error {
	return c.guard.Validate(ErrUpdateRestaurantCommandIsNotConstructed)
}

func (c UpdateRestaurantCommand) Owner() actor.Actor {
	return c.owner
}

func (c UpdateRestaurantCommand) Name() string {
	return c.name
}

func (c UpdateRestaurantCommand) Cuisine() string {
	return c.cuisine
}

func (c UpdateRestaurantCommand) Banner() string {
	return c.banner
}
