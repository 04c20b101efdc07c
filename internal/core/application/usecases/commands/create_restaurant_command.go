package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrCreateRestaurantCommandIsNotConstructed = errors.New(
	"CreateRestaurantCommand must be created via NewCreateRestaurantCommand constructor",
)

// CreateRestaurantCommand registers the single restaurant of a RESTAURANT account.
type CreateRestaurantCommand struct {
	owner   actor.Actor
	name    string
	cuisine string
	banner  string

	guard guard.ConstructorGuard
}

func NewCreateRestaurantCommand(owner actor.Actor, name, cuisine, banner string) (CreateRestaurantCommand, error) {
	if err := owner.Validate(); err != nil {
		return CreateRestaurantCommand{}, err
	}
	if !owner.Is(actor.Restaurant) {
		return CreateRestaurantCommand{}, errs.NewForbiddenError("create restaurant", "only restaurant accounts own restaurants")
	}
	return CreateRestaurantCommand{
		owner:   owner,
		name:    name,
		cuisine: cuisine,
		banner:  banner,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c CreateRestaurantCommand) Validate() error {
	return c.guard.Validate(ErrCreateRestaurantCommandIsNotConstructed)
}

func (c CreateRestaurantCommand) Owner() actor.Actor {
	return c.owner
}

func (c CreateRestaurantCommand) Name() string {
	return c.name
}

func (c CreateRestaurantCommand) Cuisine() string {
	return c.cuisine
}

func (c CreateRestaurantCommand) Banner() string {
	return c.banner
}
