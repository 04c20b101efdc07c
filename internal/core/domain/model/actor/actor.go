// Package actor models the authenticated party initiating an operation.
package actor

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
)

var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")

// Actor is an authenticated user id paired with its role.
type Actor struct {
	id   kernel.UUID
	role Role
}

func NewActor(id kernel.UUID, role Role) (Actor, error) {
	if err := errors.Join(id.Validate(), role.Validate()); err != nil {
		return Actor{}, err
	}
	return Actor{id: id, role: role}, nil
}

func (a Actor) ID() kernel.UUID {
	return a.id
}

func (a Actor) Role() Role {
	return a.role
}

// Is reports whether the actor holds the given role.
func (a Actor) Is(role Role) bool {
	return a.role == role
}

// Validate rejects the zero value.
func (a Actor) Validate() error {
	if a.id.Validate() != nil || a.role.Validate() != nil {
		return ErrActorIsNotConstructed
	}
	return nil
}
