package commands

import (
	"errors"
	"strings"

	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var (
	ErrRegisterUserCommandIsNotConstructed = errors.New(
		"RegisterUserCommand must be created via NewRegisterUserCommand constructor",
	)
	ErrLoginCommandIsNotConstructed = errors.New(
		"LoginCommand must be created via NewLoginCommand constructor",
	)
	ErrUpdateProfileCommandIsNotConstructed = errors.New(
		"UpdateProfileCommand must be created via NewUpdateProfileCommand constructor",
	)
)

// RegisterUserCommand creates a self-registered account.
type RegisterUserCommand struct {
	name     string
	email    string
	password string
	role     actor.Role

	guard guard.ConstructorGuard
}

// NewRegisterUserCommand accepts CUSTOMER (or its alias USER), RESTAURANT and RIDER.
func NewRegisterUserCommand(name, email, password, role string) (RegisterUserCommand, error) {
	r, err := actor.ParseRole(role)
	if err != nil {
		return RegisterUserCommand{}, err
	}
	if !r.IsSelfRegistrable() {
		return RegisterUserCommand{}, errs.NewValueIsInvalidError("role")
	}
	return RegisterUserCommand{
		name:     strings.TrimSpace(name),
		email:    email,
		password: password,
		role:     r,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c RegisterUserCommand) Validate() error {
	return c.guard.Validate(ErrRegisterUserCommandIsNotConstructed)
}

func (c RegisterUserCommand) Name() string {
	return c.name
}

func (c RegisterUserCommand) Email() string {
	return c.email
}

func (c RegisterUserCommand) Password() string {
	return c.password
}

func (c RegisterUserCommand) Role() actor.Role {
	return c.role
}

// LoginCommand exchanges credentials for a token.
type LoginCommand struct {
	email    string
	password string

	guard guard.ConstructorGuard
}

func NewLoginCommand(email, password string) (LoginCommand, error) {
	var emailErr, passwordErr error
	if strings.TrimSpace(email) == "" {
		emailErr = errs.NewValueIsRequiredError("email")
	}
	if password == "" {
		passwordErr = errs.NewValueIsRequiredError("password")
	}
	if err := errors.Join(emailErr, passwordErr); err != nil {
		return LoginCommand{}, err
	}
	return LoginCommand{
		email:    user.NormalizeEmail(email),
		password: password,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c LoginCommand) Validate() error {
	return c.guard.Validate(ErrLoginCommandIsNotConstructed)
}

func (c LoginCommand) Email() string {
	return c.email
}

func (c LoginCommand) Password() string {
	return c.password
}

// UpdateProfileCommand is a partial update of the caller's name and image.
type UpdateProfileCommand struct {
	actor actor.Actor
	name  string
	image string

	guard guard.ConstructorGuard
}

func NewUpdateProfileCommand(a actor.Actor, name, image string) (UpdateProfileCommand, error) {
	if err := a.Validate(); err != nil {
		return UpdateProfileCommand{}, err
	}
	return UpdateProfileCommand{actor: a, name: name, image: image, guard: guard.NewConstructorGuard()}, nil
}

func (c UpdateProfileCommand) Validate() error {
	return c.guard.Validate(ErrUpdateProfileCommandIsNotConstructed)
}

func (c UpdateProfileCommand) Actor() actor.Actor {
	return c.actor
}

func (c UpdateProfileCommand) Name() string {
	return c.name
}

func (c UpdateProfileCommand) Image() string {
	return c.image
}
