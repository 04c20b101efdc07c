package commands

import (
	"context"
	"errors"
	"time"

	"fooddelivery/internal/core/application/views"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
)

// ErrInvalidCredentials is returned by login for an unknown email or a wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthResult is returned by registration and login.
type AuthResult struct {
	User  views.User `json:"user"`
	Token string     `json:"token"`
}

// UserCommandHandler registers accounts, logs them in and edits profiles.
type UserCommandHandler struct {
	uowFactory UserUoWFactory
	tokens     ports.TokenIssuer
}

func NewUserCommandHandler(uowFactory UserUoWFactory, tokens ports.TokenIssuer) UserCommandHandler {
	return UserCommandHandler{uowFactory: uowFactory, tokens: tokens}
}

// Register returns errs.ErrConflict when the email is already registered.
func (h UserCommandHandler) Register(ctx context.Context, cmd RegisterUserCommand) (AuthResult, error) {
	if err := cmd.Validate(); err != nil {
		return AuthResult{}, err
	}

	u, err := user.NewUser(kernel.NewUUID(), cmd.Name(), cmd.Email(), cmd.Password(), cmd.Role(), time.Now())
	if err != nil {
		return AuthResult{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return AuthResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.UserRepository()
	_, err = repo.GetByEmail(ctx, u.Email())
	if err == nil {
		return AuthResult{}, errs.NewConflictError("email is already registered")
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return AuthResult{}, err
	}

	if err = repo.Add(ctx, u); err != nil {
		return AuthResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return AuthResult{}, err
	}

	return h.authenticate(u)
}

func (h UserCommandHandler) Login(ctx context.Context, cmd LoginCommand) (AuthResult, error) {
	if err := cmd.Validate(); err != nil {
		return AuthResult{}, err
	}

	uow := h.uowFactory.Create()
	u, err := uow.UserRepository().GetByEmail(ctx, cmd.Email())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return AuthResult{}, ErrInvalidCredentials
	}
	if err != nil {
		return AuthResult{}, err
	}

	if !u.CheckPassword(cmd.Password()) {
		return AuthResult{}, ErrInvalidCredentials
	}

	return h.authenticate(u)
}

func (h UserCommandHandler) UpdateProfile(ctx context.Context, cmd UpdateProfileCommand) (views.User, error) {
	if err := cmd.Validate(); err != nil {
		return views.User{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return views.User{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.UserRepository()
	u, err := repo.Get(ctx, cmd.Actor().ID())
	if err != nil {
		return views.User{}, err
	}

	if err = u.UpdateProfile(cmd.Name(), cmd.Image()); err != nil {
		return views.User{}, err
	}

	if err = repo.Update(ctx, u); err != nil {
		return views.User{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return views.User{}, err
	}

	return views.NewUser(u), nil
}

func (h UserCommandHandler) authenticate(u *user.User) (AuthResult, error) {
	token, err := h.tokens.Issue(u.Actor())
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{User: views.NewUser(u), Token: token}, nil
}
