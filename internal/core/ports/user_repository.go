package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"
)

// UserRepository persists accounts. Emails are unique.
type UserRepository interface {
	// Add returns errs.ErrConflict when the email is taken.
	Add(ctx context.Context, aggregate *user.User) error
	Update(ctx context.Context, aggregate *user.User) error
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
}
