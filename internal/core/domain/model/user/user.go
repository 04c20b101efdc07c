// Package user holds registered accounts of customers, restaurant owners and riders.
package user

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

var ErrUserIsNotConstructed = errors.New("User must be created via NewUser constructor")

// User is an account able to authenticate. The password is only kept as a bcrypt hash.
type User struct {
	id           kernel.UUID
	name         string
	email        string
	passwordHash string
	role         actor.Role
	image        string
	createdAt    time.Time

	isConstructed bool
}

// NewUser registers an account, hashing the plain password.
func NewUser(id kernel.UUID, name, email, password string, role actor.Role, createdAt time.Time) (*User, error) {
	u := &User{
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}

	var roleErr error
	if !role.IsSelfRegistrable() {
		roleErr = errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%s cannot be registered", role))
	}

	if err := errors.Join(
		id.Validate(),
		u.setName(name),
		u.setEmail(email),
		u.setPassword(password),
		roleErr,
	); err != nil {
		return nil, err
	}
	u.id = id
	u.role = role

	return u, nil
}

// RestoreUser rebuilds a stored account from its persisted hash.
func RestoreUser(
	id kernel.UUID,
	name, email, passwordHash string,
	role actor.Role,
	image string,
	createdAt time.Time,
) (*User, error) {
	if err := errors.Join(id.Validate(), role.Validate()); err != nil {
		return nil, err
	}
	return &User{
		id:            id,
		name:          name,
		email:         email,
		passwordHash:  passwordHash,
		role:          role,
		image:         image,
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}, nil
}

func (u *User) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrUserIsNotConstructed
	}
	return nil
}

func (u *User) ID() kernel.UUID {
	return u.id
}

func (u *User) Name() string {
	return u.name
}

func (u *User) Email() string {
	return u.email
}

func (u *User) PasswordHash() string {
	return u.passwordHash
}

func (u *User) Role() actor.Role {
	return u.role
}

func (u *User) Image() string {
	return u.image
}

func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

// Actor returns the authenticated identity of the user.
func (u *User) Actor() actor.Actor {
	a, _ := actor.NewActor(u.id, u.role)
	return a
}

// CheckPassword reports whether password matches the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.passwordHash), []byte(password)) == nil
}

// UpdateProfile changes the display name and avatar; empty values keep the current ones.
func (u *User) UpdateProfile(name, image string) error {
	if strings.TrimSpace(name) != "" {
		if err := u.setName(name); err != nil {
			return err
		}
	}
	if img := strings.TrimSpace(image); img != "" {
		u.image = img
	}
	return nil
}

// NormalizeEmail is the canonical form used for uniqueness and lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (u *User) setName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return errs.NewValueIsRequiredError("name")
	}
	u.name = trimmed
	return nil
}

func (u *User) setEmail(email string) error {
	normalized := NormalizeEmail(email)
	if normalized == "" {
		return errs.NewValueIsRequiredError("email")
	}
	if _, err := mail.ParseAddress(normalized); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("email", err)
	}
	u.email = normalized
	return nil
}

func (u *User) setPassword(password string) error {
	if len(password) < minPasswordLength {
		return errs.NewValueIsInvalidErrorWithCause(
			"password",
			fmt.Errorf("must be at least %d characters", minPasswordLength),
		)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("password", err)
	}
	u.passwordHash = string(hash)
	return nil
}
