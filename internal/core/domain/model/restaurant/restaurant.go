// Package restaurant holds restaurants and their menus.
package restaurant

import (
	"errors"
	"strings"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
)

var ErrRestaurantIsNotConstructed = errors.New("Restaurant must be created via NewRestaurant constructor")

// Restaurant is owned by exactly one user with the RESTAURANT role.
type Restaurant struct {
	id        kernel.UUID
	ownerID   kernel.UUID
	name      string
	cuisine   string
	banner    string
	createdAt time.Time

	isConstructed bool
}

func NewRestaurant(id, ownerID kernel.UUID, name, cuisine, banner string, createdAt time.Time) (*Restaurant, error) {
	r := &Restaurant{
		cuisine:       strings.TrimSpace(cuisine),
		banner:        strings.TrimSpace(banner),
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		id.Validate(),
		ownerID.Validate(),
		r.setName(name),
	); err != nil {
		return nil, err
	}
	r.id = id
	r.ownerID = ownerID

	return r, nil
}

// RestoreRestaurant rebuilds a stored restaurant.
func RestoreRestaurant(id, ownerID kernel.UUID, name, cuisine, banner string, createdAt time.Time) (*Restaurant, error) {
	return NewRestaurant(id, ownerID, name, cuisine, banner, createdAt)
}

func (r *Restaurant) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRestaurantIsNotConstructed
	}
	return nil
}

func (r *Restaurant) ID() kernel.UUID {
	return r.id
}

func (r *Restaurant) OwnerID() kernel.UUID {
	return r.ownerID
}

func (r *Restaurant) Name() string {
	return r.name
}

func (r *Restaurant) Cuisine() string {
	return r.cuisine
}

func (r *Restaurant) Banner() string {
	return r.banner
}

func (r *Restaurant) CreatedAt() time.Time {
	return r.createdAt
}

func (r *Restaurant) IsOwnedBy(userID kernel.UUID) bool {
	return r.ownerID.IsEqual(userID)
}

// Update applies a partial change: empty values keep the current ones.
func (r *Restaurant) Update(name, cuisine, banner string) error {
	if strings.TrimSpace(name) != "" {
		if err := r.setName(name); err != nil {
			return err
		}
	}
	if c := strings.TrimSpace(cuisine); c != "" {
		r.cuisine = c
	}
	if b := strings.TrimSpace(banner); b != "" {
		r.banner = b
	}
	return nil
}

func (r *Restaurant) setName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return errs.NewValueIsRequiredError("name")
	}
	r.name = trimmed
	return nil
}
