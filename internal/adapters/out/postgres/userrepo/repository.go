package userrepo

import (
	"context"
	"errors"

	"fooddelivery/internal/adapters/out/postgres/dberr"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormUserRepository implements ports.UserRepository using GORM.
type GormUserRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormUserRepository(db *gorm.DB, tracker aggregateTracker) *GormUserRepository {
	return &GormUserRepository{db: db, tracker: tracker}
}

// Add stores a new account. A taken email is reported as a conflict.
func (r *GormUserRepository) Add(ctx context.Context, aggregate *user.User) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if dberr.IsUniqueViolation(err) {
			return errs.NewConflictError("email")
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the profile fields. Email, role and password are immutable here.
func (r *GormUserRepository) Update(ctx context.Context, aggregate *user.User) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&UserDTO{}).Where("id = ?", aggregate.ID().Bytes()).Updates(map[string]any{
		"name":  aggregate.Name(),
		"image": aggregate.Image(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("user", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, id.String(), "id = ?", id.Bytes())
}

// GetByEmail looks the account up by its normalized email.
func (r *GormUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	normalized := user.NormalizeEmail(email)
	if normalized == "" {
		return nil, errs.NewValueIsRequiredError("email")
	}
	return r.first(ctx, normalized, "email = ?", normalized)
}

func (r *GormUserRepository) first(ctx context.Context, key string, where string, args ...any) (*user.User, error) {
	var dto UserDTO
	if err := r.db.WithContext(ctx).Where(where, args...).First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("user", key)
		}
		return nil, err
	}
	return toDomain(dto)
}
