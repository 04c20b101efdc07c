package restaurantrepo

import (
	"context"
	"errors"

	"fooddelivery/internal/adapters/out/postgres/dberr"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/restaurant"
	"fooddelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormRestaurantRepository implements ports.RestaurantRepository using GORM.
type GormRestaurantRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormRestaurantRepository(db *gorm.DB, tracker aggregateTracker) *GormRestaurantRepository {
	return &GormRestaurantRepository{db: db, tracker: tracker}
}

// Add stores a new restaurant. A second restaurant for the same owner hits the
// unique index and is reported as a conflict.
func (r *GormRestaurantRepository) Add(ctx context.Context, aggregate *restaurant.Restaurant) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := restaurantFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if dberr.IsUniqueViolation(err) {
			return errs.NewConflictError("restaurant owner")
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormRestaurantRepository) Update(ctx context.Context, aggregate *restaurant.Restaurant) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := restaurantFromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&RestaurantDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"name":    dto.Name,
		"cuisine": dto.Cuisine,
		"banner":  dto.Banner,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("restaurant", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormRestaurantRepository) Get(ctx context.Context, id kernel.UUID) (*restaurant.Restaurant, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, id.String(), "id = ?", id.Bytes())
}

func (r *GormRestaurantRepository) GetByOwner(ctx context.Context, ownerID kernel.UUID) (*restaurant.Restaurant, error) {
	if err := ownerID.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, "owner "+ownerID.String(), "owner_id = ?", ownerID.Bytes())
}

func (r *GormRestaurantRepository) List(ctx context.Context) ([]*restaurant.Restaurant, error) {
	var dtos []RestaurantDTO
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&dtos).Error; err != nil {
		return nil, err
	}

	restaurants := make([]*restaurant.Restaurant, 0, len(dtos))
	for _, dto := range dtos {
		rest, err := restaurantToDomain(dto)
		if err != nil {
			return nil, err
		}
		restaurants = append(restaurants, rest)
	}
	return restaurants, nil
}

func (r *GormRestaurantRepository) first(ctx context.Context, key string, where string, args ...any) (*restaurant.Restaurant, error) {
	var dto RestaurantDTO
	if err := r.db.WithContext(ctx).Where(where, args...).First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("restaurant", key)
		}
		return nil, err
	}
	return restaurantToDomain(dto)
}
