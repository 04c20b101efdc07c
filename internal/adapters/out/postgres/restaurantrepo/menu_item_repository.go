package restaurantrepo

import (
	"context"
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/restaurant"
	"fooddelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormMenuItemRepository implements ports.MenuItemRepository. Delete is a soft
// delete, so existing order lines keep a valid menu item reference while the
// item disappears from every read below.
type GormMenuItemRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormMenuItemRepository(db *gorm.DB, tracker aggregateTracker) *GormMenuItemRepository {
	return &GormMenuItemRepository{db: db, tracker: tracker}
}

func (r *GormMenuItemRepository) Add(ctx context.Context, item *restaurant.MenuItem) error {
	if err := item.Validate(); err != nil {
		return err
	}

	dto := menuItemFromDomain(item)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(item.ID(), item)
	return nil
}

func (r *GormMenuItemRepository) Update(ctx context.Context, item *restaurant.MenuItem) error {
	if err := item.Validate(); err != nil {
		return err
	}

	dto := menuItemFromDomain(item)
	result := r.db.WithContext(ctx).Model(&MenuItemDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"name":        dto.Name,
		"description": dto.Description,
		"price":       dto.Price,
		"image":       dto.Image,
		"veg":         dto.Veg,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("menu item", item.ID().String())
	}

	r.tracker.TrackAggregate(item.ID(), item)
	return nil
}

func (r *GormMenuItemRepository) Get(ctx context.Context, id kernel.UUID) (*restaurant.MenuItem, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto MenuItemDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("menu item", id.String())
		}
		return nil, err
	}
	return menuItemToDomain(dto)
}

func (r *GormMenuItemRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&MenuItemDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("menu item", id.String())
	}
	return nil
}

func (r *GormMenuItemRepository) ListByRestaurant(ctx context.Context, restaurantID kernel.UUID) ([]*restaurant.MenuItem, error) {
	var dtos []MenuItemDTO
	err := r.db.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID.Bytes()).
		Order("created_at DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	items := make([]*restaurant.MenuItem, 0, len(dtos))
	for _, dto := range dtos {
		item, itemErr := menuItemToDomain(dto)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}
	return items, nil
}
