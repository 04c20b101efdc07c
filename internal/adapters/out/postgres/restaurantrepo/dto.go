// Package restaurantrepo persists restaurants and their menu items.
package restaurantrepo

import (
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/restaurant"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RestaurantDTO represents the restaurants table. One restaurant per owner.
type RestaurantDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Cuisine   string    `gorm:"type:varchar(255)"`
	Banner    string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"not null;index"`
}

func (RestaurantDTO) TableName() string {
	return "restaurants"
}

// MenuItemDTO represents the menu_items table. Deleted rows stay for order history.
type MenuItemDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	RestaurantID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name         string          `gorm:"type:varchar(255);not null"`
	Description  string          `gorm:"type:text"`
	Price        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Image        string          `gorm:"type:text"`
	Veg          bool            `gorm:"not null;default:false"`
	CreatedAt    time.Time       `gorm:"not null;index"`
	DeletedAt    gorm.DeletedAt  `gorm:"index"`
}

func (MenuItemDTO) TableName() string {
	return "menu_items"
}

func restaurantFromDomain(r *restaurant.Restaurant) RestaurantDTO {
	return RestaurantDTO{
		ID:        r.ID().Bytes(),
		OwnerID:   r.OwnerID().Bytes(),
		Name:      r.Name(),
		Cuisine:   r.Cuisine(),
		Banner:    r.Banner(),
		CreatedAt: r.CreatedAt(),
	}
}

func restaurantToDomain(dto RestaurantDTO) (*restaurant.Restaurant, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}
	return restaurant.RestoreRestaurant(id, ownerID, dto.Name, dto.Cuisine, dto.Banner, dto.CreatedAt)
}

func menuItemFromDomain(m *restaurant.MenuItem) MenuItemDTO {
	return MenuItemDTO{
		ID:           m.ID().Bytes(),
		RestaurantID: m.RestaurantID().Bytes(),
		Name:         m.Name(),
		Description:  m.Description(),
		Price:        m.Price().Decimal(),
		Image:        m.Image(),
		Veg:          m.Veg(),
		CreatedAt:    m.CreatedAt(),
	}
}

func menuItemToDomain(dto MenuItemDTO) (*restaurant.MenuItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}
	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return nil, err
	}
	return restaurant.RestoreMenuItem(id, restaurantID, restaurant.MenuItemDetails{
		Name:        dto.Name,
		Description: dto.Description,
		Price:       price,
		Image:       dto.Image,
		Veg:         dto.Veg,
	}, dto.CreatedAt)
}
