package views

import (
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/restaurant"
)

type Restaurant struct {
	ID        string     `json:"id"`
	OwnerID   string     `json:"ownerId"`
	Name      string     `json:"name"`
	Cuisine   string     `json:"cuisine"`
	Banner    string     `json:"banner"`
	CreatedAt time.Time  `json:"createdAt"`
	Menu      []MenuItem `json:"menu,omitempty"`
}

type MenuItem struct {
	ID           string       `json:"id"`
	RestaurantID string       `json:"restaurantId"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Price        kernel.Money `json:"price"`
	Image        string       `json:"image"`
	Veg          bool         `json:"veg"`
	CreatedAt    time.Time    `json:"createdAt"`
}

func NewRestaurant(r *restaurant.Restaurant, menu []*restaurant.MenuItem) Restaurant {
	v := Restaurant{
		ID:        r.ID().String(),
		OwnerID:   r.OwnerID().String(),
		Name:      r.Name(),
		Cuisine:   r.Cuisine(),
		Banner:    r.Banner(),
		CreatedAt: r.CreatedAt(),
	}
	if menu != nil {
		v.Menu = NewMenuItems(menu)
	}
	return v
}

func NewMenuItem(m *restaurant.MenuItem) MenuItem {
	return MenuItem{
		ID:           m.ID().String(),
		RestaurantID: m.RestaurantID().String(),
		Name:         m.Name(),
		Description:  m.Description(),
		Price:        m.Price(),
		Image:        m.Image(),
		Veg:          m.Veg(),
		CreatedAt:    m.CreatedAt(),
	}
}

func NewMenuItems(items []*restaurant.MenuItem) []MenuItem {
	out := make([]MenuItem, 0, len(items))
	for _, item := range items {
		out = append(out, NewMenuItem(item))
	}
	return out
}
