package queries

import (
	"context"
	"errors"
	"time"

	"fooddelivery/internal/core/application/views"
	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrListRestaurantsQueryIsNotConstructed = errors.New(
	"ListRestaurantsQuery must be created via NewListRestaurantsQuery constructor",
)

// ListRestaurantsQuery lists every restaurant with its current menu.
type ListRestaurantsQuery struct {
	guard guard.ConstructorGuard
}

func NewListRestaurantsQuery() ListRestaurantsQuery {
	return ListRestaurantsQuery{guard: guard.NewConstructorGuard()}
}

func (q ListRestaurantsQuery) Validate() error {
	return q.guard.Validate(ErrListRestaurantsQueryIsNotConstructed)
}

// ListRestaurantsQueryHandler reads the public catalogue straight from the database.
type ListRestaurantsQueryHandler struct {
	db *gorm.DB
}

func NewListRestaurantsQueryHandler(db *gorm.DB) ListRestaurantsQueryHandler {
	return ListRestaurantsQueryHandler{db: db}
}

// Handle returns restaurants newest first, each with its non-deleted menu items newest first.
func (h ListRestaurantsQueryHandler) Handle(ctx context.Context, query ListRestaurantsQuery) ([]views.Restaurant, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	restaurants := make([]views.Restaurant, 0)
	index := make(map[string]int)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			owner_id,
			name,
			cuisine,
			banner,
			created_at
		FROM restaurants
		ORDER BY created_at DESC
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			r         views.Restaurant
			id, owner uuid.UUID
			createdAt time.Time
		)
		if err = rows.Scan(&id, &owner, &r.Name, &r.Cuisine, &r.Banner, &createdAt); err != nil {
			return nil, err
		}
		r.ID = id.String()
		r.OwnerID = owner.String()
		r.CreatedAt = createdAt.UTC()
		r.Menu = make([]views.MenuItem, 0)
		index[r.ID] = len(restaurants)
		restaurants = append(restaurants, r)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if err = h.attachMenus(ctx, restaurants, index); err != nil {
		return nil, err
	}
	return restaurants, nil
}

func (h ListRestaurantsQueryHandler) attachMenus(ctx context.Context, restaurants []views.Restaurant, index map[string]int) error {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			restaurant_id,
			name,
			description,
			price,
			image,
			veg,
			created_at
		FROM menu_items
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC
	`).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item             views.MenuItem
			id, restaurantID uuid.UUID
			price            decimal.Decimal
			createdAt        time.Time
		)
		if err = rows.Scan(&id, &restaurantID, &item.Name, &item.Description, &price, &item.Image, &item.Veg, &createdAt); err != nil {
			return err
		}

		pos, ok := index[restaurantID.String()]
		if !ok {
			continue
		}
		money, moneyErr := kernel.NewMoney(price)
		if moneyErr != nil {
			return moneyErr
		}
		item.ID = id.String()
		item.RestaurantID = restaurantID.String()
		item.Price = money
		item.CreatedAt = createdAt.UTC()
		restaurants[pos].Menu = append(restaurants[pos].Menu, item)
	}
	return rows.Err()
}

// RestaurantQueryHandler serves single-restaurant reads.
type RestaurantQueryHandler struct {
	restaurants RestaurantReader
	menu        MenuReader
}

func NewRestaurantQueryHandler(restaurants RestaurantReader, menu MenuReader) RestaurantQueryHandler {
	return RestaurantQueryHandler{restaurants: restaurants, menu: menu}
}

// GetRestaurant returns the restaurant with its menu.
func (h RestaurantQueryHandler) GetRestaurant(ctx context.Context, id kernel.UUID) (views.Restaurant, error) {
	r, err := h.restaurants.Get(ctx, id)
	if err != nil {
		return views.Restaurant{}, err
	}
	items, err := h.menu.ListByRestaurant(ctx, r.ID())
	if err != nil {
		return views.Restaurant{}, err
	}
	return views.NewRestaurant(r, items), nil
}

// GetMenu returns errs.ErrObjectNotFound for an unknown restaurant rather than an empty menu.
func (h RestaurantQueryHandler) GetMenu(ctx context.Context, restaurantID kernel.UUID) ([]views.MenuItem, error) {
	r, err := h.restaurants.Get(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	items, err := h.menu.ListByRestaurant(ctx, r.ID())
	if err != nil {
		return nil, err
	}
	return views.NewMenuItems(items), nil
}

// GetMine returns the caller's restaurant.
func (h RestaurantQueryHandler) GetMine(ctx context.Context, owner actor.Actor) (views.Restaurant, error) {
	r, err := h.restaurants.GetByOwner(ctx, owner.ID())
	if err != nil {
		return views.Restaurant{}, err
	}
	items, err := h.menu.ListByRestaurant(ctx, r.ID())
	if err != nil {
		return views.Restaurant{}, err
	}
	return views.NewRestaurant(r, items), nil
}

// MyMenu returns the menu of the caller's restaurant.
func (h RestaurantQueryHandler) MyMenu(ctx context.Context, owner actor.Actor) ([]views.MenuItem, error) {
	r, err := h.restaurants.GetByOwner(ctx, owner.ID())
	if err != nil {
		return nil, err
	}
	return h.GetMenu(ctx, r.ID())
}
