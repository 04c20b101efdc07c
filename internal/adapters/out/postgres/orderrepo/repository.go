package orderrepo

import (
	"context"
	"errors"

	"fooddelivery/internal/adapters/out/postgres/dberr"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order together with its lines and payment.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if dberr.IsUniqueViolation(err) {
			return errs.NewConflictError("order")
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.withAssociations(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ConditionalUpdate writes mutation in a single UPDATE whose WHERE clause carries match.
// Under READ COMMITTED a concurrent writer blocks on the row lock and re-evaluates the
// predicate afterwards, so only one claim can see rider_id IS NULL.
func (r *GormOrderRepository) ConditionalUpdate(
	ctx context.Context,
	id kernel.UUID,
	match ports.OrderMatch,
	mutation ports.OrderMutation,
) (int64, error) {
	if err := id.Validate(); err != nil {
		return 0, err
	}

	values := make(map[string]any, 2)
	if mutation.RiderID != nil {
		values["rider_id"] = mutation.RiderID.Bytes()
	}
	if mutation.Status != nil {
		values["status"] = mutation.Status.String()
	}
	if len(values) == 0 {
		return 0, errs.NewValueIsRequiredError("mutation")
	}

	query := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", id.Bytes())
	if match.RiderUnassigned {
		query = query.Where("rider_id IS NULL")
	}
	if match.RiderIs != nil {
		query = query.Where("rider_id = ?", match.RiderIs.Bytes())
	}
	if len(match.StatusIn) > 0 {
		query = query.Where("status IN ?", statusNames(match.StatusIn))
	}

	result := query.Updates(values)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// ListByCustomer returns the customer's orders, newest first.
func (r *GormOrderRepository) ListByCustomer(ctx context.Context, customerID kernel.UUID) ([]*order.Order, error) {
	return r.list(ctx, "customer_id = ?", customerID.Bytes())
}

// ListByRestaurant returns the restaurant's orders, newest first.
func (r *GormOrderRepository) ListByRestaurant(ctx context.Context, restaurantID kernel.UUID) ([]*order.Order, error) {
	return r.list(ctx, "restaurant_id = ?", restaurantID.Bytes())
}

// ListByRider returns the orders assigned to the rider, newest first.
func (r *GormOrderRepository) ListByRider(ctx context.Context, riderID kernel.UUID) ([]*order.Order, error) {
	return r.list(ctx, "rider_id = ?", riderID.Bytes())
}

// ListAvailable returns unassigned orders a rider can still claim, newest first.
func (r *GormOrderRepository) ListAvailable(ctx context.Context) ([]*order.Order, error) {
	return r.list(ctx, "rider_id IS NULL AND status IN ?", statusNames(order.ClaimableStatuses()))
}

func (r *GormOrderRepository) list(ctx context.Context, where string, args ...any) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.withAssociations(ctx).Where(where, args...).Order("created_at DESC").Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

func (r *GormOrderRepository) withAssociations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Payment")
}

func statusNames(statuses []order.Status) []string {
	names := make([]string, 0, len(statuses))
	for _, s := range statuses {
		names = append(names, s.String())
	}
	return names
}
