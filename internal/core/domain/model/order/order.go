package order

import (
	"errors"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrInvalidTransition means the current status does not allow the requested action.
	ErrInvalidTransition = errors.New("order status transition is not allowed")

	// ErrInvalidStatus means the requested target status is not accepted.
	ErrInvalidStatus = errors.New("order status is invalid")

	// ErrAlreadyAssigned is returned when a rider tries to claim an order that already has one.
	ErrAlreadyAssigned = errors.New("order is already assigned to a rider")
)

// Order is the aggregate root of the ordering flow. It owns its lines and payment.
//
// Order follows these invariants:
//   - total equals the sum of line subtotals and is fixed at creation
//   - riderID goes from nil to set exactly once and is never cleared
//   - at least one line exists
//   - orders are never deleted; DELIVERED and CANCELLED are retained
type Order struct {
	id           kernel.UUID
	customerID   kernel.UUID
	restaurantID kernel.UUID

	// riderID is nil until a rider claims the order
	riderID *kernel.UUID

	status    Status
	total     kernel.Money
	lines     []Line
	payment   Payment
	createdAt time.Time

	isConstructed bool
}

// NewOrder places a new order. The total is computed from the lines and a
// successful payment record for that amount is attached.
//
// Example:
//
//	line, _ := order.NewLine(item.ID(), item.Name(), 2, item.Price())
//	o, err := order.NewOrder(kernel.NewUUID(), customer.ID(), restaurant.ID(), []order.Line{line}, time.Now())
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	restaurantID kernel.UUID,
	lines []Line,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        Placed,
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setRestaurantID(restaurantID),
		o.setLines(lines),
	); err != nil {
		return nil, err
	}

	o.total = sumLines(o.lines)
	o.payment = newPayment(o.id, o.total, o.createdAt)
	return o, nil
}

// RestoreOrder rebuilds an order loaded from storage. The stored total is kept
// as-is because it is never recomputed after creation.
func RestoreOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	restaurantID kernel.UUID,
	riderID *kernel.UUID,
	status Status,
	total kernel.Money,
	lines []Line,
	payment Payment,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		total:         total,
		payment:       payment,
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setRestaurantID(restaurantID),
		o.setLines(lines),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	if riderID != nil {
		if err := riderID.Validate(); err != nil {
			return nil, err
		}
		rid := *riderID
		o.riderID = &rid
	}
	o.status = status

	return o, nil
}

// Validate ensures the Order was built by a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

func (o *Order) RestaurantID() kernel.UUID {
	return o.restaurantID
}

// RiderID returns nil while the order is unassigned.
func (o *Order) RiderID() *kernel.UUID {
	if o.riderID == nil {
		return nil
	}
	rid := *o.riderID
	return &rid
}

// HasRider reports whether a rider has claimed the order.
func (o *Order) HasRider() bool {
	return o.riderID != nil
}

// IsRider reports whether id is the assigned rider.
func (o *Order) IsRider(id kernel.UUID) bool {
	return o.riderID != nil && o.riderID.IsEqual(id)
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) Total() kernel.Money {
	return o.total
}

// Lines returns a copy of the order lines in their original order.
func (o *Order) Lines() []Line {
	lines := make([]Line, len(o.lines))
	copy(lines, o.lines)
	return lines
}

func (o *Order) Payment() Payment {
	return o.payment
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Accept moves a PLACED order to ACCEPTED.
func (o *Order) Accept() error {
	if o.status != Placed {
		return fmt.Errorf("%w: cannot accept an order in %s status", ErrInvalidTransition, o.status)
	}
	o.status = Accepted
	return nil
}

// ClaimTarget validates that a rider may claim the order and returns the status
// the order takes once claimed. It does not mutate the order: the claim itself
// is applied by a conditional write in storage.
func (o *Order) ClaimTarget() (Status, error) {
	target, err := o.status.ClaimTarget()
	if err != nil {
		return Unknown, err
	}
	if o.riderID != nil {
		return Unknown, ErrAlreadyAssigned
	}
	return target, nil
}

// SetStatus applies a generic status update. Any updatable target is accepted
// regardless of the current status.
func (o *Order) SetStatus(target Status) error {
	if !target.IsUpdatable() {
		return fmt.Errorf("%w: %s cannot be set directly", ErrInvalidStatus, target)
	}
	o.status = target
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerId", err)
	}
	o.customerID = id
	return nil
}

func (o *Order) setRestaurantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("restaurantId", err)
	}
	o.restaurantID = id
	return nil
}

func (o *Order) setLines(lines []Line) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for i, line := range lines {
		if err := line.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("items[%d]", i), err)
		}
	}
	o.lines = make([]Line, len(lines))
	copy(o.lines, lines)
	return nil
}

func sumLines(lines []Line) kernel.Money {
	total := kernel.ZeroMoney()
	for _, line := range lines {
		total = total.Add(line.Subtotal())
	}
	return total
}
