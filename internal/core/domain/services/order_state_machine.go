package services

import (
	"fmt"

	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/realtime"
	"fooddelivery/internal/pkg/errs"
)

// Notice is a notification to persist for one affected party and push to its channel.
type Notice struct {
	Recipient actor.Actor
	Channel   realtime.Channel
	Message   string
}

// Delivery is an order-carrying event for one channel. Audience selects the
// order view rendered for that channel.
type Delivery struct {
	Channel  realtime.Channel
	Event    string
	Audience actor.Role
}

// TransitionPlan lists the side effects of a committed transition.
type TransitionPlan struct {
	Notices    []Notice
	Deliveries []Delivery
}

// OrderStateMachine decides who may move an order between statuses and which
// parties hear about it.
//
// Authorization per action:
//   - place: the customer the order is created for
//   - accept: the restaurant owning the order, only from PLACED
//   - claim: any rider, only for unassigned ACCEPTED/PREPARING/READY orders
//   - update: the owning restaurant, the assigned rider, or the customer requesting CANCELLED
//
// Admins can read any order but cannot mutate one.
//
// The state machine mutates the in-memory aggregate only. Callers persist the
// change and apply the returned plan after commit.
type OrderStateMachine struct{}

func NewOrderStateMachine() OrderStateMachine {
	return OrderStateMachine{}
}

// Place authorizes a freshly built order and plans the notifications for its creation.
func (m OrderStateMachine) Place(a actor.Actor, o *order.Order, ownerID kernel.UUID) (TransitionPlan, error) {
	if err := o.Validate(); err != nil {
		return TransitionPlan{}, err
	}
	if !a.Is(actor.Customer) || !o.CustomerID().IsEqual(a.ID()) {
		return TransitionPlan{}, errs.NewForbiddenError("place order", "only customers can place orders for themselves")
	}

	customer := party(o.CustomerID(), actor.Customer)
	owner := party(ownerID, actor.Restaurant)
	customerChannel := realtime.UserChannel(o.CustomerID())
	restaurantChannel := realtime.RestaurantChannel(o.RestaurantID())

	return TransitionPlan{
		Notices: []Notice{
			{Recipient: owner, Channel: restaurantChannel, Message: fmt.Sprintf("New order #%s received", o.ID())},
			{Recipient: customer, Channel: customerChannel, Message: fmt.Sprintf("Order #%s has been placed", o.ID())},
		},
		Deliveries: []Delivery{
			{Channel: restaurantChannel, Event: realtime.EventNewOrder, Audience: actor.Restaurant},
			{Channel: customerChannel, Event: realtime.EventOrderStatusUpdate, Audience: actor.Customer},
		},
	}, nil
}

// Accept moves a PLACED order to ACCEPTED on behalf of its restaurant and
// announces it to online riders.
func (m OrderStateMachine) Accept(a actor.Actor, o *order.Order, ownerID kernel.UUID) (TransitionPlan, error) {
	if err := o.Validate(); err != nil {
		return TransitionPlan{}, err
	}
	if !isOwningRestaurant(a, ownerID) {
		return TransitionPlan{}, errs.NewForbiddenError("accept order", "only the owning restaurant can accept")
	}
	if err := o.Accept(); err != nil {
		return TransitionPlan{}, err
	}

	plan := m.statusPlan(a, o, ownerID, fmt.Sprintf("Order #%s has been accepted", o.ID()))
	plan.Deliveries = append(plan.Deliveries, Delivery{
		Channel:  realtime.RidersOnline,
		Event:    realtime.EventOrderAvailable,
		Audience: actor.Rider,
	})
	return plan, nil
}

// Claim checks that a rider may claim the order and returns the status to write
// together with the rider. It never mutates: the claim is decided by the
// conditional write in storage.
func (m OrderStateMachine) Claim(a actor.Actor, o *order.Order) (order.Status, error) {
	if err := o.Validate(); err != nil {
		return order.Unknown, err
	}
	if !a.Is(actor.Rider) {
		return order.Unknown, errs.NewForbiddenError("claim order", "only riders can claim orders")
	}
	return o.ClaimTarget()
}

// Claimed plans the side effects once a rider won the claim. o must be the
// order as re-read after the conditional write.
func (m OrderStateMachine) Claimed(o *order.Order, ownerID kernel.UUID) TransitionPlan {
	customer := party(o.CustomerID(), actor.Customer)
	owner := party(ownerID, actor.Restaurant)
	customerChannel := realtime.UserChannel(o.CustomerID())
	restaurantChannel := realtime.RestaurantChannel(o.RestaurantID())

	plan := TransitionPlan{
		Notices: []Notice{
			{Recipient: customer, Channel: customerChannel, Message: fmt.Sprintf("Order #%s has been picked up", o.ID())},
			{Recipient: owner, Channel: restaurantChannel, Message: fmt.Sprintf("Order #%s has been assigned to a rider", o.ID())},
		},
		Deliveries: []Delivery{
			{Channel: customerChannel, Event: realtime.EventOrderStatusUpdate, Audience: actor.Customer},
			{Channel: restaurantChannel, Event: realtime.EventOrderStatusUpdate, Audience: actor.Restaurant},
		},
	}
	if riderID := o.RiderID(); riderID != nil {
		plan.Deliveries = append(plan.Deliveries, Delivery{
			Channel:  realtime.UserChannel(*riderID),
			Event:    realtime.EventOrderStatusUpdate,
			Audience: actor.Rider,
		})
	}
	plan.Deliveries = append(plan.Deliveries, Delivery{
		Channel:  realtime.RidersOnline,
		Event:    realtime.EventOrderAssigned,
		Audience: actor.Rider,
	})
	return plan
}

// UpdateStatus applies the generic status update. Only membership of target in
// the updatable set is checked, not the predecessor status.
func (m OrderStateMachine) UpdateStatus(
	a actor.Actor,
	o *order.Order,
	ownerID kernel.UUID,
	target order.Status,
) (TransitionPlan, error) {
	if err := o.Validate(); err != nil {
		return TransitionPlan{}, err
	}
	if !target.IsUpdatable() {
		return TransitionPlan{}, fmt.Errorf("%w: %s cannot be set directly", order.ErrInvalidStatus, target)
	}
	if err := authorizeUpdate(a, o, ownerID, target); err != nil {
		return TransitionPlan{}, err
	}

	wasAvailable := !o.HasRider() && o.Status().IsClaimable()
	if err := o.SetStatus(target); err != nil {
		return TransitionPlan{}, err
	}

	plan := m.statusPlan(a, o, ownerID, statusMessage(o.ID(), target))
	if wasAvailable && !target.IsClaimable() {
		plan.Deliveries = append(plan.Deliveries, Delivery{
			Channel:  realtime.RidersOnline,
			Event:    realtime.EventOrderWithdrawn,
			Audience: actor.Rider,
		})
	}
	return plan, nil
}

// CanView reports whether a may read the order.
func (m OrderStateMachine) CanView(a actor.Actor, o *order.Order, ownerID kernel.UUID) error {
	switch a.Role() {
	case actor.Admin:
		return nil
	case actor.Customer:
		if o.CustomerID().IsEqual(a.ID()) {
			return nil
		}
	case actor.Restaurant:
		if a.ID().IsEqual(ownerID) {
			return nil
		}
	case actor.Rider:
		if o.IsRider(a.ID()) {
			return nil
		}
	case actor.Unknown:
	}
	return errs.NewForbiddenError("view order", "no relation to the order")
}

// statusPlan notifies the customer always, the restaurant unless it is the
// actor, and the rider when one is assigned. Every party channel receives the
// status update event.
func (m OrderStateMachine) statusPlan(a actor.Actor, o *order.Order, ownerID kernel.UUID, message string) TransitionPlan {
	customerChannel := realtime.UserChannel(o.CustomerID())
	restaurantChannel := realtime.RestaurantChannel(o.RestaurantID())

	plan := TransitionPlan{
		Notices: []Notice{
			{Recipient: party(o.CustomerID(), actor.Customer), Channel: customerChannel, Message: message},
		},
		Deliveries: []Delivery{
			{Channel: customerChannel, Event: realtime.EventOrderStatusUpdate, Audience: actor.Customer},
			{Channel: restaurantChannel, Event: realtime.EventOrderStatusUpdate, Audience: actor.Restaurant},
		},
	}

	if !isOwningRestaurant(a, ownerID) {
		plan.Notices = append(plan.Notices, Notice{
			Recipient: party(ownerID, actor.Restaurant),
			Channel:   restaurantChannel,
			Message:   message,
		})
	}

	if riderID := o.RiderID(); riderID != nil {
		riderChannel := realtime.UserChannel(*riderID)
		plan.Notices = append(plan.Notices, Notice{
			Recipient: party(*riderID, actor.Rider),
			Channel:   riderChannel,
			Message:   message,
		})
		plan.Deliveries = append(plan.Deliveries, Delivery{
			Channel:  riderChannel,
			Event:    realtime.EventOrderStatusUpdate,
			Audience: actor.Rider,
		})
	}

	return plan
}

func authorizeUpdate(a actor.Actor, o *order.Order, ownerID kernel.UUID, target order.Status) error {
	switch a.Role() {
	case actor.Restaurant:
		if a.ID().IsEqual(ownerID) {
			return nil
		}
		return errs.NewForbiddenError("update order status", "restaurant does not own the order")
	case actor.Rider:
		if o.IsRider(a.ID()) {
			return nil
		}
		return errs.NewForbiddenError("update order status", "rider is not assigned to the order")
	case actor.Customer:
		if !o.CustomerID().IsEqual(a.ID()) {
			return errs.NewForbiddenError("update order status", "customer does not own the order")
		}
		if target != order.Cancelled {
			return errs.NewForbiddenError("update order status", "customers can only cancel")
		}
		return nil
	case actor.Admin, actor.Unknown:
		return errs.NewForbiddenError("update order status", fmt.Sprintf("%s cannot update orders", a.Role()))
	}
	return errs.NewForbiddenError("update order status", "unknown role")
}

func isOwningRestaurant(a actor.Actor, ownerID kernel.UUID) bool {
	return a.Is(actor.Restaurant) && a.ID().IsEqual(ownerID)
}

// party builds a recipient from stored identifiers, which are valid by construction.
func party(id kernel.UUID, role actor.Role) actor.Actor {
	a, _ := actor.NewActor(id, role)
	return a
}

func statusMessage(orderID kernel.UUID, status order.Status) string {
	switch status {
	case order.Preparing:
		return fmt.Sprintf("Order #%s is being prepared", orderID)
	case order.Ready:
		return fmt.Sprintf("Order #%s is ready for pickup", orderID)
	case order.Picked:
		return fmt.Sprintf("Order #%s has been picked up by the rider", orderID)
	case order.Delivered:
		return fmt.Sprintf("Order #%s has been delivered", orderID)
	case order.Cancelled:
		return fmt.Sprintf("Order #%s has been cancelled", orderID)
	case order.Unknown, order.Placed, order.Accepted:
	}
	return fmt.Sprintf("Order #%s status updated to %s", orderID, status)
}
