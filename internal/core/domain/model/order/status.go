package order

import (
	"fmt"
	"strings"

	"fooddelivery/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
//	PLACED ──> ACCEPTED ──> PREPARING ──> READY ──> PICKED ──> DELIVERED
//	   │           │            │           │          │
//	   └───────────┴────────────┴───────────┴──────────┴──> CANCELLED
//
// Only acceptance and rider claiming check the predecessor state. The generic
// status update accepts any target from the updatable set.
type Status int

const (
	// Unknown catches uninitialized Status values.
	Unknown Status = iota
	Placed
	Accepted
	Preparing
	Ready
	Picked
	Delivered
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Placed:    "PLACED",
		Accepted:  "ACCEPTED",
		Preparing: "PREPARING",
		Ready:     "READY",
		Picked:    "PICKED",
		Delivered: "DELIVERED",
		Cancelled: "CANCELLED",
	}
}

// ClaimableStatuses are the states in which an unassigned order can be claimed by a rider.
func ClaimableStatuses() []Status {
	return []Status{Accepted, Preparing, Ready}
}

// UpdatableStatuses are the targets accepted by the generic status update.
func UpdatableStatuses() []Status {
	return []Status{Preparing, Ready, Picked, Delivered, Cancelled}
}

// ParseStatus converts the wire name (e.g. "READY") into a Status.
func ParseStatus(s string) (Status, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for status, str := range getStatusStrings() {
		if status != Unknown && str == name {
			return status, nil
		}
	}
	return Unknown, fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// Validate checks that the value is one of the defined states.
func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports DELIVERED and CANCELLED.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

func (s Status) IsClaimable() bool {
	return s.in(ClaimableStatuses())
}

func (s Status) IsUpdatable() bool {
	return s.in(UpdatableStatuses())
}

// ClaimTarget is the status an order takes when a rider claims it:
// READY stays READY, any other claimable state becomes PREPARING.
func (s Status) ClaimTarget() (Status, error) {
	if !s.IsClaimable() {
		return Unknown, fmt.Errorf("%w: %s orders cannot be claimed", ErrInvalidTransition, s)
	}
	if s == Ready {
		return Ready, nil
	}
	return Preparing, nil
}

func (s Status) in(set []Status) bool {
	for _, candidate := range set {
		if candidate == s {
			return true
		}
	}
	return false
}
