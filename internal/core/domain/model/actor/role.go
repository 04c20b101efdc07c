package actor

import (
	"fmt"
	"strings"

	"fooddelivery/internal/pkg/errs"
)

// Role is the closed set of parties that can act on the system.
type Role int

const (
	// Unknown is the zero value and never authorizes anything.
	Unknown Role = iota
	Customer
	Restaurant
	Rider
	Admin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		Unknown:    "UNKNOWN",
		Customer:   "CUSTOMER",
		Restaurant: "RESTAURANT",
		Rider:      "RIDER",
		Admin:      "ADMIN",
	}
}

// ParseRole accepts the role names issued in tokens. "USER" is an alias of CUSTOMER.
func ParseRole(s string) (Role, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	if name == "USER" {
		return Customer, nil
	}
	for role, str := range getRoleStrings() {
		if role != Unknown && str == name {
			return role, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", s))
}

func (r Role) Validate() error {
	if r <= Unknown || r > Admin {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// IsSelfRegistrable reports whether a user may sign up with this role.
func (r Role) IsSelfRegistrable() bool {
	return r == Customer || r == Restaurant || r == Rider
}

func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "UNKNOWN"
}
