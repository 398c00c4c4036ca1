package courier

import (
	"fmt"

	"restaurant/internal/pkg/errs"
)

// Status represents a courier's availability in the delivery pool.
//
// State transitions:
//
//	Available ──> OnOrder ──> Delivering ──> Available
//
// A courier cycles through the states for every delivery order. Only
// Available couriers can be assigned work or removed from the registry.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// Available indicates the courier is free and can take an order.
	Available

	// OnOrder indicates the courier has an order and is heading to the
	// restaurant to pick it up.
	OnOrder

	// Delivering indicates the courier is carrying the order to the
	// customer with live location tracking running.
	Delivering
)

func getStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		Available:  "Available",
		OnOrder:    "OnOrder",
		Delivering: "Delivering",
	}
}

// ParseStatus converts a string to a courier Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("courierStatus",
		fmt.Errorf("%q is not a valid courier status", s))
}

// Validate checks if the Status is one of the enumerated states.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("courierStatus",
			fmt.Errorf("%d is not a valid courier status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}
