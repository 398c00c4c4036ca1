package table

import (
	"fmt"

	"restaurant/internal/pkg/errs"
)

// Status represents the seating state of a table.
//
// All transitions between Available, Occupied, and Reserved are
// staff-triggered and allowed in any direction; there is no automatic
// state machine beyond the delete guard on Occupied tables.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// Available indicates the table is free to seat guests.
	Available

	// Occupied indicates guests are seated, usually with an order bound.
	Occupied

	// Reserved indicates the table is held for an upcoming booking.
	Reserved
)

func getStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		Available: "Available",
		Occupied:  "Occupied",
		Reserved:  "Reserved",
	}
}

// ParseStatus converts a string to a table Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("tableStatus",
		fmt.Errorf("%q is not a valid table status", s))
}

// Validate checks if the Status is one of the enumerated states.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("tableStatus",
			fmt.Errorf("%d is not a valid table status", s))
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
