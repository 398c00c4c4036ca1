package order

import (
	"fmt"

	"restaurant/internal/pkg/errs"
)

// Status represents the kitchen workflow state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct business workflow.
//
// State transitions:
//
//	Pending ──> Preparing ──> Ready ──> Completed
//	   │            │           │
//	   └────────────┴───────────┴──> Cancelled
//
// Completed and Cancelled are terminal. A delivery order additionally
// reaches Completed when its delivery status becomes Delivered, which
// bypasses the Ready step (see Order.ChangeDeliveryStatus).
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// Pending is the initial status when an order is placed at checkout.
	Pending

	// Preparing indicates the kitchen has started working on the order.
	Preparing

	// Ready indicates the order is ready to be served or picked up.
	Ready

	// Completed indicates the order was served, picked up, or delivered.
	// Terminal state.
	Completed

	// Cancelled indicates the order was abandoned by staff or customer.
	// Terminal state.
	Cancelled
)

// getStatusStrings returns the string representation of every Status,
// including the invalid zero value.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown: "Unknown",
		Pending:       "Pending",
		Preparing:     "Preparing",
		Ready:         "Ready",
		Completed:     "Completed",
		Cancelled:     "Cancelled",
	}
}

// getValidStatusStrings returns only valid Status values, supporting
// validation and parsing.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "Pending",
		Preparing: "Preparing",
		Ready:     "Ready",
		Completed: "Completed",
		Cancelled: "Cancelled",
	}
}

// ParseStatus converts a string (as carried by HTTP requests and stored
// payloads) to a Status. Returns an error for unknown names.
func ParseStatus(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid order status", s))
}

// Validate checks if the Status value is one of the enumerated states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer and is safe on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transitions are allowed.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// CanTransitionTo validates a transition from the current status to next.
//
// Allowed transitions:
//   - Pending -> Preparing, Ready, Cancelled
//   - Preparing -> Ready, Cancelled
//   - Ready -> Completed, Cancelled
//
// Returns an error for transitions out of terminal states, backward
// transitions, and self transitions.
func (s Status) CanTransitionTo(next Status) error {
	if err := next.Validate(); err != nil {
		return err
	}
	if s.IsTerminal() {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is a terminal status", s))
	}

	allowed := map[Status][]Status{
		Pending:   {Preparing, Ready, Cancelled},
		Preparing: {Ready, Cancelled},
		Ready:     {Completed, Cancelled},
	}

	for _, candidate := range allowed[s] {
		if candidate == next {
			return nil
		}
	}

	return errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("cannot transition from %s to %s", s, next))
}
