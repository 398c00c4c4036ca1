package order

import (
	"fmt"

	"restaurant/internal/pkg/errs"
)

// DeliveryStatus represents courier progress for delivery orders.
// It only applies to orders of TypeDelivery; other orders keep the zero
// value DeliveryNotApplicable.
//
// State transitions:
//
//	DeliveryPending ──> DeliveryEnRoute ──> DeliveryDelivered
//
// Reaching DeliveryDelivered forces the order status to Completed
// (see Order.ChangeDeliveryStatus).
type DeliveryStatus int

const (
	// DeliveryNotApplicable is the zero value carried by dine-in and
	// takeaway orders, which have no delivery dimension.
	DeliveryNotApplicable DeliveryStatus = iota

	// DeliveryPending indicates a delivery order awaiting courier assignment.
	DeliveryPending

	// DeliveryEnRoute indicates a courier is on the way to the customer.
	DeliveryEnRoute

	// DeliveryDelivered indicates the courier handed the order over.
	// Terminal state.
	DeliveryDelivered
)

func getDeliveryStatusStrings() map[DeliveryStatus]string {
	//nolint:exhaustive // DeliveryNotApplicable is intentionally excluded from parsing
	return map[DeliveryStatus]string{
		DeliveryPending:   "Pending",
		DeliveryEnRoute:   "EnRoute",
		DeliveryDelivered: "Delivered",
	}
}

// ParseDeliveryStatus converts a string to a DeliveryStatus.
func ParseDeliveryStatus(s string) (DeliveryStatus, error) {
	for status, name := range getDeliveryStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return DeliveryNotApplicable, errs.NewValueIsInvalidErrorWithCause("deliveryStatus",
		fmt.Errorf("%q is not a valid delivery status", s))
}

// Validate checks if the DeliveryStatus is one of the enumerated states.
func (s DeliveryStatus) Validate() error {
	if _, ok := getDeliveryStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("deliveryStatus",
			fmt.Errorf("%d is not a valid delivery status", s))
	}
	return nil
}

// String returns the human-readable name of the delivery status.
func (s DeliveryStatus) String() string {
	if str, ok := getDeliveryStatusStrings()[s]; ok {
		return str
	}
	return "NotApplicable"
}

// CanTransitionTo validates a forward transition of the delivery dimension.
// Skipping EnRoute is allowed so staff can mark a handed-over order
// Delivered directly.
func (s DeliveryStatus) CanTransitionTo(next DeliveryStatus) error {
	if err := next.Validate(); err != nil {
		return err
	}
	if s == DeliveryDelivered {
		return errs.NewValueIsInvalidErrorWithCause("deliveryStatus",
			fmt.Errorf("%s is a terminal delivery status", s))
	}
	if next <= s {
		return errs.NewValueIsInvalidErrorWithCause("deliveryStatus",
			fmt.Errorf("cannot transition from %s to %s", s, next))
	}
	return nil
}
