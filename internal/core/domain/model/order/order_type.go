package order

import (
	"fmt"

	"restaurant/internal/pkg/errs"
)

// Type distinguishes how an order is fulfilled. It is fixed at checkout
// and determines which optional fields the order must carry: dine-in
// orders bind a table, delivery orders carry an address and the delivery
// status dimension.
type Type int

const (
	// TypeUnknown represents an invalid or undefined order type.
	TypeUnknown Type = iota

	// TypeDineIn is an order served at a table.
	TypeDineIn

	// TypeTakeaway is an order picked up at the counter.
	TypeTakeaway

	// TypeDelivery is an order brought to the customer by a courier.
	TypeDelivery
)

func getTypeStrings() map[Type]string {
	//nolint:exhaustive // TypeUnknown is intentionally excluded as it's invalid
	return map[Type]string{
		TypeDineIn:   "DineIn",
		TypeTakeaway: "Takeaway",
		TypeDelivery: "Delivery",
	}
}

// ParseType converts a string to an order Type.
func ParseType(s string) (Type, error) {
	for typ, name := range getTypeStrings() {
		if name == s {
			return typ, nil
		}
	}
	return TypeUnknown, errs.NewValueIsInvalidErrorWithCause("orderType",
		fmt.Errorf("%q is not a valid order type", s))
}

// Validate checks if the Type is one of the enumerated types.
func (t Type) Validate() error {
	if _, ok := getTypeStrings()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("orderType",
			fmt.Errorf("%d is not a valid order type", t))
	}
	return nil
}

// String returns the human-readable name of the order type.
func (t Type) String() string {
	if str, ok := getTypeStrings()[t]; ok {
		return str
	}
	return "Unknown"
}
