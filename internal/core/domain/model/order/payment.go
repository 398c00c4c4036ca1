package order

import (
	"fmt"

	"restaurant/internal/pkg/errs"
)

// PaymentStatus represents the payment state of an order.
// The only transition is PaymentPending -> PaymentPaid.
type PaymentStatus int

const (
	// PaymentStatusUnknown represents an invalid or undefined payment status.
	PaymentStatusUnknown PaymentStatus = iota

	// PaymentPending indicates the order has not been paid yet.
	PaymentPending

	// PaymentPaid indicates payment has been collected.
	PaymentPaid
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	//nolint:exhaustive // PaymentStatusUnknown is intentionally excluded as it's invalid
	return map[PaymentStatus]string{
		PaymentPending: "Pending",
		PaymentPaid:    "Paid",
	}
}

// ParsePaymentStatus converts a string to a PaymentStatus.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	for status, name := range getPaymentStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return PaymentStatusUnknown, errs.NewValueIsInvalidErrorWithCause("paymentStatus",
		fmt.Errorf("%q is not a valid payment status", s))
}

// Validate checks if the PaymentStatus is one of the enumerated states.
func (s PaymentStatus) Validate() error {
	if _, ok := getPaymentStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("paymentStatus",
			fmt.Errorf("%d is not a valid payment status", s))
	}
	return nil
}

// String returns the human-readable name of the payment status.
func (s PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// PaymentMethod identifies how an order was (or will be) paid.
type PaymentMethod int

const (
	// PaymentMethodUnspecified means no method has been chosen yet.
	// Valid while the payment status is PaymentPending.
	PaymentMethodUnspecified PaymentMethod = iota

	// PaymentMethodCash is payment in cash at the table or on delivery.
	PaymentMethodCash

	// PaymentMethodCard is payment by card terminal.
	PaymentMethodCard

	// PaymentMethodOnline is payment collected through the online channel.
	PaymentMethodOnline
)

func getPaymentMethodStrings() map[PaymentMethod]string {
	return map[PaymentMethod]string{
		PaymentMethodUnspecified: "Unspecified",
		PaymentMethodCash:        "Cash",
		PaymentMethodCard:        "Card",
		PaymentMethodOnline:      "Online",
	}
}

// ParsePaymentMethod converts a string to a PaymentMethod.
// An empty string parses to PaymentMethodUnspecified.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	if s == "" {
		return PaymentMethodUnspecified, nil
	}
	for method, name := range getPaymentMethodStrings() {
		if name == s {
			return method, nil
		}
	}
	return PaymentMethodUnspecified, errs.NewValueIsInvalidErrorWithCause("paymentMethod",
		fmt.Errorf("%q is not a valid payment method", s))
}

// Validate checks if the PaymentMethod is one of the enumerated methods.
func (m PaymentMethod) Validate() error {
	if _, ok := getPaymentMethodStrings()[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("paymentMethod",
			fmt.Errorf("%d is not a valid payment method", m))
	}
	return nil
}

// String returns the human-readable name of the payment method.
func (m PaymentMethod) String() string {
	if str, ok := getPaymentMethodStrings()[m]; ok {
		return str
	}
	return "Unspecified"
}
