package kernel

import (
	"errors"

	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const kurusPerLira = 100

// ErrMoneyIsNotConstructed is returned when using a Money value that was
// not created via one of the constructors.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError(
	"money must be created via NewMoney or NewMoneyFromLira constructors")

// trPrinter renders amounts with Turkish digit grouping and separators.
var trPrinter = message.NewPrinter(language.Turkish)

// Money is an immutable value object representing a non-negative amount of
// Turkish lira, stored in kuruş to avoid floating point arithmetic.
//
// The zero value is invalid; use the constructors.
//
// Example:
//
//	price, _ := kernel.NewMoneyFromLira(130)
//	fmt.Println(price.Format()) // Output: ₺130,00
type Money struct { //nolint:recvcheck //using for validation
	amount int64
	guard  guard.ConstructorGuard
}

// NewMoney creates a Money value from an amount in kuruş.
// The amount must not be negative.
func NewMoney(amount int64) (Money, error) {
	m := Money{
		guard: guard.NewConstructorGuard(),
	}

	if err := m.setAmount(amount); err != nil {
		return Money{}, err
	}

	return m, nil
}

// NewMoneyFromLira creates a Money value from whole lira.
func NewMoneyFromLira(lira int64) (Money, error) {
	return NewMoney(lira * kurusPerLira)
}

// Validate checks that the Money value was created via a constructor.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// Amount returns the amount in kuruş.
func (m Money) Amount() int64 {
	return m.amount
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.amount == 0
}

// IsEqual compares two Money values. Both must be properly constructed.
func (m Money) IsEqual(other Money) (bool, error) {
	if err := errors.Join(m.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return m.amount == other.amount, nil
}

// Add returns the sum of two Money values.
func (m Money) Add(other Money) (Money, error) {
	if err := errors.Join(m.Validate(), other.Validate()); err != nil {
		return Money{}, err
	}

	return NewMoney(m.amount + other.amount)
}

// Multiply returns the amount scaled by a positive quantity.
// Used to price a line item from its unit price.
func (m Money) Multiply(quantity int) (Money, error) {
	if err := m.Validate(); err != nil {
		return Money{}, err
	}
	if quantity <= 0 {
		return Money{}, errs.NewValueIsInvalidError("quantity")
	}

	return NewMoney(m.amount * int64(quantity))
}

// Format renders the amount with the Turkish locale conventions:
// comma decimal separator, dot thousands separator, leading lira sign.
// For example 13000 kuruş renders as "₺130,00".
func (m Money) Format() string {
	return trPrinter.Sprintf("₺%d,%02d", m.amount/kurusPerLira, m.amount%kurusPerLira)
}

// String implements fmt.Stringer.
func (m Money) String() string {
	return m.Format()
}

// setAmount sets the amount with validation.
// Pointer receiver on purpose: private setters mutate during construction
// while the public surface stays value-based.
func (m *Money) setAmount(amount int64) error {
	if amount < 0 {
		return errs.NewValueIsInvalidErrorWithCause("amount",
			errors.New("amount cannot be negative"))
	}

	m.amount = amount
	return nil
}
