package order

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

// Domain errors for line item construction.
var (
	// ErrLineItemIsNotConstructed is returned when using a LineItem that
	// was not created via the NewLineItem constructor.
	ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem constructor")
	// ErrProductNameIsRequired is returned for an empty product name.
	ErrProductNameIsRequired = errs.NewValueIsRequiredError("productName")
	// ErrQuantityIsInvalid is returned for a non-positive quantity.
	ErrQuantityIsInvalid = errors.New("quantity must be greater than 0")
)

// LineItem is an immutable value object holding a priced snapshot of a
// menu product at the moment it entered the order. The unit price is
// frozen here so later menu edits never change a placed order's total.
type LineItem struct { //nolint:recvcheck //using for validation
	productID kernel.UUID
	name      string
	unitPrice kernel.Money
	quantity  int
	note      string

	guard guard.ConstructorGuard
}

// NewLineItem creates a line item from a product snapshot.
// The note is optional kitchen guidance ("no onions") and may be empty.
func NewLineItem(
	productID kernel.UUID,
	name string,
	unitPrice kernel.Money,
	quantity int,
	note string,
) (LineItem, error) {
	item := LineItem{
		note:  note,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setProductID(productID),
		item.setName(name),
		item.setUnitPrice(unitPrice),
		item.setQuantity(quantity),
	); err != nil {
		return LineItem{}, err
	}

	return item, nil
}

// Validate checks that the item was created via the constructor.
func (i LineItem) Validate() error {
	return i.guard.Validate(ErrLineItemIsNotConstructed)
}

// ProductID returns the identifier of the snapshotted menu product.
func (i LineItem) ProductID() kernel.UUID {
	return i.productID
}

// Name returns the product name at snapshot time.
func (i LineItem) Name() string {
	return i.name
}

// UnitPrice returns the frozen unit price.
func (i LineItem) UnitPrice() kernel.Money {
	return i.unitPrice
}

// Quantity returns how many units the customer ordered.
func (i LineItem) Quantity() int {
	return i.quantity
}

// Note returns the optional kitchen note.
func (i LineItem) Note() string {
	return i.note
}

// Subtotal returns unit price times quantity.
func (i LineItem) Subtotal() (kernel.Money, error) {
	if err := i.Validate(); err != nil {
		return kernel.Money{}, err
	}
	return i.unitPrice.Multiply(i.quantity)
}

func (i *LineItem) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}

	i.productID = productID
	return nil
}

func (i *LineItem) setName(name string) error {
	if name == "" {
		return ErrProductNameIsRequired
	}

	i.name = name
	return nil
}

func (i *LineItem) setUnitPrice(unitPrice kernel.Money) error {
	if err := unitPrice.Validate(); err != nil {
		return err
	}

	i.unitPrice = unitPrice
	return nil
}

func (i *LineItem) setQuantity(quantity int) error {
	if quantity <= 0 {
		return ErrQuantityIsInvalid
	}

	i.quantity = quantity
	return nil
}
