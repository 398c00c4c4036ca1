// Package cart provides the session-scoped cart entity used to compose
// an order before checkout. A cart holds product snapshots with
// quantities and notes plus the table/customer binding; it is cleared on
// checkout or explicit clear and never outlives its session.
package cart

import (
	"errors"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

// Domain errors for cart operations.
var (
	// ErrCartIsNotConstructed is returned when using an improperly initialized Cart.
	ErrCartIsNotConstructed = errors.New("Cart must be created via NewCart constructor")
	// ErrSessionIsRequired is returned when creating a cart without a session key.
	ErrSessionIsRequired = errs.NewValueIsRequiredError("sessionID")
	// ErrCartIsEmpty is returned when checking out an empty cart.
	ErrCartIsEmpty = errors.New("cart is empty")
	// ErrItemNotFound is returned when mutating a product absent from the cart.
	ErrItemNotFound = errors.New("item not found in cart")
)

// Cart is the per-session order composition state.
type Cart struct {
	sessionID    string
	items        []order.LineItem
	tableID      *kernel.UUID
	customerName string
	updatedAt    time.Time

	guard guard.ConstructorGuard
}

// NewCart creates an empty cart for a session.
func NewCart(sessionID string) (*Cart, error) {
	if sessionID == "" {
		return nil, ErrSessionIsRequired
	}

	return &Cart{
		sessionID: sessionID,
		updatedAt: time.Now().UTC(),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// RestoreCart reconstructs a cart from the session store.
func RestoreCart(
	sessionID string,
	items []order.LineItem,
	tableID *kernel.UUID,
	customerName string,
	updatedAt time.Time,
) (*Cart, error) {
	c, err := NewCart(sessionID)
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}
	if tableID != nil {
		if err := tableID.Validate(); err != nil {
			return nil, err
		}
		id := *tableID
		c.tableID = &id
	}

	c.items = make([]order.LineItem, len(items))
	copy(c.items, items)
	c.customerName = customerName
	c.updatedAt = updatedAt
	return c, nil
}

// Validate ensures the Cart instance was properly constructed.
func (c *Cart) Validate() error {
	if c == nil {
		return ErrCartIsNotConstructed
	}

	return c.guard.Validate(ErrCartIsNotConstructed)
}

// SessionID returns the owning session key.
func (c *Cart) SessionID() string {
	return c.sessionID
}

// Items returns a copy of the cart's line items.
func (c *Cart) Items() []order.LineItem {
	out := make([]order.LineItem, len(c.items))
	copy(out, c.items)
	return out
}

// TableID returns the bound table, nil if unbound.
func (c *Cart) TableID() *kernel.UUID {
	return c.tableID
}

// CustomerName returns the bound customer identity.
func (c *Cart) CustomerName() string {
	return c.customerName
}

// UpdatedAt returns the last mutation timestamp.
func (c *Cart) UpdatedAt() time.Time {
	return c.updatedAt
}

// IsEmpty reports whether the cart has no items.
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// Total returns the sum of all item subtotals.
func (c *Cart) Total() (kernel.Money, error) {
	if err := c.Validate(); err != nil {
		return kernel.Money{}, err
	}

	total, err := kernel.NewMoney(0)
	if err != nil {
		return kernel.Money{}, err
	}
	for _, item := range c.items {
		subtotal, subErr := item.Subtotal()
		if subErr != nil {
			return kernel.Money{}, subErr
		}
		total, err = total.Add(subtotal)
		if err != nil {
			return kernel.Money{}, err
		}
	}

	return total, nil
}

// AddItem puts a product snapshot into the cart. Adding a product that
// is already present with the same note merges the quantities instead of
// duplicating the line.
func (c *Cart) AddItem(item order.LineItem) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := item.Validate(); err != nil {
		return err
	}

	for i, existing := range c.items {
		if existing.ProductID().IsEqual(item.ProductID()) && existing.Note() == item.Note() {
			merged, err := order.NewLineItem(
				existing.ProductID(),
				existing.Name(),
				existing.UnitPrice(),
				existing.Quantity()+item.Quantity(),
				existing.Note(),
			)
			if err != nil {
				return err
			}
			c.items[i] = merged
			c.touch()
			return nil
		}
	}

	c.items = append(c.items, item)
	c.touch()
	return nil
}

// RemoveItem drops all lines of a product from the cart.
func (c *Cart) RemoveItem(productID kernel.UUID) error {
	if err := c.Validate(); err != nil {
		return err
	}

	kept := c.items[:0]
	found := false
	for _, item := range c.items {
		if item.ProductID().IsEqual(productID) {
			found = true
			continue
		}
		kept = append(kept, item)
	}
	if !found {
		return ErrItemNotFound
	}

	c.items = kept
	c.touch()
	return nil
}

// SetQuantity changes a product's quantity. A non-positive quantity
// removes the line entirely.
func (c *Cart) SetQuantity(productID kernel.UUID, quantity int) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if quantity <= 0 {
		return c.RemoveItem(productID)
	}

	for i, item := range c.items {
		if !item.ProductID().IsEqual(productID) {
			continue
		}
		updated, err := order.NewLineItem(item.ProductID(), item.Name(), item.UnitPrice(), quantity, item.Note())
		if err != nil {
			return err
		}
		c.items[i] = updated
		c.touch()
		return nil
	}

	return ErrItemNotFound
}

// SetNote replaces the kitchen note on a product's line.
func (c *Cart) SetNote(productID kernel.UUID, note string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	for i, item := range c.items {
		if !item.ProductID().IsEqual(productID) {
			continue
		}
		updated, err := order.NewLineItem(item.ProductID(), item.Name(), item.UnitPrice(), item.Quantity(), note)
		if err != nil {
			return err
		}
		c.items[i] = updated
		c.touch()
		return nil
	}

	return ErrItemNotFound
}

// Bind attaches the table and customer identity used at checkout.
func (c *Cart) Bind(tableID *kernel.UUID, customerName string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if tableID != nil {
		if err := tableID.Validate(); err != nil {
			return err
		}
		id := *tableID
		c.tableID = &id
	} else {
		c.tableID = nil
	}

	c.customerName = customerName
	c.touch()
	return nil
}

// Clear empties the cart and drops the bindings.
func (c *Cart) Clear() error {
	if err := c.Validate(); err != nil {
		return err
	}

	c.items = nil
	c.tableID = nil
	c.customerName = ""
	c.touch()
	return nil
}

func (c *Cart) touch() {
	c.updatedAt = time.Now().UTC()
}
