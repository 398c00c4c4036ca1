// Package product provides the menu product entity. Products are the
// source of line-item snapshots: the cart copies a product's name and
// price at add time so later menu edits never change placed orders.
package product

import (
	"errors"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

// Domain errors for product operations.
var (
	// ErrProductIsNotConstructed is returned when using an improperly initialized Product.
	ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")
	// ErrNameIsRequired is returned when creating a product without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrProductIsUnavailable is returned when adding an unavailable product to a cart.
	ErrProductIsUnavailable = errors.New("product is not available")
)

// Product is a menu item offered by the restaurant.
type Product struct {
	id        kernel.UUID
	name      string
	category  string
	price     kernel.Money
	available bool
	createdAt time.Time
	updatedAt time.Time

	guard guard.ConstructorGuard
}

// NewProduct creates an available menu product.
func NewProduct(id kernel.UUID, name string, category string, price kernel.Money) (*Product, error) {
	now := time.Now().UTC()
	p := &Product{
		category:  category,
		available: true,
		createdAt: now,
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setName(name),
		p.setPrice(price),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestoreProduct reconstructs a Product from persistent storage.
func RestoreProduct(
	id kernel.UUID,
	name string,
	category string,
	price kernel.Money,
	available bool,
	createdAt time.Time,
	updatedAt time.Time,
) (*Product, error) {
	p := &Product{
		category:  category,
		available: available,
		createdAt: createdAt,
		updatedAt: updatedAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setName(name),
		p.setPrice(price),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// Validate ensures the Product instance was properly constructed.
func (p *Product) Validate() error {
	if p == nil {
		return ErrProductIsNotConstructed
	}

	return p.guard.Validate(ErrProductIsNotConstructed)
}

// IsEqual compares two products by their unique identifiers.
func (p *Product) IsEqual(other *Product) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the product's unique identifier.
func (p *Product) ID() kernel.UUID {
	return p.id
}

// Name returns the product name.
func (p *Product) Name() string {
	return p.name
}

// Category returns the menu category ("soups", "kebaps").
func (p *Product) Category() string {
	return p.category
}

// Price returns the current menu price.
func (p *Product) Price() kernel.Money {
	return p.price
}

// IsAvailable reports whether the product can be ordered.
func (p *Product) IsAvailable() bool {
	return p.available
}

// CreatedAt returns the creation timestamp.
func (p *Product) CreatedAt() time.Time {
	return p.createdAt
}

// UpdatedAt returns the last mutation timestamp.
func (p *Product) UpdatedAt() time.Time {
	return p.updatedAt
}

// ChangePrice updates the menu price. Already placed orders keep their
// line-item snapshots.
func (p *Product) ChangePrice(price kernel.Money) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := p.setPrice(price); err != nil {
		return err
	}

	p.touch()
	return nil
}

// SetAvailability toggles whether the product can be ordered.
func (p *Product) SetAvailability(available bool) error {
	if err := p.Validate(); err != nil {
		return err
	}

	p.available = available
	p.touch()
	return nil
}

func (p *Product) touch() {
	p.updatedAt = time.Now().UTC()
}

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	p.name = name
	return nil
}

func (p *Product) setPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}
	p.price = price
	return nil
}
