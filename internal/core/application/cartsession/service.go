// Package cartsession provides the per-session cart service. Carts are
// transient composition state: they live in the session store, never in
// the order database, and are cleared on checkout or explicit clear.
package cartsession

import (
	"context"
	"fmt"
	"log/slog"

	"restaurant/internal/core/domain/model/cart"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/product"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"
)

// OrderCreator persists a new order. Satisfied by the order store.
type OrderCreator interface {
	Create(ctx context.Context, o *order.Order) error
}

// Service manages session carts and turns them into orders at checkout.
type Service struct {
	carts  ports.CartStore
	orders OrderCreator
	log    *slog.Logger
}

// NewService creates the cart session service.
func NewService(carts ports.CartStore, orders OrderCreator, log *slog.Logger) (*Service, error) {
	if carts == nil {
		return nil, errs.NewValueIsRequiredError("carts")
	}
	if orders == nil {
		return nil, errs.NewValueIsRequiredError("orders")
	}
	if log == nil {
		log = slog.Default()
	}

	return &Service{
		carts:  carts,
		orders: orders,
		log:    log.With("component", "cartsession"),
	}, nil
}

// Get returns the session's cart, creating an empty one if the session
// has none yet.
func (s *Service) Get(ctx context.Context, sessionID string) (*cart.Cart, error) {
	c, err := s.carts.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if c == nil {
		return cart.NewCart(sessionID)
	}
	return c, nil
}

// AddProduct snapshots a menu product into the session's cart.
// Unavailable products are rejected.
func (s *Service) AddProduct(ctx context.Context, sessionID string, p *product.Product, quantity int, note string) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if !p.IsAvailable() {
		return fmt.Errorf("%w: %s", product.ErrProductIsUnavailable, p.Name())
	}

	item, err := order.NewLineItem(p.ID(), p.Name(), p.Price(), quantity, note)
	if err != nil {
		return err
	}

	return s.mutate(ctx, sessionID, func(c *cart.Cart) error {
		return c.AddItem(item)
	})
}

// RemoveItem drops a product from the session's cart.
func (s *Service) RemoveItem(ctx context.Context, sessionID string, productID kernel.UUID) error {
	return s.mutate(ctx, sessionID, func(c *cart.Cart) error {
		return c.RemoveItem(productID)
	})
}

// SetQuantity changes a product's quantity; non-positive removes it.
func (s *Service) SetQuantity(ctx context.Context, sessionID string, productID kernel.UUID, quantity int) error {
	return s.mutate(ctx, sessionID, func(c *cart.Cart) error {
		return c.SetQuantity(productID, quantity)
	})
}

// SetNote replaces the kitchen note on a product's line.
func (s *Service) SetNote(ctx context.Context, sessionID string, productID kernel.UUID, note string) error {
	return s.mutate(ctx, sessionID, func(c *cart.Cart) error {
		return c.SetNote(productID, note)
	})
}

// Bind attaches the table and customer identity used at checkout.
func (s *Service) Bind(ctx context.Context, sessionID string, tableID *kernel.UUID, customerName string) error {
	return s.mutate(ctx, sessionID, func(c *cart.Cart) error {
		return c.Bind(tableID, customerName)
	})
}

// Clear drops the session's cart entirely.
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	if err := s.carts.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

// Checkout turns the session's cart into a persisted order and clears
// the cart. The cart is kept intact when order creation fails so the
// customer can retry.
func (s *Service) Checkout(
	ctx context.Context,
	sessionID string,
	typ order.Type,
	customerName string,
	deliveryAddress string,
) (*order.Order, error) {
	c, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, cart.ErrCartIsEmpty
	}

	if customerName == "" {
		customerName = c.CustomerName()
	}

	o, err := order.NewOrder(kernel.NewUUID(), typ, c.Items(), c.TableID(), customerName, deliveryAddress)
	if err != nil {
		return nil, err
	}

	if err = s.orders.Create(ctx, o); err != nil {
		return nil, err
	}

	if err = s.carts.Delete(ctx, sessionID); err != nil {
		// The order exists; a stale cart is an annoyance, not a failure.
		s.log.WarnContext(ctx, "cart not cleared after checkout",
			"sessionId", sessionID, "err", err)
	}

	return o, nil
}

// mutate loads (or creates) the cart, applies the operation, and saves.
func (s *Service) mutate(ctx context.Context, sessionID string, op func(*cart.Cart) error) error {
	c, err := s.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if err = op(c); err != nil {
		return err
	}
	if err = s.carts.Save(ctx, c); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}
