package commands

import (
	"context"
	"log/slog"

	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/errs"
)

// CheckoutCommandHandler places an order from a session cart.
// Delegates cart validation and order creation to the checkout service
// and, for dine-in orders, occupies the chosen table with the new order.
//
// Example:
//
//	handler, err := NewCheckoutCommandHandler(cartService, tableRegistry, logger)
//	if err != nil {
//	    return err
//	}
//	placed, err := handler.Handle(ctx, cmd)
type CheckoutCommandHandler struct {
	checkout CheckoutService
	tables   TableBinder
	log      *slog.Logger
}

// NewCheckoutCommandHandler creates a handler for checkout operations.
func NewCheckoutCommandHandler(
	checkout CheckoutService,
	tables TableBinder,
	log *slog.Logger,
) (CheckoutCommandHandler, error) {
	if checkout == nil {
		return CheckoutCommandHandler{}, errs.NewValueIsRequiredError("checkout")
	}
	if tables == nil {
		return CheckoutCommandHandler{}, errs.NewValueIsRequiredError("tables")
	}
	if log == nil {
		log = slog.Default()
	}

	return CheckoutCommandHandler{
		checkout: checkout,
		tables:   tables,
		log:      log.With("component", "checkout"),
	}, nil
}

// Handle processes the checkout command and returns the placed order.
// A dine-in order also occupies its table; the order is already
// persisted at that point, so a failed table binding is logged and the
// order is still returned.
func (h CheckoutCommandHandler) Handle(ctx context.Context, command CheckoutCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	placed, err := h.checkout.Checkout(
		ctx,
		command.SessionID(),
		command.OrderType(),
		command.CustomerName(),
		command.DeliveryAddress(),
	)
	if err != nil {
		return nil, err
	}

	if placed.TableID() != nil {
		if err = h.tables.AssignOrder(ctx, *placed.TableID(), placed.ID()); err != nil {
			h.log.WarnContext(ctx, "table not occupied after checkout",
				"orderId", placed.ID().String(),
				"tableId", placed.TableID().String(),
				"err", err)
		}
	}

	return placed, nil
}
