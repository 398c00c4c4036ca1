package commands

import (
	"errors"

	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

var ErrCheckoutCommandIsNotConstructed = errors.New(
	"CheckoutCommand must be created via NewCheckoutCommand constructor",
)

// CheckoutCommand turns a session cart into a placed order.
// It carries the session to check out plus the order details collected
// at the counter: the order type, who the order is for, and where to
// deliver it when the type is delivery.
//
// Example:
//
//	cmd, err := NewCheckoutCommand("session-42", order.TypeDelivery, "Ayşe", "Moda Cd. 15")
//	if err != nil {
//	    return err
//	}
//	placed, err := handler.Handle(ctx, cmd)
type CheckoutCommand struct {
	sessionID       string
	orderType       order.Type
	customerName    string
	deliveryAddress string

	guard guard.ConstructorGuard
}

// NewCheckoutCommand creates a validated checkout command.
// The session must be non-empty and the order type valid; the cart
// contents themselves are validated by the checkout service.
func NewCheckoutCommand(
	sessionID string,
	orderType order.Type,
	customerName string,
	deliveryAddress string,
) (CheckoutCommand, error) {
	if sessionID == "" {
		return CheckoutCommand{}, errs.NewValueIsRequiredError("sessionId")
	}
	if err := orderType.Validate(); err != nil {
		return CheckoutCommand{}, err
	}

	return CheckoutCommand{
		sessionID:       sessionID,
		orderType:       orderType,
		customerName:    customerName,
		deliveryAddress: deliveryAddress,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// SessionID returns the cart session being checked out.
func (c CheckoutCommand) SessionID() string { return c.sessionID }

// OrderType returns the requested order type.
func (c CheckoutCommand) OrderType() order.Type { return c.orderType }

// CustomerName returns the customer name collected at checkout.
// May be empty, in which case the cart's bound name is used.
func (c CheckoutCommand) CustomerName() string { return c.customerName }

// DeliveryAddress returns the delivery destination. Empty for
// dine-in and takeaway orders.
func (c CheckoutCommand) DeliveryAddress() string { return c.deliveryAddress }

// Validate ensures the command was created through the constructor.
func (c CheckoutCommand) Validate() error {
	return c.guard.Validate(ErrCheckoutCommandIsNotConstructed)
}
