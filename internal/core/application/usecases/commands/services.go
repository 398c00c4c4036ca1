// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, orchestration of the
// stateful application services, and persistence through them.
package commands

import (
	"context"

	"restaurant/internal/core/domain/model/courier"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
)

// Application service interfaces consumed by command handlers.
// Handlers depend on these narrow views rather than on the concrete
// services so they can be tested in isolation.
type (
	// OrderStore is the order-side surface needed by dispatching.
	// Satisfied by the orderstore service.
	OrderStore interface {
		UnassignedDeliveryOrders() []*order.Order
		AssignCourier(ctx context.Context, orderID kernel.UUID, courierID kernel.UUID) error
	}

	// CourierRegistry is the courier-side surface needed by dispatching.
	// Satisfied by the courierregistry service.
	CourierRegistry interface {
		AvailableCouriers() []*courier.Courier
		AssignOrder(ctx context.Context, courierID kernel.UUID, orderID kernel.UUID) error
		ChangeStatus(ctx context.Context, courierID kernel.UUID, status courier.Status, orderID *kernel.UUID) error
		StartLiveTracking(ctx context.Context, courierID kernel.UUID, orderID kernel.UUID) error
	}

	// CheckoutService turns a session cart into a persisted order.
	// Satisfied by the cartsession service.
	CheckoutService interface {
		Checkout(
			ctx context.Context,
			sessionID string,
			typ order.Type,
			customerName string,
			deliveryAddress string,
		) (*order.Order, error)
	}

	// TableBinder occupies a table with a freshly created order.
	// Satisfied by the tableregistry service.
	TableBinder interface {
		AssignOrder(ctx context.Context, tableID kernel.UUID, orderID kernel.UUID) error
	}
)
