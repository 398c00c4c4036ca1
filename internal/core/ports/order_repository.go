package ports

import (
	"context"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// The database behind it is the source of truth for orders; the order
// store keeps only a cache on top of it.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAll retrieves every order, newest first. Used by the periodic
	// cache refresh.
	GetAll(ctx context.Context) ([]*order.Order, error)

	// GetFirstUnassignedDelivery retrieves the oldest delivery order
	// that has no courier and is not in a terminal status. Used by the
	// courier dispatch workflow.
	GetFirstUnassignedDelivery(ctx context.Context) (*order.Order, error)
}
