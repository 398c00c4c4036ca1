package ports

import (
	"context"

	"restaurant/internal/core/domain/model/cart"
	"restaurant/internal/core/domain/model/courier"
	"restaurant/internal/core/domain/model/table"
)

// CourierStore persists the courier roster as a whole under a fixed key.
// The registry owns the in-memory state and writes through on every
// mutation; Load re-hydrates it at startup.
type CourierStore interface {
	// Load retrieves the full roster. An absent key yields an empty slice.
	Load(ctx context.Context) ([]*courier.Courier, error)

	// Save replaces the full roster.
	Save(ctx context.Context, couriers []*courier.Courier) error
}

// TableStore persists the table layout as a whole under a fixed key.
type TableStore interface {
	// Load retrieves the full layout. An absent key yields an empty slice.
	Load(ctx context.Context) ([]*table.Table, error)

	// Save replaces the full layout.
	Save(ctx context.Context, tables []*table.Table) error
}

// CartStore persists one cart per session key.
type CartStore interface {
	// Load retrieves the session's cart, nil when the session has none.
	Load(ctx context.Context, sessionID string) (*cart.Cart, error)

	// Save replaces the session's cart.
	Save(ctx context.Context, c *cart.Cart) error

	// Delete drops the session's cart.
	Delete(ctx context.Context, sessionID string) error
}
