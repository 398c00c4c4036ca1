package ports

import (
	"context"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/product"
)

// ProductRepository defines the persistence contract for menu products.
type ProductRepository interface {
	// Add persists a new product.
	Add(ctx context.Context, aggregate *product.Product) error

	// Update persists changes to an existing product.
	Update(ctx context.Context, aggregate *product.Product) error

	// Get retrieves a product by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*product.Product, error)

	// GetAllAvailable retrieves the orderable menu, grouped by category
	// in the adapter's natural ordering.
	GetAllAvailable(ctx context.Context) ([]*product.Product, error)
}
