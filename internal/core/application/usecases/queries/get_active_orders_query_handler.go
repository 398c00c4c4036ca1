package queries

import (
	"context"

	"restaurant/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveOrdersQueryHandler reads active orders from the database.
// Uses direct SQL for read performance; the order aggregates are never
// materialized.
//
// Example:
//
//	handler := NewGetActiveOrdersQueryHandler(db)
//	orders, err := handler.Handle(ctx, NewGetActiveOrdersQuery())
type GetActiveOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveOrdersQueryHandler creates a handler for active order queries.
// Requires a GORM database connection for query execution.
func NewGetActiveOrdersQueryHandler(db *gorm.DB) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{db: db}
}

// Handle executes the query to retrieve active orders, newest first.
func (h GetActiveOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetActiveOrdersQuery,
) ([]GetActiveOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetActiveOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			type,
			status,
			customer_name,
			total_amount,
			created_at
		FROM orders
		WHERE status NOT IN ('Completed', 'Cancelled')
		ORDER BY created_at DESC
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var response GetActiveOrdersQueryResponse
		var id uuid.UUID
		var totalAmount int64

		err = rows.Scan(
			&id,
			&response.Type,
			&response.Status,
			&response.CustomerName,
			&totalAmount,
			&response.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		response.ID = orderID

		total, moneyErr := kernel.NewMoney(totalAmount)
		if moneyErr != nil {
			return nil, moneyErr
		}
		response.Total = total

		orders = append(orders, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
