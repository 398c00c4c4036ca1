package queries

import (
	"context"

	"restaurant/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GetSalesReportQueryHandler aggregates completed orders per day.
// Revenue counts only orders whose status is Completed; cancelled and
// in-progress orders never contribute.
//
// Example:
//
//	handler := NewGetSalesReportQueryHandler(db)
//	report, err := handler.Handle(ctx, query)
type GetSalesReportQueryHandler struct {
	db *gorm.DB
}

// NewGetSalesReportQueryHandler creates a handler for sales report queries.
// Requires a GORM database connection for query execution.
func NewGetSalesReportQueryHandler(db *gorm.DB) GetSalesReportQueryHandler {
	return GetSalesReportQueryHandler{db: db}
}

// Handle executes the query and returns one row per day with completed
// sales, in chronological order. Days without completed orders are
// absent from the result.
func (h GetSalesReportQueryHandler) Handle(
	ctx context.Context,
	query GetSalesReportQuery,
) ([]GetSalesReportQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	report := make([]GetSalesReportQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			DATE(created_at) AS day,
			COUNT(*) AS orders,
			COALESCE(SUM(total_amount), 0) AS revenue
		FROM orders
		WHERE status = 'Completed'
		  AND created_at >= ?
		  AND created_at < ?
		GROUP BY DATE(created_at)
		ORDER BY day
	`, query.From(), query.To()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var response GetSalesReportQueryResponse
		var revenue int64

		err = rows.Scan(&response.Day, &response.Orders, &revenue)
		if err != nil {
			return nil, err
		}

		money, moneyErr := kernel.NewMoney(revenue)
		if moneyErr != nil {
			return nil, moneyErr
		}
		response.Revenue = money

		report = append(report, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return report, nil
}
