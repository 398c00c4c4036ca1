package queries

import (
	"errors"
	"fmt"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

var ErrGetSalesReportQueryIsNotConstructed = errors.New(
	"GetSalesReportQuery must be created via NewGetSalesReportQuery constructor",
)

// GetSalesReportQuery aggregates completed orders into a per-day sales
// report over a half-open time range [from, to).
//
// Example:
//
//	query, err := NewGetSalesReportQuery(weekStart, weekEnd)
//	if err != nil {
//	    return err
//	}
//	report, err := handler.Handle(ctx, query)
type GetSalesReportQuery struct {
	from time.Time
	to   time.Time

	guard guard.ConstructorGuard
}

// NewGetSalesReportQuery creates a validated sales report query.
// Both bounds are required and from must precede to.
func NewGetSalesReportQuery(from, to time.Time) (GetSalesReportQuery, error) {
	if from.IsZero() {
		return GetSalesReportQuery{}, errs.NewValueIsRequiredError("from")
	}
	if to.IsZero() {
		return GetSalesReportQuery{}, errs.NewValueIsRequiredError("to")
	}
	if !from.Before(to) {
		return GetSalesReportQuery{}, errs.NewValueIsInvalidErrorWithCause("from",
			fmt.Errorf("range start %s must precede range end %s", from, to))
	}

	return GetSalesReportQuery{
		from:  from,
		to:    to,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// From returns the inclusive lower bound of the report range.
func (q GetSalesReportQuery) From() time.Time { return q.from }

// To returns the exclusive upper bound of the report range.
func (q GetSalesReportQuery) To() time.Time { return q.to }

// Validate ensures the query was created through the constructor.
// Returns ErrGetSalesReportQueryIsNotConstructed if validation fails.
func (q GetSalesReportQuery) Validate() error {
	return q.guard.Validate(ErrGetSalesReportQueryIsNotConstructed)
}

// GetSalesReportQueryResponse is one day of completed sales.
type GetSalesReportQueryResponse struct {
	Day     time.Time
	Orders  int
	Revenue kernel.Money
}
