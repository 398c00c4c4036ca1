package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"restaurant/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// SalesReportRowResponse is one day of the sales report.
type SalesReportRowResponse struct {
	Day       string `json:"day"`
	Orders    int    `json:"orders"`
	Revenue   int64  `json:"revenue"`
	Formatted string `json:"formatted"`
}

// GetSalesReport handles GET /api/v1/reports/sales?from=...&to=...
// with RFC 3339 bounds; the range is half-open.
func (s *Server) GetSalesReport(ctx echo.Context) error {
	from, err := time.Parse(time.RFC3339, ctx.QueryParam("from"))
	if err != nil {
		return badRequest(ctx, "from must be an RFC 3339 timestamp")
	}
	to, err := time.Parse(time.RFC3339, ctx.QueryParam("to"))
	if err != nil {
		return badRequest(ctx, "to must be an RFC 3339 timestamp")
	}

	query, err := queries.NewGetSalesReportQuery(from, to)
	if err != nil {
		return respondError(ctx, err)
	}

	rows, err := s.salesReportHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]SalesReportRowResponse, 0, len(rows))
	for _, row := range rows {
		response = append(response, SalesReportRowResponse{
			Day:       row.Day.Format("2006-01-02"),
			Orders:    row.Orders,
			Revenue:   row.Revenue.Amount(),
			Formatted: row.Revenue.Format(),
		})
	}
	return ctx.JSON(http.StatusOK, response)
}

// StreamNotifications handles GET /api/v1/notifications/stream as a
// server-sent events feed. The subscription ends when the client
// disconnects.
func (s *Server) StreamNotifications(ctx echo.Context) error {
	response := ctx.Response()
	response.Header().Set(echo.HeaderContentType, "text/event-stream")
	response.Header().Set(echo.HeaderCacheControl, "no-cache")
	response.Header().Set(echo.HeaderConnection, "keep-alive")
	response.WriteHeader(http.StatusOK)
	response.Flush()

	events, cancel := s.hub.Subscribe()
	defer cancel()

	for {
		select {
		case <-ctx.Request().Context().Done():
			return nil
		case n, ok := <-events:
			if !ok {
				return nil
			}
			data, err := json.Marshal(n)
			if err != nil {
				continue
			}
			if _, err = fmt.Fprintf(response, "data: %s\n\n", data); err != nil {
				return nil
			}
			response.Flush()
		}
	}
}
