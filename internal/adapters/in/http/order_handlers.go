package http

import (
	"net/http"
	"time"

	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// GetOrders handles GET /api/v1/orders - the cached order list.
func (s *Server) GetOrders(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, toOrderResponses(s.orders.Orders()))
}

// ActiveOrderResponse is one row of the active orders read model.
type ActiveOrderResponse struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	Status       string    `json:"status"`
	CustomerName string    `json:"customerName,omitempty"`
	Total        int64     `json:"total"`
	Formatted    string    `json:"formatted"`
	CreatedAt    time.Time `json:"createdAt"`
}

// GetActiveOrders handles GET /api/v1/orders/active - reads straight
// from the database, bypassing the cache.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	rows, err := s.activeOrdersHandler.Handle(ctx.Request().Context(), queries.NewGetActiveOrdersQuery())
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]ActiveOrderResponse, 0, len(rows))
	for _, row := range rows {
		response = append(response, ActiveOrderResponse{
			ID:           row.ID.String(),
			Type:         row.Type,
			Status:       row.Status,
			CustomerName: row.CustomerName,
			Total:        row.Total.Amount(),
			Formatted:    row.Total.Format(),
			CreatedAt:    row.CreatedAt,
		})
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	o, err := s.orders.Get(id)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toOrderResponse(o))
}

// UpdateOrderStatusRequest is the body of PUT /orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// UpdateOrderStatus handles PUT /api/v1/orders/:id/status.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	var request UpdateOrderStatusRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	status, err := order.ParseStatus(request.Status)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.orders.UpdateStatus(ctx.Request().Context(), id, status); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// UpdateOrderPaymentRequest is the body of PUT /orders/:id/payment.
type UpdateOrderPaymentRequest struct {
	Status string `json:"status"`
	Method string `json:"method"`
}

// UpdateOrderPayment handles PUT /api/v1/orders/:id/payment.
func (s *Server) UpdateOrderPayment(ctx echo.Context) error {
	var request UpdateOrderPaymentRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	status, err := order.ParsePaymentStatus(request.Status)
	if err != nil {
		return respondError(ctx, err)
	}
	method, err := order.ParsePaymentMethod(request.Method)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.orders.UpdatePaymentStatus(ctx.Request().Context(), id, status, method); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// UpdateOrderDeliveryRequest is the body of PUT /orders/:id/delivery.
type UpdateOrderDeliveryRequest struct {
	Status string `json:"status"`
}

// UpdateOrderDelivery handles PUT /api/v1/orders/:id/delivery.
func (s *Server) UpdateOrderDelivery(ctx echo.Context) error {
	var request UpdateOrderDeliveryRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	status, err := order.ParseDeliveryStatus(request.Status)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.orders.UpdateDeliveryStatus(ctx.Request().Context(), id, status); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}
