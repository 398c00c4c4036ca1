// Package http exposes the POS over a JSON API. Handlers translate
// requests into application service calls and map domain errors to
// status codes; no business rules live here.
package http

import (
	"net/http"

	"restaurant/internal/core/application/cartsession"
	"restaurant/internal/core/application/courierregistry"
	"restaurant/internal/core/application/orderstore"
	"restaurant/internal/core/application/tableregistry"
	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/ports"
	"restaurant/internal/notifications"
	"restaurant/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server wires HTTP routes to the application layer.
type Server struct {
	orders   *orderstore.Store
	couriers *courierregistry.Registry
	tables   *tableregistry.Registry
	carts    *cartsession.Service
	products ports.ProductRepository
	hub      *notifications.Hub

	checkoutHandler     commands.CheckoutCommandHandler
	dispatchHandler     commands.DispatchCourierCommandHandler
	activeOrdersHandler queries.GetActiveOrdersQueryHandler
	salesReportHandler  queries.GetSalesReportQueryHandler
}

// NewServer creates the HTTP server over the given application services.
func NewServer(
	orders *orderstore.Store,
	couriers *courierregistry.Registry,
	tables *tableregistry.Registry,
	carts *cartsession.Service,
	products ports.ProductRepository,
	hub *notifications.Hub,
	checkoutHandler commands.CheckoutCommandHandler,
	dispatchHandler commands.DispatchCourierCommandHandler,
	activeOrdersHandler queries.GetActiveOrdersQueryHandler,
	salesReportHandler queries.GetSalesReportQueryHandler,
) (*Server, error) {
	if orders == nil {
		return nil, errs.NewValueIsRequiredError("orders")
	}
	if couriers == nil {
		return nil, errs.NewValueIsRequiredError("couriers")
	}
	if tables == nil {
		return nil, errs.NewValueIsRequiredError("tables")
	}
	if carts == nil {
		return nil, errs.NewValueIsRequiredError("carts")
	}
	if products == nil {
		return nil, errs.NewValueIsRequiredError("products")
	}
	if hub == nil {
		return nil, errs.NewValueIsRequiredError("hub")
	}

	return &Server{
		orders:              orders,
		couriers:            couriers,
		tables:              tables,
		carts:               carts,
		products:            products,
		hub:                 hub,
		checkoutHandler:     checkoutHandler,
		dispatchHandler:     dispatchHandler,
		activeOrdersHandler: activeOrdersHandler,
		salesReportHandler:  salesReportHandler,
	}, nil
}

// RegisterRoutes mounts the API under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.GetHealth)

	api := e.Group("/api/v1")

	api.GET("/menu", s.GetMenu)

	api.GET("/carts/:sessionId", s.GetCart)
	api.DELETE("/carts/:sessionId", s.ClearCart)
	api.POST("/carts/:sessionId/items", s.AddCartItem)
	api.PUT("/carts/:sessionId/items/:productId", s.UpdateCartItem)
	api.DELETE("/carts/:sessionId/items/:productId", s.RemoveCartItem)
	api.PUT("/carts/:sessionId/binding", s.BindCart)
	api.POST("/carts/:sessionId/checkout", s.Checkout)

	api.GET("/orders", s.GetOrders)
	api.GET("/orders/active", s.GetActiveOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.PUT("/orders/:id/status", s.UpdateOrderStatus)
	api.PUT("/orders/:id/payment", s.UpdateOrderPayment)
	api.PUT("/orders/:id/delivery", s.UpdateOrderDelivery)

	api.GET("/couriers", s.GetCouriers)
	api.POST("/couriers", s.CreateCourier)
	api.POST("/couriers/dispatch", s.DispatchCourier)
	api.GET("/couriers/:id", s.GetCourier)
	api.PUT("/couriers/:id", s.UpdateCourier)
	api.DELETE("/couriers/:id", s.DeleteCourier)
	api.PUT("/couriers/:id/status", s.UpdateCourierStatus)
	api.POST("/couriers/:id/complete-delivery", s.CompleteDelivery)

	api.GET("/tables", s.GetTables)
	api.POST("/tables", s.CreateTable)
	api.GET("/tables/:id", s.GetTable)
	api.PUT("/tables/:id", s.UpdateTable)
	api.DELETE("/tables/:id", s.DeleteTable)
	api.PUT("/tables/:id/status", s.UpdateTableStatus)
	api.POST("/tables/:id/clear", s.ClearTable)

	api.GET("/reports/sales", s.GetSalesReport)
	api.GET("/notifications/stream", s.StreamNotifications)
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
