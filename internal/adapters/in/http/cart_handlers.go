package http

import (
	"net/http"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// GetMenu handles GET /api/v1/menu.
func (s *Server) GetMenu(ctx echo.Context) error {
	products, err := s.products.GetAllAvailable(ctx.Request().Context())
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		response = append(response, toProductResponse(p))
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetCart handles GET /api/v1/carts/:sessionId.
func (s *Server) GetCart(ctx echo.Context) error {
	c, err := s.carts.Get(ctx.Request().Context(), ctx.Param("sessionId"))
	if err != nil {
		return respondError(ctx, err)
	}

	response, err := toCartResponse(c)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, response)
}

// AddCartItemRequest is the body of POST /carts/:sessionId/items.
type AddCartItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	Note      string `json:"note"`
}

// AddCartItem handles POST /api/v1/carts/:sessionId/items.
func (s *Server) AddCartItem(ctx echo.Context) error {
	var request AddCartItemRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	productID, err := kernel.UUIDFromString(request.ProductID)
	if err != nil {
		return respondError(ctx, err)
	}

	p, err := s.products.Get(ctx.Request().Context(), productID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.carts.AddProduct(ctx.Request().Context(), ctx.Param("sessionId"), p, request.Quantity, request.Note); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// UpdateCartItemRequest is the body of PUT /carts/:sessionId/items/:productId.
// Absent fields are left unchanged.
type UpdateCartItemRequest struct {
	Quantity *int    `json:"quantity"`
	Note     *string `json:"note"`
}

// UpdateCartItem handles PUT /api/v1/carts/:sessionId/items/:productId.
func (s *Server) UpdateCartItem(ctx echo.Context) error {
	var request UpdateCartItemRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	productID, err := kernel.UUIDFromString(ctx.Param("productId"))
	if err != nil {
		return respondError(ctx, err)
	}

	sessionID := ctx.Param("sessionId")
	if request.Quantity != nil {
		if err = s.carts.SetQuantity(ctx.Request().Context(), sessionID, productID, *request.Quantity); err != nil {
			return respondError(ctx, err)
		}
	}
	if request.Note != nil {
		if err = s.carts.SetNote(ctx.Request().Context(), sessionID, productID, *request.Note); err != nil {
			return respondError(ctx, err)
		}
	}
	return ctx.NoContent(http.StatusNoContent)
}

// RemoveCartItem handles DELETE /api/v1/carts/:sessionId/items/:productId.
func (s *Server) RemoveCartItem(ctx echo.Context) error {
	productID, err := kernel.UUIDFromString(ctx.Param("productId"))
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.carts.RemoveItem(ctx.Request().Context(), ctx.Param("sessionId"), productID); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// BindCartRequest is the body of PUT /carts/:sessionId/binding.
type BindCartRequest struct {
	TableID      string `json:"tableId"`
	CustomerName string `json:"customerName"`
}

// BindCart handles PUT /api/v1/carts/:sessionId/binding.
func (s *Server) BindCart(ctx echo.Context) error {
	var request BindCartRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	var tableID *kernel.UUID
	if request.TableID != "" {
		id, err := kernel.UUIDFromString(request.TableID)
		if err != nil {
			return respondError(ctx, err)
		}
		tableID = &id
	}

	if err := s.carts.Bind(ctx.Request().Context(), ctx.Param("sessionId"), tableID, request.CustomerName); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ClearCart handles DELETE /api/v1/carts/:sessionId.
func (s *Server) ClearCart(ctx echo.Context) error {
	if err := s.carts.Clear(ctx.Request().Context(), ctx.Param("sessionId")); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CheckoutRequest is the body of POST /carts/:sessionId/checkout.
type CheckoutRequest struct {
	Type            string `json:"type"`
	CustomerName    string `json:"customerName"`
	DeliveryAddress string `json:"deliveryAddress"`
}

// Checkout handles POST /api/v1/carts/:sessionId/checkout.
func (s *Server) Checkout(ctx echo.Context) error {
	var request CheckoutRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	orderType, err := order.ParseType(request.Type)
	if err != nil {
		return respondError(ctx, err)
	}

	command, err := commands.NewCheckoutCommand(ctx.Param("sessionId"), orderType, request.CustomerName, request.DeliveryAddress)
	if err != nil {
		return respondError(ctx, err)
	}

	placed, err := s.checkoutHandler.Handle(ctx.Request().Context(), command)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, toOrderResponse(placed))
}
