package http

import (
	"net/http"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/domain/model/courier"
	"restaurant/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// GetCouriers handles GET /api/v1/couriers.
func (s *Server) GetCouriers(ctx echo.Context) error {
	couriers := s.couriers.Couriers()

	response := make([]CourierResponse, 0, len(couriers))
	for _, c := range couriers {
		response = append(response, toCourierResponse(c, s.couriers.IsLiveTracking(c.ID())))
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetCourier handles GET /api/v1/couriers/:id.
func (s *Server) GetCourier(ctx echo.Context) error {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	c, err := s.couriers.Get(id)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toCourierResponse(c, s.couriers.IsLiveTracking(id)))
}

// CreateCourierRequest is the body of POST /couriers.
type CreateCourierRequest struct {
	Name         string  `json:"name"`
	Phone        string  `json:"phone"`
	VehicleType  string  `json:"vehicleType"`
	VehiclePlate string  `json:"vehiclePlate"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
}

// CreateCourier handles POST /api/v1/couriers.
func (s *Server) CreateCourier(ctx echo.Context) error {
	var request CreateCourierRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	location, err := kernel.NewGeoPoint(request.Latitude, request.Longitude)
	if err != nil {
		return respondError(ctx, err)
	}

	c, err := courier.NewCourier(kernel.NewUUID(), request.Name, request.Phone,
		request.VehicleType, request.VehiclePlate, location)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.couriers.Add(ctx.Request().Context(), c); err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, toCourierResponse(c, false))
}

// UpdateCourierRequest is the body of PUT /couriers/:id.
type UpdateCourierRequest struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	VehicleType  string `json:"vehicleType"`
	VehiclePlate string `json:"vehiclePlate"`
}

// UpdateCourier handles PUT /api/v1/couriers/:id.
func (s *Server) UpdateCourier(ctx echo.Context) error {
	var request UpdateCourierRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	err = s.couriers.Update(ctx.Request().Context(), id,
		request.Name, request.Phone, request.VehicleType, request.VehiclePlate)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// DeleteCourier handles DELETE /api/v1/couriers/:id. Couriers on an
// active delivery cannot be removed.
func (s *Server) DeleteCourier(ctx echo.Context) error {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.couriers.Remove(ctx.Request().Context(), id); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// UpdateCourierStatusRequest is the body of PUT /couriers/:id/status.
type UpdateCourierStatusRequest struct {
	Status  string `json:"status"`
	OrderID string `json:"orderId"`
}

// UpdateCourierStatus handles PUT /api/v1/couriers/:id/status.
func (s *Server) UpdateCourierStatus(ctx echo.Context) error {
	var request UpdateCourierStatusRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	status, err := courier.ParseStatus(request.Status)
	if err != nil {
		return respondError(ctx, err)
	}

	var orderID *kernel.UUID
	if request.OrderID != "" {
		oID, orderErr := kernel.UUIDFromString(request.OrderID)
		if orderErr != nil {
			return respondError(ctx, orderErr)
		}
		orderID = &oID
	}

	if err = s.couriers.ChangeStatus(ctx.Request().Context(), id, status, orderID); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CompleteDelivery handles POST /api/v1/couriers/:id/complete-delivery.
func (s *Server) CompleteDelivery(ctx echo.Context) error {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.couriers.CompleteDelivery(ctx.Request().Context(), id); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// DispatchCourier handles POST /api/v1/couriers/dispatch - assigns the
// oldest waiting delivery order to the least-loaded available courier.
func (s *Server) DispatchCourier(ctx echo.Context) error {
	command := commands.NewDispatchCourierCommand()

	if err := s.dispatchHandler.Handle(ctx.Request().Context(), command); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}
