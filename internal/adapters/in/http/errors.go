package http

import (
	"errors"
	"net/http"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/domain/model/cart"
	"restaurant/internal/core/domain/model/courier"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/table"
	"restaurant/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the JSON error body returned by every failing endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// respondError maps an application error to an HTTP status. Validation
// failures become 400, missing objects 404, invariant guard violations
// 409 and everything else a generic 500.
func respondError(ctx echo.Context, err error) error {
	code := statusFor(err)

	message := err.Error()
	if code == http.StatusInternalServerError {
		message = "internal error"
	}

	return ctx.JSON(code, Error{Code: code, Message: message})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound),
		errors.Is(err, cart.ErrItemNotFound):
		return http.StatusNotFound

	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest

	case errors.Is(err, courier.ErrCourierIsBusy),
		errors.Is(err, courier.ErrCourierHasNoOrder),
		errors.Is(err, table.ErrTableIsOccupied),
		errors.Is(err, order.ErrOrderIsFinalized),
		errors.Is(err, order.ErrNotADeliveryOrder),
		errors.Is(err, cart.ErrCartIsEmpty),
		errors.Is(err, commands.ErrNoOrderFound),
		errors.Is(err, commands.ErrNoFreeCouriersFound):
		return http.StatusConflict

	default:
		return http.StatusInternalServerError
	}
}

// badRequest reports a malformed request body or path parameter.
func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: message})
}
