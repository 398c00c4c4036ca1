package commands

import (
	"context"
	"errors"

	"restaurant/internal/core/domain/model/courier"
	"restaurant/internal/core/domain/services"
	"restaurant/internal/pkg/errs"
)

var (
	ErrNoFreeCouriersFound = errors.New("no free couriers found")
	ErrNoOrderFound        = errors.New("no order found")
)

// DispatchCourierCommandHandler orchestrates the dispatching process.
// Finds the oldest unassigned delivery order, lets the DeliveryDispatcher
// pick the least-loaded available courier, and binds the two through the
// courier registry and the order store. Live tracking starts immediately
// after a successful bind.
//
// Example:
//
//	handler, err := NewDispatchCourierCommandHandler(orderStore, courierRegistry)
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, NewDispatchCourierCommand())
//	switch {
//	case errors.Is(err, ErrNoOrderFound):
//	    log.Println("No deliveries waiting")
//	case errors.Is(err, ErrNoFreeCouriersFound):
//	    log.Println("All couriers are busy")
//	case err != nil:
//	    log.Printf("Dispatch failed: %v", err)
//	}
type DispatchCourierCommandHandler struct {
	orders   OrderStore
	couriers CourierRegistry
}

// NewDispatchCourierCommandHandler creates a handler for dispatching.
func NewDispatchCourierCommandHandler(orders OrderStore, couriers CourierRegistry) (DispatchCourierCommandHandler, error) {
	if orders == nil {
		return DispatchCourierCommandHandler{}, errs.NewValueIsRequiredError("orders")
	}
	if couriers == nil {
		return DispatchCourierCommandHandler{}, errs.NewValueIsRequiredError("couriers")
	}

	return DispatchCourierCommandHandler{
		orders:   orders,
		couriers: couriers,
	}, nil
}

// Handle processes the dispatch command.
// Returns ErrNoOrderFound when no delivery order is waiting for a
// courier and ErrNoFreeCouriersFound when every courier is busy.
func (h DispatchCourierCommandHandler) Handle(ctx context.Context, command DispatchCourierCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	waiting := h.orders.UnassignedDeliveryOrders()
	if len(waiting) == 0 {
		return ErrNoOrderFound
	}
	oldest := waiting[0]

	candidates := h.couriers.AvailableCouriers()
	if len(candidates) == 0 {
		return ErrNoFreeCouriersFound
	}

	picked, err := services.NewDeliveryDispatcher().Dispatch(oldest, candidates)
	if errors.Is(err, services.ErrCourierNotFound) {
		return ErrNoFreeCouriersFound
	}
	if err != nil {
		return err
	}

	if err = h.couriers.AssignOrder(ctx, picked.ID(), oldest.ID()); err != nil {
		return err
	}

	if err = h.orders.AssignCourier(ctx, oldest.ID(), picked.ID()); err != nil {
		// The order never recorded the courier; undo the reservation.
		if releaseErr := h.couriers.ChangeStatus(ctx, picked.ID(), courier.Available, nil); releaseErr != nil {
			return errors.Join(err, releaseErr)
		}
		return err
	}

	return h.couriers.StartLiveTracking(ctx, picked.ID(), oldest.ID())
}
