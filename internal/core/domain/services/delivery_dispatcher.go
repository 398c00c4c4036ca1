package services

import (
	"errors"

	"restaurant/internal/core/domain/model/courier"
	"restaurant/internal/core/domain/model/order"
)

// ErrCourierNotFound is returned when no suitable courier is available
// for a delivery order. This occurs when no couriers are provided or
// none of the provided couriers is Available.
var ErrCourierNotFound = errors.New("courier not found")

// DeliveryDispatcher is a domain service responsible for picking a
// courier for a delivery order and executing the assignment workflow
// on both aggregates.
//
// Business rules:
//   - only delivery orders without a courier can be dispatched
//   - only Available couriers are considered
//   - selection balances workload by preferring the courier with the
//     fewest completed deliveries (ties go to the first candidate)
//   - the courier and the order are bound together atomically from the
//     caller's perspective
type DeliveryDispatcher struct{}

// NewDeliveryDispatcher creates a new DeliveryDispatcher instance.
func NewDeliveryDispatcher() DeliveryDispatcher {
	return DeliveryDispatcher{}
}

// Dispatch picks a courier for the order and binds the two aggregates.
//
// Returns ErrCourierNotFound when no Available courier exists, or a
// validation error when the order cannot take a courier.
func (d DeliveryDispatcher) Dispatch(o *order.Order, couriers []*courier.Courier) (*courier.Courier, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if !o.IsDelivery() {
		return nil, order.ErrNotADeliveryOrder
	}
	if o.Status().IsTerminal() {
		return nil, order.ErrOrderIsFinalized
	}

	best, err := d.findBestCourier(couriers)
	if err != nil {
		return nil, err
	}

	if err = best.Assign(o.ID()); err != nil {
		return nil, err
	}
	if err = o.AssignCourier(best.ID()); err != nil {
		return nil, err
	}

	return best, nil
}

// findBestCourier returns the Available courier with the fewest
// completed deliveries.
func (d DeliveryDispatcher) findBestCourier(couriers []*courier.Courier) (*courier.Courier, error) {
	var best *courier.Courier

	for _, c := range couriers {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if !c.IsAvailable() {
			continue
		}
		if best == nil || c.TotalDeliveries() < best.TotalDeliveries() {
			best = c
		}
	}

	if best == nil {
		return nil, ErrCourierNotFound
	}

	return best, nil
}
