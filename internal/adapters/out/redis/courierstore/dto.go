// Package courierstore persists the courier roster in Redis. The whole
// roster lives as one JSON document under a fixed key; the courier
// registry owns the in-memory state and writes through on every change.
package courierstore

import (
	"time"

	"restaurant/internal/core/domain/model/courier"
	"restaurant/internal/core/domain/model/kernel"
)

// courierDTO is the JSON shape of one courier in the roster document.
// Timestamps serialize as RFC 3339 strings.
type courierDTO struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Phone           string    `json:"phone"`
	VehicleType     string    `json:"vehicleType"`
	VehiclePlate    string    `json:"vehiclePlate"`
	Status          string    `json:"status"`
	Latitude        float64   `json:"latitude"`
	Longitude       float64   `json:"longitude"`
	OrderID         *string   `json:"orderId,omitempty"`
	TotalDeliveries int       `json:"totalDeliveries"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func fromDomain(c *courier.Courier) courierDTO {
	var orderID *string
	if id := c.OrderID(); id != nil {
		s := id.String()
		orderID = &s
	}

	return courierDTO{
		ID:              c.ID().String(),
		Name:            c.Name(),
		Phone:           c.Phone(),
		VehicleType:     c.VehicleType(),
		VehiclePlate:    c.VehiclePlate(),
		Status:          c.Status().String(),
		Latitude:        c.Location().Latitude(),
		Longitude:       c.Location().Longitude(),
		OrderID:         orderID,
		TotalDeliveries: c.TotalDeliveries(),
		CreatedAt:       c.CreatedAt(),
		UpdatedAt:       c.UpdatedAt(),
	}
}

func toDomain(dto courierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromString(dto.ID)
	if err != nil {
		return nil, err
	}

	status, err := courier.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	location, err := kernel.NewGeoPoint(dto.Latitude, dto.Longitude)
	if err != nil {
		return nil, err
	}

	var orderID *kernel.UUID
	if dto.OrderID != nil {
		oID, orderErr := kernel.UUIDFromString(*dto.OrderID)
		if orderErr != nil {
			return nil, orderErr
		}
		orderID = &oID
	}

	return courier.RestoreCourier(
		id,
		dto.Name,
		dto.Phone,
		dto.VehicleType,
		dto.VehiclePlate,
		status,
		location,
		orderID,
		dto.TotalDeliveries,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
