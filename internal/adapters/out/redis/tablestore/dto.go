// Package tablestore persists the floor plan in Redis. The whole layout
// lives as one JSON document under a fixed key; the table registry owns
// the in-memory state and writes through on every change.
package tablestore

import (
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/table"
)

// tableDTO is the JSON shape of one table in the layout document.
type tableDTO struct {
	ID           string    `json:"id"`
	Number       int       `json:"number"`
	Capacity     int       `json:"capacity"`
	Section      string    `json:"section"`
	Status       string    `json:"status"`
	CustomerName string    `json:"customerName,omitempty"`
	OrderID      *string   `json:"orderId,omitempty"`
	PositionX    int       `json:"positionX"`
	PositionY    int       `json:"positionY"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func fromDomain(t *table.Table) tableDTO {
	var orderID *string
	if id := t.OrderID(); id != nil {
		s := id.String()
		orderID = &s
	}

	return tableDTO{
		ID:           t.ID().String(),
		Number:       t.Number(),
		Capacity:     t.Capacity(),
		Section:      t.Section(),
		Status:       t.Status().String(),
		CustomerName: t.CustomerName(),
		OrderID:      orderID,
		PositionX:    t.Position().X,
		PositionY:    t.Position().Y,
		CreatedAt:    t.CreatedAt(),
		UpdatedAt:    t.UpdatedAt(),
	}
}

func toDomain(dto tableDTO) (*table.Table, error) {
	id, err := kernel.UUIDFromString(dto.ID)
	if err != nil {
		return nil, err
	}

	status, err := table.ParseStatus(dto.Status)
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

	return table.RestoreTable(
		id,
		dto.Number,
		dto.Capacity,
		dto.Section,
		status,
		dto.CustomerName,
		orderID,
		table.Position{X: dto.PositionX, Y: dto.PositionY},
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
