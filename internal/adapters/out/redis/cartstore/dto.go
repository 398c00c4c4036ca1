// Package cartstore persists session carts in Redis, one JSON document
// per session key. Carts are transient; checkout deletes the document.
package cartstore

import (
	"time"

	"restaurant/internal/core/domain/model/cart"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
)

// cartDTO is the JSON shape of one session cart.
type cartDTO struct {
	SessionID    string        `json:"sessionId"`
	Items        []cartItemDTO `json:"items"`
	TableID      *string       `json:"tableId,omitempty"`
	CustomerName string        `json:"customerName,omitempty"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

type cartItemDTO struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
	Note      string `json:"note,omitempty"`
}

func fromDomain(c *cart.Cart) cartDTO {
	var tableID *string
	if id := c.TableID(); id != nil {
		s := id.String()
		tableID = &s
	}

	items := make([]cartItemDTO, 0, len(c.Items()))
	for _, item := range c.Items() {
		items = append(items, cartItemDTO{
			ProductID: item.ProductID().String(),
			Name:      item.Name(),
			UnitPrice: item.UnitPrice().Amount(),
			Quantity:  item.Quantity(),
			Note:      item.Note(),
		})
	}

	return cartDTO{
		SessionID:    c.SessionID(),
		Items:        items,
		TableID:      tableID,
		CustomerName: c.CustomerName(),
		UpdatedAt:    c.UpdatedAt(),
	}
}

func toDomain(dto cartDTO) (*cart.Cart, error) {
	items := make([]order.LineItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		productID, err := kernel.UUIDFromString(itemDTO.ProductID)
		if err != nil {
			return nil, err
		}
		price, err := kernel.NewMoney(itemDTO.UnitPrice)
		if err != nil {
			return nil, err
		}
		item, err := order.NewLineItem(productID, itemDTO.Name, price, itemDTO.Quantity, itemDTO.Note)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	var tableID *kernel.UUID
	if dto.TableID != nil {
		tID, err := kernel.UUIDFromString(*dto.TableID)
		if err != nil {
			return nil, err
		}
		tableID = &tID
	}

	return cart.RestoreCart(dto.SessionID, items, tableID, dto.CustomerName, dto.UpdatedAt)
}
