package http

import (
	"time"

	"restaurant/internal/core/domain/model/cart"
	"restaurant/internal/core/domain/model/courier"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/product"
	"restaurant/internal/core/domain/model/table"
)

// ProductResponse is the JSON shape of a menu item.
type ProductResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Price     int64  `json:"price"`
	Formatted string `json:"formatted"`
	Available bool   `json:"available"`
}

func toProductResponse(p *product.Product) ProductResponse {
	return ProductResponse{
		ID:        p.ID().String(),
		Name:      p.Name(),
		Category:  p.Category(),
		Price:     p.Price().Amount(),
		Formatted: p.Price().Format(),
		Available: p.IsAvailable(),
	}
}

// LineItemResponse is the JSON shape of one order or cart line.
type LineItemResponse struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
	Note      string `json:"note,omitempty"`
}

func toLineItemResponses(items []order.LineItem) []LineItemResponse {
	responses := make([]LineItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, LineItemResponse{
			ProductID: item.ProductID().String(),
			Name:      item.Name(),
			UnitPrice: item.UnitPrice().Amount(),
			Quantity:  item.Quantity(),
			Note:      item.Note(),
		})
	}
	return responses
}

// CartResponse is the JSON shape of a session cart.
type CartResponse struct {
	SessionID    string             `json:"sessionId"`
	Items        []LineItemResponse `json:"items"`
	TableID      *string            `json:"tableId,omitempty"`
	CustomerName string             `json:"customerName,omitempty"`
	Total        int64              `json:"total"`
	Formatted    string             `json:"formatted"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

func toCartResponse(c *cart.Cart) (CartResponse, error) {
	total, err := c.Total()
	if err != nil {
		return CartResponse{}, err
	}

	var tableID *string
	if id := c.TableID(); id != nil {
		s := id.String()
		tableID = &s
	}

	return CartResponse{
		SessionID:    c.SessionID(),
		Items:        toLineItemResponses(c.Items()),
		TableID:      tableID,
		CustomerName: c.CustomerName(),
		Total:        total.Amount(),
		Formatted:    total.Format(),
		UpdatedAt:    c.UpdatedAt(),
	}, nil
}

// OrderResponse is the JSON shape of an order.
type OrderResponse struct {
	ID              string             `json:"id"`
	Type            string             `json:"type"`
	Status          string             `json:"status"`
	PaymentStatus   string             `json:"paymentStatus"`
	PaymentMethod   string             `json:"paymentMethod"`
	DeliveryStatus  string             `json:"deliveryStatus,omitempty"`
	TableID         *string            `json:"tableId,omitempty"`
	CourierID       *string            `json:"courierId,omitempty"`
	CustomerName    string             `json:"customerName,omitempty"`
	DeliveryAddress string             `json:"deliveryAddress,omitempty"`
	Items           []LineItemResponse `json:"items"`
	Total           int64              `json:"total"`
	Formatted       string             `json:"formatted"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt"`
}

func toOrderResponse(o *order.Order) OrderResponse {
	var tableID, courierID *string
	if id := o.TableID(); id != nil {
		s := id.String()
		tableID = &s
	}
	if id := o.CourierID(); id != nil {
		s := id.String()
		courierID = &s
	}

	deliveryStatus := ""
	if o.IsDelivery() {
		deliveryStatus = o.DeliveryStatus().String()
	}

	return OrderResponse{
		ID:              o.ID().String(),
		Type:            o.Type().String(),
		Status:          o.Status().String(),
		PaymentStatus:   o.PaymentStatus().String(),
		PaymentMethod:   o.PaymentMethod().String(),
		DeliveryStatus:  deliveryStatus,
		TableID:         tableID,
		CourierID:       courierID,
		CustomerName:    o.CustomerName(),
		DeliveryAddress: o.DeliveryAddress(),
		Items:           toLineItemResponses(o.Items()),
		Total:           o.Total().Amount(),
		Formatted:       o.Total().Format(),
		CreatedAt:       o.CreatedAt(),
		UpdatedAt:       o.UpdatedAt(),
	}
}

func toOrderResponses(orders []*order.Order) []OrderResponse {
	responses := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		responses = append(responses, toOrderResponse(o))
	}
	return responses
}

// CourierResponse is the JSON shape of a courier.
type CourierResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Phone           string    `json:"phone"`
	VehicleType     string    `json:"vehicleType,omitempty"`
	VehiclePlate    string    `json:"vehiclePlate,omitempty"`
	Status          string    `json:"status"`
	Latitude        float64   `json:"latitude"`
	Longitude       float64   `json:"longitude"`
	OrderID         *string   `json:"orderId,omitempty"`
	TotalDeliveries int       `json:"totalDeliveries"`
	Tracking        bool      `json:"tracking"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func toCourierResponse(c *courier.Courier, tracking bool) CourierResponse {
	var orderID *string
	if id := c.OrderID(); id != nil {
		s := id.String()
		orderID = &s
	}

	return CourierResponse{
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
		Tracking:        tracking,
		CreatedAt:       c.CreatedAt(),
		UpdatedAt:       c.UpdatedAt(),
	}
}

// PositionResponse is a table's grid position on the floor plan.
type PositionResponse struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// TableResponse is the JSON shape of a table.
type TableResponse struct {
	ID           string           `json:"id"`
	Number       int              `json:"number"`
	Capacity     int              `json:"capacity"`
	Section      string           `json:"section"`
	Status       string           `json:"status"`
	CustomerName string           `json:"customerName,omitempty"`
	OrderID      *string          `json:"orderId,omitempty"`
	Position     PositionResponse `json:"position"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

func toTableResponse(t *table.Table) TableResponse {
	var orderID *string
	if id := t.OrderID(); id != nil {
		s := id.String()
		orderID = &s
	}

	return TableResponse{
		ID:           t.ID().String(),
		Number:       t.Number(),
		Capacity:     t.Capacity(),
		Section:      t.Section(),
		Status:       t.Status().String(),
		CustomerName: t.CustomerName(),
		OrderID:      orderID,
		Position:     PositionResponse{X: t.Position().X, Y: t.Position().Y},
		CreatedAt:    t.CreatedAt(),
		UpdatedAt:    t.UpdatedAt(),
	}
}

func toTableResponses(tables []*table.Table) []TableResponse {
	responses := make([]TableResponse, 0, len(tables))
	for _, t := range tables {
		responses = append(responses, toTableResponse(t))
	}
	return responses
}
