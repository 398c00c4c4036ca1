// Package orderrepo provides data transfer objects and mapping functions
// for order persistence. It implements the repository pattern for the
// order aggregate, handling the conversion between domain entities and
// database rows.
package orderrepo

import (
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order
// aggregates. Enum dimensions are stored as their string names so the
// rows stay readable in psql and in the raw-SQL read models.
type OrderDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Type            string     `gorm:"type:varchar(16);not null"`
	Status          string     `gorm:"type:varchar(16);not null;index"`
	PaymentStatus   string     `gorm:"type:varchar(16);not null"`
	PaymentMethod   string     `gorm:"type:varchar(16);not null"`
	DeliveryStatus  string     `gorm:"type:varchar(16)"`
	TableID         *uuid.UUID `gorm:"type:uuid"`
	CustomerName    string
	DeliveryAddress string
	CourierID       *uuid.UUID `gorm:"type:uuid;index"`
	TotalAmount     int64
	CreatedAt       time.Time `gorm:"index"`
	UpdatedAt       time.Time

	Items []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO represents one priced line of an order. Lines are fixed
// at checkout and never updated afterwards.
type OrderItemDTO struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `gorm:"type:uuid;not null"`
	Name      string
	UnitPrice int64
	Quantity  int
	Note      string
}

// TableName specifies the database table name for order line items.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var tableID *uuid.UUID
	if id := aggregate.TableID(); id != nil {
		raw := id.Bytes()
		tableID = &raw
	}

	var courierID *uuid.UUID
	if id := aggregate.CourierID(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	deliveryStatus := ""
	if aggregate.DeliveryStatus() != order.DeliveryNotApplicable {
		deliveryStatus = aggregate.DeliveryStatus().String()
	}

	items := aggregate.Items()
	itemDTOs := make([]OrderItemDTO, 0, len(items))
	for _, item := range items {
		itemDTOs = append(itemDTOs, OrderItemDTO{
			OrderID:   aggregate.ID().Bytes(),
			ProductID: item.ProductID().Bytes(),
			Name:      item.Name(),
			UnitPrice: item.UnitPrice().Amount(),
			Quantity:  item.Quantity(),
			Note:      item.Note(),
		})
	}

	return OrderDTO{
		ID:              aggregate.ID().Bytes(),
		Type:            aggregate.Type().String(),
		Status:          aggregate.Status().String(),
		PaymentStatus:   aggregate.PaymentStatus().String(),
		PaymentMethod:   aggregate.PaymentMethod().String(),
		DeliveryStatus:  deliveryStatus,
		TableID:         tableID,
		CustomerName:    aggregate.CustomerName(),
		DeliveryAddress: aggregate.DeliveryAddress(),
		CourierID:       courierID,
		TotalAmount:     aggregate.Total().Amount(),
		CreatedAt:       aggregate.CreatedAt(),
		UpdatedAt:       aggregate.UpdatedAt(),
		Items:           itemDTOs,
	}
}

// toDomain converts a database DTO to an order aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	typ, err := order.ParseType(dto.Type)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	paymentStatus, err := order.ParsePaymentStatus(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	paymentMethod, err := order.ParsePaymentMethod(dto.PaymentMethod)
	if err != nil {
		return nil, err
	}

	deliveryStatus := order.DeliveryNotApplicable
	if dto.DeliveryStatus != "" {
		deliveryStatus, err = order.ParseDeliveryStatus(dto.DeliveryStatus)
		if err != nil {
			return nil, err
		}
	}

	var tableID *kernel.UUID
	if dto.TableID != nil {
		tID, tableErr := kernel.UUIDFromBytes((*dto.TableID)[:])
		if tableErr != nil {
			return nil, tableErr
		}
		tableID = &tID
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}
		courierID = &cID
	}

	items := make([]order.LineItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		id,
		typ,
		items,
		status,
		paymentStatus,
		paymentMethod,
		deliveryStatus,
		tableID,
		dto.CustomerName,
		dto.DeliveryAddress,
		courierID,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}

func itemToDomain(dto OrderItemDTO) (order.LineItem, error) {
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return order.LineItem{}, err
	}

	unitPrice, err := kernel.NewMoney(dto.UnitPrice)
	if err != nil {
		return order.LineItem{}, err
	}

	return order.NewLineItem(productID, dto.Name, unitPrice, dto.Quantity, dto.Note)
}
