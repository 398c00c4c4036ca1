package order

import (
	"errors"
	"fmt"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
)

// Domain errors for order operations.
var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through a constructor. This ensures all orders are validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
	// ErrItemsAreRequired is returned when creating an order with no line items.
	ErrItemsAreRequired = errs.NewValueIsRequiredError("items")
	// ErrTableIsRequired is returned when a dine-in order has no table bound.
	ErrTableIsRequired = errs.NewValueIsRequiredError("tableID")
	// ErrDeliveryAddressIsRequired is returned when a delivery order has no address.
	ErrDeliveryAddressIsRequired = errs.NewValueIsRequiredError("deliveryAddress")
	// ErrNotADeliveryOrder is returned when touching delivery state on a
	// dine-in or takeaway order.
	ErrNotADeliveryOrder = errors.New("delivery status only applies to delivery orders")
	// ErrOrderIsFinalized is returned when mutating a Completed or Cancelled order.
	ErrOrderIsFinalized = errors.New("order is in a terminal status")
)

// Order represents a customer's placed order. It is the aggregate root
// tracking the order from checkout through preparation to completion,
// payment, and (for delivery orders) courier handover.
//
// Order enforces these invariants:
//   - at least one line item; the total always equals the sum of item subtotals
//   - a dine-in order is bound to a table, a delivery order carries an address
//   - delivery status exists only on delivery orders
//   - delivery status Delivered implies order status Completed
//   - Completed and Cancelled are terminal; orders are never deleted
//
// The struct uses private fields to preserve encapsulation; all mutation
// goes through validated transition methods that refresh the update
// timestamp.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// typ is the fulfillment kind, fixed at checkout
	typ Type

	// items is the ordered sequence of priced product snapshots
	items []LineItem

	// total is the sum of all line item subtotals
	total kernel.Money

	// status is the kitchen workflow state
	status Status

	// paymentStatus and paymentMethod describe the payment dimension
	paymentStatus PaymentStatus
	paymentMethod PaymentMethod

	// deliveryStatus is DeliveryNotApplicable unless typ is TypeDelivery
	deliveryStatus DeliveryStatus

	// tableID is the seated table for dine-in orders (nil otherwise)
	tableID *kernel.UUID

	// customerName is the optional customer identity
	customerName string

	// deliveryAddress is the destination for delivery orders
	deliveryAddress string

	// courierID is the assigned courier for delivery orders (nil if unassigned)
	courierID *kernel.UUID

	// createdAt and updatedAt are UTC timestamps
	createdAt time.Time
	updatedAt time.Time

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates an order at checkout from the session cart's contents.
//
// Parameters:
//   - id: unique identifier for the order
//   - typ: fulfillment kind (dine-in, takeaway, delivery)
//   - items: priced line items (at least one)
//   - tableID: required for dine-in orders, ignored otherwise
//   - customerName: optional customer identity
//   - deliveryAddress: required for delivery orders
//
// The order starts in Pending status with payment Pending; delivery
// orders additionally start with delivery status Pending. The total is
// computed from the line items.
func NewOrder(
	id kernel.UUID,
	typ Type,
	items []LineItem,
	tableID *kernel.UUID,
	customerName string,
	deliveryAddress string,
) (*Order, error) {
	now := time.Now().UTC()
	o := &Order{
		status:        Pending,
		paymentStatus: PaymentPending,
		paymentMethod: PaymentMethodUnspecified,
		customerName:  customerName,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setType(typ),
		o.setItems(items),
		o.setFulfillment(typ, tableID, deliveryAddress),
	); err != nil {
		return nil, err
	}

	if err := o.recalculateTotal(); err != nil {
		return nil, err
	}

	if typ == TypeDelivery {
		o.deliveryStatus = DeliveryPending
	}

	return o, nil
}

// RestoreOrder reconstructs an Order aggregate from persistent storage,
// preserving its full lifecycle state. The restored order behaves
// identically to one created through normal domain operations.
func RestoreOrder(
	id kernel.UUID,
	typ Type,
	items []LineItem,
	status Status,
	paymentStatus PaymentStatus,
	paymentMethod PaymentMethod,
	deliveryStatus DeliveryStatus,
	tableID *kernel.UUID,
	customerName string,
	deliveryAddress string,
	courierID *kernel.UUID,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		customerName:  customerName,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setType(typ),
		o.setItems(items),
		o.setFulfillment(typ, tableID, deliveryAddress),
		o.setStatus(status),
		o.setPayment(paymentStatus, paymentMethod),
		o.setDeliveryStatus(typ, deliveryStatus),
		o.setCourier(typ, courierID),
	); err != nil {
		return nil, err
	}

	if err := o.recalculateTotal(); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Type returns the fulfillment kind.
func (o *Order) Type() Type {
	return o.typ
}

// Items returns a copy of the line items in order.
func (o *Order) Items() []LineItem {
	out := make([]LineItem, len(o.items))
	copy(out, o.items)
	return out
}

// Total returns the order total.
func (o *Order) Total() kernel.Money {
	return o.total
}

// Status returns the kitchen workflow status.
func (o *Order) Status() Status {
	return o.status
}

// PaymentStatus returns the payment state.
func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

// PaymentMethod returns the payment method, PaymentMethodUnspecified
// while unpaid.
func (o *Order) PaymentMethod() PaymentMethod {
	return o.paymentMethod
}

// DeliveryStatus returns the delivery progress, DeliveryNotApplicable
// for dine-in and takeaway orders.
func (o *Order) DeliveryStatus() DeliveryStatus {
	return o.deliveryStatus
}

// TableID returns the bound table, nil for non-dine-in orders.
func (o *Order) TableID() *kernel.UUID {
	return o.tableID
}

// CustomerName returns the optional customer identity.
func (o *Order) CustomerName() string {
	return o.customerName
}

// DeliveryAddress returns the destination address for delivery orders.
func (o *Order) DeliveryAddress() string {
	return o.deliveryAddress
}

// CourierID returns the assigned courier, nil if unassigned.
func (o *Order) CourierID() *kernel.UUID {
	return o.courierID
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the last mutation timestamp.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// IsDelivery reports whether the order is fulfilled by courier.
func (o *Order) IsDelivery() bool {
	return o.typ == TypeDelivery
}

// ChangeStatus transitions the kitchen workflow status.
//
// Business rules:
//   - transitions must follow Status.CanTransitionTo
//   - terminal orders reject any further change
//
// On success the update timestamp is refreshed.
func (o *Order) ChangeStatus(next Status) error {
	if err := o.Validate(); err != nil {
		return err
	}

	if err := o.status.CanTransitionTo(next); err != nil {
		return err
	}

	o.status = next
	o.touch()
	return nil
}

// ChangePayment updates the payment dimension. Paying an order records
// the method; payment state never moves back from Paid.
func (o *Order) ChangePayment(status PaymentStatus, method PaymentMethod) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := errors.Join(status.Validate(), method.Validate()); err != nil {
		return err
	}
	if o.paymentStatus == PaymentPaid && status == PaymentPending {
		return errs.NewValueIsInvalidErrorWithCause("paymentStatus",
			errors.New("payment cannot move back from Paid"))
	}

	o.paymentStatus = status
	o.paymentMethod = method
	o.touch()
	return nil
}

// ChangeDeliveryStatus advances the delivery dimension of a delivery
// order. Reaching DeliveryDelivered forces the order status to
// Completed, regardless of the kitchen workflow position — the courier
// handing the order over is the authoritative completion signal.
func (o *Order) ChangeDeliveryStatus(next DeliveryStatus) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if !o.IsDelivery() {
		return ErrNotADeliveryOrder
	}
	if o.status == Cancelled {
		return ErrOrderIsFinalized
	}

	if err := o.deliveryStatus.CanTransitionTo(next); err != nil {
		return err
	}

	o.deliveryStatus = next
	if next == DeliveryDelivered {
		o.status = Completed
	}
	o.touch()
	return nil
}

// AssignCourier binds a courier to a delivery order and moves the
// delivery status to EnRoute if it is still pending.
func (o *Order) AssignCourier(courierID kernel.UUID) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if !o.IsDelivery() {
		return ErrNotADeliveryOrder
	}
	if err := courierID.Validate(); err != nil {
		return err
	}
	if o.status.IsTerminal() {
		return ErrOrderIsFinalized
	}

	o.courierID = &courierID
	if o.deliveryStatus == DeliveryPending {
		o.deliveryStatus = DeliveryEnRoute
	}
	o.touch()
	return nil
}

// Clone returns a deep copy of the order. The order store snapshots
// orders before optimistic mutations so a failed remote update can
// restore the exact prior state.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}

	clone := *o
	clone.items = make([]LineItem, len(o.items))
	copy(clone.items, o.items)

	if o.tableID != nil {
		tableID := *o.tableID
		clone.tableID = &tableID
	}
	if o.courierID != nil {
		courierID := *o.courierID
		clone.courierID = &courierID
	}

	return &clone
}

// EqualState reports whether two orders carry identical lifecycle state.
// The background refresh uses this to avoid replacing cached entries
// (and triggering downstream work) when the fetched content is unchanged.
func (o *Order) EqualState(other *Order) bool {
	if other == nil {
		return false
	}
	if !o.id.IsEqual(other.id) ||
		o.typ != other.typ ||
		o.status != other.status ||
		o.paymentStatus != other.paymentStatus ||
		o.paymentMethod != other.paymentMethod ||
		o.deliveryStatus != other.deliveryStatus ||
		o.total.Amount() != other.total.Amount() ||
		len(o.items) != len(other.items) ||
		!o.updatedAt.Equal(other.updatedAt) {
		return false
	}
	if (o.courierID == nil) != (other.courierID == nil) {
		return false
	}
	if o.courierID != nil && !o.courierID.IsEqual(*other.courierID) {
		return false
	}
	return true
}

// touch refreshes the update timestamp after a successful mutation.
func (o *Order) touch() {
	o.updatedAt = time.Now().UTC()
}

// recalculateTotal derives the total from the line items.
func (o *Order) recalculateTotal() error {
	total, err := kernel.NewMoney(0)
	if err != nil {
		return err
	}

	for _, item := range o.items {
		subtotal, subErr := item.Subtotal()
		if subErr != nil {
			return subErr
		}
		total, err = total.Add(subtotal)
		if err != nil {
			return err
		}
	}

	o.total = total
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setType(typ Type) error {
	if err := typ.Validate(); err != nil {
		return err
	}
	o.typ = typ
	return nil
}

func (o *Order) setItems(items []LineItem) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	o.items = make([]LineItem, len(items))
	copy(o.items, items)
	return nil
}

// setFulfillment validates the type-dependent required fields.
func (o *Order) setFulfillment(typ Type, tableID *kernel.UUID, deliveryAddress string) error {
	switch typ {
	case TypeDineIn:
		if tableID == nil {
			return ErrTableIsRequired
		}
		if err := tableID.Validate(); err != nil {
			return err
		}
		id := *tableID
		o.tableID = &id
	case TypeDelivery:
		if deliveryAddress == "" {
			return ErrDeliveryAddressIsRequired
		}
		o.deliveryAddress = deliveryAddress
	case TypeTakeaway:
		// No extra bindings required.
	case TypeUnknown:
		return errs.NewValueIsInvalidError("orderType")
	}
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setPayment(status PaymentStatus, method PaymentMethod) error {
	if err := errors.Join(status.Validate(), method.Validate()); err != nil {
		return err
	}
	o.paymentStatus = status
	o.paymentMethod = method
	return nil
}

func (o *Order) setDeliveryStatus(typ Type, status DeliveryStatus) error {
	if typ != TypeDelivery {
		if status != DeliveryNotApplicable {
			return fmt.Errorf("%w: restored with delivery status %s", ErrNotADeliveryOrder, status)
		}
		o.deliveryStatus = DeliveryNotApplicable
		return nil
	}

	if err := status.Validate(); err != nil {
		return err
	}
	o.deliveryStatus = status
	return nil
}

func (o *Order) setCourier(typ Type, courierID *kernel.UUID) error {
	if courierID == nil {
		return nil
	}
	if typ != TypeDelivery {
		return ErrNotADeliveryOrder
	}
	if err := courierID.Validate(); err != nil {
		return err
	}

	id := *courierID
	o.courierID = &id
	return nil
}
