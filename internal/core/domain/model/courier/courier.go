package courier

import (
	"errors"
	"fmt"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

// Domain errors for courier operations.
var (
	// ErrNameIsRequired is returned when creating a courier without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrPhoneIsRequired is returned when creating a courier without a phone number.
	ErrPhoneIsRequired = errs.NewValueIsRequiredError("phone")
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")
	// ErrCourierIsBusy is returned when removing or assigning a courier that
	// is currently working an order.
	ErrCourierIsBusy = errors.New("courier is busy with an order")
	// ErrCourierHasNoOrder is returned when advancing delivery state on a
	// courier with no assigned order.
	ErrCourierHasNoOrder = errors.New("courier has no assigned order")
)

// Courier represents a delivery courier registered with the restaurant.
// It is an aggregate root that manages courier identity, availability,
// and position during a delivery run.
//
// Business rules:
//   - a courier must have a valid UUID, a non-empty name and phone
//   - assignment requires the Available status; a courier works at most
//     one order at a time
//   - live tracking only runs while the status is Delivering
//   - a courier may only be removed from the registry while Available
type Courier struct {
	// id uniquely identifies the courier
	id kernel.UUID

	// name is the human-readable name of the courier
	name string

	// phone is the contact number used by staff
	phone string

	// vehicleType and vehiclePlate describe the courier's vehicle
	vehicleType  string
	vehiclePlate string

	// status is the availability state in the delivery pool
	status Status

	// location is the last known position, updated by the tracking simulation
	location kernel.GeoPoint

	// orderID references the order being worked, nil while Available
	orderID *kernel.UUID

	// totalDeliveries counts completed deliveries over the courier's lifetime
	totalDeliveries int

	// createdAt and updatedAt are UTC timestamps
	createdAt time.Time
	updatedAt time.Time

	// guard ensures the courier was properly constructed
	guard guard.ConstructorGuard
}

// NewCourier registers a new courier starting out Available at the given
// position (typically the restaurant itself). The vehicle fields are
// optional informational attributes.
func NewCourier(
	id kernel.UUID,
	name string,
	phone string,
	vehicleType string,
	vehiclePlate string,
	location kernel.GeoPoint,
) (*Courier, error) {
	now := time.Now().UTC()
	c := &Courier{
		status:       Available,
		vehicleType:  vehicleType,
		vehiclePlate: vehiclePlate,
		createdAt:    now,
		updatedAt:    now,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setPhone(phone),
		c.setLocation(location),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreCourier reconstructs a Courier aggregate from persistent storage,
// preserving its availability and position. The restored courier behaves
// identically to one created through normal domain operations.
func RestoreCourier(
	id kernel.UUID,
	name string,
	phone string,
	vehicleType string,
	vehiclePlate string,
	status Status,
	location kernel.GeoPoint,
	orderID *kernel.UUID,
	totalDeliveries int,
	createdAt time.Time,
	updatedAt time.Time,
) (*Courier, error) {
	c := &Courier{
		vehicleType:  vehicleType,
		vehiclePlate: vehiclePlate,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setPhone(phone),
		c.setStatus(status),
		c.setLocation(location),
		c.setOrderID(status, orderID),
		c.setTotalDeliveries(totalDeliveries),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate ensures the Courier instance was properly constructed.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}

	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// IsEqual compares two couriers by their unique identifiers.
func (c *Courier) IsEqual(other *Courier) bool {
	return other != nil && c.id.IsEqual(other.id)
}

// ID returns the courier's unique identifier.
func (c *Courier) ID() kernel.UUID {
	return c.id
}

// Name returns the courier's name.
func (c *Courier) Name() string {
	return c.name
}

// Phone returns the courier's contact number.
func (c *Courier) Phone() string {
	return c.phone
}

// VehicleType returns the courier's vehicle type, empty if unset.
func (c *Courier) VehicleType() string {
	return c.vehicleType
}

// VehiclePlate returns the courier's plate number, empty if unset.
func (c *Courier) VehiclePlate() string {
	return c.vehiclePlate
}

// TotalDeliveries returns the lifetime completed-delivery count.
func (c *Courier) TotalDeliveries() int {
	return c.totalDeliveries
}

// Status returns the availability state.
func (c *Courier) Status() Status {
	return c.status
}

// Location returns the last known position.
func (c *Courier) Location() kernel.GeoPoint {
	return c.location
}

// OrderID returns the order being worked, nil while Available.
func (c *Courier) OrderID() *kernel.UUID {
	return c.orderID
}

// CreatedAt returns the registration timestamp.
func (c *Courier) CreatedAt() time.Time {
	return c.createdAt
}

// UpdatedAt returns the last mutation timestamp.
func (c *Courier) UpdatedAt() time.Time {
	return c.updatedAt
}

// IsAvailable reports whether the courier can take an order.
func (c *Courier) IsAvailable() bool {
	return c.status == Available
}

// Assign binds an order to an Available courier and moves them to OnOrder.
func (c *Courier) Assign(orderID kernel.UUID) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := orderID.Validate(); err != nil {
		return err
	}
	if c.status != Available {
		return fmt.Errorf("%w: status is %s", ErrCourierIsBusy, c.status)
	}

	c.orderID = &orderID
	c.status = OnOrder
	c.touch()
	return nil
}

// StartDelivering moves an OnOrder courier to Delivering. The registry
// starts the live tracking timer for the courier once this succeeds.
func (c *Courier) StartDelivering() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.status != OnOrder {
		return errs.NewValueIsInvalidErrorWithCause("courierStatus",
			fmt.Errorf("cannot start delivering from %s", c.status))
	}

	c.status = Delivering
	c.touch()
	return nil
}

// CompleteDelivery returns the courier to the Available pool, clearing
// the order reference and incrementing the lifetime delivery count.
func (c *Courier) CompleteDelivery() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.orderID == nil {
		return ErrCourierHasNoOrder
	}

	c.orderID = nil
	c.status = Available
	c.totalDeliveries++
	c.touch()
	return nil
}

// Release frees a courier whose order was cancelled before handover.
// Unlike CompleteDelivery it does not count toward total deliveries.
func (c *Courier) Release() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.orderID == nil {
		return ErrCourierHasNoOrder
	}

	c.orderID = nil
	c.status = Available
	c.touch()
	return nil
}

// MoveTo updates the courier's tracked position. Called by the live
// tracking simulation on every tick.
func (c *Courier) MoveTo(location kernel.GeoPoint) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := location.Validate(); err != nil {
		return err
	}

	c.location = location
	c.touch()
	return nil
}

// UpdateDetails updates the staff-facing attributes of the courier.
func (c *Courier) UpdateDetails(name string, phone string, vehicleType string, vehiclePlate string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := errors.Join(c.setName(name), c.setPhone(phone)); err != nil {
		return err
	}

	c.vehicleType = vehicleType
	c.vehiclePlate = vehiclePlate
	c.touch()
	return nil
}

// CanBeRemoved reports whether the courier may leave the registry.
// Busy couriers must finish their delivery first.
func (c *Courier) CanBeRemoved() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.status != Available {
		return fmt.Errorf("%w: status is %s", ErrCourierIsBusy, c.status)
	}

	return nil
}

// Clone returns a deep copy of the courier so registry snapshots cannot
// be mutated by callers.
func (c *Courier) Clone() *Courier {
	if c == nil {
		return nil
	}

	clone := *c
	if c.orderID != nil {
		orderID := *c.orderID
		clone.orderID = &orderID
	}

	return &clone
}

// touch refreshes the update timestamp after a successful mutation.
func (c *Courier) touch() {
	c.updatedAt = time.Now().UTC()
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Courier) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}

func (c *Courier) setPhone(phone string) error {
	if phone == "" {
		return ErrPhoneIsRequired
	}
	c.phone = phone
	return nil
}

func (c *Courier) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	c.status = status
	return nil
}

func (c *Courier) setLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}
	c.location = location
	return nil
}

func (c *Courier) setTotalDeliveries(totalDeliveries int) error {
	if totalDeliveries < 0 {
		return errs.NewValueIsInvalidError("totalDeliveries")
	}
	c.totalDeliveries = totalDeliveries
	return nil
}

// setOrderID restores the order reference, keeping it consistent with
// the availability status.
func (c *Courier) setOrderID(status Status, orderID *kernel.UUID) error {
	if orderID == nil {
		if status == OnOrder || status == Delivering {
			return ErrCourierHasNoOrder
		}
		return nil
	}

	if status == Available {
		return errs.NewValueIsInvalidErrorWithCause("orderID",
			errors.New("an available courier cannot reference an order"))
	}
	if err := orderID.Validate(); err != nil {
		return err
	}

	id := *orderID
	c.orderID = &id
	return nil
}
