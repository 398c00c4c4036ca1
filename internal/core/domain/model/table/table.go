package table

import (
	"errors"
	"fmt"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

const maxCapacity = 50

// Domain errors for table operations.
var (
	// ErrTableIsNotConstructed is returned when using an improperly initialized Table.
	ErrTableIsNotConstructed = errors.New("Table must be created via NewTable constructor")
	// ErrTableIsOccupied is returned when deleting a table with seated guests.
	ErrTableIsOccupied = errors.New("table is occupied")
	// ErrNumberIsRequired is returned for a non-positive table number.
	ErrNumberIsRequired = errs.NewValueIsRequiredError("number")
)

// Position is the table's placement on the floor plan, in layout grid
// units. Purely presentational; no domain rule depends on it.
type Position struct {
	X int
	Y int
}

// Table represents a physical seating unit tracked for occupancy.
// It is an aggregate root managed by staff through the table registry.
//
// Business rules:
//   - a table must have a positive number and a capacity within range
//   - seating an order marks the table Occupied and binds the order
//   - clearing resets the table to Available and drops all bindings
//   - an Occupied table cannot be deleted
type Table struct {
	// id uniquely identifies the table
	id kernel.UUID

	// number is the staff-facing table number
	number int

	// capacity is the number of seats
	capacity int

	// section groups tables on the floor plan ("terrace", "salon")
	section string

	// status is the seating state
	status Status

	// customerName is the currently seated or reserving customer, if known
	customerName string

	// orderID references the open order on this table, nil when clear
	orderID *kernel.UUID

	// position is the floor plan placement
	position Position

	// createdAt and updatedAt are UTC timestamps
	createdAt time.Time
	updatedAt time.Time

	// guard ensures the table was properly constructed
	guard guard.ConstructorGuard
}

// NewTable creates an Available table.
func NewTable(id kernel.UUID, number int, capacity int, section string, position Position) (*Table, error) {
	now := time.Now().UTC()
	t := &Table{
		status:    Available,
		section:   section,
		position:  position,
		createdAt: now,
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		t.setID(id),
		t.setNumber(number),
		t.setCapacity(capacity),
	); err != nil {
		return nil, err
	}

	return t, nil
}

// RestoreTable reconstructs a Table aggregate from persistent storage.
func RestoreTable(
	id kernel.UUID,
	number int,
	capacity int,
	section string,
	status Status,
	customerName string,
	orderID *kernel.UUID,
	position Position,
	createdAt time.Time,
	updatedAt time.Time,
) (*Table, error) {
	t := &Table{
		section:      section,
		customerName: customerName,
		position:     position,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		t.setID(id),
		t.setNumber(number),
		t.setCapacity(capacity),
		t.setStatus(status),
		t.setOrderID(orderID),
	); err != nil {
		return nil, err
	}

	return t, nil
}

// Validate ensures the Table instance was properly constructed.
func (t *Table) Validate() error {
	if t == nil {
		return ErrTableIsNotConstructed
	}

	return t.guard.Validate(ErrTableIsNotConstructed)
}

// IsEqual compares two tables by their unique identifiers.
func (t *Table) IsEqual(other *Table) bool {
	return other != nil && t.id.IsEqual(other.id)
}

// ID returns the table's unique identifier.
func (t *Table) ID() kernel.UUID {
	return t.id
}

// Number returns the staff-facing table number.
func (t *Table) Number() int {
	return t.number
}

// Capacity returns the number of seats.
func (t *Table) Capacity() int {
	return t.capacity
}

// Section returns the floor plan section.
func (t *Table) Section() string {
	return t.section
}

// Status returns the seating state.
func (t *Table) Status() Status {
	return t.status
}

// CustomerName returns the seated or reserving customer, empty if unknown.
func (t *Table) CustomerName() string {
	return t.customerName
}

// OrderID returns the open order on this table, nil when clear.
func (t *Table) OrderID() *kernel.UUID {
	return t.orderID
}

// Position returns the floor plan placement.
func (t *Table) Position() Position {
	return t.position
}

// CreatedAt returns the creation timestamp.
func (t *Table) CreatedAt() time.Time {
	return t.createdAt
}

// UpdatedAt returns the last mutation timestamp.
func (t *Table) UpdatedAt() time.Time {
	return t.updatedAt
}

// IsAvailable reports whether the table can seat new guests.
func (t *Table) IsAvailable() bool {
	return t.status == Available
}

// ChangeStatus applies a staff-triggered seating transition, optionally
// recording the customer. Any transition between the enumerated states
// is allowed.
func (t *Table) ChangeStatus(status Status, customerName string) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if err := status.Validate(); err != nil {
		return err
	}

	t.status = status
	if customerName != "" {
		t.customerName = customerName
	}
	if status == Available {
		t.customerName = ""
		t.orderID = nil
	}
	t.touch()
	return nil
}

// AssignOrder marks the table Occupied and binds the open order.
func (t *Table) AssignOrder(orderID kernel.UUID) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if err := orderID.Validate(); err != nil {
		return err
	}

	t.orderID = &orderID
	t.status = Occupied
	t.touch()
	return nil
}

// Clear resets the table to Available, dropping the customer and order
// bindings.
func (t *Table) Clear() error {
	if err := t.Validate(); err != nil {
		return err
	}

	t.status = Available
	t.customerName = ""
	t.orderID = nil
	t.touch()
	return nil
}

// Rename updates the staff-facing attributes of the table.
func (t *Table) Rename(number int, capacity int, section string, position Position) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if err := errors.Join(t.setNumber(number), t.setCapacity(capacity)); err != nil {
		return err
	}

	t.section = section
	t.position = position
	t.touch()
	return nil
}

// CanBeDeleted reports whether the table may be removed from the
// registry. Occupied tables must be cleared first.
func (t *Table) CanBeDeleted() error {
	if err := t.Validate(); err != nil {
		return err
	}
	if t.status == Occupied {
		return fmt.Errorf("%w: table %d", ErrTableIsOccupied, t.number)
	}

	return nil
}

// Clone returns a deep copy of the table so registry snapshots cannot
// be mutated by callers.
func (t *Table) Clone() *Table {
	if t == nil {
		return nil
	}

	clone := *t
	if t.orderID != nil {
		orderID := *t.orderID
		clone.orderID = &orderID
	}

	return &clone
}

// touch refreshes the update timestamp after a successful mutation.
func (t *Table) touch() {
	t.updatedAt = time.Now().UTC()
}

func (t *Table) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

func (t *Table) setNumber(number int) error {
	if number <= 0 {
		return ErrNumberIsRequired
	}
	t.number = number
	return nil
}

func (t *Table) setCapacity(capacity int) error {
	if capacity <= 0 || capacity > maxCapacity {
		return errs.NewValueIsOutOfRangeError("capacity", capacity, 1, maxCapacity)
	}
	t.capacity = capacity
	return nil
}

func (t *Table) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	t.status = status
	return nil
}

func (t *Table) setOrderID(orderID *kernel.UUID) error {
	if orderID == nil {
		return nil
	}
	if err := orderID.Validate(); err != nil {
		return err
	}

	id := *orderID
	t.orderID = &id
	return nil
}
