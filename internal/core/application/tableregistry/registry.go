// Package tableregistry provides the stateful table service. It owns
// the in-memory floor plan, writes every mutation through to the table
// store, and enforces the delete guard on occupied tables.
package tableregistry

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/table"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"
)

// Registry tracks seating status independent of orders.
type Registry struct {
	store ports.TableStore
	log   *slog.Logger

	mu     sync.Mutex
	tables []*table.Table
}

// NewRegistry creates a registry hydrated from the table store.
func NewRegistry(ctx context.Context, store ports.TableStore, log *slog.Logger) (*Registry, error) {
	if store == nil {
		return nil, errs.NewValueIsRequiredError("store")
	}
	if log == nil {
		log = slog.Default()
	}

	tables, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load tables: %w", err)
	}

	return &Registry{
		store:  store,
		log:    log.With("component", "tableregistry"),
		tables: tables,
	}, nil
}

// Tables returns clones of the full floor plan.
func (r *Registry) Tables() []*table.Table {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*table.Table, len(r.tables))
	for i, t := range r.tables {
		out[i] = t.Clone()
	}
	return out
}

// AvailableTables returns clones of the tables free to seat guests.
func (r *Registry) AvailableTables() []*table.Table {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*table.Table
	for _, t := range r.tables {
		if t.IsAvailable() {
			out = append(out, t.Clone())
		}
	}
	return out
}

// TablesBySection returns clones of the tables in a floor plan section.
func (r *Registry) TablesBySection(section string) []*table.Table {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*table.Table
	for _, t := range r.tables {
		if t.Section() == section {
			out = append(out, t.Clone())
		}
	}
	return out
}

// Get returns a clone of the table.
func (r *Registry) Get(id kernel.UUID) (*table.Table, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t := r.find(id)
	if t == nil {
		return nil, errs.NewObjectNotFoundError("tableId", id)
	}
	return t.Clone(), nil
}

// Add registers a table and persists the floor plan.
func (r *Registry) Add(ctx context.Context, t *table.Table) error {
	if err := t.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	if r.find(t.ID()) != nil {
		r.mu.Unlock()
		return errs.NewValueIsInvalidErrorWithCause("tableId",
			fmt.Errorf("table %s is already registered", t.ID()))
	}
	r.tables = append(r.tables, t.Clone())
	snapshot := r.snapshot()
	r.mu.Unlock()

	return r.save(ctx, snapshot)
}

// Update changes a table's staff-facing attributes.
func (r *Registry) Update(ctx context.Context, id kernel.UUID, number, capacity int, section string, position table.Position) error {
	return r.mutate(ctx, id, func(t *table.Table) error {
		return t.Rename(number, capacity, section, position)
	})
}

// ChangeStatus applies a staff-triggered seating transition.
func (r *Registry) ChangeStatus(ctx context.Context, id kernel.UUID, status table.Status, customerName string) error {
	return r.mutate(ctx, id, func(t *table.Table) error {
		return t.ChangeStatus(status, customerName)
	})
}

// AssignOrder marks the table Occupied and binds the order.
func (r *Registry) AssignOrder(ctx context.Context, tableID kernel.UUID, orderID kernel.UUID) error {
	return r.mutate(ctx, tableID, func(t *table.Table) error {
		return t.AssignOrder(orderID)
	})
}

// Clear resets the table to Available and drops its bindings.
func (r *Registry) Clear(ctx context.Context, id kernel.UUID) error {
	return r.mutate(ctx, id, func(t *table.Table) error {
		return t.Clear()
	})
}

// Delete removes a table from the floor plan. It fails without mutating
// state when the table is Occupied.
func (r *Registry) Delete(ctx context.Context, id kernel.UUID) error {
	r.mu.Lock()
	t := r.find(id)
	if t == nil {
		r.mu.Unlock()
		return errs.NewObjectNotFoundError("tableId", id)
	}
	if err := t.CanBeDeleted(); err != nil {
		r.mu.Unlock()
		return err
	}

	kept := r.tables[:0]
	for _, existing := range r.tables {
		if !existing.ID().IsEqual(id) {
			kept = append(kept, existing)
		}
	}
	r.tables = kept
	snapshot := r.snapshot()
	r.mu.Unlock()

	return r.save(ctx, snapshot)
}

// mutate applies an aggregate operation under the lock and persists the
// result. Failed operations leave both memory and storage untouched.
func (r *Registry) mutate(ctx context.Context, id kernel.UUID, op func(*table.Table) error) error {
	r.mu.Lock()
	t := r.find(id)
	if t == nil {
		r.mu.Unlock()
		return errs.NewObjectNotFoundError("tableId", id)
	}
	if err := op(t); err != nil {
		r.mu.Unlock()
		return err
	}
	snapshot := r.snapshot()
	r.mu.Unlock()

	return r.save(ctx, snapshot)
}

// find returns the live aggregate, nil if absent. Callers must hold mu.
func (r *Registry) find(id kernel.UUID) *table.Table {
	for _, t := range r.tables {
		if t.ID().IsEqual(id) {
			return t
		}
	}
	return nil
}

// snapshot clones the floor plan for persistence outside the lock.
// Callers must hold mu.
func (r *Registry) snapshot() []*table.Table {
	out := make([]*table.Table, len(r.tables))
	for i, t := range r.tables {
		out[i] = t.Clone()
	}
	return out
}

func (r *Registry) save(ctx context.Context, snapshot []*table.Table) error {
	if err := r.store.Save(ctx, snapshot); err != nil {
		return fmt.Errorf("save tables: %w", err)
	}
	return nil
}
