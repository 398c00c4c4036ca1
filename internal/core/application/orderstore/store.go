// Package orderstore provides the stateful order service. The database
// is the source of truth for orders; the store keeps an in-memory cache
// on top of it so staff screens read instantly, applies status updates
// optimistically with rollback on remote failure, and refreshes the
// cache periodically without clobbering in-flight updates.
package orderstore

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"
)

// Store caches order aggregates and synchronizes them with the database.
//
// Concurrency model: a single mutex guards the cache, the per-order
// sequence counters, and the in-flight counters. Remote calls run
// outside the lock. Each optimistic status update captures a sequence
// number under the lock; when its remote call completes, the rollback
// or reconciliation is applied only if that update is still the latest
// issued for the order. A later update therefore can never be clobbered
// by an earlier update's rollback (last-writer reconciliation).
type Store struct {
	uowFactory ports.UnitOfWorkFactory
	notifier   ports.Notifier
	log        *slog.Logger

	mu       sync.Mutex
	orders   []*order.Order // newest first, mirrors the database ordering
	seq      map[kernel.UUID]uint64
	inflight map[kernel.UUID]int
	closed   bool
}

// NewStore creates an order store with an empty cache. The first
// Refresh (run at startup by the composition root and every 30 seconds
// by the refresh job) populates it.
func NewStore(uowFactory ports.UnitOfWorkFactory, notifier ports.Notifier, log *slog.Logger) (*Store, error) {
	if uowFactory == nil {
		return nil, errs.NewValueIsRequiredError("uowFactory")
	}
	if notifier == nil {
		return nil, errs.NewValueIsRequiredError("notifier")
	}
	if log == nil {
		log = slog.Default()
	}

	return &Store{
		uowFactory: uowFactory,
		notifier:   notifier,
		log:        log.With("component", "orderstore"),
		seq:        make(map[kernel.UUID]uint64),
		inflight:   make(map[kernel.UUID]int),
	}, nil
}

// Close stops the store. Subsequent refreshes become no-ops so a
// dangling fetch can never mutate state after teardown.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

// Create persists a new order and prepends it to the cache.
// The cache is untouched when persistence fails.
func (s *Store) Create(ctx context.Context, o *order.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}

	if err := s.persist(ctx, o, false); err != nil {
		s.notify(ctx, ports.NotificationError, "order.create_failed",
			fmt.Sprintf("order could not be created: %s", err), o.ID().String())
		return err
	}

	s.mu.Lock()
	s.orders = append([]*order.Order{o.Clone()}, s.orders...)
	s.mu.Unlock()

	s.notify(ctx, ports.NotificationSuccess, "order.created",
		fmt.Sprintf("order %s created, total %s", o.ID(), o.Total().Format()), o.ID().String())
	return nil
}

// UpdateStatus applies an optimistic status transition: the cache is
// mutated immediately and the database update runs afterwards. On
// remote failure the pre-update snapshot is restored, unless a newer
// update for the same order was issued in the meantime.
func (s *Store) UpdateStatus(ctx context.Context, id kernel.UUID, next order.Status) error {
	s.mu.Lock()
	cached := s.find(id)
	if cached == nil {
		s.mu.Unlock()
		return errs.NewObjectNotFoundError("orderId", id)
	}

	snapshot := cached.Clone()
	if err := cached.ChangeStatus(next); err != nil {
		s.mu.Unlock()
		return err
	}

	s.seq[id]++
	mySeq := s.seq[id]
	s.inflight[id]++
	updated := cached.Clone()
	s.mu.Unlock()

	err := s.persist(ctx, updated, true)

	s.mu.Lock()
	s.inflight[id]--
	if s.inflight[id] <= 0 {
		delete(s.inflight, id)
	}
	latest := s.seq[id] == mySeq
	if err != nil && latest {
		s.replace(id, snapshot)
	}
	s.mu.Unlock()

	if err != nil {
		s.log.WarnContext(ctx, "status update rolled back",
			"orderId", id.String(), "status", next.String(), "err", err)
		s.notify(ctx, ports.NotificationError, "order.status_failed",
			fmt.Sprintf("order %s could not move to %s", id, next), id.String())
		return err
	}

	s.notify(ctx, ports.NotificationSuccess, "order.status_changed",
		fmt.Sprintf("order %s is now %s", id, next), id.String())
	return nil
}

// UpdatePaymentStatus is remote-first: the cache is only touched after
// the database confirms the update.
func (s *Store) UpdatePaymentStatus(ctx context.Context, id kernel.UUID, status order.PaymentStatus, method order.PaymentMethod) error {
	return s.remoteFirst(ctx, id, "order.payment_failed",
		func(o *order.Order) error { return o.ChangePayment(status, method) },
		func(o *order.Order) {
			s.notify(ctx, ports.NotificationSuccess, "order.payment_changed",
				fmt.Sprintf("order %s payment is %s (%s)", id, status, method), id.String())
		})
}

// UpdateDeliveryStatus is remote-first. Delivered forces the order
// status to Completed (enforced by the aggregate).
func (s *Store) UpdateDeliveryStatus(ctx context.Context, id kernel.UUID, status order.DeliveryStatus) error {
	return s.remoteFirst(ctx, id, "order.delivery_failed",
		func(o *order.Order) error { return o.ChangeDeliveryStatus(status) },
		func(o *order.Order) {
			s.notify(ctx, ports.NotificationSuccess, "order.delivery_changed",
				fmt.Sprintf("order %s delivery is %s", id, status), id.String())
		})
}

// AssignCourier is remote-first: it binds the courier to the order and
// moves a pending delivery to EnRoute.
func (s *Store) AssignCourier(ctx context.Context, id kernel.UUID, courierID kernel.UUID) error {
	return s.remoteFirst(ctx, id, "order.assign_failed",
		func(o *order.Order) error { return o.AssignCourier(courierID) },
		func(o *order.Order) {
			s.notify(ctx, ports.NotificationInfo, "order.courier_assigned",
				fmt.Sprintf("order %s assigned to courier %s", id, courierID), id.String())
		})
}

// Refresh re-fetches the full order list and reconciles the cache.
// Orders with in-flight optimistic updates keep their local state;
// content-equal entries keep their existing instances so consumers see
// no spurious change. No-op once the store is closed.
func (s *Store) Refresh(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	fetched, err := s.fetchAll(ctx)
	if err != nil {
		return fmt.Errorf("refresh orders: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}

	next := make([]*order.Order, 0, len(fetched))
	for _, remote := range fetched {
		cached := s.find(remote.ID())
		switch {
		case cached != nil && s.inflight[remote.ID()] > 0:
			next = append(next, cached)
		case cached != nil && cached.EqualState(remote):
			next = append(next, cached)
		default:
			next = append(next, remote)
		}
	}
	s.orders = next
	return nil
}

// Orders returns clones of all cached orders, newest first.
func (s *Store) Orders() []*order.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*order.Order, len(s.orders))
	for i, o := range s.orders {
		out[i] = o.Clone()
	}
	return out
}

// Get returns a clone of the cached order.
func (s *Store) Get(id kernel.UUID) (*order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cached := s.find(id)
	if cached == nil {
		return nil, errs.NewObjectNotFoundError("orderId", id)
	}
	return cached.Clone(), nil
}

// UnassignedDeliveryOrders returns clones of cached delivery orders
// that still need a courier, oldest first.
func (s *Store) UnassignedDeliveryOrders() []*order.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*order.Order
	for i := len(s.orders) - 1; i >= 0; i-- {
		o := s.orders[i]
		if o.IsDelivery() && o.CourierID() == nil && !o.Status().IsTerminal() {
			out = append(out, o.Clone())
		}
	}
	return out
}

// remoteFirst runs a mutation against a clone, persists it, and applies
// the same mutation to the cached aggregate only after the database
// confirms. Working on the live cached instance would leak the change
// on remote failure.
func (s *Store) remoteFirst(
	ctx context.Context,
	id kernel.UUID,
	failEvent string,
	mutate func(*order.Order) error,
	onSuccess func(*order.Order),
) error {
	s.mu.Lock()
	cached := s.find(id)
	if cached == nil {
		s.mu.Unlock()
		return errs.NewObjectNotFoundError("orderId", id)
	}
	candidate := cached.Clone()
	s.mu.Unlock()

	if err := mutate(candidate); err != nil {
		return err
	}

	if err := s.persist(ctx, candidate, true); err != nil {
		s.notify(ctx, ports.NotificationError, failEvent,
			fmt.Sprintf("order %s update failed: %s", id, err), id.String())
		return err
	}

	s.mu.Lock()
	if cached = s.find(id); cached != nil {
		// Re-apply on the live instance; it may have moved since the
		// clone was taken, in which case the domain rules decide.
		if err := mutate(cached); err != nil {
			s.replace(id, candidate)
		}
	}
	s.mu.Unlock()

	onSuccess(candidate)
	return nil
}

// find returns the cached aggregate, nil if absent. Callers must hold mu.
func (s *Store) find(id kernel.UUID) *order.Order {
	for _, o := range s.orders {
		if o.ID().IsEqual(id) {
			return o
		}
	}
	return nil
}

// replace swaps the cached entry for the order. Callers must hold mu.
func (s *Store) replace(id kernel.UUID, o *order.Order) {
	for i, existing := range s.orders {
		if existing.ID().IsEqual(id) {
			s.orders[i] = o
			return
		}
	}
}

// persist writes the aggregate through a fresh unit of work.
func (s *Store) persist(ctx context.Context, o *order.Order, update bool) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	var err error
	if update {
		err = repo.Update(ctx, o)
	} else {
		err = repo.Add(ctx, o)
	}
	if err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// fetchAll reads the full order list through a fresh unit of work.
func (s *Store) fetchAll(ctx context.Context) ([]*order.Order, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders, err := uow.OrderRepository().GetAll(ctx)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *Store) notify(ctx context.Context, level ports.NotificationLevel, event, message, subject string) {
	s.notifier.Notify(ctx, ports.Notification{
		Level:   level,
		Event:   event,
		Message: message,
		Subject: subject,
		At:      time.Now().UTC(),
	})
}
