// Package courierregistry provides the stateful courier service. The
// registry owns the in-memory roster, writes every mutation through to
// the courier store, and runs the per-courier live tracking simulation
// while a delivery is underway.
package courierregistry

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"restaurant/internal/core/domain/model/courier"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"
)

// TrackingConfig tunes the live tracking simulation. Tests shrink the
// interval to keep timer-driven assertions fast.
type TrackingConfig struct {
	// Interval between simulation ticks.
	Interval time.Duration
	// Steps is the number of ticks before the simulation stops itself.
	Steps int
	// TargetOffset is the max random displacement, in degrees, used to
	// pick a delivery destination near the courier's start point.
	TargetOffset float64
	// Jitter is the max random displacement, in degrees, added per tick.
	Jitter float64
}

// DefaultTrackingConfig returns the production simulation parameters:
// a two second tick over twenty steps with mild jitter.
func DefaultTrackingConfig() TrackingConfig {
	return TrackingConfig{
		Interval:     2 * time.Second,
		Steps:        20,
		TargetOffset: 0.02,
		Jitter:       0.0005,
	}
}

// tracker is the handle of one courier's simulation goroutine. The
// registry holds at most one per courier; ownership is checked on every
// tick so a cancelled tracker can never mutate state.
type tracker struct {
	orderID kernel.UUID
	stop    chan struct{}
	done    chan struct{}
}

// Registry tracks courier availability and location and manages the
// assignment lifecycle. All state lives in memory guarded by one mutex;
// every mutation is written through to the store so a restart
// re-hydrates the same roster.
type Registry struct {
	store    ports.CourierStore
	notifier ports.Notifier
	log      *slog.Logger
	cfg      TrackingConfig

	mu       sync.Mutex
	couriers []*courier.Courier
	trackers map[kernel.UUID]*tracker
	closed   bool
}

// NewRegistry creates a registry hydrated from the courier store.
func NewRegistry(
	ctx context.Context,
	store ports.CourierStore,
	notifier ports.Notifier,
	log *slog.Logger,
	cfg TrackingConfig,
) (*Registry, error) {
	if store == nil {
		return nil, errs.NewValueIsRequiredError("store")
	}
	if notifier == nil {
		return nil, errs.NewValueIsRequiredError("notifier")
	}
	if log == nil {
		log = slog.Default()
	}
	if cfg.Interval <= 0 || cfg.Steps <= 0 {
		return nil, errs.NewValueIsInvalidError("trackingConfig")
	}

	couriers, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load couriers: %w", err)
	}

	return &Registry{
		store:    store,
		notifier: notifier,
		log:      log.With("component", "courierregistry"),
		cfg:      cfg,
		couriers: couriers,
		trackers: make(map[kernel.UUID]*tracker),
	}, nil
}

// Close cancels every live tracking timer and stops the registry.
// It blocks until all simulation goroutines have exited.
func (r *Registry) Close() {
	r.mu.Lock()
	r.closed = true
	stopped := make([]*tracker, 0, len(r.trackers))
	for id, t := range r.trackers {
		close(t.stop)
		stopped = append(stopped, t)
		delete(r.trackers, id)
	}
	r.mu.Unlock()

	for _, t := range stopped {
		<-t.done
	}
}

// Couriers returns clones of the full roster.
func (r *Registry) Couriers() []*courier.Courier {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*courier.Courier, len(r.couriers))
	for i, c := range r.couriers {
		out[i] = c.Clone()
	}
	return out
}

// AvailableCouriers returns clones of the couriers free to take orders.
func (r *Registry) AvailableCouriers() []*courier.Courier {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*courier.Courier
	for _, c := range r.couriers {
		if c.IsAvailable() {
			out = append(out, c.Clone())
		}
	}
	return out
}

// Get returns a clone of the courier.
func (r *Registry) Get(id kernel.UUID) (*courier.Courier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := r.find(id)
	if c == nil {
		return nil, errs.NewObjectNotFoundError("courierId", id)
	}
	return c.Clone(), nil
}

// Add registers a courier and persists the roster.
func (r *Registry) Add(ctx context.Context, c *courier.Courier) error {
	if err := c.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	if r.find(c.ID()) != nil {
		r.mu.Unlock()
		return errs.NewValueIsInvalidErrorWithCause("courierId",
			fmt.Errorf("courier %s is already registered", c.ID()))
	}
	r.couriers = append(r.couriers, c.Clone())
	snapshot := r.snapshot()
	r.mu.Unlock()

	return r.save(ctx, snapshot)
}

// Update changes a courier's staff-facing details and persists the roster.
func (r *Registry) Update(ctx context.Context, id kernel.UUID, name, phone, vehicleType, vehiclePlate string) error {
	r.mu.Lock()
	c := r.find(id)
	if c == nil {
		r.mu.Unlock()
		return errs.NewObjectNotFoundError("courierId", id)
	}
	if err := c.UpdateDetails(name, phone, vehicleType, vehiclePlate); err != nil {
		r.mu.Unlock()
		return err
	}
	snapshot := r.snapshot()
	r.mu.Unlock()

	return r.save(ctx, snapshot)
}

// Remove deletes a courier from the roster. It fails without mutating
// state when the courier is not Available.
func (r *Registry) Remove(ctx context.Context, id kernel.UUID) error {
	r.mu.Lock()
	c := r.find(id)
	if c == nil {
		r.mu.Unlock()
		return errs.NewObjectNotFoundError("courierId", id)
	}
	if err := c.CanBeRemoved(); err != nil {
		r.mu.Unlock()
		return err
	}

	kept := r.couriers[:0]
	for _, existing := range r.couriers {
		if !existing.ID().IsEqual(id) {
			kept = append(kept, existing)
		}
	}
	r.couriers = kept
	snapshot := r.snapshot()
	r.mu.Unlock()

	return r.save(ctx, snapshot)
}

// AssignOrder binds an order to an Available courier (Available -> OnOrder).
func (r *Registry) AssignOrder(ctx context.Context, courierID kernel.UUID, orderID kernel.UUID) error {
	r.mu.Lock()
	c := r.find(courierID)
	if c == nil {
		r.mu.Unlock()
		return errs.NewObjectNotFoundError("courierId", courierID)
	}
	if err := c.Assign(orderID); err != nil {
		r.mu.Unlock()
		return err
	}
	snapshot := r.snapshot()
	r.mu.Unlock()

	if err := r.save(ctx, snapshot); err != nil {
		return err
	}

	r.notify(ctx, ports.NotificationInfo, "courier.assigned",
		fmt.Sprintf("courier %s took order %s", courierID, orderID), courierID.String())
	return nil
}

// ChangeStatus applies a generic availability transition. Transitioning
// to Available clears the current order unless an explicit order is
// supplied, which is invalid and rejected.
func (r *Registry) ChangeStatus(ctx context.Context, courierID kernel.UUID, status courier.Status, orderID *kernel.UUID) error {
	r.mu.Lock()
	c := r.find(courierID)
	if c == nil {
		r.mu.Unlock()
		return errs.NewObjectNotFoundError("courierId", courierID)
	}

	if err := r.applyStatus(c, status, orderID); err != nil {
		r.mu.Unlock()
		return err
	}
	snapshot := r.snapshot()
	r.mu.Unlock()

	return r.save(ctx, snapshot)
}

// applyStatus maps the generic transition onto aggregate operations.
// Callers must hold mu.
func (r *Registry) applyStatus(c *courier.Courier, status courier.Status, orderID *kernel.UUID) error {
	switch status {
	case courier.Available:
		if orderID != nil {
			return errs.NewValueIsInvalidErrorWithCause("orderId",
				fmt.Errorf("an available courier cannot keep order %s", orderID))
		}
		if c.OrderID() != nil {
			return c.Release()
		}
		return nil
	case courier.OnOrder:
		if orderID == nil {
			return errs.NewValueIsRequiredError("orderId")
		}
		return c.Assign(*orderID)
	case courier.Delivering:
		if c.IsAvailable() {
			if orderID == nil {
				return errs.NewValueIsRequiredError("orderId")
			}
			if err := c.Assign(*orderID); err != nil {
				return err
			}
		}
		return c.StartDelivering()
	case courier.StatusUnknown:
		return errs.NewValueIsInvalidError("courierStatus")
	}
	return errs.NewValueIsInvalidError("courierStatus")
}

// CompleteDelivery stops tracking, frees the courier, and bumps the
// delivery count. Tracking removal and the status change happen under
// one lock so no caller ever observes an Available courier that is
// still tracked.
func (r *Registry) CompleteDelivery(ctx context.Context, courierID kernel.UUID) error {
	r.mu.Lock()
	c := r.find(courierID)
	if c == nil {
		r.mu.Unlock()
		return errs.NewObjectNotFoundError("courierId", courierID)
	}
	if err := c.CompleteDelivery(); err != nil {
		r.mu.Unlock()
		return err
	}

	var stopped *tracker
	if t, ok := r.trackers[courierID]; ok {
		close(t.stop)
		delete(r.trackers, courierID)
		stopped = t
	}
	snapshot := r.snapshot()
	r.mu.Unlock()

	if stopped != nil {
		<-stopped.done
	}

	if err := r.save(ctx, snapshot); err != nil {
		return err
	}

	r.notify(ctx, ports.NotificationSuccess, "courier.delivery_completed",
		fmt.Sprintf("courier %s completed a delivery", courierID), courierID.String())
	return nil
}

// StartLiveTracking starts the location simulation for a courier that
// has an order. An OnOrder courier is moved to Delivering first. Any
// prior tracker for the courier is cancelled before the new one starts;
// a courier never has two timers.
func (r *Registry) StartLiveTracking(ctx context.Context, courierID kernel.UUID, orderID kernel.UUID) error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return errs.NewValueIsInvalidError("registry is closed")
	}
	c := r.find(courierID)
	if c == nil {
		r.mu.Unlock()
		return errs.NewObjectNotFoundError("courierId", courierID)
	}
	if c.OrderID() == nil || !c.OrderID().IsEqual(orderID) {
		r.mu.Unlock()
		return errs.NewValueIsInvalidErrorWithCause("orderId",
			fmt.Errorf("courier %s is not working order %s", courierID, orderID))
	}
	if c.Status() == courier.OnOrder {
		if err := c.StartDelivering(); err != nil {
			r.mu.Unlock()
			return err
		}
	}

	var prior *tracker
	if t, ok := r.trackers[courierID]; ok {
		close(t.stop)
		delete(r.trackers, courierID)
		prior = t
	}

	start := c.Location()
	target, err := start.RandomOffset(r.cfg.TargetOffset)
	if err != nil {
		r.mu.Unlock()
		return err
	}

	t := &tracker{
		orderID: orderID,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	r.trackers[courierID] = t
	snapshot := r.snapshot()
	r.mu.Unlock()

	if prior != nil {
		<-prior.done
	}

	go r.track(courierID, t, start, target)

	return r.save(ctx, snapshot)
}

// StopLiveTracking cancels the courier's tracking timer, if any.
func (r *Registry) StopLiveTracking(courierID kernel.UUID) {
	r.mu.Lock()
	t, ok := r.trackers[courierID]
	if ok {
		close(t.stop)
		delete(r.trackers, courierID)
	}
	r.mu.Unlock()

	if ok {
		<-t.done
	}
}

// IsLiveTracking reports whether a tracking timer is active for the courier.
func (r *Registry) IsLiveTracking(courierID kernel.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.trackers[courierID]
	return ok
}

// track is the simulation loop. Each tick moves the courier along the
// line from start to target with a little jitter; after the configured
// number of steps the tracker removes itself.
func (r *Registry) track(courierID kernel.UUID, t *tracker, start, target kernel.GeoPoint) {
	defer close(t.done)

	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	for step := 1; ; step++ {
		select {
		case <-t.stop:
			return
		case <-ticker.C:
		}

		fraction := float64(step) / float64(r.cfg.Steps)
		if fraction > 1 {
			fraction = 1
		}
		point, err := start.InterpolateToward(target, fraction)
		if err == nil {
			point, err = point.WithJitter(r.cfg.Jitter)
		}
		if err != nil {
			r.log.Warn("tracking tick failed", "courierId", courierID.String(), "err", err)
			return
		}

		if !r.applyTick(courierID, t, point) {
			return
		}

		if step >= r.cfg.Steps {
			r.finishTracking(courierID, t)
			return
		}
	}
}

// applyTick moves the courier if this tracker still owns the slot.
// Returns false when the tracker has been superseded or cancelled.
func (r *Registry) applyTick(courierID kernel.UUID, t *tracker, point kernel.GeoPoint) bool {
	r.mu.Lock()
	if r.trackers[courierID] != t {
		r.mu.Unlock()
		return false
	}
	c := r.find(courierID)
	if c == nil {
		delete(r.trackers, courierID)
		r.mu.Unlock()
		return false
	}
	if err := c.MoveTo(point); err != nil {
		r.mu.Unlock()
		r.log.Warn("tracking move rejected", "courierId", courierID.String(), "err", err)
		return false
	}
	snapshot := r.snapshot()
	r.mu.Unlock()

	if err := r.save(context.Background(), snapshot); err != nil {
		r.log.Warn("tracking save failed", "courierId", courierID.String(), "err", err)
	}
	return true
}

// finishTracking removes a tracker that ran its full course.
func (r *Registry) finishTracking(courierID kernel.UUID, t *tracker) {
	r.mu.Lock()
	if r.trackers[courierID] == t {
		delete(r.trackers, courierID)
	}
	r.mu.Unlock()
}

// find returns the live aggregate, nil if absent. Callers must hold mu.
func (r *Registry) find(id kernel.UUID) *courier.Courier {
	for _, c := range r.couriers {
		if c.ID().IsEqual(id) {
			return c
		}
	}
	return nil
}

// snapshot clones the roster for persistence outside the lock.
// Callers must hold mu.
func (r *Registry) snapshot() []*courier.Courier {
	out := make([]*courier.Courier, len(r.couriers))
	for i, c := range r.couriers {
		out[i] = c.Clone()
	}
	return out
}

func (r *Registry) save(ctx context.Context, snapshot []*courier.Courier) error {
	if err := r.store.Save(ctx, snapshot); err != nil {
		return fmt.Errorf("save couriers: %w", err)
	}
	return nil
}

func (r *Registry) notify(ctx context.Context, level ports.NotificationLevel, event, message, subject string) {
	r.notifier.Notify(ctx, ports.Notification{
		Level:   level,
		Event:   event,
		Message: message,
		Subject: subject,
		At:      time.Now().UTC(),
	})
}
