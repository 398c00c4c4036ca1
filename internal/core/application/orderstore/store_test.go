package orderstore_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"restaurant/internal/core/application/orderstore"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeOrderRepo is an in-memory repository with failure injection and an
// update hook for interleaving concurrent calls deterministically.
type fakeOrderRepo struct {
	mu         sync.Mutex
	orders     []*order.Order // newest first
	failAdd    error
	failUpdate error
	updateHook func(o *order.Order) error
}

func (r *fakeOrderRepo) Add(_ context.Context, o *order.Order) error {
	r.mu.Lock()
	if r.failAdd != nil {
		r.mu.Unlock()
		return r.failAdd
	}
	r.orders = append([]*order.Order{o.Clone()}, r.orders...)
	r.mu.Unlock()
	return nil
}

func (r *fakeOrderRepo) Update(_ context.Context, o *order.Order) error {
	r.mu.Lock()
	hook := r.updateHook
	fail := r.failUpdate
	r.mu.Unlock()

	// The hook runs before the write so tests can interleave other store
	// calls while this update is still "on the wire".
	if hook != nil {
		if err := hook(o); err != nil {
			return err
		}
	}
	if fail != nil {
		return fail
	}

	r.mu.Lock()
	for i, existing := range r.orders {
		if existing.ID().IsEqual(o.ID()) {
			r.orders[i] = o.Clone()
		}
	}
	r.mu.Unlock()
	return nil
}

func (r *fakeOrderRepo) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.ID().IsEqual(id) {
			return o.Clone(), nil
		}
	}
	return nil, errs.NewObjectNotFoundError("orderId", id)
}

func (r *fakeOrderRepo) GetAll(_ context.Context) ([]*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*order.Order, len(r.orders))
	for i, o := range r.orders {
		out[i] = o.Clone()
	}
	return out, nil
}

func (r *fakeOrderRepo) GetFirstUnassignedDelivery(_ context.Context) (*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.orders) - 1; i >= 0; i-- {
		o := r.orders[i]
		if o.IsDelivery() && o.CourierID() == nil && !o.Status().IsTerminal() {
			return o.Clone(), nil
		}
	}
	return nil, errs.NewObjectNotFoundError("order", "unassigned delivery")
}

type fakeUoW struct {
	repo *fakeOrderRepo
}

func (u *fakeUoW) Begin(context.Context) error               { return nil }
func (u *fakeUoW) Commit(context.Context) error              { return nil }
func (u *fakeUoW) Rollback(context.Context) error            { return nil }
func (u *fakeUoW) OrderRepository() ports.OrderRepository    { return u.repo }
func (u *fakeUoW) ProductRepository() ports.ProductRepository { return nil }

type fakeUoWFactory struct {
	uow *fakeUoW
}

func (f *fakeUoWFactory) Create() ports.UnitOfWork { return f.uow }

type captureNotifier struct {
	mu            sync.Mutex
	notifications []ports.Notification
}

func (n *captureNotifier) Notify(_ context.Context, notification ports.Notification) {
	n.mu.Lock()
	n.notifications = append(n.notifications, notification)
	n.mu.Unlock()
}

func (n *captureNotifier) events() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.notifications))
	for i, notification := range n.notifications {
		out[i] = notification.Event
	}
	return out
}

func newStoreFixture(t *testing.T) (*orderstore.Store, *fakeOrderRepo, *captureNotifier) {
	t.Helper()
	repo := &fakeOrderRepo{}
	notifier := &captureNotifier{}
	store, err := orderstore.NewStore(
		&fakeUoWFactory{uow: &fakeUoW{repo: repo}},
		notifier,
		slog.New(slog.DiscardHandler),
	)
	require.NoError(t, err)
	return store, repo, notifier
}

func makeOrder(t *testing.T, typ order.Type) *order.Order {
	t.Helper()
	price, err := kernel.NewMoney(13000)
	require.NoError(t, err)
	item, err := order.NewLineItem(kernel.NewUUID(), "Adana Kebap", price, 1, "")
	require.NoError(t, err)

	var tableID *kernel.UUID
	address := ""
	switch typ {
	case order.TypeDineIn:
		id := kernel.NewUUID()
		tableID = &id
	case order.TypeDelivery:
		address = "Istiklal Cd. 12"
	case order.TypeTakeaway, order.TypeUnknown:
	}

	o, err := order.NewOrder(kernel.NewUUID(), typ, []order.LineItem{item}, tableID, "", address)
	require.NoError(t, err)
	return o
}

func TestStore_Create(t *testing.T) {
	t.Run("should persist and prepend to cache", func(t *testing.T) {
		store, repo, notifier := newStoreFixture(t)
		first := makeOrder(t, order.TypeTakeaway)
		second := makeOrder(t, order.TypeDelivery)

		require.NoError(t, store.Create(t.Context(), first))
		require.NoError(t, store.Create(t.Context(), second))

		cached := store.Orders()
		require.Len(t, cached, 2)
		assert.True(t, cached[0].IsEqual(second))
		assert.True(t, cached[1].IsEqual(first))
		assert.Len(t, repo.orders, 2)
		assert.Contains(t, notifier.events(), "order.created")
	})

	t.Run("should leave cache untouched on remote failure", func(t *testing.T) {
		store, repo, notifier := newStoreFixture(t)
		repo.failAdd = errors.New("connection refused")

		err := store.Create(t.Context(), makeOrder(t, order.TypeTakeaway))

		require.Error(t, err)
		assert.Empty(t, store.Orders())
		assert.Contains(t, notifier.events(), "order.create_failed")
	})
}

func TestStore_UpdateStatus(t *testing.T) {
	t.Run("should apply optimistically and persist", func(t *testing.T) {
		store, repo, _ := newStoreFixture(t)
		o := makeOrder(t, order.TypeTakeaway)
		require.NoError(t, store.Create(t.Context(), o))

		require.NoError(t, store.UpdateStatus(t.Context(), o.ID(), order.Preparing))

		cached, err := store.Get(o.ID())
		require.NoError(t, err)
		assert.Equal(t, order.Preparing, cached.Status())
		persisted, err := repo.Get(t.Context(), o.ID())
		require.NoError(t, err)
		assert.Equal(t, order.Preparing, persisted.Status())
	})

	t.Run("should roll back to the exact prior state on remote failure", func(t *testing.T) {
		store, repo, notifier := newStoreFixture(t)
		o := makeOrder(t, order.TypeTakeaway)
		other := makeOrder(t, order.TypeTakeaway)
		require.NoError(t, store.Create(t.Context(), o))
		require.NoError(t, store.Create(t.Context(), other))
		repo.failUpdate = errors.New("connection refused")

		err := store.UpdateStatus(t.Context(), o.ID(), order.Ready)

		require.Error(t, err)
		cached, getErr := store.Get(o.ID())
		require.NoError(t, getErr)
		assert.Equal(t, order.Pending, cached.Status())

		// No other order is affected.
		untouched, getErr := store.Get(other.ID())
		require.NoError(t, getErr)
		assert.Equal(t, order.Pending, untouched.Status())
		assert.Contains(t, notifier.events(), "order.status_failed")
	})

	t.Run("should reject invalid transition without touching remote", func(t *testing.T) {
		store, _, _ := newStoreFixture(t)
		o := makeOrder(t, order.TypeTakeaway)
		require.NoError(t, store.Create(t.Context(), o))

		err := store.UpdateStatus(t.Context(), o.ID(), order.StatusUnknown)

		require.Error(t, err)
		cached, getErr := store.Get(o.ID())
		require.NoError(t, getErr)
		assert.Equal(t, order.Pending, cached.Status())
	})

	t.Run("should fail for unknown order", func(t *testing.T) {
		store, _, _ := newStoreFixture(t)

		err := store.UpdateStatus(t.Context(), kernel.NewUUID(), order.Preparing)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("late rollback must not clobber a newer update", func(t *testing.T) {
		store, repo, _ := newStoreFixture(t)
		o := makeOrder(t, order.TypeTakeaway)
		require.NoError(t, store.Create(t.Context(), o))

		// The first update's remote call fails, but only after a second
		// update for the same order has been issued and acknowledged.
		// The failing rollback must not restore the first snapshot over
		// the second update's state.
		calls := 0
		repo.mu.Lock()
		repo.updateHook = func(*order.Order) error {
			calls++
			if calls == 1 {
				repo.mu.Lock()
				repo.updateHook = nil
				repo.mu.Unlock()
				require.NoError(t, store.UpdateStatus(t.Context(), o.ID(), order.Ready))
				return errors.New("slow network, request lost")
			}
			return nil
		}
		repo.mu.Unlock()

		err := store.UpdateStatus(t.Context(), o.ID(), order.Preparing)

		require.Error(t, err)
		cached, getErr := store.Get(o.ID())
		require.NoError(t, getErr)
		assert.Equal(t, order.Ready, cached.Status())
	})
}

func TestStore_UpdatePaymentStatus(t *testing.T) {
	t.Run("should update cache only after remote confirms", func(t *testing.T) {
		store, _, notifier := newStoreFixture(t)
		o := makeOrder(t, order.TypeDineIn)
		require.NoError(t, store.Create(t.Context(), o))

		require.NoError(t, store.UpdatePaymentStatus(t.Context(), o.ID(), order.PaymentPaid, order.PaymentMethodCard))

		cached, err := store.Get(o.ID())
		require.NoError(t, err)
		assert.Equal(t, order.PaymentPaid, cached.PaymentStatus())
		assert.Equal(t, order.PaymentMethodCard, cached.PaymentMethod())
		assert.Contains(t, notifier.events(), "order.payment_changed")
	})

	t.Run("should leave cache untouched on remote failure", func(t *testing.T) {
		store, repo, _ := newStoreFixture(t)
		o := makeOrder(t, order.TypeDineIn)
		require.NoError(t, store.Create(t.Context(), o))
		repo.failUpdate = errors.New("connection refused")

		err := store.UpdatePaymentStatus(t.Context(), o.ID(), order.PaymentPaid, order.PaymentMethodCash)

		require.Error(t, err)
		cached, getErr := store.Get(o.ID())
		require.NoError(t, getErr)
		assert.Equal(t, order.PaymentPending, cached.PaymentStatus())
	})
}

func TestStore_UpdateDeliveryStatus(t *testing.T) {
	t.Run("delivered forces completed in cache and storage", func(t *testing.T) {
		store, repo, _ := newStoreFixture(t)
		o := makeOrder(t, order.TypeDelivery)
		require.NoError(t, store.Create(t.Context(), o))

		require.NoError(t, store.UpdateDeliveryStatus(t.Context(), o.ID(), order.DeliveryDelivered))

		cached, err := store.Get(o.ID())
		require.NoError(t, err)
		assert.Equal(t, order.DeliveryDelivered, cached.DeliveryStatus())
		assert.Equal(t, order.Completed, cached.Status())

		persisted, err := repo.Get(t.Context(), o.ID())
		require.NoError(t, err)
		assert.Equal(t, order.Completed, persisted.Status())
	})

	t.Run("should reject on non-delivery order", func(t *testing.T) {
		store, _, _ := newStoreFixture(t)
		o := makeOrder(t, order.TypeDineIn)
		require.NoError(t, store.Create(t.Context(), o))

		err := store.UpdateDeliveryStatus(t.Context(), o.ID(), order.DeliveryEnRoute)

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrNotADeliveryOrder)
	})
}

func TestStore_AssignCourier(t *testing.T) {
	t.Run("should bind courier remote-first", func(t *testing.T) {
		store, repo, _ := newStoreFixture(t)
		o := makeOrder(t, order.TypeDelivery)
		require.NoError(t, store.Create(t.Context(), o))
		courierID := kernel.NewUUID()

		require.NoError(t, store.AssignCourier(t.Context(), o.ID(), courierID))

		cached, err := store.Get(o.ID())
		require.NoError(t, err)
		require.NotNil(t, cached.CourierID())
		assert.True(t, cached.CourierID().IsEqual(courierID))
		assert.Equal(t, order.DeliveryEnRoute, cached.DeliveryStatus())

		persisted, err := repo.Get(t.Context(), o.ID())
		require.NoError(t, err)
		require.NotNil(t, persisted.CourierID())
	})
}

func TestStore_Refresh(t *testing.T) {
	t.Run("should pick up remote changes", func(t *testing.T) {
		store, repo, _ := newStoreFixture(t)
		o := makeOrder(t, order.TypeTakeaway)
		require.NoError(t, store.Create(t.Context(), o))

		// Another client moved the order forward in the database.
		repo.mu.Lock()
		require.NoError(t, repo.orders[0].ChangeStatus(order.Preparing))
		repo.mu.Unlock()

		require.NoError(t, store.Refresh(t.Context()))

		cached, err := store.Get(o.ID())
		require.NoError(t, err)
		assert.Equal(t, order.Preparing, cached.Status())
	})

	t.Run("should add orders created elsewhere", func(t *testing.T) {
		store, repo, _ := newStoreFixture(t)
		elsewhere := makeOrder(t, order.TypeDelivery)
		require.NoError(t, repo.Add(t.Context(), elsewhere))

		require.NoError(t, store.Refresh(t.Context()))

		assert.Len(t, store.Orders(), 1)
	})

	t.Run("should not clobber an in-flight optimistic update", func(t *testing.T) {
		store, repo, _ := newStoreFixture(t)
		o := makeOrder(t, order.TypeTakeaway)
		require.NoError(t, store.Create(t.Context(), o))

		// A refresh lands while the status update's remote call is still
		// outstanding; the fetched (stale) record must not replace the
		// optimistic local state.
		repo.mu.Lock()
		repo.updateHook = func(*order.Order) error {
			repo.mu.Lock()
			repo.updateHook = nil
			repo.mu.Unlock()
			require.NoError(t, store.Refresh(t.Context()))
			return nil
		}
		repo.mu.Unlock()

		require.NoError(t, store.UpdateStatus(t.Context(), o.ID(), order.Preparing))

		cached, err := store.Get(o.ID())
		require.NoError(t, err)
		assert.Equal(t, order.Preparing, cached.Status())
	})

	t.Run("should be a no-op after close", func(t *testing.T) {
		store, repo, _ := newStoreFixture(t)
		elsewhere := makeOrder(t, order.TypeDelivery)
		require.NoError(t, repo.Add(t.Context(), elsewhere))

		store.Close()
		require.NoError(t, store.Refresh(t.Context()))

		assert.Empty(t, store.Orders())
	})
}

func TestStore_UnassignedDeliveryOrders(t *testing.T) {
	store, _, _ := newStoreFixture(t)
	oldest := makeOrder(t, order.TypeDelivery)
	takeaway := makeOrder(t, order.TypeTakeaway)
	newest := makeOrder(t, order.TypeDelivery)
	require.NoError(t, store.Create(t.Context(), oldest))
	require.NoError(t, store.Create(t.Context(), takeaway))
	require.NoError(t, store.Create(t.Context(), newest))
	require.NoError(t, store.AssignCourier(t.Context(), newest.ID(), kernel.NewUUID()))

	unassigned := store.UnassignedDeliveryOrders()

	require.Len(t, unassigned, 1)
	assert.True(t, unassigned[0].IsEqual(oldest))
}
