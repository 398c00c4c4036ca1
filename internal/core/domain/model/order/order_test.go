package order_test

import (
	"testing"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMoney(t *testing.T, amount int64) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoney(amount)
	require.NoError(t, err)
	return m
}

func mustLineItem(t *testing.T, name string, unitPrice int64, quantity int) order.LineItem {
	t.Helper()
	item, err := order.NewLineItem(kernel.NewUUID(), name, mustMoney(t, unitPrice), quantity, "")
	require.NoError(t, err)
	return item
}

func newDeliveryOrder(t *testing.T) *order.Order {
	t.Helper()
	items := []order.LineItem{mustLineItem(t, "Adana Kebap", 13000, 1)}
	o, err := order.NewOrder(kernel.NewUUID(), order.TypeDelivery, items, nil, "Ayşe", "Istiklal Cd. 12")
	require.NoError(t, err)
	return o
}

func newDineInOrder(t *testing.T) *order.Order {
	t.Helper()
	tableID := kernel.NewUUID()
	items := []order.LineItem{mustLineItem(t, "Mercimek Çorbası", 4500, 2)}
	o, err := order.NewOrder(kernel.NewUUID(), order.TypeDineIn, items, &tableID, "", "")
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	validID := kernel.NewUUID()

	t.Run("should create valid takeaway order with computed total", func(t *testing.T) {
		items := []order.LineItem{
			mustLineItem(t, "Lahmacun", 6000, 2),
			mustLineItem(t, "Ayran", 1500, 1),
		}

		o, err := order.NewOrder(validID, order.TypeTakeaway, items, nil, "Mehmet", "")

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(validID))
		assert.Equal(t, order.TypeTakeaway, o.Type())
		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, order.PaymentPending, o.PaymentStatus())
		assert.Equal(t, order.PaymentMethodUnspecified, o.PaymentMethod())
		assert.Equal(t, order.DeliveryNotApplicable, o.DeliveryStatus())
		assert.Equal(t, int64(13500), o.Total().Amount())
		assert.Equal(t, "Mehmet", o.CustomerName())
		assert.Nil(t, o.TableID())
		assert.Nil(t, o.CourierID())
		assert.Len(t, o.Items(), 2)
	})

	t.Run("should start delivery order with delivery status pending", func(t *testing.T) {
		o := newDeliveryOrder(t)

		assert.True(t, o.IsDelivery())
		assert.Equal(t, order.DeliveryPending, o.DeliveryStatus())
		assert.Equal(t, "Istiklal Cd. 12", o.DeliveryAddress())
	})

	t.Run("should bind table on dine-in order", func(t *testing.T) {
		o := newDineInOrder(t)

		require.NotNil(t, o.TableID())
		assert.Equal(t, order.DeliveryNotApplicable, o.DeliveryStatus())
	})

	t.Run("should fail with no items", func(t *testing.T) {
		o, err := order.NewOrder(validID, order.TypeTakeaway, nil, nil, "", "")

		require.Error(t, err)
		assert.Nil(t, o)
		assert.ErrorIs(t, err, order.ErrItemsAreRequired)
	})

	t.Run("should fail dine-in order without table", func(t *testing.T) {
		items := []order.LineItem{mustLineItem(t, "Pide", 9000, 1)}

		o, err := order.NewOrder(validID, order.TypeDineIn, items, nil, "", "")

		require.Error(t, err)
		assert.Nil(t, o)
		assert.ErrorIs(t, err, order.ErrTableIsRequired)
	})

	t.Run("should fail delivery order without address", func(t *testing.T) {
		items := []order.LineItem{mustLineItem(t, "Pide", 9000, 1)}

		o, err := order.NewOrder(validID, order.TypeDelivery, items, nil, "", "")

		require.Error(t, err)
		assert.Nil(t, o)
		assert.ErrorIs(t, err, order.ErrDeliveryAddressIsRequired)
	})

	t.Run("should fail with invalid UUID", func(t *testing.T) {
		var invalidID kernel.UUID
		items := []order.LineItem{mustLineItem(t, "Pide", 9000, 1)}

		o, err := order.NewOrder(invalidID, order.TypeTakeaway, items, nil, "", "")

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "UUID must be created")
	})

	t.Run("should fail with unconstructed line item", func(t *testing.T) {
		items := []order.LineItem{{}}

		o, err := order.NewOrder(validID, order.TypeTakeaway, items, nil, "", "")

		require.Error(t, err)
		assert.Nil(t, o)
		assert.ErrorIs(t, err, order.ErrLineItemIsNotConstructed)
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("should pass for constructed order", func(t *testing.T) {
		o := newDineInOrder(t)

		require.NoError(t, o.Validate())
	})

	t.Run("should fail for nil order", func(t *testing.T) {
		var o *order.Order

		err := o.Validate()

		require.Error(t, err)
		assert.Equal(t, order.ErrOrderIsNotConstructed, err)
	})

	t.Run("should fail for zero-value order", func(t *testing.T) {
		o := &order.Order{}

		err := o.Validate()

		require.Error(t, err)
		assert.Equal(t, order.ErrOrderIsNotConstructed, err)
	})
}

func TestOrder_ChangeStatus(t *testing.T) {
	t.Run("should walk the happy path to completed", func(t *testing.T) {
		o := newDineInOrder(t)

		require.NoError(t, o.ChangeStatus(order.Preparing))
		require.NoError(t, o.ChangeStatus(order.Ready))
		require.NoError(t, o.ChangeStatus(order.Completed))
		assert.Equal(t, order.Completed, o.Status())
	})

	t.Run("should allow skipping preparing", func(t *testing.T) {
		o := newDineInOrder(t)

		require.NoError(t, o.ChangeStatus(order.Ready))
	})

	t.Run("should allow cancelling from any active status", func(t *testing.T) {
		for _, setup := range []order.Status{order.Pending, order.Preparing, order.Ready} {
			o := newDineInOrder(t)
			if setup != order.Pending {
				require.NoError(t, o.ChangeStatus(setup))
			}

			require.NoError(t, o.ChangeStatus(order.Cancelled))
			assert.Equal(t, order.Cancelled, o.Status())
		}
	})

	t.Run("should reject backward transition", func(t *testing.T) {
		o := newDineInOrder(t)
		require.NoError(t, o.ChangeStatus(order.Ready))

		err := o.ChangeStatus(order.Preparing)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot transition from Ready to Preparing")
	})

	t.Run("should reject transitions out of terminal status", func(t *testing.T) {
		o := newDineInOrder(t)
		require.NoError(t, o.ChangeStatus(order.Cancelled))

		err := o.ChangeStatus(order.Preparing)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "terminal")
	})

	t.Run("should refresh updatedAt on transition", func(t *testing.T) {
		o := newDineInOrder(t)
		before := o.UpdatedAt()
		time.Sleep(time.Millisecond)

		require.NoError(t, o.ChangeStatus(order.Preparing))

		assert.True(t, o.UpdatedAt().After(before))
	})
}

func TestOrder_ChangePayment(t *testing.T) {
	t.Run("should record method when paid", func(t *testing.T) {
		o := newDineInOrder(t)

		err := o.ChangePayment(order.PaymentPaid, order.PaymentMethodCard)

		require.NoError(t, err)
		assert.Equal(t, order.PaymentPaid, o.PaymentStatus())
		assert.Equal(t, order.PaymentMethodCard, o.PaymentMethod())
	})

	t.Run("should reject moving back from paid", func(t *testing.T) {
		o := newDineInOrder(t)
		require.NoError(t, o.ChangePayment(order.PaymentPaid, order.PaymentMethodCash))

		err := o.ChangePayment(order.PaymentPending, order.PaymentMethodCash)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot move back from Paid")
	})

	t.Run("should reject unknown payment status", func(t *testing.T) {
		o := newDineInOrder(t)

		err := o.ChangePayment(order.PaymentStatusUnknown, order.PaymentMethodCash)

		require.Error(t, err)
	})
}

func TestOrder_ChangeDeliveryStatus(t *testing.T) {
	t.Run("should advance pending to en route", func(t *testing.T) {
		o := newDeliveryOrder(t)

		require.NoError(t, o.ChangeDeliveryStatus(order.DeliveryEnRoute))
		assert.Equal(t, order.DeliveryEnRoute, o.DeliveryStatus())
	})

	t.Run("should force completed when delivered", func(t *testing.T) {
		o := newDeliveryOrder(t)
		require.NoError(t, o.ChangeDeliveryStatus(order.DeliveryEnRoute))

		require.NoError(t, o.ChangeDeliveryStatus(order.DeliveryDelivered))

		assert.Equal(t, order.DeliveryDelivered, o.DeliveryStatus())
		assert.Equal(t, order.Completed, o.Status())
	})

	t.Run("should allow delivered directly from pending", func(t *testing.T) {
		o := newDeliveryOrder(t)

		require.NoError(t, o.ChangeDeliveryStatus(order.DeliveryDelivered))
		assert.Equal(t, order.Completed, o.Status())
	})

	t.Run("should reject on non-delivery order", func(t *testing.T) {
		o := newDineInOrder(t)

		err := o.ChangeDeliveryStatus(order.DeliveryEnRoute)

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrNotADeliveryOrder)
	})

	t.Run("should reject backward transition", func(t *testing.T) {
		o := newDeliveryOrder(t)
		require.NoError(t, o.ChangeDeliveryStatus(order.DeliveryEnRoute))

		err := o.ChangeDeliveryStatus(order.DeliveryPending)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot transition from EnRoute to Pending")
	})

	t.Run("should reject on cancelled order", func(t *testing.T) {
		o := newDeliveryOrder(t)
		require.NoError(t, o.ChangeStatus(order.Cancelled))

		err := o.ChangeDeliveryStatus(order.DeliveryEnRoute)

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrOrderIsFinalized)
	})
}

func TestOrder_AssignCourier(t *testing.T) {
	t.Run("should bind courier and move delivery to en route", func(t *testing.T) {
		o := newDeliveryOrder(t)
		courierID := kernel.NewUUID()

		err := o.AssignCourier(courierID)

		require.NoError(t, err)
		require.NotNil(t, o.CourierID())
		assert.True(t, o.CourierID().IsEqual(courierID))
		assert.Equal(t, order.DeliveryEnRoute, o.DeliveryStatus())
	})

	t.Run("should keep delivery status when already en route", func(t *testing.T) {
		o := newDeliveryOrder(t)
		require.NoError(t, o.AssignCourier(kernel.NewUUID()))
		replacement := kernel.NewUUID()

		require.NoError(t, o.AssignCourier(replacement))

		assert.True(t, o.CourierID().IsEqual(replacement))
		assert.Equal(t, order.DeliveryEnRoute, o.DeliveryStatus())
	})

	t.Run("should reject on non-delivery order", func(t *testing.T) {
		o := newDineInOrder(t)

		err := o.AssignCourier(kernel.NewUUID())

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrNotADeliveryOrder)
	})

	t.Run("should reject on completed order", func(t *testing.T) {
		o := newDeliveryOrder(t)
		require.NoError(t, o.ChangeDeliveryStatus(order.DeliveryDelivered))

		err := o.AssignCourier(kernel.NewUUID())

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrOrderIsFinalized)
	})

	t.Run("should reject invalid courier id", func(t *testing.T) {
		o := newDeliveryOrder(t)
		var invalidID kernel.UUID

		err := o.AssignCourier(invalidID)

		require.Error(t, err)
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("should restore full lifecycle state", func(t *testing.T) {
		id := kernel.NewUUID()
		courierID := kernel.NewUUID()
		items := []order.LineItem{mustLineItem(t, "Iskender", 18000, 1)}
		createdAt := time.Now().UTC().Add(-time.Hour)
		updatedAt := time.Now().UTC().Add(-time.Minute)

		o, err := order.RestoreOrder(
			id, order.TypeDelivery, items,
			order.Preparing, order.PaymentPaid, order.PaymentMethodOnline,
			order.DeliveryEnRoute, nil, "Fatma", "Bağdat Cd. 7", &courierID,
			createdAt, updatedAt,
		)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Equal(t, order.Preparing, o.Status())
		assert.Equal(t, order.PaymentPaid, o.PaymentStatus())
		assert.Equal(t, order.DeliveryEnRoute, o.DeliveryStatus())
		assert.True(t, o.CourierID().IsEqual(courierID))
		assert.Equal(t, int64(18000), o.Total().Amount())
		assert.Equal(t, createdAt, o.CreatedAt())
		assert.Equal(t, updatedAt, o.UpdatedAt())
	})

	t.Run("should reject delivery status on takeaway order", func(t *testing.T) {
		items := []order.LineItem{mustLineItem(t, "Iskender", 18000, 1)}

		o, err := order.RestoreOrder(
			kernel.NewUUID(), order.TypeTakeaway, items,
			order.Pending, order.PaymentPending, order.PaymentMethodUnspecified,
			order.DeliveryEnRoute, nil, "", "", nil,
			time.Now().UTC(), time.Now().UTC(),
		)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.ErrorIs(t, err, order.ErrNotADeliveryOrder)
	})

	t.Run("should reject courier on dine-in order", func(t *testing.T) {
		tableID := kernel.NewUUID()
		courierID := kernel.NewUUID()
		items := []order.LineItem{mustLineItem(t, "Iskender", 18000, 1)}

		o, err := order.RestoreOrder(
			kernel.NewUUID(), order.TypeDineIn, items,
			order.Pending, order.PaymentPending, order.PaymentMethodUnspecified,
			order.DeliveryNotApplicable, &tableID, "", "", &courierID,
			time.Now().UTC(), time.Now().UTC(),
		)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.ErrorIs(t, err, order.ErrNotADeliveryOrder)
	})
}

func TestOrder_Clone(t *testing.T) {
	t.Run("should produce an independent deep copy", func(t *testing.T) {
		o := newDeliveryOrder(t)
		require.NoError(t, o.AssignCourier(kernel.NewUUID()))

		snapshot := o.Clone()
		require.NoError(t, o.ChangeDeliveryStatus(order.DeliveryDelivered))

		assert.Equal(t, order.DeliveryEnRoute, snapshot.DeliveryStatus())
		assert.NotEqual(t, snapshot.DeliveryStatus(), o.DeliveryStatus())
		assert.True(t, snapshot.IsEqual(o))
	})

	t.Run("should return nil for nil order", func(t *testing.T) {
		var o *order.Order

		assert.Nil(t, o.Clone())
	})
}

func TestOrder_EqualState(t *testing.T) {
	t.Run("clone equals its source", func(t *testing.T) {
		o := newDeliveryOrder(t)

		assert.True(t, o.EqualState(o.Clone()))
	})

	t.Run("mutated order differs from snapshot", func(t *testing.T) {
		o := newDeliveryOrder(t)
		snapshot := o.Clone()

		require.NoError(t, o.ChangeStatus(order.Preparing))

		assert.False(t, o.EqualState(snapshot))
	})

	t.Run("nil other is never equal", func(t *testing.T) {
		o := newDeliveryOrder(t)

		assert.False(t, o.EqualState(nil))
	})
}
