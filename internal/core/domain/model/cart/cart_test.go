package cart_test

import (
	"testing"
	"time"

	"restaurant/internal/core/domain/model/cart"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newItem(t *testing.T, name string, unitPrice int64, quantity int, note string) order.LineItem {
	t.Helper()
	money, err := kernel.NewMoney(unitPrice)
	require.NoError(t, err)
	item, err := order.NewLineItem(kernel.NewUUID(), name, money, quantity, note)
	require.NoError(t, err)
	return item
}

func newCart(t *testing.T) *cart.Cart {
	t.Helper()
	c, err := cart.NewCart("session-1")
	require.NoError(t, err)
	return c
}

func TestNewCart(t *testing.T) {
	t.Run("should create empty cart", func(t *testing.T) {
		c, err := cart.NewCart("session-1")

		require.NoError(t, err)
		require.NoError(t, c.Validate())
		assert.Equal(t, "session-1", c.SessionID())
		assert.True(t, c.IsEmpty())
		assert.Nil(t, c.TableID())
	})

	t.Run("should fail without session key", func(t *testing.T) {
		c, err := cart.NewCart("")

		require.Error(t, err)
		assert.Nil(t, c)
		assert.ErrorIs(t, err, cart.ErrSessionIsRequired)
	})
}

func TestCart_AddItem(t *testing.T) {
	t.Run("should append new lines", func(t *testing.T) {
		c := newCart(t)

		require.NoError(t, c.AddItem(newItem(t, "Lahmacun", 6000, 2, "")))
		require.NoError(t, c.AddItem(newItem(t, "Ayran", 1500, 1, "")))

		assert.Len(t, c.Items(), 2)
		assert.False(t, c.IsEmpty())
	})

	t.Run("should merge quantity for same product and note", func(t *testing.T) {
		c := newCart(t)
		item := newItem(t, "Lahmacun", 6000, 2, "")
		require.NoError(t, c.AddItem(item))

		again, err := order.NewLineItem(item.ProductID(), item.Name(), item.UnitPrice(), 3, "")
		require.NoError(t, err)
		require.NoError(t, c.AddItem(again))

		items := c.Items()
		require.Len(t, items, 1)
		assert.Equal(t, 5, items[0].Quantity())
	})

	t.Run("should keep separate lines for different notes", func(t *testing.T) {
		c := newCart(t)
		item := newItem(t, "Lahmacun", 6000, 1, "")
		require.NoError(t, c.AddItem(item))

		spicy, err := order.NewLineItem(item.ProductID(), item.Name(), item.UnitPrice(), 1, "extra spicy")
		require.NoError(t, err)
		require.NoError(t, c.AddItem(spicy))

		assert.Len(t, c.Items(), 2)
	})

	t.Run("should reject unconstructed item", func(t *testing.T) {
		c := newCart(t)
		var item order.LineItem

		require.Error(t, c.AddItem(item))
	})
}

func TestCart_Total(t *testing.T) {
	t.Run("should sum subtotals", func(t *testing.T) {
		c := newCart(t)
		require.NoError(t, c.AddItem(newItem(t, "Kebap", 5000, 2, "")))
		require.NoError(t, c.AddItem(newItem(t, "Çorba", 3000, 1, "")))

		total, err := c.Total()

		require.NoError(t, err)
		assert.Equal(t, int64(13000), total.Amount())
		assert.Equal(t, "₺130,00", total.Format())
	})

	t.Run("empty cart totals zero", func(t *testing.T) {
		c := newCart(t)

		total, err := c.Total()

		require.NoError(t, err)
		assert.True(t, total.IsZero())
	})
}

func TestCart_RemoveItem(t *testing.T) {
	t.Run("should drop all lines of the product", func(t *testing.T) {
		c := newCart(t)
		item := newItem(t, "Lahmacun", 6000, 1, "")
		require.NoError(t, c.AddItem(item))
		require.NoError(t, c.AddItem(newItem(t, "Ayran", 1500, 1, "")))

		require.NoError(t, c.RemoveItem(item.ProductID()))

		items := c.Items()
		require.Len(t, items, 1)
		assert.Equal(t, "Ayran", items[0].Name())
	})

	t.Run("should fail for absent product", func(t *testing.T) {
		c := newCart(t)

		err := c.RemoveItem(kernel.NewUUID())

		require.Error(t, err)
		assert.ErrorIs(t, err, cart.ErrItemNotFound)
	})
}

func TestCart_SetQuantity(t *testing.T) {
	t.Run("should replace quantity", func(t *testing.T) {
		c := newCart(t)
		item := newItem(t, "Lahmacun", 6000, 1, "")
		require.NoError(t, c.AddItem(item))

		require.NoError(t, c.SetQuantity(item.ProductID(), 4))

		assert.Equal(t, 4, c.Items()[0].Quantity())
	})

	t.Run("should remove line on zero quantity", func(t *testing.T) {
		c := newCart(t)
		item := newItem(t, "Lahmacun", 6000, 1, "")
		require.NoError(t, c.AddItem(item))

		require.NoError(t, c.SetQuantity(item.ProductID(), 0))

		assert.True(t, c.IsEmpty())
	})

	t.Run("should fail for absent product", func(t *testing.T) {
		c := newCart(t)

		require.Error(t, c.SetQuantity(kernel.NewUUID(), 2))
	})
}

func TestCart_SetNote(t *testing.T) {
	t.Run("should replace kitchen note", func(t *testing.T) {
		c := newCart(t)
		item := newItem(t, "Lahmacun", 6000, 1, "")
		require.NoError(t, c.AddItem(item))

		require.NoError(t, c.SetNote(item.ProductID(), "no onions"))

		assert.Equal(t, "no onions", c.Items()[0].Note())
	})
}

func TestCart_BindAndClear(t *testing.T) {
	t.Run("should bind table and customer", func(t *testing.T) {
		c := newCart(t)
		tableID := kernel.NewUUID()

		require.NoError(t, c.Bind(&tableID, "Zeynep"))

		require.NotNil(t, c.TableID())
		assert.True(t, c.TableID().IsEqual(tableID))
		assert.Equal(t, "Zeynep", c.CustomerName())
	})

	t.Run("clear should drop items and bindings", func(t *testing.T) {
		c := newCart(t)
		tableID := kernel.NewUUID()
		require.NoError(t, c.AddItem(newItem(t, "Lahmacun", 6000, 1, "")))
		require.NoError(t, c.Bind(&tableID, "Zeynep"))

		require.NoError(t, c.Clear())

		assert.True(t, c.IsEmpty())
		assert.Nil(t, c.TableID())
		assert.Empty(t, c.CustomerName())
	})
}

func TestRestoreCart(t *testing.T) {
	t.Run("should restore items and bindings", func(t *testing.T) {
		tableID := kernel.NewUUID()
		items := []order.LineItem{newItem(t, "Kebap", 5000, 2, "")}
		updatedAt := time.Now().UTC().Add(-time.Minute)

		c, err := cart.RestoreCart("session-1", items, &tableID, "Zeynep", updatedAt)

		require.NoError(t, err)
		require.NoError(t, c.Validate())
		assert.Len(t, c.Items(), 1)
		assert.True(t, c.TableID().IsEqual(tableID))
		assert.Equal(t, "Zeynep", c.CustomerName())
		assert.Equal(t, updatedAt, c.UpdatedAt())
	})

	t.Run("should reject unconstructed item", func(t *testing.T) {
		items := []order.LineItem{{}}

		c, err := cart.RestoreCart("session-1", items, nil, "", time.Now().UTC())

		require.Error(t, err)
		assert.Nil(t, c)
	})
}
