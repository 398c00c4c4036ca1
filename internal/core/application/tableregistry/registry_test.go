package tableregistry_test

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"restaurant/internal/core/application/tableregistry"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTableStore struct {
	mu    sync.Mutex
	saved []*table.Table
}

func (s *fakeTableStore) Load(context.Context) ([]*table.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*table.Table, len(s.saved))
	copy(out, s.saved)
	return out, nil
}

func (s *fakeTableStore) Save(_ context.Context, tables []*table.Table) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = tables
	return nil
}

func newRegistryFixture(t *testing.T) (*tableregistry.Registry, *fakeTableStore) {
	t.Helper()
	store := &fakeTableStore{}
	registry, err := tableregistry.NewRegistry(t.Context(), store, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	return registry, store
}

func addTable(t *testing.T, registry *tableregistry.Registry, number int, section string) *table.Table {
	t.Helper()
	tbl, err := table.NewTable(kernel.NewUUID(), number, 4, section, table.Position{X: number, Y: 1})
	require.NoError(t, err)
	require.NoError(t, registry.Add(t.Context(), tbl))
	return tbl
}

func TestRegistry_Add(t *testing.T) {
	t.Run("should register and persist", func(t *testing.T) {
		registry, store := newRegistryFixture(t)

		addTable(t, registry, 1, "salon")

		assert.Len(t, registry.Tables(), 1)
		assert.Len(t, store.saved, 1)
	})

	t.Run("should reject duplicate id", func(t *testing.T) {
		registry, _ := newRegistryFixture(t)
		tbl := addTable(t, registry, 1, "salon")

		require.Error(t, registry.Add(t.Context(), tbl))
		assert.Len(t, registry.Tables(), 1)
	})
}

func TestRegistry_Queries(t *testing.T) {
	registry, _ := newRegistryFixture(t)
	salon := addTable(t, registry, 1, "salon")
	terrace := addTable(t, registry, 2, "terrace")
	occupied := addTable(t, registry, 3, "terrace")
	require.NoError(t, registry.AssignOrder(t.Context(), occupied.ID(), kernel.NewUUID()))

	t.Run("available tables", func(t *testing.T) {
		available := registry.AvailableTables()

		require.Len(t, available, 2)
	})

	t.Run("tables by section", func(t *testing.T) {
		got := registry.TablesBySection("terrace")

		require.Len(t, got, 2)
		assert.True(t, got[0].IsEqual(terrace) || got[1].IsEqual(terrace))
	})

	t.Run("get", func(t *testing.T) {
		got, err := registry.Get(salon.ID())

		require.NoError(t, err)
		assert.Equal(t, 1, got.Number())
	})

	t.Run("get unknown fails", func(t *testing.T) {
		_, err := registry.Get(kernel.NewUUID())

		require.Error(t, err)
	})
}

func TestRegistry_TableLifecycleScenario(t *testing.T) {
	// Available -> occupy via order -> delete fails -> clear -> delete succeeds.
	registry, _ := newRegistryFixture(t)
	tbl := addTable(t, registry, 1, "salon")
	orderID := kernel.NewUUID()

	require.NoError(t, registry.AssignOrder(t.Context(), tbl.ID(), orderID))
	got, err := registry.Get(tbl.ID())
	require.NoError(t, err)
	assert.Equal(t, table.Occupied, got.Status())
	assert.True(t, got.OrderID().IsEqual(orderID))

	err = registry.Delete(t.Context(), tbl.ID())
	require.Error(t, err)
	assert.ErrorIs(t, err, table.ErrTableIsOccupied)
	assert.Len(t, registry.Tables(), 1)

	require.NoError(t, registry.Clear(t.Context(), tbl.ID()))
	got, err = registry.Get(tbl.ID())
	require.NoError(t, err)
	assert.Equal(t, table.Available, got.Status())
	assert.Nil(t, got.OrderID())

	require.NoError(t, registry.Delete(t.Context(), tbl.ID()))
	assert.Empty(t, registry.Tables())
}

func TestRegistry_ChangeStatus(t *testing.T) {
	registry, store := newRegistryFixture(t)
	tbl := addTable(t, registry, 1, "salon")

	require.NoError(t, registry.ChangeStatus(t.Context(), tbl.ID(), table.Reserved, "Zeynep"))

	got, err := registry.Get(tbl.ID())
	require.NoError(t, err)
	assert.Equal(t, table.Reserved, got.Status())
	assert.Equal(t, "Zeynep", got.CustomerName())

	store.mu.Lock()
	defer store.mu.Unlock()
	require.Len(t, store.saved, 1)
	assert.Equal(t, table.Reserved, store.saved[0].Status())
}

func TestRegistry_Update(t *testing.T) {
	registry, _ := newRegistryFixture(t)
	tbl := addTable(t, registry, 1, "salon")

	require.NoError(t, registry.Update(t.Context(), tbl.ID(), 7, 8, "terrace", table.Position{X: 4, Y: 4}))

	got, err := registry.Get(tbl.ID())
	require.NoError(t, err)
	assert.Equal(t, 7, got.Number())
	assert.Equal(t, 8, got.Capacity())
	assert.Equal(t, "terrace", got.Section())
}

func TestRegistry_Rehydration(t *testing.T) {
	store := &fakeTableStore{}
	first, err := tableregistry.NewRegistry(context.Background(), store, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	tbl, err := table.NewTable(kernel.NewUUID(), 1, 4, "salon", table.Position{})
	require.NoError(t, err)
	require.NoError(t, first.Add(context.Background(), tbl))

	second, err := tableregistry.NewRegistry(context.Background(), store, slog.New(slog.DiscardHandler))
	require.NoError(t, err)

	loaded := second.Tables()
	require.Len(t, loaded, 1)
	assert.Equal(t, 1, loaded[0].Number())
}
