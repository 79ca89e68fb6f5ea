package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dowody/rw-sub000/internal/model"
)

type memPersister struct {
	saved map[int64][]model.CartItem
}

func newMemPersister() *memPersister {
	return &memPersister{saved: make(map[int64][]model.CartItem)}
}

func (p *memPersister) Save(_ context.Context, authID int64, items []model.CartItem) error {
	cp := make([]model.CartItem, len(items))
	copy(cp, items)
	p.saved[authID] = cp
	return nil
}

func (p *memPersister) Load(_ context.Context, authID int64) ([]model.CartItem, error) {
	return p.saved[authID], nil
}

func (p *memPersister) Delete(_ context.Context, authID int64) error {
	delete(p.saved, authID)
	return nil
}

func item(id string, price float64, qty int) model.CartItem {
	return model.CartItem{ID: id, Name: id, Price: price, Quantity: qty}
}

func TestAddIncrementsExistingEntry(t *testing.T) {
	ctx := context.Background()
	s := NewStore(newMemPersister())

	require.NoError(t, s.Add(ctx, 1, item("monthly", 49.99, 1)))
	require.NoError(t, s.Add(ctx, 1, item("monthly", 49.99, 2)))

	items := s.Items(ctx, 1)
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestNoDuplicateIDsAndTotal(t *testing.T) {
	ctx := context.Background()
	s := NewStore(newMemPersister())

	require.NoError(t, s.Add(ctx, 1, item("monthly", 49.99, 1)))
	require.NoError(t, s.Add(ctx, 1, item("yearly", 449.99, 1)))
	require.NoError(t, s.Add(ctx, 1, item("monthly", 49.99, 1)))
	require.NoError(t, s.UpdateQuantity(ctx, 1, "yearly", 2))

	seen := map[string]bool{}
	var want float64
	for _, it := range s.Items(ctx, 1) {
		require.False(t, seen[it.ID], "duplicate id %s", it.ID)
		seen[it.ID] = true
		want += it.Price * float64(it.Quantity)
	}
	assert.InDelta(t, want, s.TotalPrice(ctx, 1), 1e-9)
	assert.InDelta(t, 49.99*2+449.99*2, s.TotalPrice(ctx, 1), 1e-9)
}

func TestUpdateQuantityZeroOrNegativeRemoves(t *testing.T) {
	ctx := context.Background()
	s := NewStore(newMemPersister())

	require.NoError(t, s.Add(ctx, 1, item("monthly", 49.99, 1)))
	require.NoError(t, s.UpdateQuantity(ctx, 1, "monthly", 0))
	assert.Empty(t, s.Items(ctx, 1))

	require.NoError(t, s.Add(ctx, 1, item("monthly", 49.99, 1)))
	require.NoError(t, s.UpdateQuantity(ctx, 1, "monthly", -5))
	assert.Empty(t, s.Items(ctx, 1))
}

func TestRemoveAbsentIsNoop(t *testing.T) {
	ctx := context.Background()
	s := NewStore(newMemPersister())

	require.NoError(t, s.Add(ctx, 1, item("monthly", 49.99, 1)))
	require.NoError(t, s.Remove(ctx, 1, "yearly"))
	assert.Len(t, s.Items(ctx, 1), 1)
}

func TestEveryMutationPersists(t *testing.T) {
	ctx := context.Background()
	p := newMemPersister()
	s := NewStore(p)

	require.NoError(t, s.Add(ctx, 1, item("monthly", 49.99, 1)))
	assert.Len(t, p.saved[1], 1)

	require.NoError(t, s.UpdateQuantity(ctx, 1, "monthly", 4))
	assert.Equal(t, 4, p.saved[1][0].Quantity)

	require.NoError(t, s.Clear(ctx, 1))
	_, ok := p.saved[1]
	assert.False(t, ok, "clear should delete the persisted cart")
}

func TestRehydratesFromPersister(t *testing.T) {
	ctx := context.Background()
	p := newMemPersister()
	p.saved[7] = []model.CartItem{item("6-months", 249.99, 1)}

	s := NewStore(p)
	items := s.Items(ctx, 7)
	require.Len(t, items, 1)
	assert.Equal(t, "6-months", items[0].ID)
	assert.InDelta(t, 249.99, s.TotalPrice(ctx, 7), 1e-9)
}

func TestCartsAreIsolatedPerUser(t *testing.T) {
	ctx := context.Background()
	s := NewStore(newMemPersister())

	require.NoError(t, s.Add(ctx, 1, item("monthly", 49.99, 1)))
	require.NoError(t, s.Add(ctx, 2, item("yearly", 449.99, 1)))

	assert.Len(t, s.Items(ctx, 1), 1)
	assert.Equal(t, "monthly", s.Items(ctx, 1)[0].ID)
	assert.Equal(t, "yearly", s.Items(ctx, 2)[0].ID)
}
