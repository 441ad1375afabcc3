package address

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andreasstove999/storefront/internal/kv"
)

func newTestBook() *Book {
	b := NewBook(kv.NewMemory())
	next := int64(0)
	b.nowMillis = func() int64 {
		next++
		return next
	}
	return b
}

func TestBookAddThenListRoundTrips(t *testing.T) {
	b := newTestBook()
	ctx := context.Background()

	saved, err := b.Add(ctx, SavedAddress{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Phone:   "0123456789",
		Address: "12 Main St",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), saved.ID)

	list, err := b.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, saved, list[0])
}

func TestBookListEmpty(t *testing.T) {
	b := newTestBook()

	list, err := b.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestBookPreservesOrder(t *testing.T) {
	b := newTestBook()
	ctx := context.Background()

	for _, name := range []string{"first", "second", "third"} {
		_, err := b.Add(ctx, SavedAddress{Name: name})
		require.NoError(t, err)
	}

	list, err := b.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "first", list[0].Name)
	assert.Equal(t, "second", list[1].Name)
	assert.Equal(t, "third", list[2].Name)
}

func TestBookRemove(t *testing.T) {
	b := newTestBook()
	ctx := context.Background()

	a1, err := b.Add(ctx, SavedAddress{Name: "keep"})
	require.NoError(t, err)
	a2, err := b.Add(ctx, SavedAddress{Name: "drop"})
	require.NoError(t, err)

	require.NoError(t, b.Remove(ctx, a2.ID))

	list, err := b.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, a1.ID, list[0].ID)

	// removing an unknown id is a no-op
	require.NoError(t, b.Remove(ctx, 12345))
}

func TestBookGet(t *testing.T) {
	b := newTestBook()
	ctx := context.Background()

	saved, err := b.Add(ctx, SavedAddress{Name: "Jane"})
	require.NoError(t, err)

	got, err := b.Get(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved, got)

	_, err = b.Get(ctx, 999)
	assert.ErrorIs(t, err, kv.ErrNotFound)
}

func TestBookExplicitIDKept(t *testing.T) {
	b := newTestBook()

	saved, err := b.Add(context.Background(), SavedAddress{ID: 1700000000000, Name: "Jane"})
	require.NoError(t, err)
	assert.Equal(t, int64(1700000000000), saved.ID)
}
