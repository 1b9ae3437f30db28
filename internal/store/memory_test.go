package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySaveGetDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory[string](0)

	_, err := m.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.Save(ctx, "a", "crane"))
	v, err := m.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "crane", v)
	assert.Equal(t, 1, m.Len())

	require.NoError(t, m.Delete(ctx, "a"))
	_, err = m.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewMemory[int](time.Minute)
	m.now = func() time.Time { return now }

	require.NoError(t, m.Save(ctx, "old", 1))
	now = now.Add(2 * time.Minute)
	require.NoError(t, m.Save(ctx, "new", 2))

	_, err := m.Get(ctx, "old")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, m.Sweep())
	assert.Equal(t, 1, m.Len())

	v, err := m.Get(ctx, "new")
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}
