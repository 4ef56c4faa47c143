package repository

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStore_GetSetWithPrefix(t *testing.T) {
	mr := miniredis.RunT(t)
	store := NewRedisStore(mr.Addr(), "retirement:")
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Ping(context.Background()))

	_, ok := store.Get("currentAge")
	assert.False(t, ok)

	require.NoError(t, store.Set("currentAge", "35"))

	val, ok := store.Get("currentAge")
	assert.True(t, ok)
	assert.Equal(t, "35", val)

	raw, err := mr.Get("retirement:currentAge")
	require.NoError(t, err)
	assert.Equal(t, "35", raw)
}

func TestRedisStore_UnavailableServer(t *testing.T) {
	mr := miniredis.RunT(t)
	store := NewRedisStore(mr.Addr(), "")
	t.Cleanup(func() { _ = store.Close() })
	mr.Close()

	assert.Error(t, store.Ping(context.Background()))
	assert.Error(t, store.Set("currentAge", "35"))

	_, ok := store.Get("currentAge")
	assert.False(t, ok)
}
