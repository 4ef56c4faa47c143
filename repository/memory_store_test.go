package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_GetSet(t *testing.T) {
	store := NewMemoryStore()

	_, ok := store.Get("currentAge")
	assert.False(t, ok)

	require.NoError(t, store.Set("currentAge", "35"))

	val, ok := store.Get("currentAge")
	assert.True(t, ok)
	assert.Equal(t, "35", val)
}
