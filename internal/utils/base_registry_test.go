package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseRegistry_RegisterAndGet(t *testing.T) {
	registry := NewBaseRegistry[string, int]("test", "test key", "value")

	require.NoError(t, registry.Register("a", 1))
	value, ok := registry.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, value)
	assert.True(t, registry.Has("a"))
	assert.Equal(t, 1, registry.Size())

	_, err := registry.GetOrError("missing")
	assert.ErrorContains(t, err, "test key 'missing' is not registered")
}

func TestBaseRegistry_Validators(t *testing.T) {
	registry := NewBaseRegistry[string, int]("test", "test key", "value")
	registry.SetValidator(ChainValidators(
		NotEmptyKeyValidator[int]("test key"),
		NoDuplicateValidator[string, int]("test key"),
	))

	assert.ErrorContains(t, registry.Register("", 1), "test registry: test key cannot be empty")
	require.NoError(t, registry.Register("a", 1))
	assert.ErrorContains(t, registry.Register("a", 2), "already registered")
}

func TestBaseRegistry_ClearWithReset(t *testing.T) {
	registry := NewBaseRegistry[string, int]("test", "key", "value")
	require.NoError(t, registry.Register("a", 1))

	registry.ClearWithReset(map[string]int{"b": 2})
	assert.False(t, registry.Has("a"))
	assert.Equal(t, []string{"b"}, registry.List())

	registry.Clear()
	assert.Zero(t, registry.Size())
}
