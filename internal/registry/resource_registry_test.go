package registry

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/axondoc/internal/models"
)

func TestResourceRegistry_Defaults(t *testing.T) {
	registry := NewDefaultResourceRegistry()

	for _, token := range []models.TypeToken{"echo.Context", "*gin.Context", "*fiber.Ctx", "context.Context", "http.ResponseWriter"} {
		assert.True(t, registry.Binds(token), token)
	}
	for _, token := range []models.TypeToken{"int", "string", "*http.Request", "Context", ""} {
		assert.False(t, registry.Binds(token), token)
	}
}

func TestResourceRegistry_RegisterType(t *testing.T) {
	registry := NewResourceRegistry()

	require.NoError(t, registry.RegisterType("gorm.DB"))
	require.NoError(t, registry.RegisterType("ProductStore"))

	assert.True(t, registry.Binds("*gorm.DB"))
	assert.False(t, registry.Binds("*sql.DB"))

	// bare registrations match any selector
	assert.True(t, registry.Binds("ProductStore"))
	assert.True(t, registry.Binds("*store.ProductStore"))
	assert.True(t, registry.Binds("[]ProductStore"))

	binding, ok := registry.Lookup("*gorm.DB")
	require.True(t, ok)
	assert.Equal(t, "query", binding.Capability)
}

func TestResourceRegistry_GenericAndUnion(t *testing.T) {
	registry := NewResourceRegistry()
	require.NoError(t, registry.RegisterType("Repository"))

	assert.True(t, registry.Binds("*Repository[User]"))
	assert.True(t, registry.Binds("Repository|string"))
	assert.False(t, registry.Binds("string|Repository"))
}

func TestResourceRegistry_RejectsEmptyName(t *testing.T) {
	registry := NewResourceRegistry()

	err := registry.RegisterType("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resource type cannot be empty")

	err = registry.RegisterType("*")
	assert.Error(t, err)
}

func TestResourceRegistry_ClearAndReset(t *testing.T) {
	registry := NewDefaultResourceRegistry()
	require.NoError(t, registry.RegisterType("gorm.DB"))

	registry.Reset()
	assert.False(t, registry.Binds("gorm.DB"))
	assert.True(t, registry.Binds("echo.Context"))
	assert.Len(t, registry.List(), len(BuiltinResources))

	registry.Clear()
	assert.Empty(t, registry.List())
	assert.False(t, registry.Binds("echo.Context"))
}

func TestResourceRegistry_NilIsEmpty(t *testing.T) {
	var registry *ResourceRegistry
	assert.False(t, registry.Binds("echo.Context"))
}

func TestResourceRegistry_Concurrent(t *testing.T) {
	registry := NewDefaultResourceRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				_ = registry.RegisterType("Store")
				return
			}
			registry.Binds("*store.Store")
		}(i)
	}
	wg.Wait()

	assert.True(t, registry.Binds("Store"))
}
