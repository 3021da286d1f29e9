package registry

import (
	"strings"

	"github.com/toyz/axondoc/internal/models"
	"github.com/toyz/axondoc/internal/utils"
)

// ResourceBinding describes a type that binds a whole resource or framework
// context rather than a single scalar input
type ResourceBinding struct {
	// TypeName is the type as written in source, with its package selector
	// ("gorm.DB") or without one ("Store")
	TypeName    string
	PackagePath string
	// Capability names what the type provides, e.g. "query" or "context"
	Capability string
}

// BuiltinResources are the framework carriers every handler may receive
var BuiltinResources = []ResourceBinding{
	{TypeName: "echo.Context", PackagePath: "github.com/labstack/echo/v4", Capability: "context"},
	{TypeName: "gin.Context", PackagePath: "github.com/gin-gonic/gin", Capability: "context"},
	{TypeName: "fiber.Ctx", PackagePath: "github.com/gofiber/fiber/v2", Capability: "context"},
	{TypeName: "context.Context", PackagePath: "context", Capability: "context"},
	{TypeName: "http.ResponseWriter", PackagePath: "net/http", Capability: "response"},
}

// ResourceRegistry answers the "has a query capability" check for declared
// parameter types. It is safe for concurrent use.
type ResourceRegistry struct {
	bindings *utils.BaseRegistry[string, ResourceBinding]
}

// NewResourceRegistry creates an empty resource registry
func NewResourceRegistry() *ResourceRegistry {
	bindings := utils.NewBaseRegistry[string, ResourceBinding]("resource", "resource type", "binding")
	bindings.SetValidator(utils.NotEmptyKeyValidator[ResourceBinding]("resource type"))
	return &ResourceRegistry{bindings: bindings}
}

// NewDefaultResourceRegistry creates a registry holding BuiltinResources
func NewDefaultResourceRegistry() *ResourceRegistry {
	registry := NewResourceRegistry()
	for _, binding := range BuiltinResources {
		// builtin names are never empty
		_ = registry.Register(binding)
	}
	return registry
}

// Register adds a binding keyed by its normalised type name
func (r *ResourceRegistry) Register(binding ResourceBinding) error {
	return r.bindings.Register(normalizeTypeName(binding.TypeName), binding)
}

// RegisterType adds a query-capable resource type by name
func (r *ResourceRegistry) RegisterType(typeName string) error {
	return r.Register(ResourceBinding{TypeName: typeName, Capability: "query"})
}

// Binds reports whether token names a registered resource type. Pointer and
// slice markers are ignored; a selector-qualified token also matches a
// registration made without the selector.
func (r *ResourceRegistry) Binds(token models.TypeToken) bool {
	_, ok := r.Lookup(token)
	return ok
}

// Lookup returns the binding registered for token
func (r *ResourceRegistry) Lookup(token models.TypeToken) (ResourceBinding, bool) {
	if r == nil {
		return ResourceBinding{}, false
	}

	name := normalizeTypeName(token.Primary())
	if name == "" {
		return ResourceBinding{}, false
	}
	if binding, ok := r.bindings.Get(name); ok {
		return binding, true
	}

	if dot := strings.LastIndex(name, "."); dot >= 0 {
		return r.bindings.Get(name[dot+1:])
	}
	return ResourceBinding{}, false
}

// List returns the registered type names
func (r *ResourceRegistry) List() []string {
	return r.bindings.List()
}

// Clear removes every binding, including the builtin ones
func (r *ResourceRegistry) Clear() {
	r.bindings.Clear()
}

// Reset drops custom bindings and restores BuiltinResources
func (r *ResourceRegistry) Reset() {
	builtin := make(map[string]ResourceBinding, len(BuiltinResources))
	for _, binding := range BuiltinResources {
		builtin[normalizeTypeName(binding.TypeName)] = binding
	}
	r.bindings.ClearWithReset(builtin)
}

// normalizeTypeName strips pointer, slice and generic-instantiation syntax
func normalizeTypeName(typeName string) string {
	name := strings.TrimSpace(typeName)
	for {
		switch {
		case strings.HasPrefix(name, "*"):
			name = name[1:]
		case strings.HasPrefix(name, "[]"):
			name = name[2:]
		default:
			if idx := strings.Index(name, "["); idx > 0 {
				name = name[:idx]
			}
			return strings.TrimSpace(name)
		}
	}
}
