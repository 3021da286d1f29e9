package registry

import "github.com/toyz/axondoc/internal/models"

// ResourceBinder defines the capability check used when classifying
// handler parameters
type ResourceBinder interface {
	// Binds reports whether a parameter of the declared type receives a whole
	// resource instead of a single request value
	Binds(token models.TypeToken) bool
}

var _ ResourceBinder = (*ResourceRegistry)(nil)
