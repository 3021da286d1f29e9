package parser

import "github.com/toyz/axondoc/internal/models"

// SignatureSource defines the lookup a Parser offers to the extraction engine
type SignatureSource interface {
	Lookup(target string) (*models.Callable, error)
	Routes() []*models.Callable
}

var _ SignatureSource = (*Parser)(nil)
