// Package extractor turns a handler's signature and comment block into an
// ordered query parameter schema.
package extractor

import (
	"slices"
	"strings"

	"github.com/toyz/axondoc/internal/annotations"
	"github.com/toyz/axondoc/internal/introspect"
	"github.com/toyz/axondoc/internal/models"
	"github.com/toyz/axondoc/internal/registry"
	"github.com/toyz/axondoc/internal/utils"
)

// SignatureSource locates a callable's declared parameters and comment block
type SignatureSource interface {
	Lookup(target string) (*models.Callable, error)
}

// Engine runs the extraction pipeline. It is safe for concurrent use.
type Engine struct {
	source      SignatureSource
	resources   registry.ResourceBinder
	diagnostics *utils.DiagnosticSystem
	directives  *annotations.DirectiveParser
	cache       *utils.Cache[string, *models.SchemaMap]
}

// Option configures an Engine
type Option func(*Engine)

// WithResources replaces the default resource-binding registry
func WithResources(resources registry.ResourceBinder) Option {
	return func(e *Engine) {
		e.resources = resources
	}
}

// WithDiagnostics routes engine messages to d
func WithDiagnostics(d *utils.DiagnosticSystem) Option {
	return func(e *Engine) {
		if d != nil {
			e.diagnostics = d
		}
	}
}

// WithCache memoises results per callable and path-parameter set
func WithCache() Option {
	return func(e *Engine) {
		e.cache = utils.NewCache[string, *models.SchemaMap]()
	}
}

// NewEngine creates an engine reading callables from source
func NewEngine(source SignatureSource, opts ...Option) *Engine {
	e := &Engine{
		source:      source,
		resources:   registry.NewDefaultResourceRegistry(),
		diagnostics: utils.NewSilentDiagnostics(),
		directives:  annotations.NewDirectiveParser(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract resolves target through the signature source and extracts its
// query parameters. A target that cannot be resolved yields an empty map.
func (e *Engine) Extract(target string, pathParams []string) *models.SchemaMap {
	if e.source == nil {
		return models.NewSchemaMap()
	}

	return e.memoise("target:"+target, pathParams, func() *models.SchemaMap {
		callable, err := e.source.Lookup(target)
		if err != nil || callable == nil {
			e.diagnostics.Debug("no parameters for %s: %v", target, err)
			return models.NewSchemaMap()
		}
		return e.extract(callable, pathParams)
	})
}

// ExtractCallable extracts the query parameters of an already located callable
func (e *Engine) ExtractCallable(callable *models.Callable, pathParams []string) *models.SchemaMap {
	if callable == nil {
		return models.NewSchemaMap()
	}

	key := "callable:" + callable.File + "#" + callable.QualifiedName()
	return e.memoise(key, pathParams, func() *models.SchemaMap {
		return e.extract(callable, pathParams)
	})
}

func (e *Engine) extract(callable *models.Callable, pathParams []string) *models.SchemaMap {
	block := e.directives.Parse(callable.Doc)
	classification := introspect.ClassifyBlock(callable.Parameters, block, models.NewNameSet(pathParams...), e.resources)

	for _, decision := range classification.Decisions {
		if !decision.Reason.Included() {
			e.diagnostics.Debug("%s: skipping %s (%s)", callable.QualifiedName(), decision.Parameter.Name, decision.Reason)
		}
	}

	return Synthesize(classification.Query, block, classification.Suppressed)
}

// memoise serves results from the cache when enabled. Stored maps are never
// handed out; callers always receive a clone.
func (e *Engine) memoise(identity string, pathParams []string, compute func() *models.SchemaMap) *models.SchemaMap {
	if e.cache == nil {
		return compute()
	}
	return e.cache.GetOrCompute(cacheKey(identity, pathParams), compute).Clone()
}

// cacheKey identifies a (callable, path-parameter set) pair independent of
// the order and duplication of pathParams
func cacheKey(identity string, pathParams []string) string {
	params := slices.Clone(pathParams)
	slices.Sort(params)
	params = slices.Compact(params)
	return identity + "\x00" + strings.Join(params, "\x00")
}
