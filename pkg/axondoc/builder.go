package axondoc

import (
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/erraggy/oastools/builder"
	"github.com/erraggy/oastools/parser"

	"github.com/toyz/axondoc/internal/errors"
)

var supportedMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodPut:     true,
	http.MethodPost:    true,
	http.MethodDelete:  true,
	http.MethodOptions: true,
	http.MethodHead:    true,
	http.MethodPatch:   true,
}

// Builder assembles a Document operation by operation. It is safe for
// concurrent use.
type Builder struct {
	mu           sync.Mutex
	oas          *builder.Builder
	routes       map[string]bool
	operationIDs map[string]bool
}

// NewBuilder creates a builder for a document with the given title and version
func NewBuilder(title, version string) *Builder {
	if version == "" {
		version = "0.0.0"
	}
	return &Builder{
		oas:          builder.New(OpenAPIVersion).SetTitle(title).SetVersion(version),
		routes:       make(map[string]bool),
		operationIDs: make(map[string]bool),
	}
}

// SetDescription sets the document description
func (b *Builder) SetDescription(description string) *Builder {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.oas.SetDescription(description)
	return b
}

// AddOperation registers an operation for method and path. The path may use
// axon ({id:int}), brace ({id}) or echo (:id) syntax; its parameters are
// added ahead of queryParams as required path parameters.
func (b *Builder) AddOperation(method, path, operationID, summary string, queryParams []*Parameter) error {
	route := RoutePath(path)
	if err := route.Validate(); err != nil {
		return errors.NewSyntaxError(err.Error())
	}

	method = strings.ToUpper(method)
	if !supportedMethods[method] {
		return errors.NewValidationError("method", "an HTTP method", method)
	}

	opts := []builder.OperationOption{
		builder.WithOperationID(operationID),
		builder.WithDefaultResponse(nil, builder.WithResponseDescription("Default response")),
	}
	if summary != "" {
		opts = append(opts, builder.WithSummary(summary))
	}
	for _, pathParam := range route.Parameters() {
		opts = append(opts, builder.WithParameter(&Parameter{
			Name:     pathParam.Name,
			In:       InPath,
			Required: true,
			Schema:   pathSchema(pathParam.Type),
		}))
	}
	for _, param := range queryParams {
		opts = append(opts, builder.WithParameter(param))
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	template := route.OpenAPI()
	key := method + " " + template
	if b.routes[key] {
		return errors.NewValidationError("route", "a unique method and path", fmt.Sprintf("duplicate %s", key))
	}
	if b.operationIDs[operationID] {
		return errors.NewValidationError("operationId", "a unique operation ID", operationID)
	}

	b.oas.AddOperation(method, template, opts...)
	b.routes[key] = true
	b.operationIDs[operationID] = true
	return nil
}

// Build returns the assembled document
func (b *Builder) Build() (*Document, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	doc, err := b.oas.BuildOAS3()
	if err != nil {
		return nil, errors.WrapRenderError("openapi", err)
	}
	if doc.Paths == nil {
		doc.Paths = make(parser.Paths)
	}
	return &Document{OAS3Document: doc}, nil
}

// pathSchema maps an axon path parameter type to a schema
func pathSchema(paramType string) *Schema {
	switch paramType {
	case "int", "int64":
		return &Schema{Type: "integer", Format: "int64"}
	case "int32":
		return &Schema{Type: "integer", Format: "int32"}
	case "uuid.UUID", "uuid":
		return &Schema{Type: "string", Format: "uuid"}
	case "float64", "float32", "number":
		return &Schema{Type: "number"}
	case "bool":
		return &Schema{Type: "boolean"}
	default:
		return &Schema{Type: "string"}
	}
}
