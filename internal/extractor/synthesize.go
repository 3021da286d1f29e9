package extractor

import (
	"github.com/toyz/axondoc/internal/annotations"
	"github.com/toyz/axondoc/internal/inference"
	"github.com/toyz/axondoc/internal/models"
)

// Synthesize merges classified signature parameters with the directives of
// a comment block. Signature entries come first and win on name clashes;
// directives add the parameters the signature does not declare. Names in
// suppressed are never emitted from directives. The result is never nil.
func Synthesize(signatureParams []models.ParameterDescriptor, block annotations.Block, suppressed models.NameSet) *models.SchemaMap {
	result := models.NewSchemaMap()

	for _, param := range signatureParams {
		if param.Name == "" || result.Has(param.Name) {
			continue
		}

		schema := models.WireSchema{
			Required: !param.Optional,
			Type:     inference.CanonicalWireType(param.DeclaredType),
			Format:   inference.InferFormat(param.DeclaredType, param.Name),
		}

		directive, documented := block.QueryParam(param.Name)
		if documented {
			schema.Description = directive.RawDescription
			schema.Example = exampleFor(&directive, block, param.Name)
		} else {
			schema.Example = exampleFor(nil, block, param.Name)
		}

		result.Set(param.Name, schema)
	}

	for i := range block.QueryParams {
		directive := &block.QueryParams[i]
		if result.Has(directive.Name) || suppressed.Has(directive.Name) {
			continue
		}

		token := models.TypeToken(directive.RawType)
		result.Set(directive.Name, models.WireSchema{
			Description: directive.RawDescription,
			Required:    directive.Required,
			Type:        inference.CanonicalWireType(token),
			Format:      inference.InferFormat(token, directive.Name),
			Example:     exampleFor(directive, block, directive.Name),
		})
	}

	return result
}

// exampleFor prefers the directive's inline example over an @example directive
func exampleFor(directive *models.RawDirective, block annotations.Block, name string) *models.Example {
	if directive != nil && directive.RawExample != nil {
		return inference.NewExample(*directive.RawExample)
	}
	if value, ok := block.Example(name); ok {
		return inference.NewExample(value)
	}
	return nil
}
