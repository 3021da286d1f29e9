package axondoc

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/erraggy/oastools/parser"
	"go.yaml.in/yaml/v4"

	"github.com/toyz/axondoc/internal/errors"
	"github.com/toyz/axondoc/internal/models"
)

// OpenAPIVersion is the OpenAPI version written into every document
const OpenAPIVersion = parser.OASVersion303

// Document is a built OpenAPI document
type Document struct {
	*parser.OAS3Document
}

// Parameter and Schema are the OpenAPI objects operations are built from
type (
	Parameter = parser.Parameter
	Schema    = parser.Schema
)

const (
	InQuery = parser.ParamInQuery
	InPath  = parser.ParamInPath
)

// QueryParameters converts extracted query schemas into parameter objects,
// keeping the schema map's order
func QueryParameters(schemas *models.SchemaMap) []*Parameter {
	var params []*Parameter
	schemas.Each(func(name string, schema models.WireSchema) {
		param := &Parameter{
			Name:        name,
			In:          InQuery,
			Description: schema.Description,
			Required:    schema.Required,
			Schema:      wireSchema(schema.Type, schema.Format),
		}
		if schema.Example != nil {
			param.Example = exampleValue(*schema.Example)
		}
		params = append(params, param)
	})
	return params
}

func wireSchema(wireType models.WireType, format models.Format) *Schema {
	schema := &Schema{Type: string(wireType), Format: string(format)}
	if wireType == models.WireArray {
		schema.Items = &Schema{Type: string(models.WireString)}
	}
	return schema
}

// exampleValue returns the example as a JSON value of its inferred type.
// Values that do not parse stay strings.
func exampleValue(example models.Example) interface{} {
	switch example.Type {
	case models.WireInteger:
		if v, err := strconv.ParseInt(example.Value, 10, 64); err == nil {
			return v
		}
	case models.WireNumber:
		if v, err := strconv.ParseFloat(example.Value, 64); err == nil {
			return v
		}
	case models.WireBoolean:
		if v, err := strconv.ParseBool(example.Value); err == nil {
			return v
		}
	}
	return example.Value
}

// JSON renders the document as indented JSON
func (d *Document) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(d.OAS3Document, "", "  ")
	if err != nil {
		return nil, errors.WrapRenderError("json", err)
	}
	return append(data, '\n'), nil
}

// YAML renders the document as YAML with two-space indentation
func (d *Document) YAML() ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(d.OAS3Document); err != nil {
		return nil, errors.WrapRenderError("yaml", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, errors.WrapRenderError("yaml", err)
	}
	return buf.Bytes(), nil
}

// Render renders the document in the named format, "json" or "yaml"
func (d *Document) Render(format string) ([]byte, error) {
	switch format {
	case "json":
		return d.JSON()
	case "yaml", "yml":
		return d.YAML()
	default:
		return nil, errors.NewValidationError("format", "yaml or json", format)
	}
}
