package models

// WireType is the canonical scalar classification emitted in a schema
type WireType string

const (
	WireString  WireType = "string"
	WireInteger WireType = "integer"
	WireNumber  WireType = "number"
	WireBoolean WireType = "boolean"
	WireArray   WireType = "array"
	WireObject  WireType = "object"
)

// Format refines a wire type. The zero value means no format.
type Format string

const (
	FormatNone     Format = ""
	FormatInt32    Format = "int32"
	FormatInt64    Format = "int64"
	FormatFloat    Format = "float"
	FormatDate     Format = "date"
	FormatDateTime Format = "date-time"
	FormatEmail    Format = "email"
	FormatPassword Format = "password"
	FormatURI      Format = "uri"
	FormatUUID     Format = "uuid"
	FormatIPv4     Format = "ipv4"
	FormatIPv6     Format = "ipv6"
)

// Example is a literal example value with the type and format inferred from it
type Example struct {
	Value  string   `json:"value" yaml:"value"`
	Type   WireType `json:"type" yaml:"type"`
	Format Format   `json:"format,omitempty" yaml:"format,omitempty"`
}

// WireSchema is the extracted schema of a single query parameter
type WireSchema struct {
	Description string   `json:"description" yaml:"description"`
	Required    bool     `json:"required" yaml:"required"`
	Type        WireType `json:"type" yaml:"type"`
	Format      Format   `json:"format,omitempty" yaml:"format,omitempty"`
	Example     *Example `json:"example,omitempty" yaml:"example,omitempty"`
}

// Clone returns a deep copy of the schema
func (s WireSchema) Clone() WireSchema {
	if s.Example != nil {
		example := *s.Example
		s.Example = &example
	}
	return s
}
