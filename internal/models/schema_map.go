package models

import (
	"bytes"
	"encoding/json"

	"go.yaml.in/yaml/v4"
)

// SchemaMap is an insertion-ordered mapping of parameter name to schema.
// Keys are unique; re-setting a key keeps its original position.
type SchemaMap struct {
	keys    []string
	entries map[string]WireSchema
}

// NewSchemaMap creates an empty schema map
func NewSchemaMap() *SchemaMap {
	return &SchemaMap{
		entries: make(map[string]WireSchema),
	}
}

// Set stores a schema under name
func (m *SchemaMap) Set(name string, schema WireSchema) {
	if m.entries == nil {
		m.entries = make(map[string]WireSchema)
	}
	if _, exists := m.entries[name]; !exists {
		m.keys = append(m.keys, name)
	}
	m.entries[name] = schema
}

// SetIfAbsent stores the schema only when name is not present yet.
// It reports whether the schema was stored.
func (m *SchemaMap) SetIfAbsent(name string, schema WireSchema) bool {
	if m.Has(name) {
		return false
	}
	m.Set(name, schema)
	return true
}

// Get returns the schema stored under name
func (m *SchemaMap) Get(name string) (WireSchema, bool) {
	if m == nil {
		return WireSchema{}, false
	}
	schema, ok := m.entries[name]
	return schema, ok
}

// Has reports whether name is present
func (m *SchemaMap) Has(name string) bool {
	_, ok := m.Get(name)
	return ok
}

// Len returns the number of entries
func (m *SchemaMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the names in insertion order
func (m *SchemaMap) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// Each calls fn for every entry in insertion order
func (m *SchemaMap) Each(fn func(name string, schema WireSchema)) {
	if m == nil {
		return
	}
	for _, key := range m.keys {
		fn(key, m.entries[key])
	}
}

// Clone returns a deep copy of the map
func (m *SchemaMap) Clone() *SchemaMap {
	clone := NewSchemaMap()
	m.Each(func(name string, schema WireSchema) {
		clone.Set(name, schema.Clone())
	})
	return clone
}

// MarshalJSON encodes the map as a JSON object, preserving key order
func (m *SchemaMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range m.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(m.entries[key])
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML encodes the map as a YAML mapping, preserving key order
func (m *SchemaMap) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, key := range m.Keys() {
		value := &yaml.Node{}
		if err := value.Encode(m.entries[key]); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
			value,
		)
	}
	return node, nil
}
