package models

import "strings"

// Origin records which source seeded a parameter's schema
type Origin int

const (
	OriginSignature Origin = iota
	OriginAnnotation
)

// String returns the string representation of the origin
func (o Origin) String() string {
	switch o {
	case OriginSignature:
		return "signature"
	case OriginAnnotation:
		return "annotation"
	default:
		return "unknown"
	}
}

// TypeToken is a raw declared type as written by the author.
// It may be a union such as "int|string".
type TypeToken string

// Alternatives splits the token on '|' and returns the non-empty, trimmed parts
func (t TypeToken) Alternatives() []string {
	raw := strings.TrimSpace(string(t))
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, "|")
	alternatives := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			alternatives = append(alternatives, part)
		}
	}
	return alternatives
}

// Primary returns the first alternative, which is the canonical one
func (t TypeToken) Primary() string {
	alternatives := t.Alternatives()
	if len(alternatives) == 0 {
		return ""
	}
	return alternatives[0]
}

// ParameterDescriptor describes a declared or documented parameter.
// Name is the identity key.
type ParameterDescriptor struct {
	Name         string
	DeclaredType TypeToken
	Optional     bool
	Origin       Origin
}

// RawDirective is a single @queryParam occurrence, in source order
type RawDirective struct {
	Name           string
	RawType        string  // empty when the directive declares no type
	RawDescription string  // description with any inline example removed
	RawExample     *string // inline "Example:" value, nil when absent
	Required       bool
	Offset         int // byte offset of the directive in the normalised block
}

// NameSet is a set of parameter names
type NameSet map[string]struct{}

// NewNameSet builds a set from the given names, ignoring empty ones
func NewNameSet(names ...string) NameSet {
	set := make(NameSet, len(names))
	for _, name := range names {
		set.Add(name)
	}
	return set
}

// Add inserts a name into the set
func (s NameSet) Add(name string) {
	if name == "" {
		return
	}
	s[name] = struct{}{}
}

// Has reports whether the name is in the set. A nil set is empty.
func (s NameSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}
