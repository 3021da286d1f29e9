package axondoc

import (
	"fmt"
	"strings"
)

// PathPartType represents the type of path part
type PathPartType int

const (
	StaticPart PathPartType = iota
	ParameterPart
	WildcardPart
)

// PathPart represents a single part of a route path
type PathPart struct {
	Type      PathPartType
	Value     string // For static parts: the literal text, for parameters: the parameter name
	ParamType string // For parameters: the declared type ("int", "string"), empty for untyped
}

// PathParameter is a named parameter bound by a route path
type PathParameter struct {
	Name string
	Type string // declared type, "string" when untyped
}

// RoutePath is a route path in axon ({id:int}), brace ({id}) or echo (:id) form
type RoutePath string

// Raw returns the path as written
func (p RoutePath) Raw() string {
	return string(p)
}

// Parts parses the path into static, parameter and wildcard parts
func (p RoutePath) Parts() []PathPart {
	path := string(p)
	var parts []PathPart

	i := 0
	for i < len(path) {
		switch {
		case path[i] == '{':
			j := strings.IndexByte(path[i:], '}')
			if j < 0 {
				parts = appendStatic(parts, path[i:])
				return parts
			}
			parts = append(parts, parseBraced(path[i+1:i+j]))
			i += j + 1

		case path[i] == ':' && (i == 0 || path[i-1] == '/'):
			j := i + 1
			for j < len(path) && path[j] != '/' {
				j++
			}
			if j == i+1 {
				parts = appendStatic(parts, ":")
				i++
				continue
			}
			parts = append(parts, PathPart{Type: ParameterPart, Value: path[i+1 : j]})
			i = j

		case path[i] == '*' && (i == 0 || path[i-1] == '/'):
			parts = append(parts, PathPart{Type: WildcardPart, Value: "*"})
			i++

		default:
			start := i
			i++
			for i < len(path) && path[i] != '{' && !(path[i-1] == '/' && (path[i] == ':' || path[i] == '*')) {
				i++
			}
			parts = appendStatic(parts, path[start:i])
		}
	}

	return parts
}

func parseBraced(content string) PathPart {
	if content == "*" {
		return PathPart{Type: WildcardPart, Value: "*"}
	}

	name, paramType, _ := strings.Cut(content, ":")
	name = strings.TrimSpace(name)
	if name == "" {
		return PathPart{Type: StaticPart, Value: "{" + content + "}"}
	}
	return PathPart{Type: ParameterPart, Value: name, ParamType: strings.TrimSpace(paramType)}
}

// appendStatic merges adjacent static text into one part
func appendStatic(parts []PathPart, text string) []PathPart {
	if n := len(parts); n > 0 && parts[n-1].Type == StaticPart {
		parts[n-1].Value += text
		return parts
	}
	return append(parts, PathPart{Type: StaticPart, Value: text})
}

// Parameters returns the named parameters in path order. Wildcards carry no name.
func (p RoutePath) Parameters() []PathParameter {
	var params []PathParameter
	for _, part := range p.Parts() {
		if part.Type != ParameterPart {
			continue
		}
		paramType := part.ParamType
		if paramType == "" {
			paramType = "string"
		}
		params = append(params, PathParameter{Name: part.Value, Type: paramType})
	}
	return params
}

// ParameterNames returns the names of the path parameters
func (p RoutePath) ParameterNames() []string {
	params := p.Parameters()
	names := make([]string, len(params))
	for i, param := range params {
		names[i] = param.Name
	}
	return names
}

// OpenAPI renders the path as an OpenAPI path template: /users/{id}
func (p RoutePath) OpenAPI() string {
	var b strings.Builder
	for _, part := range p.Parts() {
		switch part.Type {
		case ParameterPart:
			b.WriteString("{" + part.Value + "}")
		case WildcardPart:
			b.WriteString("{wildcard}")
		default:
			b.WriteString(part.Value)
		}
	}
	return b.String()
}

// Echo renders the path in echo syntax: /users/:id
func (p RoutePath) Echo() string {
	var b strings.Builder
	for _, part := range p.Parts() {
		switch part.Type {
		case ParameterPart:
			b.WriteString(":" + part.Value)
		case WildcardPart:
			b.WriteString("*")
		default:
			b.WriteString(part.Value)
		}
	}
	return b.String()
}

// Validate checks brace balance and that every parameter is named once
func (p RoutePath) Validate() error {
	path := string(p)
	if strings.Count(path, "{") != strings.Count(path, "}") {
		return fmt.Errorf("mismatched braces in path: %s", path)
	}

	seen := make(map[string]bool)
	for _, part := range p.Parts() {
		if part.Type == StaticPart && strings.ContainsAny(part.Value, "{}") {
			return fmt.Errorf("invalid parameter syntax in path: %s", path)
		}
		if part.Type != ParameterPart {
			continue
		}
		if seen[part.Value] {
			return fmt.Errorf("duplicate path parameter '%s' in path: %s", part.Value, path)
		}
		seen[part.Value] = true
	}
	return nil
}
