package models

// RouteInfo is the method and path declared by an //axon::route annotation
type RouteInfo struct {
	Method string `json:"method"`
	Path   string `json:"path"`
}

// Callable is a handler function or method as seen by a signature source
type Callable struct {
	Name       string                // function or method name
	Package    string                // package name
	Receiver   string                // receiver type name, empty for plain functions
	Parameters []ParameterDescriptor // declared parameters in signature order
	Doc        string                // raw doc comment text
	Route      *RouteInfo            // nil when the callable carries no route annotation
	File       string                // source file
	Line       int                   // line of the func keyword (1-based)
}

// QualifiedName returns "Receiver.Name" for methods and "Name" for functions
func (c *Callable) QualifiedName() string {
	if c.Receiver == "" {
		return c.Name
	}
	return c.Receiver + "." + c.Name
}
