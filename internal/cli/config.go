package cli

// Config holds the configuration for a documentation run
type Config struct {
	// Directories is the list of directories to scan for routed handlers.
	// Go-style patterns like "./..." scan recursively.
	Directories []string

	// Title is the document title. If empty, the go.mod module path is used.
	Title string

	// Version is the document version
	Version string

	// Resources lists extra type names that bind a whole resource, such as
	// "gorm.DB". Parameters of these types never become query parameters.
	Resources []string

	// LoadPackages resolves Directories as go package patterns through the
	// go tool, honouring build constraints, instead of reading directories
	LoadPackages bool

	// Verbose enables per-route output
	Verbose bool
}
