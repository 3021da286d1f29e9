package cli

import (
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/toyz/axondoc/internal/annotations"
	"github.com/toyz/axondoc/internal/extractor"
	"github.com/toyz/axondoc/internal/models"
	"github.com/toyz/axondoc/internal/parser"
	"github.com/toyz/axondoc/internal/registry"
	"github.com/toyz/axondoc/internal/utils"
	"github.com/toyz/axondoc/pkg/axondoc"
)

// DocumentationSummary reports what a run documented
type DocumentationSummary struct {
	PackagesScanned  int
	RoutesDocumented int
	QueryParameters  int
	SkippedRoutes    []string
	Duration         time.Duration
}

// Documenter coordinates scanning, extraction and document assembly
type Documenter struct {
	fileReader     *utils.FileReader
	scanner        *DirectoryScanner
	moduleResolver *ModuleResolver
	diagnostics    *utils.DiagnosticSystem
	summary        DocumentationSummary
}

// NewDocumenter creates a documenter reporting to diagnostics
func NewDocumenter(diagnostics *utils.DiagnosticSystem) *Documenter {
	if diagnostics == nil {
		diagnostics = utils.NewSilentDiagnostics()
	}
	fileReader := utils.NewFileReader()
	return &Documenter{
		fileReader:     fileReader,
		scanner:        NewDirectoryScanner(),
		moduleResolver: NewModuleResolver(fileReader),
		diagnostics:    diagnostics,
	}
}

// GetSummary returns the summary of the last run
func (d *Documenter) GetSummary() DocumentationSummary {
	return d.summary
}

// Run scans config.Directories and builds one document covering every
// routed handler found
func (d *Documenter) Run(config Config) (*axondoc.Document, error) {
	startTime := time.Now()
	d.summary = DocumentationSummary{}

	d.diagnostics.Debug("Scanning directories: %v", config.Directories)
	resources := registry.NewDefaultResourceRegistry()
	for _, typeName := range config.Resources {
		if err := resources.RegisterType(typeName); err != nil {
			return nil, err
		}
	}

	source := parser.NewParserWithReader(d.fileReader)
	d.diagnostics.Section("Scanning")
	d.diagnostics.Indent()
	packageDirs, err := d.load(source, config)
	d.diagnostics.Unindent()
	if err != nil {
		return nil, err
	}

	title := config.Title
	if title == "" && len(packageDirs) > 0 {
		title, err = d.moduleResolver.ResolveModuleName("", packageDirs[0])
		if err != nil {
			title = filepath.Base(packageDirs[0])
			d.diagnostics.Warn("no go.mod found for %s, using %q as the title: %v", packageDirs[0], title, err)
		}
	}

	engine := extractor.NewEngine(source,
		extractor.WithResources(resources),
		extractor.WithDiagnostics(d.diagnostics),
	)

	builder := axondoc.NewBuilder(title, config.Version)
	d.diagnostics.Section("Documenting")
	d.diagnostics.Indent()
	for _, route := range source.Routes() {
		operationID := route.Package + "." + route.QualifiedName()
		schemas := engine.ExtractCallable(route, parser.PathParameters(route.Route.Path))
		params := axondoc.QueryParameters(schemas)

		err := builder.AddOperation(route.Route.Method, route.Route.Path, operationID, annotations.Summary(route.Doc), params)
		if err != nil {
			d.diagnostics.Warn("skipping %s (%s:%d): %v", operationID, route.File, route.Line, err)
			d.summary.SkippedRoutes = append(d.summary.SkippedRoutes, operationID)
			continue
		}

		d.summary.RoutesDocumented++
		d.summary.QueryParameters += len(params)
		if config.Verbose {
			d.diagnostics.Item("%s %s -> %s (%d query parameters)", route.Route.Method, route.Route.Path, operationID, len(params))
		}
	}
	d.diagnostics.Unindent()

	d.summary.Duration = time.Since(startTime)
	return builder.Build()
}

// load indexes the handlers named by config and returns the package
// directories it read
func (d *Documenter) load(source *parser.Parser, config Config) ([]string, error) {
	if config.LoadPackages {
		var callables []*models.Callable
		for _, arg := range config.Directories {
			dir, pattern := splitPattern(arg)
			found, err := source.LoadPackages(dir, pattern)
			if err != nil {
				return nil, err
			}
			callables = append(callables, found...)
		}
		packageDirs := packageDirsOf(callables)
		for _, dir := range packageDirs {
			d.diagnostics.Item("%s", dir)
		}
		d.summary.PackagesScanned = len(packageDirs)
		return packageDirs, nil
	}

	packageDirs, err := d.scanner.ScanDirectories(config.Directories)
	if err != nil {
		return nil, err
	}
	for _, dir := range packageDirs {
		callables, err := source.ParseDirectory(dir)
		if err != nil {
			return nil, err
		}
		d.summary.PackagesScanned++
		d.diagnostics.Item("%s (%d functions)", dir, len(callables))
	}
	return packageDirs, nil
}

// packageDirsOf returns the sorted directories holding callables
func packageDirsOf(callables []*models.Callable) []string {
	var dirs []string
	for _, callable := range callables {
		dirs = append(dirs, filepath.Dir(callable.File))
	}
	slices.Sort(dirs)
	return slices.Compact(dirs)
}

// splitPattern turns "dir/..." into the go tool invocation ("dir", "./...")
// and "dir" into ("dir", ".")
func splitPattern(arg string) (string, string) {
	if arg == "..." || strings.HasSuffix(arg, recursiveSuffix) {
		dir := strings.TrimSuffix(strings.TrimSuffix(arg, "..."), "/")
		if dir == "" {
			dir = "."
		}
		return dir, "./..."
	}
	return arg, "."
}
