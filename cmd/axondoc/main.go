package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/toyz/axondoc/internal/cli"
	"github.com/toyz/axondoc/internal/errors"
	"github.com/toyz/axondoc/internal/utils"
	"github.com/toyz/axondoc/pkg/axondoc"
	"github.com/toyz/axondoc/pkg/axondoc/adapters"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// options holds the parsed command-line flags
type options struct {
	format    string
	output    string
	title     string
	version   string
	serve     string
	prefix    string
	resources []string
	packages  bool
	verbose   bool
	quiet     bool
	help      bool
}

func newFlagSet(stderr io.Writer, opts *options) *flag.FlagSet {
	fs := flag.NewFlagSet("axondoc", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.format, "format", "yaml", "Output format: yaml or json")
	fs.StringVar(&opts.output, "output", "", "Write the document to this file instead of stdout")
	fs.StringVar(&opts.title, "title", "", "Document title (defaults to the go.mod module path)")
	fs.StringVar(&opts.version, "version", "1.0.0", "Document version")
	fs.StringVar(&opts.serve, "serve", "", "Serve the document over HTTP on this address, e.g. :8080")
	fs.StringVar(&opts.prefix, "prefix", "/docs", "URL prefix used with -serve")
	fs.Func("resource", "Type bound as a whole resource, e.g. gorm.DB (repeatable)", func(value string) error {
		opts.resources = append(opts.resources, value)
		return nil
	})
	fs.BoolVar(&opts.packages, "packages", false, "Resolve arguments as go package patterns with the go tool (honours build tags)")
	fs.BoolVar(&opts.verbose, "verbose", false, "Enable verbose output")
	fs.BoolVar(&opts.quiet, "quiet", false, "Only show errors")
	fs.BoolVar(&opts.help, "help", false, "Show help information")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: axondoc [options] <directory-paths...>\n\n")
		fmt.Fprintf(stderr, "Axon Query Parameter Documenter\n")
		fmt.Fprintf(stderr, "Scans handlers annotated with //axon::route and writes an OpenAPI document\n")
		fmt.Fprintf(stderr, "describing their query parameters.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nArguments:\n")
		fmt.Fprintf(stderr, "  directory-paths    One or more directories to scan\n")
		fmt.Fprintf(stderr, "                     Supports Go-style patterns like './...' for recursive scanning\n")
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  axondoc ./...                               # Document everything as YAML\n")
		fmt.Fprintf(stderr, "  axondoc -format json -output api.json ./... # Write JSON to a file\n")
		fmt.Fprintf(stderr, "  axondoc -resource gorm.DB ./internal/...    # Treat *gorm.DB parameters as resources\n")
		fmt.Fprintf(stderr, "  axondoc -serve :8080 ./...                  # Serve /docs/openapi.{json,yaml}\n")
	}
	return fs
}

// run executes the command and returns the process exit code
func run(args []string, stdout, stderr io.Writer) int {
	var opts options
	fs := newFlagSet(stderr, &opts)
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	if opts.help {
		fs.Usage()
		return 0
	}

	dirs := fs.Args()
	if len(dirs) == 0 {
		fmt.Fprintf(stderr, "Error: At least one directory path is required\n\n")
		fs.Usage()
		return 1
	}

	var diagnostics *utils.DiagnosticSystem
	switch {
	case opts.quiet:
		diagnostics = utils.NewQuietDiagnostics()
	case opts.verbose:
		diagnostics = utils.NewVerboseDiagnostics()
	default:
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}
	// the document itself may go to stdout, so progress goes to stderr
	diagnostics.SetOutput(stderr, stderr)

	if opts.format != "yaml" && opts.format != "json" {
		diagnostics.Error("%v", errors.NewValidationError("format", "yaml or json", opts.format))
		return 1
	}

	diagnostics.Header("documenting " + strings.Join(dirs, ", "))

	documenter := cli.NewDocumenter(diagnostics)
	doc, err := documenter.Run(cli.Config{
		Directories:  dirs,
		Title:        opts.title,
		Version:      opts.version,
		Resources:    opts.resources,
		LoadPackages: opts.packages,
		Verbose:      opts.verbose,
	})
	if err != nil {
		diagnostics.Error("Documentation failed: %v", err)
		return 1
	}

	summary := documenter.GetSummary()
	diagnostics.Summary("Documentation complete", map[string]interface{}{
		"Packages scanned":  summary.PackagesScanned,
		"Routes documented": summary.RoutesDocumented,
		"Query parameters":  summary.QueryParameters,
		"Routes skipped":    len(summary.SkippedRoutes),
	})

	if opts.serve != "" {
		return serve(doc, opts, diagnostics)
	}

	data, err := doc.Render(opts.format)
	if err != nil {
		diagnostics.Error("%v", err)
		return 1
	}

	if opts.output == "" {
		if _, err := stdout.Write(data); err != nil {
			diagnostics.Error("%v", errors.WrapFileSystemError("write", "stdout", err))
			return 1
		}
		return 0
	}

	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		diagnostics.Error("%v", errors.WrapFileSystemError("write", opts.output, err))
		return 1
	}
	diagnostics.Success("Wrote %s", opts.output)
	return 0
}

// serve publishes doc with echo until interrupted
func serve(doc *axondoc.Document, opts options, diagnostics *utils.DiagnosticSystem) int {
	server := adapters.NewDefaultEchoAdapter()
	if err := server.Mount(opts.prefix, doc); err != nil {
		diagnostics.Error("%v", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start(opts.serve)
	}()

	jsonPath, yamlPath := axondoc.MountPaths(opts.prefix)
	diagnostics.Info("Serving %s and %s on %s with %s", jsonPath, yamlPath, opts.serve, server.Name())

	select {
	case err := <-errCh:
		diagnostics.Error("Server stopped: %v", err)
		return 1
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Stop(shutdownCtx); err != nil {
		diagnostics.Error("Shutdown failed: %v", err)
		return 1
	}
	return 0
}
