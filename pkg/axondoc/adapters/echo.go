package adapters

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/toyz/axondoc/pkg/axondoc"
)

// EchoAdapter implements axondoc.DocumentServer for Echo v4
type EchoAdapter struct {
	engine *echo.Echo
}

// NewEchoAdapter creates a new Echo adapter
func NewEchoAdapter(e *echo.Echo) *EchoAdapter {
	return &EchoAdapter{engine: e}
}

// NewDefaultEchoAdapter creates a new Echo adapter with default Echo instance
func NewDefaultEchoAdapter() *EchoAdapter {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	return &EchoAdapter{engine: e}
}

// Mount serves the document under prefix
func (ea *EchoAdapter) Mount(prefix string, doc *axondoc.Document) error {
	return MountEcho(ea.engine, prefix, doc)
}

// Start starts the server
func (ea *EchoAdapter) Start(addr string) error {
	return ea.engine.Start(addr)
}

// Stop stops the server
func (ea *EchoAdapter) Stop(ctx context.Context) error {
	return ea.engine.Shutdown(ctx)
}

// Name returns the adapter name
func (ea *EchoAdapter) Name() string {
	return "Echo"
}

// GetEngine returns the underlying Echo instance
func (ea *EchoAdapter) GetEngine() *echo.Echo {
	return ea.engine
}

// MountEcho registers the document routes on an existing Echo instance
func MountEcho(e *echo.Echo, prefix string, doc *axondoc.Document) error {
	rendered, err := axondoc.Prerender(doc)
	if err != nil {
		return err
	}

	jsonPath, yamlPath := axondoc.MountPaths(prefix)
	e.GET(jsonPath, func(c echo.Context) error {
		return c.Blob(http.StatusOK, axondoc.JSONContentType, rendered.JSON)
	})
	e.GET(yamlPath, func(c echo.Context) error {
		return c.Blob(http.StatusOK, axondoc.YAMLContentType, rendered.YAML)
	})
	return nil
}

var _ axondoc.DocumentServer = (*EchoAdapter)(nil)
