package adapters

import (
	"context"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/toyz/axondoc/pkg/axondoc"
)

// GinAdapter implements axondoc.DocumentServer for the Gin framework
type GinAdapter struct {
	engine *gin.Engine

	mu     sync.Mutex
	server *http.Server
}

// NewGinAdapter creates a new Gin adapter
func NewGinAdapter(g *gin.Engine) *GinAdapter {
	return &GinAdapter{engine: g}
}

// NewDefaultGinAdapter creates a new Gin adapter with default Gin instance
func NewDefaultGinAdapter() *GinAdapter {
	return &GinAdapter{engine: gin.Default()}
}

// Mount serves the document under prefix
func (ga *GinAdapter) Mount(prefix string, doc *axondoc.Document) error {
	return MountGin(ga.engine, prefix, doc)
}

// Start starts the Gin server behind an http.Server so Stop can drain it
func (ga *GinAdapter) Start(addr string) error {
	ga.mu.Lock()
	ga.server = &http.Server{Addr: addr, Handler: ga.engine}
	server := ga.server
	ga.mu.Unlock()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop gracefully shuts down a started server
func (ga *GinAdapter) Stop(ctx context.Context) error {
	ga.mu.Lock()
	server := ga.server
	ga.mu.Unlock()

	if server == nil {
		return nil
	}
	return server.Shutdown(ctx)
}

// Name returns the adapter name
func (ga *GinAdapter) Name() string {
	return "Gin"
}

// GetEngine returns the underlying Gin engine
func (ga *GinAdapter) GetEngine() *gin.Engine {
	return ga.engine
}

// MountGin registers the document routes on an existing Gin engine
func MountGin(g gin.IRoutes, prefix string, doc *axondoc.Document) error {
	rendered, err := axondoc.Prerender(doc)
	if err != nil {
		return err
	}

	jsonPath, yamlPath := axondoc.MountPaths(prefix)
	g.GET(jsonPath, func(c *gin.Context) {
		c.Data(http.StatusOK, axondoc.JSONContentType, rendered.JSON)
	})
	g.GET(yamlPath, func(c *gin.Context) {
		c.Data(http.StatusOK, axondoc.YAMLContentType, rendered.YAML)
	})
	return nil
}

var _ axondoc.DocumentServer = (*GinAdapter)(nil)
