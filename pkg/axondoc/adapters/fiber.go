package adapters

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/toyz/axondoc/pkg/axondoc"
)

// FiberAdapter implements axondoc.DocumentServer for Fiber v2
type FiberAdapter struct {
	app *fiber.App
}

// NewFiberAdapter creates a new Fiber adapter
func NewFiberAdapter() *FiberAdapter {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})
	return &FiberAdapter{app: app}
}

// NewDefaultFiberAdapter creates a new Fiber adapter with logging and panic recovery
func NewDefaultFiberAdapter() *FiberAdapter {
	adapter := NewFiberAdapter()

	adapter.app.Use(logger.New())
	adapter.app.Use(recover.New())

	return adapter
}

// Mount serves the document under prefix
func (fa *FiberAdapter) Mount(prefix string, doc *axondoc.Document) error {
	return MountFiber(fa.app, prefix, doc)
}

// Start starts the Fiber server
func (fa *FiberAdapter) Start(addr string) error {
	return fa.app.Listen(addr)
}

// Stop stops the Fiber server
func (fa *FiberAdapter) Stop(ctx context.Context) error {
	return fa.app.ShutdownWithContext(ctx)
}

// Name returns the adapter name
func (fa *FiberAdapter) Name() string {
	return "Fiber"
}

// GetApp returns the underlying Fiber app
func (fa *FiberAdapter) GetApp() *fiber.App {
	return fa.app
}

// MountFiber registers the document routes on an existing Fiber router
func MountFiber(router fiber.Router, prefix string, doc *axondoc.Document) error {
	rendered, err := axondoc.Prerender(doc)
	if err != nil {
		return err
	}

	jsonPath, yamlPath := axondoc.MountPaths(prefix)
	router.Get(jsonPath, func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, axondoc.JSONContentType)
		return c.Send(rendered.JSON)
	})
	router.Get(yamlPath, func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, axondoc.YAMLContentType)
		return c.Send(rendered.YAML)
	})
	return nil
}

var _ axondoc.DocumentServer = (*FiberAdapter)(nil)
