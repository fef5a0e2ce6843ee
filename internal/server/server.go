package server

import (
	"net/http"
	"time"

	"katalog/internal/handlers"
	"katalog/internal/middleware"
	"katalog/internal/services"
	"katalog/web"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
)

// Dependencies are the collaborators the HTTP server is built from.
type Dependencies struct {
	ProductService *services.ProductService
	// DatabaseDriver is reported by the health endpoint.
	DatabaseDriver string
	// AccessLog enables the per-request logger middleware.
	AccessLog bool
}

// New builds the Fiber application serving the JSON API and the product pages.
func New(deps Dependencies) *fiber.App {
	engine := html.NewFileSystem(http.FS(web.Views()), ".html")

	app := fiber.New(fiber.Config{
		AppName:               "katalog",
		Views:                 engine,
		ViewsLayout:           "layouts/main",
		DisableStartupMessage: true,
	})

	// --- Middleware ---
	app.Use(recover.New())
	if deps.AccessLog {
		app.Use(logger.New())
	}
	app.Use(middleware.MethodOverride())
	app.Use("/public", filesystem.New(filesystem.Config{
		Root:   http.FS(web.Public()),
		MaxAge: 3600,
	}))

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": deps.DatabaseDriver,
		})
	})

	// --- API Routes ---
	api := app.Group("/api")
	handlers.NewProductHandler(deps.ProductService).RegisterRoutes(api)

	// --- Page Routes ---
	// Registered last: /:id would otherwise shadow the routes above.
	handlers.NewPageHandler(deps.ProductService).RegisterRoutes(app)

	return app
}
