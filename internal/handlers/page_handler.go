package handlers

import (
	"errors"
	"log/slog"
	"net/url"

	"katalog/internal/models"
	"katalog/internal/services"

	"github.com/gofiber/fiber/v2"
)

// PageHandler serves the server-rendered product pages.
//
// Failures never surface as error pages: every branch ends in a redirect,
// and the cause is written to the log.
type PageHandler struct {
	service *services.ProductService
	logger  *slog.Logger
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(service *services.ProductService) *PageHandler {
	return &PageHandler{
		service: service,
		logger:  slog.Default().With("component", "product_pages"),
	}
}

// RegisterRoutes registers the page routes. It must run after any route
// that shares the root, since /:id matches every single-segment path.
func (h *PageHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/", h.HandleIndex)
	router.Get("/new", h.HandleNew)
	router.Post("/new_products", h.HandleCreate)
	router.Get("/:id", h.HandleShow)
	router.Get("/:id/edit", h.HandleEdit)
	router.Put("/:id", h.HandleUpdate)
	router.Delete("/:id", h.HandleDelete)
}

// HandleIndex renders the product listing.
func (h *PageHandler) HandleIndex(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts(c.UserContext())
	if err != nil {
		h.logger.Error("failed to list products", "error", err)
		return c.Status(fiber.StatusInternalServerError).SendString("Error fetching products")
	}
	return c.Render("index", fiber.Map{
		"Title": "Home",
		"Items": products,
	})
}

// HandleNew renders the empty creation form.
func (h *PageHandler) HandleNew(c *fiber.Ctx) error {
	return c.Render("new", fiber.Map{
		"Title":      "Add New Item",
		"Categories": models.Categories,
	})
}

// HandleCreate stores a product submitted from the creation form.
func (h *PageHandler) HandleCreate(c *fiber.Ctx) error {
	in, err := parseProductInput(c)
	if err != nil {
		h.logger.Warn("invalid product form", "error", err)
		return c.Redirect("/")
	}

	product, err := h.service.CreateProduct(c.UserContext(), in)
	if err != nil {
		h.logger.Warn("failed to create product", "error", err)
		return c.Redirect("/")
	}
	h.logger.Info("product created", "product_id", product.ID)
	return c.Redirect("/")
}

// HandleShow renders a product's detail page.
func (h *PageHandler) HandleShow(c *fiber.Ctx) error {
	item, ok := h.lookup(c)
	if !ok {
		return c.Redirect("/")
	}
	return c.Render("show", fiber.Map{
		"Title": item.Name,
		"Item":  item,
	})
}

// HandleEdit renders the edit form for a product.
func (h *PageHandler) HandleEdit(c *fiber.Ctx) error {
	item, ok := h.lookup(c)
	if !ok {
		return c.Redirect("/")
	}
	return c.Render("edit", fiber.Map{
		"Title":      "Edit " + item.Name,
		"Item":       item,
		"Categories": models.Categories,
	})
}

// HandleUpdate applies the edit form to a product.
func (h *PageHandler) HandleUpdate(c *fiber.Ctx) error {
	id := c.Params("id")

	in, err := parseProductInput(c)
	if err != nil {
		h.logger.Warn("invalid product form", "product_id", id, "error", err)
		return c.Redirect(productPath(id) + "/edit")
	}

	product, err := h.service.UpdateProduct(c.UserContext(), id, in)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			return c.Redirect("/")
		}
		h.logger.Warn("failed to update product", "product_id", id, "error", err)
		return c.Redirect(productPath(id) + "/edit")
	}
	return c.Redirect(productPath(product.ID))
}

// HandleDelete removes a product.
func (h *PageHandler) HandleDelete(c *fiber.Ctx) error {
	id := c.Params("id")

	if _, err := h.service.DeleteProduct(c.UserContext(), id); err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			return c.Redirect("/")
		}
		h.logger.Error("failed to delete product", "product_id", id, "error", err)
		return c.Redirect(productPath(id))
	}
	return c.Redirect("/")
}

// lookup fetches the product named by the :id parameter. Not-found and
// store failures both report ok=false.
func (h *PageHandler) lookup(c *fiber.Ctx) (*models.Product, bool) {
	id := c.Params("id")
	item, err := h.service.GetProductByID(c.UserContext(), id)
	if err != nil {
		if !errors.Is(err, services.ErrProductNotFound) {
			h.logger.Error("failed to get product", "product_id", id, "error", err)
		}
		return nil, false
	}
	return item, true
}

func productPath(id string) string {
	return "/" + url.PathEscape(id)
}
