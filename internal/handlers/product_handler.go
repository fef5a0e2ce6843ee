package handlers

import (
	"errors"
	"log/slog"

	"katalog/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles JSON API requests for products.
type ProductHandler struct {
	service *services.ProductService
	logger  *slog.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  slog.Default().With("component", "product_api"),
	}
}

// RegisterRoutes registers the product API routes under router.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Post("/add", h.HandleCreateProduct)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleGetProducts lists every product.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts(c.UserContext())
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(products)
}

// HandleCreateProduct creates a product from a JSON or form body.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	in, err := parseProductInput(c)
	if err != nil {
		return h.respondError(c, err)
	}

	product, err := h.service.CreateProduct(c.UserContext(), in)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Product added",
		"product": product,
	})
}

// HandleGetProductByID returns a single product.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	product, err := h.service.GetProductByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(product)
}

// HandleUpdateProduct changes the submitted fields of a product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	in, err := parseProductInput(c)
	if err != nil {
		return h.respondError(c, err)
	}

	product, err := h.service.UpdateProduct(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(product)
}

// HandleDeleteProduct removes a product.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	product, err := h.service.DeleteProduct(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Product deleted",
		"product": product,
	})
}

// respondError maps service errors onto status codes:
// validation 400, not found 404, anything else 500.
// Validation failures used to answer 500; they are client errors and now answer 400.
func (h *ProductHandler) respondError(c *fiber.Ctx, err error) error {
	var verr *services.ValidationError
	switch {
	case errors.Is(err, errInvalidBody):
		h.logger.Warn("invalid product request body", "method", c.Method(), "path", c.Path(), "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  verr.Messages(),
			"errors": verr.Fields,
		})
	case errors.Is(err, services.ErrProductNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Product not found",
		})
	default:
		h.logger.Error("product request failed", "method", c.Method(), "path", c.Path(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
}
