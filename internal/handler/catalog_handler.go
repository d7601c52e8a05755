package handler

import (
	"go-warehouse-wms/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CatalogHandler struct {
	service service.CatalogService
}

func NewCatalogHandler(s service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: s}
}

// CreateProduct creates a master catalog product and fans stock entries out to
// every unit.
// POST /api/v1/products
func (h *CatalogHandler) CreateProduct(c *fiber.Ctx) error {
	var req service.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	product, err := h.service.CreateProduct(&req, getUsername(c))
	if err != nil {
		return errJSON(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Product created", "data": product})
}

// GetProducts lists the catalog with per-product totals across all units.
// GET /api/v1/products
func (h *CatalogHandler) GetProducts(c *fiber.Ctx) error {
	products, err := h.service.ListProducts()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(products)
}

// GetProduct returns one catalog product by code.
// GET /api/v1/products/:code
func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	product, err := h.service.GetProduct(c.Params("code"))
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(product)
}

// GetCategories lists the distinct catalog categories.
// GET /api/v1/products/categories
func (h *CatalogHandler) GetCategories(c *fiber.Ctx) error {
	categories, err := h.service.ListCategories()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(categories)
}
