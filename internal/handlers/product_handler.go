package handlers

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"palengke/internal/repositories"
	"palengke/internal/services"
)

// ProductHandler exposes catalog reads, admin creation and demo seeding.
type ProductHandler struct {
	productService *services.ProductService
	validate       *validator.Validate
}

func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		validate:       validator.New(),
	}
}

func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/products", h.ListProducts)
	router.Get("/products/:id", h.GetProduct)
	router.Post("/products", h.CreateProduct)
	router.Post("/seed", h.Seed)
}

// ListProducts returns the catalog, optionally filtered by campus and
// category query parameters.
func (h *ProductHandler) ListProducts(c *fiber.Ctx) error {
	products, err := h.productService.List(c.Query("campus"), c.Query("category"))
	if err != nil {
		log.Printf("Product list failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "product list failed",
			"message": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"products": products,
		"count":    len(products),
	})
}

func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	product, err := h.productService.Get(c.Params("id"))
	if errors.Is(err, repositories.ErrProductNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "product not found",
		})
	}
	if err != nil {
		log.Printf("Product lookup failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "product lookup failed",
			"message": err.Error(),
		})
	}
	return c.JSON(product)
}

// CreateProduct adds a catalog entry after validating the payload.
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var input services.CreateProductInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "invalid JSON body",
			"message": err.Error(),
		})
	}
	if err := h.validate.Struct(input); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":   "validation failed",
			"message": err.Error(),
		})
	}

	product, err := h.productService.Create(input)
	if err != nil {
		log.Printf("Product creation failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "product creation failed",
			"message": err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// Seed inserts the demo catalog when the products table is empty.
func (h *ProductHandler) Seed(c *fiber.Ctx) error {
	seeded, err := h.productService.Seed()
	if err != nil {
		log.Printf("Seeding failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "seeding failed",
			"message": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"seeded": seeded,
	})
}
