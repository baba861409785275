package handlers

import (
	"encoding/json"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"palengke/internal/models"
	"palengke/internal/repositories"
	"palengke/internal/services"
)

// OrderHandler exposes checkout and order lookup.
type OrderHandler struct {
	checkoutService *services.CheckoutService
	orderRepo       repositories.OrderRepository
}

func NewOrderHandler(checkoutService *services.CheckoutService, orderRepo repositories.OrderRepository) *OrderHandler {
	return &OrderHandler{
		checkoutService: checkoutService,
		orderRepo:       orderRepo,
	}
}

func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/checkout", h.Checkout)
	router.Get("/orders/:id", h.GetOrder)
}

// Checkout accepts the flexible cart payload, runs the pricing resolver and
// records the order.
func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	body := c.Body()

	req, err := models.ParseCheckoutRequest(body)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "invalid JSON body",
			"message": err.Error(),
		})
	}

	result, err := h.checkoutService.Checkout(req)
	if errors.Is(err, services.ErrEmptyCart) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":    "no cart items",
			"hint":     "send cart items as a bare list, or under an \"items\" or \"cart\" key",
			"received": json.RawMessage(body),
		})
	}
	if err != nil {
		log.Printf("Checkout failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "checkout failed",
			"message": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

// GetOrder returns a recorded order with its items.
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	order, err := h.orderRepo.FindByID(c.Params("id"))
	if errors.Is(err, repositories.ErrOrderNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "order not found",
		})
	}
	if err != nil {
		log.Printf("Order lookup failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "order lookup failed",
			"message": err.Error(),
		})
	}
	return c.JSON(order)
}
