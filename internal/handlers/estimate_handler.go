package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"palengke/internal/services"
)

// EstimateHandler exposes the delivery fee/time quote.
type EstimateHandler struct {
	estimateService *services.EstimateService
}

func NewEstimateHandler(estimateService *services.EstimateService) *EstimateHandler {
	return &EstimateHandler{estimateService: estimateService}
}

func (h *EstimateHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/estimate", h.Estimate)
}

func (h *EstimateHandler) Estimate(c *fiber.Ctx) error {
	estimate, err := h.estimateService.Estimate(c.Context(), c.Query("campus"), c.Query("pickup"))
	if err != nil {
		log.Printf("Estimate failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "estimate failed",
			"message": err.Error(),
		})
	}
	return c.JSON(estimate)
}
