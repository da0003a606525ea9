package handlers

import (
	"github.com/gofiber/fiber/v2"

	"jewelai/models"
)

// HandlePredictSales predicts the sales value of a single item.
// POST /api/predict/sales
func (h *Handler) HandlePredictSales(c *fiber.Ctx) error {
	if !h.predictor.Available() {
		return errorResponse(c, fiber.StatusServiceUnavailable, "Model not loaded")
	}

	var req models.PredictionRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	resp, err := h.predictor.PredictSales(req)
	if err != nil {
		return respondError(c, "PREDICT", err)
	}
	return c.JSON(resp)
}
