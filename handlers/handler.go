package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"jewelai/analytics"
	"jewelai/inference"
	"jewelai/insights"
	"jewelai/reports"
)

// Version is reported by the root endpoint.
const Version = "1.0.0"

// Handler serves the HTTP API over the injected services.
type Handler struct {
	analytics *analytics.Service
	predictor *inference.Service
	insights  *insights.Service
	reports   *reports.Exporter
}

// New builds a Handler. Every service is required; insights may be backed by
// a nil generator, which answers 503.
func New(a *analytics.Service, p *inference.Service, i *insights.Service, r *reports.Exporter) *Handler {
	return &Handler{analytics: a, predictor: p, insights: i, reports: r}
}

// errorResponse writes the standard error body.
func errorResponse(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"status": "error", "message": message})
}

// respondError maps service errors to HTTP status codes.
func respondError(c *fiber.Ctx, tag string, err error) error {
	switch {
	case errors.Is(err, analytics.ErrInvalidDateBound),
		errors.Is(err, analytics.ErrInvalidQuery),
		errors.Is(err, inference.ErrInvalidRequest):
		return errorResponse(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, inference.ErrModelUnavailable):
		return errorResponse(c, fiber.StatusServiceUnavailable, "Model not loaded")
	case errors.Is(err, insights.ErrNotConfigured):
		return errorResponse(c, fiber.StatusServiceUnavailable, err.Error())
	}
	log.Printf("❌ [%s] %v", tag, err)
	return errorResponse(c, fiber.StatusInternalServerError, err.Error())
}

// HandleRoot describes the API.
// GET /
func (h *Handler) HandleRoot(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "JewelAI API is running",
		"version": Version,
		"endpoints": []string{
			"/api/kpis/summary",
			"/api/inventory/categories",
			"/api/inventory/items",
			"/api/analytics/performance",
			"/api/analytics/predictions",
			"/api/market/trends",
			"/api/predict/sales",
			"/api/insights/market",
			"/api/reports/inventory",
			"/health",
		},
	})
}

// HandleHealth reports what was loaded at startup.
// GET /health
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(h.analytics.Health(h.predictor.Available()))
}
