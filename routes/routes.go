package routes

import (
	"github.com/gofiber/fiber/v2"

	"jewelai/handlers"
)

// SetupRoutes defines all the routes for the application.
func SetupRoutes(app *fiber.App, h *handlers.Handler) {
	app.Get("/", h.HandleRoot)
	app.Get("/health", h.HandleHealth)

	api := app.Group("/api")

	// --- Analytics ---
	api.Get("/kpis/summary", h.HandleGetKPISummary)
	api.Get("/market/trends", h.HandleGetMarketTrends)
	api.Get("/analytics/predictions", h.HandleGetPredictionComparison)
	api.Get("/analytics/performance", h.HandleGetPerformance)

	// --- Inventory ---
	inventory := api.Group("/inventory")
	inventory.Get("/categories", h.HandleGetCategories)
	inventory.Get("/items", h.HandleGetInventoryItems)

	// --- Prediction ---
	api.Post("/predict/sales", h.HandlePredictSales)

	// --- AI insights and exports ---
	api.Get("/insights/market", h.HandleGetMarketInsights)
	api.Get("/reports/inventory", h.HandleGetInventoryReport)
}
