package handlers

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"jewelai/analytics"
	"jewelai/utils"
)

// HandleGetKPISummary returns the headline inventory indicators.
// GET /api/kpis/summary?start_date=YYYY-MM-DD&end_date=YYYY-MM-DD
func (h *Handler) HandleGetKPISummary(c *fiber.Ctx) error {
	kpi, err := h.analytics.KPISummary(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		return respondError(c, "KPI", err)
	}
	return c.JSON(kpi)
}

// HandleGetCategories returns the per-category inventory breakdown.
// GET /api/inventory/categories
func (h *Handler) HandleGetCategories(c *fiber.Ctx) error {
	cats, err := h.analytics.Categories(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		return respondError(c, "CATEGORIES", err)
	}
	return c.JSON(cats)
}

// HandleGetMarketTrends returns the per-category market view.
// GET /api/market/trends
func (h *Handler) HandleGetMarketTrends(c *fiber.Ctx) error {
	trends, err := h.analytics.MarketTrends(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		return respondError(c, "TRENDS", err)
	}
	return c.JSON(trends)
}

// HandleGetPredictionComparison returns actual vs predicted sales for charting.
// GET /api/analytics/predictions?limit=50
func (h *Handler) HandleGetPredictionComparison(c *fiber.Ctx) error {
	limit, err := utils.ParseIntOr(c.Query("limit"), analytics.DefaultComparisonLimit)
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid limit: "+err.Error())
	}
	rows, err := h.analytics.PredictionComparison(limit)
	if err != nil {
		return respondError(c, "PREDICTIONS", err)
	}
	return c.JSON(rows)
}

// HandleGetPerformance returns the trained ensemble's metrics.
// GET /api/analytics/performance
func (h *Handler) HandleGetPerformance(c *fiber.Ctx) error {
	report, err := h.analytics.Performance()
	if err != nil {
		return respondError(c, "PERFORMANCE", err)
	}
	return c.JSON(report)
}

// HandleGetInventoryItems lists precomputed inventory items.
// GET /api/inventory/items?category=&risk_min=0&risk_max=100&page=1&page_size=100
func (h *Handler) HandleGetInventoryItems(c *fiber.Ctx) error {
	var (
		f   analytics.ItemFilter
		err error
	)
	f.Category = strings.ToUpper(strings.TrimSpace(c.Query("category")))

	if f.RiskMin, err = utils.ParseFloatOr(c.Query("risk_min"), 0); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid risk_min: %v", err))
	}
	if f.RiskMax, err = utils.ParseFloatOr(c.Query("risk_max"), 100); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid risk_max: %v", err))
	}
	if f.Page, err = utils.ParseIntOr(c.Query("page"), 1); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid page: %v", err))
	}
	if f.PageSize, err = utils.ParseIntOr(c.Query("page_size"), analytics.DefaultItemsPageSize); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid page_size: %v", err))
	}

	resp, err := h.analytics.InventoryItems(f)
	if err != nil {
		return respondError(c, "ITEMS", err)
	}
	return c.JSON(resp)
}
