package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"jewelai/reports"
)

// HandleGetMarketInsights asks Gemini for a market overview of the window.
// GET /api/insights/market
func (h *Handler) HandleGetMarketInsights(c *fiber.Ctx) error {
	overview, err := h.insights.MarketOverview(c.UserContext(), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		return respondError(c, "INSIGHTS", err)
	}
	return c.JSON(overview)
}

// HandleGetInventoryReport downloads the analytics views as an XLSX workbook.
// GET /api/reports/inventory
func (h *Handler) HandleGetInventoryReport(c *fiber.Ctx) error {
	start, end := c.Query("start_date"), c.Query("end_date")
	data, err := h.reports.InventoryReport(start, end)
	if err != nil {
		return respondError(c, "REPORT", err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, reports.FileName(start, end)))
	return c.Send(data)
}
