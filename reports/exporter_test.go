package reports

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"jewelai/analytics"
	"jewelai/models"
)

type fakeViews struct {
	views analytics.Views
	err   error
}

func (f fakeViews) Views(string, string) (analytics.Views, error) {
	return f.views, f.err
}

func sampleViews() analytics.Views {
	return analytics.Views{
		KPI: models.KPISummary{TotalStockValue: 1050.456, TotalItems: 3, AgeingStock: 1, PredictedDeadstock: 1, FastMovingItems: 1},
		Categories: []models.CategorySummary{
			{Category: "GOLD CHAINS", StockValue: 450, ItemCount: 2, AvgDaysToSell: 2.5, RiskScore: 12.5, Trend: analytics.TrendRising},
			{Category: "GOLD RINGS", StockValue: 600, ItemCount: 3, AvgDaysToSell: 14.0 / 3.0, RiskScore: 23.333333, Trend: analytics.TrendRising},
		},
		Trends: []models.MarketTrend{
			{Category: "GOLD CHAINS", TotalSales: 450, AvgSales: 225, Risk: 12.5, TurnoverDays: 2.5},
		},
	}
}

func raw(t *testing.T, wb *excelize.File, sheet, cell string) string {
	t.Helper()
	v, err := wb.GetCellValue(sheet, cell, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	return v
}

func TestInventoryReport(t *testing.T) {
	data, err := NewExporter(fakeViews{views: sampleViews()}).InventoryReport("2025-10-01", "2025-10-31")
	require.NoError(t, err)

	wb, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer wb.Close()

	assert.Equal(t, []string{sheetSummary, sheetCategories, sheetTrends}, wb.GetSheetList())

	assert.Equal(t, "Metric", raw(t, wb, sheetSummary, "A1"))
	assert.Equal(t, "2025-10-01", raw(t, wb, sheetSummary, "B2"))
	assert.Equal(t, "sales records", raw(t, wb, sheetSummary, "B4"))
	assert.Equal(t, "1050.46", raw(t, wb, sheetSummary, "B5"))
	assert.Equal(t, "3", raw(t, wb, sheetSummary, "B6"))

	assert.Equal(t, "Category", raw(t, wb, sheetCategories, "A1"))
	assert.Equal(t, "GOLD RINGS", raw(t, wb, sheetCategories, "A3"))
	assert.Equal(t, "4.67", raw(t, wb, sheetCategories, "D3"))
	assert.Equal(t, "23.33", raw(t, wb, sheetCategories, "E3"))
	assert.Equal(t, analytics.TrendRising, raw(t, wb, sheetCategories, "F3"))

	assert.Equal(t, "225", raw(t, wb, sheetTrends, "C2"))
	assert.Equal(t, "", raw(t, wb, sheetTrends, "A3"))
}

func TestInventoryReport_HeaderIsBold(t *testing.T) {
	wb, err := Build(sampleViews(), "", "")
	require.NoError(t, err)
	defer wb.Close()

	styleID, err := wb.GetCellStyle(sheetCategories, "F1")
	require.NoError(t, err)
	style, err := wb.GetStyle(styleID)
	require.NoError(t, err)
	require.NotNil(t, style.Font)
	assert.True(t, style.Font.Bold)
}

func TestInventoryReport_FallbackAndEmpty(t *testing.T) {
	wb, err := Build(analytics.Views{Fallback: true}, "", "")
	require.NoError(t, err)
	defer wb.Close()

	assert.Equal(t, "all", raw(t, wb, sheetSummary, "B2"))
	assert.Equal(t, "precomputed turnover table", raw(t, wb, sheetSummary, "B4"))
	assert.Equal(t, "", raw(t, wb, sheetCategories, "A2"))
}

func TestInventoryReport_ViewError(t *testing.T) {
	_, err := NewExporter(fakeViews{err: analytics.ErrInvalidDateBound}).InventoryReport("x", "")
	assert.ErrorIs(t, err, analytics.ErrInvalidDateBound)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "inventory_report.xlsx", FileName("", ""))
	assert.Equal(t, "inventory_report_2025-10-01_all.xlsx", FileName("2025-10-01", ""))
}

func TestMoney(t *testing.T) {
	assert.Equal(t, 4.67, money(14.0/3.0))
	assert.Equal(t, 1050.46, money(1050.456))
	assert.Equal(t, 0.0, money(0))
}
