package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jewelai/models"
)

func day(s string) time.Time {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func sale(label, category string, value float64, date string) models.SalesRecord {
	return models.SalesRecord{LabelNo: label, Category: category, Value: value, VoucherDate: day(date)}
}

// octoberSales: item A sells twice 14 days apart (risk 50), B once (risk 5),
// C twice 5 days apart (risk 30).
func octoberSales() []models.SalesRecord {
	return []models.SalesRecord{
		sale("A", "GOLD RINGS", 100, "2025-10-01"),
		sale("A", "GOLD RINGS", 200, "2025-10-15"),
		sale("B", "GOLD RINGS", 300, "2025-10-10"),
		sale("C", "GOLD CHAINS", 400, "2025-10-05"),
		sale("C", "GOLD CHAINS", 50, "2025-10-10"),
	}
}

// quarterSales extends October with September and August sales so that each
// earlier month adds value.
func quarterSales() []models.SalesRecord {
	return append(octoberSales(),
		sale("D", "GOLD NECKLACE", 1000, "2025-09-12"),
		sale("A", "GOLD RINGS", 250, "2025-09-30"),
		sale("E", "GOLD EARRING", 500, "2025-08-20"),
	)
}

func TestRollupItems(t *testing.T) {
	items := RollupItems(octoberSales())
	require.Len(t, items, 3)

	a := items[0]
	assert.Equal(t, "A", a.LabelNo)
	assert.Equal(t, 300.0, a.ValueSum)
	assert.Equal(t, day("2025-10-01"), a.FirstDate)
	assert.Equal(t, day("2025-10-15"), a.LastDate)
	assert.Equal(t, 15, a.DaysActive)
	assert.Equal(t, 50.0, a.RiskScore, "risk is capped at 50")

	b := items[1]
	assert.Equal(t, 1, b.DaysActive, "single sale counts as one active day")
	assert.Equal(t, 5.0, b.RiskScore)

	assert.Equal(t, 30.0, items[2].RiskScore)
}

func TestKPIFromRecords(t *testing.T) {
	kpi := KPIFromRecords(octoberSales())

	assert.Equal(t, models.KPISummary{
		TotalStockValue:    1050,
		AgeingStock:        1,
		PredictedDeadstock: 1,
		FastMovingItems:    1, // C sits exactly on 30 and is not fast-moving
		TotalItems:         3,
	}, kpi)
}

func TestKPIFromRecords_Empty(t *testing.T) {
	assert.Equal(t, models.KPISummary{}, KPIFromRecords(nil))
}

func TestCategoriesFromRecords(t *testing.T) {
	cats := CategoriesFromRecords(octoberSales())
	require.Len(t, cats, 2)

	chains := cats[0]
	assert.Equal(t, "GOLD CHAINS", chains.Category)
	assert.Equal(t, 450.0, chains.StockValue)
	assert.Equal(t, 2, chains.ItemCount)
	assert.InDelta(t, 2.5, chains.AvgDaysToSell, 1e-9)
	assert.InDelta(t, 12.5, chains.RiskScore, 1e-9)
	assert.Equal(t, TrendRising, chains.Trend)

	rings := cats[1]
	assert.Equal(t, "GOLD RINGS", rings.Category)
	assert.Equal(t, 600.0, rings.StockValue)
	assert.InDelta(t, 14.0/3.0, rings.AvgDaysToSell, 1e-9)
}

func TestCategoryItemCountCountsRecordsNotItems(t *testing.T) {
	records := octoberSales()
	cats := CategoriesFromRecords(records)

	var ringItems int
	for _, it := range RollupItems(records) {
		if it.LabelNo == "A" || it.LabelNo == "B" {
			ringItems++
		}
	}
	assert.Equal(t, 2, ringItems)
	assert.Equal(t, 3, cats[1].ItemCount, "repeat sale of A is counted twice")
	assert.NotEqual(t, ringItems, cats[1].ItemCount)
}

func TestCategoryTrendLabels(t *testing.T) {
	records := []models.SalesRecord{
		sale("F", "GOLD BRACELET", 10, "2025-08-01"),
		sale("F", "GOLD BRACELET", 10, "2025-10-02"), // 62 days / 2 = 31
		sale("G", "GOLD EARRING", 10, "2025-10-01"),
		sale("H", "GOLD EARRING", 10, "2025-10-21"), // 20 days / 2 = 10
		sale("I", "GOLD NECKLACE", 10, "2025-10-01"),
		sale("J", "GOLD NECKLACE", 10, "2025-10-15"), // 14 / 2 = 7, not below 7
	}
	cats := CategoriesFromRecords(records)
	require.Len(t, cats, 3)

	assert.Equal(t, TrendFalling, cats[0].Trend)
	assert.InDelta(t, 31.0, cats[0].AvgDaysToSell, 1e-9)
	assert.Equal(t, 50.0, cats[0].RiskScore)
	assert.Equal(t, TrendStable, cats[1].Trend)
	assert.Equal(t, TrendStable, cats[2].Trend)
}

func TestAvgDaysToSellDefaults(t *testing.T) {
	assert.Equal(t, 1.0, AvgDaysToSell(0, 0))
	assert.Equal(t, 1.0, AvgDaysToSell(12, 0))
	assert.Equal(t, 1.0, AvgDaysToSell(math.NaN(), 3))
	assert.Equal(t, 4.0, AvgDaysToSell(12, 3))
	assert.Equal(t, 0.0, AvgDaysToSell(0, 1), "same-day sales are zero days, not the default")
}

func TestTrendsFromRecords(t *testing.T) {
	trends := TrendsFromRecords(octoberSales())
	require.Len(t, trends, 2)

	assert.Equal(t, models.MarketTrend{
		Category:     "GOLD CHAINS",
		TotalSales:   450,
		AvgSales:     225,
		Risk:         12.5,
		TurnoverDays: 2.5,
	}, trends[0])
	assert.Equal(t, 200.0, trends[1].AvgSales)
}

func TestEmptyWindowHasNoNaN(t *testing.T) {
	w, err := ParseWindow("2030-01-01", "2030-01-31")
	require.NoError(t, err)

	v := Aggregate(Source{Sales: quarterSales(), SalesLoaded: true}, w)
	assert.False(t, v.Fallback)
	assert.Equal(t, 0.0, v.KPI.TotalStockValue)
	assert.Empty(t, v.Categories)
	assert.Empty(t, v.Trends)
}

func turnoverTable() []models.TurnoverRow {
	return []models.TurnoverRow{
		{LabelNo: "A", Category: "GOLD RINGS", PredictedPotentialSales: 1000, DaysToSell: 4, InventoryRiskScore: 49},
		{LabelNo: "B", Category: "GOLD RINGS", PredictedPotentialSales: 3000, DaysToSell: 8, InventoryRiskScore: 46},
		{LabelNo: "C", Category: "GOLD CHAINS", PredictedPotentialSales: 500, DaysToSell: 40, InventoryRiskScore: 10},
		{LabelNo: "D", Category: "GOLD CHAINS", PredictedPotentialSales: 700, DaysToSell: 30, InventoryRiskScore: 30},
		{LabelNo: "E", Category: "GOLD EARRING", PredictedPotentialSales: 200, DaysToSell: 2, InventoryRiskScore: 48},
	}
}

func TestKPIFromTurnover(t *testing.T) {
	kpi := KPIFromTurnover(turnoverTable())

	assert.Equal(t, models.KPISummary{
		TotalStockValue:    5400,
		AgeingStock:        3, // 49, 46, 48
		PredictedDeadstock: 1, // only 49 is above 48
		FastMovingItems:    1, // 10; 30 is not below 30
		TotalItems:         5,
	}, kpi)
}

func TestCategoriesFromTurnover(t *testing.T) {
	cats := CategoriesFromTurnover(turnoverTable())
	require.Len(t, cats, 3)

	chains := cats[0]
	assert.Equal(t, "GOLD CHAINS", chains.Category)
	assert.Equal(t, 1200.0, chains.StockValue)
	assert.Equal(t, 35.0, chains.AvgDaysToSell)
	assert.Equal(t, 20.0, chains.RiskScore)
	assert.Equal(t, 2, chains.ItemCount)
	assert.Equal(t, TrendFalling, chains.Trend)

	assert.Equal(t, "GOLD EARRING", cats[1].Category)
	assert.Equal(t, TrendRising, cats[1].Trend)

	rings := cats[2]
	assert.Equal(t, 6.0, rings.AvgDaysToSell)
	assert.Equal(t, 47.5, rings.RiskScore, "fallback risk is the stored mean, not recomputed")
	assert.Equal(t, TrendRising, rings.Trend)
}

func TestTrendsFromTurnover(t *testing.T) {
	trends := TrendsFromTurnover(turnoverTable())
	require.Len(t, trends, 3)

	assert.Equal(t, models.MarketTrend{
		Category:     "GOLD RINGS",
		TotalSales:   4000,
		AvgSales:     2000,
		Risk:         47.5,
		TurnoverDays: 6,
	}, trends[2])
}

func TestAggregate_FallbackSelection(t *testing.T) {
	oct, err := ParseWindow("2025-10-01", "2025-10-31")
	require.NoError(t, err)

	withSales := Source{Sales: quarterSales(), SalesLoaded: true, Turnover: turnoverTable()}
	noSales := Source{Turnover: turnoverTable()}

	assert.True(t, Aggregate(withSales, Window{}).Fallback, "no bounds uses the precomputed table")
	assert.True(t, Aggregate(noSales, oct).Fallback, "no raw dataset uses the precomputed table")

	raw := Aggregate(withSales, oct)
	assert.False(t, raw.Fallback)
	assert.Equal(t, 1050.0, raw.KPI.TotalStockValue)

	fb := Aggregate(noSales, oct)
	assert.Equal(t, 5400.0, fb.KPI.TotalStockValue)
	assert.Equal(t, 5, fb.KPI.TotalItems)
}

func TestAggregate_LoadedButEmptySalesUsesRawPath(t *testing.T) {
	oct, err := ParseWindow("2025-10-01", "")
	require.NoError(t, err)

	v := Aggregate(Source{Sales: []models.SalesRecord{}, SalesLoaded: true, Turnover: turnoverTable()}, oct)
	assert.False(t, v.Fallback)
	assert.Equal(t, 0, v.KPI.TotalItems)
}
