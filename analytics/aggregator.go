package analytics

import (
	"math"
	"sort"
	"time"

	"jewelai/models"
)

// Risk thresholds shared by the raw and precomputed paths.
const (
	ageingThreshold    = 45.0
	deadstockThreshold = 48.0
	fastMovingCeiling  = 30.0

	risingBelowDays  = 7.0
	fallingAboveDays = 30.0

	maxRiskScore      = 50.0
	riskPerActiveDay  = 5.0
	defaultDaysToSell = 1.0
)

const (
	TrendRising  = "rising"
	TrendFalling = "falling"
	TrendStable  = "stable"
)

// ItemRollup aggregates every transaction of one label_no.
type ItemRollup struct {
	LabelNo    string
	ValueSum   float64
	FirstDate  time.Time
	LastDate   time.Time
	DaysActive int
	RiskScore  float64
}

// RiskScore converts a day count into the 0-50 risk scale.
func RiskScore(days float64) float64 {
	return math.Min(days*riskPerActiveDay, maxRiskScore)
}

// TrendLabel classifies a category by its average days to sell.
func TrendLabel(avgDaysToSell float64) string {
	switch {
	case avgDaysToSell < risingBelowDays:
		return TrendRising
	case avgDaysToSell > fallingAboveDays:
		return TrendFalling
	default:
		return TrendStable
	}
}

// AvgDaysToSell spreads a category's active span over its record count,
// defaulting to 1 when the ratio is undefined.
func AvgDaysToSell(spanDays float64, count int) float64 {
	if count == 0 {
		return defaultDaysToSell
	}
	v := spanDays / float64(count)
	if math.IsNaN(v) {
		return defaultDaysToSell
	}
	return v
}

func daysBetween(first, last time.Time) int {
	return int(DateOnly(last).Sub(DateOnly(first)).Hours() / 24)
}

// RollupItems groups records by label_no, sorted by label.
func RollupItems(records []models.SalesRecord) []ItemRollup {
	byLabel := make(map[string]*ItemRollup)
	for _, r := range records {
		it, ok := byLabel[r.LabelNo]
		if !ok {
			it = &ItemRollup{LabelNo: r.LabelNo, FirstDate: r.VoucherDate, LastDate: r.VoucherDate}
			byLabel[r.LabelNo] = it
		}
		it.ValueSum += r.Value
		if r.VoucherDate.Before(it.FirstDate) {
			it.FirstDate = r.VoucherDate
		}
		if r.VoucherDate.After(it.LastDate) {
			it.LastDate = r.VoucherDate
		}
	}

	items := make([]ItemRollup, 0, len(byLabel))
	for _, it := range byLabel {
		it.DaysActive = daysBetween(it.FirstDate, it.LastDate) + 1
		it.RiskScore = RiskScore(float64(it.DaysActive))
		items = append(items, *it)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].LabelNo < items[j].LabelNo })
	return items
}

// KPIFromRecords derives the KPI summary from (already filtered) sales records.
func KPIFromRecords(records []models.SalesRecord) models.KPISummary {
	var kpi models.KPISummary
	for _, r := range records {
		kpi.TotalStockValue += r.Value
	}
	items := RollupItems(records)
	kpi.TotalItems = len(items)
	for _, it := range items {
		countRisk(&kpi, it.RiskScore)
	}
	return kpi
}

func countRisk(kpi *models.KPISummary, risk float64) {
	if risk > ageingThreshold {
		kpi.AgeingStock++
	}
	if risk > deadstockThreshold {
		kpi.PredictedDeadstock++
	}
	if risk < fastMovingCeiling {
		kpi.FastMovingItems++
	}
}

type categoryGroup struct {
	category  string
	valueSum  float64
	count     int
	firstDate time.Time
	lastDate  time.Time
}

func (g categoryGroup) avgDaysToSell() float64 {
	return AvgDaysToSell(float64(daysBetween(g.firstDate, g.lastDate)), g.count)
}

func groupByCategory(records []models.SalesRecord) []categoryGroup {
	byCategory := make(map[string]*categoryGroup)
	for _, r := range records {
		g, ok := byCategory[r.Category]
		if !ok {
			g = &categoryGroup{category: r.Category, firstDate: r.VoucherDate, lastDate: r.VoucherDate}
			byCategory[r.Category] = g
		}
		g.valueSum += r.Value
		g.count++
		if r.VoucherDate.Before(g.firstDate) {
			g.firstDate = r.VoucherDate
		}
		if r.VoucherDate.After(g.lastDate) {
			g.lastDate = r.VoucherDate
		}
	}

	groups := make([]categoryGroup, 0, len(byCategory))
	for _, g := range byCategory {
		groups = append(groups, *g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].category < groups[j].category })
	return groups
}

// CategoriesFromRecords builds the category breakdown. ItemCount counts
// records, not distinct items, so repeat sales of one item inflate it.
func CategoriesFromRecords(records []models.SalesRecord) []models.CategorySummary {
	groups := groupByCategory(records)
	out := make([]models.CategorySummary, 0, len(groups))
	for _, g := range groups {
		avg := g.avgDaysToSell()
		out = append(out, models.CategorySummary{
			Category:      g.category,
			StockValue:    g.valueSum,
			AvgDaysToSell: avg,
			RiskScore:     RiskScore(avg),
			ItemCount:     g.count,
			Trend:         TrendLabel(avg),
		})
	}
	return out
}

// TrendsFromRecords builds the market view from sales records.
func TrendsFromRecords(records []models.SalesRecord) []models.MarketTrend {
	groups := groupByCategory(records)
	out := make([]models.MarketTrend, 0, len(groups))
	for _, g := range groups {
		avg := g.avgDaysToSell()
		out = append(out, models.MarketTrend{
			Category:     g.category,
			TotalSales:   g.valueSum,
			AvgSales:     g.valueSum / float64(g.count),
			Risk:         RiskScore(avg),
			TurnoverDays: avg,
		})
	}
	return out
}
