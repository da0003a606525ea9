package analytics

import (
	"sort"

	"jewelai/models"
)

// KPIFromTurnover derives the KPI summary from the precomputed turnover table.
func KPIFromTurnover(rows []models.TurnoverRow) models.KPISummary {
	kpi := models.KPISummary{TotalItems: len(rows)}
	for _, r := range rows {
		kpi.TotalStockValue += r.PredictedPotentialSales
		countRisk(&kpi, r.InventoryRiskScore)
	}
	return kpi
}

type turnoverGroup struct {
	category string
	salesSum float64
	daysSum  float64
	riskSum  float64
	count    int
}

func (g turnoverGroup) mean(sum float64) float64 {
	return sum / float64(g.count)
}

func groupTurnover(rows []models.TurnoverRow) []turnoverGroup {
	byCategory := make(map[string]*turnoverGroup)
	for _, r := range rows {
		g, ok := byCategory[r.Category]
		if !ok {
			g = &turnoverGroup{category: r.Category}
			byCategory[r.Category] = g
		}
		g.salesSum += r.PredictedPotentialSales
		g.daysSum += r.DaysToSell
		g.riskSum += r.InventoryRiskScore
		g.count++
	}

	groups := make([]turnoverGroup, 0, len(byCategory))
	for _, g := range byCategory {
		groups = append(groups, *g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].category < groups[j].category })
	return groups
}

// CategoriesFromTurnover builds the category breakdown from stored per-item
// scores: sums for value, means for days and risk.
func CategoriesFromTurnover(rows []models.TurnoverRow) []models.CategorySummary {
	groups := groupTurnover(rows)
	out := make([]models.CategorySummary, 0, len(groups))
	for _, g := range groups {
		avgDays := g.mean(g.daysSum)
		out = append(out, models.CategorySummary{
			Category:      g.category,
			StockValue:    g.salesSum,
			AvgDaysToSell: avgDays,
			RiskScore:     g.mean(g.riskSum),
			ItemCount:     g.count,
			Trend:         TrendLabel(avgDays),
		})
	}
	return out
}

// TrendsFromTurnover builds the market view from the precomputed table.
func TrendsFromTurnover(rows []models.TurnoverRow) []models.MarketTrend {
	groups := groupTurnover(rows)
	out := make([]models.MarketTrend, 0, len(groups))
	for _, g := range groups {
		out = append(out, models.MarketTrend{
			Category:     g.category,
			TotalSales:   g.salesSum,
			AvgSales:     g.mean(g.salesSum),
			Risk:         g.mean(g.riskSum),
			TurnoverDays: g.mean(g.daysSum),
		})
	}
	return out
}
