package analytics

import "jewelai/models"

// Source is the data an aggregation runs over. SalesLoaded distinguishes a
// missing raw dataset from one that loaded but is empty.
type Source struct {
	Sales       []models.SalesRecord
	SalesLoaded bool
	Turnover    []models.TurnoverRow
}

// Views holds the three derived analytics views for one window.
type Views struct {
	KPI        models.KPISummary
	Categories []models.CategorySummary
	Trends     []models.MarketTrend
	Fallback   bool
}

// UsesFallback reports whether w must be answered from the precomputed
// turnover table: no raw sales dataset, or no date bound at all.
func UsesFallback(src Source, w Window) bool {
	return !src.SalesLoaded || w.IsEmpty()
}

// Aggregate derives KPI, category and market views for w.
func Aggregate(src Source, w Window) Views {
	if UsesFallback(src, w) {
		return Views{
			KPI:        KPIFromTurnover(src.Turnover),
			Categories: CategoriesFromTurnover(src.Turnover),
			Trends:     TrendsFromTurnover(src.Turnover),
			Fallback:   true,
		}
	}
	filtered := FilterByDate(src.Sales, w)
	return Views{
		KPI:        KPIFromRecords(filtered),
		Categories: CategoriesFromRecords(filtered),
		Trends:     TrendsFromRecords(filtered),
	}
}
