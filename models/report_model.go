package models

// KPISummary holds the headline inventory indicators for a window.
type KPISummary struct {
	TotalStockValue    float64 `json:"totalStockValue"`
	AgeingStock        int     `json:"ageingStock"`
	PredictedDeadstock int     `json:"predictedDeadstock"`
	FastMovingItems    int     `json:"fastMovingItems"`
	TotalItems         int     `json:"totalItems"`
}

// CategorySummary is one row of the inventory category breakdown.
type CategorySummary struct {
	Category      string  `json:"category"`
	StockValue    float64 `json:"stockValue"`
	AvgDaysToSell float64 `json:"avgDaysToSell"`
	RiskScore     float64 `json:"riskScore"`
	ItemCount     int     `json:"itemCount"`
	Trend         string  `json:"trend,omitempty"`
}

// MarketTrend is one row of the market view, keyed by category.
type MarketTrend struct {
	Category     string  `json:"category"`
	TotalSales   float64 `json:"total_sales"`
	AvgSales     float64 `json:"avg_sales"`
	Risk         float64 `json:"risk"`
	TurnoverDays float64 `json:"turnover_days"`
}

// PredictionComparison is one actual-vs-predicted point for the analytics chart.
type PredictionComparison struct {
	Actual    float64 `json:"actual"`
	Predicted float64 `json:"predicted"`
	Category  string  `json:"category"`
}

// PerformanceReport is returned by GET /api/analytics/performance.
type PerformanceReport struct {
	Ensemble     EnsembleScores         `json:"ensemble"`
	BaseModels   map[string]interface{} `json:"base_models"`
	TrainingInfo map[string]interface{} `json:"training_info"`
}
