package models

import "time"

// TrendingCategory is a category the model reports as gaining or losing interest.
type TrendingCategory struct {
	Name   string `json:"name"`
	Trend  string `json:"trend"`
	Change string `json:"change"`
}

// SeasonalInsight is a short near-term market observation.
type SeasonalInsight struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Emoji       string `json:"emoji"`
}

// MarketOverview is the structured market commentary produced by Gemini.
type MarketOverview struct {
	Summary            string             `json:"summary"`
	TrendingCategories []TrendingCategory `json:"trendingCategories"`
	SeasonalInsights   []SeasonalInsight  `json:"seasonalInsights"`
	Recommendations    []string           `json:"recommendations"`
	GeneratedAt        time.Time          `json:"generatedAt"`
	StartDate          string             `json:"startDate,omitempty"`
	EndDate            string             `json:"endDate,omitempty"`
}
