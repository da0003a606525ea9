package insights

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"jewelai/analytics"
	"jewelai/models"
)

// ErrNotConfigured is returned when no Gemini API key was provided.
var ErrNotConfigured = errors.New("market insights are not configured")

// ErrBadResponse is returned when the model reply holds no usable JSON.
var ErrBadResponse = errors.New("failed to parse AI response format")

// maxPromptCategories bounds the category table sent to the model.
const maxPromptCategories = 15

// ViewSource provides the analytics views the overview is grounded on.
type ViewSource interface {
	Views(startDate, endDate string) (analytics.Views, error)
}

// Service produces a market overview from the current analytics views.
type Service struct {
	views ViewSource
	gen   Generator
	now   func() time.Time
}

// NewService returns an insight service. gen may be nil, in which case every
// call fails with ErrNotConfigured.
func NewService(views ViewSource, gen Generator) *Service {
	return &Service{views: views, gen: gen, now: time.Now}
}

// Configured reports whether a generator is available.
func (s *Service) Configured() bool {
	return s.gen != nil
}

// MarketOverview asks the model for commentary on the window's KPI and
// category breakdown.
func (s *Service) MarketOverview(ctx context.Context, startDate, endDate string) (*models.MarketOverview, error) {
	views, err := s.views.Views(startDate, endDate)
	if err != nil {
		return nil, err
	}
	if s.gen == nil {
		return nil, ErrNotConfigured
	}

	now := s.now()
	prompt := buildPrompt(views, startDate, endDate, now)
	log.Printf("🤖 [INSIGHTS] Requesting market overview (%d categories, fallback=%t)", len(views.Categories), views.Fallback)

	text, err := s.gen.GenerateText(ctx, prompt)
	if err != nil {
		log.Printf("❌ [INSIGHTS] Generation failed: %v", err)
		return nil, fmt.Errorf("market overview: %w", err)
	}

	overview, err := parseOverview(text)
	if err != nil {
		return nil, err
	}
	overview.GeneratedAt = now
	overview.StartDate = startDate
	overview.EndDate = endDate
	return overview, nil
}

func buildPrompt(v analytics.Views, startDate, endDate string, now time.Time) string {
	period := "all available data"
	if startDate != "" || endDate != "" {
		period = fmt.Sprintf("%s to %s", orDash(startDate), orDash(endDate))
	}

	var cats strings.Builder
	for i, c := range v.Categories {
		if i == maxPromptCategories {
			break
		}
		fmt.Fprintf(&cats, "- %s: stock value %.0f, %d items, %.1f avg days to sell, risk %.1f\n",
			c.Category, c.StockValue, c.ItemCount, c.AvgDaysToSell, c.RiskScore)
	}
	if cats.Len() == 0 {
		cats.WriteString("No category data for this period.\n")
	}

	jsonFormat := `{"summary":"string","trendingCategories":[{"name":"string","trend":"up|down","change":"+12%"}],"seasonalInsights":[{"title":"string","description":"string","emoji":"string"}],"recommendations":["string"]}`

	return fmt.Sprintf(`
        You are an expert analyst of the Indian jewellery retail market. Review the inventory figures below and give a short market overview.

        **Analysis Context:**
        - Period: %s
        - Today's Date: %s
        - Total stock value: %.0f
        - Items: %d (ageing %d, predicted deadstock %d, fast-moving %d)

        **Categories:**
        %s
        **Required Output:**
        You must provide a single, minified JSON object with the following exact structure. Do not include any markdown formatting, backticks, or explanatory text before or after the JSON object.

        %s
    `, period, now.Format("2006-01-02"), v.KPI.TotalStockValue, v.KPI.TotalItems, v.KPI.AgeingStock,
		v.KPI.PredictedDeadstock, v.KPI.FastMovingItems, cats.String(), jsonFormat)
}

func orDash(s string) string {
	if s == "" {
		return "…"
	}
	return s
}

func extractJSON(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return raw[start : end+1]
}

func parseOverview(text string) (*models.MarketOverview, error) {
	jsonStr := extractJSON(text)
	if jsonStr == "" {
		log.Printf("❌ [INSIGHTS] Could not extract JSON from response: %s", text)
		return nil, ErrBadResponse
	}
	var out models.MarketOverview
	if err := json.Unmarshal([]byte(jsonStr), &out); err != nil {
		log.Printf("❌ [INSIGHTS] Error parsing JSON: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if out.TrendingCategories == nil {
		out.TrendingCategories = []models.TrendingCategory{}
	}
	if out.SeasonalInsights == nil {
		out.SeasonalInsights = []models.SeasonalInsight{}
	}
	if out.Recommendations == nil {
		out.Recommendations = []string{}
	}
	return &out, nil
}
