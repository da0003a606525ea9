package insights

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jewelai/analytics"
	"jewelai/models"
)

type fakeGenerator struct {
	reply  string
	err    error
	prompt string
}

func (f *fakeGenerator) GenerateText(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.reply, f.err
}

type fakeViews struct {
	views analytics.Views
	err   error
}

func (f fakeViews) Views(string, string) (analytics.Views, error) {
	return f.views, f.err
}

func sampleViews() fakeViews {
	return fakeViews{views: analytics.Views{
		KPI: models.KPISummary{TotalStockValue: 125000, TotalItems: 40, AgeingStock: 6, PredictedDeadstock: 2, FastMovingItems: 11},
		Categories: []models.CategorySummary{
			{Category: "GOLD RINGS", StockValue: 80000, ItemCount: 25, AvgDaysToSell: 4.5, RiskScore: 22.5},
			{Category: "GOLD CHAINS", StockValue: 45000, ItemCount: 15, AvgDaysToSell: 12, RiskScore: 40},
		},
	}}
}

func fixedNow() time.Time {
	return time.Date(2025, 10, 18, 9, 0, 0, 0, time.UTC)
}

func TestMarketOverview(t *testing.T) {
	gen := &fakeGenerator{reply: "```json\n" +
		`{"summary":"Demand for rings is strong ahead of Diwali.",` +
		`"trendingCategories":[{"name":"GOLD RINGS","trend":"up","change":"+15%"}],` +
		`"seasonalInsights":[{"title":"Festive season","description":"Gifting peaks.","emoji":"🪔"}],` +
		`"recommendations":["Restock rings"]}` + "\n```"}
	svc := NewService(sampleViews(), gen)
	svc.now = fixedNow

	got, err := svc.MarketOverview(context.Background(), "2025-10-01", "2025-10-31")
	require.NoError(t, err)

	assert.Equal(t, "Demand for rings is strong ahead of Diwali.", got.Summary)
	require.Len(t, got.TrendingCategories, 1)
	assert.Equal(t, "up", got.TrendingCategories[0].Trend)
	assert.Equal(t, []string{"Restock rings"}, got.Recommendations)
	assert.Equal(t, fixedNow(), got.GeneratedAt)
	assert.Equal(t, "2025-10-01", got.StartDate)

	assert.Contains(t, gen.prompt, "2025-10-01 to 2025-10-31")
	assert.Contains(t, gen.prompt, "GOLD RINGS: stock value 80000, 25 items")
	assert.Contains(t, gen.prompt, "Total stock value: 125000")
	assert.Contains(t, gen.prompt, "Today's Date: 2025-10-18")
}

func TestMarketOverview_NotConfigured(t *testing.T) {
	svc := NewService(sampleViews(), nil)
	assert.False(t, svc.Configured())

	_, err := svc.MarketOverview(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestMarketOverview_PropagatesViewErrors(t *testing.T) {
	views := fakeViews{err: analytics.ErrInvalidDateBound}
	gen := &fakeGenerator{}

	_, err := NewService(views, gen).MarketOverview(context.Background(), "bad", "")
	assert.ErrorIs(t, err, analytics.ErrInvalidDateBound)
	assert.Empty(t, gen.prompt, "model is not called for a bad window")
}

func TestMarketOverview_GeneratorError(t *testing.T) {
	boom := errors.New("quota exceeded")
	_, err := NewService(sampleViews(), &fakeGenerator{err: boom}).MarketOverview(context.Background(), "", "")
	assert.ErrorIs(t, err, boom)
}

func TestMarketOverview_BadReply(t *testing.T) {
	for _, reply := range []string{"I cannot help with that.", "{not json}"} {
		_, err := NewService(sampleViews(), &fakeGenerator{reply: reply}).MarketOverview(context.Background(), "", "")
		assert.ErrorIs(t, err, ErrBadResponse, reply)
	}
}

func TestMarketOverview_MissingListsAreEmpty(t *testing.T) {
	got, err := NewService(sampleViews(), &fakeGenerator{reply: `{"summary":"quiet month"}`}).
		MarketOverview(context.Background(), "", "")
	require.NoError(t, err)
	assert.NotNil(t, got.TrendingCategories)
	assert.NotNil(t, got.SeasonalInsights)
	assert.NotNil(t, got.Recommendations)
}

func TestBuildPrompt_AllDataAndEmptyCategories(t *testing.T) {
	p := buildPrompt(analytics.Views{}, "", "", fixedNow())
	assert.Contains(t, p, "Period: all available data")
	assert.Contains(t, p, "No category data for this period.")
}

func TestExtractJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, extractJSON(`noise {"a":1} trailing`))
	assert.Equal(t, "", extractJSON("no braces"))
	assert.Equal(t, "", extractJSON("} backwards {"))
}
