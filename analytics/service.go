package analytics

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"jewelai/dataset"
	"jewelai/models"
	"jewelai/utils"
)

const (
	DefaultComparisonLimit = 50
	DefaultItemsPageSize   = 100
	MaxItemsPageSize       = 1000
)

// ErrInvalidQuery is returned for malformed non-date query parameters.
var ErrInvalidQuery = errors.New("invalid query")

// ErrMetricsUnavailable is returned when no metrics document was loaded.
var ErrMetricsUnavailable = errors.New("model metrics not loaded")

// Service answers the read-only analytics endpoints over a dataset store.
type Service struct {
	store *dataset.Store
}

// NewService wires the service to the shared store.
func NewService(store *dataset.Store) *Service {
	return &Service{store: store}
}

func (s *Service) source() Source {
	sales, loaded := s.store.Sales()
	return Source{Sales: sales, SalesLoaded: loaded, Turnover: s.store.Turnover()}
}

// Views parses the date bounds and derives all three views.
func (s *Service) Views(startDate, endDate string) (Views, error) {
	w, err := ParseWindow(startDate, endDate)
	if err != nil {
		return Views{}, err
	}
	return Aggregate(s.source(), w), nil
}

// KPISummary returns the KPI summary for the optional window.
func (s *Service) KPISummary(startDate, endDate string) (models.KPISummary, error) {
	w, err := ParseWindow(startDate, endDate)
	if err != nil {
		return models.KPISummary{}, err
	}
	src := s.source()
	if UsesFallback(src, w) {
		kpi := KPIFromTurnover(src.Turnover)
		log.Printf("📊 [KPI] precomputed table: %d items, stock value %.2f", kpi.TotalItems, kpi.TotalStockValue)
		return kpi, nil
	}
	kpi := KPIFromRecords(FilterByDate(src.Sales, w))
	log.Printf("📊 [KPI] window %s: %d items, stock value %.2f", w, kpi.TotalItems, kpi.TotalStockValue)
	return kpi, nil
}

// Categories returns the inventory category breakdown for the optional window.
func (s *Service) Categories(startDate, endDate string) ([]models.CategorySummary, error) {
	w, err := ParseWindow(startDate, endDate)
	if err != nil {
		return nil, err
	}
	src := s.source()
	if UsesFallback(src, w) {
		return CategoriesFromTurnover(src.Turnover), nil
	}
	return CategoriesFromRecords(FilterByDate(src.Sales, w)), nil
}

// MarketTrends returns the per-category market view for the optional window.
func (s *Service) MarketTrends(startDate, endDate string) ([]models.MarketTrend, error) {
	w, err := ParseWindow(startDate, endDate)
	if err != nil {
		return nil, err
	}
	src := s.source()
	if UsesFallback(src, w) {
		return TrendsFromTurnover(src.Turnover), nil
	}
	return TrendsFromRecords(FilterByDate(src.Sales, w)), nil
}

// PredictionComparison returns the first limit actual-vs-predicted rows.
func (s *Service) PredictionComparison(limit int) ([]models.PredictionComparison, error) {
	if limit < 0 {
		return nil, fmt.Errorf("%w: limit must not be negative", ErrInvalidQuery)
	}
	rows := s.store.Evaluations()
	if limit < len(rows) {
		rows = rows[:limit]
	}
	out := make([]models.PredictionComparison, 0, len(rows))
	for _, r := range rows {
		category := r.ProductCategory
		if category == "" {
			category = "Unknown"
		}
		out = append(out, models.PredictionComparison{
			Actual:    r.ActualSales,
			Predicted: r.EnsemblePrediction,
			Category:  category,
		})
	}
	return out, nil
}

// Performance returns the training metrics of the loaded ensemble.
func (s *Service) Performance() (*models.PerformanceReport, error) {
	m := s.store.Metrics()
	if m == nil {
		return nil, ErrMetricsUnavailable
	}
	return &models.PerformanceReport{
		Ensemble:     m.Ensemble,
		BaseModels:   m.BaseModels,
		TrainingInfo: m.TrainingInfo,
	}, nil
}

// ItemFilter narrows the precomputed inventory item list.
type ItemFilter struct {
	Category string
	RiskMin  float64
	RiskMax  float64
	Page     int
	PageSize int
}

// InventoryItems lists precomputed items matching f, one page at a time.
// Total counts every match, not just the returned page.
func (s *Service) InventoryItems(f ItemFilter) (*models.InventoryItemsResponse, error) {
	if f.RiskMin > f.RiskMax {
		return nil, fmt.Errorf("%w: risk_min %.2f is above risk_max %.2f", ErrInvalidQuery, f.RiskMin, f.RiskMax)
	}
	if f.PageSize > MaxItemsPageSize {
		return nil, fmt.Errorf("%w: page_size %d is above %d", ErrInvalidQuery, f.PageSize, MaxItemsPageSize)
	}
	if f.PageSize <= 0 {
		f.PageSize = DefaultItemsPageSize
	}
	if f.Page <= 0 {
		f.Page = 1
	}

	category := strings.TrimSpace(f.Category)
	matches := make([]models.TurnoverRow, 0)
	for _, r := range s.store.Turnover() {
		if category != "" && !strings.EqualFold(r.Category, category) {
			continue
		}
		if r.InventoryRiskScore < f.RiskMin || r.InventoryRiskScore > f.RiskMax {
			continue
		}
		matches = append(matches, r)
	}

	// Compare page numbers before multiplying so huge pages cannot overflow.
	start := len(matches)
	if f.Page-1 <= len(matches)/f.PageSize {
		start = min((f.Page-1)*f.PageSize, len(matches))
	}
	end := start + min(f.PageSize, len(matches)-start)

	return &models.InventoryItemsResponse{
		Total:      len(matches),
		Items:      matches[start:end],
		Pagination: utils.CreatePagination(len(matches), f.Page, f.PageSize),
	}, nil
}

// Health summarizes what the store loaded.
func (s *Service) Health(modelLoaded bool) models.HealthStatus {
	sales, _ := s.store.Sales()
	return models.HealthStatus{
		Status:         "healthy",
		DataLoaded:     s.store.DataLoaded(),
		ModelLoaded:    modelLoaded,
		InventoryItems: len(s.store.Turnover()),
		SalesRecords:   len(sales),
	}
}
