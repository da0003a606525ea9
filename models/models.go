package models

import "time"

// --- Source data ---

// SalesRecord is a single raw sales transaction. VoucherDate is a calendar date at UTC midnight.
type SalesRecord struct {
	LabelNo     string    `json:"label_no"`
	Category    string    `json:"category"`
	Value       float64   `json:"value"`
	VoucherDate time.Time `json:"voucher_date"`
}

// TurnoverRow is one item of the precomputed inventory turnover table.
type TurnoverRow struct {
	LabelNo                 string  `json:"label_no"`
	Category                string  `json:"category"`
	PredictedPotentialSales float64 `json:"predicted_potential_sales"`
	DaysToSell              float64 `json:"days_to_sell"`
	InventoryRiskScore      float64 `json:"inventory_risk_score"`
	TurnoverCategory        string  `json:"turnover_category"`
}

// PredictionEvaluation is one row of the offline actual-vs-predicted evaluation table.
type PredictionEvaluation struct {
	ActualSales        float64 `json:"actual_sales"`
	EnsemblePrediction float64 `json:"ensemble_prediction"`
	ProductCategory    string  `json:"product_category"`
}

// EnsembleScores holds the headline regression metrics of the trained ensemble.
type EnsembleScores struct {
	R2Score float64 `json:"r2_score"`
	RMSE    float64 `json:"rmse"`
	MAE     float64 `json:"mae"`
	MAPE    float64 `json:"mape"`
}

// EnsembleMetrics mirrors the metrics document written by the training pipeline.
// BaseModels and TrainingInfo are passed through untouched.
type EnsembleMetrics struct {
	Ensemble     EnsembleScores         `json:"ensemble"`
	BaseModels   map[string]interface{} `json:"base_models"`
	TrainingInfo map[string]interface{} `json:"training_info"`
}

// --- Prediction API ---

// PredictionRequest defines the body for POST /api/predict/sales.
type PredictionRequest struct {
	Category    string  `json:"category"`
	NetWeight   float64 `json:"net_weight"`
	VoucherDate string  `json:"voucher_date"`
	Purity      float64 `json:"purity"`
	StoreID     string  `json:"store_id"`
}

const (
	DefaultPurity  = 22.0
	DefaultStoreID = "MAIN_STORE"
)

// WithDefaults fills in the optional purity and store fields.
func (r PredictionRequest) WithDefaults() PredictionRequest {
	if r.Purity == 0 {
		r.Purity = DefaultPurity
	}
	if r.StoreID == "" {
		r.StoreID = DefaultStoreID
	}
	return r
}

// BasePrediction is the output of a single base model of the ensemble.
type BasePrediction struct {
	Model      string  `json:"model"`
	Prediction float64 `json:"prediction"`
	Weight     float64 `json:"weight"`
}

// PredictionResponse is returned by POST /api/predict/sales.
//
// Confidence carries the raw ensemble weights, not a calibrated confidence
// interval. The field name is kept for existing dashboard clients.
type PredictionResponse struct {
	PredictedSales  float64           `json:"predicted_sales"`
	Confidence      []float64         `json:"confidence"`
	BasePredictions []BasePrediction  `json:"base_predictions"`
	Input           PredictionRequest `json:"input"`
	Category        string            `json:"category"`
	WeightGrams     float64           `json:"weight_grams"`
}

// --- Inventory API ---

// InventoryItemsResponse is returned by GET /api/inventory/items.
type InventoryItemsResponse struct {
	Total      int           `json:"total"`
	Items      []TurnoverRow `json:"items"`
	Pagination *Pagination   `json:"pagination"`
}

// Pagination represents the pagination details.
type Pagination struct {
	TotalItems  int `json:"totalItems"`
	CurrentPage int `json:"currentPage"`
	PageSize    int `json:"pageSize"`
	TotalPages  int `json:"totalPages"`
}

// HealthStatus is returned by GET /health.
type HealthStatus struct {
	Status         string `json:"status"`
	DataLoaded     bool   `json:"data_loaded"`
	ModelLoaded    bool   `json:"model_loaded"`
	InventoryItems int    `json:"inventory_items"`
	SalesRecords   int    `json:"sales_records"`
}
