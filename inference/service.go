package inference

import (
	"fmt"
	"log"
	"math"
	"strings"

	"jewelai/models"
)

// Service answers sales predictions from a loaded ensemble artifact. A nil
// artifact is valid: the service then reports ErrModelUnavailable.
type Service struct {
	artifact *Artifact
}

// NewService wraps an (optionally nil) artifact.
func NewService(artifact *Artifact) *Service {
	return &Service{artifact: artifact}
}

// Available reports whether a model artifact is loaded.
func (s *Service) Available() bool {
	return s.artifact != nil
}

// PredictSales validates req, builds its feature vector and runs the ensemble.
func (s *Service) PredictSales(req models.PredictionRequest) (*models.PredictionResponse, error) {
	if s.artifact == nil {
		return nil, ErrModelUnavailable
	}

	req = req.WithDefaults()
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	vec, err := BuildFeatures(req, s.artifact.FeatureColumns)
	if err != nil {
		return nil, err
	}

	result, err := Predict(vec, s.artifact)
	if err != nil {
		return nil, err
	}

	log.Printf("🔮 [PREDICT] category=%s weight=%.2fg date=%s store=%s -> %.2f",
		req.Category, req.NetWeight, req.VoucherDate, req.StoreID, result.Value)

	base := make([]models.BasePrediction, len(result.Outputs))
	for i, o := range result.Outputs {
		base[i] = models.BasePrediction{Model: o.Name, Prediction: o.Prediction, Weight: o.Weight}
	}

	return &models.PredictionResponse{
		PredictedSales:  result.Value,
		Confidence:      result.Weights,
		BasePredictions: base,
		Input:           req,
		Category:        req.Category,
		WeightGrams:     req.NetWeight,
	}, nil
}

func validateRequest(req models.PredictionRequest) error {
	if strings.TrimSpace(req.Category) == "" {
		return fmt.Errorf("%w: category is required", ErrInvalidRequest)
	}
	if req.NetWeight <= 0 || math.IsNaN(req.NetWeight) || math.IsInf(req.NetWeight, 0) {
		return fmt.Errorf("%w: net_weight must be a positive number of grams", ErrInvalidRequest)
	}
	if req.Purity < 0 || math.IsNaN(req.Purity) {
		return fmt.Errorf("%w: purity must be positive", ErrInvalidRequest)
	}
	if _, err := ParseVoucherDate(req.VoucherDate); err != nil {
		return err
	}
	return nil
}
