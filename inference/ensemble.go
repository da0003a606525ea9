package inference

import (
	"fmt"
	"math"
)

// ModelOutput is one base model's contribution to an ensemble prediction.
type ModelOutput struct {
	Name       string
	Prediction float64
	Weight     float64
}

// Result is the combined ensemble prediction.
type Result struct {
	Value   float64
	Weights []float64
	Outputs []ModelOutput
}

// Predict scales vec and combines every base model's output by the stored weights.
func Predict(vec FeatureVector, art *Artifact) (Result, error) {
	if art == nil {
		return Result{}, ErrModelUnavailable
	}
	if len(art.Models) != len(art.Weights) {
		return Result{}, fmt.Errorf("%w: %d base models but %d weights", ErrInferenceFailure, len(art.Models), len(art.Weights))
	}

	x := vec.Values
	if art.Scaler != nil {
		scaled, err := art.Scaler.Transform(x)
		if err != nil {
			return Result{}, fmt.Errorf("%w: scaling: %v", ErrInferenceFailure, err)
		}
		x = scaled
	}

	preds := make([]float64, len(art.Models))
	for i, m := range art.Models {
		p, err := m.Model.Predict(x)
		if err != nil {
			return Result{}, fmt.Errorf("%w: model %s: %v", ErrInferenceFailure, m.Name, err)
		}
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return Result{}, fmt.Errorf("%w: model %s returned %v", ErrInferenceFailure, m.Name, p)
		}
		preds[i] = p
	}

	value := Combine(art.Weights, preds)
	outputs := make([]ModelOutput, len(preds))
	for i, p := range preds {
		outputs[i] = ModelOutput{Name: art.Models[i].Name, Prediction: p, Weight: art.Weights[i]}
	}
	weights := make([]float64, len(art.Weights))
	copy(weights, art.Weights)

	return Result{Value: value, Weights: weights, Outputs: outputs}, nil
}

// Combine returns sum(weights[i] * preds[i]) over the common length.
func Combine(weights, preds []float64) float64 {
	n := len(weights)
	if len(preds) < n {
		n = len(preds)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += weights[i] * preds[i]
	}
	return sum
}
