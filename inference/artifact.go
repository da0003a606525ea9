package inference

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// NamedModel is a base model together with its name in the artifact.
type NamedModel struct {
	Name  string
	Model Regressor
}

// Artifact is the trained ensemble: feature schema, scaler, base models and
// their combination weights. Weights[i] belongs to Models[i]. The weights are
// fitted offline and are not checked to sum to one.
type Artifact struct {
	FeatureColumns []string
	Scaler         Scaler
	Models         []NamedModel
	Weights        []float64
}

// ModelNames returns the base model names in declared order.
func (a *Artifact) ModelNames() []string {
	names := make([]string, len(a.Models))
	for i, m := range a.Models {
		names[i] = m.Name
	}
	return names
}

type artifactFile struct {
	FeatureColumns []string `json:"feature_columns"`
	Scaler         struct {
		Mean  []float64 `json:"mean"`
		Scale []float64 `json:"scale"`
	} `json:"scaler"`
	BaseModels []modelFile `json:"base_models"`
	Weights    []float64   `json:"weights"`
}

// base_models is a list rather than an object so the declared order survives decoding.
type modelFile struct {
	Name         string           `json:"name"`
	Type         string           `json:"type"`
	Intercept    float64          `json:"intercept"`
	Coefficients []float64        `json:"coefficients"`
	BaseScore    float64          `json:"base_score"`
	LearningRate *float64         `json:"learning_rate"`
	Trees        []RegressionTree `json:"trees"`
}

// LoadArtifact reads a JSON ensemble artifact from disk.
func LoadArtifact(path string) (*Artifact, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeArtifact(f)
}

// DecodeArtifact parses a JSON ensemble artifact.
func DecodeArtifact(r io.Reader) (*Artifact, error) {
	var raw artifactFile
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode artifact: %w", err)
	}
	if len(raw.FeatureColumns) == 0 {
		return nil, fmt.Errorf("artifact has no feature_columns")
	}
	if len(raw.BaseModels) == 0 {
		return nil, fmt.Errorf("artifact has no base_models")
	}
	n := len(raw.FeatureColumns)
	if len(raw.Scaler.Mean) != n || len(raw.Scaler.Scale) != n {
		return nil, fmt.Errorf("scaler has %d means and %d scales for %d feature_columns",
			len(raw.Scaler.Mean), len(raw.Scaler.Scale), n)
	}
	if len(raw.Weights) != len(raw.BaseModels) {
		return nil, fmt.Errorf("artifact has %d base_models but %d weights", len(raw.BaseModels), len(raw.Weights))
	}

	art := &Artifact{
		FeatureColumns: raw.FeatureColumns,
		Scaler:         StandardScaler{Mean: raw.Scaler.Mean, Scale: raw.Scaler.Scale},
		Weights:        raw.Weights,
	}
	for i, mf := range raw.BaseModels {
		model, err := mf.regressor(n)
		if err != nil {
			return nil, fmt.Errorf("base model %d (%s): %w", i, mf.Name, err)
		}
		name := mf.Name
		if name == "" {
			name = fmt.Sprintf("model_%d", i)
		}
		art.Models = append(art.Models, NamedModel{Name: name, Model: model})
	}
	return art, nil
}

// regressor builds the model and checks it against n feature columns.
func (mf modelFile) regressor(n int) (Regressor, error) {
	switch mf.Type {
	case "linear", "ridge", "lasso":
		if len(mf.Coefficients) != n {
			return nil, fmt.Errorf("linear model has %d coefficients for %d features", len(mf.Coefficients), n)
		}
		return LinearModel{Intercept: mf.Intercept, Coefficients: mf.Coefficients}, nil
	case "forest", "random_forest":
		if len(mf.Trees) == 0 {
			return nil, fmt.Errorf("forest has no trees")
		}
		if err := checkTrees(mf.Trees, n); err != nil {
			return nil, err
		}
		return ForestModel{Trees: mf.Trees}, nil
	case "boosted", "gradient_boosting", "xgboost":
		if err := checkTrees(mf.Trees, n); err != nil {
			return nil, err
		}
		lr := 1.0
		if mf.LearningRate != nil {
			lr = *mf.LearningRate
		}
		return BoostedModel{BaseScore: mf.BaseScore, LearningRate: lr, Trees: mf.Trees}, nil
	default:
		return nil, fmt.Errorf("unsupported model type %q", mf.Type)
	}
}

// checkTrees rejects empty trees, splits on unknown features and children
// outside the node list.
func checkTrees(trees []RegressionTree, n int) error {
	for t, tree := range trees {
		if len(tree.Nodes) == 0 {
			return fmt.Errorf("tree %d is empty", t)
		}
		for i, node := range tree.Nodes {
			if node.Left < 0 {
				continue
			}
			if node.Feature < 0 || node.Feature >= n {
				return fmt.Errorf("tree %d node %d splits on feature %d of %d", t, i, node.Feature, n)
			}
			if node.Left >= len(tree.Nodes) || node.Right < 0 || node.Right >= len(tree.Nodes) {
				return fmt.Errorf("tree %d node %d points outside the tree", t, i)
			}
		}
	}
	return nil
}
