package inference

import "fmt"

// Regressor is a fitted model producing one scalar per input row.
// The model family is an artifact detail; callers only see Predict.
type Regressor interface {
	Predict(x []float64) (float64, error)
}

// Scaler normalizes a single feature row before it reaches the base models.
type Scaler interface {
	Transform(x []float64) ([]float64, error)
}

// StandardScaler applies (x - mean) / scale per column, as fitted offline.
type StandardScaler struct {
	Mean  []float64
	Scale []float64
}

// Transform returns a new scaled row. A zero scale leaves the centred value unchanged.
func (s StandardScaler) Transform(x []float64) ([]float64, error) {
	if len(s.Mean) != len(x) || len(s.Scale) != len(x) {
		return nil, fmt.Errorf("scaler expects %d features, got %d", len(s.Mean), len(x))
	}
	out := make([]float64, len(x))
	for i, v := range x {
		scale := s.Scale[i]
		if scale == 0 {
			scale = 1
		}
		out[i] = (v - s.Mean[i]) / scale
	}
	return out, nil
}

// LinearModel is intercept + coefficients . x.
type LinearModel struct {
	Intercept    float64
	Coefficients []float64
}

func (m LinearModel) Predict(x []float64) (float64, error) {
	if len(m.Coefficients) != len(x) {
		return 0, fmt.Errorf("linear model expects %d features, got %d", len(m.Coefficients), len(x))
	}
	sum := m.Intercept
	for i, c := range m.Coefficients {
		sum += c * x[i]
	}
	return sum, nil
}

// TreeNode is one node of a flattened regression tree. Left < 0 marks a leaf.
type TreeNode struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Value     float64 `json:"value"`
}

// RegressionTree walks from node 0, going left when x[feature] <= threshold.
type RegressionTree struct {
	Nodes []TreeNode `json:"nodes"`
}

func (t RegressionTree) Predict(x []float64) (float64, error) {
	if len(t.Nodes) == 0 {
		return 0, fmt.Errorf("empty tree")
	}
	idx := 0
	// A well-formed tree reaches a leaf in at most len(Nodes) steps.
	for steps := 0; steps <= len(t.Nodes); steps++ {
		node := t.Nodes[idx]
		if node.Left < 0 {
			return node.Value, nil
		}
		if node.Feature < 0 || node.Feature >= len(x) {
			return 0, fmt.Errorf("tree node %d splits on feature %d of %d", idx, node.Feature, len(x))
		}
		if x[node.Feature] <= node.Threshold {
			idx = node.Left
		} else {
			idx = node.Right
		}
		if idx < 0 || idx >= len(t.Nodes) {
			return 0, fmt.Errorf("tree node %d points outside the tree", idx)
		}
	}
	return 0, fmt.Errorf("tree does not terminate")
}

// ForestModel averages its trees (random forest, extra trees).
type ForestModel struct {
	Trees []RegressionTree
}

func (m ForestModel) Predict(x []float64) (float64, error) {
	if len(m.Trees) == 0 {
		return 0, fmt.Errorf("forest has no trees")
	}
	var sum float64
	for i, tree := range m.Trees {
		v, err := tree.Predict(x)
		if err != nil {
			return 0, fmt.Errorf("tree %d: %w", i, err)
		}
		sum += v
	}
	return sum / float64(len(m.Trees)), nil
}

// BoostedModel is base_score + learning_rate * sum(trees) (gradient boosting).
type BoostedModel struct {
	BaseScore    float64
	LearningRate float64
	Trees        []RegressionTree
}

func (m BoostedModel) Predict(x []float64) (float64, error) {
	sum := 0.0
	for i, tree := range m.Trees {
		v, err := tree.Predict(x)
		if err != nil {
			return 0, fmt.Errorf("tree %d: %w", i, err)
		}
		sum += v
	}
	return m.BaseScore + m.LearningRate*sum, nil
}
