package classifier

import (
	"encoding/json"
	"fmt"
	"os"

	"gonum.org/v1/gonum/floats"

	"phishguard-api/features"
)

const (
	KindGradientBoosting = "gradient_boosting"
	KindLogistic         = "logistic"
)

// Node is one split or leaf of a regression tree. Leaves have Left == Right == -1.
type Node struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Value     float64 `json:"value"`
}

func (n Node) leaf() bool { return n.Left < 0 && n.Right < 0 }

type Tree struct {
	Nodes []Node `json:"nodes"`
}

// document is the on-disk model format.
type document struct {
	Kind         string    `json:"kind"`
	NFeatures    int       `json:"n_features"`
	Init         float64   `json:"init"`
	LearningRate float64   `json:"learning_rate"`
	Trees        []Tree    `json:"trees"`
	Bias         float64   `json:"bias"`
	Weights      []float64 `json:"weights"`
}

// GradientBoosted is an additive ensemble of regression trees.
type GradientBoosted struct {
	nFeatures    int
	init         float64
	learningRate float64
	trees        []Tree
}

func NewGradientBoosted(nFeatures int, init, learningRate float64, trees []Tree) (*GradientBoosted, error) {
	for i, t := range trees {
		if err := t.validate(nFeatures); err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
	}
	return &GradientBoosted{nFeatures: nFeatures, init: init, learningRate: learningRate, trees: trees}, nil
}

func (t Tree) validate(nFeatures int) error {
	if len(t.Nodes) == 0 {
		return fmt.Errorf("empty tree")
	}
	for i, n := range t.Nodes {
		if n.leaf() {
			continue
		}
		if n.Left <= i || n.Right <= i || n.Left >= len(t.Nodes) || n.Right >= len(t.Nodes) {
			return fmt.Errorf("node %d has invalid children %d/%d", i, n.Left, n.Right)
		}
		if n.Feature < 0 || n.Feature >= nFeatures {
			return fmt.Errorf("node %d splits on feature %d of %d", i, n.Feature, nFeatures)
		}
	}
	return nil
}

func (t Tree) eval(v features.Vector) float64 {
	i := 0
	for {
		n := t.Nodes[i]
		if n.leaf() {
			return n.Value
		}
		if v[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

func (m *GradientBoosted) Predict(v features.Vector) (Output, error) {
	if err := checkLen(v, m.nFeatures); err != nil {
		return Output{}, err
	}
	contrib := make([]float64, len(m.trees))
	for i, t := range m.trees {
		contrib[i] = t.eval(v)
	}
	return decide(m.init + m.learningRate*floats.Sum(contrib)), nil
}

// Logistic is a linear model over the feature vector.
type Logistic struct {
	bias    float64
	weights []float64
}

func NewLogistic(bias float64, weights []float64) *Logistic {
	return &Logistic{bias: bias, weights: weights}
}

func (m *Logistic) Predict(v features.Vector) (Output, error) {
	if err := checkLen(v, len(m.weights)); err != nil {
		return Output{}, err
	}
	return decide(m.bias + floats.Dot(m.weights, v)), nil
}

// Load reads a model document from path.
func Load(path string) (Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}
	return Parse(data)
}

// Parse builds a model from a JSON document.
func Parse(data []byte) (Model, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse model: %w", err)
	}
	if doc.NFeatures == 0 {
		doc.NFeatures = features.Len
	}

	switch doc.Kind {
	case KindGradientBoosting:
		if len(doc.Trees) == 0 {
			return nil, fmt.Errorf("gradient boosting model has no trees")
		}
		return NewGradientBoosted(doc.NFeatures, doc.Init, doc.LearningRate, doc.Trees)
	case KindLogistic:
		if len(doc.Weights) != doc.NFeatures {
			return nil, fmt.Errorf("logistic model has %d weights, want %d", len(doc.Weights), doc.NFeatures)
		}
		return NewLogistic(doc.Bias, doc.Weights), nil
	default:
		return nil, fmt.Errorf("unknown model kind %q", doc.Kind)
	}
}
