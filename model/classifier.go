package model

import (
	"fmt"
	"math"

	"github.com/Jumpaku/go-screening/errors"
)

// Classifier is a trained binary classifier. Implementations are immutable
// after construction and safe for concurrent use.
type Classifier interface {
	// Features returns the input vector length the classifier was trained with.
	Features() int
	// Predict returns 0 or 1 for the given feature vector.
	Predict(features []float64) (output int, err error)
}

const defaultLogisticThreshold = 0.5

type logistic struct {
	weights   []float64
	bias      float64
	threshold float64
}

var _ Classifier = (*logistic)(nil)

func newLogistic(a Artifact) (*logistic, error) {
	if len(a.Weights) != a.Features {
		return nil, errors.NewModelError(fmt.Sprintf("got %d weights for %d features", len(a.Weights), a.Features), nil)
	}
	threshold := a.Threshold
	if threshold == 0 {
		threshold = defaultLogisticThreshold
	}
	return &logistic{
		weights:   append([]float64{}, a.Weights...),
		bias:      a.Bias,
		threshold: threshold,
	}, nil
}

func (m *logistic) Features() int {
	return len(m.weights)
}

func (m *logistic) Predict(features []float64) (output int, err error) {
	if err := checkLength(features, m.Features()); err != nil {
		return 0, err
	}
	z := m.bias
	for i, w := range m.weights {
		z += w * features[i]
	}
	if 1/(1+math.Exp(-z)) >= m.threshold {
		return 1, nil
	}
	return 0, nil
}

type tree struct {
	features int
	nodes    []Node
}

var _ Classifier = (*tree)(nil)

func newTree(a Artifact) (*tree, error) {
	for i, n := range a.Nodes {
		if n.Value != nil {
			continue
		}
		if n.Feature >= a.Features {
			return nil, errors.NewModelError(fmt.Sprintf("node %d splits on feature %d of %d", i, n.Feature, a.Features), nil)
		}
		for _, child := range []int{n.Left, n.Right} {
			if child <= i || child >= len(a.Nodes) {
				return nil, errors.NewModelError(fmt.Sprintf("node %d has invalid child %d", i, child), nil)
			}
		}
	}
	return &tree{features: a.Features, nodes: append([]Node{}, a.Nodes...)}, nil
}

func (m *tree) Features() int {
	return m.features
}

func (m *tree) Predict(features []float64) (output int, err error) {
	if err := checkLength(features, m.features); err != nil {
		return 0, err
	}
	i := 0
	for {
		n := m.nodes[i]
		if n.Value != nil {
			return *n.Value, nil
		}
		if features[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

func checkLength(features []float64, want int) error {
	if len(features) != want {
		return errors.NewModelError(fmt.Sprintf("got feature vector of length %d, want %d", len(features), want), nil)
	}
	return nil
}
