package tree

import (
	"context"
	"fmt"
	"strings"

	"github.com/jules-chstlr/sascade/dataset"
	"github.com/jules-chstlr/sascade/feature"
)

/*
Tree represents a binary classification tree. It is composed of a root
node, the ordered slice of continuous features its split nodes refer
to by index, and the discrete label feature it predicts.
*/
type Tree struct {
	Root     *Node
	Features []*feature.ContinuousFeature
	Label    *feature.DiscreteFeature
}

/*
New takes a root node, a slice of continuous features and a label
feature and returns a tree with them.
*/
func New(root *Node, features []*feature.ContinuousFeature, label *feature.DiscreteFeature) *Tree {
	return &Tree{root, features, label}
}

/*
Predict takes a sample and returns a prediction according to the tree,
or an error if the prediction could not be made. Samples that do not
define a float64 value for a feature the tree needs to compare on
their path cannot be predicted and yield ErrCannotPredictFromSample.
*/
func (t *Tree) Predict(ctx context.Context, s feature.Sample) (*Prediction, error) {
	if t == nil || t.Root == nil {
		return nil, fmt.Errorf("nil tree cannot predict samples")
	}
	n := t.Root
	for !n.Leaf() {
		if n.FeatureIndex < 0 || n.FeatureIndex >= len(t.Features) {
			return nil, fmt.Errorf("predicting sample: split node refers to unknown feature %d", n.FeatureIndex)
		}
		f := t.Features[n.FeatureIndex]
		v, err := s.ValueFor(ctx, f)
		if err != nil {
			return nil, err
		}
		value, ok := v.(float64)
		if !ok {
			return nil, ErrCannotPredictFromSample
		}
		if value <= n.Threshold {
			n = n.Left
		} else {
			n = n.Right
		}
	}
	if n.Prediction == nil {
		return nil, ErrCannotPredictFromSample
	}
	return n.Prediction, nil
}

/*
Test takes a context and a dataset and returns three values:
  - the prediction success rate of the tree over the dataset for its label
  - the number of samples the tree could not predict because of
    ErrCannotPredictFromSample errors
  - an error if a prediction failed for any other reason. If this is
    not nil, the other values will be 0.0 and 0 respectively.
*/
func (t *Tree) Test(ctx context.Context, s dataset.Dataset) (float64, int, error) {
	if t == nil {
		return 0.0, 0, nil
	}
	samples, err := s.Samples(ctx)
	if err != nil {
		return 0.0, 0, err
	}
	count, err := s.Count(ctx)
	if err != nil {
		return 0.0, 0, err
	}
	var result float64
	var errCount int
	for _, sample := range samples {
		p, err := t.Predict(ctx, sample)
		if err != nil {
			if err != ErrCannotPredictFromSample {
				return 0.0, 0, err
			}
			errCount++
			continue
		}
		pV, _ := p.PredictedValue()
		v, err := sample.ValueFor(ctx, t.Label)
		if err != nil {
			return 0.0, 0, err
		}
		if pV == fmt.Sprintf("%v", v) {
			result += 1.0
		}
	}
	result = result / float64(count)
	return result, errCount, nil
}

func (t *Tree) String() string {
	if t == nil || t.Root == nil {
		return "[]\n"
	}
	return t.subtreeString(t.Root)
}

func (t *Tree) subtreeString(n *Node) string {
	var result string
	if n.Leaf() {
		value, prob := n.Prediction.PredictedValue()
		result = fmt.Sprintf("{ %s = %s (%.2f) }\n", t.Label.Name(), value, prob)
	} else {
		result = fmt.Sprintf("{ %s <= %v }\n|\n", t.Features[n.FeatureIndex].Name(), n.Threshold)
		for i, branch := range []*Node{n.Left, n.Right} {
			for j, line := range strings.Split(t.subtreeString(branch), "\n") {
				if len(line) == 0 {
					continue
				}
				if j == 0 {
					result = fmt.Sprintf("%s|__%s\n", result, line)
				} else if i == 1 {
					result = fmt.Sprintf("%s   %s\n", result, line)
				} else {
					result = fmt.Sprintf("%s|  %s\n", result, line)
				}
			}
		}
	}
	return result
}
