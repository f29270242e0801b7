package tree

import (
	"context"
	"math"
	"sort"

	"github.com/jules-chstlr/sascade/dataset"
	"github.com/jules-chstlr/sascade/feature"
)

/*
Split represents a candidate binary partition of a dataset on a
continuous feature: samples with values at or below the threshold on
one side, the rest on the other, with an information gain to predict
the label feature.
*/
type Split struct {
	FeatureIndex    int
	Feature         *feature.ContinuousFeature
	Threshold       float64
	Left            dataset.Dataset
	Right           dataset.Dataset
	InformationGain float64
}

/*
Grow takes a context, a dataset, a slice of continuous features, a
discrete label feature, a pruning strategy and a maximum depth, and
returns a binary classification tree grown from the dataset to predict
the label, or an error if the dataset cannot be queried.

At every node the feature and threshold producing the highest
information gain are selected; the node becomes a leaf when the
dataset entropy falls to the strategy's minimum, the maximum depth is
reached (a maxDepth of 0 means no limit), no split produces any gain
or the strategy's pruner rejects the best one.
*/
func Grow(ctx context.Context, s dataset.Dataset, features []*feature.ContinuousFeature, label *feature.DiscreteFeature, ps *PruningStrategy, maxDepth int) (*Tree, error) {
	root, err := growNode(ctx, s, features, label, ps, maxDepth, 1)
	if err != nil {
		return nil, err
	}
	return New(root, features, label), nil
}

func growNode(ctx context.Context, s dataset.Dataset, features []*feature.ContinuousFeature, label *feature.DiscreteFeature, ps *PruningStrategy, maxDepth, depth int) (*Node, error) {
	prediction, err := NewPredictionFromDataset(ctx, s, label)
	if err != nil {
		return nil, err
	}
	n := &Node{FeatureIndex: -1, Prediction: prediction}
	sEntropy, err := s.Entropy(ctx, label)
	if err != nil {
		return nil, err
	}
	if sEntropy <= ps.MinimumEntropy {
		return n, nil
	}
	if maxDepth > 0 && depth > maxDepth {
		return n, nil
	}
	var selected *Split
	for i, f := range features {
		split, err := bestSplitOn(ctx, s, f, i, label, sEntropy)
		if err != nil {
			return nil, err
		}
		if split != nil && (selected == nil || split.InformationGain > selected.InformationGain) {
			selected = split
		}
	}
	if selected == nil {
		return n, nil
	}
	prune, err := ps.Prune(ctx, s, selected, label)
	if err != nil {
		return nil, err
	}
	if prune {
		return n, nil
	}
	n.FeatureIndex = selected.FeatureIndex
	n.Threshold = selected.Threshold
	n.Left, err = growNode(ctx, selected.Left, features, label, ps, maxDepth, depth+1)
	if err != nil {
		return nil, err
	}
	n.Right, err = growNode(ctx, selected.Right, features, label, ps, maxDepth, depth+1)
	if err != nil {
		return nil, err
	}
	return n, nil
}

/*
bestSplitOn returns the split of the dataset on the given feature that
generates the most information gain, trying the midpoints between each
pair of consecutive distinct values the feature takes on the dataset.
It returns nil when the feature takes fewer than two values.
*/
func bestSplitOn(ctx context.Context, s dataset.Dataset, f *feature.ContinuousFeature, featureIndex int, label feature.Feature, entropy float64) (*Split, error) {
	values, err := s.FeatureValues(ctx, f)
	if err != nil {
		return nil, err
	}
	floatValues := make([]float64, 0, len(values))
	for _, v := range values {
		if fv, ok := v.(float64); ok {
			floatValues = append(floatValues, fv)
		}
	}
	if len(floatValues) < 2 {
		return nil, nil
	}
	sort.Float64s(floatValues)
	count, err := s.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalCount := float64(count)
	var result *Split
	for i, v := range floatValues[1:] {
		threshold := (floatValues[i] + v) / 2.0
		left, err := s.SubsetWith(ctx, feature.NewContinuousCriterion(f, math.Inf(-1), threshold))
		if err != nil {
			return nil, err
		}
		right, err := s.SubsetWith(ctx, feature.NewContinuousCriterion(f, threshold, math.Inf(1)))
		if err != nil {
			return nil, err
		}
		informationGain := entropy
		for _, subset := range []dataset.Dataset{left, right} {
			subsetEntropy, err := subset.Entropy(ctx, label)
			if err != nil {
				return nil, err
			}
			subsetCount, err := subset.Count(ctx)
			if err != nil {
				return nil, err
			}
			informationGain -= subsetEntropy * float64(subsetCount) / totalCount
		}
		if result == nil || informationGain > result.InformationGain {
			result = &Split{
				FeatureIndex:    featureIndex,
				Feature:         f,
				Threshold:       threshold,
				Left:            left,
				Right:           right,
				InformationGain: informationGain,
			}
		}
	}
	if result != nil && result.InformationGain <= 0 {
		return nil, nil
	}
	return result, nil
}
