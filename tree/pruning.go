package tree

import (
	"context"
	"math"

	"github.com/jules-chstlr/sascade/dataset"
	"github.com/jules-chstlr/sascade/feature"
)

// PruningStrategy holds the configuration for when a node should not
// be split further or at all.
type PruningStrategy struct {
	// Pruner is applied to the best split found for a node's dataset
	// to determine if the result is worth incorporating into the tree.
	Pruner
	// MinimumEntropy is the maximum value of entropy for a node that
	// prevents it from being branched out at all. In other words,
	// nodes whose training dataset has an entropy equal or below this
	// will not be developed.
	MinimumEntropy float64
}

/*
Pruner is an interface wrapping the Prune method, that can be used to
decide whether a split is good enough to become part of a tree or if
it must be pruned instead.

The Prune method takes a context, a dataset, a split and a label
feature and returns a boolean: true to indicate the split must be
pruned, false to allow its adding to the tree and further development.
*/
type Pruner interface {
	Prune(ctx context.Context, s dataset.Dataset, split *Split, label feature.Feature) (bool, error)
}

/*
PrunerFunc wraps a function with the Prune method signature to
implement the Pruner interface
*/
type PrunerFunc func(ctx context.Context, s dataset.Dataset, split *Split, label feature.Feature) (bool, error)

/*
Prune takes a context, a dataset, a split and a label feature and
invokes the PrunerFunc with those parameters to return its boolean
result.
*/
func (pf PrunerFunc) Prune(ctx context.Context, s dataset.Dataset, split *Split, label feature.Feature) (bool, error) {
	return pf(ctx, s, split, label)
}

/*
DefaultPruner returns a Pruner whose Prune method evaluates a minimum
information gain for the split and returns true if the split's
information gain is below this minimum and false otherwise.
This minimum is calculated as
(1/N) x [ log(N-1) + log(3^k-2) - (k x Entropy(S) - kl x Entropy(Sl) - kr x Entropy(Sr)) ]
with
  - N being the number of samples in the dataset
  - k being the number of different label values on the dataset
  - kl, kr being the number of different label values on the left and
    right subsets of the split
  - Sl, Sr being the left and right subsets of the split
*/
func DefaultPruner() Pruner {
	return PrunerFunc(func(ctx context.Context, s dataset.Dataset, split *Split, label feature.Feature) (bool, error) {
		count, err := s.Count(ctx)
		if err != nil {
			return false, err
		}
		n := float64(count)
		fvs, err := s.FeatureValues(ctx, label)
		if err != nil {
			return false, err
		}
		k := float64(len(fvs))
		sEntropy, err := s.Entropy(ctx, label)
		if err != nil {
			return false, err
		}
		minimum := math.Log(n-1.0) + math.Log(math.Pow(3.0, k)-2) - k*sEntropy
		for _, subset := range []dataset.Dataset{split.Left, split.Right} {
			subsetEntropy, err := subset.Entropy(ctx, label)
			if err != nil {
				return false, err
			}
			subsetFvs, err := subset.FeatureValues(ctx, label)
			if err != nil {
				return false, err
			}
			minimum += float64(len(subsetFvs)) * subsetEntropy
		}
		minimum = minimum / n
		return minimum > split.InformationGain, nil
	})
}

/*
FixedInformationGainPruner takes an informationGainThreshold float64
value and returns a Pruner whose Prune method returns whether the
threshold is greater or equal to the received split's information gain
*/
func FixedInformationGainPruner(informationGainThreshold float64) Pruner {
	return PrunerFunc(func(ctx context.Context, s dataset.Dataset, split *Split, label feature.Feature) (bool, error) {
		return informationGainThreshold >= split.InformationGain, nil
	})
}

/*
NoPruner returns a Pruner whose Prune method always returns false,
that is, never prunes.
*/
func NoPruner() Pruner {
	return PrunerFunc(func(ctx context.Context, s dataset.Dataset, split *Split, label feature.Feature) (bool, error) {
		return false, nil
	})
}
