/*
Package forest provides methods to grow ensembles of binary
classification trees from bootstrap resamples of a dataset, predict
with them by majority vote, and port every tree of an ensemble to an
independent SAS program.
*/
package forest

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/jules-chstlr/sascade/dataset"
	"github.com/jules-chstlr/sascade/feature"
	"github.com/jules-chstlr/sascade/sas"
	"github.com/jules-chstlr/sascade/tree"
)

// DefaultSize is the number of trees grown when the options do not
// state one.
const DefaultSize = 100

/*
Forest represents an ensemble of binary classification trees grown
from resamples of the same dataset to predict the same label.
*/
type Forest struct {
	Trees    []*tree.Tree
	Features []*feature.ContinuousFeature
	Label    *feature.DiscreteFeature
}

/*
GrowOptions allows tuning the growing of a forest.
*/
type GrowOptions struct {
	// Size is the number of trees to grow. Defaults to DefaultSize
	// when 0.
	Size int
	// MaxDepth is the maximum depth of every tree. 0 means no limit.
	MaxDepth int
	// PruningStrategy is applied when growing every tree. Defaults to
	// growing full trees (no pruning, zero minimum entropy).
	PruningStrategy *tree.PruningStrategy
	// Seed seeds the source of randomness for the bootstrap
	// resampling. 0 seeds it with the current time.
	Seed int64
}

/*
Grow takes a context, a dataset, a slice of continuous features, a
discrete label feature and growing options, and returns a forest of
trees grown from bootstrap resamples of the dataset to predict the
label, or an error if the dataset cannot be queried or a tree cannot
be grown.
*/
func Grow(ctx context.Context, s dataset.Dataset, features []*feature.ContinuousFeature, label *feature.DiscreteFeature, opts *GrowOptions) (*Forest, error) {
	if opts == nil {
		opts = &GrowOptions{}
	}
	size := opts.Size
	if size == 0 {
		size = DefaultSize
	}
	ps := opts.PruningStrategy
	if ps == nil {
		ps = &tree.PruningStrategy{Pruner: tree.NoPruner()}
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rnd := rand.New(rand.NewSource(seed))
	samples, err := s.Samples(ctx)
	if err != nil {
		return nil, fmt.Errorf("growing forest: %v", err)
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("growing forest: dataset has no samples")
	}
	f := &Forest{Features: features, Label: label}
	for i := 0; i < size; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		resample := make([]dataset.Sample, len(samples))
		for j := range resample {
			resample[j] = samples[rnd.Intn(len(samples))]
		}
		t, err := tree.Grow(ctx, dataset.New(resample), features, label, ps, opts.MaxDepth)
		if err != nil {
			return nil, fmt.Errorf("growing tree %d: %v", i, err)
		}
		f.Trees = append(f.Trees, t)
	}
	return f, nil
}

/*
Predict takes a sample and returns the label value predicted by the
majority of the forest's trees and the fraction of trees that voted
for it, or an error if no tree could predict the sample.
*/
func (f *Forest) Predict(ctx context.Context, s feature.Sample) (string, float64, error) {
	votes := make(map[string]int)
	var total int
	for _, t := range f.Trees {
		p, err := t.Predict(ctx, s)
		if err != nil {
			if err == tree.ErrCannotPredictFromSample {
				continue
			}
			return "", 0.0, err
		}
		value, _ := p.PredictedValue()
		votes[value]++
		total++
	}
	if total == 0 {
		return "", 0.0, tree.ErrCannotPredictFromSample
	}
	var value string
	var count int
	for v, c := range votes {
		if c > count || (c == count && v < value) {
			value = v
			count = c
		}
	}
	return value, float64(count) / float64(total), nil
}

/*
SASRules takes a slice of display names for the forest's features, the
name of the SAS dataset containing the feature columns and extraction
options, and returns one SAS program per tree of the forest, in tree
order, or an error if a tree cannot be translated.

Each program derives its own DECISION_TREE_<i+1> dataset and assigns
its prediction to its own PREDICTED_VALUE_<i+1> variable, so programs
are independent of each other and of the order they run in.
*/
func (f *Forest) SASRules(features []string, table string, opts *sas.Options) ([]string, error) {
	programs := make([]string, 0, len(f.Trees))
	for i, t := range f.Trees {
		rules, err := sas.Rules(t, i, features, table, opts)
		if err != nil {
			return nil, fmt.Errorf("translating tree %d: %v", i, err)
		}
		programs = append(programs, rules)
	}
	return programs, nil
}
