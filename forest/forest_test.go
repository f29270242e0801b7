package forest_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/jules-chstlr/sascade/dataset"
	"github.com/jules-chstlr/sascade/feature"
	"github.com/jules-chstlr/sascade/forest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trainingSet() dataset.Dataset {
	var samples []dataset.Sample
	for i := 0; i < 10; i++ {
		label := "a"
		if i >= 5 {
			label = "b"
		}
		samples = append(samples, dataset.NewSample(map[string]interface{}{
			"f":     float64(i),
			"label": label,
		}))
	}
	return dataset.New(samples)
}

func growForest(t *testing.T, opts *forest.GrowOptions) *forest.Forest {
	t.Helper()
	f := feature.NewContinuousFeature("f")
	label := feature.NewDiscreteFeature("label", []string{"a", "b"})
	grown, err := forest.Grow(context.Background(), trainingSet(), []*feature.ContinuousFeature{f}, label, opts)
	require.NoError(t, err)
	return grown
}

func TestGrowSize(t *testing.T) {
	f := growForest(t, &forest.GrowOptions{Size: 5, Seed: 1})
	assert.Len(t, f.Trees, 5)
}

func TestGrowDeterministicWithSeed(t *testing.T) {
	first := growForest(t, &forest.GrowOptions{Size: 3, Seed: 42})
	second := growForest(t, &forest.GrowOptions{Size: 3, Seed: 42})
	firstPrograms, err := first.SASRules(nil, "DATASET", nil)
	require.NoError(t, err)
	secondPrograms, err := second.SASRules(nil, "DATASET", nil)
	require.NoError(t, err)
	assert.Equal(t, firstPrograms, secondPrograms)
}

func TestPredictMajority(t *testing.T) {
	ctx := context.Background()
	f := growForest(t, &forest.GrowOptions{Size: 7, Seed: 3})
	for _, tc := range []struct {
		value    float64
		expected string
	}{{0.5, "a"}, {8.5, "b"}} {
		predicted, prob, err := f.Predict(ctx, dataset.NewSample(map[string]interface{}{"f": tc.value}))
		require.NoError(t, err)
		assert.Equal(t, tc.expected, predicted, "f = %v", tc.value)
		assert.Greater(t, prob, 0.5)
		assert.LessOrEqual(t, prob, 1.0)
	}
}

func TestPredictUnpredictableSample(t *testing.T) {
	f := growForest(t, &forest.GrowOptions{Size: 3, Seed: 3})
	_, _, err := f.Predict(context.Background(), dataset.NewSample(map[string]interface{}{}))
	require.Error(t, err)
}

func TestSASRulesIndependentPrograms(t *testing.T) {
	f := growForest(t, &forest.GrowOptions{Size: 3, Seed: 7})
	programs, err := f.SASRules(nil, "TRAIN", nil)
	require.NoError(t, err)
	require.Len(t, programs, 3)
	for i, p := range programs {
		assert.True(t, strings.HasPrefix(p, fmt.Sprintf("DATA DECISION_TREE_%d;\nSET TRAIN;\n", i+1)), "program %d", i)
		assert.Contains(t, p, fmt.Sprintf("PREDICTED_VALUE_%d =", i+1))
		assert.True(t, strings.HasSuffix(p, "RUN;"), "program %d", i)
		for j := range programs {
			if i == j {
				continue
			}
			assert.NotContains(t, p, fmt.Sprintf("PREDICTED_VALUE_%d ", j+1), "program %d", i)
		}
	}
}

func TestSASRulesFeatureNameOverride(t *testing.T) {
	f := growForest(t, &forest.GrowOptions{Size: 2, Seed: 11})
	programs, err := f.SASRules([]string{"COLUMN_F"}, "TRAIN", nil)
	require.NoError(t, err)
	for i, p := range programs {
		assert.Contains(t, p, "COLUMN_F <", "program %d", i)
	}
}
