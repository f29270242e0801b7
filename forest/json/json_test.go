package json_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/jules-chstlr/sascade/dataset"
	"github.com/jules-chstlr/sascade/feature"
	"github.com/jules-chstlr/sascade/forest"
	forestjson "github.com/jules-chstlr/sascade/forest/json"
	"github.com/jules-chstlr/sascade/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleForest() *forest.Forest {
	f := feature.NewContinuousFeature("f")
	features := []*feature.ContinuousFeature{f}
	label := feature.NewDiscreteFeature("label", []string{"a", "b"})
	leafA := &tree.Node{Prediction: tree.NewPrediction(map[string]float64{"a": 1.0}, 3)}
	leafB := &tree.Node{Prediction: tree.NewPrediction(map[string]float64{"b": 1.0}, 2)}
	stump := &tree.Node{
		FeatureIndex: 0,
		Threshold:    2.5,
		Left:         leafA,
		Right:        leafB,
		Prediction:   tree.NewPrediction(map[string]float64{"a": 0.6, "b": 0.4}, 5),
	}
	leafOnly := &tree.Node{Prediction: tree.NewPrediction(map[string]float64{"b": 1.0}, 5)}
	return &forest.Forest{
		Trees:    []*tree.Tree{tree.New(stump, features, label), tree.New(leafOnly, features, label)},
		Features: features,
		Label:    label,
	}
}

func TestWriteAndReadJSONForest(t *testing.T) {
	ctx := context.Background()
	original := sampleForest()
	var buf bytes.Buffer
	require.NoError(t, forestjson.WriteJSONForest(original, &buf))
	parsed, err := forestjson.ReadJSONForest(&buf)
	require.NoError(t, err)
	require.Len(t, parsed.Trees, 2)
	assert.Equal(t, "label", parsed.Label.Name())
	assert.Equal(t, []string{"a", "b"}, parsed.Label.AvailableValues())
	require.Len(t, parsed.Features, 1)
	assert.Equal(t, "f", parsed.Features[0].Name())
	stump := parsed.Trees[0]
	require.False(t, stump.Root.Leaf())
	assert.Equal(t, 0, stump.Root.FeatureIndex)
	assert.Equal(t, 2.5, stump.Root.Threshold)
	assert.Equal(t, 5, stump.Root.Prediction.Weight())
	p, err := stump.Predict(ctx, dataset.NewSample(map[string]interface{}{"f": 1.0}))
	require.NoError(t, err)
	value, prob := p.PredictedValue()
	assert.Equal(t, "a", value)
	assert.Equal(t, 1.0, prob)
	assert.True(t, parsed.Trees[1].Root.Leaf())
}

func TestWriteAndReadJSONForestKeepsSASRules(t *testing.T) {
	original := sampleForest()
	originalPrograms, err := original.SASRules(nil, "DATASET", nil)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, forestjson.WriteJSONForest(original, &buf))
	parsed, err := forestjson.ReadJSONForest(&buf)
	require.NoError(t, err)
	parsedPrograms, err := parsed.SASRules(nil, "DATASET", nil)
	require.NoError(t, err)
	assert.Equal(t, originalPrograms, parsedPrograms)
}

func TestReadJSONForestRejectsMissingLabel(t *testing.T) {
	_, err := forestjson.ReadJSONForest(strings.NewReader(`{"features":["f"],"trees":[]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "label")
}

func TestReadJSONForestRejectsSplitWithoutThreshold(t *testing.T) {
	doc := `{
		"features": ["f"],
		"label": {"name": "label", "values": ["a", "b"]},
		"trees": [{"feature": 0, "left": {"prediction": {"a": 1}}, "right": {"prediction": {"b": 1}}}]
	}`
	_, err := forestjson.ReadJSONForest(strings.NewReader(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "threshold")
}

func TestReadJSONForestRejectsUnknownFeature(t *testing.T) {
	doc := `{
		"features": ["f"],
		"label": {"name": "label", "values": ["a", "b"]},
		"trees": [{"feature": 3, "threshold": 1.5, "left": {"prediction": {"a": 1}}, "right": {"prediction": {"b": 1}}}]
	}`
	_, err := forestjson.ReadJSONForest(strings.NewReader(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown feature")
}
