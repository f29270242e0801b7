package export_test

import (
	"testing"

	"github.com/jules-chstlr/sascade/feature"
	"github.com/jules-chstlr/sascade/tree"
	"github.com/jules-chstlr/sascade/tree/export"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leaf(value string) *tree.Node {
	return &tree.Node{Prediction: tree.NewPrediction(map[string]float64{value: 1.0}, 1)}
}

func stumpTree() *tree.Tree {
	f := feature.NewContinuousFeature("f")
	label := feature.NewDiscreteFeature("label", []string{"0", "1"})
	root := &tree.Node{FeatureIndex: 0, Threshold: 0.8, Left: leaf("0"), Right: leaf("1")}
	return tree.New(root, []*feature.ContinuousFeature{f}, label)
}

func TestTextDefaults(t *testing.T) {
	text, err := export.Text(stumpTree(), nil)
	require.NoError(t, err)
	expected := "|--- f <= 0.80\n" +
		"|   |--- class: 0\n" +
		"|--- f >  0.80\n" +
		"|   |--- class: 1\n"
	assert.Equal(t, expected, text)
}

func TestTextNarrowSpacingAndDecimals(t *testing.T) {
	text, err := export.Text(stumpTree(), &export.Options{Spacing: 1, Decimals: 6})
	require.NoError(t, err)
	expected := "|- f <= 0.800000\n" +
		"| |- class: 0\n" +
		"|- f >  0.800000\n" +
		"| |- class: 1\n"
	assert.Equal(t, expected, text)
}

func TestTextLeafOnlyTree(t *testing.T) {
	label := feature.NewDiscreteFeature("label", []string{"yes"})
	lt := tree.New(leaf("yes"), nil, label)
	text, err := export.Text(lt, &export.Options{Spacing: 1})
	require.NoError(t, err)
	assert.Equal(t, "|- class: yes\n", text)
}

func TestTextFeatureNameOverride(t *testing.T) {
	text, err := export.Text(stumpTree(), &export.Options{FeatureNames: []string{"petal_width"}})
	require.NoError(t, err)
	assert.Contains(t, text, "petal_width <= 0.80")
	assert.NotContains(t, text, "f <=")
}

func TestTextFeatureNameCountMismatch(t *testing.T) {
	_, err := export.Text(stumpTree(), &export.Options{FeatureNames: []string{"a", "b"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "feature names")
}

func TestTextTruncatesDeepBranches(t *testing.T) {
	f := feature.NewContinuousFeature("f")
	label := feature.NewDiscreteFeature("label", []string{"0", "1"})
	deep := &tree.Node{FeatureIndex: 0, Threshold: 3.0, Left: leaf("0"), Right: leaf("1")}
	mid := &tree.Node{FeatureIndex: 0, Threshold: 2.0, Left: deep, Right: leaf("1")}
	root := &tree.Node{FeatureIndex: 0, Threshold: 1.0, Left: mid, Right: leaf("0")}
	dt := tree.New(root, []*feature.ContinuousFeature{f}, label)
	text, err := export.Text(dt, &export.Options{Spacing: 1, MaxDepth: 1})
	require.NoError(t, err)
	assert.Contains(t, text, "truncated branch of depth 2")
	// Leaves past the depth limit are still rendered.
	assert.Contains(t, text, "| | |- class: 1\n")
}

func TestTextRendersNestedSplits(t *testing.T) {
	f := feature.NewContinuousFeature("a")
	g := feature.NewContinuousFeature("b")
	label := feature.NewDiscreteFeature("label", []string{"x0", "x1", "x2"})
	inner := &tree.Node{FeatureIndex: 1, Threshold: 2.0, Left: leaf("x0"), Right: leaf("x1")}
	root := &tree.Node{FeatureIndex: 0, Threshold: 1.0, Left: inner, Right: leaf("x2")}
	nt := tree.New(root, []*feature.ContinuousFeature{f, g}, label)
	text, err := export.Text(nt, &export.Options{Spacing: 1, Decimals: 6})
	require.NoError(t, err)
	expected := "|- a <= 1.000000\n" +
		"| |- b <= 2.000000\n" +
		"| | |- class: x0\n" +
		"| |- b >  2.000000\n" +
		"| | |- class: x1\n" +
		"|- a >  1.000000\n" +
		"| |- class: x2\n"
	assert.Equal(t, expected, text)
}
