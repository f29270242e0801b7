package sas_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/jules-chstlr/sascade/feature"
	"github.com/jules-chstlr/sascade/sas"
	"github.com/jules-chstlr/sascade/tree"
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

func TestRulesLeafOnlyTree(t *testing.T) {
	label := feature.NewDiscreteFeature("label", []string{"0"})
	lt := tree.New(leaf("0"), nil, label)
	rules, err := sas.Rules(lt, 0, nil, "DATASET", nil)
	require.NoError(t, err)
	expected := "DATA DECISION_TREE_1;\n" +
		"SET DATASET;\n" +
		"     PREDICTED_VALUE_1 = 0;\n" +
		"  RUN;"
	assert.Equal(t, expected, rules)
}

func TestRulesSingleSplitTree(t *testing.T) {
	rules, err := sas.Rules(stumpTree(), 0, nil, "DATASET", nil)
	require.NoError(t, err)
	expected := "DATA DECISION_TREE_1;\n" +
		"SET DATASET;\n" +
		"     IF f <= 0.8 THEN DO;\n" +
		"       PREDICTED_VALUE_1 = 0;\n" +
		"     END;\n" +
		"     ELSE IF f > 0.8 THEN DO;\n" +
		"       PREDICTED_VALUE_1 = 1;\n" +
		"  END;\n" +
		"RUN;"
	assert.Equal(t, expected, rules)
}

func TestRulesFeatureNameOverride(t *testing.T) {
	rules, err := sas.Rules(stumpTree(), 0, []string{"SEPAL_WIDTH"}, "IRIS", nil)
	require.NoError(t, err)
	assert.Contains(t, rules, "IF SEPAL_WIDTH <= 0.8 THEN DO;")
	assert.Contains(t, rules, "SET IRIS;")
	assert.NotContains(t, rules, "f <=")
}

func TestRulesFeatureNameCountMismatch(t *testing.T) {
	_, err := sas.Rules(stumpTree(), 0, []string{"a", "b"}, "DATASET", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "feature names")
}

func TestRulesInvalidSpacing(t *testing.T) {
	_, err := sas.Rules(stumpTree(), 0, nil, "DATASET", &sas.Options{Spacing: 1})
	require.Error(t, err)
	assert.Equal(t, sas.ErrInvalidSpacing, err)
}

func TestRulesTruncatedBranchIsRejected(t *testing.T) {
	f := feature.NewContinuousFeature("f")
	label := feature.NewDiscreteFeature("label", []string{"0", "1"})
	deep := &tree.Node{FeatureIndex: 0, Threshold: 3.0, Left: leaf("0"), Right: leaf("1")}
	mid := &tree.Node{FeatureIndex: 0, Threshold: 2.0, Left: deep, Right: leaf("1")}
	root := &tree.Node{FeatureIndex: 0, Threshold: 1.0, Left: mid, Right: leaf("0")}
	dt := tree.New(root, []*feature.ContinuousFeature{f}, label)
	_, err := sas.Rules(dt, 0, nil, "DATASET", &sas.Options{MaxDepth: 1})
	require.Error(t, err)
	_, ok := err.(*sas.MalformedLineError)
	assert.True(t, ok, "expected a *MalformedLineError, got %T", err)
}

func TestRulesWiderSpacing(t *testing.T) {
	rules, err := sas.Rules(stumpTree(), 0, nil, "DATASET", &sas.Options{Spacing: 4})
	require.NoError(t, err)
	assert.Contains(t, rules, "IF f <= 0.8 THEN DO;")
	assert.Equal(t, strings.Count(rules, "THEN DO;"), strings.Count(rules, "END;"))
}

func TestRulesEnsembleVariableNames(t *testing.T) {
	st := stumpTree()
	for i, id := range []int{0, 1, 4} {
		rules, err := sas.Rules(st, id, nil, "DATASET", nil)
		require.NoError(t, err, "tree %d", i)
		assert.Contains(t, rules, fmt.Sprintf("DATA DECISION_TREE_%d;", id+1))
		assert.Contains(t, rules, fmt.Sprintf("PREDICTED_VALUE_%d =", id+1))
	}
}
