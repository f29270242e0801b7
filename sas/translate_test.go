package sas

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslateLeafOnlyTree(t *testing.T) {
	rules, err := translate(0, "DATASET", "|- class: 0\n", 2)
	require.NoError(t, err)
	expected := "DATA DECISION_TREE_1;\n" +
		"SET DATASET;\n" +
		"     PREDICTED_VALUE_1 = 0;\n" +
		"  RUN;"
	assert.Equal(t, expected, rules)
	assert.NotContains(t, rules, "IF")
}

func TestTranslateSingleSplit(t *testing.T) {
	text := "|- f <= 0.800000\n" +
		"| |- class: 0\n" +
		"|- f >  0.800000\n" +
		"| |- class: 1\n"
	rules, err := translate(0, "DATASET", text, 2)
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

func TestTranslateNestedSplits(t *testing.T) {
	text := "|- a <= 1.000000\n" +
		"| |- b <= 2.000000\n" +
		"| | |- class: x0\n" +
		"| |- b >  2.000000\n" +
		"| | |- class: x1\n" +
		"|- a >  1.000000\n" +
		"| |- class: x2\n"
	rules, err := translate(2, "TRAIN", text, 2)
	require.NoError(t, err)
	expected := "DATA DECISION_TREE_3;\n" +
		"SET TRAIN;\n" +
		"     IF a <= 1 THEN DO;\n" +
		"       IF b <= 2 THEN DO;\n" +
		"         PREDICTED_VALUE_3 = x0;\n" +
		"       END;\n" +
		"       ELSE IF b > 2 THEN DO;\n" +
		"         PREDICTED_VALUE_3 = x1;\n" +
		"  END;\n" +
		"   END;\n" +
		"     ELSE IF a > 1 THEN DO;\n" +
		"       PREDICTED_VALUE_3 = x2;\n" +
		"  END;\n" +
		"RUN;"
	assert.Equal(t, expected, rules)
}

// Returning from the deepest leaf to the root closes the inner block
// before the outer one: every block opened with THEN DO; ends up with
// its own END;.
func TestTranslateBalancedBlocks(t *testing.T) {
	text := "|- a <= 1.000000\n" +
		"| |- b <= 2.000000\n" +
		"| | |- c <= 3.000000\n" +
		"| | | |- class: x0\n" +
		"| | |- c >  3.000000\n" +
		"| | | |- class: x1\n" +
		"| |- b >  2.000000\n" +
		"| | |- class: x2\n" +
		"|- a >  1.000000\n" +
		"| |- class: x3\n"
	rules, err := translate(0, "TRAIN", text, 2)
	require.NoError(t, err)
	assert.Equal(t, strings.Count(rules, "THEN DO;"), strings.Count(rules, "END;"))
}

func TestTranslateDeterministic(t *testing.T) {
	text := "|- f <= 0.800000\n" +
		"| |- class: 0\n" +
		"|- f >  0.800000\n" +
		"| |- class: 1\n"
	first, err := translate(0, "DATASET", text, 2)
	require.NoError(t, err)
	second, err := translate(0, "DATASET", text, 2)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestTranslateMalformedLine(t *testing.T) {
	text := "|- f <= 0.800000\n" +
		"| |- truncated branch of depth 7\n"
	_, err := translate(0, "DATASET", text, 2)
	require.Error(t, err)
	mle, ok := err.(*MalformedLineError)
	require.True(t, ok, "expected a *MalformedLineError, got %T", err)
	assert.Contains(t, mle.Line, "truncated branch")
}

func TestTranslateUnparsableThreshold(t *testing.T) {
	_, err := translate(0, "DATASET", "|- f <= about-nine\n", 2)
	require.Error(t, err)
	_, ok := err.(*MalformedLineError)
	assert.True(t, ok, "expected a *MalformedLineError, got %T", err)
}

// A leaf as the first-ever line at a depth must not perturb the
// occurrence parity there: a later condition at the same depth still
// opens with a plain IF.
func TestTranslateLeafDoesNotPerturbParity(t *testing.T) {
	text := "|- class: 0\n" +
		"|- f <= 1.000000\n" +
		"| |- class: 1\n" +
		"|- f >  1.000000\n" +
		"| |- class: 2\n"
	rules, err := translate(0, "DATASET", text, 2)
	require.NoError(t, err)
	assert.Contains(t, rules, "     IF f <= 1 THEN DO;")
	assert.Equal(t, 1, strings.Count(rules, "ELSE IF"))
}

// Thresholds come out of the rendering with fixed decimals and are
// reformatted in general notation; reformatting the result again must
// not change it.
func TestTranslateThresholdFormattingStable(t *testing.T) {
	first, err := translate(0, "DATASET", "|- f <= 0.800000\n| |- class: 0\n|- f >  0.800000\n| |- class: 1\n", 2)
	require.NoError(t, err)
	assert.Contains(t, first, "f <= 0.8 THEN DO;")
	second, err := translate(0, "DATASET", "|- f <= 0.8\n| |- class: 0\n|- f >  0.8\n| |- class: 1\n", 2)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
