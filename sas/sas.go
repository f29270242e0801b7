/*
Package sas provides methods to extract the decision rules of a binary
classification tree and translate them to SAS code.

The generated program is a DATA step that derives a
DECISION_TREE_<id+1> dataset from a source dataset, walking the tree's
splits as nested IF/ELSE IF blocks and assigning the tree's prediction
to a PREDICTED_VALUE_<id+1> variable, so that a trained tree can be
run on platforms that can only execute SAS conditional scripts.
*/
package sas

import (
	"fmt"

	"github.com/jules-chstlr/sascade/tree"
	"github.com/jules-chstlr/sascade/tree/export"
)

const (
	// DefaultMaxDepth is the number of tree levels considered when the
	// options do not state one.
	DefaultMaxDepth = 100
	// DefaultSpacing is the number of spaces between edges of the
	// intermediate tree rendering when the options do not state one.
	DefaultSpacing = 2
	// thresholdDecimals is the number of decimal digits thresholds
	// carry through the intermediate rendering.
	thresholdDecimals = 6
)

/*
RuleError represents an error with the configuration of a rule
extraction
*/
type RuleError string

/*
ErrInvalidSpacing is the error returned when rules are requested with
a spacing below 2. The translation needs at least one connector column
per level to tell nesting depths apart.
*/
const ErrInvalidSpacing = RuleError("spacing must be greater than 1")

func (re RuleError) Error() string {
	return string(re)
}

/*
MalformedLineError is the error returned when a line of the rendered
tree text matches neither a split condition nor a class leaf, so no
SAS statement can be derived from it.
*/
type MalformedLineError struct {
	Line string
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("malformed tree line %q: expected a split condition or a class leaf", e.Line)
}

/*
Options allows tuning the extraction of the rules of a tree.
*/
type Options struct {
	// MaxDepth is the number of levels of the tree considered.
	// Defaults to DefaultMaxDepth when 0.
	MaxDepth int
	// Spacing is the number of spaces between edges of the
	// intermediate tree rendering, and therefore the indentation unit
	// of the generated SAS code. It must be at least 2. Defaults to
	// DefaultSpacing when 0.
	Spacing int
}

/*
Rules takes a tree, a tree identifier, a slice of display names for
the tree's features, the name of the SAS dataset containing the
feature columns and extraction options, and returns a SAS DATA step
that computes the tree's prediction for every row of that dataset, or
an error if the options are invalid or the tree cannot be rendered.

The features slice substitutes display names for the tree's internal
feature indices; a nil slice uses the tree's own feature names. The
generated step derives a DECISION_TREE_<treeID+1> dataset and assigns
predictions to a PREDICTED_VALUE_<treeID+1> variable, so each tree of
an ensemble translates to an independent program when given a distinct
identifier.
*/
func Rules(t *tree.Tree, treeID int, features []string, table string, opts *Options) (string, error) {
	if opts == nil {
		opts = &Options{}
	}
	maxDepth := opts.MaxDepth
	if maxDepth == 0 {
		maxDepth = DefaultMaxDepth
	}
	spacing := opts.Spacing
	if spacing == 0 {
		spacing = DefaultSpacing
	}
	if spacing < 2 {
		return "", ErrInvalidSpacing
	}
	text, err := export.Text(t, &export.Options{
		MaxDepth:     maxDepth,
		Spacing:      spacing - 1,
		Decimals:     thresholdDecimals,
		FeatureNames: features,
	})
	if err != nil {
		return "", fmt.Errorf("extracting rules of tree %d: %v", treeID, err)
	}
	return translate(treeID, table, text, spacing)
}
