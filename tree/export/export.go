/*
Package export provides methods to render a binary classification tree
as an indented text report.

The report shows one line per node: split nodes as a pair of
`feature <= threshold` / `feature >  threshold` condition lines with
their branches nested below, and leaves as `class: value` lines.
Nesting is drawn with `|` connectors and a `---` branch mark whose
width is controlled by the spacing option, so that the column a line
starts at encodes the depth of its node. Branches deeper than the
maximum depth are summarized as `truncated branch of depth N` lines.
*/
package export

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jules-chstlr/sascade/tree"
)

const (
	// DefaultMaxDepth is the number of split levels rendered when the
	// options do not state one.
	DefaultMaxDepth = 10
	// DefaultSpacing is the number of columns between a node's depth
	// and its branches' depth when the options do not state one.
	DefaultSpacing = 3
	// DefaultDecimals is the number of decimal digits thresholds are
	// rendered with when the options do not state one.
	DefaultDecimals = 2
)

/*
Options allows tuning the rendering of a tree as text.
*/
type Options struct {
	// MaxDepth is the maximum number of split levels to render.
	// Defaults to DefaultMaxDepth when 0.
	MaxDepth int
	// Spacing is the width in columns of the branch connectors, and
	// therefore the depth offset between a node and its branches.
	// It must be positive. Defaults to DefaultSpacing when 0.
	Spacing int
	// Decimals is the number of decimal digits to render thresholds
	// with. It must not be negative. Defaults to DefaultDecimals
	// when 0.
	Decimals int
	// FeatureNames holds display names to use instead of the tree's
	// own feature names, in the tree's feature index order.
	FeatureNames []string
}

/*
Text takes a tree and rendering options and returns the indented text
report of the tree, or an error if the options are invalid or the tree
refers to features the options do not name.
*/
func Text(t *tree.Tree, opts *Options) (string, error) {
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
	if spacing < 0 {
		return "", fmt.Errorf("rendering tree: spacing must be positive, got %d", spacing)
	}
	decimals := opts.Decimals
	if decimals == 0 {
		decimals = DefaultDecimals
	}
	if decimals < 0 {
		return "", fmt.Errorf("rendering tree: decimals must not be negative, got %d", decimals)
	}
	names := opts.FeatureNames
	if names == nil {
		names = make([]string, len(t.Features))
		for i, f := range t.Features {
			names[i] = f.Name()
		}
	}
	if len(names) != len(t.Features) {
		return "", fmt.Errorf("rendering tree: got %d feature names for %d features", len(names), len(t.Features))
	}
	if t.Root == nil {
		return "", fmt.Errorf("rendering tree: tree has no root node")
	}
	r := &renderer{maxDepth: maxDepth, spacing: spacing, decimals: decimals, names: names}
	err := r.walk(t.Root, 1)
	if err != nil {
		return "", err
	}
	return r.report.String(), nil
}

type renderer struct {
	maxDepth int
	spacing  int
	decimals int
	names    []string
	report   strings.Builder
}

func (r *renderer) walk(n *tree.Node, depth int) error {
	indent := strings.Repeat("|"+strings.Repeat(" ", r.spacing), depth)
	indent = indent[:len(indent)-r.spacing] + strings.Repeat("-", r.spacing)
	if depth > r.maxDepth+1 {
		if n.Leaf() {
			return r.leaf(n, indent)
		}
		fmt.Fprintf(&r.report, "%s truncated branch of depth %d\n", indent, n.Depth())
		return nil
	}
	if n.Leaf() {
		return r.leaf(n, indent)
	}
	if n.FeatureIndex < 0 || n.FeatureIndex >= len(r.names) {
		return fmt.Errorf("rendering tree: split node refers to unknown feature %d", n.FeatureIndex)
	}
	name := r.names[n.FeatureIndex]
	threshold := strconv.FormatFloat(n.Threshold, 'f', r.decimals, 64)
	fmt.Fprintf(&r.report, "%s %s <= %s\n", indent, name, threshold)
	if err := r.walk(n.Left, depth+1); err != nil {
		return err
	}
	fmt.Fprintf(&r.report, "%s %s >  %s\n", indent, name, threshold)
	return r.walk(n.Right, depth+1)
}

func (r *renderer) leaf(n *tree.Node, indent string) error {
	if n.Prediction == nil {
		return fmt.Errorf("rendering tree: leaf node has no prediction")
	}
	value, _ := n.Prediction.PredictedValue()
	fmt.Fprintf(&r.report, "%s class: %s\n", indent, value)
	return nil
}
