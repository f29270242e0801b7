package tree

/*
Node is a node of a binary classification tree.

A split node constrains one of the tree's continuous features against
a threshold: samples whose value for the feature is at or below the
threshold follow the left branch, the rest follow the right branch.
A leaf node has no branches and predicts with its prediction.
*/
type Node struct {
	// Index into the tree's feature slice of the feature this node
	// splits on. Only meaningful for split nodes.
	FeatureIndex int
	// Threshold of the split.
	Threshold float64
	// Left holds the branch for samples with values at or below the
	// threshold, Right the branch for the rest. Both are nil on leaves
	// and non-nil on split nodes.
	Left  *Node
	Right *Node
	// Prediction for samples whose path through the tree ends at this
	// node.
	Prediction *Prediction
}

/*
Leaf returns whether the node is a leaf of its tree
*/
func (n *Node) Leaf() bool {
	return n.Left == nil && n.Right == nil
}

/*
Depth returns the depth of the subtree rooted at the node: 1 for a
leaf, 1 plus the depth of its deepest branch otherwise.
*/
func (n *Node) Depth() int {
	if n.Leaf() {
		return 1
	}
	depth := n.Left.Depth()
	if rd := n.Right.Depth(); rd > depth {
		depth = rd
	}
	return 1 + depth
}
