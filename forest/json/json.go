/*
Package json provides methods to serialize forests as JSON documents
and parse them back, so that growing an ensemble and porting it to SAS
can happen in separate invocations.

A forest is serialized as a JSON object with the following fields:
  - "features": an array with the names of the continuous features the
    trees split on, in feature index order
  - "label": an object with the name and available values of the
    discrete label feature the trees predict
  - "trees": an array with the root node of every tree, where a split
    node holds a feature index, a threshold and its left and right
    branches, and every node may hold a prediction as a map of label
    values to probabilities plus a sample weight.
*/
package json

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jules-chstlr/sascade/feature"
	"github.com/jules-chstlr/sascade/forest"
	"github.com/jules-chstlr/sascade/tree"
)

type jsonForest struct {
	Features []string    `json:"features"`
	Label    jsonLabel   `json:"label"`
	Trees    []*jsonNode `json:"trees"`
}

type jsonLabel struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

type jsonNode struct {
	Feature    *int               `json:"feature,omitempty"`
	Threshold  *float64           `json:"threshold,omitempty"`
	Left       *jsonNode          `json:"left,omitempty"`
	Right      *jsonNode          `json:"right,omitempty"`
	Prediction map[string]float64 `json:"prediction,omitempty"`
	Weight     int                `json:"weight,omitempty"`
}

/*
WriteJSONForest takes a pointer to a forest.Forest and an io.Writer
and serializes the given forest as JSON onto the io.Writer. An error
is returned if the forest cannot be serialized or written.
*/
func WriteJSONForest(f *forest.Forest, w io.Writer) error {
	jf := &jsonForest{
		Label: jsonLabel{Name: f.Label.Name(), Values: f.Label.AvailableValues()},
	}
	for _, cf := range f.Features {
		jf.Features = append(jf.Features, cf.Name())
	}
	for i, t := range f.Trees {
		jn, err := encodeNode(t.Root, len(f.Features))
		if err != nil {
			return fmt.Errorf("serializing tree %d: %v", i, err)
		}
		jf.Trees = append(jf.Trees, jn)
	}
	return json.NewEncoder(w).Encode(jf)
}

/*
ReadJSONForest takes an io.Reader and parses its contents into a
forest.Forest or an error if the JSON cannot be read or does not
describe a valid forest.
*/
func ReadJSONForest(r io.Reader) (*forest.Forest, error) {
	jf := &jsonForest{}
	err := json.NewDecoder(r).Decode(jf)
	if err != nil {
		return nil, fmt.Errorf("parsing forest: %v", err)
	}
	if jf.Label.Name == "" {
		return nil, fmt.Errorf("parsing forest: no label feature defined")
	}
	f := &forest.Forest{
		Label: feature.NewDiscreteFeature(jf.Label.Name, jf.Label.Values),
	}
	for _, name := range jf.Features {
		f.Features = append(f.Features, feature.NewContinuousFeature(name))
	}
	for i, jn := range jf.Trees {
		root, err := decodeNode(jn, len(f.Features))
		if err != nil {
			return nil, fmt.Errorf("parsing tree %d: %v", i, err)
		}
		f.Trees = append(f.Trees, tree.New(root, f.Features, f.Label))
	}
	return f, nil
}

func encodeNode(n *tree.Node, featureCount int) (*jsonNode, error) {
	if n == nil {
		return nil, fmt.Errorf("missing node")
	}
	jn := &jsonNode{}
	if n.Prediction != nil {
		jn.Prediction = n.Prediction.Probabilities()
		jn.Weight = n.Prediction.Weight()
	}
	if n.Leaf() {
		if n.Prediction == nil {
			return nil, fmt.Errorf("leaf node has no prediction")
		}
		return jn, nil
	}
	if n.FeatureIndex < 0 || n.FeatureIndex >= featureCount {
		return nil, fmt.Errorf("split node refers to unknown feature %d", n.FeatureIndex)
	}
	featureIndex := n.FeatureIndex
	threshold := n.Threshold
	jn.Feature = &featureIndex
	jn.Threshold = &threshold
	var err error
	jn.Left, err = encodeNode(n.Left, featureCount)
	if err != nil {
		return nil, err
	}
	jn.Right, err = encodeNode(n.Right, featureCount)
	return jn, err
}

func decodeNode(jn *jsonNode, featureCount int) (*tree.Node, error) {
	if jn == nil {
		return nil, fmt.Errorf("missing node")
	}
	n := &tree.Node{FeatureIndex: -1}
	if jn.Prediction != nil {
		n.Prediction = tree.NewPrediction(jn.Prediction, jn.Weight)
	}
	if jn.Feature == nil {
		if n.Prediction == nil {
			return nil, fmt.Errorf("leaf node has no prediction")
		}
		return n, nil
	}
	if *jn.Feature < 0 || *jn.Feature >= featureCount {
		return nil, fmt.Errorf("split node refers to unknown feature %d", *jn.Feature)
	}
	if jn.Threshold == nil {
		return nil, fmt.Errorf("split node has no threshold")
	}
	n.FeatureIndex = *jn.Feature
	n.Threshold = *jn.Threshold
	var err error
	n.Left, err = decodeNode(jn.Left, featureCount)
	if err != nil {
		return nil, err
	}
	n.Right, err = decodeNode(jn.Right, featureCount)
	return n, err
}
