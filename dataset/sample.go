package dataset

import (
	"context"
	"fmt"

	"github.com/jules-chstlr/sascade/feature"
)

/*
Sample represents an observation: an item from which to learn or for
which to predict a label. It satisfies feature.Sample so that feature
criteria can be evaluated against it.
*/
type Sample interface {
	ValueFor(context.Context, feature.Feature) (interface{}, error)
}

type sample struct {
	featureValues map[string]interface{}
}

/*
NewSample takes a map of feature names to values and returns a Sample
backed by it. A missing entry means the sample does not define a value
for that feature.
*/
func NewSample(featureValues map[string]interface{}) Sample {
	return &sample{featureValues}
}

func (s *sample) ValueFor(ctx context.Context, f feature.Feature) (interface{}, error) {
	return s.featureValues[f.Name()], nil
}

func (s *sample) String() string {
	return fmt.Sprintf("[%v]", s.featureValues)
}
