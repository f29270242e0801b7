package tree

import (
	"context"
	"fmt"
	"strings"

	"github.com/jules-chstlr/sascade/dataset"
	"github.com/jules-chstlr/sascade/feature"
)

/*
Prediction represents a prediction made by a classification Tree
*/
type Prediction struct {
	probabilities map[string]float64
	weight        int
}

// PredictionError represents an error related with predictions
type PredictionError string

/*
ErrCannotPredictFromSample is the error returned by the Predict method
of a tree when the sample does not define a value for a feature the
tree needs to compare against a threshold.
*/
const ErrCannotPredictFromSample = PredictionError("no prediction available for this kind of sample")

/*
ErrCannotPredictFromEmptySet is the error returned when trying to
build a prediction based on an empty dataset.
*/
const ErrCannotPredictFromEmptySet = PredictionError("cannot make prediction for empty dataset")

func (pe PredictionError) Error() string {
	return string(pe)
}

/*
NewPrediction takes a map[string]float64 with the probabilities of
each label value and an integer with the number of samples in the
dataset from which those probabilities were computed and returns a
prediction representing those values.
*/
func NewPrediction(probs map[string]float64, weight int) *Prediction {
	return &Prediction{probabilities: probs, weight: weight}
}

/*
NewPredictionFromDataset takes a context, a dataset and a label
feature and returns a prediction for the label based on the samples in
the dataset, or an error if there are no samples or the dataset cannot
be queried.
*/
func NewPredictionFromDataset(ctx context.Context, s dataset.Dataset, label feature.Feature) (*Prediction, error) {
	weight, err := s.Count(ctx)
	if err != nil {
		return nil, err
	}
	if weight == 0 {
		return nil, ErrCannotPredictFromEmptySet
	}
	probs := make(map[string]float64)
	fvc, err := s.CountFeatureValues(ctx, label)
	if err != nil {
		return nil, err
	}
	for v, c := range fvc {
		probs[v] = float64(c) / float64(weight)
	}
	return &Prediction{probs, weight}, nil
}

/*
ProbabilityOf takes a string value and returns the float64 probability
of that value according to the prediction.
*/
func (p *Prediction) ProbabilityOf(value string) float64 {
	return p.probabilities[value]
}

/*
Probabilities returns a map of string to float64 containing the
probabilities of each label value
*/
func (p *Prediction) Probabilities() map[string]float64 {
	return p.probabilities
}

/*
Weight returns the weight of the prediction: an int equal to the
number of samples in the dataset from which the prediction was made
*/
func (p *Prediction) Weight() int {
	return p.weight
}

/*
PredictedValue returns a string with the most probable value and a
float64 with its prevalence. Ties are broken in favour of the
lexicographically smaller value so that the predicted value is stable.
*/
func (p *Prediction) PredictedValue() (value string, prob float64) {
	for k, v := range p.probabilities {
		if v > prob || (v == prob && (value == "" || k < value)) {
			value = k
			prob = v
		}
	}
	return
}

func (p *Prediction) String() string {
	return strings.Replace(fmt.Sprintf("%v", p.probabilities), "map", "", 1)
}
