package feature

import (
	"context"
	"fmt"
	"math"
)

/*
Criterion represents a constraint on a feature.

Its Feature method returns the feature on which the criterion applies.

Its SatisfiedBy method takes a sample and returns a boolean indicating
whether the sample's value for the feature satisfies the criterion.
*/
type Criterion interface {
	Feature() Feature
	SatisfiedBy(ctx context.Context, sample Sample) (bool, error)
}

/*
Sample is an interface for something that can satisfy a Criterion.

Its ValueFor method returns the value observed for the feature passed
as parameter, or nil if the sample does not define one.
*/
type Sample interface {
	ValueFor(context.Context, Feature) (interface{}, error)
}

/*
ContinuousCriterion represents a constraint on a continuous feature:
an interval (a, b] delimiting the values it may take. Either end can
be left open by providing -Inf or +Inf.

The interval is open on its lower end and closed on its upper end so
that a threshold split at t partitions values exactly into (-Inf, t]
and (t, +Inf), the convention binary classification trees use for
their left and right branches.
*/
type ContinuousCriterion interface {
	Criterion
	Interval() (float64, float64)
}

/*
DiscreteCriterion represents a constraint on a discrete feature: a
value it must take.
*/
type DiscreteCriterion interface {
	Criterion
	Value() string
}

type continuousCriterion struct {
	feature *ContinuousFeature
	a, b    float64
}

type discreteCriterion struct {
	feature *DiscreteFeature
	value   string
}

/*
NewContinuousCriterion takes a ContinuousFeature and a pair of float64
values indicating the start and end of an (a, b] interval and returns
a ContinuousCriterion constraining the feature to that interval.
*/
func NewContinuousCriterion(feature *ContinuousFeature, a, b float64) ContinuousCriterion {
	return &continuousCriterion{feature, a, b}
}

/*
NewDiscreteCriterion takes a DiscreteFeature and a value string and
returns a DiscreteCriterion constraining the feature to that value.
*/
func NewDiscreteCriterion(feature *DiscreteFeature, value string) DiscreteCriterion {
	return &discreteCriterion{feature, value}
}

/*
Feature returns the feature to which the constraint applies.
*/
func (cc *continuousCriterion) Feature() Feature {
	return cc.feature
}

/*
SatisfiedBy receives a sample and returns a boolean indicating whether
the sample satisfies the criterion. It returns false if the sample
does not define a float64 value for the feature, and otherwise whether
the value falls in the criterion's (a, b] interval.
*/
func (cc *continuousCriterion) SatisfiedBy(ctx context.Context, sample Sample) (bool, error) {
	val, err := sample.ValueFor(ctx, cc.feature)
	if err != nil {
		return false, err
	}
	floatVal, ok := val.(float64)
	if !ok {
		return false, nil
	}
	return (math.IsInf(cc.a, 0) || cc.a < floatVal) && (math.IsInf(cc.b, 0) || floatVal <= cc.b), nil
}

func (cc *continuousCriterion) Interval() (float64, float64) {
	return cc.a, cc.b
}

func (cc *continuousCriterion) String() string {
	return fmt.Sprintf("%v < %s <= %v", cc.a, cc.feature.Name(), cc.b)
}

/*
Feature returns the feature to which the constraint applies.
*/
func (dc *discreteCriterion) Feature() Feature {
	return dc.feature
}

/*
SatisfiedBy receives a sample and returns a boolean indicating whether
the sample's value for the feature equals the criterion's value.
*/
func (dc *discreteCriterion) SatisfiedBy(ctx context.Context, sample Sample) (bool, error) {
	val, err := sample.ValueFor(ctx, dc.feature)
	if err != nil {
		return false, err
	}
	stringVal, ok := val.(string)
	if !ok {
		return false, nil
	}
	return stringVal == dc.value, nil
}

func (dc *discreteCriterion) Value() string {
	return dc.value
}

func (dc *discreteCriterion) String() string {
	return fmt.Sprintf("%s = %s", dc.feature.Name(), dc.value)
}
