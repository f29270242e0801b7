package feature

import "fmt"

/*
Feature represents a property that can be observed on a sample.
*/
type Feature interface {
	Name() string
	Valid(interface{}) (bool, error)
}

/*
ContinuousFeature represents a property that takes a numeric value,
such as a measurement. Decision trees split on continuous features
by comparing their values against a threshold.
*/
type ContinuousFeature struct {
	name string
}

/*
DiscreteFeature represents a property that can only take a value
among a finite set, such as the label a classification tree predicts.
*/
type DiscreteFeature struct {
	name            string
	availableValues []string
}

/*
NewContinuousFeature takes a name string and returns a continuous
feature with the given name.
*/
func NewContinuousFeature(name string) *ContinuousFeature {
	return &ContinuousFeature{name}
}

/*
NewDiscreteFeature takes a name string and a slice of available value
strings and returns a discrete feature with the given name and
available values.
*/
func NewDiscreteFeature(name string, availableValues []string) *DiscreteFeature {
	return &DiscreteFeature{name, availableValues}
}

/*
Name returns a string with the name of the feature
*/
func (cf *ContinuousFeature) Name() string {
	return cf.name
}

/*
Valid receives an interface value and returns a boolean indicating
whether the value is acceptable for the feature and an error
describing the problem when it is not. Continuous features accept
float64 values and nil (an undefined observation).
*/
func (cf *ContinuousFeature) Valid(value interface{}) (bool, error) {
	if value == nil {
		return true, nil
	}
	if _, ok := value.(float64); !ok {
		return false, fmt.Errorf("continuous feature %s expects float64 value, got %T value", cf.name, value)
	}
	return true, nil
}

func (cf *ContinuousFeature) String() string {
	return cf.name
}

/*
Name returns a string with the name of the feature
*/
func (df *DiscreteFeature) Name() string {
	return df.name
}

/*
Valid receives an interface value and returns a boolean indicating
whether the value is one of the available values for the feature and
an error describing the problem when it is not.
*/
func (df *DiscreteFeature) Valid(value interface{}) (bool, error) {
	if value == nil {
		return true, nil
	}
	vs, ok := value.(string)
	if !ok {
		return false, fmt.Errorf("discrete feature %s expects string value, got %T value", df.name, value)
	}
	for _, av := range df.availableValues {
		if av == vs {
			return true, nil
		}
	}
	return false, fmt.Errorf("discrete feature %s got unknown value %s", df.name, vs)
}

/*
AvailableValues returns a string slice with the values available for
the feature
*/
func (df *DiscreteFeature) AvailableValues() []string {
	return df.availableValues
}

func (df *DiscreteFeature) String() string {
	return df.name
}
