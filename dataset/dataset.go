package dataset

import (
	"context"
	"fmt"
	"math"

	"github.com/jules-chstlr/sascade/feature"
)

/*
Dataset represents a collection of samples.

Its Entropy method returns the entropy of the dataset for a given
feature: a measure of the disinformation we have on the values that
feature takes over the samples belonging to the dataset.

Its SubsetWith method takes a feature.Criterion and returns a subset
that only contains samples satisfying it.

Its FeatureValues method returns the distinct values the samples in
the dataset define for a feature.

Its CountFeatureValues method returns how many samples in the dataset
take each value of a feature.

Its Samples method returns the samples it contains, and its Count
method how many there are. Its Criteria method returns the criteria
that delimit the dataset with respect to the collection it was
subsetted from.
*/
type Dataset interface {
	Entropy(context.Context, feature.Feature) (float64, error)
	SubsetWith(context.Context, feature.Criterion) (Dataset, error)
	FeatureValues(context.Context, feature.Feature) ([]interface{}, error)
	CountFeatureValues(context.Context, feature.Feature) (map[string]int, error)
	Samples(context.Context) ([]Sample, error)
	Count(context.Context) (int, error)
	Criteria(context.Context) ([]feature.Criterion, error)
}

type memoryDataset struct {
	entropy  *float64
	count    *int
	samples  []Sample
	criteria []feature.Criterion
}

/*
New takes a slice of samples and returns a Dataset built with them,
held in memory. Subsetting does not replicate the sample slice: the
subset shares it with its parent and applies the subsetting criteria
on every calculation that iterates over the samples.
*/
func New(samples []Sample) Dataset {
	return &memoryDataset{samples: samples, criteria: []feature.Criterion{}}
}

func (md *memoryDataset) Count(ctx context.Context) (int, error) {
	if md.count != nil {
		return *md.count, nil
	}
	var count int
	err := md.iterate(ctx, func(Sample) (bool, error) {
		count++
		return true, nil
	})
	if err != nil {
		return 0, err
	}
	md.count = &count
	return count, nil
}

func (md *memoryDataset) Entropy(ctx context.Context, f feature.Feature) (float64, error) {
	if md.entropy != nil {
		return *md.entropy, nil
	}
	featureValueCounts, err := md.CountFeatureValues(ctx, f)
	if err != nil {
		return 0.0, err
	}
	var result, count float64
	for _, c := range featureValueCounts {
		count += float64(c)
	}
	for _, c := range featureValueCounts {
		probValue := float64(c) / count
		result -= probValue * math.Log(probValue)
	}
	md.entropy = &result
	return result, nil
}

func (md *memoryDataset) SubsetWith(ctx context.Context, fc feature.Criterion) (Dataset, error) {
	criteria := make([]feature.Criterion, 0, len(md.criteria)+1)
	criteria = append(criteria, fc)
	criteria = append(criteria, md.criteria...)
	return &memoryDataset{samples: md.samples, criteria: criteria}, nil
}

func (md *memoryDataset) FeatureValues(ctx context.Context, f feature.Feature) ([]interface{}, error) {
	seen := make(map[interface{}]bool)
	var result []interface{}
	err := md.iterate(ctx, func(s Sample) (bool, error) {
		v, err := s.ValueFor(ctx, f)
		if err != nil {
			return false, err
		}
		if v != nil && !seen[v] {
			seen[v] = true
			result = append(result, v)
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (md *memoryDataset) CountFeatureValues(ctx context.Context, f feature.Feature) (map[string]int, error) {
	result := make(map[string]int)
	err := md.iterate(ctx, func(s Sample) (bool, error) {
		v, err := s.ValueFor(ctx, f)
		if err != nil {
			return false, err
		}
		if v != nil {
			vString, ok := v.(string)
			if !ok {
				vString = fmt.Sprintf("%v", v)
			}
			result[vString]++
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (md *memoryDataset) Samples(ctx context.Context) ([]Sample, error) {
	var samples []Sample
	err := md.iterate(ctx, func(s Sample) (bool, error) {
		samples = append(samples, s)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return samples, nil
}

func (md *memoryDataset) Criteria(ctx context.Context) ([]feature.Criterion, error) {
	return md.criteria, nil
}

func (md *memoryDataset) iterate(ctx context.Context, lambda func(Sample) (bool, error)) error {
	for _, s := range md.samples {
		if err := ctx.Err(); err != nil {
			return err
		}
		satisfies := true
		for _, c := range md.criteria {
			ok, err := c.SatisfiedBy(ctx, s)
			if err != nil {
				return err
			}
			if !ok {
				satisfies = false
				break
			}
		}
		if !satisfies {
			continue
		}
		ok, err := lambda(s)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}
	return nil
}
