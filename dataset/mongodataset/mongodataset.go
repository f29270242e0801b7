/*
Package mongodataset provides an implementation of dataset.Dataset
that uses a MongoDB collection as backend.
*/
package mongodataset

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/jules-chstlr/sascade/dataset"
	"github.com/jules-chstlr/sascade/feature"
	mgo "gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

/*
Dataset is a dataset.Dataset to which samples can also be added and
from which samples can be sequentially read.
*/
type Dataset interface {
	dataset.Dataset
	Write(context.Context, []dataset.Sample) (int, error)
	Read(context.Context) (<-chan dataset.Sample, <-chan error)
}

type mongodataset struct {
	session  *mgo.Session
	features []feature.Feature
	criteria []feature.Criterion
	query    bson.M
	entropy  *float64
}

const samplesCollectionName = "samples"

/*
Open takes a MongoDB session and a slice of features and returns a
Dataset that works on the samples collection of the session's default
database, or an error if the collection cannot be prepared.
*/
func Open(ctx context.Context, session *mgo.Session, features []feature.Feature) (Dataset, error) {
	mds := &mongodataset{session: session, features: features}
	err := mds.ensureIndexes()
	if err != nil {
		return nil, err
	}
	return mds, nil
}

func (mds *mongodataset) Entropy(ctx context.Context, f feature.Feature) (float64, error) {
	if mds.entropy != nil {
		return *mds.entropy, nil
	}
	var result, count float64
	featureValueCounts, err := mds.CountFeatureValues(ctx, f)
	if err != nil {
		return 0.0, err
	}
	for _, c := range featureValueCounts {
		count += float64(c)
	}
	for _, c := range featureValueCounts {
		probValue := float64(c) / count
		result -= probValue * math.Log(probValue)
	}
	mds.entropy = &result
	return result, nil
}

func (mds *mongodataset) SubsetWith(ctx context.Context, fc feature.Criterion) (dataset.Dataset, error) {
	criteria := append([]feature.Criterion{fc}, mds.criteria...)
	return &mongodataset{session: mds.session, features: mds.features, criteria: criteria}, nil
}

func (mds *mongodataset) FeatureValues(ctx context.Context, f feature.Feature) ([]interface{}, error) {
	iter := mds.samplesCollection().Pipe([]bson.M{
		{"$match": mds.mongoQuery()},
		{"$group": bson.M{"_id": fmt.Sprintf("$%s", f.Name())}},
	}).Iter()
	defer iter.Close()
	var doc bson.M
	var result []interface{}
	for iter.Next(&doc) {
		if doc["_id"] != nil {
			result = append(result, doc["_id"])
		}
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (mds *mongodataset) CountFeatureValues(ctx context.Context, f feature.Feature) (map[string]int, error) {
	iter := mds.samplesCollection().Pipe([]bson.M{
		{"$match": mds.mongoQuery()},
		{"$group": bson.M{"_id": fmt.Sprintf("$%s", f.Name()), "count": bson.M{"$sum": 1}}},
	}).Iter()
	defer iter.Close()
	var doc bson.M
	result := make(map[string]int)
	for iter.Next(&doc) {
		if doc["_id"] == nil {
			continue
		}
		count, ok := doc["count"].(int)
		if !ok {
			return nil, fmt.Errorf("counting feature values: mongo aggregation returned a %T instead of an int as count", doc["count"])
		}
		result[fmt.Sprintf("%v", doc["_id"])] = count
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (mds *mongodataset) Samples(ctx context.Context) ([]dataset.Sample, error) {
	var samples []dataset.Sample
	sampleChan, errs := mds.Read(ctx)
	for sample := range sampleChan {
		samples = append(samples, sample)
	}
	err := <-errs
	return samples, err
}

func (mds *mongodataset) Count(context.Context) (int, error) {
	return mds.samplesCollection().Find(mds.mongoQuery()).Count()
}

func (mds *mongodataset) Criteria(context.Context) ([]feature.Criterion, error) {
	return mds.criteria, nil
}

func (mds *mongodataset) Write(ctx context.Context, samples []dataset.Sample) (int, error) {
	docs := make([]interface{}, 0, len(samples))
	for _, s := range samples {
		doc := make(bson.M)
		for _, f := range mds.features {
			value, err := s.ValueFor(ctx, f)
			if err != nil {
				return 0, err
			}
			if value != nil {
				doc[f.Name()] = value
			}
		}
		docs = append(docs, doc)
	}
	err := mds.samplesCollection().Insert(docs...)
	if err != nil {
		return 0, err
	}
	return len(samples), nil
}

func (mds *mongodataset) Read(ctx context.Context) (<-chan dataset.Sample, <-chan error) {
	samples := make(chan dataset.Sample)
	errs := make(chan error, 1)
	go func() {
		var doc bson.M
		var err error
		iter := mds.samplesCollection().Find(mds.mongoQuery()).Iter()
		defer iter.Close()
		for iter.Next(&doc) {
			s := dataset.NewSample(doc)
			select {
			case <-ctx.Done():
				err = ctx.Err()
			case samples <- s:
			}
			if err != nil {
				break
			}
			doc = nil
		}
		if err == nil {
			err = iter.Err()
		}
		if err != nil {
			errs <- err
		}
		close(errs)
		close(samples)
	}()
	return samples, errs
}

func (mds *mongodataset) ensureIndexes() error {
	for _, f := range mds.features {
		fName := f.Name()
		if fName == "_id" {
			return fmt.Errorf("invalid feature name %q: reserved collection field", "_id")
		}
		if strings.ContainsAny(fName, ".$") {
			return fmt.Errorf("invalid feature name %q: contains reserved characters %q or %q", fName, ".", "$")
		}
		index := mgo.Index{
			Key:        []string{fName},
			Background: true,
			Sparse:     true,
		}
		err := mds.samplesCollection().EnsureIndex(index)
		if err != nil {
			return err
		}
	}
	return nil
}

func (mds *mongodataset) samplesCollection() *mgo.Collection {
	return mds.session.DB("").C(samplesCollectionName)
}

func (mds *mongodataset) mongoQuery() bson.M {
	if mds.query == nil {
		mds.query = make(bson.M)
		for _, fc := range mds.criteria {
			fName := fc.Feature().Name()
			switch qfc := fc.(type) {
			case feature.DiscreteCriterion:
				mds.query[fName] = qfc.Value()
			case feature.ContinuousCriterion:
				a, b := qfc.Interval()
				var rangeValue bson.M
				if v, ok := mds.query[fName]; ok && v != nil {
					rangeValue = v.(bson.M)
				}
				if rangeValue == nil {
					rangeValue = make(bson.M)
				}
				if !math.IsInf(a, 0) {
					v, ok := rangeValue["$gt"].(float64)
					if !ok || v < a {
						rangeValue["$gt"] = a
					}
				}
				if !math.IsInf(b, 0) {
					v, ok := rangeValue["$lte"].(float64)
					if !ok || v > b {
						rangeValue["$lte"] = b
					}
				}
				mds.query[fName] = rangeValue
			}
		}
	}
	return mds.query
}
