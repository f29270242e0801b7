package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/jules-chstlr/sascade/dataset"
	"github.com/jules-chstlr/sascade/dataset/csv"
	"github.com/jules-chstlr/sascade/dataset/mongodataset"
	"github.com/jules-chstlr/sascade/dataset/sqldataset"
	"github.com/jules-chstlr/sascade/dataset/sqldataset/pgadapter"
	"github.com/jules-chstlr/sascade/dataset/sqldataset/sqlite3adapter"
	"github.com/jules-chstlr/sascade/feature"
	mgo "gopkg.in/mgo.v2"
)

/*
loadDataset takes a context, an input location, a table name and a
slice of features and returns a dataset read from the location:
a PostgreSQL connection URL, a MongoDB connection URL, a path to a
SQLite3 (.db) file, a path to a CSV file or "" for CSV on STDIN.
*/
func loadDataset(ctx context.Context, input, table string, features []feature.Feature) (dataset.Dataset, error) {
	switch {
	case strings.HasPrefix(input, "postgresql://"):
		adapter, err := pgadapter.Open(input)
		if err != nil {
			return nil, err
		}
		return sqldataset.Read(ctx, adapter, table, features)
	case strings.HasPrefix(input, "mongodb://"):
		session, err := mgo.Dial(input)
		if err != nil {
			return nil, fmt.Errorf("connecting to MongoDB database: %v", err)
		}
		return mongodataset.Open(ctx, session, features)
	case strings.HasSuffix(input, ".db"):
		adapter, err := sqlite3adapter.Open(input)
		if err != nil {
			return nil, err
		}
		return sqldataset.Read(ctx, adapter, table, features)
	default:
		return csv.ReadDatasetFromFilePath(input, features)
	}
}

/*
splitFeatures takes a slice of features and the name of the label
feature and returns the continuous features trees can split on and the
discrete label feature, or an error if the label is not among the
features, is not discrete, or any other feature is not continuous.
*/
func splitFeatures(features []feature.Feature, labelName string) ([]*feature.ContinuousFeature, *feature.DiscreteFeature, error) {
	var label *feature.DiscreteFeature
	var continuous []*feature.ContinuousFeature
	for _, f := range features {
		if f.Name() == labelName {
			df, ok := f.(*feature.DiscreteFeature)
			if !ok {
				return nil, nil, fmt.Errorf("label feature %s must be discrete", labelName)
			}
			label = df
			continue
		}
		cf, ok := f.(*feature.ContinuousFeature)
		if !ok {
			return nil, nil, fmt.Errorf("feature %s must be continuous to split on", f.Name())
		}
		continuous = append(continuous, cf)
	}
	if label == nil {
		return nil, nil, fmt.Errorf("label feature '%s' is not defined", labelName)
	}
	return continuous, label, nil
}
