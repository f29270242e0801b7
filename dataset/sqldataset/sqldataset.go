/*
Package sqldataset provides methods to read datasets from SQL
databases through driver-specific adapters.

A training table is expected to have one column per feature, with
continuous features stored as REAL columns and discrete features as
TEXT columns. NULL values are read as undefined observations.
*/
package sqldataset

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jules-chstlr/sascade/dataset"
	"github.com/jules-chstlr/sascade/feature"
)

/*
Adapter gives access to a SQL database holding training samples.

Its DB method returns the open database handle.

Its ColumnName method maps a feature name to a quoted column
identifier for the backend's SQL dialect, or returns an error if the
feature name cannot be used as a column.
*/
type Adapter interface {
	DB() *sql.DB
	ColumnName(featureName string) (string, error)
}

/*
Read takes a context, an Adapter, a table name and a slice of
features, and reads every row of the table into a sample, returning a
dataset.Dataset with them or an error if the table cannot be queried
or a row does not hold valid values for the features.
*/
func Read(ctx context.Context, a Adapter, table string, features []feature.Feature) (dataset.Dataset, error) {
	columns := make([]string, 0, len(features))
	for _, f := range features {
		c, err := a.ColumnName(f.Name())
		if err != nil {
			return nil, fmt.Errorf("reading table %s: %v", table, err)
		}
		columns = append(columns, c)
	}
	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(columns, ", "), table)
	rows, err := a.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying table %s: %v", table, err)
	}
	defer rows.Close()
	var samples []dataset.Sample
	for rows.Next() {
		s, err := scanSample(rows, features)
		if err != nil {
			return nil, fmt.Errorf("reading table %s: %v", table, err)
		}
		samples = append(samples, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading table %s: %v", table, err)
	}
	return dataset.New(samples), nil
}

func scanSample(rows *sql.Rows, features []feature.Feature) (dataset.Sample, error) {
	values := make([]interface{}, len(features))
	for i, f := range features {
		if _, ok := f.(*feature.ContinuousFeature); ok {
			values[i] = &sql.NullFloat64{}
		} else {
			values[i] = &sql.NullString{}
		}
	}
	if err := rows.Scan(values...); err != nil {
		return nil, err
	}
	featureValues := make(map[string]interface{})
	for i, f := range features {
		var value interface{}
		switch v := values[i].(type) {
		case *sql.NullFloat64:
			if v.Valid {
				value = v.Float64
			}
		case *sql.NullString:
			if v.Valid {
				value = v.String
			}
		}
		if ok, err := f.Valid(value); !ok {
			return nil, fmt.Errorf("invalid value %v for feature %s: %v", value, f.Name(), err)
		}
		featureValues[f.Name()] = value
	}
	return dataset.NewSample(featureValues), nil
}
