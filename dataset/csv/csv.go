/*
Package csv provides methods to read datasets from CSV streams.

The header or first row of the CSV content is expected to consist of
the names of known features; the rest of the rows should consist of
valid values for those features, with the '?' string indicating an
undefined value.
*/
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jules-chstlr/sascade/dataset"
	"github.com/jules-chstlr/sascade/feature"
)

/*
ReadDataset takes an io.Reader for a CSV stream and a slice of
features and returns a dataset.Dataset with the samples parsed from
the reader or an error.
*/
func ReadDataset(reader io.Reader, features []feature.Feature) (dataset.Dataset, error) {
	samples := []dataset.Sample{}
	err := ReadSamples(reader, features, func(_ int, s dataset.Sample) (bool, error) {
		samples = append(samples, s)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return dataset.New(samples), nil
}

/*
ReadSamples takes an io.Reader for a CSV stream, a slice of features
and a lambda function on an integer and a dataset.Sample that returns
a boolean. It parses the samples from the reader and calls the lambda
with each sample and its index. If the lambda returns true the next
sample is processed, otherwise the parsing stops. An error is returned
if something goes wrong when reading the stream or parsing a sample.
*/
func ReadSamples(reader io.Reader, features []feature.Feature, lambda func(int, dataset.Sample) (bool, error)) error {
	featuresByName := make(map[string]feature.Feature)
	for _, f := range features {
		featuresByName[f.Name()] = f
	}
	r := csv.NewReader(reader)
	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("reading header: %v", err)
	}
	featureOrder, err := parseHeader(header, featuresByName)
	if err != nil {
		return err
	}
	for l := 2; ; l++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading body: %v", err)
		}
		sample, err := parseRow(row, featureOrder)
		if err != nil {
			return fmt.Errorf("parsing line %d: %v", l, err)
		}
		ok, err := lambda(l-2, sample)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}
	return nil
}

/*
ReadDatasetFromFilePath takes a filepath string and a slice of
features, opens the file the filepath points to (os.Stdin when the
filepath is "") and uses ReadDataset to parse it into a
dataset.Dataset or an error.
*/
func ReadDatasetFromFilePath(filepath string, features []feature.Feature) (dataset.Dataset, error) {
	var f *os.File
	var err error
	if filepath == "" {
		f = os.Stdin
	} else {
		f, err = os.Open(filepath)
		if err != nil {
			return nil, fmt.Errorf("reading dataset: %v", err)
		}
		defer f.Close()
	}
	ds, err := ReadDataset(f, features)
	if err != nil {
		err = fmt.Errorf("parsing CSV file %s: %v", filepath, err)
	}
	return ds, err
}

func parseHeader(header []string, features map[string]feature.Feature) ([]feature.Feature, error) {
	featureOrder := []feature.Feature{}
	for _, name := range header {
		f, ok := features[name]
		if !ok {
			return nil, fmt.Errorf("parsing header: reference to unknown feature %s", name)
		}
		featureOrder = append(featureOrder, f)
	}
	return featureOrder, nil
}

func parseRow(row []string, featureOrder []feature.Feature) (dataset.Sample, error) {
	if len(row) != len(featureOrder) {
		return nil, fmt.Errorf("expected %d values, got %d", len(featureOrder), len(row))
	}
	featureValues := make(map[string]interface{})
	for i, f := range featureOrder {
		v := row[i]
		var value interface{}
		var err error
		if v != "?" {
			if _, ok := f.(*feature.ContinuousFeature); ok {
				value, err = strconv.ParseFloat(v, 64)
				if err != nil {
					return nil, fmt.Errorf("converting %s to float64: %v", v, err)
				}
			} else {
				value = v
			}
		}
		if ok, err := f.Valid(value); !ok {
			return nil, fmt.Errorf("invalid value %v of type %T for feature %s: %v", value, value, f.Name(), err)
		}
		featureValues[f.Name()] = value
	}
	return dataset.NewSample(featureValues), nil
}
