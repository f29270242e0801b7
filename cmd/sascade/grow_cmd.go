package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jules-chstlr/sascade/feature/yaml"
	"github.com/jules-chstlr/sascade/forest"
	forestjson "github.com/jules-chstlr/sascade/forest/json"
	"github.com/jules-chstlr/sascade/tree"
	"github.com/spf13/cobra"
)

type growCmdConfig struct {
	*rootCmdConfig
	dataInput     string
	metadataInput string
	table         string
	output        string
	labelFeature  string
	pruneStrategy string
	size          int
	maxDepth      int
	seed          int64
}

func growCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &growCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "grow",
		Short: "Grow a forest from a set of data",
		Long:  `Grow a forest of binary classification trees from bootstrap resamples of a set of data to predict a certain feature.`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			ctx := context.Background()
			config.Logf("Reading features from metadata at %s...", config.metadataInput)
			features, err := yaml.ReadFeaturesFromFile(config.metadataInput)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			continuous, label, err := splitFeatures(features, config.labelFeature)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			config.Logf("Reading training dataset from %s...", config.dataInput)
			trainingSet, err := loadDataset(ctx, config.dataInput, config.table, features)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			pruner, err := pruningStrategy(config.pruneStrategy)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(5)
			}
			count, err := trainingSet.Count(ctx)
			if err != nil {
				fmt.Fprintf(os.Stderr, "counting training set samples: %v\n", err)
				os.Exit(6)
			}
			config.Logf("Growing %d trees from a set with %d samples and %d features to predict %s ...", config.size, count, len(continuous), label.Name())
			f, err := forest.Grow(ctx, trainingSet, continuous, label, &forest.GrowOptions{
				Size:            config.size,
				MaxDepth:        config.maxDepth,
				PruningStrategy: pruner,
				Seed:            config.seed,
			})
			if err != nil {
				fmt.Fprintf(os.Stderr, "growing the forest: %v\n", err)
				os.Exit(7)
			}
			config.Logf("Done")
			err = outputForest(config.output, f)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(8)
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.dataInput), "input", "i", "", "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL with data to grow the forest (defaults to STDIN, interpreted as CSV)")
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with metadata describing the different features available on the input (required)")
	cmd.PersistentFlags().StringVar(&(config.table), "table", "samples", "name of the table holding the samples when the input is a SQL database")
	cmd.PersistentFlags().StringVarP(&(config.output), "output", "o", "", "path to a file to which the grown forest will be written in JSON format (defaults to STDOUT)")
	cmd.PersistentFlags().StringVarP(&(config.labelFeature), "label-feature", "c", "", "name of the feature the forest should predict (required)")
	cmd.PersistentFlags().StringVarP(&(config.pruneStrategy), "prune", "p", "none", "pruning strategy to apply, the following are valid: default, minimum-information-gain:[VALUE], none")
	cmd.PersistentFlags().IntVarP(&(config.size), "trees", "n", forest.DefaultSize, "number of trees to grow")
	cmd.PersistentFlags().IntVar(&(config.maxDepth), "max-depth", 0, "maximum depth of every tree (defaults to 0: no limit)")
	cmd.PersistentFlags().Int64Var(&(config.seed), "seed", 0, "seed for the bootstrap resampling (defaults to 0: seed with the current time)")
	return cmd
}

func (gcc *growCmdConfig) Validate() error {
	if gcc.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set")
	}
	if gcc.labelFeature == "" {
		return fmt.Errorf("required label-feature flag was not set")
	}
	if gcc.size < 1 {
		return fmt.Errorf("trees flag must be positive")
	}
	return nil
}

func pruningStrategy(ps string) (*tree.PruningStrategy, error) {
	if ps == "default" {
		return &tree.PruningStrategy{Pruner: tree.DefaultPruner()}, nil
	}
	if ps == "none" {
		return &tree.PruningStrategy{Pruner: tree.NoPruner()}, nil
	}
	if strings.HasPrefix(ps, "minimum-information-gain:") {
		gain, err := strconv.ParseFloat(strings.TrimPrefix(ps, "minimum-information-gain:"), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid minimum-information-gain value: %v", err)
		}
		return &tree.PruningStrategy{Pruner: tree.FixedInformationGainPruner(gain)}, nil
	}
	return nil, fmt.Errorf("unknown pruning strategy %q", ps)
}

func outputForest(filepath string, f *forest.Forest) error {
	var w *os.File
	if filepath == "" {
		w = os.Stdout
	} else {
		var err error
		w, err = os.Create(filepath)
		if err != nil {
			return fmt.Errorf("writing forest to %s: %v", filepath, err)
		}
		defer w.Close()
	}
	err := forestjson.WriteJSONForest(f, w)
	if err != nil {
		return fmt.Errorf("serializing forest: %v", err)
	}
	return nil
}
