package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jules-chstlr/sascade/feature/yaml"
	"github.com/jules-chstlr/sascade/tree"
	"github.com/spf13/cobra"
)

type testCmdConfig struct {
	*rootCmdConfig
	forestInput   string
	dataInput     string
	metadataInput string
	table         string
}

func testCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &testCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test a forest against a set of data",
		Long:  `Test the majority-vote predictions of a grown forest against a set of data and show the success rate.`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			ctx := context.Background()
			f, err := loadForest(config.forestInput)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			metadataFeatures, err := yaml.ReadFeaturesFromFile(config.metadataInput)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			testSet, err := loadDataset(ctx, config.dataInput, config.table, metadataFeatures)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			samples, err := testSet.Samples(ctx)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(5)
			}
			var hits, misses, failures int
			for _, s := range samples {
				predicted, _, err := f.Predict(ctx, s)
				if err != nil {
					if err == tree.ErrCannotPredictFromSample {
						failures++
						continue
					}
					fmt.Fprintln(os.Stderr, err)
					os.Exit(6)
				}
				v, err := s.ValueFor(ctx, f.Label)
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(7)
				}
				if predicted == fmt.Sprintf("%v", v) {
					hits++
				} else {
					misses++
				}
			}
			total := hits + misses
			if total == 0 {
				fmt.Println("No sample could be predicted")
				return
			}
			fmt.Printf("Success rate: %.4f (%d samples, %d unpredictable)\n", float64(hits)/float64(total), len(samples), failures)
		},
	}
	cmd.Flags().StringVarP(&(config.forestInput), "forest", "f", "", "path to a file from which the forest will be read and parsed as JSON (defaults to STDIN)")
	cmd.Flags().StringVarP(&(config.dataInput), "input", "i", "", "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL with data to test the forest against (defaults to STDIN, interpreted as CSV)")
	cmd.Flags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with metadata describing the different features available on the input (required)")
	cmd.Flags().StringVar(&(config.table), "table", "samples", "name of the table holding the samples when the input is a SQL database")
	return cmd
}

func (tcc *testCmdConfig) Validate() error {
	if tcc.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set")
	}
	if tcc.forestInput == "" && tcc.dataInput == "" {
		return fmt.Errorf("forest and input flags cannot both read from STDIN")
	}
	return nil
}
