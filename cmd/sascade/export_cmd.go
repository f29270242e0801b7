package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jules-chstlr/sascade/forest"
	forestjson "github.com/jules-chstlr/sascade/forest/json"
	"github.com/jules-chstlr/sascade/sas"
	"github.com/jules-chstlr/sascade/sas/redisstore"
	"github.com/spf13/cobra"
	"gopkg.in/redis.v5"
)

type exportCmdConfig struct {
	*rootCmdConfig
	forestInput string
	table       string
	output      string
	maxDepth    int
	spacing     int
	redisURL    string
	redisPrefix string
}

func exportCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &exportCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a forest as SAS programs",
		Long:  `Translate every tree of a grown forest to a SAS DATA step computing its prediction over a SAS dataset.`,
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
			config.Logf("Translating %d trees to SAS...", len(f.Trees))
			programs, err := f.SASRules(nil, config.table, &sas.Options{
				MaxDepth: config.maxDepth,
				Spacing:  config.spacing,
			})
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			err = outputPrograms(config.output, programs)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			if config.redisURL != "" {
				config.Logf("Publishing %d programs to redis...", len(programs))
				err = publishPrograms(ctx, config.redisURL, config.redisPrefix, programs)
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(5)
				}
			}
		},
	}
	cmd.Flags().StringVarP(&(config.forestInput), "forest", "f", "", "path to a file from which the forest will be read and parsed as JSON (defaults to STDIN)")
	cmd.Flags().StringVarP(&(config.table), "table", "t", "", "name of the SAS dataset containing the feature columns (required)")
	cmd.Flags().StringVarP(&(config.output), "output", "o", "", "path to a file to which the generated SAS programs will be written (defaults to STDOUT)")
	cmd.Flags().IntVar(&(config.maxDepth), "max-depth", sas.DefaultMaxDepth, "number of levels of every tree considered")
	cmd.Flags().IntVar(&(config.spacing), "spacing", sas.DefaultSpacing, "number of spaces between edges (must be at least 2)")
	cmd.Flags().StringVar(&(config.redisURL), "redis-url", "", "redis connection URL to which the generated programs will also be published")
	cmd.Flags().StringVar(&(config.redisPrefix), "redis-prefix", "sascade:programs", "prefix for the redis keys the generated programs are published under")
	return cmd
}

func (ecc *exportCmdConfig) Validate() error {
	if ecc.table == "" {
		return fmt.Errorf("required table flag was not set")
	}
	return nil
}

func loadForest(filepath string) (*forest.Forest, error) {
	var r *os.File
	if filepath == "" {
		r = os.Stdin
	} else {
		var err error
		r, err = os.Open(filepath)
		if err != nil {
			return nil, fmt.Errorf("reading forest from %s: %v", filepath, err)
		}
		defer r.Close()
	}
	f, err := forestjson.ReadJSONForest(r)
	if err != nil {
		err = fmt.Errorf("parsing forest from %s: %v", filepath, err)
	}
	return f, err
}

func outputPrograms(filepath string, programs []string) error {
	var w *os.File
	if filepath == "" {
		w = os.Stdout
	} else {
		var err error
		w, err = os.Create(filepath)
		if err != nil {
			return fmt.Errorf("writing programs to %s: %v", filepath, err)
		}
		defer w.Close()
	}
	for i, p := range programs {
		if i != 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, p); err != nil {
			return err
		}
	}
	return nil
}

func publishPrograms(ctx context.Context, redisURL, prefix string, programs []string) error {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return fmt.Errorf("parsing redis URL: %v", err)
	}
	store := redisstore.New(redis.NewClient(opts), prefix)
	defer store.Close()
	for i, p := range programs {
		if err := store.Put(ctx, i, p); err != nil {
			return err
		}
	}
	return nil
}
