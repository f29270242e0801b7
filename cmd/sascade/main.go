package main

import (
	"os"

	"github.com/spf13/cobra"
)

type rootCmdConfig struct {
	verbose bool
}

func main() {
	if err := cliParser().Execute(); err != nil {
		os.Exit(1)
	}
}

func cliParser() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sascade",
		Short: "sascade is a tool to port decision-tree ensembles to SAS",
		Long:  `A tool to grow random forests of binary classification trees from your data and translate every tree to a SAS program that computes its prediction`,
	}
	config := &rootCmdConfig{}
	rootCmd.PersistentFlags().BoolVarP(&(config.verbose), "verbose", "v", false, "")
	rootCmd.AddCommand(versionCmd(), growCmd(config), exportCmd(config), testCmd(config))
	return rootCmd
}
