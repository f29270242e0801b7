package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

const (
	// VersionMajor is the major number in sascade's version
	VersionMajor = 0
	// VersionMinor is the minor number in sascade's version
	VersionMinor = 1
	// VersionPatch is the patch number in sascade's version
	VersionPatch = 0
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of sascade",
		Long:  `All software has versions. This is sascade's`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("sascade v%d.%d.%d\n", VersionMajor, VersionMinor, VersionPatch)
		},
	}
}
