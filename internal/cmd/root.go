// Package cmd wires the vcadq command-line interface.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "vcadq",
	Short: "VCA survey data-quality checks and wide-table builder",
	Long: `vcadq - VCA survey data-quality checks and wide-table builder
  - build: pivot raw survey extracts into one wide row per response
  - check: run the DQC rules and export the failure ledger`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)
}
