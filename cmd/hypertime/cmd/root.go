// Package cmd provides the command-line interface for hypertime.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "hypertime",
	Short: "Hypertime simulates branching-timeline universes.",
	Long: `Hypertime advances a branching-timeline universe under a set of ` +
		`time-travel rules, recording every transit into an SQLite transcript. ` +
		`Use run to advance a universe and transits to inspect a recorded ` +
		`transcript.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
