// Package cmd implements the CLI commands for gwoptimizer: running a gear
// search, explaining a single build, benchmarking a settings document, and
// browsing prior runs persisted to SQLite.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pable/go-cs-metrics/internal/report"
)

// dbPath is the file path to the run-history SQLite database, set via the
// --db flag.
var dbPath string

// silent suppresses verbose indicator explanations when true, set via the
// --silent flag.
var silent bool

// rootCmd is the top-level cobra command for the gwoptimizer CLI.
var rootCmd = &cobra.Command{
	Use:   "gwoptimizer",
	Short: "Guild Wars 2 gear optimizer",
	Long:  "Search gear/affix combinations for the build that maximizes damage, survivability, or healing.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		report.Verbose = !silent
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	defaultDB := filepath.Join(mustUserHome(), ".gwoptimizer", "runs.db")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", defaultDB, "path to the run-history SQLite database")
	rootCmd.PersistentFlags().BoolVarP(&silent, "silent", "s", false, "hide indicator explanations before each table")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(runsCmd)
}

// mustUserHome returns the current user's home directory, falling back to
// "." if it cannot be determined.
func mustUserHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
