package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/relief-sim/relief-sim/alloc"
)

var logLevel string // Log verbosity level

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "relief-sim",
	Short: "Priority-driven relief resource allocation and simulation",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadScenario resolves the effective scenario: the given base defaults,
// overridden by a YAML file when one is supplied, then the budget flag when
// set. Validation failures are fatal before any pass starts.
func loadScenario(path string, base *alloc.Scenario, budgetFlag int64) *alloc.Scenario {
	scenario := base
	if path != "" {
		loaded, err := alloc.LoadScenario(path, base)
		if err != nil {
			logrus.Fatalf("Failed to load scenario: %v", err)
		}
		scenario = loaded
	}
	if budgetFlag >= 0 {
		scenario.Budget = budgetFlag
	}
	if err := scenario.Validate(); err != nil {
		logrus.Fatalf("Invalid scenario: %v", err)
	}
	return scenario
}

// init sets up persistent CLI flags
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
}
