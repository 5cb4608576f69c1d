package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/relief-sim/relief-sim/alloc"
	"github.com/relief-sim/relief-sim/registry"
)

var (
	allocDB          string // Registry database path
	allocBudget      int64  // Budget override (-1 = stored/scenario value)
	allocScenario    string // Scenario YAML path
	allocExportPath  string // Distribution plan CSV path
	allocSummaryPath string // Text summary path
)

// allocateCmd runs an exact-strategy pass over the registered households
var allocateCmd = &cobra.Command{
	Use:   "allocate",
	Short: "Allocate resources to the registered households",
	Run: func(cmd *cobra.Command, args []string) {
		scenario := loadScenario(allocScenario, alloc.DefaultRegistryScenario(), allocBudget)

		reg, err := registry.Open(allocDB)
		if err != nil {
			logrus.Fatalf("Failed to open registry: %v", err)
		}
		defer reg.Close()

		households, err := reg.Households()
		if err != nil {
			logrus.Fatalf("Failed to load households: %v", err)
		}
		if len(households) == 0 {
			logrus.Fatalf("No households registered in %s", allocDB)
		}

		// Stored catalogue and budget take precedence over scenario defaults;
		// an explicit --budget flag beats both.
		catalogue := alloc.CloneCatalogue(scenario.Catalogue)
		if stored, err := reg.Catalogue(); err != nil {
			logrus.Fatalf("Failed to load catalogue: %v", err)
		} else if stored != nil {
			catalogue = stored
		}
		budget := scenario.Budget
		if stored, ok, err := reg.Budget(); err != nil {
			logrus.Fatalf("Failed to load budget: %v", err)
		} else if ok && allocBudget < 0 {
			budget = stored
		}

		var runner alloc.Runner
		result, err := runner.Run(households, catalogue, budget, scenario.Deps())
		if err != nil {
			logrus.Fatalf("Allocation pass failed: %v", err)
		}

		// Persist strictly after the pass completes.
		if err := reg.ReplaceLedger(result.Ledger); err != nil {
			logrus.Fatalf("Failed to save ledger: %v", err)
		}
		if err := reg.SaveCatalogue(result.Catalogue); err != nil {
			logrus.Fatalf("Failed to save catalogue: %v", err)
		}
		if err := reg.SetBudget(result.RemainingBudget); err != nil {
			logrus.Fatalf("Failed to save budget: %v", err)
		}

		printSummary(result)

		if allocExportPath != "" {
			if err := WriteDistributionPlan(allocExportPath, result); err != nil {
				logrus.Fatalf("Failed to export distribution plan: %v", err)
			}
			logrus.Infof("Distribution plan written to %s", allocExportPath)
		}
		if allocSummaryPath != "" {
			if err := WriteSummaryReport(allocSummaryPath, result, households, scenario.Cutoffs); err != nil {
				logrus.Fatalf("Failed to write summary report: %v", err)
			}
			logrus.Infof("Summary report written to %s", allocSummaryPath)
		}
	},
}

func init() {
	allocateCmd.Flags().StringVar(&allocDB, "db", "relief.db", "Registry database path")
	allocateCmd.Flags().Int64Var(&allocBudget, "budget", -1, "Total budget (overrides stored and scenario values)")
	allocateCmd.Flags().StringVar(&allocScenario, "scenario", "", "Scenario YAML file")
	allocateCmd.Flags().StringVar(&allocExportPath, "export", "", "Write the distribution plan CSV to this path")
	allocateCmd.Flags().StringVar(&allocSummaryPath, "summary", "", "Write the text summary report to this path")

	rootCmd.AddCommand(allocateCmd)
}
