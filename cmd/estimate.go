package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/relief-sim/relief-sim/alloc"
)

var (
	estScenario string // Scenario YAML path
	estAges     string // Comma-separated true ages (exact strategy)
	estSize     int    // Reported size (bayes strategy)
	estVuln     string // Reported vulnerability category (bayes strategy)
)

// estimateCmd runs standalone attribute estimation for one household,
// without an allocation pass.
var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate derived attributes and priority for a single household",
	Run: func(cmd *cobra.Command, args []string) {
		var (
			h        *alloc.Household
			err      error
			strategy = alloc.StrategyExact
			base     = alloc.DefaultRegistryScenario()
		)
		if estAges != "" {
			ages, perr := parseAges(estAges)
			if perr != nil {
				logrus.Fatalf("Invalid ages: %v", perr)
			}
			h, err = alloc.NewHousehold(1, "", len(ages), ages)
		} else {
			strategy = alloc.StrategyBayes
			base = alloc.DefaultSimulationScenario()
			h, err = alloc.NewReportedHousehold(1, nil, estSize, alloc.Vulnerability(estVuln))
		}
		if err != nil {
			logrus.Fatalf("Invalid household: %v", err)
		}

		scenario := loadScenario(estScenario, base, -1)
		scenario.Strategy = strategy

		profile, err := alloc.EstimateProfile(h,
			alloc.NewEstimator(scenario.Strategy, scenario.Cutoffs, scenario.Bayes),
			alloc.NewScorer(scenario.Strategy, scenario.ExactWeights, scenario.BayesWeights))
		if err != nil {
			logrus.Fatalf("Estimation failed: %v", err)
		}

		fmt.Println("=== Household Profile ===")
		if profile.TrueSize > 0 {
			fmt.Printf("True Size            : %d\n", profile.TrueSize)
		}
		fmt.Printf("Expected Size        : %.2f\n", profile.ExpectedSize)
		fmt.Printf("Young Children       : %d\n", profile.YoungChildren)
		fmt.Printf("Children             : %d\n", profile.Children)
		fmt.Printf("School Age           : %d\n", profile.SchoolAge)
		fmt.Printf("Elderly              : %d\n", profile.Elderly)
		if strategy == alloc.StrategyBayes {
			fmt.Printf("Expected Vulnerability : %.2f\n", profile.ExpectedVulnerability)
		}
		fmt.Printf("Priority             : %.2f\n", profile.Priority)
	},
}

func init() {
	estimateCmd.Flags().StringVar(&estScenario, "scenario", "", "Scenario YAML file")
	estimateCmd.Flags().StringVar(&estAges, "ages", "", "Comma-separated true ages (selects the exact strategy)")
	estimateCmd.Flags().IntVar(&estSize, "reported-size", 0, "Self-reported household size (selects the bayes strategy)")
	estimateCmd.Flags().StringVar(&estVuln, "vulnerability", "medium", "Self-reported vulnerability (low, medium, high)")

	rootCmd.AddCommand(estimateCmd)
}
