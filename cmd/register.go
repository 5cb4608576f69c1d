package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/relief-sim/relief-sim/registry"
)

var (
	regDB   string // Registry database path
	regName string // Household head name
	regAges string // Comma-separated member ages
)

// registerCmd validates and stores one household in the registry
var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a household (name and member ages) in the registry",
	Run: func(cmd *cobra.Command, args []string) {
		if regName == "" {
			logrus.Fatalf("Household head name is required")
		}
		ages, err := parseAges(regAges)
		if err != nil {
			logrus.Fatalf("Invalid ages: %v", err)
		}

		reg, err := registry.Open(regDB)
		if err != nil {
			logrus.Fatalf("Failed to open registry: %v", err)
		}
		defer reg.Close()

		h, err := reg.AddHousehold(regName, len(ages), ages)
		if err != nil {
			logrus.Fatalf("Failed to register household: %v", err)
		}
		fmt.Printf("Registered household %d (%s, %d members)\n", h.ID, h.Name, len(h.Ages))
	},
}

// parseAges parses a comma-separated age list, e.g. "45,42,18,15,2".
func parseAges(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("age list must not be empty")
	}
	parts := strings.Split(s, ",")
	ages := make([]int, 0, len(parts))
	for _, p := range parts {
		age, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid age %q", p)
		}
		ages = append(ages, age)
	}
	return ages, nil
}

func init() {
	registerCmd.Flags().StringVar(&regDB, "db", "relief.db", "Registry database path")
	registerCmd.Flags().StringVar(&regName, "name", "", "Name of the household head")
	registerCmd.Flags().StringVar(&regAges, "ages", "", "Comma-separated member ages (e.g. 45,42,18,15,2)")

	rootCmd.AddCommand(registerCmd)
}
