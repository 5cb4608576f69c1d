package cmd

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/relief-sim/relief-sim/alloc"
	"github.com/relief-sim/relief-sim/alloc/ledger"
)

// WriteDistributionPlan writes a pass's ledger as a distribution plan CSV:
// one row per committed household/resource pair, an explicit "No Allocation"
// row for evaluated households that received nothing, and a "Not Evaluated"
// row for households the pass never reached.
func WriteDistributionPlan(path string, result *alloc.PassResult) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating distribution plan: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	header := []string{"Household ID", "Household Head", "Priority", "Wait Index", "Resource", "Quantity", "Cost"}
	if err := w.Write(header); err != nil {
		return err
	}

	costs := make(map[string]int64, len(result.Catalogue))
	for _, rt := range result.Catalogue {
		costs[rt.Name] = rt.Cost
	}

	for _, rec := range result.Ledger {
		if !rec.Evaluated {
			if err := writePlanRow(w, rec, "Not Evaluated", 0, 0); err != nil {
				return err
			}
			continue
		}
		wrote := false
		// Catalogue order keeps rows in scan order, not map order.
		for _, rt := range result.Catalogue {
			qty := rec.Quantities[rt.Name]
			if qty > 0 {
				if err := writePlanRow(w, rec, rt.Name, qty, qty*costs[rt.Name]); err != nil {
					return err
				}
				wrote = true
			}
		}
		if !wrote {
			if err := writePlanRow(w, rec, "No Allocation", 0, 0); err != nil {
				return err
			}
		}
	}
	return w.Error()
}

func writePlanRow(w *csv.Writer, rec ledger.Record, resource string, qty, cost int64) error {
	return w.Write([]string{
		strconv.Itoa(rec.HouseholdID),
		rec.Name,
		strconv.FormatFloat(rec.Priority, 'f', 2, 64),
		strconv.Itoa(rec.WaitIndex),
		resource,
		strconv.FormatInt(qty, 10),
		strconv.FormatInt(cost, 10),
	})
}

// WriteSummaryReport writes a human-readable pass summary: budget consumed
// and remaining, residual inventory per resource, and population age-band
// totals across all registered households.
func WriteSummaryReport(path string, result *alloc.PassResult, households []*alloc.Household, cutoffs alloc.AgeCutoffs) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating summary report: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	defer w.Flush()

	s := ledger.Summarize(result.Ledger, result.InitialBudget)

	fmt.Fprintln(w, "RESOURCE DISTRIBUTION SUMMARY")
	fmt.Fprintln(w, "============================================================")
	fmt.Fprintf(w, "Total Budget: %d\n", result.InitialBudget)
	fmt.Fprintf(w, "Total Cost of Allocations: %d\n", s.TotalCost)
	fmt.Fprintf(w, "Remaining Budget: %d\n\n", s.RemainingBudget)

	fmt.Fprintln(w, "RESOURCE SUMMARY (After Allocation)")
	fmt.Fprintln(w, "----------------------------------------")
	for _, rt := range result.Catalogue {
		fmt.Fprintf(w, "%s: %d units remaining at %d each\n", rt.Name, rt.Available, rt.Cost)
	}

	var young, schoolAge, elderly int
	for _, h := range households {
		for _, age := range h.Ages {
			switch {
			case age < cutoffs.YoungChild:
				young++
			case age >= cutoffs.SchoolAge && age < cutoffs.Adult:
				schoolAge++
			}
			if age > cutoffs.Elderly {
				elderly++
			}
		}
	}

	fmt.Fprintln(w, "\nHOUSEHOLD SUMMARY")
	fmt.Fprintln(w, "----------------------------------------")
	fmt.Fprintf(w, "Total Households Processed: %d\n", s.Evaluated)
	fmt.Fprintf(w, "Households Served: %d\n", s.Served)
	fmt.Fprintf(w, "Total Young Children: %d\n", young)
	fmt.Fprintf(w, "Total School-age Children: %d\n", schoolAge)
	fmt.Fprintf(w, "Total Elderly: %d\n", elderly)

	return nil
}
