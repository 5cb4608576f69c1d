// The greedy allocation pass: households visited strictly in processing
// order, each scanning the catalogue in its fixed order and committing needs
// against the shared budget and inventory. Single left-to-right pass, no
// backtracking, no rollback of settled households.

package alloc

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/relief-sim/relief-sim/alloc/ledger"
)

// PassDeps bundles the policies driving one allocation pass. All fields are
// required. Budget and inventory are owned exclusively by RunPass for the
// duration of the pass; the estimator, scorer, and need policy only ever see
// read-only profiles.
type PassDeps struct {
	Estimator Estimator
	Scorer    Scorer
	Needs     NeedPolicy
	Order     OrderPolicy

	// StopWhenExhausted terminates the pass once the remaining budget
	// reaches zero (the stochastic caller's behavior). The remaining
	// unprocessed households receive unevaluated records carrying the
	// processing index the pass stopped at. When false, every household is
	// evaluated even with a zero budget, producing all-zero records.
	StopWhenExhausted bool
}

func (d PassDeps) validate() error {
	if d.Estimator == nil || d.Scorer == nil || d.Needs == nil || d.Order == nil {
		return fmt.Errorf("pass dependencies incomplete: estimator, scorer, need policy, and order policy are all required")
	}
	return nil
}

// PassResult is the outcome of one allocation pass.
type PassResult struct {
	Ledger          ledger.Ledger
	InitialBudget   int64
	RemainingBudget int64
	TotalCost       int64
	// Catalogue is the caller's catalogue with post-pass availability.
	Catalogue []ResourceType
}

// RunPass executes one greedy allocation pass.
//
// The given catalogue's availability and the budget are consumed in place;
// callers that need the pre-pass state pass CloneCatalogue output. Derived
// profiles are recomputed from scratch for every household before ordering,
// then frozen for the remainder of the pass. Configuration and estimation
// errors surface before the first commit; a started scan never fails.
//
// There is no error state per household: every household settles, possibly
// with an all-zero allocation. Budget or inventory shortfall for one
// household/resource pair is ordinary control flow: the scan records a zero
// quantity and moves to the next resource type, never re-evaluating earlier
// households.
func RunPass(households []*Household, catalogue []ResourceType, budget int64, deps PassDeps) (*PassResult, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	if err := ValidateCatalogue(catalogue); err != nil {
		return nil, fmt.Errorf("invalid catalogue: %w", err)
	}
	if budget < 0 {
		return nil, fmt.Errorf("budget must be non-negative, got %d", budget)
	}

	// Estimation phase: recompute every profile before any state mutation.
	for _, h := range households {
		profile, err := deps.Estimator.Estimate(h)
		if err != nil {
			return nil, err
		}
		profile.Priority = deps.Scorer.Score(profile)
		h.Profile = &profile
	}

	ordered := make([]*Household, len(households))
	copy(ordered, households)
	deps.Order.Order(ordered)

	result := &PassResult{
		Ledger:        make(ledger.Ledger, 0, len(ordered)),
		InitialBudget: budget,
		Catalogue:     catalogue,
	}
	remaining := budget

	settled := 0
	for _, h := range ordered {
		if deps.StopWhenExhausted && remaining <= 0 {
			break
		}

		record := ledger.Record{
			HouseholdID:           h.ID,
			Name:                  h.Name,
			Evaluated:             true,
			Quantities:            make(map[string]int64, len(catalogue)),
			WaitIndex:             settled,
			Priority:              h.Profile.Priority,
			TrueSize:              h.Profile.TrueSize,
			ExpectedSize:          h.Profile.ExpectedSize,
			ReportedSize:          h.ReportedSize,
			ReportedVulnerability: string(h.ReportedVulnerability),
		}

		// Fixed catalogue scan order, never reordered per household.
		for i := range catalogue {
			rt := &catalogue[i]
			qty := deps.Needs.Quantity(rt.Kind, *h.Profile)
			cost := qty * rt.Cost
			if qty > 0 && qty <= rt.Available && cost <= remaining {
				rt.Available -= qty
				remaining -= cost
				record.Quantities[rt.Name] = qty
				record.TotalCost += cost
				result.TotalCost += cost
			} else {
				record.Quantities[rt.Name] = 0
			}
		}

		logrus.Debugf("household %d settled: priority=%.1f cost=%d remaining=%d",
			h.ID, h.Profile.Priority, record.TotalCost, remaining)
		result.Ledger = append(result.Ledger, record)
		settled++
	}

	// Households never reached because the budget ran out: empty records at
	// the index the pass stopped at, distinguishable from evaluated zeros.
	for _, h := range ordered[settled:] {
		result.Ledger = append(result.Ledger, ledger.Record{
			HouseholdID:           h.ID,
			Name:                  h.Name,
			Evaluated:             false,
			WaitIndex:             settled,
			Priority:              h.Profile.Priority,
			TrueSize:              h.Profile.TrueSize,
			ExpectedSize:          h.Profile.ExpectedSize,
			ReportedSize:          h.ReportedSize,
			ReportedVulnerability: string(h.ReportedVulnerability),
		})
	}

	result.RemainingBudget = remaining
	return result, nil
}
