package ledger

import (
	"gonum.org/v1/gonum/stat"
)

// Summary aggregates statistics from a Ledger for final reporting.
type Summary struct {
	Households      int
	Evaluated       int
	Served          int // households that received at least one unit
	TotalCost       int64
	RemainingBudget int64

	MeanPriority float64
	MeanItems    float64
	MeanCost     float64

	MinWaitIndex  int
	MeanWaitIndex float64
	MaxWaitIndex  int
}

// Summarize computes aggregate statistics from a ledger and the pass's
// initial budget. Safe for empty ledgers (returns zero-value fields).
func Summarize(l Ledger, initialBudget int64) *Summary {
	s := &Summary{Households: len(l)}
	if len(l) == 0 {
		s.RemainingBudget = initialBudget
		return s
	}

	priorities := make([]float64, 0, len(l))
	items := make([]float64, 0, len(l))
	costs := make([]float64, 0, len(l))
	waits := make([]float64, 0, len(l))

	s.MinWaitIndex = l[0].WaitIndex
	for _, r := range l {
		if r.Evaluated {
			s.Evaluated++
		}
		if r.Served() {
			s.Served++
		}
		s.TotalCost += r.TotalCost

		priorities = append(priorities, r.Priority)
		items = append(items, float64(r.Items()))
		costs = append(costs, float64(r.TotalCost))
		waits = append(waits, float64(r.WaitIndex))
		if r.WaitIndex < s.MinWaitIndex {
			s.MinWaitIndex = r.WaitIndex
		}
		if r.WaitIndex > s.MaxWaitIndex {
			s.MaxWaitIndex = r.WaitIndex
		}
	}

	s.RemainingBudget = initialBudget - s.TotalCost
	s.MeanPriority = stat.Mean(priorities, nil)
	s.MeanItems = stat.Mean(items, nil)
	s.MeanCost = stat.Mean(costs, nil)
	s.MeanWaitIndex = stat.Mean(waits, nil)
	return s
}
