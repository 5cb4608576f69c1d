// Package ledger provides the allocation record types produced by a pass.
// This package has no dependencies on the core packages; it stores pure data.
package ledger

// Record captures the outcome of one household's evaluation in a pass.
//
// Evaluated distinguishes "scanned and nothing committed" from "pass ended
// before this household was reached": an unevaluated record always has empty
// quantities and zero cost, while an evaluated record carries an explicit
// zero quantity for every needed-but-uncommitted resource.
type Record struct {
	HouseholdID int
	Name        string

	Evaluated bool
	// Quantities maps resource name to committed quantity. A zero entry means
	// the resource was evaluated but not committed (unaffordable, unavailable,
	// or simply not needed). Nil for unevaluated records.
	Quantities map[string]int64
	TotalCost  int64
	// WaitIndex is the synthetic processing index: position in processing
	// order for evaluated households, the index at which the pass stopped for
	// unevaluated ones.
	WaitIndex int

	// Evaluation metadata, carried for reporting.
	Priority              float64
	TrueSize              int
	ExpectedSize          float64
	ReportedSize          int
	ReportedVulnerability string
}

// Items returns the total quantity committed across all resources.
func (r Record) Items() int64 {
	var total int64
	for _, qty := range r.Quantities {
		total += qty
	}
	return total
}

// Served reports whether the household received at least one unit.
func (r Record) Served() bool {
	return r.Items() > 0
}

// Ledger is the complete per-household record set of one pass, in processing
// order. Each pass produces a fresh ledger that fully replaces any prior one.
type Ledger []Record

// TotalCost returns the grand total committed across all records.
func (l Ledger) TotalCost() int64 {
	var total int64
	for _, r := range l {
		total += r.TotalCost
	}
	return total
}

// ByHousehold returns an index from household ID to record.
func (l Ledger) ByHousehold() map[int]Record {
	out := make(map[int]Record, len(l))
	for _, r := range l {
		out[r.HouseholdID] = r
	}
	return out
}
