package alloc

import (
	"fmt"
	"sort"
)

// OrderPolicy produces the total processing order for one pass by sorting the
// household slice in place. All households must carry a computed Profile
// before ordering.
type OrderPolicy interface {
	Order(households []*Household)
}

// Order policy names.
const (
	// OrderPriorityID sorts by priority descending with ID ascending as the
	// tie-break: repeated runs on identical input are reproducible.
	OrderPriorityID = "priority-id"
	// OrderPriorityOnly sorts by priority descending with no tie-break,
	// emulating the comparator-only heap the stochastic caller originally
	// used. Equal priorities land in an unspecified relative order, so this
	// policy gives no reproducibility guarantee.
	OrderPriorityOnly = "priority-only"
)

// validOrderPolicies maps accepted order policy names. Empty defaults to priority-id.
var validOrderPolicies = map[string]bool{"": true, OrderPriorityID: true, OrderPriorityOnly: true}

// IsValidOrderPolicy returns true if the given policy name is recognized.
func IsValidOrderPolicy(name string) bool {
	return validOrderPolicies[name]
}

// ByPriorityThenID is the deterministic default ordering.
type ByPriorityThenID struct{}

func (o *ByPriorityThenID) Order(households []*Household) {
	sort.SliceStable(households, func(i, j int) bool {
		if households[i].Profile.Priority != households[j].Profile.Priority {
			return households[i].Profile.Priority > households[j].Profile.Priority
		}
		return households[i].ID < households[j].ID
	})
}

// ByPriorityOnly is the legacy comparator-only ordering.
type ByPriorityOnly struct{}

func (o *ByPriorityOnly) Order(households []*Household) {
	sort.Slice(households, func(i, j int) bool {
		return households[i].Profile.Priority > households[j].Profile.Priority
	})
}

// NewOrderPolicy creates an OrderPolicy by name.
// Empty string defaults to the deterministic priority-id ordering.
// Panics on unrecognized names.
func NewOrderPolicy(name string) OrderPolicy {
	if !IsValidOrderPolicy(name) {
		panic(fmt.Sprintf("unknown order policy %q", name))
	}
	switch name {
	case "", OrderPriorityID:
		return &ByPriorityThenID{}
	case OrderPriorityOnly:
		return &ByPriorityOnly{}
	default:
		panic(fmt.Sprintf("unhandled order policy %q", name))
	}
}
