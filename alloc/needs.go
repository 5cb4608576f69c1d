package alloc

import (
	"fmt"
	"math"
)

// NeedPolicy maps a profile to a required quantity per resource kind,
// independent of remaining budget and inventory: needs are computed as if
// resources were unlimited, scarcity is resolved by the allocator. A zero or
// negative quantity means "no need" and is skipped without consuming anything.
type NeedPolicy interface {
	Quantity(kind ResourceKind, p Profile) int64
}

// Need policy names. The two callers intentionally use different rounding and
// minimum-quantity rules for the same formulas; both are preserved as
// distinct policies rather than unified.
const (
	NeedSizeScaled = "size-scaled"
	NeedExpected   = "expected"
)

// validNeedPolicies maps accepted need policy names. Empty defaults to size-scaled.
var validNeedPolicies = map[string]bool{"": true, NeedSizeScaled: true, NeedExpected: true}

// IsValidNeedPolicy returns true if the given policy name is recognized.
func IsValidNeedPolicy(name string) bool {
	return validNeedPolicies[name]
}

// SizeScaledNeeds is the record-keeper policy: ceilings over the true size,
// medical kits escalating with the vulnerable-member count, school supplies
// per school-age child.
type SizeScaledNeeds struct {
	Config NeedConfig
}

func (n *SizeScaledNeeds) Quantity(kind ResourceKind, p Profile) int64 {
	switch kind {
	case KindFood:
		return int64((p.TrueSize + 2) / 3) // ceil(size/3)
	case KindHygiene:
		return int64((p.TrueSize + 3) / 4) // ceil(size/4)
	case KindMedical:
		vulnerable := p.YoungChildren + p.Elderly
		if vulnerable >= n.Config.MedicalEscalation {
			return 2
		}
		if vulnerable >= 1 {
			return 1
		}
		return 0
	case KindSchool:
		return int64(p.SchoolAge)
	default:
		return 0
	}
}

// ExpectedNeeds is the simulator policy: rounded fractions of the expected
// size with a minimum of one, presence-gated medical, and a shelter kit gated
// on the expected vulnerability score.
type ExpectedNeeds struct {
	Config NeedConfig
}

func (n *ExpectedNeeds) Quantity(kind ResourceKind, p Profile) int64 {
	switch kind {
	case KindFood:
		return maxInt64(1, int64(math.Round(p.ExpectedSize/3)))
	case KindHygiene:
		return maxInt64(1, int64(math.Round(p.ExpectedSize/4)))
	case KindMedical:
		if p.Elderly > 0 || p.Children > 0 {
			return 1
		}
		return 0
	case KindShelter:
		if p.ExpectedVulnerability >= n.Config.ShelterThreshold {
			return 1
		}
		return 0
	default:
		return 0
	}
}

// NewNeedPolicy creates a NeedPolicy by name.
// Empty string defaults to size-scaled. Panics on unrecognized names.
func NewNeedPolicy(name string, cfg NeedConfig) NeedPolicy {
	if !IsValidNeedPolicy(name) {
		panic(fmt.Sprintf("unknown need policy %q", name))
	}
	switch name {
	case "", NeedSizeScaled:
		return &SizeScaledNeeds{Config: cfg}
	case NeedExpected:
		return &ExpectedNeeds{Config: cfg}
	default:
		panic(fmt.Sprintf("unhandled need policy %q", name))
	}
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
