// Defines the Household struct that models a single family unit in an allocation pass.
// Tracks identity, raw attributes (true ages or noisy self-reports), and the derived
// profile computed by an Estimator at the start of a pass.

package alloc

import (
	"fmt"
)

// Vulnerability is an ordered self-reported vulnerability category.
type Vulnerability string

const (
	VulnerabilityLow    Vulnerability = "low"
	VulnerabilityMedium Vulnerability = "medium"
	VulnerabilityHigh   Vulnerability = "high"
)

// Vulnerabilities lists the categories in ascending order of severity.
// Confusion matrices and priors are indexed in this order.
var Vulnerabilities = []Vulnerability{VulnerabilityLow, VulnerabilityMedium, VulnerabilityHigh}

// IsValidVulnerability returns true if the given category is recognized.
func IsValidVulnerability(v Vulnerability) bool {
	for _, known := range Vulnerabilities {
		if v == known {
			return true
		}
	}
	return false
}

// Household is the unit of allocation. Depending on the estimator strategy, a
// household is either fully known (true age list) or partially observed
// (reported size and vulnerability category, with the age list kept only as
// ground truth for evaluation).
type Household struct {
	ID   int    // insertion order, unique, never reused within a session
	Name string // household head (record-keeper caller; empty for synthetic households)

	Ages []int // true member ages; authoritative in exact mode, ground truth in bayes mode

	ReportedSize          int           // noisy self-reported size (bayes mode; 0 = not reported)
	ReportedVulnerability Vulnerability // noisy self-reported category (bayes mode; "" = not reported)

	// Profile holds the derived fields for the current pass. Set by RunPass
	// (or EstimateProfile for standalone display); nil before the first pass.
	// Once set it is not mutated until the next pass recomputes it.
	Profile *Profile
}

// Profile holds the derived fields an allocation pass needs: exact or
// expected composition counts plus the final priority score.
type Profile struct {
	TrueSize      int     // len(Ages); 0 when ages are unknown
	ExpectedSize  float64 // posterior expectation in bayes mode; float(TrueSize) in exact mode
	YoungChildren int     // members below the young-child cutoff
	Children      int     // all members below the adult cutoff
	SchoolAge     int     // members in [school cutoff, adult cutoff)
	Elderly       int     // members above the elderly cutoff

	// ExpectedVulnerability is the posterior-expected ordinal vulnerability
	// score (bayes mode only; 0 in exact mode).
	ExpectedVulnerability float64

	Priority float64 // final scalar priority; higher is processed earlier
}

// NewHousehold validates and constructs a fully-known household (exact mode).
// The declared member count must match the age list; this is an ingestion
// error, never an allocator concern.
func NewHousehold(id int, name string, members int, ages []int) (*Household, error) {
	if members <= 0 {
		return nil, fmt.Errorf("household %d: members must be positive, got %d", id, members)
	}
	if len(ages) != members {
		return nil, fmt.Errorf("household %d: %d ages given for %d declared members", id, len(ages), members)
	}
	for _, age := range ages {
		if age < 0 {
			return nil, fmt.Errorf("household %d: negative age %d", id, age)
		}
	}
	return &Household{ID: id, Name: name, Ages: ages}, nil
}

// NewReportedHousehold constructs a partially-observed household (bayes mode).
// Ages may be nil when no ground truth exists. Report bounds are not checked
// here: the Bayesian estimator applies its configured out-of-range policy.
func NewReportedHousehold(id int, ages []int, reportedSize int, reported Vulnerability) (*Household, error) {
	if reportedSize <= 0 {
		return nil, fmt.Errorf("household %d: reported size must be positive, got %d", id, reportedSize)
	}
	if !IsValidVulnerability(reported) {
		return nil, fmt.Errorf("household %d: unknown vulnerability category %q", id, reported)
	}
	for _, age := range ages {
		if age < 0 {
			return nil, fmt.Errorf("household %d: negative age %d", id, age)
		}
	}
	return &Household{ID: id, Ages: ages, ReportedSize: reportedSize, ReportedVulnerability: reported}, nil
}

// Size returns the best known member count: the true size when ages are
// known, otherwise the reported size.
func (h *Household) Size() int {
	if len(h.Ages) > 0 {
		return len(h.Ages)
	}
	return h.ReportedSize
}

func (h *Household) String() string {
	if h.Profile != nil {
		return fmt.Sprintf("Household(%d, size=%d, priority=%.1f)", h.ID, h.Size(), h.Profile.Priority)
	}
	return fmt.Sprintf("Household(%d, size=%d)", h.ID, h.Size())
}
