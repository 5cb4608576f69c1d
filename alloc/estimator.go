package alloc

import (
	"fmt"
)

// Estimator turns a household's raw attributes into the derived Profile the
// allocator needs. Implementations MUST NOT mutate the household; RunPass
// owns the assignment of the returned profile.
type Estimator interface {
	Estimate(h *Household) (Profile, error)
}

// StrategyExact and StrategyBayes name the two estimator strategies.
const (
	StrategyExact = "exact"
	StrategyBayes = "bayes"
)

// validStrategies maps accepted strategy names. Empty defaults to exact.
var validStrategies = map[string]bool{"": true, StrategyExact: true, StrategyBayes: true}

// IsValidStrategy returns true if the given strategy name is recognized.
func IsValidStrategy(name string) bool {
	return validStrategies[name]
}

// countBands tallies age-band counts over a true age list.
func countBands(ages []int, cutoffs AgeCutoffs) (young, children, schoolAge, elderly int) {
	for _, age := range ages {
		if age < cutoffs.YoungChild {
			young++
		}
		if age < cutoffs.Adult {
			children++
		}
		if age >= cutoffs.SchoolAge && age < cutoffs.Adult {
			schoolAge++
		}
		if age > cutoffs.Elderly {
			elderly++
		}
	}
	return young, children, schoolAge, elderly
}

// ExactEstimator derives the profile directly from a known age list.
// Expected size equals the true size; no vulnerability score is computed.
type ExactEstimator struct {
	Cutoffs AgeCutoffs
}

func (e *ExactEstimator) Estimate(h *Household) (Profile, error) {
	if len(h.Ages) == 0 {
		return Profile{}, fmt.Errorf("household %d: exact estimation requires a non-empty age list", h.ID)
	}
	young, children, schoolAge, elderly := countBands(h.Ages, e.Cutoffs)
	return Profile{
		TrueSize:      len(h.Ages),
		ExpectedSize:  float64(len(h.Ages)),
		YoungChildren: young,
		Children:      children,
		SchoolAge:     schoolAge,
		Elderly:       elderly,
	}, nil
}

// BayesEstimator infers expected size and vulnerability from noisy
// self-reports via discrete Bayes' rule. Ground-truth counts (children,
// elderly) still come from the true age list when one is present, matching
// the simulator these figures are evaluated against.
type BayesEstimator struct {
	Cutoffs AgeCutoffs
	Config  BayesConfig
}

func (e *BayesEstimator) Estimate(h *Household) (Profile, error) {
	if h.ReportedSize <= 0 {
		return Profile{}, fmt.Errorf("household %d: bayes estimation requires a reported size", h.ID)
	}
	expectedSize, err := e.Config.ExpectedSize(h.ReportedSize)
	if err != nil {
		return Profile{}, fmt.Errorf("household %d: %w", h.ID, err)
	}
	expectedVuln, err := e.Config.ExpectedVulnerability(h.ReportedVulnerability)
	if err != nil {
		return Profile{}, fmt.Errorf("household %d: %w", h.ID, err)
	}
	young, children, schoolAge, elderly := countBands(h.Ages, e.Cutoffs)
	return Profile{
		TrueSize:              len(h.Ages),
		ExpectedSize:          expectedSize,
		YoungChildren:         young,
		Children:              children,
		SchoolAge:             schoolAge,
		Elderly:               elderly,
		ExpectedVulnerability: expectedVuln,
	}, nil
}

// NewEstimator creates an Estimator by strategy name.
// Empty string defaults to the exact strategy. Panics on unrecognized names;
// user-supplied names must be validated with IsValidStrategy first.
func NewEstimator(name string, cutoffs AgeCutoffs, bayes BayesConfig) Estimator {
	if !IsValidStrategy(name) {
		panic(fmt.Sprintf("unknown estimator strategy %q", name))
	}
	switch name {
	case "", StrategyExact:
		return &ExactEstimator{Cutoffs: cutoffs}
	case StrategyBayes:
		return &BayesEstimator{Cutoffs: cutoffs, Config: bayes}
	default:
		panic(fmt.Sprintf("unhandled estimator strategy %q", name))
	}
}

// EstimateProfile runs attribute estimation and priority scoring for one
// household without running a full pass. Usable standalone for display; the
// household's Profile field is updated in place.
func EstimateProfile(h *Household, estimator Estimator, scorer Scorer) (Profile, error) {
	profile, err := estimator.Estimate(h)
	if err != nil {
		return Profile{}, err
	}
	profile.Priority = scorer.Score(profile)
	h.Profile = &profile
	return profile, nil
}
