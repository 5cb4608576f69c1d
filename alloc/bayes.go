// Discrete-Bayes attribute estimation: posterior expectations over household
// size and vulnerability given noisy self-reports, a prior, and a likelihood
// (reporting-noise) model. Both estimations are independent of each other and
// of every other household; there is no population-level learning in a pass.

package alloc

import (
	"fmt"
	"sort"
)

// ReportPolicy declares how the Bayesian estimator treats a reported value
// outside the configured candidate set.
type ReportPolicy string

const (
	// ReportClamp snaps an out-of-range report to the nearest candidate.
	ReportClamp ReportPolicy = "clamp"
	// ReportReject fails the estimation before a pass starts.
	ReportReject ReportPolicy = "reject"
)

// validReportPolicies maps accepted report policy strings.
// Empty defaults to clamp.
var validReportPolicies = map[ReportPolicy]bool{ReportClamp: true, ReportReject: true, "": true}

// IsValidReportPolicy returns true if the given policy string is recognized.
func IsValidReportPolicy(p ReportPolicy) bool {
	return validReportPolicies[p]
}

// SizeLikelihood models the probability of reporting size R given true size T
// as a function of the absolute distance |T - R|, decaying with distance.
type SizeLikelihood struct {
	Exact float64 `yaml:"exact"` // |T-R| == 0
	Near  float64 `yaml:"near"`  // |T-R| == 1
	Far   float64 `yaml:"far"`   // |T-R| == 2
	Floor float64 `yaml:"floor"` // |T-R| > 2
}

// Prob returns P(reported | true) under the distance-decay model.
func (l SizeLikelihood) Prob(trueSize, reported int) float64 {
	diff := trueSize - reported
	if diff < 0 {
		diff = -diff
	}
	switch diff {
	case 0:
		return l.Exact
	case 1:
		return l.Near
	case 2:
		return l.Far
	default:
		return l.Floor
	}
}

// Validate rejects likelihood tables with negative entries or an all-zero body.
func (l SizeLikelihood) Validate() error {
	if l.Exact < 0 || l.Near < 0 || l.Far < 0 || l.Floor < 0 {
		return fmt.Errorf("size likelihood entries must be non-negative: %+v", l)
	}
	if l.Exact+l.Near+l.Far+l.Floor <= 0 {
		return fmt.Errorf("size likelihood must have a positive total: %+v", l)
	}
	return nil
}

// BayesConfig groups the priors, likelihoods, and report handling used by the
// Bayesian estimator. Constructed once at pass start and threaded through
// every call, never read from ambient state.
type BayesConfig struct {
	SizePrior      map[int]float64 `yaml:"size_prior"`
	SizeLikelihood SizeLikelihood  `yaml:"size_likelihood"`

	VulnerabilityPrior map[Vulnerability]float64 `yaml:"vulnerability_prior"`
	// Confusion is P(reported | true): outer key is the true category, inner
	// key the reported one. Every row must cover all categories.
	Confusion            map[Vulnerability]map[Vulnerability]float64 `yaml:"confusion"`
	VulnerabilityWeights map[Vulnerability]float64                   `yaml:"vulnerability_weights"`

	OutOfRange ReportPolicy `yaml:"out_of_range"` // clamp (default) or reject
}

// DefaultBayesConfig returns the simulator's priors and noise models.
func DefaultBayesConfig() BayesConfig {
	return BayesConfig{
		SizePrior:      map[int]float64{2: 0.113, 3: 0.169, 4: 0.452, 5: 0.226, 6: 0.03, 7: 0.01},
		SizeLikelihood: SizeLikelihood{Exact: 0.7, Near: 0.2, Far: 0.1, Floor: 0.01},
		VulnerabilityPrior: map[Vulnerability]float64{
			VulnerabilityLow: 0.3, VulnerabilityMedium: 0.4, VulnerabilityHigh: 0.3,
		},
		Confusion: map[Vulnerability]map[Vulnerability]float64{
			VulnerabilityLow:    {VulnerabilityLow: 0.8, VulnerabilityMedium: 0.15, VulnerabilityHigh: 0.05},
			VulnerabilityMedium: {VulnerabilityLow: 0.1, VulnerabilityMedium: 0.8, VulnerabilityHigh: 0.1},
			VulnerabilityHigh:   {VulnerabilityLow: 0.05, VulnerabilityMedium: 0.15, VulnerabilityHigh: 0.8},
		},
		VulnerabilityWeights: map[Vulnerability]float64{
			VulnerabilityLow: 1, VulnerabilityMedium: 2, VulnerabilityHigh: 3,
		},
		OutOfRange: ReportClamp,
	}
}

// SizeCandidates returns the prior's candidate sizes in ascending order.
// Sorted iteration keeps posterior computation deterministic.
func (c BayesConfig) SizeCandidates() []int {
	sizes := make([]int, 0, len(c.SizePrior))
	for s := range c.SizePrior {
		sizes = append(sizes, s)
	}
	sort.Ints(sizes)
	return sizes
}

// Validate fails fast on malformed priors or likelihoods, before any pass.
func (c BayesConfig) Validate() error {
	if len(c.SizePrior) == 0 {
		return fmt.Errorf("size prior must not be empty")
	}
	total := 0.0
	for s, p := range c.SizePrior {
		if s <= 0 {
			return fmt.Errorf("size prior candidate %d must be positive", s)
		}
		if p < 0 {
			return fmt.Errorf("size prior P(%d) = %f must be non-negative", s, p)
		}
		total += p
	}
	if total <= 0 {
		return fmt.Errorf("size prior must have a positive total, got %f", total)
	}
	if err := c.SizeLikelihood.Validate(); err != nil {
		return err
	}

	if len(c.VulnerabilityPrior) == 0 {
		return fmt.Errorf("vulnerability prior must not be empty")
	}
	total = 0.0
	for _, v := range Vulnerabilities {
		p, ok := c.VulnerabilityPrior[v]
		if !ok {
			return fmt.Errorf("vulnerability prior missing category %q", v)
		}
		if p < 0 {
			return fmt.Errorf("vulnerability prior P(%s) = %f must be non-negative", v, p)
		}
		total += p
	}
	if total <= 0 {
		return fmt.Errorf("vulnerability prior must have a positive total, got %f", total)
	}
	for _, trueCat := range Vulnerabilities {
		row, ok := c.Confusion[trueCat]
		if !ok {
			return fmt.Errorf("confusion matrix missing row for %q", trueCat)
		}
		rowTotal := 0.0
		for _, reported := range Vulnerabilities {
			p, ok := row[reported]
			if !ok {
				return fmt.Errorf("confusion row %q missing column %q", trueCat, reported)
			}
			if p < 0 {
				return fmt.Errorf("confusion P(%s|%s) = %f must be non-negative", reported, trueCat, p)
			}
			rowTotal += p
		}
		if rowTotal <= 0 {
			return fmt.Errorf("confusion row %q must have a positive total", trueCat)
		}
	}
	for _, v := range Vulnerabilities {
		if _, ok := c.VulnerabilityWeights[v]; !ok {
			return fmt.Errorf("vulnerability weights missing category %q", v)
		}
	}
	if !IsValidReportPolicy(c.OutOfRange) {
		return fmt.Errorf("unknown out-of-range report policy %q", c.OutOfRange)
	}
	return nil
}

// resolveReportedSize applies the configured out-of-range policy to a
// reported size, returning the candidate to feed the likelihood model.
func (c BayesConfig) resolveReportedSize(reported int) (int, error) {
	if _, ok := c.SizePrior[reported]; ok {
		return reported, nil
	}
	if c.OutOfRange == ReportReject {
		return 0, fmt.Errorf("reported size %d outside candidate set %v", reported, c.SizeCandidates())
	}
	// Clamp to the nearest candidate; ties resolve to the smaller size.
	candidates := c.SizeCandidates()
	nearest := candidates[0]
	for _, s := range candidates[1:] {
		if abs(s-reported) < abs(nearest-reported) {
			nearest = s
		}
	}
	return nearest, nil
}

// ExpectedSize computes the posterior expectation of the true household size
// given a reported size: prior × likelihood per candidate, normalized, then
// probability-weighted sum. The result always lies within the candidate-value
// bounds (no extrapolation).
func (c BayesConfig) ExpectedSize(reported int) (float64, error) {
	reported, err := c.resolveReportedSize(reported)
	if err != nil {
		return 0, err
	}
	candidates := c.SizeCandidates()
	posterior := make([]float64, len(candidates))
	total := 0.0
	for i, trueSize := range candidates {
		posterior[i] = c.SizePrior[trueSize] * c.SizeLikelihood.Prob(trueSize, reported)
		total += posterior[i]
	}
	if total <= 0 {
		return 0, fmt.Errorf("degenerate size posterior for reported size %d", reported)
	}
	expected := 0.0
	for i, trueSize := range candidates {
		expected += float64(trueSize) * posterior[i] / total
	}
	return expected, nil
}

// ExpectedVulnerability computes the posterior-expected ordinal vulnerability
// score given a reported category, using the confusion matrix column for that
// report and the category weights.
func (c BayesConfig) ExpectedVulnerability(reported Vulnerability) (float64, error) {
	if !IsValidVulnerability(reported) {
		return 0, fmt.Errorf("unknown vulnerability category %q", reported)
	}
	posterior := make(map[Vulnerability]float64, len(Vulnerabilities))
	total := 0.0
	for _, trueCat := range Vulnerabilities {
		posterior[trueCat] = c.VulnerabilityPrior[trueCat] * c.Confusion[trueCat][reported]
		total += posterior[trueCat]
	}
	if total <= 0 {
		return 0, fmt.Errorf("degenerate vulnerability posterior for report %q", reported)
	}
	expected := 0.0
	for _, trueCat := range Vulnerabilities {
		expected += c.VulnerabilityWeights[trueCat] * posterior[trueCat] / total
	}
	return expected, nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
