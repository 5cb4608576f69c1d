// Synthetic household generation for the stochastic caller: true attributes
// sampled from the configured priors, self-reports derived from the truth via
// a reporting-noise model. External collaborators that ingest real household
// records bypass this entirely.

package alloc

import (
	"fmt"
	"math/rand"
)

// PopulationConfig groups synthetic population parameters.
type PopulationConfig struct {
	// MaxAge bounds sampled member ages to [1, MaxAge).
	MaxAge int `yaml:"max_age"`
	// SizeNoiseDown/Same/Up are the probabilities that a household misreports
	// its size by -1, 0, or +1 members. Must sum to a positive total.
	SizeNoiseDown float64 `yaml:"size_noise_down"`
	SizeNoiseSame float64 `yaml:"size_noise_same"`
	SizeNoiseUp   float64 `yaml:"size_noise_up"`
}

// DefaultPopulationConfig returns the simulator's generation parameters.
func DefaultPopulationConfig() PopulationConfig {
	return PopulationConfig{MaxAge: 90, SizeNoiseDown: 0.2, SizeNoiseSame: 0.6, SizeNoiseUp: 0.2}
}

// Validate fails fast on degenerate generation parameters.
func (c PopulationConfig) Validate() error {
	if c.MaxAge <= 1 {
		return fmt.Errorf("max age must exceed 1, got %d", c.MaxAge)
	}
	if c.SizeNoiseDown < 0 || c.SizeNoiseSame < 0 || c.SizeNoiseUp < 0 {
		return fmt.Errorf("size noise probabilities must be non-negative: %+v", c)
	}
	if c.SizeNoiseDown+c.SizeNoiseSame+c.SizeNoiseUp <= 0 {
		return fmt.Errorf("size noise probabilities must have a positive total: %+v", c)
	}
	return nil
}

// GeneratePopulation samples n households: true size from the size prior,
// member ages uniform in [1, MaxAge), a reported size perturbed by the noise
// model and clamped to the prior's candidate bounds, and a reported
// vulnerability drawn from its prior. IDs are assigned 1..n in generation
// order. The same RNG key and configuration produce an identical population.
func GeneratePopulation(n int, bayes BayesConfig, popCfg PopulationConfig, rng *PartitionedRNG) ([]*Household, error) {
	if n <= 0 {
		return nil, fmt.Errorf("population size must be positive, got %d", n)
	}
	if err := bayes.Validate(); err != nil {
		return nil, fmt.Errorf("invalid bayes config: %w", err)
	}
	if err := popCfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid population config: %w", err)
	}

	popRNG := rng.ForSubsystem(SubsystemPopulation)
	reportRNG := rng.ForSubsystem(SubsystemReports)

	candidates := bayes.SizeCandidates()
	sizeProbs := make([]float64, len(candidates))
	for i, s := range candidates {
		sizeProbs[i] = bayes.SizePrior[s]
	}
	vulnProbs := make([]float64, len(Vulnerabilities))
	for i, v := range Vulnerabilities {
		vulnProbs[i] = bayes.VulnerabilityPrior[v]
	}
	minSize, maxSize := candidates[0], candidates[len(candidates)-1]

	households := make([]*Household, 0, n)
	for i := 0; i < n; i++ {
		trueSize := candidates[sampleIndex(popRNG, sizeProbs)]

		ages := make([]int, trueSize)
		for j := range ages {
			ages[j] = 1 + popRNG.Intn(popCfg.MaxAge-1)
		}

		noise := sampleIndex(reportRNG, []float64{popCfg.SizeNoiseDown, popCfg.SizeNoiseSame, popCfg.SizeNoiseUp}) - 1
		reportedSize := clampInt(trueSize+noise, minSize, maxSize)

		reportedVuln := Vulnerabilities[sampleIndex(reportRNG, vulnProbs)]

		h, err := NewReportedHousehold(i+1, ages, reportedSize, reportedVuln)
		if err != nil {
			return nil, err
		}
		households = append(households, h)
	}
	return households, nil
}

// sampleIndex draws an index from a discrete distribution given by weights.
// Weights need not sum to one; they are normalized implicitly.
func sampleIndex(rng *rand.Rand, weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	r := rng.Float64() * total
	acc := 0.0
	for i, w := range weights {
		acc += w
		if r < acc {
			return i
		}
	}
	return len(weights) - 1
}

func clampInt(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
