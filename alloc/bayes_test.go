package alloc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpectedSize_ReportedFourStaysNearFour(t *testing.T) {
	// Prior concentrated around 4 and a 0.7 zero-distance likelihood weight:
	// the posterior expectation lands near 4 without being an integer.
	cfg := DefaultBayesConfig()

	got, err := cfg.ExpectedSize(4)
	require.NoError(t, err)

	assert.InDelta(t, 4.0, got, 0.2)
	assert.NotEqual(t, got, math.Trunc(got), "posterior expectation should be fractional")
}

func TestExpectedSize_WithinCandidateBounds(t *testing.T) {
	// No extrapolation: for every reported size in the candidate set, the
	// expectation stays within [min candidate, max candidate].
	cfg := DefaultBayesConfig()
	candidates := cfg.SizeCandidates()
	lo, hi := float64(candidates[0]), float64(candidates[len(candidates)-1])

	for _, reported := range candidates {
		got, err := cfg.ExpectedSize(reported)
		require.NoError(t, err)
		if got < lo || got > hi {
			t.Errorf("ExpectedSize(%d) = %f outside candidate bounds [%f, %f]", reported, got, lo, hi)
		}
	}
}

func TestExpectedSize_PosteriorNormalized(t *testing.T) {
	// A uniform prior with a symmetric likelihood centered on the report
	// must give back the reported value exactly.
	cfg := DefaultBayesConfig()
	cfg.SizePrior = map[int]float64{3: 0.25, 4: 0.25, 5: 0.25, 6: 0.25}

	// Report in the middle: neighbors 3 and 5 (and tails) cancel around 4...
	got, err := cfg.ExpectedSize(4)
	require.NoError(t, err)
	// ...except the asymmetric tail (6 at distance 2 vs 2 absent), so the
	// expectation sits slightly above 4 but stays close.
	assert.InDelta(t, 4.0, got, 0.2)
}

func TestExpectedSize_OutOfRangeClampsToNearest(t *testing.T) {
	cfg := DefaultBayesConfig() // candidates 2..7, clamp policy

	low, err := cfg.ExpectedSize(1)
	require.NoError(t, err)
	atMin, err := cfg.ExpectedSize(2)
	require.NoError(t, err)
	assert.Equal(t, atMin, low, "report below range should clamp to the smallest candidate")

	high, err := cfg.ExpectedSize(12)
	require.NoError(t, err)
	atMax, err := cfg.ExpectedSize(7)
	require.NoError(t, err)
	assert.Equal(t, atMax, high, "report above range should clamp to the largest candidate")
}

func TestExpectedSize_OutOfRangeRejectPolicy(t *testing.T) {
	cfg := DefaultBayesConfig()
	cfg.OutOfRange = ReportReject

	_, err := cfg.ExpectedSize(1)
	assert.Error(t, err)

	_, err = cfg.ExpectedSize(4)
	assert.NoError(t, err, "in-range report must not be rejected")
}

func TestExpectedVulnerability_HighReportScoresAboveLow(t *testing.T) {
	cfg := DefaultBayesConfig()

	low, err := cfg.ExpectedVulnerability(VulnerabilityLow)
	require.NoError(t, err)
	med, err := cfg.ExpectedVulnerability(VulnerabilityMedium)
	require.NoError(t, err)
	high, err := cfg.ExpectedVulnerability(VulnerabilityHigh)
	require.NoError(t, err)

	if !(low < med && med < high) {
		t.Errorf("expected ordering low < medium < high, got %f, %f, %f", low, med, high)
	}
	// Scores are posterior-weighted blends of the 1/2/3 ordinal weights.
	assert.Greater(t, low, 1.0)
	assert.Less(t, high, 3.0)
}

func TestExpectedVulnerability_UnknownCategory(t *testing.T) {
	cfg := DefaultBayesConfig()
	_, err := cfg.ExpectedVulnerability("critical")
	assert.Error(t, err)
}

func TestBayesConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*BayesConfig)
		wantErr bool
	}{
		{"defaults", func(c *BayesConfig) {}, false},
		{"empty size prior", func(c *BayesConfig) { c.SizePrior = nil }, true},
		{"negative size prior", func(c *BayesConfig) { c.SizePrior[3] = -0.1 }, true},
		{"zero-total size prior", func(c *BayesConfig) {
			c.SizePrior = map[int]float64{3: 0, 4: 0}
		}, true},
		{"negative likelihood", func(c *BayesConfig) { c.SizeLikelihood.Near = -0.2 }, true},
		{"missing prior category", func(c *BayesConfig) {
			delete(c.VulnerabilityPrior, VulnerabilityMedium)
		}, true},
		{"missing confusion row", func(c *BayesConfig) {
			delete(c.Confusion, VulnerabilityHigh)
		}, true},
		{"missing confusion column", func(c *BayesConfig) {
			delete(c.Confusion[VulnerabilityLow], VulnerabilityHigh)
		}, true},
		{"missing weight", func(c *BayesConfig) {
			delete(c.VulnerabilityWeights, VulnerabilityLow)
		}, true},
		{"unknown report policy", func(c *BayesConfig) { c.OutOfRange = "truncate" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultBayesConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSizeLikelihood_DistanceDecay(t *testing.T) {
	l := SizeLikelihood{Exact: 0.7, Near: 0.2, Far: 0.1, Floor: 0.01}

	if got := l.Prob(4, 4); got != 0.7 {
		t.Errorf("Prob at distance 0: got %f, want 0.7", got)
	}
	if got := l.Prob(4, 5); got != 0.2 {
		t.Errorf("Prob at distance 1: got %f, want 0.2", got)
	}
	if got := l.Prob(6, 4); got != 0.1 {
		t.Errorf("Prob at distance 2: got %f, want 0.1", got)
	}
	if got := l.Prob(7, 2); got != 0.01 {
		t.Errorf("Prob at distance 5: got %f, want 0.01", got)
	}
	// Symmetric in the distance.
	if l.Prob(3, 5) != l.Prob(5, 3) {
		t.Error("likelihood should be symmetric in |T - R|")
	}
}
