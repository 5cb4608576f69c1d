package alloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExactEstimator_BandCounts(t *testing.T) {
	// Ages 3 and 4 are young children, 10 and 16 are other minors (both
	// school-age), 35 is an adult, 70 is elderly.
	h, err := NewHousehold(1, "Imani", 6, []int{3, 4, 10, 16, 35, 70})
	require.NoError(t, err)

	e := &ExactEstimator{Cutoffs: DefaultAgeCutoffs()}
	p, err := e.Estimate(h)
	require.NoError(t, err)

	assert.Equal(t, 6, p.TrueSize)
	assert.Equal(t, 2, p.YoungChildren)
	assert.Equal(t, 4, p.Children, "children counts every member under the adult cutoff")
	assert.Equal(t, 2, p.SchoolAge)
	assert.Equal(t, 1, p.Elderly)
	assert.Equal(t, 6.0, p.ExpectedSize, "exact mode carries the true size as the expectation")
}

func TestExactEstimator_BoundaryAges(t *testing.T) {
	// Cutoffs are exclusive on the young side: age 5 is school-age, not a
	// young child; age 18 is an adult; age 60 is not yet elderly.
	h, err := NewHousehold(2, "Rivera", 3, []int{5, 18, 60})
	require.NoError(t, err)

	e := &ExactEstimator{Cutoffs: DefaultAgeCutoffs()}
	p, err := e.Estimate(h)
	require.NoError(t, err)

	assert.Equal(t, 0, p.YoungChildren)
	assert.Equal(t, 1, p.Children)
	assert.Equal(t, 1, p.SchoolAge)
	assert.Equal(t, 0, p.Elderly)
}

func TestExactEstimator_EmptyAges(t *testing.T) {
	e := &ExactEstimator{Cutoffs: DefaultAgeCutoffs()}
	_, err := e.Estimate(&Household{ID: 3})
	assert.Error(t, err)
}

func TestBayesEstimator_UsesReports(t *testing.T) {
	h, err := NewReportedHousehold(4, nil, 5, VulnerabilityHigh)
	require.NoError(t, err)

	e := &BayesEstimator{Cutoffs: DefaultAgeCutoffs(), Config: DefaultBayesConfig()}
	p, err := e.Estimate(h)
	require.NoError(t, err)

	assert.Greater(t, p.ExpectedSize, 0.0)
	assert.Greater(t, p.ExpectedVulnerability, 1.0)
	assert.Less(t, p.ExpectedVulnerability, 3.0)
	assert.Zero(t, p.Children, "no ground truth means no band counts")
	assert.Zero(t, p.Elderly)
}

func TestBayesEstimator_GroundTruthBands(t *testing.T) {
	// When true ages exist alongside the reports the estimator keeps the
	// posterior size but counts the demographic bands from the truth.
	h, err := NewReportedHousehold(5, []int{8, 14, 40, 72}, 3, VulnerabilityMedium)
	require.NoError(t, err)

	e := &BayesEstimator{Cutoffs: DefaultAgeCutoffs(), Config: DefaultBayesConfig()}
	p, err := e.Estimate(h)
	require.NoError(t, err)

	assert.Equal(t, 4, p.TrueSize)
	assert.Equal(t, 2, p.Children)
	assert.Equal(t, 1, p.Elderly)
	assert.NotEqual(t, 4.0, p.ExpectedSize, "expected size comes from the report, not the truth")
}

func TestBayesEstimator_MissingReport(t *testing.T) {
	e := &BayesEstimator{Cutoffs: DefaultAgeCutoffs(), Config: DefaultBayesConfig()}
	_, err := e.Estimate(&Household{ID: 6, Ages: []int{30, 31}})
	assert.Error(t, err)
}

func TestNewEstimator_Factory(t *testing.T) {
	cutoffs := DefaultAgeCutoffs()
	bayes := DefaultBayesConfig()

	if _, ok := NewEstimator(StrategyExact, cutoffs, bayes).(*ExactEstimator); !ok {
		t.Error("exact strategy should build an ExactEstimator")
	}
	if _, ok := NewEstimator(StrategyBayes, cutoffs, bayes).(*BayesEstimator); !ok {
		t.Error("bayes strategy should build a BayesEstimator")
	}
	if _, ok := NewEstimator("", cutoffs, bayes).(*ExactEstimator); !ok {
		t.Error("empty strategy should default to exact")
	}

	assert.Panics(t, func() { NewEstimator("oracle", cutoffs, bayes) })
}

func TestEstimateProfile_SetsPriority(t *testing.T) {
	h, err := NewHousehold(7, "Okafor", 2, []int{34, 70})
	require.NoError(t, err)

	estimator := NewEstimator(StrategyExact, DefaultAgeCutoffs(), DefaultBayesConfig())
	scorer := NewScorer(StrategyExact, DefaultExactWeights(), DefaultBayesWeights())

	p, err := EstimateProfile(h, estimator, scorer)
	require.NoError(t, err)

	assert.Equal(t, 45.0, p.Priority) // 2*10 + 1 elderly * 25
	require.NotNil(t, h.Profile)
	assert.Equal(t, p, *h.Profile)
}
