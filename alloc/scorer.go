package alloc

import (
	"fmt"
)

// Scorer maps a derived profile to a non-negative scalar priority.
// Higher scores are processed earlier. Implementations are pure functions of
// the profile and their fixed weights, with no pass-dependent state.
type Scorer interface {
	Score(p Profile) float64
}

// ExactScorer is the record-keeper's priority formula. It sees individual
// age bands, so early childhood earns a larger bonus than the adult band.
type ExactScorer struct {
	Weights ExactWeights
}

func (s *ExactScorer) Score(p Profile) float64 {
	otherMinors := p.Children - p.YoungChildren
	return float64(p.TrueSize)*s.Weights.Size +
		float64(p.YoungChildren)*s.Weights.YoungChild +
		float64(otherMinors)*s.Weights.OtherMinor +
		float64(p.Elderly)*s.Weights.Elderly
}

// BayesScorer is the simulator's priority formula over expected size,
// ground-truth child/elderly counts, and the expected vulnerability score.
type BayesScorer struct {
	Weights BayesWeights
}

func (s *BayesScorer) Score(p Profile) float64 {
	return p.ExpectedSize*s.Weights.ExpectedSize +
		float64(p.Children)*s.Weights.Child +
		float64(p.Elderly)*s.Weights.Elderly +
		p.ExpectedVulnerability*s.Weights.Vulnerability
}

// NewScorer creates a Scorer by strategy name, paired with the estimator of
// the same strategy. Empty string defaults to exact. Panics on unrecognized
// names.
func NewScorer(name string, exact ExactWeights, bayes BayesWeights) Scorer {
	if !IsValidStrategy(name) {
		panic(fmt.Sprintf("unknown scorer strategy %q", name))
	}
	switch name {
	case "", StrategyExact:
		return &ExactScorer{Weights: exact}
	case StrategyBayes:
		return &BayesScorer{Weights: bayes}
	default:
		panic(fmt.Sprintf("unhandled scorer strategy %q", name))
	}
}
