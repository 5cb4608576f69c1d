package alloc

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario holds the complete configuration of one allocation pass, loadable
// from a YAML file. Everything the core consumes is overridable here: the
// catalogue, the budget, age cutoffs, priority weights, priors and noise
// models, and the policy selections. Nothing is read from ambient state.
type Scenario struct {
	Budget    int64          `yaml:"budget"`
	Catalogue []ResourceType `yaml:"catalogue"` // slice order is the allocator's scan order

	Strategy          string `yaml:"strategy"`            // "exact" (default) or "bayes"
	NeedPolicy        string `yaml:"need_policy"`         // "size-scaled" (default) or "expected"
	OrderPolicy       string `yaml:"order_policy"`        // "priority-id" (default) or "priority-only"
	StopWhenExhausted bool   `yaml:"stop_when_exhausted"` // terminate the pass at zero budget

	Cutoffs      AgeCutoffs       `yaml:"age_cutoffs"`
	ExactWeights ExactWeights     `yaml:"exact_weights"`
	BayesWeights BayesWeights     `yaml:"bayes_weights"`
	Bayes        BayesConfig      `yaml:"bayes"`
	Need         NeedConfig       `yaml:"need"`
	Population   PopulationConfig `yaml:"population"`
}

// DefaultRegistryScenario is the record-keeper configuration: exact strategy
// over the four-resource community catalogue, every household evaluated even
// after the budget empties.
func DefaultRegistryScenario() *Scenario {
	return &Scenario{
		Budget: 150000,
		Catalogue: []ResourceType{
			{Name: "Food Pack", Kind: KindFood, Cost: 500, Available: 100},
			{Name: "Hygiene Kit", Kind: KindHygiene, Cost: 300, Available: 80},
			{Name: "Medical Kit", Kind: KindMedical, Cost: 400, Available: 50},
			{Name: "School Supplies", Kind: KindSchool, Cost: 250, Available: 70},
		},
		Strategy:     StrategyExact,
		NeedPolicy:   NeedSizeScaled,
		OrderPolicy:  OrderPriorityID,
		Cutoffs:      DefaultAgeCutoffs(),
		ExactWeights: DefaultExactWeights(),
		BayesWeights: DefaultBayesWeights(),
		Bayes:        DefaultBayesConfig(),
		Need:         DefaultNeedConfig(),
		Population:   DefaultPopulationConfig(),
	}
}

// DefaultSimulationScenario is the stochastic caller's configuration: bayes
// strategy, a shelter kit in place of school supplies, and early termination
// once the budget is exhausted.
func DefaultSimulationScenario() *Scenario {
	s := DefaultRegistryScenario()
	s.Catalogue = []ResourceType{
		{Name: "Food Pack", Kind: KindFood, Cost: 500, Available: 100},
		{Name: "Hygiene Kit", Kind: KindHygiene, Cost: 300, Available: 80},
		{Name: "Medical Kit", Kind: KindMedical, Cost: 400, Available: 50},
		{Name: "Shelter Kit", Kind: KindShelter, Cost: 600, Available: 40},
	}
	s.Strategy = StrategyBayes
	s.NeedPolicy = NeedExpected
	s.StopWhenExhausted = true
	return s
}

// LoadScenario reads and parses a YAML scenario file. Fields left unset in
// the file fall back to the given base scenario (use a Default*Scenario).
func LoadScenario(path string, base *Scenario) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	s := *base
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	return &s, nil
}

// Validate checks all policy names and configuration values in the scenario.
// It runs before any pass starts: a pass never fails mid-scan on
// configuration. The Bayesian sub-config is only validated when something in
// the scenario uses it.
func (s *Scenario) Validate() error {
	if s.Budget < 0 {
		return fmt.Errorf("budget must be non-negative, got %d", s.Budget)
	}
	if err := ValidateCatalogue(s.Catalogue); err != nil {
		return err
	}
	if !IsValidStrategy(s.Strategy) {
		return fmt.Errorf("unknown strategy %q", s.Strategy)
	}
	if !IsValidNeedPolicy(s.NeedPolicy) {
		return fmt.Errorf("unknown need policy %q", s.NeedPolicy)
	}
	if !IsValidOrderPolicy(s.OrderPolicy) {
		return fmt.Errorf("unknown order policy %q", s.OrderPolicy)
	}
	if err := s.Cutoffs.Validate(); err != nil {
		return err
	}
	if s.Strategy == StrategyBayes || s.NeedPolicy == NeedExpected {
		if err := s.Bayes.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Deps constructs the pass dependencies the scenario selects. Validate must
// pass first; Deps panics on unknown policy names like the underlying
// factories do.
func (s *Scenario) Deps() PassDeps {
	return PassDeps{
		Estimator:         NewEstimator(s.Strategy, s.Cutoffs, s.Bayes),
		Scorer:            NewScorer(s.Strategy, s.ExactWeights, s.BayesWeights),
		Needs:             NewNeedPolicy(s.NeedPolicy, s.Need),
		Order:             NewOrderPolicy(s.OrderPolicy),
		StopWhenExhausted: s.StopWhenExhausted,
	}
}
