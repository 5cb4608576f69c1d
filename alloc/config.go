package alloc

import "fmt"

// AgeCutoffs groups the age-band thresholds used when deriving composition
// counts from a true age list.
//
// Bands: age < YoungChild → young child; SchoolAge <= age < Adult → school
// age; age < Adult → child; age > Elderly → elderly.
type AgeCutoffs struct {
	YoungChild int `yaml:"young_child"` // default 5
	SchoolAge  int `yaml:"school_age"`  // default 5
	Adult      int `yaml:"adult"`       // default 18
	Elderly    int `yaml:"elderly"`     // default 60
}

// NewAgeCutoffs creates an AgeCutoffs from explicit thresholds.
func NewAgeCutoffs(youngChild, schoolAge, adult, elderly int) AgeCutoffs {
	return AgeCutoffs{YoungChild: youngChild, SchoolAge: schoolAge, Adult: adult, Elderly: elderly}
}

// DefaultAgeCutoffs returns the cutoffs both callers share.
func DefaultAgeCutoffs() AgeCutoffs {
	return AgeCutoffs{YoungChild: 5, SchoolAge: 5, Adult: 18, Elderly: 60}
}

// Validate rejects cutoff sets that would make the bands overlap nonsensically.
func (c AgeCutoffs) Validate() error {
	if c.YoungChild <= 0 || c.SchoolAge <= 0 || c.Adult <= 0 || c.Elderly <= 0 {
		return fmt.Errorf("age cutoffs must be positive: %+v", c)
	}
	if c.SchoolAge > c.Adult {
		return fmt.Errorf("school-age cutoff %d exceeds adult cutoff %d", c.SchoolAge, c.Adult)
	}
	if c.Adult > c.Elderly {
		return fmt.Errorf("adult cutoff %d exceeds elderly cutoff %d", c.Adult, c.Elderly)
	}
	return nil
}

// ExactWeights holds the priority weights for the exact (record-keeper)
// scorer. The per-member bonuses are age-band specific: the exact strategy
// sees individual ages, so early childhood earns a larger bonus than the
// binary child count available to the Bayesian strategy.
type ExactWeights struct {
	Size       float64 `yaml:"size"`        // per declared member
	YoungChild float64 `yaml:"young_child"` // per member below the young-child cutoff
	OtherMinor float64 `yaml:"other_minor"` // per remaining member below the adult cutoff
	Elderly    float64 `yaml:"elderly"`     // per member above the elderly cutoff
}

// DefaultExactWeights returns the record-keeper weights.
func DefaultExactWeights() ExactWeights {
	return ExactWeights{Size: 10, YoungChild: 30, OtherMinor: 20, Elderly: 25}
}

// BayesWeights holds the priority weights for the Bayesian (simulator) scorer.
type BayesWeights struct {
	ExpectedSize  float64 `yaml:"expected_size"` // per expected member
	Child         float64 `yaml:"child"`         // per ground-truth member below the adult cutoff
	Elderly       float64 `yaml:"elderly"`       // per ground-truth member above the elderly cutoff
	Vulnerability float64 `yaml:"vulnerability"` // per unit of expected vulnerability score
}

// DefaultBayesWeights returns the simulator weights.
func DefaultBayesWeights() BayesWeights {
	return BayesWeights{ExpectedSize: 5, Child: 10, Elderly: 15, Vulnerability: 25}
}

// NeedConfig groups the tunable thresholds of the need policies.
type NeedConfig struct {
	// MedicalEscalation is the vulnerable-member count (young children +
	// elderly) at which the size-scaled policy doubles the medical kit
	// quantity. Used by the size-scaled policy only.
	MedicalEscalation int `yaml:"medical_escalation"`
	// ShelterThreshold gates the shelter kit on the expected vulnerability
	// score. Used by the expected policy only.
	ShelterThreshold float64 `yaml:"shelter_threshold"`
}

// NewNeedConfig creates a NeedConfig from explicit thresholds.
func NewNeedConfig(medicalEscalation int, shelterThreshold float64) NeedConfig {
	return NeedConfig{MedicalEscalation: medicalEscalation, ShelterThreshold: shelterThreshold}
}

// DefaultNeedConfig returns the thresholds both callers observe.
func DefaultNeedConfig() NeedConfig {
	return NeedConfig{MedicalEscalation: 3, ShelterThreshold: 2.5}
}
