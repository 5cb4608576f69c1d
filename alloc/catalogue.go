package alloc

import (
	"fmt"
)

// ResourceKind classifies a catalogue entry for need computation. Need
// policies compute quantities per kind; the catalogue maps kinds to concrete
// named resources with a cost and an inventory ceiling.
type ResourceKind string

const (
	KindFood    ResourceKind = "food"
	KindHygiene ResourceKind = "hygiene"
	KindMedical ResourceKind = "medical"
	KindSchool  ResourceKind = "school"
	KindShelter ResourceKind = "shelter"
)

// validResourceKinds maps accepted kind strings.
var validResourceKinds = map[ResourceKind]bool{
	KindFood:    true,
	KindHygiene: true,
	KindMedical: true,
	KindSchool:  true,
	KindShelter: true,
}

// IsValidResourceKind returns true if the given kind is recognized.
func IsValidResourceKind(k ResourceKind) bool {
	return validResourceKinds[k]
}

// ResourceType is one entry of the fixed resource catalogue.
// Available is mutated only by the allocator during a pass and is
// monotonically non-increasing within it.
type ResourceType struct {
	Name      string       `yaml:"name"`
	Kind      ResourceKind `yaml:"kind"`
	Cost      int64        `yaml:"cost"`      // unit cost in whole currency units (must be > 0)
	Available int64        `yaml:"available"` // remaining inventory (must be >= 0)
}

// ValidateCatalogue checks a catalogue before a pass starts. The slice order
// is the allocator's scan order, so an empty catalogue is rejected too.
func ValidateCatalogue(catalogue []ResourceType) error {
	if len(catalogue) == 0 {
		return fmt.Errorf("catalogue must not be empty")
	}
	seen := make(map[string]bool, len(catalogue))
	for _, rt := range catalogue {
		if rt.Name == "" {
			return fmt.Errorf("catalogue entry with empty name")
		}
		if seen[rt.Name] {
			return fmt.Errorf("duplicate catalogue entry %q", rt.Name)
		}
		seen[rt.Name] = true
		if !IsValidResourceKind(rt.Kind) {
			return fmt.Errorf("resource %q: unknown kind %q", rt.Name, rt.Kind)
		}
		if rt.Cost <= 0 {
			return fmt.Errorf("resource %q: cost must be positive, got %d", rt.Name, rt.Cost)
		}
		if rt.Available < 0 {
			return fmt.Errorf("resource %q: available must be non-negative, got %d", rt.Name, rt.Available)
		}
	}
	return nil
}

// CloneCatalogue returns an independent copy of the catalogue. RunPass
// mutates the availability of the catalogue it is given; callers that need
// the pre-pass state pass a clone.
func CloneCatalogue(catalogue []ResourceType) []ResourceType {
	out := make([]ResourceType, len(catalogue))
	copy(out, catalogue)
	return out
}
