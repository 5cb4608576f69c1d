package alloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHousehold(t *testing.T) {
	h, err := NewHousehold(1, "Mwangi", 3, []int{4, 32, 65})
	require.NoError(t, err)
	assert.Equal(t, 3, h.Size())
	assert.Equal(t, "Mwangi", h.Name)

	_, err = NewHousehold(2, "", 0, nil)
	assert.Error(t, err, "non-positive member count")

	_, err = NewHousehold(3, "", 2, []int{30})
	assert.Error(t, err, "member count and age list disagree")

	_, err = NewHousehold(4, "", 2, []int{30, -1})
	assert.Error(t, err, "negative age")
}

func TestNewReportedHousehold(t *testing.T) {
	h, err := NewReportedHousehold(1, nil, 4, VulnerabilityMedium)
	require.NoError(t, err)
	assert.Equal(t, 4, h.Size(), "size falls back to the report without ages")

	withTruth, err := NewReportedHousehold(2, []int{10, 40, 41}, 4, VulnerabilityLow)
	require.NoError(t, err)
	assert.Equal(t, 3, withTruth.Size(), "known ages beat the report")

	_, err = NewReportedHousehold(3, nil, 0, VulnerabilityLow)
	assert.Error(t, err, "non-positive reported size")

	_, err = NewReportedHousehold(4, nil, 4, "severe")
	assert.Error(t, err, "unknown vulnerability category")
}

func TestIsValidVulnerability(t *testing.T) {
	for _, v := range Vulnerabilities {
		if !IsValidVulnerability(v) {
			t.Errorf("%q should be valid", v)
		}
	}
	if IsValidVulnerability("critical") {
		t.Error("unknown category accepted")
	}
}

func TestValidateCatalogue(t *testing.T) {
	valid := []ResourceType{
		{Name: "Food Pack", Kind: KindFood, Cost: 500, Available: 100},
		{Name: "Hygiene Kit", Kind: KindHygiene, Cost: 300, Available: 0},
	}
	assert.NoError(t, ValidateCatalogue(valid))
	assert.Error(t, ValidateCatalogue(nil))
}

func TestCloneCatalogue(t *testing.T) {
	original := []ResourceType{{Name: "Food Pack", Kind: KindFood, Cost: 500, Available: 100}}
	clone := CloneCatalogue(original)
	clone[0].Available = 1

	assert.Equal(t, int64(100), original[0].Available, "clone must not alias the original")
}

func TestAgeCutoffs_Validate(t *testing.T) {
	assert.NoError(t, DefaultAgeCutoffs().Validate())

	bad := NewAgeCutoffs(5, 5, 4, 60) // adult below school-age
	assert.Error(t, bad.Validate())

	bad = NewAgeCutoffs(0, 5, 18, 60)
	assert.Error(t, bad.Validate())
}
