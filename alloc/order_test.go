package alloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func scoredHousehold(id int, priority float64) *Household {
	return &Household{ID: id, Profile: &Profile{Priority: priority}}
}

func orderedIDs(households []*Household) []int {
	ids := make([]int, len(households))
	for i, h := range households {
		ids[i] = h.ID
	}
	return ids
}

func TestByPriorityThenID(t *testing.T) {
	households := []*Household{
		scoredHousehold(3, 50),
		scoredHousehold(1, 90),
		scoredHousehold(4, 50),
		scoredHousehold(2, 120),
	}

	(&ByPriorityThenID{}).Order(households)

	assert.Equal(t, []int{2, 1, 3, 4}, orderedIDs(households),
		"priority descending, ID ascending among equal priorities")
}

func TestByPriorityThenID_Reproducible(t *testing.T) {
	build := func() []*Household {
		return []*Household{
			scoredHousehold(5, 40),
			scoredHousehold(2, 40),
			scoredHousehold(9, 40),
			scoredHousehold(1, 75),
		}
	}

	first := build()
	second := build()
	policy := &ByPriorityThenID{}
	policy.Order(first)
	policy.Order(second)

	assert.Equal(t, orderedIDs(first), orderedIDs(second))
	assert.Equal(t, []int{1, 2, 5, 9}, orderedIDs(first))
}

func TestByPriorityOnly_PriorityDescending(t *testing.T) {
	households := []*Household{
		scoredHousehold(1, 10),
		scoredHousehold(2, 80),
		scoredHousehold(3, 45),
	}

	(&ByPriorityOnly{}).Order(households)

	for i := 1; i < len(households); i++ {
		if households[i].Profile.Priority > households[i-1].Profile.Priority {
			t.Fatalf("households out of priority order at index %d", i)
		}
	}
}

func TestNewOrderPolicy(t *testing.T) {
	if _, ok := NewOrderPolicy(OrderPriorityID).(*ByPriorityThenID); !ok {
		t.Error("priority-id name should build ByPriorityThenID")
	}
	if _, ok := NewOrderPolicy(OrderPriorityOnly).(*ByPriorityOnly); !ok {
		t.Error("priority-only name should build ByPriorityOnly")
	}
	if _, ok := NewOrderPolicy("").(*ByPriorityThenID); !ok {
		t.Error("empty name should default to priority-id")
	}

	assert.Panics(t, func() { NewOrderPolicy("fifo") })
}
