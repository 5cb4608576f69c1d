package cmd

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relief-sim/relief-sim/alloc"
)

func runExportPass(t *testing.T) (*alloc.PassResult, []*alloc.Household) {
	t.Helper()
	scenario := alloc.DefaultRegistryScenario()
	require.NoError(t, scenario.Validate())

	large, err := alloc.NewHousehold(1, "Diallo", 6, []int{3, 4, 10, 16, 35, 70})
	require.NoError(t, err)
	single, err := alloc.NewHousehold(2, "Tran", 1, []int{30})
	require.NoError(t, err)
	households := []*alloc.Household{large, single}

	result, err := alloc.RunPass(households, alloc.CloneCatalogue(scenario.Catalogue), scenario.Budget, scenario.Deps())
	require.NoError(t, err)
	return result, households
}

func TestWriteDistributionPlan(t *testing.T) {
	result, _ := runExportPass(t)
	path := filepath.Join(t.TempDir(), "plan.csv")

	require.NoError(t, WriteDistributionPlan(path, result))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.NotEmpty(t, rows)

	assert.Equal(t,
		[]string{"Household ID", "Household Head", "Priority", "Wait Index", "Resource", "Quantity", "Cost"},
		rows[0])

	// The six-member household outranks the single and leads the plan.
	assert.Equal(t, "1", rows[1][0])
	assert.Equal(t, "Diallo", rows[1][1])
	assert.Equal(t, "Food Pack", rows[1][4], "rows follow catalogue scan order")
	assert.Equal(t, "2", rows[1][5])
	assert.Equal(t, "1000", rows[1][6])

	// Every data row belongs to a known household and carries a real resource.
	for _, row := range rows[1:] {
		assert.Contains(t, []string{"1", "2"}, row[0])
		assert.NotEmpty(t, row[4])
	}
}

func TestWriteDistributionPlan_MarksUnreachedHouseholds(t *testing.T) {
	scenario := alloc.DefaultRegistryScenario()
	deps := scenario.Deps()
	deps.StopWhenExhausted = true

	served, err := alloc.NewHousehold(1, "Haile", 1, []int{70})
	require.NoError(t, err)
	unreached, err := alloc.NewHousehold(2, "Tran", 1, []int{30})
	require.NoError(t, err)

	// The first settlement (one food pack, one hygiene kit) drains the
	// budget exactly, so the pass stops before the second household.
	result, err := alloc.RunPass([]*alloc.Household{served, unreached},
		alloc.CloneCatalogue(scenario.Catalogue), 800, deps)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "plan.csv")
	require.NoError(t, WriteDistributionPlan(path, result))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Not Evaluated")
}

func TestWriteSummaryReport(t *testing.T) {
	result, households := runExportPass(t)
	path := filepath.Join(t.TempDir(), "summary.txt")

	require.NoError(t, WriteSummaryReport(path, result, households, alloc.DefaultAgeCutoffs()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	report := string(data)

	assert.Contains(t, report, "RESOURCE DISTRIBUTION SUMMARY")
	assert.Contains(t, report, "Total Budget: 150000")
	assert.Contains(t, report, "Food Pack")
	assert.True(t, strings.Contains(report, "Remaining Budget"))
}

func TestParseAges(t *testing.T) {
	ages, err := parseAges("4, 32,65")
	require.NoError(t, err)
	assert.Equal(t, []int{4, 32, 65}, ages)

	_, err = parseAges("")
	assert.Error(t, err)

	_, err = parseAges("4,abc")
	assert.Error(t, err)
}
