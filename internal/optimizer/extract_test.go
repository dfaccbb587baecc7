package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitts-dev/portfolio-engine/internal/types"
)

func TestExtractLineups_AssignsSlotsDeterministically(t *testing.T) {
	pool := minimalPool()
	m, err := BuildPortfolioModel(pool, defaultSettings(1), 0, testLog())
	require.NoError(t, err)

	lineups, err := ExtractLineups(m, fullAssignment(m))
	require.NoError(t, err)
	require.Len(t, lineups, 1)

	lineup := lineups[0]
	require.Len(t, lineup.Slots, 9)

	bySlot := make(map[string]types.Entity)
	for _, sa := range lineup.Slots {
		bySlot[sa.SlotName] = sa.Entity
	}

	// Dedicated slots fill before FLEX; within a category candidates order
	// by entity ID, so the leftover RB lands in FLEX.
	assert.Equal(t, "qb1", bySlot["QB"].ID)
	assert.Equal(t, "rb1", bySlot["RB1"].ID)
	assert.Equal(t, "rb2", bySlot["RB2"].ID)
	assert.Equal(t, "rb3", bySlot["FLEX"].ID)
	assert.Equal(t, "te1", bySlot["TE"].ID)
	assert.Equal(t, "dst1", bySlot["DST"].ID)

	assert.Equal(t, 49500, lineup.TotalCost)
	assert.InDelta(t, 133.5, lineup.TotalFitness, 1e-9)
	assert.InDelta(t, 125.0, lineup.TotalSecondary, 1e-9)
	assert.NotEmpty(t, lineup.ID)
}

func TestExtractLineups_RepeatedExtractionIsStable(t *testing.T) {
	pool := minimalPool()
	m, err := BuildPortfolioModel(pool, defaultSettings(3), 0, testLog())
	require.NoError(t, err)

	first, err := ExtractLineups(m, fullAssignment(m))
	require.NoError(t, err)
	second, err := ExtractLineups(m, fullAssignment(m))
	require.NoError(t, err)

	require.Len(t, first, 3)
	require.Len(t, second, 3)
	for i := range first {
		for j := range first[i].Slots {
			assert.Equal(t, first[i].Slots[j].Entity.ID, second[i].Slots[j].Entity.ID)
		}
		assert.Equal(t, first[i].TotalCost, second[i].TotalCost)
		assert.Equal(t, first[i].TotalFitness, second[i].TotalFitness)
	}
}

func TestExtractLineups_ToleratesSolverSlack(t *testing.T) {
	pool := minimalPool()
	m, err := BuildPortfolioModel(pool, defaultSettings(1), 0, testLog())
	require.NoError(t, err)

	assignment := fullAssignment(m)
	for i := range assignment {
		assignment[i] = 0.9995 // within integer tolerance
	}

	lineups, err := ExtractLineups(m, assignment)
	require.NoError(t, err)
	assert.Len(t, lineups[0].Slots, 9)
}

func TestExtractLineups_RosterSizeViolation(t *testing.T) {
	pool := minimalPool()
	m, err := BuildPortfolioModel(pool, defaultSettings(1), 0, testLog())
	require.NoError(t, err)

	assignment := fullAssignment(m)
	idx, _ := m.EntityIndex("dst1")
	assignment[m.Col(0, idx)] = 0

	lineups, err := ExtractLineups(m, assignment)
	assert.Nil(t, lineups)

	var invariantErr *types.InvariantViolationError
	require.ErrorAs(t, err, &invariantErr)
	assert.Equal(t, "roster_size", invariantErr.Check)
}

func TestExtractLineups_SalaryViolationIsFatal(t *testing.T) {
	// An overpriced QB alternative pushes the selected set past the cap.
	pool := append(minimalPool(), types.Entity{
		ID: "qb2", Category: types.CategoryQB, Cost: 12000, Fitness: 25.0,
		SecondaryRank: 21.0, Team: "BUF", Game: "KC@BUF",
	})
	m, err := BuildPortfolioModel(pool, defaultSettings(1), 0, testLog())
	require.NoError(t, err)

	// Select qb2 plus everything except the cheaper qb1.
	assignment := fullAssignment(m)
	idx, _ := m.EntityIndex("qb1")
	assignment[m.Col(0, idx)] = 0

	lineups, err := ExtractLineups(m, assignment)
	assert.Nil(t, lineups)

	var invariantErr *types.InvariantViolationError
	require.ErrorAs(t, err, &invariantErr)
	assert.Equal(t, "salary_range", invariantErr.Check)
}

func TestExtractLineups_TeamCapViolationIsFatal(t *testing.T) {
	pool := minimalPool()
	// Stack four entities onto one team, above the cap of 3.
	for i := 1; i <= 4; i++ {
		pool[i].Team = "SF"
	}
	m, err := BuildPortfolioModel(pool, defaultSettings(1), 0, testLog())
	require.NoError(t, err)

	lineups, err := ExtractLineups(m, fullAssignment(m))
	assert.Nil(t, lineups)

	var invariantErr *types.InvariantViolationError
	require.ErrorAs(t, err, &invariantErr)
	assert.Equal(t, "max_per_team", invariantErr.Check)
}

func TestBuildExposureReport(t *testing.T) {
	pool := minimalPool()
	m, err := BuildPortfolioModel(pool, defaultSettings(4), 0, testLog())
	require.NoError(t, err)

	lineups, err := ExtractLineups(m, fullAssignment(m))
	require.NoError(t, err)

	report := BuildExposureReport(lineups)
	assert.Equal(t, 4, report.TotalLineups)
	require.Len(t, report.Entities, 9)
	for _, exposure := range report.Entities {
		assert.Equal(t, 4, exposure.Count)
		assert.InDelta(t, 100.0, exposure.Percentage, 1e-9)
	}
}
