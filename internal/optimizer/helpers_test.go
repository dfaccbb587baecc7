package optimizer

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/portfolio-engine/internal/types"
)

// solverFunc adapts a function to the Solver interface for tests.
type solverFunc func(ctx context.Context, m *PortfolioModel) (*SolveResult, error)

func (f solverFunc) Solve(ctx context.Context, m *PortfolioModel) (*SolveResult, error) {
	return f(ctx, m)
}

// scriptedSolver replays a fixed sequence of results, repeating the last one
// once the script runs out. Optimal results get an all-ones assignment.
type scriptedSolver struct {
	statuses []SolveStatus
	calls    int
}

func (s *scriptedSolver) Solve(_ context.Context, m *PortfolioModel) (*SolveResult, error) {
	idx := s.calls
	if idx >= len(s.statuses) {
		idx = len(s.statuses) - 1
	}
	s.calls++

	status := s.statuses[idx]
	if status == StatusOptimal {
		return &SolveResult{Status: StatusOptimal, Assignment: fullAssignment(m)}, nil
	}
	return &SolveResult{Status: status}, nil
}

// fullAssignment selects every entity in every lineup, which is the unique
// feasible assignment for the minimal test pool.
func fullAssignment(m *PortfolioModel) []float64 {
	assignment := make([]float64, m.NumCols())
	for i := range assignment {
		assignment[i] = 1
	}
	return assignment
}

// minimalPool returns exactly one entity per roster slot of the default
// shape (the FLEX slot absorbs the third RB). Salaries sum to 49500, inside
// the default [47500, 50000] budget, and every entity has its own team and
// shares a game with at most one other.
func minimalPool() []types.Entity {
	return []types.Entity{
		{ID: "qb1", Category: types.CategoryQB, Cost: 7000, Fitness: 22.0, SecondaryRank: 19.5, Team: "KC", Game: "KC@BUF"},
		{ID: "rb1", Category: types.CategoryRB, Cost: 6500, Fitness: 18.0, SecondaryRank: 17.0, Team: "SF", Game: "SF@SEA"},
		{ID: "rb2", Category: types.CategoryRB, Cost: 6000, Fitness: 16.0, SecondaryRank: 15.5, Team: "DAL", Game: "DAL@NYG"},
		{ID: "rb3", Category: types.CategoryRB, Cost: 5000, Fitness: 12.5, SecondaryRank: 12.0, Team: "DET", Game: "DET@GB"},
		{ID: "wr1", Category: types.CategoryWR, Cost: 6500, Fitness: 17.5, SecondaryRank: 16.5, Team: "MIA", Game: "MIA@NYJ"},
		{ID: "wr2", Category: types.CategoryWR, Cost: 6000, Fitness: 15.0, SecondaryRank: 14.0, Team: "CIN", Game: "CIN@CLE"},
		{ID: "wr3", Category: types.CategoryWR, Cost: 5500, Fitness: 13.5, SecondaryRank: 13.0, Team: "PHI", Game: "PHI@WAS"},
		{ID: "te1", Category: types.CategoryTE, Cost: 4500, Fitness: 11.0, SecondaryRank: 10.5, Team: "BAL", Game: "BAL@PIT"},
		{ID: "dst1", Category: types.CategoryDST, Cost: 2500, Fitness: 8.0, SecondaryRank: 7.0, Team: "NO", Game: "NO@ATL"},
	}
}

// poolWithDepth builds `perCategory` entities for every category of the
// default shape, with strictly descending secondary ranking values so tier
// order is unambiguous.
func poolWithDepth(perCategory int) []types.Entity {
	categories := []types.Category{
		types.CategoryQB, types.CategoryRB, types.CategoryWR,
		types.CategoryTE, types.CategoryDST,
	}
	teams := []string{"KC", "SF", "DAL", "DET", "MIA", "CIN", "PHI", "BAL", "NO", "LAR"}
	var pool []types.Entity
	for _, cat := range categories {
		for i := 0; i < perCategory; i++ {
			team := teams[i%len(teams)]
			pool = append(pool, types.Entity{
				ID:            fmt.Sprintf("%s%02d", cat, i+1),
				Category:      cat,
				Cost:          4000 + 300*(perCategory-i),
				Fitness:       20.0 - float64(i),
				SecondaryRank: 25.0 - float64(i),
				Team:          team,
				Game:          team + "@game",
			})
		}
	}
	return pool
}

func defaultSettings(lineupCount int) types.Settings {
	return types.Settings{
		LineupCount: lineupCount,
		Shape:       types.DefaultRosterShape(),
		MaxPerTeam:  3,
		MaxPerGame:  4,
	}
}

func testLog() *logrus.Entry {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return logrus.NewEntry(log)
}
