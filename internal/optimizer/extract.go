package optimizer

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/stitts-dev/portfolio-engine/internal/types"
)

// selectionThreshold tolerates solver floating-point slack on binary columns.
const selectionThreshold = 0.999

// ExtractLineups reads an optimal assignment into N lineup records and
// re-validates every structural invariant defensively. A violation here
// means a solver or modeling bug; it aborts the whole solve rather than
// returning a bad lineup.
func ExtractLineups(m *PortfolioModel, assignment []float64) ([]types.LineupResult, error) {
	if len(assignment) < m.NumCols() {
		return nil, &types.InvariantViolationError{
			Check:  "assignment_length",
			Detail: fmt.Sprintf("got %d values for %d columns", len(assignment), m.NumCols()),
		}
	}

	lineups := make([]types.LineupResult, 0, m.NumLineups)
	for i := 0; i < m.NumLineups; i++ {
		var selected []types.Entity
		for idx := range m.Entities {
			if assignment[m.Col(i, idx)] >= selectionThreshold {
				selected = append(selected, m.Entities[idx])
			}
		}

		slots, err := assignSlots(i, selected, m.Settings.Shape)
		if err != nil {
			return nil, err
		}
		if err := validateLineup(i, selected, m.Settings); err != nil {
			return nil, err
		}

		lineups = append(lineups, buildLineupResult(i, slots))
	}
	return lineups, nil
}

// assignSlots deterministically maps selected entities onto roster slots:
// dedicated slots fill before flex, candidates ordered by category priority
// then entity ID.
func assignSlots(lineupIdx int, selected []types.Entity, shape types.RosterShape) ([]types.SlotAssignment, error) {
	if len(selected) != shape.TotalSlots() {
		return nil, &types.InvariantViolationError{
			LineupIndex: lineupIdx,
			Check:       "roster_size",
			Detail:      fmt.Sprintf("selected %d entities for %d slots", len(selected), shape.TotalSlots()),
		}
	}

	pool := make([]types.Entity, len(selected))
	copy(pool, selected)
	sort.Slice(pool, func(a, b int) bool {
		pa, pb := types.CategoryPriority(pool[a].Category), types.CategoryPriority(pool[b].Category)
		if pa != pb {
			return pa < pb
		}
		return pool[a].ID < pool[b].ID
	})

	assigned := make(map[string]bool, len(pool))
	bySlotName := make(map[string]types.Entity, len(pool))
	for _, slot := range shape.SlotsByFillOrder() {
		filled := false
		for _, e := range pool {
			if assigned[e.ID] || !slot.Allows(e.Category) {
				continue
			}
			assigned[e.ID] = true
			bySlotName[slot.Name] = e
			filled = true
			break
		}
		if !filled {
			return nil, &types.InvariantViolationError{
				LineupIndex: lineupIdx,
				Check:       "slot_fill",
				Detail:      fmt.Sprintf("no selected entity can fill slot %s", slot.Name),
			}
		}
	}

	// Emit in the shape's declared slot order.
	assignments := make([]types.SlotAssignment, 0, len(shape.Slots))
	for _, slot := range shape.Slots {
		assignments = append(assignments, types.SlotAssignment{
			SlotName: slot.Name,
			Entity:   bySlotName[slot.Name],
		})
	}
	return assignments, nil
}

// validateLineup re-checks every structural constraint against an extracted
// lineup: duplicates, salary range, team and game caps, and pairing rules.
func validateLineup(lineupIdx int, selected []types.Entity, settings types.Settings) error {
	seen := make(map[string]bool, len(selected))
	totalCost := 0
	teamCounts := make(map[string]int)
	gameCounts := make(map[string]int)
	for _, e := range selected {
		if seen[e.ID] {
			return &types.InvariantViolationError{
				LineupIndex: lineupIdx,
				Check:       "duplicate_entity",
				Detail:      e.ID,
			}
		}
		seen[e.ID] = true
		totalCost += e.Cost
		if e.Team != "" {
			teamCounts[e.Team]++
		}
		if e.Game != "" {
			gameCounts[e.Game]++
		}
	}

	if totalCost < settings.Shape.SalaryFloor || totalCost > settings.Shape.SalaryCap {
		return &types.InvariantViolationError{
			LineupIndex: lineupIdx,
			Check:       "salary_range",
			Detail:      fmt.Sprintf("cost %d outside [%d, %d]", totalCost, settings.Shape.SalaryFloor, settings.Shape.SalaryCap),
		}
	}
	for team, count := range teamCounts {
		if count > settings.MaxPerTeam {
			return &types.InvariantViolationError{
				LineupIndex: lineupIdx,
				Check:       "max_per_team",
				Detail:      fmt.Sprintf("team %s has %d entities, max %d", team, count, settings.MaxPerTeam),
			}
		}
	}
	for game, count := range gameCounts {
		if count > settings.MaxPerGame {
			return &types.InvariantViolationError{
				LineupIndex: lineupIdx,
				Check:       "max_per_game",
				Detail:      fmt.Sprintf("game %s has %d entities, max %d", game, count, settings.MaxPerGame),
			}
		}
	}

	for ruleIdx, rule := range settings.PairingRules {
		for _, anchor := range selected {
			if anchor.Category != rule.AnchorCategory || anchor.Team == "" {
				continue
			}
			mates := 0
			for _, e := range selected {
				if e.ID == anchor.ID || e.Team != anchor.Team {
					continue
				}
				for _, mateCat := range rule.MateCategories {
					if e.Category == mateCat {
						mates++
						break
					}
				}
			}
			if mates < rule.MinMates {
				return &types.InvariantViolationError{
					LineupIndex: lineupIdx,
					Check:       "pairing_rule",
					Detail:      fmt.Sprintf("rule %d: anchor %s has %d mates, needs %d", ruleIdx, anchor.ID, mates, rule.MinMates),
				}
			}
		}
	}
	return nil
}

func buildLineupResult(lineupIdx int, slots []types.SlotAssignment) types.LineupResult {
	fitness := make([]float64, len(slots))
	secondary := make([]float64, len(slots))
	ownership := make([]float64, len(slots))
	totalCost := 0
	for i, sa := range slots {
		fitness[i] = sa.Entity.Fitness
		secondary[i] = sa.Entity.SecondaryRank
		ownership[i] = sa.Entity.Ownership
		totalCost += sa.Entity.Cost
	}

	return types.LineupResult{
		ID:             fmt.Sprintf("lineup_%d_%s", lineupIdx+1, uuid.New().String()[:8]),
		Slots:          slots,
		TotalCost:      totalCost,
		TotalFitness:   floats.Sum(fitness),
		TotalSecondary: floats.Sum(secondary),
		MeanOwnership:  stat.Mean(ownership, nil),
	}
}
