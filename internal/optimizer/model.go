package optimizer

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/portfolio-engine/internal/types"
)

// PortfolioModel holds the N x |entities| binary decision variables, the
// maximize-sense objective, and the full constraint record list for one
// solve. A model is owned by exactly one solve and never shared.
type PortfolioModel struct {
	Entities   []types.Entity
	Settings   types.Settings
	NumLineups int

	Objective []float64 // maximize-sense coefficient per column
	Records   []ConstraintRecord

	entityIndex map[string]int // entity ID -> index into Entities
}

// NumCols returns the total number of decision variables.
func (m *PortfolioModel) NumCols() int {
	return m.NumLineups * len(m.Entities)
}

// Col returns the column index of x[lineup, entity].
func (m *PortfolioModel) Col(lineup, entity int) int {
	return lineup*len(m.Entities) + entity
}

// EntityAt resolves a column index back to its (lineup, entity).
func (m *PortfolioModel) EntityAt(col int) (lineup int, entity types.Entity) {
	return col / len(m.Entities), m.Entities[col%len(m.Entities)]
}

// EntityIndex returns the index of an entity ID in the pool.
func (m *PortfolioModel) EntityIndex(id string) (int, bool) {
	idx, ok := m.entityIndex[id]
	return idx, ok
}

// EntityColumns returns the entity's column across every lineup, the sum of
// which is its portfolio appearance count.
func (m *PortfolioModel) EntityColumns(entityIdx int) []int {
	cols := make([]int, m.NumLineups)
	for i := 0; i < m.NumLineups; i++ {
		cols[i] = m.Col(i, entityIdx)
	}
	return cols
}

// BuildPortfolioModel constructs the joint model: binary variables for every
// (lineup, entity) pair, the fitness objective with a small salary-usage
// bonus, and the per-lineup structural constraints. It rejects with a
// validation error before creating any variable when the pool cannot fill
// the roster shape even once. No cross-lineup diversity or overlap terms are
// added: portfolio spread comes entirely from the elite appearance
// constraints layered on afterwards.
func BuildPortfolioModel(entities []types.Entity, settings types.Settings, bonusWeight float64, log *logrus.Entry) (*PortfolioModel, error) {
	if missing := missingSlot(entities, settings.Shape); missing != "" {
		return nil, &types.ValidationError{
			Field:  "entities",
			Reason: fmt.Sprintf("insufficient pool: cannot fill slot %s even once", missing),
		}
	}

	m := &PortfolioModel{
		Entities:    entities,
		Settings:    settings,
		NumLineups:  settings.LineupCount,
		entityIndex: make(map[string]int, len(entities)),
	}
	for idx, e := range entities {
		m.entityIndex[e.ID] = idx
	}

	m.buildObjective(bonusWeight)
	m.buildStructuralConstraints()

	log.WithFields(logrus.Fields{
		"entities":           len(entities),
		"lineups":            m.NumLineups,
		"columns":            m.NumCols(),
		"structural_records": len(m.Records),
	}).Debug("Portfolio model constructed")

	return m, nil
}

// missingSlot runs a greedy one-lineup fill over distinct entities, ignoring
// salary, and returns the name of the first slot that cannot be filled, or
// "" when the shape is fillable.
func missingSlot(entities []types.Entity, shape types.RosterShape) string {
	used := make(map[string]bool)
	for _, slot := range shape.SlotsByFillOrder() {
		filled := false
		for _, e := range entities {
			if used[e.ID] || !slot.Allows(e.Category) {
				continue
			}
			used[e.ID] = true
			filled = true
			break
		}
		if !filled {
			return slot.Name
		}
	}
	return ""
}

// buildObjective sets maximize-sense coefficients: fitness plus a salary
// bonus an order of magnitude below the smallest meaningful fitness delta,
// so the bonus nudges lineups away from needlessly cheap builds without ever
// outweighing projected fitness. The constant floor offset of the bonus term
// does not affect the argmax and is dropped.
func (m *PortfolioModel) buildObjective(bonusWeight float64) {
	m.Objective = make([]float64, m.NumCols())
	for i := 0; i < m.NumLineups; i++ {
		for idx, e := range m.Entities {
			m.Objective[m.Col(i, idx)] = e.Fitness + bonusWeight*float64(e.Cost)
		}
	}
}

func (m *PortfolioModel) buildStructuralConstraints() {
	shape := m.Settings.Shape
	for i := 0; i < m.NumLineups; i++ {
		m.addRosterRecords(i, shape)
		m.addSalaryRecord(i, shape)
		m.addTeamRecords(i)
		m.addGameRecords(i)
		m.addPairingRecords(i)
	}
}

// addRosterRecords encodes the slot counts: the lineup selects exactly
// TotalSlots entities, and each category's count sits between its dedicated
// slot count and dedicated plus flex capacity. Flex eligibility is the OR
// over allowed categories; the extractor resolves the concrete slot for each
// selected entity.
func (m *PortfolioModel) addRosterRecords(lineup int, shape types.RosterShape) {
	total := make([]Term, 0, len(m.Entities))
	for idx := range m.Entities {
		total = append(total, Term{Col: m.Col(lineup, idx), Coef: 1})
	}
	m.Records = append(m.Records, ConstraintRecord{
		Name:   fmt.Sprintf("lineup%02d_roster_total", lineup+1),
		Kind:   KindStructural,
		Active: true,
		Terms:  total,
		Lower:  float64(shape.TotalSlots()),
		Upper:  float64(shape.TotalSlots()),
	})

	categories := make(map[types.Category]bool)
	for _, c := range shape.Categories() {
		categories[c] = true
	}
	for _, e := range m.Entities {
		categories[e.Category] = true
	}

	for cat := range categories {
		terms := m.categoryOccupancy(lineup, cat)
		if len(terms) == 0 {
			continue
		}
		dedicated := shape.DedicatedCount(cat)
		m.Records = append(m.Records, ConstraintRecord{
			Name:     fmt.Sprintf("lineup%02d_roster_%s", lineup+1, cat),
			Kind:     KindStructural,
			Category: cat,
			Active:   true,
			Terms:    terms,
			Lower:    float64(dedicated),
			Upper:    float64(shape.CategorySlotInstances(cat)),
		})
	}
}

// categoryOccupancy is the slot-or-flex occupancy indicator for a category:
// the columns whose sum counts how many of the lineup's slot instances the
// category occupies, regardless of whether an entity sits in a dedicated
// slot or flex. Roster counts, pairing rules, and the elite aggregates all
// derive from this one definition.
func (m *PortfolioModel) categoryOccupancy(lineup int, cat types.Category) []Term {
	var terms []Term
	for idx, e := range m.Entities {
		if e.Category == cat {
			terms = append(terms, Term{Col: m.Col(lineup, idx), Coef: 1})
		}
	}
	return terms
}

func (m *PortfolioModel) addSalaryRecord(lineup int, shape types.RosterShape) {
	terms := make([]Term, 0, len(m.Entities))
	for idx, e := range m.Entities {
		terms = append(terms, Term{Col: m.Col(lineup, idx), Coef: float64(e.Cost)})
	}
	m.Records = append(m.Records, ConstraintRecord{
		Name:   fmt.Sprintf("lineup%02d_salary", lineup+1),
		Kind:   KindStructural,
		Active: true,
		Terms:  terms,
		Lower:  float64(shape.SalaryFloor),
		Upper:  float64(shape.SalaryCap),
	})
}

func (m *PortfolioModel) addTeamRecords(lineup int) {
	teams := make(map[string][]Term)
	for idx, e := range m.Entities {
		if e.Team == "" {
			continue
		}
		teams[e.Team] = append(teams[e.Team], Term{Col: m.Col(lineup, idx), Coef: 1})
	}
	for team, terms := range teams {
		m.Records = append(m.Records, ConstraintRecord{
			Name:   fmt.Sprintf("lineup%02d_team_%s", lineup+1, team),
			Kind:   KindStructural,
			Active: true,
			Terms:  terms,
			Lower:  0,
			Upper:  float64(m.Settings.MaxPerTeam),
		})
	}
}

func (m *PortfolioModel) addGameRecords(lineup int) {
	games := make(map[string][]Term)
	for idx, e := range m.Entities {
		if e.Game == "" {
			continue
		}
		games[e.Game] = append(games[e.Game], Term{Col: m.Col(lineup, idx), Coef: 1})
	}
	for game, terms := range games {
		m.Records = append(m.Records, ConstraintRecord{
			Name:   fmt.Sprintf("lineup%02d_game_%s", lineup+1, game),
			Kind:   KindStructural,
			Active: true,
			Terms:  terms,
			Lower:  0,
			Upper:  float64(m.Settings.MaxPerGame),
		})
	}
}

// addPairingRecords materializes each pairing rule as linear inequalities,
// one per anchor entity: the count of same-team mates must reach MinMates
// whenever the anchor is selected. With no eligible mates on the anchor's
// team the inequality pins the anchor to zero, which is the rule's intended
// reading.
func (m *PortfolioModel) addPairingRecords(lineup int) {
	for ruleIdx, rule := range m.Settings.PairingRules {
		for idx, anchor := range m.Entities {
			if anchor.Category != rule.AnchorCategory || anchor.Team == "" {
				continue
			}
			terms := []Term{{Col: m.Col(lineup, idx), Coef: -float64(rule.MinMates)}}
			for mateIdx, mate := range m.Entities {
				if mateIdx == idx || mate.Team != anchor.Team {
					continue
				}
				for _, mateCat := range rule.MateCategories {
					if mate.Category == mateCat {
						terms = append(terms, Term{Col: m.Col(lineup, mateIdx), Coef: 1})
						break
					}
				}
			}
			m.Records = append(m.Records, ConstraintRecord{
				Name:   fmt.Sprintf("lineup%02d_pairing%d_%s", lineup+1, ruleIdx, anchor.ID),
				Kind:   KindStructural,
				Active: true,
				Terms:  terms,
				Lower:  0,
				Upper:  math.Inf(1),
			})
		}
	}
}
