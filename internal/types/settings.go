package types

import "fmt"

// PairingRule expresses a same-team stacking requirement as a linear
// implication: when an anchor-category entity from team T is selected, at
// least MinMates entities from the mate categories of team T must also be
// selected in the same lineup.
type PairingRule struct {
	AnchorCategory Category   `json:"anchor_category"`
	MateCategories []Category `json:"mate_categories"`
	MinMates       int        `json:"min_mates"`
}

// ExposureBound bounds an entity's appearance share across the portfolio,
// expressed as fractions of the lineup count.
type ExposureBound struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Settings holds the user-tunable knobs for one portfolio solve.
type Settings struct {
	LineupCount    int                      `json:"lineup_count"`
	Shape          RosterShape              `json:"roster_shape"`
	MaxPerTeam     int                      `json:"max_per_team"`
	MaxPerGame     int                      `json:"max_per_game"`
	PairingRules   []PairingRule            `json:"pairing_rules,omitempty"`
	ExposureLimits map[string]ExposureBound `json:"exposure_limits,omitempty"`
}

// Validate checks the settings against domain rules before any model is
// constructed. Violations surface as *ValidationError.
func (s Settings) Validate() error {
	if s.LineupCount < 1 {
		return &ValidationError{Field: "lineup_count", Reason: fmt.Sprintf("must be at least 1, got %d", s.LineupCount)}
	}
	if len(s.Shape.Slots) == 0 {
		return &ValidationError{Field: "roster_shape", Reason: "must define at least one slot"}
	}
	if s.Shape.SalaryFloor < 0 {
		return &ValidationError{Field: "salary_floor", Reason: fmt.Sprintf("must be non-negative, got %d", s.Shape.SalaryFloor)}
	}
	if s.Shape.SalaryFloor > s.Shape.SalaryCap {
		return &ValidationError{
			Field:  "salary_floor",
			Reason: fmt.Sprintf("floor %d exceeds cap %d", s.Shape.SalaryFloor, s.Shape.SalaryCap),
		}
	}
	if s.MaxPerTeam < 1 {
		return &ValidationError{Field: "max_per_team", Reason: fmt.Sprintf("must be at least 1, got %d", s.MaxPerTeam)}
	}
	if s.MaxPerGame < 1 {
		return &ValidationError{Field: "max_per_game", Reason: fmt.Sprintf("must be at least 1, got %d", s.MaxPerGame)}
	}
	for i, rule := range s.PairingRules {
		if rule.MinMates < 1 {
			return &ValidationError{
				Field:  "pairing_rules",
				Reason: fmt.Sprintf("rule %d: min_mates must be at least 1, got %d", i, rule.MinMates),
			}
		}
		if len(rule.MateCategories) == 0 {
			return &ValidationError{
				Field:  "pairing_rules",
				Reason: fmt.Sprintf("rule %d: mate_categories must not be empty", i),
			}
		}
	}
	for id, bound := range s.ExposureLimits {
		if bound.Min < 0 || bound.Max > 1 || bound.Min > bound.Max {
			return &ValidationError{
				Field:  "exposure_limits",
				Reason: fmt.Sprintf("entity %s: bounds [%f, %f] out of range", id, bound.Min, bound.Max),
			}
		}
	}
	return nil
}
