package types

// Provenance distinguishes a jointly solved portfolio from best-effort
// fallback output.
type Provenance string

const (
	ProvenancePortfolio Provenance = "portfolio"
	ProvenanceFallback  Provenance = "fallback"
)

// SlotAssignment pairs a roster slot with the entity that fills it.
type SlotAssignment struct {
	SlotName string `json:"slot_name"`
	Entity   Entity `json:"entity"`
}

// LineupResult is one finished lineup. Immutable once extracted.
type LineupResult struct {
	ID             string           `json:"id"`
	Slots          []SlotAssignment `json:"slots"`
	TotalCost      int              `json:"total_cost"`
	TotalFitness   float64          `json:"total_fitness"`
	TotalSecondary float64          `json:"total_secondary"`
	MeanOwnership  float64          `json:"mean_ownership"`
}

// Entities returns the lineup's entities in slot order.
func (lr LineupResult) Entities() []Entity {
	entities := make([]Entity, len(lr.Slots))
	for i, slot := range lr.Slots {
		entities[i] = slot.Entity
	}
	return entities
}

// EntityExposure reports how often one entity appears across the portfolio.
type EntityExposure struct {
	EntityID   string  `json:"entity_id"`
	Category   string  `json:"category"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// ExposureReport summarizes appearance counts across the returned lineups.
// Display-only; it never feeds back into constraints.
type ExposureReport struct {
	TotalLineups int              `json:"total_lineups"`
	Entities     []EntityExposure `json:"entities"`
}

// PortfolioSolution is the engine's output contract: the lineups plus enough
// provenance for a consumer to distinguish a clean optimal portfolio from a
// relaxed or fallback one without re-deriving it.
type PortfolioSolution struct {
	SolveID         string          `json:"solve_id"`
	Lineups         []LineupResult  `json:"lineups"`
	RelaxationTrace []int           `json:"relaxation_trace"`
	Provenance      Provenance      `json:"provenance"`
	Exposure        *ExposureReport `json:"exposure,omitempty"`
}
