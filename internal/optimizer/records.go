package optimizer

import (
	"github.com/stitts-dev/portfolio-engine/internal/types"
)

// ConstraintKind classifies a constraint record for relaxation purposes.
type ConstraintKind string

const (
	KindStructural     ConstraintKind = "structural"
	KindElitePerEntity ConstraintKind = "elite-per-entity"
	KindEliteAggregate ConstraintKind = "elite-aggregate"
)

// Term is one (column, coefficient) pair of a linear constraint row.
type Term struct {
	Col  int
	Coef float64
}

// ConstraintRecord is one named linear constraint plus the metadata the
// relaxation controller works from. Records are append-only: relaxation
// flips Active to false rather than deleting anything, and the solver
// adapter rebuilds its row set from the active subset on every re-solve.
// Structural records are never removable. Rank-1 elite records carry
// Removable=true so they stay inspectable, but the controller never selects
// rank 1 for removal.
type ConstraintRecord struct {
	Name      string
	Kind      ConstraintKind
	Category  types.Category
	Rank      int
	Removable bool
	Active    bool
	Terms     []Term
	Lower     float64
	Upper     float64
}

// ActiveRecords returns the records currently participating in the model.
func ActiveRecords(records []ConstraintRecord) []ConstraintRecord {
	active := make([]ConstraintRecord, 0, len(records))
	for _, r := range records {
		if r.Active {
			active = append(active, r)
		}
	}
	return active
}
