package optimizer

import "context"

// SolveStatus is the outcome of one solver invocation.
type SolveStatus int

const (
	StatusOptimal SolveStatus = iota
	StatusInfeasible
	StatusTimeout
)

func (s SolveStatus) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusInfeasible:
		return "infeasible"
	case StatusTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// SolveResult carries a solver's assignment for the model's columns.
// Assignment is only populated for StatusOptimal.
type SolveResult struct {
	Status     SolveStatus
	Assignment []float64
	Objective  float64
}

// Solver runs one numeric solve over the model's active constraint records.
// Implementations must be safe for use from concurrent solves, each of which
// owns its own model instance.
type Solver interface {
	Solve(ctx context.Context, m *PortfolioModel) (*SolveResult, error)
}
