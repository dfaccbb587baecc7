package optimizer

import (
	"context"
	"fmt"
	"time"

	"github.com/lanl/highs"
)

// highsSolver adapts the portfolio model onto the HiGHS integer-programming
// engine. Every call rebuilds a fresh highs.Model from the active constraint
// records, so relaxation steps never mutate live solver state.
type highsSolver struct {
	timeout time.Duration
}

// NewHighsSolver returns the production solver with a wall-clock timeout
// wrapping each invocation.
func NewHighsSolver(timeout time.Duration) Solver {
	return &highsSolver{timeout: timeout}
}

func (s *highsSolver) Solve(ctx context.Context, m *PortfolioModel) (*SolveResult, error) {
	model := buildHighsModel(m)

	resultCh := make(chan *SolveResult, 1)
	errCh := make(chan error, 1)
	go func() {
		sol, err := model.Solve()
		if err != nil {
			errCh <- fmt.Errorf("highs solve: %w", err)
			return
		}
		switch sol.Status {
		case highs.Optimal:
			resultCh <- &SolveResult{
				Status:     StatusOptimal,
				Assignment: sol.ColumnPrimal,
				// The model is minimized with negated costs; flip back.
				Objective: -sol.Objective,
			}
		default:
			resultCh <- &SolveResult{Status: StatusInfeasible}
		}
	}()

	timer := time.NewTimer(s.timeout)
	defer timer.Stop()

	// Cancellation and timeout are best-effort: the in-flight HiGHS call is
	// left to finish on its goroutine rather than being interrupted, so
	// solver internals are never corrupted.
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
		return &SolveResult{Status: StatusTimeout}, nil
	case err := <-errCh:
		return nil, err
	case result := <-resultCh:
		return result, nil
	}
}

// buildHighsModel lowers the active record subset into HiGHS matrix form.
// HiGHS minimizes, so the maximize-sense objective is negated.
func buildHighsModel(m *PortfolioModel) *highs.Model {
	numCols := m.NumCols()

	model := new(highs.Model)
	model.VarTypes = make([]highs.VariableType, numCols)
	model.ColLower = make([]float64, numCols)
	model.ColUpper = make([]float64, numCols)
	model.ColCosts = make([]float64, numCols)
	for col := 0; col < numCols; col++ {
		model.VarTypes[col] = highs.IntegerType
		model.ColUpper[col] = 1
		model.ColCosts[col] = -m.Objective[col]
	}

	for row, record := range ActiveRecords(m.Records) {
		for _, term := range record.Terms {
			if term.Coef == 0 {
				continue
			}
			model.ConstMatrix = append(model.ConstMatrix, highs.Nonzero{
				Row: row,
				Col: term.Col,
				Val: term.Coef,
			})
		}
		model.RowLower = append(model.RowLower, record.Lower)
		model.RowUpper = append(model.RowUpper, record.Upper)
	}

	return model
}
