package optimizer

import (
	"context"

	"github.com/sirupsen/logrus"
)

// relaxationController drives the solve / relax loop. On infeasibility it
// deactivates the elite records of one rank at a time, from the configured
// tier depth down to rank 2, re-solving after each removal. Rank 1 is never
// a removal candidate, removed ranks stay removed for the remainder of the
// solve, and the steps are strictly sequential: each iteration's constraint
// set is defined by the previous iteration's result, so this loop is never
// parallelized.
type relaxationController struct {
	model  *PortfolioModel
	solver Solver
	depth  int
	log    *logrus.Entry

	trace []int
}

func newRelaxationController(model *PortfolioModel, solver Solver, depth int, log *logrus.Entry) *relaxationController {
	return &relaxationController{
		model:  model,
		solver: solver,
		depth:  depth,
		log:    log,
	}
}

// Trace returns the ranks relaxed so far, in removal order.
func (rc *relaxationController) Trace() []int {
	return rc.trace
}

// Run executes the state machine. A nil result with a nil error is the
// Exhausted terminal state: every permitted relaxation level failed.
func (rc *relaxationController) Run(ctx context.Context) (*SolveResult, error) {
	result, err := rc.solveOnce(ctx)
	if err != nil {
		return nil, err
	}
	if result.Status == StatusOptimal {
		return result, nil
	}

	for rank := rc.depth; rank >= 2; rank-- {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		removed := rc.deactivateRank(rank)
		rc.trace = append(rc.trace, rank)

		result, err = rc.solveOnce(ctx)
		if err != nil {
			return nil, err
		}

		rc.log.WithFields(logrus.Fields{
			"rank_removed":    rank,
			"records_removed": removed,
			"solver_status":   result.Status.String(),
		}).Info("Relaxation step completed")

		if result.Status == StatusOptimal {
			return result, nil
		}
	}

	rc.log.WithField("relaxation_trace", rc.trace).Warn("All relaxation levels exhausted")
	return nil, nil
}

func (rc *relaxationController) solveOnce(ctx context.Context) (*SolveResult, error) {
	result, err := rc.solver.Solve(ctx, rc.model)
	if err != nil {
		return nil, err
	}
	if result.Status == StatusTimeout {
		// Logged distinctly so operators can tell capacity problems from
		// true infeasibility; control flow treats both the same.
		rc.log.Warn("Solver timed out; treating as infeasible at this level")
	}
	return result, nil
}

// deactivateRank flips off every removable elite record at the given rank
// across all categories and returns how many records it touched. Rank 1 is
// rejected outright.
func (rc *relaxationController) deactivateRank(rank int) int {
	if rank < 2 {
		return 0
	}
	removed := 0
	for i := range rc.model.Records {
		record := &rc.model.Records[i]
		if !record.Active || !record.Removable || record.Rank != rank {
			continue
		}
		if record.Kind != KindElitePerEntity && record.Kind != KindEliteAggregate {
			continue
		}
		record.Active = false
		removed++
	}
	return removed
}
