package optimizer

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/portfolio-engine/internal/elite"
	"github.com/stitts-dev/portfolio-engine/internal/types"
	"github.com/stitts-dev/portfolio-engine/pkg/config"
	"github.com/stitts-dev/portfolio-engine/pkg/logger"
)

// Engine runs portfolio solves. It holds no mutable state: every solve owns
// its own model, so independent solves may run concurrently with no
// coordination. The caller decides whether to run Solve on its own
// goroutine; the engine itself is structurally synchronous.
type Engine struct {
	cfg    *config.Config
	solver Solver
}

// Option configures an Engine.
type Option func(*Engine)

// WithSolver swaps the numeric solver, primarily for tests.
func WithSolver(s Solver) Option {
	return func(e *Engine) {
		e.solver = s
	}
}

// New creates an engine from the given configuration. A nil config uses the
// defaults.
func New(cfg *config.Config, opts ...Option) *Engine {
	if cfg == nil {
		cfg = config.Default()
	}
	e := &Engine{cfg: cfg}
	for _, opt := range opts {
		opt(e)
	}
	if e.solver == nil {
		e.solver = NewHighsSolver(cfg.SolverTimeout())
	}
	return e
}

// Solve produces the portfolio for one pool snapshot. A nil target table
// falls back to the default appearance targets; a nil aggregates slice falls
// back to the default aggregate targets (pass an empty slice to disable
// them).
//
// Validation and invariant violations surface as typed errors; infeasibility
// is absorbed by the relaxation loop; exhaustion degrades to fallback output
// with Provenance set accordingly.
func (e *Engine) Solve(ctx context.Context, entities []types.Entity, settings types.Settings, table elite.TargetTable, aggregates []elite.AggregateTarget) (*types.PortfolioSolution, error) {
	solveID := uuid.New().String()
	log := logger.WithSolveContext(solveID, settings.LineupCount)

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if settings.LineupCount > e.cfg.MaxLineups {
		return nil, &types.ValidationError{
			Field:  "lineup_count",
			Reason: fmt.Sprintf("%d exceeds configured maximum %d", settings.LineupCount, e.cfg.MaxLineups),
		}
	}
	if table == nil {
		table = elite.DefaultTargetTable()
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	if aggregates == nil {
		aggregates = elite.DefaultAggregateTargets()
	}

	log.WithFields(logrus.Fields{
		"total_entities": len(entities),
		"salary_cap":     settings.Shape.SalaryCap,
		"tier_depth":     e.cfg.TierDepth,
	}).Info("Starting portfolio solve")

	tiers := elite.BuildTiers(entities, e.cfg.TierDepth)

	model, err := BuildPortfolioModel(entities, settings, e.cfg.SalaryBonusWeight, log)
	if err != nil {
		return nil, err
	}
	GenerateEliteConstraints(model, tiers, table, aggregates, log)

	controller := newRelaxationController(model, e.solver, e.cfg.TierDepth, log)
	result, err := controller.Run(ctx)
	if err != nil {
		return nil, err
	}

	if result != nil {
		lineups, err := ExtractLineups(model, result.Assignment)
		if err != nil {
			return nil, err
		}
		log.WithFields(logrus.Fields{
			"lineups":          len(lineups),
			"relaxation_trace": controller.Trace(),
			"objective":        result.Objective,
		}).Info("Portfolio solve completed")
		return &types.PortfolioSolution{
			SolveID:         solveID,
			Lineups:         lineups,
			RelaxationTrace: normalizeTrace(controller.Trace()),
			Provenance:      types.ProvenancePortfolio,
			Exposure:        BuildExposureReport(lineups),
		}, nil
	}

	log.Warn("Portfolio model exhausted; generating fallback lineups")
	fallback := newFallbackGenerator(e.solver, e.cfg.SalaryBonusWeight, e.cfg.FallbackMaxExposure, log)
	lineups, err := fallback.Generate(ctx, entities, settings)
	if err != nil {
		return nil, err
	}
	if len(lineups) == 0 {
		return nil, &types.SolveFailedError{
			Reason: "all relaxation levels infeasible and fallback produced zero lineups",
		}
	}

	log.WithFields(logrus.Fields{
		"lineups":   len(lineups),
		"requested": settings.LineupCount,
	}).Warn("Returning fallback lineups")
	return &types.PortfolioSolution{
		SolveID:         solveID,
		Lineups:         lineups,
		RelaxationTrace: normalizeTrace(controller.Trace()),
		Provenance:      types.ProvenanceFallback,
		Exposure:        BuildExposureReport(lineups),
	}, nil
}

// normalizeTrace keeps the trace non-nil so consumers always see it in the
// output contract.
func normalizeTrace(trace []int) []int {
	if trace == nil {
		return []int{}
	}
	return trace
}
