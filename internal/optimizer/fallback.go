package optimizer

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/portfolio-engine/internal/types"
)

// fallbackGenerator produces best-effort lineups when no relaxation level
// yields a feasible portfolio. Each lineup is an independent single-lineup
// solve under structural constraints and per-entity appearance caps derived
// from the exposure settings; elite constraints are never applied, and
// pairing rules are dropped since reaching this path means the joint model
// was unsatisfiable with them. Exposure caps alone bound repetition.
type fallbackGenerator struct {
	solver      Solver
	bonusWeight float64
	maxExposure float64
	log         *logrus.Entry
}

func newFallbackGenerator(solver Solver, bonusWeight, maxExposure float64, log *logrus.Entry) *fallbackGenerator {
	return &fallbackGenerator{
		solver:      solver,
		bonusWeight: bonusWeight,
		maxExposure: maxExposure,
		log:         log,
	}
}

// Generate returns as many lineups as could be solved, from zero to the
// requested count. Partial output is reported as-is, never padded.
func (fg *fallbackGenerator) Generate(ctx context.Context, entities []types.Entity, settings types.Settings) ([]types.LineupResult, error) {
	n := settings.LineupCount

	caps := make(map[string]int, len(entities))
	for _, e := range entities {
		limit := fg.maxExposure
		if bound, ok := settings.ExposureLimits[e.ID]; ok {
			limit = bound.Max
		}
		caps[e.ID] = int(math.Ceil(limit * float64(n)))
	}

	single := settings
	single.LineupCount = 1
	single.PairingRules = nil

	counts := make(map[string]int)
	lineups := make([]types.LineupResult, 0, n)
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return lineups, err
		}

		model, err := BuildPortfolioModel(entities, single, fg.bonusWeight, fg.log)
		if err != nil {
			return lineups, err
		}
		fg.addExposureCaps(model, counts, caps)

		result, err := fg.solver.Solve(ctx, model)
		if err != nil {
			return lineups, err
		}
		if result.Status != StatusOptimal {
			fg.log.WithFields(logrus.Fields{
				"lineups_built": len(lineups),
				"solver_status": result.Status.String(),
			}).Warn("Fallback solve stopped early")
			break
		}

		extracted, err := ExtractLineups(model, result.Assignment)
		if err != nil {
			return lineups, err
		}
		lineup := extracted[0]
		lineup.ID = fmt.Sprintf("lineup_%d_%s", len(lineups)+1, uuid.New().String()[:8])
		lineups = append(lineups, lineup)

		for _, sa := range lineup.Slots {
			counts[sa.Entity.ID]++
		}
	}

	return lineups, nil
}

// addExposureCaps pins entities that have used up their allowance to zero
// for this single-lineup model.
func (fg *fallbackGenerator) addExposureCaps(model *PortfolioModel, counts, caps map[string]int) {
	for idx, e := range model.Entities {
		if counts[e.ID] < caps[e.ID] {
			continue
		}
		model.Records = append(model.Records, ConstraintRecord{
			Name:   fmt.Sprintf("exposure_cap_%s", e.ID),
			Kind:   KindStructural,
			Active: true,
			Terms:  []Term{{Col: model.Col(0, idx), Coef: 1}},
			Lower:  0,
			Upper:  0,
		})
	}
}
