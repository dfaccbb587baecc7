package optimizer

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/portfolio-engine/internal/elite"
	"github.com/stitts-dev/portfolio-engine/internal/types"
)

// GenerateEliteConstraints attaches the appearance constraints derived from
// the elite tiers and target table to the model. Every record is removable;
// the relaxation controller is what guarantees rank 1 is never actually
// removed, so rank-1 records stay inspectable like any other.
//
// Per elite entity at rank r two records are produced: a portfolio-wide
// appearance minimum and maximum. Per aggregate target one record sums the
// appearances of the category's top-M entities; its rank is M so it relaxes
// alongside that depth.
func GenerateEliteConstraints(m *PortfolioModel, tiers map[types.Category]elite.Tier, table elite.TargetTable, aggregates []elite.AggregateTarget, log *logrus.Entry) {
	clamped := table.Clamp(m.NumLineups)

	perEntity := 0
	for _, tier := range tiers {
		for rank := 1; rank <= tier.Depth(); rank++ {
			bound, ok := clamped.Bound(tier.Category, rank)
			if !ok {
				continue
			}
			entity, _ := tier.AtRank(rank)
			idx, ok := m.EntityIndex(entity.ID)
			if !ok {
				continue
			}
			terms := appearanceTerms(m, idx)
			m.Records = append(m.Records, ConstraintRecord{
				Name:      fmt.Sprintf("elite_min_%s_r%d_%s", tier.Category, rank, entity.ID),
				Kind:      KindElitePerEntity,
				Category:  tier.Category,
				Rank:      rank,
				Removable: true,
				Active:    true,
				Terms:     terms,
				Lower:     float64(bound.MinAppearances),
				Upper:     math.Inf(1),
			})
			m.Records = append(m.Records, ConstraintRecord{
				Name:      fmt.Sprintf("elite_max_%s_r%d_%s", tier.Category, rank, entity.ID),
				Kind:      KindElitePerEntity,
				Category:  tier.Category,
				Rank:      rank,
				Removable: true,
				Active:    true,
				Terms:     terms,
				Lower:     0,
				Upper:     float64(bound.MaxAppearances),
			})
			perEntity += 2
		}
	}

	aggregateCount := 0
	for _, agg := range aggregates {
		tier, ok := tiers[agg.Category]
		if !ok || tier.Depth() == 0 {
			continue
		}
		var terms []Term
		for _, entity := range tier.TopM(agg.TopM) {
			idx, ok := m.EntityIndex(entity.ID)
			if !ok {
				continue
			}
			terms = append(terms, appearanceTerms(m, idx)...)
		}
		if len(terms) == 0 {
			continue
		}
		minTotal := agg.MinTotal
		if ceiling := m.NumLineups * m.Settings.Shape.CategorySlotInstances(agg.Category); minTotal > ceiling {
			minTotal = ceiling
		}
		m.Records = append(m.Records, ConstraintRecord{
			Name:      fmt.Sprintf("elite_agg_%s_top%d", agg.Category, agg.TopM),
			Kind:      KindEliteAggregate,
			Category:  agg.Category,
			Rank:      agg.TopM,
			Removable: true,
			Active:    true,
			Terms:     terms,
			Lower:     float64(minTotal),
			Upper:     math.Inf(1),
		})
		aggregateCount++
	}

	log.WithFields(logrus.Fields{
		"per_entity_records": perEntity,
		"aggregate_records":  aggregateCount,
		"categories":         len(tiers),
	}).Debug("Elite constraints generated")
}

// appearanceTerms builds the portfolio appearance sum for one entity.
func appearanceTerms(m *PortfolioModel, entityIdx int) []Term {
	cols := m.EntityColumns(entityIdx)
	terms := make([]Term, len(cols))
	for i, col := range cols {
		terms[i] = Term{Col: col, Coef: 1}
	}
	return terms
}
