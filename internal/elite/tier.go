package elite

import (
	"sort"

	"github.com/stitts-dev/portfolio-engine/internal/types"
)

// Tier is the ordered top-K entities of one category by secondary ranking
// value. Index 0 is rank 1.
type Tier struct {
	Category types.Category
	Entities []types.Entity
}

// Depth returns how many ranks the tier actually holds. Categories with
// fewer than K entities simply produce shorter tiers.
func (t Tier) Depth() int {
	return len(t.Entities)
}

// AtRank returns the entity at the given 1-based rank.
func (t Tier) AtRank(rank int) (types.Entity, bool) {
	if rank < 1 || rank > len(t.Entities) {
		return types.Entity{}, false
	}
	return t.Entities[rank-1], true
}

// TopM returns the first m entities of the tier (fewer if the tier is
// shorter).
func (t Tier) TopM(m int) []types.Entity {
	if m > len(t.Entities) {
		m = len(t.Entities)
	}
	return t.Entities[:m]
}

// BuildTiers ranks the pool per category by secondary ranking value,
// descending, keeping the top `depth` entities of each. Ties break by lower
// cost first, then entity ID, so repeated solves over the same pool produce
// identical tiers.
func BuildTiers(entities []types.Entity, depth int) map[types.Category]Tier {
	byCategory := make(map[types.Category][]types.Entity)
	for _, e := range entities {
		byCategory[e.Category] = append(byCategory[e.Category], e)
	}

	tiers := make(map[types.Category]Tier, len(byCategory))
	for cat, pool := range byCategory {
		sort.Slice(pool, func(i, j int) bool {
			if pool[i].SecondaryRank != pool[j].SecondaryRank {
				return pool[i].SecondaryRank > pool[j].SecondaryRank
			}
			if pool[i].Cost != pool[j].Cost {
				return pool[i].Cost < pool[j].Cost
			}
			return pool[i].ID < pool[j].ID
		})
		if len(pool) > depth {
			pool = pool[:depth]
		}
		tiers[cat] = Tier{Category: cat, Entities: pool}
	}
	return tiers
}
