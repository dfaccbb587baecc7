package elite

import (
	"fmt"

	"github.com/stitts-dev/portfolio-engine/internal/types"
)

// TargetBound is the (min, max) appearance count for one elite rank across
// the portfolio.
type TargetBound struct {
	MinAppearances int `json:"min_appearances"`
	MaxAppearances int `json:"max_appearances"`
}

// TargetTable maps (category, rank 1..K) to appearance bounds. The table is
// explicit configuration passed into the engine, never ambient global state,
// so alternate tables can be substituted without touching process-wide state.
type TargetTable map[types.Category]map[int]TargetBound

// AggregateTarget requires the top-M entities of a category to together fill
// at least MinTotal of the category's slot instances across the portfolio,
// counting flex occurrences.
type AggregateTarget struct {
	Category types.Category `json:"category"`
	TopM     int            `json:"top_m"`
	MinTotal int            `json:"min_total"`
}

// Validate checks table sanity: ranks positive, min <= max, nothing negative.
// Targets are empirically derived, so monotonicity across ranks is NOT
// required or checked.
func (t TargetTable) Validate() error {
	for cat, ranks := range t {
		for rank, bound := range ranks {
			if rank < 1 {
				return &types.ValidationError{
					Field:  "target_table",
					Reason: fmt.Sprintf("%s: rank %d out of range", cat, rank),
				}
			}
			if bound.MinAppearances < 0 || bound.MinAppearances > bound.MaxAppearances {
				return &types.ValidationError{
					Field:  "target_table",
					Reason: fmt.Sprintf("%s rank %d: bounds [%d, %d] invalid", cat, rank, bound.MinAppearances, bound.MaxAppearances),
				}
			}
		}
	}
	return nil
}

// Clamp returns a copy of the table with every bound limited to [0, n], so a
// table tuned for large portfolios stays valid for small lineup counts.
func (t TargetTable) Clamp(n int) TargetTable {
	clamped := make(TargetTable, len(t))
	for cat, ranks := range t {
		clamped[cat] = make(map[int]TargetBound, len(ranks))
		for rank, bound := range ranks {
			min := bound.MinAppearances
			max := bound.MaxAppearances
			if min > n {
				min = n
			}
			if max > n {
				max = n
			}
			clamped[cat][rank] = TargetBound{MinAppearances: min, MaxAppearances: max}
		}
	}
	return clamped
}

// Bound returns the appearance bound for (category, rank) and whether one is
// configured.
func (t TargetTable) Bound(cat types.Category, rank int) (TargetBound, bool) {
	ranks, ok := t[cat]
	if !ok {
		return TargetBound{}, false
	}
	bound, ok := ranks[rank]
	return bound, ok
}

// DefaultTargetTable returns the appearance targets derived from historical
// contest outcomes, expressed for a nominal 20-lineup portfolio. The numbers
// are a product decision carried as configuration; Clamp adapts them to the
// actual lineup count.
func DefaultTargetTable() TargetTable {
	return TargetTable{
		types.CategoryQB: {
			1: {12, 18}, 2: {8, 14}, 3: {6, 12}, 4: {5, 10}, 5: {4, 9},
			6: {3, 8}, 7: {2, 7}, 8: {2, 6}, 9: {1, 6}, 10: {1, 5},
			11: {0, 5}, 12: {0, 4}, 13: {0, 4}, 14: {0, 3}, 15: {0, 3},
		},
		types.CategoryRB: {
			1: {13, 19}, 2: {10, 16}, 3: {8, 14}, 4: {7, 13}, 5: {5, 11},
			6: {5, 10}, 7: {4, 9}, 8: {3, 8}, 9: {2, 7}, 10: {2, 7},
			11: {1, 6}, 12: {1, 5}, 13: {0, 5}, 14: {0, 4}, 15: {0, 4},
		},
		types.CategoryWR: {
			1: {12, 18}, 2: {10, 16}, 3: {9, 15}, 4: {7, 13}, 5: {6, 12},
			6: {5, 11}, 7: {4, 10}, 8: {4, 9}, 9: {3, 8}, 10: {2, 7},
			11: {2, 6}, 12: {1, 6}, 13: {1, 5}, 14: {0, 5}, 15: {0, 4},
		},
		types.CategoryTE: {
			1: {11, 17}, 2: {7, 13}, 3: {5, 11}, 4: {4, 9}, 5: {3, 8},
			6: {2, 7}, 7: {2, 6}, 8: {1, 5}, 9: {1, 5}, 10: {0, 4},
			11: {0, 4}, 12: {0, 3}, 13: {0, 3}, 14: {0, 2}, 15: {0, 2},
		},
		types.CategoryDST: {
			1: {10, 16}, 2: {7, 13}, 3: {5, 11}, 4: {4, 9}, 5: {3, 8},
			6: {2, 7}, 7: {2, 6}, 8: {1, 5}, 9: {1, 4}, 10: {0, 4},
			11: {0, 3}, 12: {0, 3}, 13: {0, 2}, 14: {0, 2}, 15: {0, 2},
		},
	}
}

// DefaultAggregateTargets returns the portfolio-wide aggregates applied when
// the caller supplies none, again for a nominal 20-lineup portfolio.
func DefaultAggregateTargets() []AggregateTarget {
	return []AggregateTarget{
		{Category: types.CategoryRB, TopM: 4, MinTotal: 24},
		{Category: types.CategoryWR, TopM: 5, MinTotal: 32},
	}
}
