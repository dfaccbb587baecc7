package types

// Category represents the role an entity can fill in a roster
type Category string

const (
	CategoryQB  Category = "QB"
	CategoryRB  Category = "RB"
	CategoryWR  Category = "WR"
	CategoryTE  Category = "TE"
	CategoryDST Category = "DST"
)

// categoryPriority defines the deterministic fill order used when a selected
// entity could be charged to more than one slot. Lower value fills first.
var categoryPriority = map[Category]int{
	CategoryQB:  1,
	CategoryRB:  2,
	CategoryWR:  3,
	CategoryTE:  4,
	CategoryDST: 5,
}

// CategoryPriority returns the fill order for a category. Unknown categories
// sort after all known ones.
func CategoryPriority(c Category) int {
	if p, ok := categoryPriority[c]; ok {
		return p
	}
	return len(categoryPriority) + 1
}

// Entity is one scored candidate from the pool supplier. Entities are
// immutable for the life of a solve.
type Entity struct {
	ID            string   `json:"id"`
	Category      Category `json:"category"`
	Cost          int      `json:"cost"`
	Fitness       float64  `json:"fitness"`
	SecondaryRank float64  `json:"secondary_rank_value"`
	// Team and Game may be empty only for categories with no team
	// affiliation concept (e.g. a combined defense unit is its own team,
	// but an individual prop entity may have neither).
	Team string `json:"team_id"`
	Game string `json:"game_id"`
	// Ownership is a display-only field carried through to results when the
	// score provider supplies it. It never affects the model.
	Ownership float64 `json:"ownership,omitempty"`
}
