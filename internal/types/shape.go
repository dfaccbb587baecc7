package types

import "sort"

// RosterSlot represents one slot a lineup must fill
type RosterSlot struct {
	Name              string     `json:"name"`
	AllowedCategories []Category `json:"allowed_categories"`
	Priority          int        `json:"priority"` // Fill order (1 = first)
}

// IsFlex reports whether the slot accepts more than one category.
func (s RosterSlot) IsFlex() bool {
	return len(s.AllowedCategories) > 1
}

// Allows reports whether the slot accepts the given category.
func (s RosterSlot) Allows(c Category) bool {
	for _, allowed := range s.AllowedCategories {
		if allowed == c {
			return true
		}
	}
	return false
}

// RosterShape is the fixed multiset of slots a lineup must fill plus the
// total-cost budget range.
type RosterShape struct {
	Slots       []RosterSlot `json:"slots"`
	SalaryFloor int          `json:"salary_floor"`
	SalaryCap   int          `json:"salary_cap"`
}

// DefaultRosterShape returns the classic NFL shape: QB, 2xRB, 3xWR, TE,
// FLEX (RB/WR/TE), DST, with a $50k cap and a 95% floor.
func DefaultRosterShape() RosterShape {
	return RosterShape{
		Slots: []RosterSlot{
			{Name: "QB", AllowedCategories: []Category{CategoryQB}, Priority: 1},
			{Name: "RB1", AllowedCategories: []Category{CategoryRB}, Priority: 2},
			{Name: "RB2", AllowedCategories: []Category{CategoryRB}, Priority: 3},
			{Name: "WR1", AllowedCategories: []Category{CategoryWR}, Priority: 4},
			{Name: "WR2", AllowedCategories: []Category{CategoryWR}, Priority: 5},
			{Name: "WR3", AllowedCategories: []Category{CategoryWR}, Priority: 6},
			{Name: "TE", AllowedCategories: []Category{CategoryTE}, Priority: 7},
			{Name: "FLEX", AllowedCategories: []Category{CategoryRB, CategoryWR, CategoryTE}, Priority: 8},
			{Name: "DST", AllowedCategories: []Category{CategoryDST}, Priority: 9},
		},
		SalaryFloor: 47500,
		SalaryCap:   50000,
	}
}

// TotalSlots returns the number of slots in the shape.
func (rs RosterShape) TotalSlots() int {
	return len(rs.Slots)
}

// DedicatedCount returns how many single-category slots require the given
// category.
func (rs RosterShape) DedicatedCount(c Category) int {
	count := 0
	for _, slot := range rs.Slots {
		if !slot.IsFlex() && slot.Allows(c) {
			count++
		}
	}
	return count
}

// FlexCapacity returns how many flex slots could absorb the given category.
func (rs RosterShape) FlexCapacity(c Category) int {
	count := 0
	for _, slot := range rs.Slots {
		if slot.IsFlex() && slot.Allows(c) {
			count++
		}
	}
	return count
}

// CategorySlotInstances returns the total number of slot instances a category
// can occupy, counting flex occurrences. An entity charged to a categorical
// aggregate counts whether it fills a dedicated slot or flex.
func (rs RosterShape) CategorySlotInstances(c Category) int {
	return rs.DedicatedCount(c) + rs.FlexCapacity(c)
}

// Categories returns the distinct categories the shape can hold, in priority
// order.
func (rs RosterShape) Categories() []Category {
	seen := make(map[Category]bool)
	var cats []Category
	for _, slot := range rs.Slots {
		for _, c := range slot.AllowedCategories {
			if !seen[c] {
				seen[c] = true
				cats = append(cats, c)
			}
		}
	}
	sort.Slice(cats, func(i, j int) bool {
		return CategoryPriority(cats[i]) < CategoryPriority(cats[j])
	})
	return cats
}

// SlotsByFillOrder returns the shape's slots sorted dedicated-first, then by
// priority. This is the deterministic order used when assigning extracted
// entities to slots.
func (rs RosterShape) SlotsByFillOrder() []RosterSlot {
	ordered := make([]RosterSlot, len(rs.Slots))
	copy(ordered, rs.Slots)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].IsFlex() != ordered[j].IsFlex() {
			return !ordered[i].IsFlex()
		}
		return ordered[i].Priority < ordered[j].Priority
	})
	return ordered
}
