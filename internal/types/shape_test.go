package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRosterShape(t *testing.T) {
	shape := DefaultRosterShape()

	assert.Equal(t, 9, shape.TotalSlots())
	assert.Equal(t, 47500, shape.SalaryFloor)
	assert.Equal(t, 50000, shape.SalaryCap)

	assert.Equal(t, []Category{CategoryQB, CategoryRB, CategoryWR, CategoryTE, CategoryDST}, shape.Categories())
}

func TestRosterShape_DedicatedAndFlexCounts(t *testing.T) {
	shape := DefaultRosterShape()

	tests := []struct {
		category  Category
		dedicated int
		flex      int
	}{
		{CategoryQB, 1, 0},
		{CategoryRB, 2, 1},
		{CategoryWR, 3, 1},
		{CategoryTE, 1, 1},
		{CategoryDST, 1, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.dedicated, shape.DedicatedCount(tt.category), "dedicated %s", tt.category)
		assert.Equal(t, tt.flex, shape.FlexCapacity(tt.category), "flex %s", tt.category)
		assert.Equal(t, tt.dedicated+tt.flex, shape.CategorySlotInstances(tt.category), "instances %s", tt.category)
	}
}

func TestRosterSlot_FlexAndAllows(t *testing.T) {
	shape := DefaultRosterShape()

	var flex RosterSlot
	for _, slot := range shape.Slots {
		if slot.Name == "FLEX" {
			flex = slot
		}
	}
	require.NotEmpty(t, flex.Name)

	assert.True(t, flex.IsFlex())
	assert.True(t, flex.Allows(CategoryRB))
	assert.True(t, flex.Allows(CategoryWR))
	assert.True(t, flex.Allows(CategoryTE))
	assert.False(t, flex.Allows(CategoryQB))
	assert.False(t, flex.Allows(CategoryDST))

	qb := shape.Slots[0]
	assert.False(t, qb.IsFlex())
	assert.True(t, qb.Allows(CategoryQB))
}

func TestRosterShape_SlotsByFillOrder(t *testing.T) {
	shape := DefaultRosterShape()
	ordered := shape.SlotsByFillOrder()
	require.Len(t, ordered, 9)

	// All dedicated slots come before any flex slot.
	names := make([]string, len(ordered))
	for i, slot := range ordered {
		names[i] = slot.Name
	}
	assert.Equal(t, []string{"QB", "RB1", "RB2", "WR1", "WR2", "WR3", "TE", "DST", "FLEX"}, names)

	// The shape itself is untouched.
	assert.Equal(t, "FLEX", shape.Slots[7].Name)
	assert.Equal(t, "DST", shape.Slots[8].Name)
}
