package allocation_test

import (
	"testing"

	"github.com/posledger/pos_ledger_app/internal/utils/allocation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocate_ProportionalSplit(t *testing.T) {
	// Box of {A: weight 2, B: weight 1} restocked with multiplier 3 and an
	// aggregate cost of 9: total weight 9, unit cost 1.
	costs := allocation.Allocate(decimal.NewFromInt(9), []allocation.Component{
		{ID: "A", Weight: 6},
		{ID: "B", Weight: 3},
	})

	require.Len(t, costs, 2)
	assert.True(t, costs["A"].Equal(decimal.NewFromInt(6)), "A got %s", costs["A"])
	assert.True(t, costs["B"].Equal(decimal.NewFromInt(3)), "B got %s", costs["B"])
}

func TestAllocate_ZeroTotalWeightYieldsZeroCosts(t *testing.T) {
	costs := allocation.Allocate(decimal.NewFromInt(100), []allocation.Component{
		{ID: "A", Weight: 0},
		{ID: "B", Weight: 0},
	})

	require.Len(t, costs, 2)
	assert.True(t, costs["A"].IsZero())
	assert.True(t, costs["B"].IsZero())
}

func TestAllocate_RepeatedComponentAccumulates(t *testing.T) {
	costs := allocation.Allocate(decimal.NewFromInt(10), []allocation.Component{
		{ID: "A", Weight: 1},
		{ID: "A", Weight: 1},
	})

	require.Len(t, costs, 1)
	assert.True(t, costs["A"].Equal(decimal.NewFromInt(10)))
}

func TestAllocate_RoundedSumStaysWithinOneMinorUnitPerComponent(t *testing.T) {
	aggregate := decimal.NewFromInt(10)
	components := []allocation.Component{
		{ID: "A", Weight: 1},
		{ID: "B", Weight: 1},
		{ID: "C", Weight: 1},
	}

	costs := allocation.Allocate(aggregate, components)

	sum := decimal.Zero
	for _, c := range components {
		cost := costs[c.ID]
		assert.False(t, cost.IsNegative())
		sum = sum.Add(allocation.RoundToCurrency(cost))
	}

	tolerance := decimal.New(int64(len(components)), -2) // one minor unit per component
	assert.True(t, sum.Sub(aggregate).Abs().LessThanOrEqual(tolerance),
		"rounded sum %s drifted more than %s from %s", sum, tolerance, aggregate)
}

func TestRoundToCurrency_BankersRounding(t *testing.T) {
	assert.Equal(t, "2.22", allocation.RoundToCurrency(decimal.RequireFromString("2.225")).StringFixed(2))
	assert.Equal(t, "2.24", allocation.RoundToCurrency(decimal.RequireFromString("2.235")).StringFixed(2))
}
