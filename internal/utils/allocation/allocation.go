package allocation

import "github.com/shopspring/decimal"

// Component is one weighted slot of a cost allocation.
type Component struct {
	ID     string
	Weight int64
}

// Allocate distributes aggregateCost across components in proportion to their
// weights: cost_i = weight_i * (aggregateCost / Σweight). Full decimal
// precision is kept here; rounding to currency units happens only at the
// persistence boundary via RoundToCurrency. A zero total weight yields zero
// cost for every component, which is a valid empty allocation, not an error.
func Allocate(aggregateCost decimal.Decimal, components []Component) map[string]decimal.Decimal {
	costs := make(map[string]decimal.Decimal, len(components))

	totalWeight := int64(0)
	for _, c := range components {
		totalWeight += c.Weight
	}
	if totalWeight == 0 {
		for _, c := range components {
			costs[c.ID] = decimal.Zero
		}
		return costs
	}

	unitCost := aggregateCost.Div(decimal.NewFromInt(totalWeight))
	for _, c := range components {
		costs[c.ID] = costs[c.ID].Add(unitCost.Mul(decimal.NewFromInt(c.Weight)))
	}
	return costs
}

// RoundToCurrency rounds an allocated cost to minor currency units using
// banker's rounding (round half to even). After rounding, the per-line sum
// may differ from the aggregate cost by up to one minor unit per line; that
// discrepancy is expected and accepted.
func RoundToCurrency(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(2)
}
