package domain

import "github.com/shopspring/decimal"

// TemplateComponent is one product slot in a restock template. Weight fixes
// the component's relative quantity and its share of the aggregate cost.
type TemplateComponent struct {
	ProductID string `json:"productID"`
	Weight    int64  `json:"weight"`
	Position  int    `json:"position"`
}

// RestockTemplate is a named, reusable box composition: restocking one
// "box" expands to weight×multiplier units per component, with the declared
// aggregate cost distributed across them by weight.
type RestockTemplate struct {
	TemplateID            string              `json:"templateID"`
	Name                  string              `json:"name"`
	DeclaredAggregateCost decimal.Decimal     `json:"declaredAggregateCost"`
	Components            []TemplateComponent `json:"components"`
	AuditFields
}
