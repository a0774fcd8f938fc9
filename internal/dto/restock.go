package dto

import (
	"github.com/shopspring/decimal"

	"github.com/posledger/pos_ledger_app/internal/core/domain"
)

// TemplateEntryRequest restocks one template (a "box") multiplier times for
// the given aggregate cost.
type TemplateEntryRequest struct {
	TemplateID    string          `json:"templateID" binding:"required"`
	Multiplier    int64           `json:"multiplier" binding:"required,gt=0"`
	AggregateCost decimal.Decimal `json:"aggregateCost"`
}

// RawEntryRequest restocks one product directly. UnitCost may be omitted to
// use the product's recorded cost. Zero quantities are skipped silently.
type RawEntryRequest struct {
	ProductID string           `json:"productID" binding:"required"`
	Quantity  int64            `json:"quantity" binding:"gte=0"`
	UnitCost  *decimal.Decimal `json:"unitCost,omitempty"`
}

// CreateRestockRequest is the bulk restock input. SaveAsTemplateName, when
// set, additionally persists the realized cart as a new template after the
// batch commits.
type CreateRestockRequest struct {
	TemplateEntries    []TemplateEntryRequest `json:"templateEntries" binding:"dive"`
	RawEntries         []RawEntryRequest      `json:"rawEntries" binding:"dive"`
	SaveAsTemplateName *string                `json:"saveAsTemplateName,omitempty"`
}

// ReplenishmentLineResponse is one committed restock line.
type ReplenishmentLineResponse struct {
	ReplenishmentLineID string          `json:"replenishmentLineID"`
	ProductID           string          `json:"productID"`
	Quantity            int64           `json:"quantity"`
	AllocatedCost       decimal.Decimal `json:"allocatedCost"`
	SourceTemplateID    *string         `json:"sourceTemplateID,omitempty"`
}

// RestockResponse is emitted after a committed restock batch.
type RestockResponse struct {
	BatchID         string                      `json:"batchID"`
	Lines           []ReplenishmentLineResponse `json:"lines"`
	SavedTemplateID *string                     `json:"savedTemplateID,omitempty"`
}

// TemplateComponentRequest is one typed composition slot.
type TemplateComponentRequest struct {
	ProductID string `json:"productID" binding:"required"`
	Weight    int64  `json:"weight" binding:"required,gt=0"`
}

// CreateTemplateRequest creates a reusable restock template.
type CreateTemplateRequest struct {
	Name                  string                     `json:"name" binding:"required"`
	DeclaredAggregateCost decimal.Decimal            `json:"declaredAggregateCost"`
	Components            []TemplateComponentRequest `json:"components" binding:"required,min=1,dive"`
}

// TemplateComponentResponse mirrors one composition slot.
type TemplateComponentResponse struct {
	ProductID string `json:"productID"`
	Weight    int64  `json:"weight"`
}

// TemplateResponse is one restock template.
type TemplateResponse struct {
	TemplateID            string                      `json:"templateID"`
	Name                  string                      `json:"name"`
	DeclaredAggregateCost decimal.Decimal             `json:"declaredAggregateCost"`
	Components            []TemplateComponentResponse `json:"components"`
}

// ToReplenishmentLineResponse converts a domain.ReplenishmentLine.
func ToReplenishmentLineResponse(l *domain.ReplenishmentLine) ReplenishmentLineResponse {
	return ReplenishmentLineResponse{
		ReplenishmentLineID: l.ReplenishmentLineID,
		ProductID:           l.ProductID,
		Quantity:            l.Quantity,
		AllocatedCost:       l.AllocatedCost,
		SourceTemplateID:    l.SourceTemplateID,
	}
}

// ToTemplateResponse converts a domain.RestockTemplate.
func ToTemplateResponse(t *domain.RestockTemplate) TemplateResponse {
	components := make([]TemplateComponentResponse, len(t.Components))
	for i, c := range t.Components {
		components[i] = TemplateComponentResponse{ProductID: c.ProductID, Weight: c.Weight}
	}
	return TemplateResponse{
		TemplateID:            t.TemplateID,
		Name:                  t.Name,
		DeclaredAggregateCost: t.DeclaredAggregateCost,
		Components:            components,
	}
}
