package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyCashFlowRow aggregates one calendar day of the unified cash view
// (sale lines in, replenishment lines out, cash transactions as recorded).
type DailyCashFlowRow struct {
	Day      time.Time       `json:"day"`
	TotalIn  decimal.Decimal `json:"totalIn"`
	TotalOut decimal.Decimal `json:"totalOut"`
}

// CashFlowReport is the daily rollup plus the derived business figures.
// Splits is the distributable surplus: (netTotal - budget) / 2, where budget
// is the externally configured operating reserve.
type CashFlowReport struct {
	Days     []DailyCashFlowRow `json:"days"`
	TotalIn  decimal.Decimal    `json:"totalIn"`
	TotalOut decimal.Decimal    `json:"totalOut"`
	NetTotal decimal.Decimal    `json:"netTotal"`
	Budget   decimal.Decimal    `json:"budget"`
	Splits   decimal.Decimal    `json:"splits"`
}

// BatchSummaryRow is one committed batch rolled up for drill-down listings.
// Detail concatenates the product/quantity pairs of the batch's lines.
type BatchSummaryRow struct {
	BatchID    string          `json:"batchID"`
	Direction  CashDirection   `json:"direction"`
	Amount     decimal.Decimal `json:"amount"`
	OccurredAt time.Time       `json:"occurredAt"` // earliest line timestamp in the batch
	Detail     string          `json:"detail"`
}

// ProductAverageRow carries quantity-weighted average cost and sale price
// for one product over a reporting range.
type ProductAverageRow struct {
	ProductID         string          `json:"productID"`
	Name              string          `json:"name"`
	QuantitySold      int64           `json:"quantitySold"`
	QuantityRestocked int64           `json:"quantityRestocked"`
	AvgSalePrice      decimal.Decimal `json:"avgSalePrice"`
	AvgUnitCost       decimal.Decimal `json:"avgUnitCost"`
}
