package domain

import "github.com/shopspring/decimal"

// Product is one of the two mutable aggregates in the system: ledger rows are
// append-only, while stockOnHand moves with every committed sale or restock line.
// The store enforces stock_on_hand >= 0.
type Product struct {
	ProductID     string          `json:"productID"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	UnitCost      decimal.Decimal `json:"unitCost"`      // default cost used when a restock line carries none
	UnitSalePrice decimal.Decimal `json:"unitSalePrice"` // default price used when a sale line carries none
	StockOnHand   int64           `json:"stockOnHand"`
	AuditFields
}
