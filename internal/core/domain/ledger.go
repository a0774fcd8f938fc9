package domain

import "github.com/shopspring/decimal"

// PaymentStatus marks whether a ledger line has been settled.
type PaymentStatus string

const (
	Paid    PaymentStatus = "PAID"
	NotPaid PaymentStatus = "NOT_PAID"
)

// PaymentMethod selects how a sale is settled.
type PaymentMethod string

const (
	Cash          PaymentMethod = "CASH"
	AccountCredit PaymentMethod = "ACCOUNT_CREDIT"
)

// CashDirection is the direction of a cash movement from the shop's view.
type CashDirection string

const (
	In  CashDirection = "IN"
	Out CashDirection = "OUT"
)

// SaleLine records one product sold in a checkout. Immutable once committed.
// The batch id ties together every line produced by the same checkout.
type SaleLine struct {
	SaleLineID    string          `json:"saleLineID"`
	BatchID       string          `json:"batchID"`
	ProductID     string          `json:"productID"`
	Quantity      int64           `json:"quantity"`
	UnitSalePrice decimal.Decimal `json:"unitSalePrice"`
	PaymentStatus PaymentStatus   `json:"paymentStatus"`
	SellerID      string          `json:"sellerID"`
	CustomerID    *string         `json:"customerID,omitempty"`
	AuditFields
}

// Amount is the cash value of the line.
func (l SaleLine) Amount() decimal.Decimal {
	return l.UnitSalePrice.Mul(decimal.NewFromInt(l.Quantity))
}

// ReplenishmentLine records stock received for one product. Immutable once
// committed. AllocatedCost is this line's share of the cart entry's cost,
// rounded to currency units at persistence.
type ReplenishmentLine struct {
	ReplenishmentLineID string          `json:"replenishmentLineID"`
	BatchID             string          `json:"batchID"`
	ProductID           string          `json:"productID"`
	Quantity            int64           `json:"quantity"`
	AllocatedCost       decimal.Decimal `json:"allocatedCost"`
	SourceTemplateID    *string         `json:"sourceTemplateID,omitempty"`
	AuditFields
}

// CashTransaction records a bare cash movement with no stock or credit side
// effects: manual payouts, cash received outside a checkout, raffle revenue.
type CashTransaction struct {
	CashTransactionID string          `json:"cashTransactionID"`
	BatchID           string          `json:"batchID"`
	Direction         CashDirection   `json:"direction"`
	Amount            decimal.Decimal `json:"amount"`
	Description       string          `json:"description"`
	AuditFields
}

// SaleBatch is the unit of work a checkout commits: all lines, the optional
// buyer, and the credit debit, applied atomically or not at all.
type SaleBatch struct {
	BatchID       string
	Lines         []SaleLine
	BuyerName     *string
	CreditDebit   decimal.Decimal // zero unless the sale is paid from account credit
	PaymentMethod PaymentMethod
}

// RestockBatch is the unit of work a restock commits.
type RestockBatch struct {
	BatchID string
	Lines   []ReplenishmentLine
}

// BatchLines is the drill-down view of one batch: every ledger row sharing
// the batch id, whichever table it lives in.
type BatchLines struct {
	BatchID            string              `json:"batchID"`
	SaleLines          []SaleLine          `json:"saleLines"`
	ReplenishmentLines []ReplenishmentLine `json:"replenishmentLines"`
	CashTransactions   []CashTransaction   `json:"cashTransactions"`
}
