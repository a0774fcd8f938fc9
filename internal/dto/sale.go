package dto

import (
	"github.com/shopspring/decimal"

	"github.com/posledger/pos_ledger_app/internal/core/domain"
)

// SaleLineRequest is one cart line. UnitSalePrice may be omitted to sell at
// the product's recorded price.
type SaleLineRequest struct {
	ProductID     string           `json:"productID" binding:"required"`
	Quantity      int64            `json:"quantity" binding:"required,gt=0"`
	UnitSalePrice *decimal.Decimal `json:"unitSalePrice,omitempty"`
}

// CreateSaleRequest is the POS checkout input. BuyerName resolves (or
// creates) a customer by exact name; it is required for account-credit sales.
type CreateSaleRequest struct {
	Lines         []SaleLineRequest `json:"lines" binding:"required,min=1,dive"`
	PaymentMethod string            `json:"paymentMethod" binding:"required,oneof=CASH ACCOUNT_CREDIT"`
	Paid          *bool             `json:"paid,omitempty"` // defaults to true; ignored for ACCOUNT_CREDIT
	BuyerName     *string           `json:"buyerName,omitempty"`
}

// SaleResponse is emitted after a committed sale.
type SaleResponse struct {
	BatchID    string          `json:"batchID"`
	Total      decimal.Decimal `json:"total"`
	LineIDs    []string        `json:"lineIDs"`
	CustomerID *string         `json:"customerID,omitempty"`
}

// SaleLineResponse is one committed sale line.
type SaleLineResponse struct {
	SaleLineID    string          `json:"saleLineID"`
	ProductID     string          `json:"productID"`
	Quantity      int64           `json:"quantity"`
	UnitSalePrice decimal.Decimal `json:"unitSalePrice"`
	PaymentStatus string          `json:"paymentStatus"`
	SellerID      string          `json:"sellerID"`
	CustomerID    *string         `json:"customerID,omitempty"`
}

// ToSaleLineResponse converts a domain.SaleLine to its response DTO.
func ToSaleLineResponse(l *domain.SaleLine) SaleLineResponse {
	return SaleLineResponse{
		SaleLineID:    l.SaleLineID,
		ProductID:     l.ProductID,
		Quantity:      l.Quantity,
		UnitSalePrice: l.UnitSalePrice,
		PaymentStatus: string(l.PaymentStatus),
		SellerID:      l.SellerID,
		CustomerID:    l.CustomerID,
	}
}
