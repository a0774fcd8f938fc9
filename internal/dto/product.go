package dto

import (
	"github.com/shopspring/decimal"

	"github.com/posledger/pos_ledger_app/internal/core/domain"
)

// CreateProductRequest adds a product to the catalogue.
type CreateProductRequest struct {
	Name          string          `json:"name" binding:"required"`
	Category      string          `json:"category"`
	UnitCost      decimal.Decimal `json:"unitCost"`
	UnitSalePrice decimal.Decimal `json:"unitSalePrice" binding:"required"`
	InitialStock  int64           `json:"initialStock" binding:"gte=0"`
}

// UpdateProductRequest changes catalogue fields. Absent fields keep their
// current value; stock is never written through here.
type UpdateProductRequest struct {
	Name          *string          `json:"name,omitempty"`
	Category      *string          `json:"category,omitempty"`
	UnitCost      *decimal.Decimal `json:"unitCost,omitempty"`
	UnitSalePrice *decimal.Decimal `json:"unitSalePrice,omitempty"`
}

// ProductResponse is one catalogue product.
type ProductResponse struct {
	ProductID     string          `json:"productID"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	UnitCost      decimal.Decimal `json:"unitCost"`
	UnitSalePrice decimal.Decimal `json:"unitSalePrice"`
	StockOnHand   int64           `json:"stockOnHand"`
}

// CustomerResponse is one customer with their credit balance.
type CustomerResponse struct {
	CustomerID    string          `json:"customerID"`
	Name          string          `json:"name"`
	CreditBalance decimal.Decimal `json:"creditBalance"`
}

// ToProductResponse converts a domain.Product.
func ToProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ProductID:     p.ProductID,
		Name:          p.Name,
		Category:      p.Category,
		UnitCost:      p.UnitCost,
		UnitSalePrice: p.UnitSalePrice,
		StockOnHand:   p.StockOnHand,
	}
}

// ToCustomerResponse converts a domain.Customer.
func ToCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		CustomerID:    c.CustomerID,
		Name:          c.Name,
		CreditBalance: c.CreditBalance,
	}
}
