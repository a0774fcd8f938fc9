package apperrors

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// StockShortfall describes one sale or restock line that asked for more stock
// than a product has on hand.
type StockShortfall struct {
	ProductID string
	Name      string
	Requested int64
	Available int64
}

// InsufficientStockError reports every failing line of an operation at once,
// not just the first one, so the caller can render a complete message.
type InsufficientStockError struct {
	Shortfalls []StockShortfall
}

func (e *InsufficientStockError) Error() string {
	parts := make([]string, len(e.Shortfalls))
	for i, s := range e.Shortfalls {
		name := s.Name
		if name == "" {
			name = s.ProductID
		}
		parts[i] = fmt.Sprintf("%s: requested %d, available %d", name, s.Requested, s.Available)
	}
	return "insufficient stock: " + strings.Join(parts, "; ")
}

// InsufficientCreditError is returned when an account-credit sale exceeds the
// customer's balance. Nothing is committed when it is returned.
type InsufficientCreditError struct {
	CustomerID string
	Required   decimal.Decimal
	Available  decimal.Decimal
}

func (e *InsufficientCreditError) Error() string {
	return fmt.Sprintf("insufficient credit for customer %s: required %s, available %s",
		e.CustomerID, e.Required.String(), e.Available.String())
}
