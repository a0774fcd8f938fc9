package dto

import (
	"github.com/shopspring/decimal"

	"github.com/posledger/pos_ledger_app/internal/core/domain"
)

// CreatePayoutRequest records one manual cash movement.
type CreatePayoutRequest struct {
	Direction   string          `json:"direction" binding:"required,oneof=IN OUT"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description" binding:"required"`
}

// PayoutResponse carries the batch id of the recorded movement.
type PayoutResponse struct {
	BatchID string `json:"batchID"`
}

// CashTransactionResponse is one committed cash movement.
type CashTransactionResponse struct {
	CashTransactionID string          `json:"cashTransactionID"`
	Direction         string          `json:"direction"`
	Amount            decimal.Decimal `json:"amount"`
	Description       string          `json:"description"`
}

// ToCashTransactionResponse converts a domain.CashTransaction.
func ToCashTransactionResponse(t *domain.CashTransaction) CashTransactionResponse {
	return CashTransactionResponse{
		CashTransactionID: t.CashTransactionID,
		Direction:         string(t.Direction),
		Amount:            t.Amount,
		Description:       t.Description,
	}
}
