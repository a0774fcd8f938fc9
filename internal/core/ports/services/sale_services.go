package services

import (
	"context"

	"github.com/posledger/pos_ledger_app/internal/dto"
)

// SaleSvcFacade orchestrates point-of-sale checkout:
// validate, check stock, check credit, commit one batch, emit the result.
type SaleSvcFacade interface {
	// ProcessSale commits a checkout as one batch. Any stock or credit
	// failure aborts the whole sale before any write; mid-commit storage
	// failures roll back the whole batch.
	ProcessSale(ctx context.Context, req dto.CreateSaleRequest, actorID string) (*dto.SaleResponse, error)
}
