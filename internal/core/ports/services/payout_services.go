package services

import (
	"context"

	"github.com/posledger/pos_ledger_app/internal/dto"
)

// PayoutSvcFacade records manual cash movements.
type PayoutSvcFacade interface {
	RecordPayout(ctx context.Context, req dto.CreatePayoutRequest, actorID string) (*dto.PayoutResponse, error)
}
