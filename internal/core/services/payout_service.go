package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/posledger/pos_ledger_app/internal/apperrors"
	"github.com/posledger/pos_ledger_app/internal/core/domain"
	portsrepo "github.com/posledger/pos_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/posledger/pos_ledger_app/internal/core/ports/services"
	"github.com/posledger/pos_ledger_app/internal/dto"
	"github.com/posledger/pos_ledger_app/internal/middleware"
)

var (
	ErrNonPositiveAmount  = errors.New("amount must be positive")
	ErrDescriptionMissing = errors.New("description is required")
)

// payoutService records manual cash movements. Each one gets its own batch
// id and carries no stock or credit side effects.
type payoutService struct {
	ledgerRepo portsrepo.LedgerWriter
}

// NewPayoutService creates a new PayoutService.
func NewPayoutService(ledgerRepo portsrepo.LedgerWriter) portssvc.PayoutSvcFacade {
	return &payoutService{ledgerRepo: ledgerRepo}
}

var _ portssvc.PayoutSvcFacade = (*payoutService)(nil)

func (s *payoutService) RecordPayout(ctx context.Context, req dto.CreatePayoutRequest, actorID string) (*dto.PayoutResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	direction := domain.CashDirection(req.Direction)
	if direction != domain.In && direction != domain.Out {
		return nil, fmt.Errorf("%w: unknown direction %q", apperrors.ErrValidation, req.Direction)
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrNonPositiveAmount)
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrDescriptionMissing)
	}

	now := time.Now().UTC()
	txn := domain.CashTransaction{
		CashTransactionID: uuid.NewString(),
		BatchID:           uuid.NewString(),
		Direction:         direction,
		Amount:            req.Amount,
		Description:       description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.ledgerRepo.SaveCashTransaction(ctx, txn); err != nil {
		logger.Error("Failed to record payout", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to record payout: %w", err)
	}

	logger.Info("Payout recorded",
		slog.String("batch_id", txn.BatchID),
		slog.String("direction", string(direction)),
		slog.String("amount", req.Amount.String()))
	return &dto.PayoutResponse{BatchID: txn.BatchID}, nil
}
