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

var ErrBuyerMissing = errors.New("ticket buyer is required")

// raffleService manages raffles and sells sequentially numbered tickets.
// Number allocation is delegated to the repository, which holds the raffle
// row locked from the counter read through the ticket inserts.
type raffleService struct {
	raffleRepo portsrepo.RaffleRepositoryFacade
}

// NewRaffleService creates a new RaffleService.
func NewRaffleService(raffleRepo portsrepo.RaffleRepositoryFacade) portssvc.RaffleSvcFacade {
	return &raffleService{raffleRepo: raffleRepo}
}

var _ portssvc.RaffleSvcFacade = (*raffleService)(nil)

func (s *raffleService) CreateRaffle(ctx context.Context, req dto.CreateRaffleRequest, actorID string) (*dto.RaffleResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.TicketPrice.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: ticket price must be positive", apperrors.ErrValidation)
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: raffle name is required", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	raffle := domain.Raffle{
		RaffleID:    uuid.NewString(),
		Name:        name,
		TicketPrice: req.TicketPrice,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.raffleRepo.SaveRaffle(ctx, raffle); err != nil {
		logger.Error("Failed to save raffle", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save raffle: %w", err)
	}

	logger.Info("Raffle created", slog.String("raffle_id", raffle.RaffleID))
	resp := dto.ToRaffleResponse(&raffle)
	return &resp, nil
}

func (s *raffleService) GetRaffle(ctx context.Context, raffleID string) (*dto.RaffleDetailResponse, error) {
	raffle, err := s.raffleRepo.FindRaffleByID(ctx, raffleID)
	if err != nil {
		return nil, fmt.Errorf("failed to find raffle %s: %w", raffleID, err)
	}
	tickets, err := s.raffleRepo.FindTicketsByRaffleID(ctx, raffleID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tickets for raffle %s: %w", raffleID, err)
	}
	return &dto.RaffleDetailResponse{
		RaffleResponse: dto.ToRaffleResponse(raffle),
		Tickets:        dto.ToRaffleTicketResponses(tickets),
	}, nil
}

func (s *raffleService) ListRaffles(ctx context.Context, limit int, offset int) ([]dto.RaffleResponse, error) {
	raffles, err := s.raffleRepo.ListRaffles(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list raffles: %w", err)
	}
	responses := make([]dto.RaffleResponse, len(raffles))
	for i := range raffles {
		responses[i] = dto.ToRaffleResponse(&raffles[i])
	}
	return responses, nil
}

// SellTickets issues req.Quantity sequential numbers for the raffle and
// records the revenue as one cash transaction under a fresh batch id.
func (s *raffleService) SellTickets(ctx context.Context, raffleID string, req dto.SellTicketsRequest, actorID string) (*dto.SellTicketsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	buyer := strings.TrimSpace(req.Buyer)
	if buyer == "" {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrBuyerMissing)
	}
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", apperrors.ErrValidation)
	}

	status := domain.Paid
	if req.Paid != nil && !*req.Paid {
		status = domain.NotPaid
	}

	batchID := uuid.NewString()
	tickets, err := s.raffleRepo.SellTickets(ctx, raffleID, batchID, buyer, req.Quantity, status, actorID, time.Now().UTC())
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to sell raffle tickets", slog.String("error", err.Error()), slog.String("raffle_id", raffleID))
		}
		return nil, err
	}

	numbers := make([]int64, len(tickets))
	total := decimal.Zero
	for i, ticket := range tickets {
		numbers[i] = ticket.SequenceNumber
		total = total.Add(ticket.Price)
	}

	logger.Info("Raffle tickets sold",
		slog.String("raffle_id", raffleID),
		slog.String("batch_id", batchID),
		slog.Int("count", len(tickets)))
	return &dto.SellTicketsResponse{
		BatchID:       batchID,
		TicketNumbers: numbers,
		Total:         total,
	}, nil
}
