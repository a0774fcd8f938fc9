package services

import (
	"context"

	"github.com/posledger/pos_ledger_app/internal/dto"
)

// RaffleSvcFacade manages raffles and sells numbered tickets.
type RaffleSvcFacade interface {
	CreateRaffle(ctx context.Context, req dto.CreateRaffleRequest, actorID string) (*dto.RaffleResponse, error)
	GetRaffle(ctx context.Context, raffleID string) (*dto.RaffleDetailResponse, error)
	ListRaffles(ctx context.Context, limit int, offset int) ([]dto.RaffleResponse, error)

	// SellTickets issues quantity sequential ticket numbers for the raffle
	// and records the revenue under one batch id.
	SellTickets(ctx context.Context, raffleID string, req dto.SellTicketsRequest, actorID string) (*dto.SellTicketsResponse, error)
}
