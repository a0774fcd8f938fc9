package repositories

import (
	"context"
	"time"

	"github.com/posledger/pos_ledger_app/internal/core/domain"
)

// RaffleRepositoryFacade persists raffles and issues ticket numbers.
type RaffleRepositoryFacade interface {
	SaveRaffle(ctx context.Context, raffle domain.Raffle) error
	FindRaffleByID(ctx context.Context, raffleID string) (*domain.Raffle, error)
	ListRaffles(ctx context.Context, limit int, offset int) ([]domain.Raffle, error)
	FindTicketsByRaffleID(ctx context.Context, raffleID string) ([]domain.RaffleTicket, error)

	// SellTickets allocates the next count sequence numbers and inserts the
	// tickets plus one cash transaction for the revenue, all in one
	// transaction. The raffle row stays locked from the counter read through
	// the inserts, so concurrent sales of the same raffle cannot collide on
	// a number.
	SellTickets(ctx context.Context, raffleID string, batchID string, buyer string, count int, status domain.PaymentStatus, actorID string, now time.Time) ([]domain.RaffleTicket, error)
}
