package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/posledger/pos_ledger_app/internal/apperrors"
	"github.com/posledger/pos_ledger_app/internal/core/domain"
	portsrepo "github.com/posledger/pos_ledger_app/internal/core/ports/repositories"
)

const raffleColumns = `raffle_id, name, ticket_price, next_ticket_number, created_at, created_by, last_updated_at, last_updated_by`
const ticketColumns = `ticket_id, raffle_id, batch_id, sequence_number, buyer, price, payment_status, created_at, created_by, last_updated_at, last_updated_by`

type PgxRaffleRepository struct {
	BaseRepository
}

// newPgxRaffleRepository creates a new repository for raffles and tickets.
func newPgxRaffleRepository(pool *pgxpool.Pool) portsrepo.RaffleRepositoryFacade {
	return &PgxRaffleRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxRaffleRepository implements portsrepo.RaffleRepositoryFacade
var _ portsrepo.RaffleRepositoryFacade = (*PgxRaffleRepository)(nil)

func scanRaffle(row pgx.Row) (domain.Raffle, error) {
	var raffle domain.Raffle
	err := row.Scan(
		&raffle.RaffleID,
		&raffle.Name,
		&raffle.TicketPrice,
		&raffle.NextTicketNumber,
		&raffle.CreatedAt,
		&raffle.CreatedBy,
		&raffle.LastUpdatedAt,
		&raffle.LastUpdatedBy,
	)
	return raffle, err
}

// SaveRaffle persists a new raffle with its counter at zero.
func (r *PgxRaffleRepository) SaveRaffle(ctx context.Context, raffle domain.Raffle) error {
	query := `
		INSERT INTO raffles (` + raffleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		raffle.RaffleID,
		raffle.Name,
		raffle.TicketPrice,
		raffle.NextTicketNumber,
		raffle.CreatedAt,
		raffle.CreatedBy,
		raffle.LastUpdatedAt,
		raffle.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError("failed to save raffle "+raffle.RaffleID, err)
	}
	return nil
}

// FindRaffleByID retrieves a raffle by its ID.
func (r *PgxRaffleRepository) FindRaffleByID(ctx context.Context, raffleID string) (*domain.Raffle, error) {
	query := `SELECT ` + raffleColumns + ` FROM raffles WHERE raffle_id = $1;`
	raffle, err := scanRaffle(r.Pool.QueryRow(ctx, query, raffleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: raffle %s", apperrors.ErrNotFound, raffleID)
		}
		return nil, fmt.Errorf("failed to find raffle by ID %s: %w", raffleID, err)
	}
	return &raffle, nil
}

// ListRaffles retrieves a paginated list of raffles, newest first.
func (r *PgxRaffleRepository) ListRaffles(ctx context.Context, limit int, offset int) ([]domain.Raffle, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + raffleColumns + ` FROM raffles ORDER BY created_at DESC, raffle_id LIMIT $1 OFFSET $2;`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list raffles: %w", err)
	}
	defer rows.Close()

	var raffles []domain.Raffle
	for rows.Next() {
		raffle, err := scanRaffle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan raffle row during list: %w", err)
		}
		raffles = append(raffles, raffle)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating raffle rows during list: %w", err)
	}
	return raffles, nil
}

// FindTicketsByRaffleID returns every ticket of a raffle in sequence order.
func (r *PgxRaffleRepository) FindTicketsByRaffleID(ctx context.Context, raffleID string) ([]domain.RaffleTicket, error) {
	query := `SELECT ` + ticketColumns + ` FROM raffle_tickets WHERE raffle_id = $1 ORDER BY sequence_number;`
	rows, err := r.Pool.Query(ctx, query, raffleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tickets for raffle %s: %w", raffleID, err)
	}
	defer rows.Close()

	var tickets []domain.RaffleTicket
	for rows.Next() {
		var t domain.RaffleTicket
		err := rows.Scan(
			&t.TicketID,
			&t.RaffleID,
			&t.BatchID,
			&t.SequenceNumber,
			&t.Buyer,
			&t.Price,
			&t.PaymentStatus,
			&t.CreatedAt,
			&t.CreatedBy,
			&t.LastUpdatedAt,
			&t.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ticket row for raffle %s: %w", raffleID, err)
		}
		tickets = append(tickets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ticket rows for raffle %s: %w", raffleID, err)
	}
	return tickets, nil
}

// SellTickets allocates count sequence numbers and inserts the tickets plus
// the matching cash-in row in one transaction. The raffle row stays locked
// from the counter read through the inserts, so concurrent sales of the same
// raffle serialize and numbers come out gapless and distinct.
func (r *PgxRaffleRepository) SellTickets(ctx context.Context, raffleID string, batchID string, buyer string, count int, status domain.PaymentStatus, actorID string, now time.Time) ([]domain.RaffleTicket, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	lockQuery := `SELECT ` + raffleColumns + ` FROM raffles WHERE raffle_id = $1 FOR UPDATE;`
	raffle, err := scanRaffle(tx.QueryRow(ctx, lockQuery, raffleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: raffle %s", apperrors.ErrNotFound, raffleID)
		}
		return nil, mapPgError("failed to lock raffle "+raffleID, err)
	}

	first := raffle.NextTicketNumber + 1
	updateQuery := `
		UPDATE raffles
		SET next_ticket_number = next_ticket_number + $2, last_updated_at = $3, last_updated_by = $4
		WHERE raffle_id = $1;
	`
	if _, err := tx.Exec(ctx, updateQuery, raffleID, int64(count), now, actorID); err != nil {
		return nil, mapPgError("failed to advance ticket counter for raffle "+raffleID, err)
	}

	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     actorID,
		LastUpdatedAt: now,
		LastUpdatedBy: actorID,
	}
	tickets := make([]domain.RaffleTicket, count)
	ticketQuery := `
		INSERT INTO raffle_tickets (` + ticketColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	batch := &pgx.Batch{}
	for i := range tickets {
		tickets[i] = domain.RaffleTicket{
			TicketID:       uuid.NewString(),
			RaffleID:       raffleID,
			BatchID:        batchID,
			SequenceNumber: first + int64(i),
			Buyer:          buyer,
			Price:          raffle.TicketPrice,
			PaymentStatus:  status,
			AuditFields:    audit,
		}
		t := tickets[i]
		batch.Queue(ticketQuery,
			t.TicketID, t.RaffleID, t.BatchID, t.SequenceNumber,
			t.Buyer, t.Price, t.PaymentStatus,
			t.CreatedAt, t.CreatedBy, t.LastUpdatedAt, t.LastUpdatedBy,
		)
	}

	total := raffle.TicketPrice.Mul(decimal.NewFromInt(int64(count)))
	cashQuery := `
		INSERT INTO cash_transactions (` + cashTransactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	batch.Queue(cashQuery,
		uuid.NewString(),
		batchID,
		domain.In,
		total,
		fmt.Sprintf("Raffle ticket sale: %s (x%d)", raffle.Name, count),
		now, actorID, now, actorID,
	)

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return nil, mapPgError("failed to insert tickets for raffle "+raffleID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return tickets, nil
}
