package repositories

import (
	"context"

	"github.com/posledger/pos_ledger_app/internal/core/domain"
)

// LedgerWriter commits ledger batches. Every method executes as one
// store-level transaction tagged with the batch id: the stock and credit
// mutations, the line inserts, and nothing else; any failure rolls back
// everything and no partial batch is ever visible to readers.
type LedgerWriter interface {
	// SaveSaleBatch re-checks stock (and credit, for account-credit sales)
	// under row locks, applies the decrements and the debit, and inserts the
	// sale lines. Any named buyer is resolved (created if absent) and linked
	// on the lines regardless of payment method; the returned customer id is
	// the resolved one, nil when no buyer was named.
	SaveSaleBatch(ctx context.Context, batch domain.SaleBatch) (*string, error)

	// SaveRestockBatch applies the stock increments and inserts the
	// replenishment lines.
	SaveRestockBatch(ctx context.Context, batch domain.RestockBatch) error

	// SaveCashTransaction inserts one bare cash movement.
	SaveCashTransaction(ctx context.Context, txn domain.CashTransaction) error
}

// LedgerReader reads committed ledger rows.
type LedgerReader interface {
	// FindBatchLines returns every ledger row tagged with the batch id.
	// ErrNotFound when the batch id tags nothing.
	FindBatchLines(ctx context.Context, batchID string) (*domain.BatchLines, error)
}

// LedgerRepositoryFacade combines ledger read and write interfaces.
type LedgerRepositoryFacade interface {
	LedgerWriter
	LedgerReader
}
