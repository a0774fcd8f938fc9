package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/posledger/pos_ledger_app/internal/core/domain"
)

// CustomerReader defines read operations for customer data.
type CustomerReader interface {
	FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)
	// FindCustomerByName resolves a buyer by exact name match. ErrNotFound
	// when no customer carries that name.
	FindCustomerByName(ctx context.Context, name string) (*domain.Customer, error)
	ListCustomers(ctx context.Context, limit int, offset int) ([]domain.Customer, error)
}

// CustomerTxOps are the credit-side operations of a sale batch; they run only
// inside the batch transaction so a rolled-back sale leaves no trace.
type CustomerTxOps interface {
	// FindOrCreateByNameInTx resolves a buyer by exact name, creating a
	// zero-balance customer when none exists. The resolved row is
	// locked for the rest of the transaction.
	FindOrCreateByNameInTx(ctx context.Context, tx pgx.Tx, name string, actorID string, now time.Time) (*domain.Customer, error)

	// DebitCreditInTx conditionally subtracts amount from the customer's
	// balance and returns the new balance. Fails with
	// InsufficientCreditError when the balance would go negative.
	DebitCreditInTx(ctx context.Context, tx pgx.Tx, customerID string, amount decimal.Decimal, actorID string, now time.Time) (decimal.Decimal, error)
}

// CustomerRepositoryFacade combines all customer repository interfaces.
type CustomerRepositoryFacade interface {
	CustomerReader
	CustomerTxOps
}
