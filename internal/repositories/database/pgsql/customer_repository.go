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

const customerColumns = `customer_id, name, credit_balance, created_at, created_by, last_updated_at, last_updated_by`

type PgxCustomerRepository struct {
	BaseRepository
}

// newPgxCustomerRepository creates a new repository for customer data.
func newPgxCustomerRepository(pool *pgxpool.Pool) portsrepo.CustomerRepositoryFacade {
	return &PgxCustomerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxCustomerRepository implements portsrepo.CustomerRepositoryFacade
var _ portsrepo.CustomerRepositoryFacade = (*PgxCustomerRepository)(nil)

func scanCustomer(row pgx.Row) (domain.Customer, error) {
	var c domain.Customer
	err := row.Scan(
		&c.CustomerID,
		&c.Name,
		&c.CreditBalance,
		&c.CreatedAt,
		&c.CreatedBy,
		&c.LastUpdatedAt,
		&c.LastUpdatedBy,
	)
	return c, err
}

// FindCustomerByID retrieves a customer by its ID.
func (r *PgxCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_id = $1;`
	customer, err := scanCustomer(r.Pool.QueryRow(ctx, query, customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: customer %s", apperrors.ErrNotFound, customerID)
		}
		return nil, fmt.Errorf("failed to find customer by ID %s: %w", customerID, err)
	}
	return &customer, nil
}

// FindCustomerByName resolves a buyer by exact name match.
func (r *PgxCustomerRepository) FindCustomerByName(ctx context.Context, name string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE name = $1;`
	customer, err := scanCustomer(r.Pool.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: customer named %q", apperrors.ErrNotFound, name)
		}
		return nil, fmt.Errorf("failed to find customer by name %q: %w", name, err)
	}
	return &customer, nil
}

// ListCustomers retrieves a paginated list of customers, stable by name.
func (r *PgxCustomerRepository) ListCustomers(ctx context.Context, limit int, offset int) ([]domain.Customer, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + customerColumns + ` FROM customers ORDER BY name, customer_id LIMIT $1 OFFSET $2;`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer row during list: %w", err)
		}
		customers = append(customers, customer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating customer rows during list: %w", err)
	}
	return customers, nil
}

// FindOrCreateByNameInTx resolves a buyer by exact name inside the caller's
// transaction, locking the row. When no customer carries the name, a
// zero-balance one is inserted. A concurrent insert of the same name trips
// the unique constraint and surfaces as ErrConflict, telling the caller to
// retry the whole batch.
func (r *PgxCustomerRepository) FindOrCreateByNameInTx(ctx context.Context, tx pgx.Tx, name string, actorID string, now time.Time) (*domain.Customer, error) {
	selectQuery := `SELECT ` + customerColumns + ` FROM customers WHERE name = $1 FOR UPDATE;`
	customer, err := scanCustomer(tx.QueryRow(ctx, selectQuery, name))
	if err == nil {
		return &customer, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, mapPgError("failed to lock customer named "+name, err)
	}

	customer = domain.Customer{
		CustomerID:    uuid.NewString(),
		Name:          name,
		CreditBalance: decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}
	insertQuery := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err = tx.Exec(ctx, insertQuery,
		customer.CustomerID,
		customer.Name,
		customer.CreditBalance,
		customer.CreatedAt,
		customer.CreatedBy,
		customer.LastUpdatedAt,
		customer.LastUpdatedBy,
	)
	if err != nil {
		// A lost race against a concurrent insert of the same name is
		// retryable, not a duplicate resource.
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: concurrent create of customer named %q", apperrors.ErrConflict, name)
		}
		return nil, mapPgError("failed to create customer named "+name, err)
	}
	return &customer, nil
}

// DebitCreditInTx conditionally subtracts amount from the customer's balance.
// The WHERE clause refuses to take the balance negative; when that happens
// the current balance is re-read to build the typed error.
func (r *PgxCustomerRepository) DebitCreditInTx(ctx context.Context, tx pgx.Tx, customerID string, amount decimal.Decimal, actorID string, now time.Time) (decimal.Decimal, error) {
	updateQuery := `
		UPDATE customers
		SET credit_balance = credit_balance - $2, last_updated_at = $3, last_updated_by = $4
		WHERE customer_id = $1 AND credit_balance >= $2
		RETURNING credit_balance;
	`
	var newBalance decimal.Decimal
	err := tx.QueryRow(ctx, updateQuery, customerID, amount, now, actorID).Scan(&newBalance)
	if err == nil {
		return newBalance, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return decimal.Zero, mapPgError("failed to debit customer "+customerID, err)
	}

	// Conditional update matched nothing: either unknown customer or
	// insufficient balance. The row is already locked by the caller's
	// find-or-create, so this read is stable.
	var available decimal.Decimal
	err = tx.QueryRow(ctx, `SELECT credit_balance FROM customers WHERE customer_id = $1;`, customerID).Scan(&available)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, fmt.Errorf("%w: customer %s", apperrors.ErrNotFound, customerID)
		}
		return decimal.Zero, fmt.Errorf("failed to read balance for customer %s: %w", customerID, err)
	}
	return decimal.Zero, &apperrors.InsufficientCreditError{
		CustomerID: customerID,
		Required:   amount,
		Available:  available,
	}
}
