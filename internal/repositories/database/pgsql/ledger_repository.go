package pgsql

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/posledger/pos_ledger_app/internal/apperrors"
	"github.com/posledger/pos_ledger_app/internal/core/domain"
	portsrepo "github.com/posledger/pos_ledger_app/internal/core/ports/repositories"
)

const saleLineColumns = `sale_line_id, batch_id, product_id, quantity, unit_sale_price, payment_status, seller_id, customer_id, created_at, created_by, last_updated_at, last_updated_by`
const replenishmentLineColumns = `replenishment_line_id, batch_id, product_id, quantity, allocated_cost, source_template_id, created_at, created_by, last_updated_at, last_updated_by`
const cashTransactionColumns = `cash_transaction_id, batch_id, direction, amount, description, created_at, created_by, last_updated_at, last_updated_by`

type PgxLedgerRepository struct {
	BaseRepository
	productRepo  portsrepo.StockRegistry
	customerRepo portsrepo.CustomerTxOps
}

// newPgxLedgerRepository creates the repository that commits ledger batches.
// Stock and credit mutations are delegated to the injected repositories but
// always run on this repository's transaction.
func newPgxLedgerRepository(pool *pgxpool.Pool, productRepo portsrepo.StockRegistry, customerRepo portsrepo.CustomerTxOps) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
		productRepo:    productRepo,
		customerRepo:   customerRepo,
	}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepositoryFacade
var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

// SaveSaleBatch commits one sale as a single transaction: lock the product
// rows, re-check every line against the locked stock, decrement, resolve any
// named buyer (debiting the balance for account-credit sales), then insert
// the lines. Any failure rolls the whole batch back.
func (r *PgxLedgerRepository) SaveSaleBatch(ctx context.Context, batch domain.SaleBatch) (*string, error) {
	if len(batch.Lines) == 0 {
		return nil, fmt.Errorf("%w: sale batch %s has no lines", apperrors.ErrValidation, batch.BatchID)
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	// Aggregate requested quantity per product; a cart may repeat a product.
	required := make(map[string]int64)
	for _, line := range batch.Lines {
		required[line.ProductID] += line.Quantity
	}
	productIDs := make([]string, 0, len(required))
	for id := range required {
		productIDs = append(productIDs, id)
	}
	sort.Strings(productIDs)

	lockedProducts, err := r.productRepo.FindProductsByIDsForUpdate(ctx, tx, productIDs)
	if err != nil {
		return nil, err
	}

	// Authoritative stock check under the locks. Collect every shortfall
	// before failing so the caller sees the full picture.
	var shortfalls []apperrors.StockShortfall
	for _, id := range productIDs {
		product := lockedProducts[id]
		if product.StockOnHand < required[id] {
			shortfalls = append(shortfalls, apperrors.StockShortfall{
				ProductID: id,
				Name:      product.Name,
				Requested: required[id],
				Available: product.StockOnHand,
			})
		}
	}
	if len(shortfalls) > 0 {
		return nil, &apperrors.InsufficientStockError{Shortfalls: shortfalls}
	}

	for _, id := range productIDs {
		if _, err := r.productRepo.AdjustStockInTx(ctx, tx, id, -required[id]); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	actorID := batch.Lines[0].CreatedBy

	// Any named buyer is resolved inside the transaction so an aborted sale
	// never leaves a half-created customer behind. Cash sales link the
	// customer on the lines (an on-tick sale stays traceable to its buyer);
	// only account-credit sales debit the balance.
	var customerID *string
	if batch.PaymentMethod == domain.AccountCredit && batch.BuyerName == nil {
		return nil, fmt.Errorf("%w: account-credit sale %s has no buyer", apperrors.ErrValidation, batch.BatchID)
	}
	if batch.BuyerName != nil {
		customer, err := r.customerRepo.FindOrCreateByNameInTx(ctx, tx, *batch.BuyerName, actorID, now)
		if err != nil {
			return nil, err
		}
		if batch.PaymentMethod == domain.AccountCredit {
			if _, err := r.customerRepo.DebitCreditInTx(ctx, tx, customer.CustomerID, batch.CreditDebit, actorID, now); err != nil {
				return nil, err
			}
		}
		customerID = &customer.CustomerID
	}

	lineQuery := `
		INSERT INTO sale_lines (` + saleLineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	pgBatch := &pgx.Batch{}
	for _, line := range batch.Lines {
		pgBatch.Queue(lineQuery,
			line.SaleLineID,
			line.BatchID,
			line.ProductID,
			line.Quantity,
			line.UnitSalePrice,
			line.PaymentStatus,
			line.SellerID,
			customerID,
			line.CreatedAt,
			line.CreatedBy,
			line.LastUpdatedAt,
			line.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, pgBatch)
	if err := br.Close(); err != nil {
		return nil, mapPgError("failed to insert sale lines for batch "+batch.BatchID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return customerID, nil
}

// SaveRestockBatch commits one restock as a single transaction: lock the
// product rows, apply the increments, insert the replenishment lines.
func (r *PgxLedgerRepository) SaveRestockBatch(ctx context.Context, batch domain.RestockBatch) error {
	if len(batch.Lines) == 0 {
		return fmt.Errorf("%w: restock batch %s has no lines", apperrors.ErrValidation, batch.BatchID)
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	received := make(map[string]int64)
	for _, line := range batch.Lines {
		received[line.ProductID] += line.Quantity
	}
	productIDs := make([]string, 0, len(received))
	for id := range received {
		productIDs = append(productIDs, id)
	}
	sort.Strings(productIDs)

	if _, err := r.productRepo.FindProductsByIDsForUpdate(ctx, tx, productIDs); err != nil {
		return err
	}
	for _, id := range productIDs {
		if _, err := r.productRepo.AdjustStockInTx(ctx, tx, id, received[id]); err != nil {
			return err
		}
	}

	lineQuery := `
		INSERT INTO replenishment_lines (` + replenishmentLineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	pgBatch := &pgx.Batch{}
	for _, line := range batch.Lines {
		pgBatch.Queue(lineQuery,
			line.ReplenishmentLineID,
			line.BatchID,
			line.ProductID,
			line.Quantity,
			line.AllocatedCost,
			line.SourceTemplateID,
			line.CreatedAt,
			line.CreatedBy,
			line.LastUpdatedAt,
			line.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, pgBatch)
	if err := br.Close(); err != nil {
		return mapPgError("failed to insert replenishment lines for batch "+batch.BatchID, err)
	}

	return r.Commit(ctx, tx)
}

// SaveCashTransaction inserts one bare cash movement.
func (r *PgxLedgerRepository) SaveCashTransaction(ctx context.Context, txn domain.CashTransaction) error {
	query := `
		INSERT INTO cash_transactions (` + cashTransactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		txn.CashTransactionID,
		txn.BatchID,
		txn.Direction,
		txn.Amount,
		txn.Description,
		txn.CreatedAt,
		txn.CreatedBy,
		txn.LastUpdatedAt,
		txn.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError("failed to save cash transaction "+txn.CashTransactionID, err)
	}
	return nil
}

func scanSaleLine(rows pgx.Rows) (domain.SaleLine, error) {
	var line domain.SaleLine
	err := rows.Scan(
		&line.SaleLineID,
		&line.BatchID,
		&line.ProductID,
		&line.Quantity,
		&line.UnitSalePrice,
		&line.PaymentStatus,
		&line.SellerID,
		&line.CustomerID,
		&line.CreatedAt,
		&line.CreatedBy,
		&line.LastUpdatedAt,
		&line.LastUpdatedBy,
	)
	return line, err
}

// FindBatchLines returns every ledger row tagged with the batch id, across
// all three line tables.
func (r *PgxLedgerRepository) FindBatchLines(ctx context.Context, batchID string) (*domain.BatchLines, error) {
	result := &domain.BatchLines{BatchID: batchID}

	saleQuery := `SELECT ` + saleLineColumns + ` FROM sale_lines WHERE batch_id = $1 ORDER BY created_at, sale_line_id;`
	rows, err := r.Pool.Query(ctx, saleQuery, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sale lines for batch %s: %w", batchID, err)
	}
	for rows.Next() {
		line, err := scanSaleLine(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan sale line for batch %s: %w", batchID, err)
		}
		result.SaleLines = append(result.SaleLines, line)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sale lines for batch %s: %w", batchID, err)
	}

	replQuery := `SELECT ` + replenishmentLineColumns + ` FROM replenishment_lines WHERE batch_id = $1 ORDER BY created_at, replenishment_line_id;`
	rows, err = r.Pool.Query(ctx, replQuery, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query replenishment lines for batch %s: %w", batchID, err)
	}
	for rows.Next() {
		var line domain.ReplenishmentLine
		err := rows.Scan(
			&line.ReplenishmentLineID,
			&line.BatchID,
			&line.ProductID,
			&line.Quantity,
			&line.AllocatedCost,
			&line.SourceTemplateID,
			&line.CreatedAt,
			&line.CreatedBy,
			&line.LastUpdatedAt,
			&line.LastUpdatedBy,
		)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan replenishment line for batch %s: %w", batchID, err)
		}
		result.ReplenishmentLines = append(result.ReplenishmentLines, line)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating replenishment lines for batch %s: %w", batchID, err)
	}

	cashQuery := `SELECT ` + cashTransactionColumns + ` FROM cash_transactions WHERE batch_id = $1 ORDER BY created_at, cash_transaction_id;`
	rows, err = r.Pool.Query(ctx, cashQuery, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cash transactions for batch %s: %w", batchID, err)
	}
	for rows.Next() {
		var txn domain.CashTransaction
		err := rows.Scan(
			&txn.CashTransactionID,
			&txn.BatchID,
			&txn.Direction,
			&txn.Amount,
			&txn.Description,
			&txn.CreatedAt,
			&txn.CreatedBy,
			&txn.LastUpdatedAt,
			&txn.LastUpdatedBy,
		)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan cash transaction for batch %s: %w", batchID, err)
		}
		result.CashTransactions = append(result.CashTransactions, txn)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cash transactions for batch %s: %w", batchID, err)
	}

	if len(result.SaleLines) == 0 && len(result.ReplenishmentLines) == 0 && len(result.CashTransactions) == 0 {
		return nil, fmt.Errorf("%w: batch %s", apperrors.ErrNotFound, batchID)
	}
	return result, nil
}

