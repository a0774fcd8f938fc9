package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/posledger/pos_ledger_app/internal/core/domain"
)

// ProductReader defines read operations for product data.
type ProductReader interface {
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)
	FindProductsByIDs(ctx context.Context, productIDs []string) (map[string]domain.Product, error)
	ListProducts(ctx context.Context, limit int, offset int) ([]domain.Product, error)
}

// ProductWriter defines catalogue write operations.
type ProductWriter interface {
	SaveProduct(ctx context.Context, product domain.Product) error
	UpdateProduct(ctx context.Context, product domain.Product) error
}

// StockRegistry adjusts per-product stock. Both operations execute inside the
// caller's transaction, never as a separate commit; a decrement below zero
// fails instead of going negative.
type StockRegistry interface {
	// FindProductsByIDsForUpdate selects products and locks their rows for
	// the duration of the transaction. Fails with ErrNotFound when any
	// requested id is missing.
	FindProductsByIDsForUpdate(ctx context.Context, tx pgx.Tx, productIDs []string) (map[string]domain.Product, error)

	// AdjustStockInTx applies delta (negative for sales, positive for
	// restocks) as a conditional update and returns the resulting stock.
	AdjustStockInTx(ctx context.Context, tx pgx.Tx, productID string, delta int64) (int64, error)
}

// ProductRepositoryFacade combines all product repository interfaces.
type ProductRepositoryFacade interface {
	ProductReader
	ProductWriter
	StockRegistry
}
