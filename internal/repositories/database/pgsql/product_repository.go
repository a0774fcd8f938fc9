package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/posledger/pos_ledger_app/internal/apperrors"
	"github.com/posledger/pos_ledger_app/internal/core/domain"
	portsrepo "github.com/posledger/pos_ledger_app/internal/core/ports/repositories"
)

const productColumns = `product_id, name, category, unit_cost, unit_sale_price, stock_on_hand, created_at, created_by, last_updated_at, last_updated_by`

type PgxProductRepository struct {
	BaseRepository
}

// newPgxProductRepository creates a new repository for catalogue and stock data.
func newPgxProductRepository(pool *pgxpool.Pool) portsrepo.ProductRepositoryFacade {
	return &PgxProductRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxProductRepository implements portsrepo.ProductRepositoryFacade
var _ portsrepo.ProductRepositoryFacade = (*PgxProductRepository)(nil)

func scanProduct(row pgx.Row) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ProductID,
		&p.Name,
		&p.Category,
		&p.UnitCost,
		&p.UnitSalePrice,
		&p.StockOnHand,
		&p.CreatedAt,
		&p.CreatedBy,
		&p.LastUpdatedAt,
		&p.LastUpdatedBy,
	)
	return p, err
}

// SaveProduct persists a new product.
func (r *PgxProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		product.ProductID,
		product.Name,
		product.Category,
		product.UnitCost,
		product.UnitSalePrice,
		product.StockOnHand,
		product.CreatedAt,
		product.CreatedBy,
		product.LastUpdatedAt,
		product.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError("failed to save product "+product.ProductID, err)
	}
	return nil
}

// UpdateProduct updates the catalogue fields of an existing product. Stock is
// never written through here; stock moves only via AdjustStockInTx.
func (r *PgxProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	query := `
		UPDATE products
		SET name = $2, category = $3, unit_cost = $4, unit_sale_price = $5,
		    last_updated_at = $6, last_updated_by = $7
		WHERE product_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		product.ProductID,
		product.Name,
		product.Category,
		product.UnitCost,
		product.UnitSalePrice,
		product.LastUpdatedAt,
		product.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError("failed to update product "+product.ProductID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: product %s", apperrors.ErrNotFound, product.ProductID)
	}
	return nil
}

// FindProductByID retrieves a product by its ID.
func (r *PgxProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = $1;`
	product, err := scanProduct(r.Pool.QueryRow(ctx, query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: product %s", apperrors.ErrNotFound, productID)
		}
		return nil, fmt.Errorf("failed to find product by ID %s: %w", productID, err)
	}
	return &product, nil
}

// FindProductsByIDs retrieves multiple products by their IDs. IDs without a
// matching row are simply absent from the map; the caller decides whether
// that is an error.
func (r *PgxProductRepository) FindProductsByIDs(ctx context.Context, productIDs []string) (map[string]domain.Product, error) {
	if len(productIDs) == 0 {
		return map[string]domain.Product{}, nil
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query products by IDs: %w", err)
	}
	defer rows.Close()

	productsMap := make(map[string]domain.Product)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row during batch fetch: %w", err)
		}
		productsMap[product.ProductID] = product
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product rows during batch fetch: %w", err)
	}
	return productsMap, nil
}

// ListProducts retrieves a paginated list of products, stable by name.
func (r *PgxProductRepository) ListProducts(ctx context.Context, limit int, offset int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + productColumns + ` FROM products ORDER BY name, product_id LIMIT $1 OFFSET $2;`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row during list: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product rows during list: %w", err)
	}
	return products, nil
}

// FindProductsByIDsForUpdate locks the product rows for the duration of the
// transaction. Rows are locked in a consistent order (by product_id) so two
// concurrent batches touching the same products cannot deadlock.
func (r *PgxProductRepository) FindProductsByIDsForUpdate(ctx context.Context, tx pgx.Tx, productIDs []string) (map[string]domain.Product, error) {
	if len(productIDs) == 0 {
		return map[string]domain.Product{}, nil
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = ANY($1) ORDER BY product_id FOR UPDATE;`
	rows, err := tx.Query(ctx, query, productIDs)
	if err != nil {
		return nil, mapPgError("failed to lock products for update", err)
	}
	defer rows.Close()

	productsMap := make(map[string]domain.Product)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan locked product row: %w", err)
		}
		productsMap[product.ProductID] = product
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locked product rows: %w", err)
	}

	for _, id := range productIDs {
		if _, ok := productsMap[id]; !ok {
			return nil, fmt.Errorf("%w: product %s", apperrors.ErrNotFound, id)
		}
	}
	return productsMap, nil
}

// AdjustStockInTx applies delta to a product's stock as a conditional update.
// The WHERE clause refuses to take the stock below zero, so even if the
// caller's pre-check raced with another writer the row can never go negative.
func (r *PgxProductRepository) AdjustStockInTx(ctx context.Context, tx pgx.Tx, productID string, delta int64) (int64, error) {
	query := `
		UPDATE products
		SET stock_on_hand = stock_on_hand + $2, last_updated_at = now()
		WHERE product_id = $1 AND stock_on_hand + $2 >= 0
		RETURNING stock_on_hand;
	`
	var newStock int64
	err := tx.QueryRow(ctx, query, productID, delta).Scan(&newStock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// The caller locked and checked this row already; reaching here
			// means the check and the update disagree.
			return 0, apperrors.NewAppError(500, fmt.Sprintf("stock adjustment rejected for product %s (delta %d)", productID, delta), nil)
		}
		return 0, mapPgError("failed to adjust stock for product "+productID, err)
	}
	return newStock, nil
}
