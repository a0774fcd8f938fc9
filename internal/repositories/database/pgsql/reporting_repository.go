package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/posledger/pos_ledger_app/internal/apperrors"
	"github.com/posledger/pos_ledger_app/internal/core/domain"
	portsrepo "github.com/posledger/pos_ledger_app/internal/core/ports/repositories"
	"github.com/posledger/pos_ledger_app/internal/utils/pagination"
)

// cashViewCTE is the unified cash view: every committed ledger row expressed
// as a directed amount. Sale lines count as cash in at quantity times price,
// replenishment lines as cash out at their allocated cost, and cash
// transactions carry their own direction.
const cashViewCTE = `
	WITH cash_view AS (
		SELECT sl.batch_id,
		       'IN'::text AS direction,
		       sl.quantity * sl.unit_sale_price AS amount,
		       sl.created_at,
		       p.name || ' x' || sl.quantity AS detail
		FROM sale_lines sl
		JOIN products p ON p.product_id = sl.product_id
		UNION ALL
		SELECT rl.batch_id,
		       'OUT'::text,
		       rl.allocated_cost,
		       rl.created_at,
		       p.name || ' x' || rl.quantity
		FROM replenishment_lines rl
		JOIN products p ON p.product_id = rl.product_id
		UNION ALL
		SELECT ct.batch_id, ct.direction, ct.amount, ct.created_at, ct.description
		FROM cash_transactions ct
	)
`

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// GetDailyCashFlow aggregates the unified cash view per calendar day.
func (r *reportingRepository) GetDailyCashFlow(ctx context.Context, from, to time.Time) ([]domain.DailyCashFlowRow, error) {
	query := cashViewCTE + `
		SELECT date_trunc('day', created_at) AS day,
		       SUM(CASE WHEN direction = 'IN' THEN amount ELSE 0 END) AS total_in,
		       SUM(CASE WHEN direction = 'OUT' THEN amount ELSE 0 END) AS total_out
		FROM cash_view
		WHERE created_at BETWEEN $1 AND $2
		GROUP BY day
		ORDER BY day;
	`

	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying daily cash flow: %w", err)
	}
	defer rows.Close()

	result := []domain.DailyCashFlowRow{}
	for rows.Next() {
		var row domain.DailyCashFlowRow
		if err := rows.Scan(&row.Day, &row.TotalIn, &row.TotalOut); err != nil {
			return nil, fmt.Errorf("error scanning daily cash flow row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating daily cash flow rows: %w", err)
	}
	return result, nil
}

// GetBatchSummaries returns one row per batch in the range, newest first.
// Pagination is keyset-based on (occurred_at, batch_id) so pages stay stable
// while new batches arrive.
func (r *reportingRepository) GetBatchSummaries(ctx context.Context, from, to time.Time, limit int, nextToken *string) ([]domain.BatchSummaryRow, *string, error) {
	if limit <= 0 {
		limit = 50
	}

	query := cashViewCTE + `
		SELECT batch_id,
		       MAX(direction) AS direction,
		       SUM(amount) AS total,
		       MIN(created_at) AS occurred_at,
		       string_agg(detail, ', ' ORDER BY created_at, detail) AS detail
		FROM cash_view
		WHERE created_at BETWEEN $1 AND $2
		GROUP BY batch_id
	`
	args := []interface{}{from, to}

	if nextToken != nil && *nextToken != "" {
		tokenTime, tokenBatchID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += `
		HAVING MIN(created_at) < $3 OR (MIN(created_at) = $3 AND batch_id > $4)
		`
		args = append(args, tokenTime, tokenBatchID)
	}

	query += `
		ORDER BY occurred_at DESC, batch_id
		LIMIT $` + fmt.Sprint(len(args)+1) + `;
	`
	args = append(args, limit+1) // one extra row to detect a next page

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("error querying batch summaries: %w", err)
	}
	defer rows.Close()

	var result []domain.BatchSummaryRow
	for rows.Next() {
		var row domain.BatchSummaryRow
		var direction string
		if err := rows.Scan(&row.BatchID, &direction, &row.Amount, &row.OccurredAt, &row.Detail); err != nil {
			return nil, nil, fmt.Errorf("error scanning batch summary row: %w", err)
		}
		row.Direction = domain.CashDirection(direction)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating batch summary rows: %w", err)
	}

	var next *string
	if len(result) > limit {
		result = result[:limit]
		last := result[len(result)-1]
		token := pagination.EncodeToken(last.OccurredAt, last.BatchID)
		next = &token
	}
	return result, next, nil
}

// GetProductAverages returns weighted average sale price and unit cost per
// product over the range. Averages are weighted by quantity, so a large
// restock moves the average cost more than a small one.
func (r *reportingRepository) GetProductAverages(ctx context.Context, from, to time.Time) ([]domain.ProductAverageRow, error) {
	query := `
		SELECT p.product_id,
		       p.name,
		       COALESCE(s.qty, 0) AS quantity_sold,
		       COALESCE(rs.qty, 0) AS quantity_restocked,
		       COALESCE(s.total / NULLIF(s.qty, 0), 0) AS avg_sale_price,
		       COALESCE(rs.total / NULLIF(rs.qty, 0), 0) AS avg_unit_cost
		FROM products p
		LEFT JOIN (
			SELECT product_id, SUM(quantity) AS qty, SUM(quantity * unit_sale_price) AS total
			FROM sale_lines
			WHERE created_at BETWEEN $1 AND $2
			GROUP BY product_id
		) s ON s.product_id = p.product_id
		LEFT JOIN (
			SELECT product_id, SUM(quantity) AS qty, SUM(allocated_cost) AS total
			FROM replenishment_lines
			WHERE created_at BETWEEN $1 AND $2
			GROUP BY product_id
		) rs ON rs.product_id = p.product_id
		WHERE s.product_id IS NOT NULL OR rs.product_id IS NOT NULL
		ORDER BY p.name, p.product_id;
	`

	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying product averages: %w", err)
	}
	defer rows.Close()

	result := []domain.ProductAverageRow{}
	for rows.Next() {
		var row domain.ProductAverageRow
		var avgSale, avgCost decimal.Decimal
		if err := rows.Scan(&row.ProductID, &row.Name, &row.QuantitySold, &row.QuantityRestocked, &avgSale, &avgCost); err != nil {
			return nil, fmt.Errorf("error scanning product average row: %w", err)
		}
		row.AvgSalePrice = avgSale.RoundBank(2)
		row.AvgUnitCost = avgCost.RoundBank(2)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product average rows: %w", err)
	}
	return result, nil
}
