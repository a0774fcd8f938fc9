package repositories

import (
	"context"
	"time"

	"github.com/posledger/pos_ledger_app/internal/core/domain"
)

// ReportingRepository rolls committed ledger rows up for the reporting UI.
// All operations are read-only and tolerate a relaxed isolation level.
type ReportingRepository interface {
	// GetDailyCashFlow aggregates the unified cash view per calendar day.
	GetDailyCashFlow(ctx context.Context, from, to time.Time) ([]domain.DailyCashFlowRow, error)

	// GetBatchSummaries returns one row per batch id in the range, newest
	// first, with token-based pagination.
	GetBatchSummaries(ctx context.Context, from, to time.Time, limit int, nextToken *string) ([]domain.BatchSummaryRow, *string, error)

	// GetProductAverages returns weighted average cost and sale price per
	// product over the range.
	GetProductAverages(ctx context.Context, from, to time.Time) ([]domain.ProductAverageRow, error)
}
