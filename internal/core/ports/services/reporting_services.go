package services

import (
	"context"
	"time"

	"github.com/posledger/pos_ledger_app/internal/dto"
)

// ReportingSvcFacade is the read model over the ledger. It never writes.
type ReportingSvcFacade interface {
	// DailySummary rolls the cash view up per calendar day and derives
	// netTotal and splits from the configured operating budget.
	DailySummary(ctx context.Context, from, to time.Time) (*dto.DailySummaryResponse, error)

	// BatchSummary returns one row per batch in the range for drill-down.
	BatchSummary(ctx context.Context, from, to time.Time, limit int, nextToken *string) (*dto.BatchSummaryResponse, error)

	// ProductAverages returns weighted average cost/sale price per product.
	ProductAverages(ctx context.Context, from, to time.Time) ([]dto.ProductAverageResponse, error)

	// BatchLines returns every ledger row of one batch.
	BatchLines(ctx context.Context, batchID string) (*dto.BatchLinesResponse, error)
}
