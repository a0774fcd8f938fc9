package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/posledger/pos_ledger_app/internal/apperrors"
	"github.com/posledger/pos_ledger_app/internal/core/domain"
	portsrepo "github.com/posledger/pos_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/posledger/pos_ledger_app/internal/core/ports/services"
	"github.com/posledger/pos_ledger_app/internal/dto"
)

var two = decimal.NewFromInt(2)

// reportingService is the read side of the ledger. It aggregates committed
// rows and derives the owner split figures; the operating budget it subtracts
// comes from configuration, not from the database.
type reportingService struct {
	reportingRepo portsrepo.ReportingRepository
	ledgerRepo    portsrepo.LedgerReader
	budget        decimal.Decimal
}

// NewReportingService creates a new ReportingService.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, ledgerRepo portsrepo.LedgerReader, budget decimal.Decimal) portssvc.ReportingSvcFacade {
	return &reportingService{
		reportingRepo: reportingRepo,
		ledgerRepo:    ledgerRepo,
		budget:        budget,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

func (s *reportingService) DailySummary(ctx context.Context, from, to time.Time) (*dto.DailySummaryResponse, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: range end precedes range start", apperrors.ErrValidation)
	}

	days, err := s.reportingRepo.GetDailyCashFlow(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate daily cash flow: %w", err)
	}

	report := &domain.CashFlowReport{
		Days:   days,
		Budget: s.budget,
	}
	for _, d := range days {
		report.TotalIn = report.TotalIn.Add(d.TotalIn)
		report.TotalOut = report.TotalOut.Add(d.TotalOut)
	}
	report.NetTotal = report.TotalIn.Sub(report.TotalOut)
	report.Splits = report.NetTotal.Sub(s.budget).Div(two)

	resp := dto.ToDailySummaryResponse(report, from, to)
	return &resp, nil
}

func (s *reportingService) BatchSummary(ctx context.Context, from, to time.Time, limit int, nextToken *string) (*dto.BatchSummaryResponse, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: range end precedes range start", apperrors.ErrValidation)
	}

	rows, next, err := s.reportingRepo.GetBatchSummaries(ctx, from, to, limit, nextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list batch summaries: %w", err)
	}
	resp := dto.ToBatchSummaryResponse(rows, next)
	return &resp, nil
}

func (s *reportingService) ProductAverages(ctx context.Context, from, to time.Time) ([]dto.ProductAverageResponse, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: range end precedes range start", apperrors.ErrValidation)
	}

	rows, err := s.reportingRepo.GetProductAverages(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to compute product averages: %w", err)
	}
	responses := make([]dto.ProductAverageResponse, len(rows))
	for i, r := range rows {
		responses[i] = dto.ProductAverageResponse{
			ProductID:         r.ProductID,
			Name:              r.Name,
			QuantitySold:      r.QuantitySold,
			QuantityRestocked: r.QuantityRestocked,
			AvgSalePrice:      r.AvgSalePrice,
			AvgUnitCost:       r.AvgUnitCost,
		}
	}
	return responses, nil
}

func (s *reportingService) BatchLines(ctx context.Context, batchID string) (*dto.BatchLinesResponse, error) {
	lines, err := s.ledgerRepo.FindBatchLines(ctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to load batch %s: %w", batchID, err)
	}
	resp := dto.ToBatchLinesResponse(lines)
	return &resp, nil
}
