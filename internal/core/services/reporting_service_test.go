package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/posledger/pos_ledger_app/internal/apperrors"
	"github.com/posledger/pos_ledger_app/internal/core/domain"
	portssvc "github.com/posledger/pos_ledger_app/internal/core/ports/services"
	"github.com/posledger/pos_ledger_app/internal/core/services"
)

// --- Mock ReportingRepository ---

type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) GetDailyCashFlow(ctx context.Context, from, to time.Time) ([]domain.DailyCashFlowRow, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DailyCashFlowRow), args.Error(1)
}

func (m *MockReportingRepository) GetBatchSummaries(ctx context.Context, from, to time.Time, limit int, nextToken *string) ([]domain.BatchSummaryRow, *string, error) {
	args := m.Called(ctx, from, to, limit, nextToken)
	var rows []domain.BatchSummaryRow
	if args.Get(0) != nil {
		rows = args.Get(0).([]domain.BatchSummaryRow)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return rows, next, args.Error(2)
}

func (m *MockReportingRepository) GetProductAverages(ctx context.Context, from, to time.Time) ([]domain.ProductAverageRow, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProductAverageRow), args.Error(1)
}

// LedgerReader method for the shared ledger mock.

func (m *MockLedgerRepository) FindBatchLines(ctx context.Context, batchID string) (*domain.BatchLines, error) {
	args := m.Called(ctx, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BatchLines), args.Error(1)
}

// --- Test Suite Setup ---

type ReportingServiceTestSuite struct {
	suite.Suite
	mockReporting *MockReportingRepository
	mockLedger    *MockLedgerRepository
	service       portssvc.ReportingSvcFacade
	from          time.Time
	to            time.Time
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockReporting = new(MockReportingRepository)
	suite.mockLedger = new(MockLedgerRepository)
	suite.service = services.NewReportingService(suite.mockReporting, suite.mockLedger, decimal.RequireFromString("300.00"))
	suite.from = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	suite.to = time.Date(2026, 3, 7, 23, 59, 59, 0, time.UTC)
}

// --- Test Cases ---

func (suite *ReportingServiceTestSuite) TestDailySummary_DerivedFigures() {
	ctx := context.Background()
	days := []domain.DailyCashFlowRow{
		{Day: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), TotalIn: decimal.RequireFromString("600.00"), TotalOut: decimal.RequireFromString("150.00")},
		{Day: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), TotalIn: decimal.RequireFromString("400.00"), TotalOut: decimal.RequireFromString("50.00")},
	}
	suite.mockReporting.On("GetDailyCashFlow", ctx, suite.from, suite.to).Return(days, nil).Once()

	resp, err := suite.service.DailySummary(ctx, suite.from, suite.to)

	suite.Require().NoError(err)
	suite.Require().Len(resp.Days, 2)
	suite.Equal("2026-03-01", resp.Days[0].Day)
	suite.True(resp.Summary.TotalIn.Equal(decimal.RequireFromString("1000.00")))
	suite.True(resp.Summary.TotalOut.Equal(decimal.RequireFromString("200.00")))
	suite.True(resp.Summary.NetTotal.Equal(decimal.RequireFromString("800.00")))
	// (800 net - 300 budget) / 2 owners.
	suite.True(resp.Summary.Splits.Equal(decimal.RequireFromString("250.00")), "splits was %s", resp.Summary.Splits)
}

func (suite *ReportingServiceTestSuite) TestDailySummary_PayoutReducesSplits() {
	ctx := context.Background()
	days := []domain.DailyCashFlowRow{
		{Day: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), TotalIn: decimal.RequireFromString("1000.00"), TotalOut: decimal.RequireFromString("200.00")},
		// A 250.00 payout recorded the next day.
		{Day: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), TotalIn: decimal.Zero, TotalOut: decimal.RequireFromString("250.00")},
	}
	suite.mockReporting.On("GetDailyCashFlow", ctx, suite.from, suite.to).Return(days, nil).Once()

	resp, err := suite.service.DailySummary(ctx, suite.from, suite.to)

	suite.Require().NoError(err)
	suite.True(resp.Summary.NetTotal.Equal(decimal.RequireFromString("550.00")))
	suite.True(resp.Summary.Splits.Equal(decimal.RequireFromString("125.00")), "splits was %s", resp.Summary.Splits)
}

func (suite *ReportingServiceTestSuite) TestDailySummary_EmptyRange() {
	ctx := context.Background()
	suite.mockReporting.On("GetDailyCashFlow", ctx, suite.from, suite.to).Return([]domain.DailyCashFlowRow{}, nil).Once()

	resp, err := suite.service.DailySummary(ctx, suite.from, suite.to)

	suite.Require().NoError(err)
	suite.Empty(resp.Days)
	suite.True(resp.Summary.NetTotal.IsZero())
	// An empty week still owes the budget before anything splits.
	suite.True(resp.Summary.Splits.Equal(decimal.RequireFromString("-150.00")))
}

func (suite *ReportingServiceTestSuite) TestDailySummary_InvertedRange() {
	_, err := suite.service.DailySummary(context.Background(), suite.to, suite.from)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockReporting.AssertNotCalled(suite.T(), "GetDailyCashFlow")
}

func (suite *ReportingServiceTestSuite) TestBatchSummary_PassesTokenThrough() {
	ctx := context.Background()
	inToken := "b3BhcXVl"
	outToken := "bmV4dA=="
	rows := []domain.BatchSummaryRow{
		{BatchID: uuid.NewString(), Direction: domain.In, Amount: decimal.RequireFromString("12.00"), OccurredAt: suite.from, Detail: "Cola x4"},
	}
	suite.mockReporting.On("GetBatchSummaries", ctx, suite.from, suite.to, 20, &inToken).Return(rows, &outToken, nil).Once()

	resp, err := suite.service.BatchSummary(ctx, suite.from, suite.to, 20, &inToken)

	suite.Require().NoError(err)
	suite.Require().Len(resp.Batches, 1)
	suite.Equal("Cola x4", resp.Batches[0].Detail)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal(outToken, *resp.NextToken)
}

func (suite *ReportingServiceTestSuite) TestBatchLines() {
	ctx := context.Background()
	batchID := uuid.NewString()
	lines := &domain.BatchLines{
		BatchID: batchID,
		SaleLines: []domain.SaleLine{
			{SaleLineID: uuid.NewString(), BatchID: batchID, Quantity: 2, UnitSalePrice: decimal.RequireFromString("1.50")},
		},
	}
	suite.mockLedger.On("FindBatchLines", ctx, batchID).Return(lines, nil).Once()

	resp, err := suite.service.BatchLines(ctx, batchID)

	suite.Require().NoError(err)
	suite.Equal(batchID, resp.BatchID)
	suite.Require().Len(resp.SaleLines, 1)
	suite.Empty(resp.CashTransactions)
}

func (suite *ReportingServiceTestSuite) TestBatchLines_NotFound() {
	ctx := context.Background()
	batchID := uuid.NewString()
	suite.mockLedger.On("FindBatchLines", ctx, batchID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.BatchLines(ctx, batchID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ReportingServiceTestSuite) TestProductAverages() {
	ctx := context.Background()
	rows := []domain.ProductAverageRow{
		{ProductID: uuid.NewString(), Name: "Cola", QuantitySold: 10, QuantityRestocked: 24, AvgSalePrice: decimal.RequireFromString("1.50"), AvgUnitCost: decimal.RequireFromString("0.90")},
	}
	suite.mockReporting.On("GetProductAverages", ctx, suite.from, suite.to).Return(rows, nil).Once()

	resp, err := suite.service.ProductAverages(ctx, suite.from, suite.to)

	suite.Require().NoError(err)
	suite.Require().Len(resp, 1)
	suite.Equal("Cola", resp[0].Name)
	suite.True(resp[0].AvgUnitCost.Equal(decimal.RequireFromString("0.90")))
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
