package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/posledger/pos_ledger_app/internal/core/domain"
)

// DailyRowResponse is one calendar day of cash flow.
type DailyRowResponse struct {
	Day      string          `json:"day"`
	TotalIn  decimal.Decimal `json:"totalIn"`
	TotalOut decimal.Decimal `json:"totalOut"`
}

// DailySummaryResponse is the daily rollup plus derived figures.
type DailySummaryResponse struct {
	From    string             `json:"from"`
	To      string             `json:"to"`
	Days    []DailyRowResponse `json:"days"`
	Summary struct {
		TotalIn  decimal.Decimal `json:"totalIn"`
		TotalOut decimal.Decimal `json:"totalOut"`
		NetTotal decimal.Decimal `json:"netTotal"`
		Budget   decimal.Decimal `json:"budget"`
		Splits   decimal.Decimal `json:"splits"`
	} `json:"summary"`
}

// BatchSummaryRowResponse is one batch rolled up for drill-down.
type BatchSummaryRowResponse struct {
	BatchID    string          `json:"batchID"`
	Direction  string          `json:"direction"`
	Amount     decimal.Decimal `json:"amount"`
	OccurredAt time.Time       `json:"occurredAt"`
	Detail     string          `json:"detail"`
}

// BatchSummaryResponse is a paginated batch listing.
type BatchSummaryResponse struct {
	Batches   []BatchSummaryRowResponse `json:"batches"`
	NextToken *string                   `json:"nextToken,omitempty"`
}

// ProductAverageResponse is one product's weighted averages over a range.
type ProductAverageResponse struct {
	ProductID         string          `json:"productID"`
	Name              string          `json:"name"`
	QuantitySold      int64           `json:"quantitySold"`
	QuantityRestocked int64           `json:"quantityRestocked"`
	AvgSalePrice      decimal.Decimal `json:"avgSalePrice"`
	AvgUnitCost       decimal.Decimal `json:"avgUnitCost"`
}

// BatchLinesResponse is the full drill-down of one batch.
type BatchLinesResponse struct {
	BatchID            string                      `json:"batchID"`
	SaleLines          []SaleLineResponse          `json:"saleLines"`
	ReplenishmentLines []ReplenishmentLineResponse `json:"replenishmentLines"`
	CashTransactions   []CashTransactionResponse   `json:"cashTransactions"`
}

// ToDailySummaryResponse builds the daily report DTO from the domain report.
func ToDailySummaryResponse(report *domain.CashFlowReport, from, to time.Time) DailySummaryResponse {
	resp := DailySummaryResponse{
		From: from.Format("2006-01-02"),
		To:   to.Format("2006-01-02"),
		Days: make([]DailyRowResponse, len(report.Days)),
	}
	for i, d := range report.Days {
		resp.Days[i] = DailyRowResponse{
			Day:      d.Day.Format("2006-01-02"),
			TotalIn:  d.TotalIn,
			TotalOut: d.TotalOut,
		}
	}
	resp.Summary.TotalIn = report.TotalIn
	resp.Summary.TotalOut = report.TotalOut
	resp.Summary.NetTotal = report.NetTotal
	resp.Summary.Budget = report.Budget
	resp.Summary.Splits = report.Splits
	return resp
}

// ToBatchSummaryResponse builds the paginated batch listing DTO.
func ToBatchSummaryResponse(rows []domain.BatchSummaryRow, nextToken *string) BatchSummaryResponse {
	resp := BatchSummaryResponse{
		Batches:   make([]BatchSummaryRowResponse, len(rows)),
		NextToken: nextToken,
	}
	for i, r := range rows {
		resp.Batches[i] = BatchSummaryRowResponse{
			BatchID:    r.BatchID,
			Direction:  string(r.Direction),
			Amount:     r.Amount,
			OccurredAt: r.OccurredAt,
			Detail:     r.Detail,
		}
	}
	return resp
}

// ToBatchLinesResponse builds the drill-down DTO for one batch.
func ToBatchLinesResponse(lines *domain.BatchLines) BatchLinesResponse {
	resp := BatchLinesResponse{
		BatchID:            lines.BatchID,
		SaleLines:          make([]SaleLineResponse, len(lines.SaleLines)),
		ReplenishmentLines: make([]ReplenishmentLineResponse, len(lines.ReplenishmentLines)),
		CashTransactions:   make([]CashTransactionResponse, len(lines.CashTransactions)),
	}
	for i := range lines.SaleLines {
		resp.SaleLines[i] = ToSaleLineResponse(&lines.SaleLines[i])
	}
	for i := range lines.ReplenishmentLines {
		resp.ReplenishmentLines[i] = ToReplenishmentLineResponse(&lines.ReplenishmentLines[i])
	}
	for i := range lines.CashTransactions {
		resp.CashTransactions[i] = ToCashTransactionResponse(&lines.CashTransactions[i])
	}
	return resp
}
