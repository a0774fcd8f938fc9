package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/posledger/pos_ledger_app/internal/apperrors"
	"github.com/posledger/pos_ledger_app/internal/core/domain"
	portsrepo "github.com/posledger/pos_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/posledger/pos_ledger_app/internal/core/ports/services"
	"github.com/posledger/pos_ledger_app/internal/dto"
	"github.com/posledger/pos_ledger_app/internal/middleware"
)

var (
	ErrEmptyCart        = errors.New("sale must have at least one line")
	ErrBuyerRequired    = errors.New("account-credit sales require a buyer name")
	ErrNonPositivePrice = errors.New("unit sale price must be positive")
)

// saleService orchestrates POS checkout:
// Validate -> CheckStock -> CheckCredit -> Commit -> Emit.
// Stock and credit are pre-checked for fast failure, then re-checked under
// row locks inside the batch transaction, which is the authoritative check.
type saleService struct {
	productRepo  portsrepo.ProductReader
	customerRepo portsrepo.CustomerReader
	ledgerRepo   portsrepo.LedgerWriter
}

// NewSaleService creates a new SaleService.
func NewSaleService(productRepo portsrepo.ProductReader, customerRepo portsrepo.CustomerReader, ledgerRepo portsrepo.LedgerWriter) portssvc.SaleSvcFacade {
	return &saleService{
		productRepo:  productRepo,
		customerRepo: customerRepo,
		ledgerRepo:   ledgerRepo,
	}
}

var _ portssvc.SaleSvcFacade = (*saleService)(nil)

// ProcessSale commits a checkout as one batch. Any stock or credit failure
// aborts the whole sale before any write.
func (s *saleService) ProcessSale(ctx context.Context, req dto.CreateSaleRequest, actorID string) (*dto.SaleResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	// --- Validate ---
	if len(req.Lines) == 0 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrEmptyCart)
	}
	for _, line := range req.Lines {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive for product %s", apperrors.ErrValidation, line.ProductID)
		}
		if line.UnitSalePrice != nil && line.UnitSalePrice.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: %s for product %s", apperrors.ErrValidation, ErrNonPositivePrice, line.ProductID)
		}
	}
	method := domain.PaymentMethod(req.PaymentMethod)
	if method != domain.Cash && method != domain.AccountCredit {
		return nil, fmt.Errorf("%w: unknown payment method %q", apperrors.ErrValidation, req.PaymentMethod)
	}
	buyerName := normalizeName(req.BuyerName)
	if method == domain.AccountCredit && buyerName == nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrBuyerRequired)
	}

	// --- Resolve products ---
	productIDs := make([]string, 0, len(req.Lines))
	for _, line := range req.Lines {
		productIDs = append(productIDs, line.ProductID)
	}
	productsMap, err := s.productRepo.FindProductsByIDs(ctx, uniqueStrings(productIDs))
	if err != nil {
		logger.Error("Failed to fetch products for sale", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	now := time.Now().UTC()
	batchID := uuid.NewString()
	// Account-credit sales are settled by the debit at commit; only cash
	// sales may be recorded as not yet paid.
	status := domain.Paid
	if method == domain.Cash && req.Paid != nil && !*req.Paid {
		status = domain.NotPaid
	}

	total := decimal.Zero
	required := make(map[string]int64) // several lines may hit the same product
	lines := make([]domain.SaleLine, len(req.Lines))
	for i, lineReq := range req.Lines {
		product, found := productsMap[lineReq.ProductID]
		if !found {
			return nil, fmt.Errorf("%w: product %s", apperrors.ErrNotFound, lineReq.ProductID)
		}

		price := product.UnitSalePrice
		if lineReq.UnitSalePrice != nil {
			price = *lineReq.UnitSalePrice
		}
		if price.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: %s for product %s", apperrors.ErrValidation, ErrNonPositivePrice, product.Name)
		}

		required[lineReq.ProductID] += lineReq.Quantity
		total = total.Add(price.Mul(decimal.NewFromInt(lineReq.Quantity)))

		lines[i] = domain.SaleLine{
			SaleLineID:    uuid.NewString(),
			BatchID:       batchID,
			ProductID:     lineReq.ProductID,
			Quantity:      lineReq.Quantity,
			UnitSalePrice: price,
			PaymentStatus: status,
			SellerID:      actorID,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actorID,
				LastUpdatedAt: now,
				LastUpdatedBy: actorID,
			},
		}
	}

	// --- CheckStock: report every failing line, not just the first ---
	var shortfalls []apperrors.StockShortfall
	for _, lineReq := range req.Lines {
		product := productsMap[lineReq.ProductID]
		if need := required[lineReq.ProductID]; need > product.StockOnHand {
			shortfalls = append(shortfalls, apperrors.StockShortfall{
				ProductID: product.ProductID,
				Name:      product.Name,
				Requested: need,
				Available: product.StockOnHand,
			})
			// one report per product even when several lines hit it
			required[lineReq.ProductID] = 0
		}
	}
	if len(shortfalls) > 0 {
		return nil, &apperrors.InsufficientStockError{Shortfalls: shortfalls}
	}

	// --- CheckCredit (fast path; authoritative check runs under lock) ---
	creditDebit := decimal.Zero
	if method == domain.AccountCredit {
		creditDebit = total
		customer, err := s.customerRepo.FindCustomerByName(ctx, *buyerName)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to resolve buyer for credit check", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to resolve buyer: %w", err)
		}
		if customer != nil && customer.CreditBalance.LessThan(total) {
			return nil, &apperrors.InsufficientCreditError{
				CustomerID: customer.CustomerID,
				Required:   total,
				Available:  customer.CreditBalance,
			}
		}
		// Unknown buyers are created with a zero balance inside the batch
		// transaction; the in-transaction debit rejects them there.
	}

	// --- Commit ---
	batch := domain.SaleBatch{
		BatchID:       batchID,
		Lines:         lines,
		BuyerName:     buyerName,
		CreditDebit:   creditDebit,
		PaymentMethod: method,
	}
	customerID, err := s.ledgerRepo.SaveSaleBatch(ctx, batch)
	if err != nil {
		var stockErr *apperrors.InsufficientStockError
		var creditErr *apperrors.InsufficientCreditError
		if !errors.As(err, &stockErr) && !errors.As(err, &creditErr) {
			logger.Error("Failed to commit sale batch", slog.String("error", err.Error()), slog.String("batch_id", batchID))
		}
		return nil, err
	}

	// --- Emit ---
	lineIDs := make([]string, len(lines))
	for i, line := range lines {
		lineIDs[i] = line.SaleLineID
	}
	logger.Info("Sale committed",
		slog.String("batch_id", batchID),
		slog.Int("line_count", len(lines)),
		slog.String("total", total.String()))
	return &dto.SaleResponse{
		BatchID:    batchID,
		Total:      total,
		LineIDs:    lineIDs,
		CustomerID: customerID,
	}, nil
}

// normalizeName trims the buyer name and drops it entirely when blank.
func normalizeName(name *string) *string {
	if name == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*name)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// uniqueStrings returns a slice containing only the unique strings from the input.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}
