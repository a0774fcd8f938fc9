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
	"github.com/posledger/pos_ledger_app/internal/utils/allocation"
)

var (
	ErrEmptyRestock     = errors.New("restock must have at least one entry")
	ErrNegativeCost     = errors.New("cost must not be negative")
	ErrTemplateNoWeight = errors.New("template composition has no positive weights")
)

// restockService orchestrates bulk restocking:
// ExpandTemplates -> Allocate -> Commit.
type restockService struct {
	productRepo  portsrepo.ProductReader
	templateRepo portsrepo.TemplateRepositoryFacade
	ledgerRepo   portsrepo.LedgerWriter
}

// NewRestockService creates a new RestockService.
func NewRestockService(productRepo portsrepo.ProductReader, templateRepo portsrepo.TemplateRepositoryFacade, ledgerRepo portsrepo.LedgerWriter) portssvc.RestockSvcFacade {
	return &restockService{
		productRepo:  productRepo,
		templateRepo: templateRepo,
		ledgerRepo:   ledgerRepo,
	}
}

var _ portssvc.RestockSvcFacade = (*restockService)(nil)

// ProcessRestock expands template entries, allocates their aggregate cost
// across the expanded quantities, prices raw entries, and commits every
// resulting replenishment line in one batch.
func (s *restockService) ProcessRestock(ctx context.Context, req dto.CreateRestockRequest, actorID string) (*dto.RestockResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(req.TemplateEntries) == 0 && len(req.RawEntries) == 0 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrEmptyRestock)
	}

	// --- ExpandTemplates ---
	templateIDs := make([]string, 0, len(req.TemplateEntries))
	for _, entry := range req.TemplateEntries {
		if entry.Multiplier <= 0 {
			return nil, fmt.Errorf("%w: multiplier must be positive for template %s", apperrors.ErrValidation, entry.TemplateID)
		}
		if entry.AggregateCost.IsNegative() {
			return nil, fmt.Errorf("%w: %s for template %s", apperrors.ErrValidation, ErrNegativeCost, entry.TemplateID)
		}
		templateIDs = append(templateIDs, entry.TemplateID)
	}
	templatesMap, err := s.templateRepo.FindTemplatesByIDs(ctx, uniqueStrings(templateIDs))
	if err != nil {
		logger.Error("Failed to fetch templates for restock", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch templates: %w", err)
	}

	now := time.Now().UTC()
	batchID := uuid.NewString()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     actorID,
		LastUpdatedAt: now,
		LastUpdatedBy: actorID,
	}

	var lines []domain.ReplenishmentLine
	for _, entry := range req.TemplateEntries {
		template, found := templatesMap[entry.TemplateID]
		if !found {
			return nil, fmt.Errorf("%w: template %s", apperrors.ErrNotFound, entry.TemplateID)
		}

		// A cart entry may override the template's declared aggregate cost;
		// when it carries none, the declared cost stands in.
		aggregateCost := entry.AggregateCost
		if aggregateCost.IsZero() {
			aggregateCost = template.DeclaredAggregateCost
		}

		// --- Allocate ---
		// Weights are scaled by the multiplier so each component's weight is
		// exactly the quantity being received. Duplicate products in a
		// composition merge into one line.
		components := make([]allocation.Component, 0, len(template.Components))
		quantities := make(map[string]int64, len(template.Components))
		order := make([]string, 0, len(template.Components))
		for _, comp := range template.Components {
			qty := comp.Weight * entry.Multiplier
			if qty == 0 {
				continue // zero-weight components are skipped, not an error
			}
			if _, seen := quantities[comp.ProductID]; !seen {
				order = append(order, comp.ProductID)
			}
			quantities[comp.ProductID] += qty
			components = append(components, allocation.Component{ID: comp.ProductID, Weight: qty})
		}
		costs := allocation.Allocate(aggregateCost, components)

		templateID := template.TemplateID
		for _, productID := range order {
			lines = append(lines, domain.ReplenishmentLine{
				ReplenishmentLineID: uuid.NewString(),
				BatchID:             batchID,
				ProductID:           productID,
				Quantity:            quantities[productID],
				AllocatedCost:       allocation.RoundToCurrency(costs[productID]),
				SourceTemplateID:    &templateID,
				AuditFields:         audit,
			})
		}
	}

	// --- Raw entries: weight = quantity, cost = quantity * unit cost ---
	rawProductIDs := make([]string, 0, len(req.RawEntries))
	for _, entry := range req.RawEntries {
		if entry.Quantity < 0 {
			return nil, fmt.Errorf("%w: quantity must not be negative for product %s", apperrors.ErrValidation, entry.ProductID)
		}
		if entry.UnitCost != nil && entry.UnitCost.IsNegative() {
			return nil, fmt.Errorf("%w: %s for product %s", apperrors.ErrValidation, ErrNegativeCost, entry.ProductID)
		}
		if entry.Quantity > 0 {
			rawProductIDs = append(rawProductIDs, entry.ProductID)
		}
	}
	if len(rawProductIDs) > 0 {
		productsMap, err := s.productRepo.FindProductsByIDs(ctx, uniqueStrings(rawProductIDs))
		if err != nil {
			logger.Error("Failed to fetch products for restock", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to fetch products: %w", err)
		}
		for _, entry := range req.RawEntries {
			if entry.Quantity == 0 {
				continue // skipped silently
			}
			product, found := productsMap[entry.ProductID]
			if !found {
				return nil, fmt.Errorf("%w: product %s", apperrors.ErrNotFound, entry.ProductID)
			}
			// The product's recorded cost stands in when the entry carries
			// no usable unit cost.
			unitCost := product.UnitCost
			if entry.UnitCost != nil && !entry.UnitCost.IsZero() {
				unitCost = *entry.UnitCost
			}
			cost := unitCost.Mul(decimal.NewFromInt(entry.Quantity))
			lines = append(lines, domain.ReplenishmentLine{
				ReplenishmentLineID: uuid.NewString(),
				BatchID:             batchID,
				ProductID:           entry.ProductID,
				Quantity:            entry.Quantity,
				AllocatedCost:       allocation.RoundToCurrency(cost),
				AuditFields:         audit,
			})
		}
	}

	// --- Commit ---
	if len(lines) > 0 {
		if err := s.ledgerRepo.SaveRestockBatch(ctx, domain.RestockBatch{BatchID: batchID, Lines: lines}); err != nil {
			logger.Error("Failed to commit restock batch", slog.String("error", err.Error()), slog.String("batch_id", batchID))
			return nil, err
		}
	}

	resp := &dto.RestockResponse{
		BatchID: batchID,
		Lines:   make([]dto.ReplenishmentLineResponse, len(lines)),
	}
	for i := range lines {
		resp.Lines[i] = dto.ToReplenishmentLineResponse(&lines[i])
	}

	// Persisting the realized cart as a template is independent of the batch
	// commit above; the batch stays committed even if this fails.
	if req.SaveAsTemplateName != nil && len(lines) > 0 {
		template, err := s.saveRealizedTemplate(ctx, *req.SaveAsTemplateName, lines, actorID, now)
		if err != nil {
			logger.Error("Restock batch committed but template save failed",
				slog.String("batch_id", batchID), slog.String("error", err.Error()))
			return nil, fmt.Errorf("restock batch %s committed, but saving template failed: %w", batchID, err)
		}
		resp.SavedTemplateID = &template.TemplateID
	}

	logger.Info("Restock committed", slog.String("batch_id", batchID), slog.Int("line_count", len(lines)))
	return resp, nil
}

// saveRealizedTemplate turns committed replenishment lines back into a
// reusable template: weights are the realized quantities and the declared
// aggregate cost is the sum of the allocated costs.
func (s *restockService) saveRealizedTemplate(ctx context.Context, name string, lines []domain.ReplenishmentLine, actorID string, now time.Time) (*domain.RestockTemplate, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: template name is required", apperrors.ErrValidation)
	}

	template := domain.RestockTemplate{
		TemplateID: uuid.NewString(),
		Name:       name,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}
	total := decimal.Zero
	for i, line := range lines {
		template.Components = append(template.Components, domain.TemplateComponent{
			ProductID: line.ProductID,
			Weight:    line.Quantity,
			Position:  i,
		})
		total = total.Add(line.AllocatedCost)
	}
	template.DeclaredAggregateCost = total

	if err := s.templateRepo.SaveTemplate(ctx, template); err != nil {
		return nil, err
	}
	return &template, nil
}

// CreateTemplate persists a new restock template with a typed composition.
func (s *restockService) CreateTemplate(ctx context.Context, req dto.CreateTemplateRequest, actorID string) (*dto.TemplateResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.DeclaredAggregateCost.IsNegative() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrNegativeCost)
	}
	if len(req.Components) == 0 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrTemplateNoWeight)
	}

	productIDs := make([]string, 0, len(req.Components))
	for _, comp := range req.Components {
		if comp.Weight <= 0 {
			return nil, fmt.Errorf("%w: weight must be positive for product %s", apperrors.ErrValidation, comp.ProductID)
		}
		productIDs = append(productIDs, comp.ProductID)
	}

	productsMap, err := s.productRepo.FindProductsByIDs(ctx, uniqueStrings(productIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	for _, id := range productIDs {
		if _, found := productsMap[id]; !found {
			return nil, fmt.Errorf("%w: product %s", apperrors.ErrNotFound, id)
		}
	}

	now := time.Now().UTC()
	template := domain.RestockTemplate{
		TemplateID:            uuid.NewString(),
		Name:                  strings.TrimSpace(req.Name),
		DeclaredAggregateCost: req.DeclaredAggregateCost,
		Components:            make([]domain.TemplateComponent, len(req.Components)),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}
	for i, comp := range req.Components {
		template.Components[i] = domain.TemplateComponent{
			ProductID: comp.ProductID,
			Weight:    comp.Weight,
			Position:  i,
		}
	}

	if err := s.templateRepo.SaveTemplate(ctx, template); err != nil {
		logger.Error("Failed to save template", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save template: %w", err)
	}

	logger.Info("Template created", slog.String("template_id", template.TemplateID))
	resp := dto.ToTemplateResponse(&template)
	return &resp, nil
}

// GetTemplate retrieves one template with its composition.
func (s *restockService) GetTemplate(ctx context.Context, templateID string) (*dto.TemplateResponse, error) {
	template, err := s.templateRepo.FindTemplateByID(ctx, templateID)
	if err != nil {
		return nil, fmt.Errorf("failed to find template %s: %w", templateID, err)
	}
	resp := dto.ToTemplateResponse(template)
	return &resp, nil
}

// ListTemplates retrieves a page of templates.
func (s *restockService) ListTemplates(ctx context.Context, limit int, offset int) ([]dto.TemplateResponse, error) {
	templates, err := s.templateRepo.ListTemplates(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	responses := make([]dto.TemplateResponse, len(templates))
	for i := range templates {
		responses[i] = dto.ToTemplateResponse(&templates[i])
	}
	return responses, nil
}
