package services

import (
	"context"
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

// productService manages the product catalogue.
type productService struct {
	productRepo portsrepo.ProductRepositoryFacade
}

// NewProductService creates a new ProductService.
func NewProductService(productRepo portsrepo.ProductRepositoryFacade) portssvc.ProductSvcFacade {
	return &productService{productRepo: productRepo}
}

var _ portssvc.ProductSvcFacade = (*productService)(nil)

func (s *productService) CreateProduct(ctx context.Context, req dto.CreateProductRequest, actorID string) (*dto.ProductResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: product name is required", apperrors.ErrValidation)
	}
	if req.UnitCost.LessThan(decimal.Zero) || req.UnitSalePrice.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: prices cannot be negative", apperrors.ErrValidation)
	}
	if req.InitialStock < 0 {
		return nil, fmt.Errorf("%w: initial stock cannot be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	product := domain.Product{
		ProductID:     uuid.NewString(),
		Name:          name,
		Category:      strings.TrimSpace(req.Category),
		UnitCost:      req.UnitCost,
		UnitSalePrice: req.UnitSalePrice,
		StockOnHand:   req.InitialStock,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.productRepo.SaveProduct(ctx, product); err != nil {
		logger.Error("Failed to save product", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	logger.Info("Product created", slog.String("product_id", product.ProductID))
	resp := dto.ToProductResponse(&product)
	return &resp, nil
}

func (s *productService) UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, actorID string) (*dto.ProductResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to find product %s: %w", productID, err)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: product name is required", apperrors.ErrValidation)
		}
		product.Name = name
	}
	if req.Category != nil {
		product.Category = strings.TrimSpace(*req.Category)
	}
	if req.UnitCost != nil {
		if req.UnitCost.LessThan(decimal.Zero) {
			return nil, fmt.Errorf("%w: prices cannot be negative", apperrors.ErrValidation)
		}
		product.UnitCost = *req.UnitCost
	}
	if req.UnitSalePrice != nil {
		if req.UnitSalePrice.LessThan(decimal.Zero) {
			return nil, fmt.Errorf("%w: prices cannot be negative", apperrors.ErrValidation)
		}
		product.UnitSalePrice = *req.UnitSalePrice
	}

	product.LastUpdatedAt = time.Now().UTC()
	product.LastUpdatedBy = actorID

	if err := s.productRepo.UpdateProduct(ctx, *product); err != nil {
		logger.Error("Failed to update product", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update product %s: %w", productID, err)
	}

	logger.Info("Product updated", slog.String("product_id", product.ProductID))
	resp := dto.ToProductResponse(product)
	return &resp, nil
}

func (s *productService) GetProduct(ctx context.Context, productID string) (*dto.ProductResponse, error) {
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to find product %s: %w", productID, err)
	}
	resp := dto.ToProductResponse(product)
	return &resp, nil
}

func (s *productService) ListProducts(ctx context.Context, limit int, offset int) ([]dto.ProductResponse, error) {
	products, err := s.productRepo.ListProducts(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	responses := make([]dto.ProductResponse, len(products))
	for i := range products {
		responses[i] = dto.ToProductResponse(&products[i])
	}
	return responses, nil
}

// customerService reads customer records. Customers are never created
// directly; they come into existence through credit sales.
type customerService struct {
	customerRepo portsrepo.CustomerRepositoryFacade
}

// NewCustomerService creates a new CustomerService.
func NewCustomerService(customerRepo portsrepo.CustomerRepositoryFacade) portssvc.CustomerSvcFacade {
	return &customerService{customerRepo: customerRepo}
}

var _ portssvc.CustomerSvcFacade = (*customerService)(nil)

func (s *customerService) GetCustomer(ctx context.Context, customerID string) (*dto.CustomerResponse, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find customer %s: %w", customerID, err)
	}
	resp := dto.ToCustomerResponse(customer)
	return &resp, nil
}

func (s *customerService) ListCustomers(ctx context.Context, limit int, offset int) ([]dto.CustomerResponse, error) {
	customers, err := s.customerRepo.ListCustomers(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	responses := make([]dto.CustomerResponse, len(customers))
	for i := range customers {
		responses[i] = dto.ToCustomerResponse(&customers[i])
	}
	return responses, nil
}
