package services

import (
	"context"

	"github.com/posledger/pos_ledger_app/internal/dto"
)

// ProductSvcFacade manages the product catalogue.
type ProductSvcFacade interface {
	CreateProduct(ctx context.Context, req dto.CreateProductRequest, actorID string) (*dto.ProductResponse, error)
	UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, actorID string) (*dto.ProductResponse, error)
	GetProduct(ctx context.Context, productID string) (*dto.ProductResponse, error)
	ListProducts(ctx context.Context, limit int, offset int) ([]dto.ProductResponse, error)
}

// CustomerSvcFacade reads customer records and their credit balances.
type CustomerSvcFacade interface {
	GetCustomer(ctx context.Context, customerID string) (*dto.CustomerResponse, error)
	ListCustomers(ctx context.Context, limit int, offset int) ([]dto.CustomerResponse, error)
}
