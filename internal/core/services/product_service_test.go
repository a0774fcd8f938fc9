package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/posledger/pos_ledger_app/internal/apperrors"
	"github.com/posledger/pos_ledger_app/internal/core/domain"
	portssvc "github.com/posledger/pos_ledger_app/internal/core/ports/services"
	"github.com/posledger/pos_ledger_app/internal/core/services"
	"github.com/posledger/pos_ledger_app/internal/dto"
)

// Writer and in-transaction methods rounding out the shared product mock.

func (m *MockProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) FindProductsByIDsForUpdate(ctx context.Context, tx pgx.Tx, productIDs []string) (map[string]domain.Product, error) {
	args := m.Called(ctx, tx, productIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Product), args.Error(1)
}

func (m *MockProductRepository) AdjustStockInTx(ctx context.Context, tx pgx.Tx, productID string, delta int64) (int64, error) {
	args := m.Called(ctx, tx, productID, delta)
	return args.Get(0).(int64), args.Error(1)
}

// Credit-side transactional methods rounding out the shared customer mock.

func (m *MockCustomerRepository) FindOrCreateByNameInTx(ctx context.Context, tx pgx.Tx, name string, actorID string, now time.Time) (*domain.Customer, error) {
	args := m.Called(ctx, tx, name, actorID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) DebitCreditInTx(ctx context.Context, tx pgx.Tx, customerID string, amount decimal.Decimal, actorID string, now time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, tx, customerID, amount, actorID, now)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Test Suite Setup ---

type ProductServiceTestSuite struct {
	suite.Suite
	mockProducts  *MockProductRepository
	mockCustomers *MockCustomerRepository
	products      portssvc.ProductSvcFacade
	customers     portssvc.CustomerSvcFacade
	actorID       string
}

func (suite *ProductServiceTestSuite) SetupTest() {
	suite.mockProducts = new(MockProductRepository)
	suite.mockCustomers = new(MockCustomerRepository)
	suite.products = services.NewProductService(suite.mockProducts)
	suite.customers = services.NewCustomerService(suite.mockCustomers)
	suite.actorID = uuid.NewString()
}

// --- Test Cases ---

func (suite *ProductServiceTestSuite) TestCreateProduct_Success() {
	ctx := context.Background()
	req := dto.CreateProductRequest{
		Name:          "  Cola  ",
		Category:      "drinks",
		UnitCost:      decimal.RequireFromString("0.90"),
		UnitSalePrice: decimal.RequireFromString("1.50"),
		InitialStock:  24,
	}

	suite.mockProducts.On("SaveProduct", ctx, mock.MatchedBy(func(p domain.Product) bool {
		return p.Name == "Cola" &&
			p.StockOnHand == 24 &&
			p.UnitSalePrice.Equal(decimal.RequireFromString("1.50")) &&
			p.CreatedBy == suite.actorID
	})).Return(nil).Once()

	resp, err := suite.products.CreateProduct(ctx, req, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal("Cola", resp.Name)
	suite.mockProducts.AssertExpectations(suite.T())
}

func (suite *ProductServiceTestSuite) TestCreateProduct_BlankName() {
	req := dto.CreateProductRequest{Name: "   ", UnitSalePrice: decimal.RequireFromString("1.00")}

	_, err := suite.products.CreateProduct(context.Background(), req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockProducts.AssertNotCalled(suite.T(), "SaveProduct")
}

func (suite *ProductServiceTestSuite) TestCreateProduct_NegativePrice() {
	req := dto.CreateProductRequest{Name: "Cola", UnitSalePrice: decimal.RequireFromString("-1.00")}

	_, err := suite.products.CreateProduct(context.Background(), req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ProductServiceTestSuite) TestCreateProduct_NegativeStock() {
	req := dto.CreateProductRequest{Name: "Cola", UnitSalePrice: decimal.RequireFromString("1.00"), InitialStock: -1}

	_, err := suite.products.CreateProduct(context.Background(), req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ProductServiceTestSuite) TestUpdateProduct_MergesFields() {
	ctx := context.Background()
	existing := domain.Product{
		ProductID:     uuid.NewString(),
		Name:          "Cola",
		Category:      "drinks",
		UnitCost:      decimal.RequireFromString("0.90"),
		UnitSalePrice: decimal.RequireFromString("1.50"),
		StockOnHand:   24,
	}
	newPrice := decimal.RequireFromString("1.75")
	req := dto.UpdateProductRequest{UnitSalePrice: &newPrice}

	suite.mockProducts.On("FindProductByID", ctx, existing.ProductID).Return(&existing, nil).Once()
	suite.mockProducts.On("UpdateProduct", ctx, mock.MatchedBy(func(p domain.Product) bool {
		return p.ProductID == existing.ProductID &&
			p.Name == "Cola" &&
			p.UnitCost.Equal(decimal.RequireFromString("0.90")) &&
			p.UnitSalePrice.Equal(newPrice) &&
			p.StockOnHand == 24 &&
			p.LastUpdatedBy == suite.actorID
	})).Return(nil).Once()

	resp, err := suite.products.UpdateProduct(ctx, existing.ProductID, req, suite.actorID)

	suite.Require().NoError(err)
	suite.True(resp.UnitSalePrice.Equal(newPrice))
	suite.Equal("Cola", resp.Name)
	suite.mockProducts.AssertExpectations(suite.T())
}

func (suite *ProductServiceTestSuite) TestUpdateProduct_NotFound() {
	ctx := context.Background()
	productID := uuid.NewString()
	suite.mockProducts.On("FindProductByID", ctx, productID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.products.UpdateProduct(ctx, productID, dto.UpdateProductRequest{}, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockProducts.AssertNotCalled(suite.T(), "UpdateProduct")
}

func (suite *ProductServiceTestSuite) TestUpdateProduct_NegativePrice() {
	ctx := context.Background()
	existing := domain.Product{ProductID: uuid.NewString(), Name: "Cola", UnitSalePrice: decimal.RequireFromString("1.50")}
	badPrice := decimal.RequireFromString("-0.50")

	suite.mockProducts.On("FindProductByID", ctx, existing.ProductID).Return(&existing, nil).Once()

	_, err := suite.products.UpdateProduct(ctx, existing.ProductID, dto.UpdateProductRequest{UnitCost: &badPrice}, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockProducts.AssertNotCalled(suite.T(), "UpdateProduct")
}

func (suite *ProductServiceTestSuite) TestGetProduct_NotFound() {
	ctx := context.Background()
	productID := uuid.NewString()
	suite.mockProducts.On("FindProductByID", ctx, productID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.products.GetProduct(ctx, productID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ProductServiceTestSuite) TestGetCustomer() {
	ctx := context.Background()
	customer := domain.Customer{
		CustomerID:    uuid.NewString(),
		Name:          "Dana",
		CreditBalance: decimal.RequireFromString("20.00"),
	}
	suite.mockCustomers.On("FindCustomerByID", ctx, customer.CustomerID).Return(&customer, nil).Once()

	resp, err := suite.customers.GetCustomer(ctx, customer.CustomerID)

	suite.Require().NoError(err)
	suite.Equal("Dana", resp.Name)
	suite.True(resp.CreditBalance.Equal(decimal.RequireFromString("20.00")))
}

func TestProductServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProductServiceTestSuite))
}
