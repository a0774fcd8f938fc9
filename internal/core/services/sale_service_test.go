package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/posledger/pos_ledger_app/internal/apperrors"
	"github.com/posledger/pos_ledger_app/internal/core/domain"
	portssvc "github.com/posledger/pos_ledger_app/internal/core/ports/services"
	"github.com/posledger/pos_ledger_app/internal/core/services"
	"github.com/posledger/pos_ledger_app/internal/dto"
)

// --- Mock ProductRepository ---

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) FindProductsByIDs(ctx context.Context, productIDs []string) (map[string]domain.Product, error) {
	args := m.Called(ctx, productIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Product), args.Error(1)
}

func (m *MockProductRepository) ListProducts(ctx context.Context, limit int, offset int) ([]domain.Product, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

// --- Mock CustomerRepository ---

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindCustomerByName(ctx context.Context, name string) (*domain.Customer, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) ListCustomers(ctx context.Context, limit int, offset int) ([]domain.Customer, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Customer), args.Error(1)
}

// --- Mock LedgerRepository ---

type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) SaveSaleBatch(ctx context.Context, batch domain.SaleBatch) (*string, error) {
	args := m.Called(ctx, batch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*string), args.Error(1)
}

func (m *MockLedgerRepository) SaveRestockBatch(ctx context.Context, batch domain.RestockBatch) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func (m *MockLedgerRepository) SaveCashTransaction(ctx context.Context, txn domain.CashTransaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

// --- Test Suite Setup ---

type SaleServiceTestSuite struct {
	suite.Suite
	mockProducts  *MockProductRepository
	mockCustomers *MockCustomerRepository
	mockLedger    *MockLedgerRepository
	service       portssvc.SaleSvcFacade
	actorID       string
}

func (suite *SaleServiceTestSuite) SetupTest() {
	suite.mockProducts = new(MockProductRepository)
	suite.mockCustomers = new(MockCustomerRepository)
	suite.mockLedger = new(MockLedgerRepository)
	suite.service = services.NewSaleService(suite.mockProducts, suite.mockCustomers, suite.mockLedger)
	suite.actorID = uuid.NewString()
}

func (suite *SaleServiceTestSuite) makeProduct(name string, price string, stock int64) domain.Product {
	return domain.Product{
		ProductID:     uuid.NewString(),
		Name:          name,
		UnitSalePrice: decimal.RequireFromString(price),
		StockOnHand:   stock,
	}
}

// --- Test Cases ---

func (suite *SaleServiceTestSuite) TestProcessSale_CashSuccess() {
	ctx := context.Background()
	cola := suite.makeProduct("Cola", "2.50", 10)
	chips := suite.makeProduct("Chips", "1.75", 4)

	req := dto.CreateSaleRequest{
		Lines: []dto.SaleLineRequest{
			{ProductID: cola.ProductID, Quantity: 2},
			{ProductID: chips.ProductID, Quantity: 1},
		},
		PaymentMethod: string(domain.Cash),
	}

	suite.mockProducts.On("FindProductsByIDs", ctx, mock.Anything).
		Return(map[string]domain.Product{cola.ProductID: cola, chips.ProductID: chips}, nil).Once()
	suite.mockLedger.On("SaveSaleBatch", ctx, mock.MatchedBy(func(batch domain.SaleBatch) bool {
		return len(batch.Lines) == 2 &&
			batch.PaymentMethod == domain.Cash &&
			batch.CreditDebit.IsZero() &&
			batch.Lines[0].PaymentStatus == domain.Paid &&
			batch.Lines[0].SellerID == suite.actorID
	})).Return((*string)(nil), nil).Once()

	resp, err := suite.service.ProcessSale(ctx, req, suite.actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.NotEmpty(resp.BatchID)
	suite.Len(resp.LineIDs, 2)
	suite.True(resp.Total.Equal(decimal.RequireFromString("6.75")), "total was %s", resp.Total)
	suite.Nil(resp.CustomerID)
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestProcessSale_EmptyCart() {
	resp, err := suite.service.ProcessSale(context.Background(), dto.CreateSaleRequest{PaymentMethod: "CASH"}, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(resp)
	suite.mockLedger.AssertNotCalled(suite.T(), "SaveSaleBatch")
}

func (suite *SaleServiceTestSuite) TestProcessSale_UnknownProduct() {
	ctx := context.Background()
	req := dto.CreateSaleRequest{
		Lines:         []dto.SaleLineRequest{{ProductID: uuid.NewString(), Quantity: 1}},
		PaymentMethod: "CASH",
	}
	suite.mockProducts.On("FindProductsByIDs", ctx, mock.Anything).
		Return(map[string]domain.Product{}, nil).Once()

	_, err := suite.service.ProcessSale(ctx, req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *SaleServiceTestSuite) TestProcessSale_ReportsEveryShortfall() {
	ctx := context.Background()
	cola := suite.makeProduct("Cola", "2.50", 5)
	chips := suite.makeProduct("Chips", "1.75", 0)

	req := dto.CreateSaleRequest{
		Lines: []dto.SaleLineRequest{
			{ProductID: cola.ProductID, Quantity: 6},
			{ProductID: chips.ProductID, Quantity: 2},
		},
		PaymentMethod: "CASH",
	}
	suite.mockProducts.On("FindProductsByIDs", ctx, mock.Anything).
		Return(map[string]domain.Product{cola.ProductID: cola, chips.ProductID: chips}, nil).Once()

	_, err := suite.service.ProcessSale(ctx, req, suite.actorID)

	suite.Require().Error(err)
	var stockErr *apperrors.InsufficientStockError
	suite.Require().ErrorAs(err, &stockErr)
	suite.Len(stockErr.Shortfalls, 2, "every failing line must be reported")
	suite.Contains(stockErr.Error(), "Cola: requested 6, available 5")
	suite.Contains(stockErr.Error(), "Chips: requested 2, available 0")
	suite.mockLedger.AssertNotCalled(suite.T(), "SaveSaleBatch")
}

func (suite *SaleServiceTestSuite) TestProcessSale_AggregatesRepeatedProduct() {
	ctx := context.Background()
	cola := suite.makeProduct("Cola", "2.50", 5)

	// Two lines of 3 each exceed a stock of 5 even though each line alone fits.
	req := dto.CreateSaleRequest{
		Lines: []dto.SaleLineRequest{
			{ProductID: cola.ProductID, Quantity: 3},
			{ProductID: cola.ProductID, Quantity: 3},
		},
		PaymentMethod: "CASH",
	}
	suite.mockProducts.On("FindProductsByIDs", ctx, mock.Anything).
		Return(map[string]domain.Product{cola.ProductID: cola}, nil).Once()

	_, err := suite.service.ProcessSale(ctx, req, suite.actorID)

	var stockErr *apperrors.InsufficientStockError
	suite.Require().ErrorAs(err, &stockErr)
	suite.Require().Len(stockErr.Shortfalls, 1)
	suite.Equal(int64(6), stockErr.Shortfalls[0].Requested)
	suite.Equal(int64(5), stockErr.Shortfalls[0].Available)
}

func (suite *SaleServiceTestSuite) TestProcessSale_CreditInsufficient() {
	ctx := context.Background()
	cola := suite.makeProduct("Cola", "25.00", 10)
	buyer := "Dana"
	customer := &domain.Customer{
		CustomerID:    uuid.NewString(),
		Name:          buyer,
		CreditBalance: decimal.RequireFromString("20.00"),
	}

	req := dto.CreateSaleRequest{
		Lines:         []dto.SaleLineRequest{{ProductID: cola.ProductID, Quantity: 1}},
		PaymentMethod: "ACCOUNT_CREDIT",
		BuyerName:     &buyer,
	}
	suite.mockProducts.On("FindProductsByIDs", ctx, mock.Anything).
		Return(map[string]domain.Product{cola.ProductID: cola}, nil).Once()
	suite.mockCustomers.On("FindCustomerByName", ctx, buyer).Return(customer, nil).Once()

	_, err := suite.service.ProcessSale(ctx, req, suite.actorID)

	var creditErr *apperrors.InsufficientCreditError
	suite.Require().ErrorAs(err, &creditErr)
	suite.Equal(customer.CustomerID, creditErr.CustomerID)
	suite.True(creditErr.Required.Equal(decimal.RequireFromString("25.00")))
	suite.True(creditErr.Available.Equal(decimal.RequireFromString("20.00")))
	suite.mockLedger.AssertNotCalled(suite.T(), "SaveSaleBatch")
}

func (suite *SaleServiceTestSuite) TestProcessSale_CreditRequiresBuyer() {
	req := dto.CreateSaleRequest{
		Lines:         []dto.SaleLineRequest{{ProductID: uuid.NewString(), Quantity: 1}},
		PaymentMethod: "ACCOUNT_CREDIT",
	}

	_, err := suite.service.ProcessSale(context.Background(), req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *SaleServiceTestSuite) TestProcessSale_CreditSuccess() {
	ctx := context.Background()
	cola := suite.makeProduct("Cola", "2.50", 10)
	buyer := "Dana"
	customer := &domain.Customer{
		CustomerID:    uuid.NewString(),
		Name:          buyer,
		CreditBalance: decimal.RequireFromString("100.00"),
	}

	req := dto.CreateSaleRequest{
		Lines:         []dto.SaleLineRequest{{ProductID: cola.ProductID, Quantity: 4}},
		PaymentMethod: "ACCOUNT_CREDIT",
		BuyerName:     &buyer,
	}
	suite.mockProducts.On("FindProductsByIDs", ctx, mock.Anything).
		Return(map[string]domain.Product{cola.ProductID: cola}, nil).Once()
	suite.mockCustomers.On("FindCustomerByName", ctx, buyer).Return(customer, nil).Once()
	suite.mockLedger.On("SaveSaleBatch", ctx, mock.MatchedBy(func(batch domain.SaleBatch) bool {
		// Account-credit sales are settled by the debit, so lines are PAID.
		return batch.PaymentMethod == domain.AccountCredit &&
			batch.CreditDebit.Equal(decimal.RequireFromString("10.00")) &&
			batch.Lines[0].PaymentStatus == domain.Paid
	})).Return(&customer.CustomerID, nil).Once()

	resp, err := suite.service.ProcessSale(ctx, req, suite.actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(resp.CustomerID)
	suite.Equal(customer.CustomerID, *resp.CustomerID)
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestProcessSale_CashWithBuyerLinksCustomer() {
	ctx := context.Background()
	cola := suite.makeProduct("Cola", "2.50", 10)
	buyer := "Dana"
	customerID := uuid.NewString()

	// A cash sale with a named buyer stays traceable to that customer even
	// though no credit is debited.
	req := dto.CreateSaleRequest{
		Lines:         []dto.SaleLineRequest{{ProductID: cola.ProductID, Quantity: 2}},
		PaymentMethod: "CASH",
		BuyerName:     &buyer,
	}
	suite.mockProducts.On("FindProductsByIDs", ctx, mock.Anything).
		Return(map[string]domain.Product{cola.ProductID: cola}, nil).Once()
	suite.mockLedger.On("SaveSaleBatch", ctx, mock.MatchedBy(func(batch domain.SaleBatch) bool {
		return batch.PaymentMethod == domain.Cash &&
			batch.BuyerName != nil && *batch.BuyerName == buyer &&
			batch.CreditDebit.IsZero()
	})).Return(&customerID, nil).Once()

	resp, err := suite.service.ProcessSale(ctx, req, suite.actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(resp.CustomerID)
	suite.Equal(customerID, *resp.CustomerID)
	suite.mockCustomers.AssertNotCalled(suite.T(), "FindCustomerByName")
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestProcessSale_CashNotPaid() {
	ctx := context.Background()
	cola := suite.makeProduct("Cola", "2.50", 10)
	notPaid := false

	req := dto.CreateSaleRequest{
		Lines:         []dto.SaleLineRequest{{ProductID: cola.ProductID, Quantity: 1}},
		PaymentMethod: "CASH",
		Paid:          &notPaid,
	}
	suite.mockProducts.On("FindProductsByIDs", ctx, mock.Anything).
		Return(map[string]domain.Product{cola.ProductID: cola}, nil).Once()
	suite.mockLedger.On("SaveSaleBatch", ctx, mock.MatchedBy(func(batch domain.SaleBatch) bool {
		return batch.Lines[0].PaymentStatus == domain.NotPaid
	})).Return((*string)(nil), nil).Once()

	_, err := suite.service.ProcessSale(ctx, req, suite.actorID)

	suite.Require().NoError(err)
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestProcessSale_PriceOverride() {
	ctx := context.Background()
	cola := suite.makeProduct("Cola", "2.50", 10)
	override := decimal.RequireFromString("2.00")

	req := dto.CreateSaleRequest{
		Lines:         []dto.SaleLineRequest{{ProductID: cola.ProductID, Quantity: 2, UnitSalePrice: &override}},
		PaymentMethod: "CASH",
	}
	suite.mockProducts.On("FindProductsByIDs", ctx, mock.Anything).
		Return(map[string]domain.Product{cola.ProductID: cola}, nil).Once()
	suite.mockLedger.On("SaveSaleBatch", ctx, mock.Anything).Return((*string)(nil), nil).Once()

	resp, err := suite.service.ProcessSale(ctx, req, suite.actorID)

	suite.Require().NoError(err)
	suite.True(resp.Total.Equal(decimal.RequireFromString("4.00")))
}

func TestSaleServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SaleServiceTestSuite))
}
