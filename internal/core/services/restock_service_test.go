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

// --- Mock TemplateRepository ---

type MockTemplateRepository struct {
	mock.Mock
}

func (m *MockTemplateRepository) SaveTemplate(ctx context.Context, template domain.RestockTemplate) error {
	args := m.Called(ctx, template)
	return args.Error(0)
}

func (m *MockTemplateRepository) FindTemplateByID(ctx context.Context, templateID string) (*domain.RestockTemplate, error) {
	args := m.Called(ctx, templateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RestockTemplate), args.Error(1)
}

func (m *MockTemplateRepository) FindTemplatesByIDs(ctx context.Context, templateIDs []string) (map[string]domain.RestockTemplate, error) {
	args := m.Called(ctx, templateIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.RestockTemplate), args.Error(1)
}

func (m *MockTemplateRepository) ListTemplates(ctx context.Context, limit int, offset int) ([]domain.RestockTemplate, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RestockTemplate), args.Error(1)
}

// --- Test Suite Setup ---

type RestockServiceTestSuite struct {
	suite.Suite
	mockProducts  *MockProductRepository
	mockTemplates *MockTemplateRepository
	mockLedger    *MockLedgerRepository
	service       portssvc.RestockSvcFacade
	actorID       string
}

func (suite *RestockServiceTestSuite) SetupTest() {
	suite.mockProducts = new(MockProductRepository)
	suite.mockTemplates = new(MockTemplateRepository)
	suite.mockLedger = new(MockLedgerRepository)
	suite.service = services.NewRestockService(suite.mockProducts, suite.mockTemplates, suite.mockLedger)
	suite.actorID = uuid.NewString()
}

// --- Test Cases ---

func (suite *RestockServiceTestSuite) TestProcessRestock_TemplateExpansion() {
	ctx := context.Background()
	colaID := uuid.NewString()
	chipsID := uuid.NewString()
	template := domain.RestockTemplate{
		TemplateID: uuid.NewString(),
		Name:       "Mixed Box",
		Components: []domain.TemplateComponent{
			{ProductID: colaID, Weight: 2, Position: 0},
			{ProductID: chipsID, Weight: 1, Position: 1},
		},
	}

	req := dto.CreateRestockRequest{
		TemplateEntries: []dto.TemplateEntryRequest{
			{TemplateID: template.TemplateID, Multiplier: 3, AggregateCost: decimal.RequireFromString("9.00")},
		},
	}

	suite.mockTemplates.On("FindTemplatesByIDs", ctx, []string{template.TemplateID}).
		Return(map[string]domain.RestockTemplate{template.TemplateID: template}, nil).Once()

	var saved domain.RestockBatch
	suite.mockLedger.On("SaveRestockBatch", ctx, mock.AnythingOfType("domain.RestockBatch")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.RestockBatch) }).
		Return(nil).Once()

	resp, err := suite.service.ProcessRestock(ctx, req, suite.actorID)

	suite.Require().NoError(err)
	suite.Require().Len(resp.Lines, 2)
	suite.Require().Len(saved.Lines, 2)

	// Weights scale with the multiplier: 2x3=6 colas, 1x3=3 chips, and the
	// 9.00 aggregate splits proportionally into 6.00 and 3.00.
	suite.Equal(colaID, saved.Lines[0].ProductID)
	suite.Equal(int64(6), saved.Lines[0].Quantity)
	suite.True(saved.Lines[0].AllocatedCost.Equal(decimal.RequireFromString("6.00")), "cola cost was %s", saved.Lines[0].AllocatedCost)
	suite.Equal(chipsID, saved.Lines[1].ProductID)
	suite.Equal(int64(3), saved.Lines[1].Quantity)
	suite.True(saved.Lines[1].AllocatedCost.Equal(decimal.RequireFromString("3.00")), "chips cost was %s", saved.Lines[1].AllocatedCost)
	suite.Require().NotNil(saved.Lines[0].SourceTemplateID)
	suite.Equal(template.TemplateID, *saved.Lines[0].SourceTemplateID)
}

func (suite *RestockServiceTestSuite) TestProcessRestock_ZeroWeightSkipped() {
	ctx := context.Background()
	colaID := uuid.NewString()
	freebieID := uuid.NewString()
	template := domain.RestockTemplate{
		TemplateID: uuid.NewString(),
		Components: []domain.TemplateComponent{
			{ProductID: colaID, Weight: 2, Position: 0},
			{ProductID: freebieID, Weight: 0, Position: 1},
		},
	}

	req := dto.CreateRestockRequest{
		TemplateEntries: []dto.TemplateEntryRequest{
			{TemplateID: template.TemplateID, Multiplier: 1, AggregateCost: decimal.RequireFromString("4.00")},
		},
	}
	suite.mockTemplates.On("FindTemplatesByIDs", ctx, mock.Anything).
		Return(map[string]domain.RestockTemplate{template.TemplateID: template}, nil).Once()

	var saved domain.RestockBatch
	suite.mockLedger.On("SaveRestockBatch", ctx, mock.AnythingOfType("domain.RestockBatch")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.RestockBatch) }).
		Return(nil).Once()

	_, err := suite.service.ProcessRestock(ctx, req, suite.actorID)

	suite.Require().NoError(err)
	suite.Require().Len(saved.Lines, 1, "zero-weight component must not produce a line")
	suite.Equal(colaID, saved.Lines[0].ProductID)
	suite.True(saved.Lines[0].AllocatedCost.Equal(decimal.RequireFromString("4.00")))
}

func (suite *RestockServiceTestSuite) TestProcessRestock_DeclaredCostFallback() {
	ctx := context.Background()
	colaID := uuid.NewString()
	template := domain.RestockTemplate{
		TemplateID:            uuid.NewString(),
		DeclaredAggregateCost: decimal.RequireFromString("12.00"),
		Components:            []domain.TemplateComponent{{ProductID: colaID, Weight: 4, Position: 0}},
	}

	// Entry carries no aggregate cost, so the declared cost stands in.
	req := dto.CreateRestockRequest{
		TemplateEntries: []dto.TemplateEntryRequest{{TemplateID: template.TemplateID, Multiplier: 1}},
	}
	suite.mockTemplates.On("FindTemplatesByIDs", ctx, mock.Anything).
		Return(map[string]domain.RestockTemplate{template.TemplateID: template}, nil).Once()

	var saved domain.RestockBatch
	suite.mockLedger.On("SaveRestockBatch", ctx, mock.AnythingOfType("domain.RestockBatch")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.RestockBatch) }).
		Return(nil).Once()

	_, err := suite.service.ProcessRestock(ctx, req, suite.actorID)

	suite.Require().NoError(err)
	suite.True(saved.Lines[0].AllocatedCost.Equal(decimal.RequireFromString("12.00")))
}

func (suite *RestockServiceTestSuite) TestProcessRestock_RawEntryDefaultCost() {
	ctx := context.Background()
	product := domain.Product{
		ProductID: uuid.NewString(),
		Name:      "Cola",
		UnitCost:  decimal.RequireFromString("1.10"),
	}

	req := dto.CreateRestockRequest{
		RawEntries: []dto.RawEntryRequest{{ProductID: product.ProductID, Quantity: 5}},
	}
	suite.mockProducts.On("FindProductsByIDs", ctx, []string{product.ProductID}).
		Return(map[string]domain.Product{product.ProductID: product}, nil).Once()

	var saved domain.RestockBatch
	suite.mockLedger.On("SaveRestockBatch", ctx, mock.AnythingOfType("domain.RestockBatch")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.RestockBatch) }).
		Return(nil).Once()

	_, err := suite.service.ProcessRestock(ctx, req, suite.actorID)

	suite.Require().NoError(err)
	suite.Require().Len(saved.Lines, 1)
	suite.Equal(int64(5), saved.Lines[0].Quantity)
	suite.True(saved.Lines[0].AllocatedCost.Equal(decimal.RequireFromString("5.50")))
	suite.Nil(saved.Lines[0].SourceTemplateID)
}

func (suite *RestockServiceTestSuite) TestProcessRestock_ZeroQuantitySkippedWithoutCommit() {
	ctx := context.Background()
	req := dto.CreateRestockRequest{
		RawEntries: []dto.RawEntryRequest{{ProductID: uuid.NewString(), Quantity: 0}},
	}

	resp, err := suite.service.ProcessRestock(ctx, req, suite.actorID)

	suite.Require().NoError(err)
	suite.Empty(resp.Lines)
	suite.mockLedger.AssertNotCalled(suite.T(), "SaveRestockBatch")
}

func (suite *RestockServiceTestSuite) TestProcessRestock_EmptyRequest() {
	_, err := suite.service.ProcessRestock(context.Background(), dto.CreateRestockRequest{}, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *RestockServiceTestSuite) TestProcessRestock_SaveAsTemplate() {
	ctx := context.Background()
	product := domain.Product{
		ProductID: uuid.NewString(),
		Name:      "Cola",
		UnitCost:  decimal.RequireFromString("2.00"),
	}
	templateName := "Usual Order"

	req := dto.CreateRestockRequest{
		RawEntries:         []dto.RawEntryRequest{{ProductID: product.ProductID, Quantity: 3}},
		SaveAsTemplateName: &templateName,
	}
	suite.mockProducts.On("FindProductsByIDs", ctx, mock.Anything).
		Return(map[string]domain.Product{product.ProductID: product}, nil).Once()
	suite.mockLedger.On("SaveRestockBatch", ctx, mock.Anything).Return(nil).Once()

	var savedTemplate domain.RestockTemplate
	suite.mockTemplates.On("SaveTemplate", ctx, mock.AnythingOfType("domain.RestockTemplate")).
		Run(func(args mock.Arguments) { savedTemplate = args.Get(1).(domain.RestockTemplate) }).
		Return(nil).Once()

	resp, err := suite.service.ProcessRestock(ctx, req, suite.actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(resp.SavedTemplateID)
	suite.Equal(templateName, savedTemplate.Name)
	suite.Require().Len(savedTemplate.Components, 1)
	suite.Equal(int64(3), savedTemplate.Components[0].Weight, "realized quantities become the weights")
	suite.True(savedTemplate.DeclaredAggregateCost.Equal(decimal.RequireFromString("6.00")))
	suite.mockTemplates.AssertExpectations(suite.T())
}

func (suite *RestockServiceTestSuite) TestCreateTemplate_RejectsNonPositiveWeight() {
	req := dto.CreateTemplateRequest{
		Name:       "Bad Box",
		Components: []dto.TemplateComponentRequest{{ProductID: uuid.NewString(), Weight: 0}},
	}

	_, err := suite.service.CreateTemplate(context.Background(), req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestRestockServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RestockServiceTestSuite))
}
