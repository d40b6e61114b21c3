package services_test

import (
	"context"
	"testing"

	"github.com/pesotrack/pesotrack_app/internal/apperrors"
	"github.com/pesotrack/pesotrack_app/internal/core/domain"
	portssvc "github.com/pesotrack/pesotrack_app/internal/core/ports/services"
	"github.com/pesotrack/pesotrack_app/internal/core/services"
	"github.com/pesotrack/pesotrack_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockTransactionRepository is a mock type for the TransactionRepository interface
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, tx domain.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, tx domain.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}

// --- Test Suite Setup ---

type LedgerServiceTestSuite struct {
	suite.Suite
	mockRepo *MockTransactionRepository
	service  portssvc.LedgerSvcFacade
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockTransactionRepository)
	suite.service = services.NewLedgerService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *LedgerServiceTestSuite) TestCreateTransaction_ExpenseStoredNegative() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Name:   "Groceries",
		Amount: decimal.RequireFromString("85.50"),
		Type:   "expense",
		Date:   "2025-01-06",
		Status: "paid",
	}

	suite.mockRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()

	created, err := suite.service.CreateTransaction(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.NotEmpty(created.ID)
	suite.True(created.Amount.Equal(decimal.RequireFromString("-85.50")), "expense must be stored as a negative magnitude")
	suite.Equal(domain.Expense, created.Type)
	suite.Equal(domain.SourceManual, created.Source)
	suite.Equal("2025-01-06", created.Date.Format("2006-01-02"))
	suite.Equal(12, created.Date.Hour())

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestCreateTransaction_NegativeExpenseInputKeptNegative() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Name:   "Rent",
		Amount: decimal.RequireFromString("-1200"),
		Type:   "expense",
		Date:   "2025-01-06",
		Status: "pending",
	}

	suite.mockRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()

	created, err := suite.service.CreateTransaction(ctx, req)

	suite.Require().NoError(err)
	suite.True(created.Amount.Equal(decimal.RequireFromString("-1200")))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestCreateTransaction_IncomePaidRejected() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Name:   "Salary",
		Amount: decimal.RequireFromString("500"),
		Type:   "income",
		Date:   "2025-01-06",
		Status: "paid",
	}

	created, err := suite.service.CreateTransaction(ctx, req)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestCreateTransaction_ExpenseReceivedRejected() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Name:   "Groceries",
		Amount: decimal.RequireFromString("85.50"),
		Type:   "expense",
		Date:   "2025-01-06",
		Status: "received",
	}

	created, err := suite.service.CreateTransaction(ctx, req)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestCreateTransaction_BadDate() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Name:   "Groceries",
		Amount: decimal.RequireFromString("10"),
		Type:   "expense",
		Date:   "06/01/2025",
		Status: "paid",
	}

	created, err := suite.service.CreateTransaction(ctx, req)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestGetTransaction_NotFound() {
	ctx := context.Background()
	suite.mockRepo.On("FindTransactionByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	got, err := suite.service.GetTransaction(ctx, "missing")

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestDeleteTransaction_VirtualIDRejected() {
	ctx := context.Background()

	err := suite.service.DeleteTransaction(ctx, "pending-def-rent")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteTransaction", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestDeleteTransaction_Success() {
	ctx := context.Background()
	suite.mockRepo.On("DeleteTransaction", ctx, "tx-1").Return(nil).Once()

	err := suite.service.DeleteTransaction(ctx, "tx-1")

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestListTransactions_Success() {
	ctx := context.Background()
	stored := []domain.Transaction{{ID: "tx-1"}, {ID: "tx-2"}}
	suite.mockRepo.On("ListTransactions", ctx).Return(stored, nil).Once()

	got, err := suite.service.ListTransactions(ctx)

	suite.Require().NoError(err)
	suite.Len(got, 2)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
