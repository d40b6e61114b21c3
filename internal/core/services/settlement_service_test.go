package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/pesotrack/pesotrack_app/internal/apperrors"
	"github.com/pesotrack/pesotrack_app/internal/core/domain"
	portssvc "github.com/pesotrack/pesotrack_app/internal/core/ports/services"
	"github.com/pesotrack/pesotrack_app/internal/core/services"
	"github.com/pesotrack/pesotrack_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Setup ---

type SettlementServiceTestSuite struct {
	suite.Suite
	mockTxRepo        *MockTransactionRepository
	mockRecurringRepo *MockRecurringRepository
	mockDebtRepo      *MockDebtRepository
	mockAccountRepo   *MockAccountRepository
	service           portssvc.SettlementSvcFacade

	// The suite clock is pinned to Wednesday 2025-01-01; the due window
	// for every test therefore ends Sunday 2025-01-05.
	now time.Time
}

func (suite *SettlementServiceTestSuite) SetupTest() {
	suite.mockTxRepo = new(MockTransactionRepository)
	suite.mockRecurringRepo = new(MockRecurringRepository)
	suite.mockDebtRepo = new(MockDebtRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.now = time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC)
	suite.service = services.NewSettlementService(
		suite.mockTxRepo,
		suite.mockRecurringRepo,
		suite.mockDebtRepo,
		suite.mockAccountRepo,
		services.WithClock(func() time.Time { return suite.now }),
	)
}

func (suite *SettlementServiceTestSuite) date(iso string) time.Time {
	parsed, err := time.Parse("2006-01-02", iso)
	suite.Require().NoError(err)
	return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 12, 0, 0, 0, time.UTC)
}

// --- Recurring settlements ---

func (suite *SettlementServiceTestSuite) TestSettle_RecurringAdvancesSchedule() {
	ctx := context.Background()
	def := &domain.RecurringDefinition{
		ID:        "def-rent",
		Name:      "Rent",
		Amount:    decimal.RequireFromString("100"),
		Frequency: domain.Biweekly,
		NextDate:  suite.date("2025-01-01"),
	}

	suite.mockRecurringRepo.On("FindRecurringByID", ctx, "def-rent").Return(def, nil).Once()
	suite.mockTxRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(tx domain.Transaction) bool {
		return tx.Amount.Equal(decimal.RequireFromString("-100")) &&
			tx.Type == domain.Expense &&
			tx.Status == domain.StatusPaid &&
			tx.Source == domain.SourceManual &&
			tx.Method == "cash"
	})).Return(nil).Once()
	suite.mockRecurringRepo.On("UpdateRecurring", ctx, mock.MatchedBy(func(updated domain.RecurringDefinition) bool {
		return updated.NextDate.Format("2006-01-02") == "2025-01-16"
	})).Return(nil).Once()

	// The obligation arrives under its projected virtual id; the prefix is
	// stripped before the definition lookup.
	result, err := suite.service.Settle(ctx, dto.SettleRequest{
		Kind:         "recurring",
		ObligationID: "pending-def-rent",
		Method:       "cash",
	})

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.Require().NotNil(result.Recurring)
	suite.Equal("2025-01-16", result.Recurring.NextDate.Format("2006-01-02"))
	suite.Nil(result.Debt)

	suite.mockTxRepo.AssertExpectations(suite.T())
	suite.mockRecurringRepo.AssertExpectations(suite.T())
}

func (suite *SettlementServiceTestSuite) TestSettle_RecurringAlreadySettled() {
	ctx := context.Background()
	def := &domain.RecurringDefinition{
		ID:        "def-rent",
		Name:      "Rent",
		Amount:    decimal.RequireFromString("100"),
		Frequency: domain.Biweekly,
		// Already advanced past Sunday the 5th: a repeated click.
		NextDate: suite.date("2025-01-16"),
	}

	suite.mockRecurringRepo.On("FindRecurringByID", ctx, "def-rent").Return(def, nil).Once()

	result, err := suite.service.Settle(ctx, dto.SettleRequest{
		Kind:         "recurring",
		ObligationID: "def-rent",
	})

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, services.ErrAlreadySettled)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockTxRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *SettlementServiceTestSuite) TestSettle_RecurringLatePaymentStillSettles() {
	ctx := context.Background()
	def := &domain.RecurringDefinition{
		ID:        "def-gym",
		Name:      "Gym",
		Amount:    decimal.RequireFromString("40"),
		Frequency: domain.Biweekly,
		// Overdue from last year; settling late must advance from the
		// scheduled date, not from today.
		NextDate: suite.date("2024-12-25"),
	}

	suite.mockRecurringRepo.On("FindRecurringByID", ctx, "def-gym").Return(def, nil).Once()
	suite.mockTxRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()
	suite.mockRecurringRepo.On("UpdateRecurring", ctx, mock.MatchedBy(func(updated domain.RecurringDefinition) bool {
		return updated.NextDate.Format("2006-01-02") == "2025-01-09"
	})).Return(nil).Once()

	result, err := suite.service.Settle(ctx, dto.SettleRequest{
		Kind:         "recurring",
		ObligationID: "def-gym",
	})

	suite.Require().NoError(err)
	suite.Equal("2025-01-09", result.Recurring.NextDate.Format("2006-01-02"))
	suite.mockRecurringRepo.AssertExpectations(suite.T())
}

func (suite *SettlementServiceTestSuite) TestSettle_RecurringScheduleWriteFails() {
	ctx := context.Background()
	def := &domain.RecurringDefinition{
		ID:        "def-rent",
		Name:      "Rent",
		Amount:    decimal.RequireFromString("100"),
		Frequency: domain.Monthly,
		NextDate:  suite.date("2025-01-01"),
	}

	suite.mockRecurringRepo.On("FindRecurringByID", ctx, "def-rent").Return(def, nil).Once()
	suite.mockTxRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()
	suite.mockRecurringRepo.On("UpdateRecurring", ctx, mock.AnythingOfType("domain.RecurringDefinition")).
		Return(apperrors.ErrInternal).Once()

	result, err := suite.service.Settle(ctx, dto.SettleRequest{
		Kind:         "recurring",
		ObligationID: "def-rent",
	})

	// The posted transaction is not rolled back; the error surfaces the
	// partial write for the caller to reload.
	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorContains(err, "payment posted but schedule not advanced")
	suite.mockTxRepo.AssertExpectations(suite.T())
}

// --- Debt settlements ---

func (suite *SettlementServiceTestSuite) TestSettle_DebtInstallment() {
	ctx := context.Background()
	debt := &domain.Debt{
		ID:                "debt-laptop",
		Name:              "Laptop loan",
		TotalAmount:       decimal.RequireFromString("1000"),
		MinimumPayment:    decimal.RequireFromString("300"),
		NextPaymentDate:   suite.date("2025-01-01"),
		PaymentFrequency:  domain.Monthly,
		TotalInstallments: 4,
		InstallmentsPaid:  1,
		CurrentBalance:    decimal.RequireFromString("750"),
	}

	suite.mockDebtRepo.On("FindDebtByID", ctx, "debt-laptop").Return(debt, nil).Once()
	suite.mockTxRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(tx domain.Transaction) bool {
		return tx.Amount.Equal(decimal.RequireFromString("-250")) &&
			tx.Name == "Laptop loan" &&
			tx.Status == domain.StatusPaid
	})).Return(nil).Once()
	suite.mockDebtRepo.On("UpdateDebt", ctx, mock.MatchedBy(func(updated domain.Debt) bool {
		return updated.InstallmentsPaid == 2 &&
			updated.CurrentBalance.Equal(decimal.RequireFromString("500")) &&
			updated.NextPaymentDate.Format("2006-01-02") == "2025-02-01"
	})).Return(nil).Once()

	result, err := suite.service.Settle(ctx, dto.SettleRequest{
		Kind:         "debt",
		ObligationID: "debt-laptop",
	})

	suite.Require().NoError(err)
	suite.Require().NotNil(result.Debt)
	suite.Equal(2, result.Debt.InstallmentsPaid)
	suite.True(result.Debt.CurrentBalance.Equal(decimal.RequireFromString("500")), "balance: got %s", result.Debt.CurrentBalance)
	suite.Nil(result.Recurring)

	suite.mockTxRepo.AssertExpectations(suite.T())
	suite.mockDebtRepo.AssertExpectations(suite.T())
}

func (suite *SettlementServiceTestSuite) TestSettle_DebtOverriddenPlanReportsDecrementedBalance() {
	ctx := context.Background()
	// Plan length explicitly overridden to 10, so the per-installment charge
	// is 100 even though the minimum payment says 300. The balance reported
	// back must be the persisted 900, not a 700 re-derivation from counters.
	debt := &domain.Debt{
		ID:                "debt-override",
		Name:              "Car loan",
		TotalAmount:       decimal.RequireFromString("1000"),
		MinimumPayment:    decimal.RequireFromString("300"),
		NextPaymentDate:   suite.date("2025-01-01"),
		PaymentFrequency:  domain.Monthly,
		TotalInstallments: 10,
		InstallmentsPaid:  0,
		CurrentBalance:    decimal.RequireFromString("1000"),
	}

	suite.mockDebtRepo.On("FindDebtByID", ctx, "debt-override").Return(debt, nil).Once()
	suite.mockTxRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(tx domain.Transaction) bool {
		return tx.Amount.Equal(decimal.RequireFromString("-100"))
	})).Return(nil).Once()
	suite.mockDebtRepo.On("UpdateDebt", ctx, mock.MatchedBy(func(updated domain.Debt) bool {
		return updated.CurrentBalance.Equal(decimal.RequireFromString("900"))
	})).Return(nil).Once()

	result, err := suite.service.Settle(ctx, dto.SettleRequest{
		Kind:         "debt",
		ObligationID: "debt-override",
	})

	suite.Require().NoError(err)
	suite.True(result.Debt.CurrentBalance.Equal(decimal.RequireFromString("900")), "balance: got %s", result.Debt.CurrentBalance)

	resp := dto.ToSettleResponse(result)
	suite.Require().NotNil(resp.Debt)
	suite.True(resp.Debt.CurrentBalance.Equal(decimal.RequireFromString("900")), "response balance must match the persisted one: got %s", resp.Debt.CurrentBalance)
	suite.True(resp.Debt.AmountPaid.Equal(decimal.RequireFromString("100")), "amount paid: got %s", resp.Debt.AmountPaid)

	suite.mockTxRepo.AssertExpectations(suite.T())
	suite.mockDebtRepo.AssertExpectations(suite.T())
}

func (suite *SettlementServiceTestSuite) TestSettle_DebtFinalPaymentClampsToZero() {
	ctx := context.Background()
	debt := &domain.Debt{
		ID:                "debt-card",
		Name:              "Card",
		TotalAmount:       decimal.RequireFromString("1000"),
		MinimumPayment:    decimal.RequireFromString("300"),
		NextPaymentDate:   suite.date("2025-01-01"),
		PaymentFrequency:  domain.Monthly,
		TotalInstallments: 4,
		InstallmentsPaid:  3,
		CurrentBalance:    decimal.RequireFromString("100"),
	}

	suite.mockDebtRepo.On("FindDebtByID", ctx, "debt-card").Return(debt, nil).Once()
	suite.mockTxRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()
	suite.mockDebtRepo.On("UpdateDebt", ctx, mock.MatchedBy(func(updated domain.Debt) bool {
		return updated.CurrentBalance.IsZero()
	})).Return(nil).Once()

	result, err := suite.service.Settle(ctx, dto.SettleRequest{
		Kind:         "debt",
		ObligationID: "debt-card",
	})

	suite.Require().NoError(err)
	suite.True(result.Debt.Finished())
	suite.mockDebtRepo.AssertExpectations(suite.T())
}

func (suite *SettlementServiceTestSuite) TestSettle_DebtAlreadyFinished() {
	ctx := context.Background()
	debt := &domain.Debt{
		ID:             "debt-done",
		Name:           "Paid off",
		TotalAmount:    decimal.RequireFromString("500"),
		CurrentBalance: decimal.RequireFromString("0.05"),
	}

	suite.mockDebtRepo.On("FindDebtByID", ctx, "debt-done").Return(debt, nil).Once()

	result, err := suite.service.Settle(ctx, dto.SettleRequest{
		Kind:         "debt",
		ObligationID: "debt-done",
	})

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, services.ErrDebtFinished)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockTxRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

// --- Manual settlements ---

func (suite *SettlementServiceTestSuite) TestSettle_ManualFlipsPendingToPaid() {
	ctx := context.Background()
	pending := &domain.Transaction{
		ID:     "tx-dentist",
		Name:   "Dentist",
		Amount: decimal.RequireFromString("-80"),
		Type:   domain.Expense,
		Date:   suite.date("2025-01-03"),
		Status: domain.StatusPending,
		Source: domain.SourceManual,
	}

	suite.mockTxRepo.On("FindTransactionByID", ctx, "tx-dentist").Return(pending, nil).Once()
	suite.mockTxRepo.On("UpdateTransaction", ctx, mock.MatchedBy(func(updated domain.Transaction) bool {
		return updated.ID == "tx-dentist" &&
			updated.Status == domain.StatusPaid &&
			updated.Method == "BBVA Debit" &&
			updated.Amount.Equal(decimal.RequireFromString("-80")) &&
			updated.Date.Format("2006-01-02") == "2025-01-03"
	})).Return(nil).Once()

	result, err := suite.service.Settle(ctx, dto.SettleRequest{
		Kind:         "manual",
		ObligationID: "tx-dentist",
		Method:       "BBVA Debit",
	})

	suite.Require().NoError(err)
	suite.Equal("tx-dentist", result.Transaction.ID, "manual settlement updates in place, no new entry")
	suite.Equal(domain.StatusPaid, result.Transaction.Status)
	suite.Nil(result.Recurring)
	suite.Nil(result.Debt)

	suite.mockTxRepo.AssertExpectations(suite.T())
}

func (suite *SettlementServiceTestSuite) TestSettle_ManualRejectsNonPending() {
	ctx := context.Background()
	paid := &domain.Transaction{
		ID:     "tx-paid",
		Status: domain.StatusPaid,
		Source: domain.SourceManual,
	}

	suite.mockTxRepo.On("FindTransactionByID", ctx, "tx-paid").Return(paid, nil).Once()

	result, err := suite.service.Settle(ctx, dto.SettleRequest{
		Kind:         "manual",
		ObligationID: "tx-paid",
	})

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockTxRepo.AssertNotCalled(suite.T(), "UpdateTransaction", mock.Anything, mock.Anything)
}

// --- Method resolution ---

func (suite *SettlementServiceTestSuite) TestSettle_AccountNameResolvesMethod() {
	ctx := context.Background()
	account := &domain.Account{ID: "acc-1", Name: "Savings", Type: domain.AccountDebit}
	def := &domain.RecurringDefinition{
		ID:        "def-rent",
		Name:      "Rent",
		Amount:    decimal.RequireFromString("100"),
		Frequency: domain.Weekly,
		NextDate:  suite.date("2025-01-01"),
	}

	suite.mockAccountRepo.On("FindAccountByName", ctx, "Savings").Return(account, nil).Once()
	suite.mockRecurringRepo.On("FindRecurringByID", ctx, "def-rent").Return(def, nil).Once()
	suite.mockTxRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(tx domain.Transaction) bool {
		return tx.Method == "Savings"
	})).Return(nil).Once()
	suite.mockRecurringRepo.On("UpdateRecurring", ctx, mock.AnythingOfType("domain.RecurringDefinition")).Return(nil).Once()

	_, err := suite.service.Settle(ctx, dto.SettleRequest{
		Kind:         "recurring",
		ObligationID: "def-rent",
		AccountName:  "Savings",
	})

	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockTxRepo.AssertExpectations(suite.T())
}

func (suite *SettlementServiceTestSuite) TestSettle_UnknownAccountRejected() {
	ctx := context.Background()
	suite.mockAccountRepo.On("FindAccountByName", ctx, "Ghost").Return(nil, apperrors.ErrNotFound).Once()

	result, err := suite.service.Settle(ctx, dto.SettleRequest{
		Kind:         "recurring",
		ObligationID: "def-rent",
		AccountName:  "Ghost",
	})

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRecurringRepo.AssertNotCalled(suite.T(), "FindRecurringByID", mock.Anything, mock.Anything)
}

func (suite *SettlementServiceTestSuite) TestSettle_UnknownKindRejected() {
	ctx := context.Background()

	result, err := suite.service.Settle(ctx, dto.SettleRequest{
		Kind:         "subscription",
		ObligationID: "whatever",
	})

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestSettlementServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SettlementServiceTestSuite))
}
