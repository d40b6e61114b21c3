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

	"github.com/pesotrack/pesotrack_app/internal/apperrors"
	"github.com/pesotrack/pesotrack_app/internal/core/domain"
	portsrepo "github.com/pesotrack/pesotrack_app/internal/core/ports/repositories"
	portssvc "github.com/pesotrack/pesotrack_app/internal/core/ports/services"
	"github.com/pesotrack/pesotrack_app/internal/dto"
	"github.com/pesotrack/pesotrack_app/internal/utils/dateutil"
)

var (
	// ErrAlreadySettled signals a repeated settlement of an obligation whose
	// schedule has already advanced past the current due window.
	ErrAlreadySettled = fmt.Errorf("%w: obligation already settled for this cycle", apperrors.ErrConflict)

	// ErrDebtFinished signals a payment against a debt whose balance is
	// within the settled epsilon.
	ErrDebtFinished = fmt.Errorf("%w: debt is already paid off", apperrors.ErrConflict)
)

// settlementService converts pending obligations into posted transactions
// and advances their source schedules. Each settlement performs one
// transaction write and at most one definition write, best-effort: a failed
// second write is reported but the posted transaction is not rolled back; a
// reload reconciles the difference.
type settlementService struct {
	BaseService
	txRepo        portsrepo.TransactionRepository
	recurringRepo portsrepo.RecurringRepository
	debtRepo      portsrepo.DebtRepository
	accountRepo   portsrepo.AccountReader
	// now is injectable for tests; defaults to time.Now.
	now func() time.Time
}

// SettlementServiceOption configures the settlement service.
type SettlementServiceOption func(*settlementService)

// WithClock overrides the settlement clock.
func WithClock(now func() time.Time) SettlementServiceOption {
	return func(s *settlementService) {
		s.now = now
	}
}

// NewSettlementService creates a new settlement service.
func NewSettlementService(
	txRepo portsrepo.TransactionRepository,
	recurringRepo portsrepo.RecurringRepository,
	debtRepo portsrepo.DebtRepository,
	accountRepo portsrepo.AccountReader,
	options ...SettlementServiceOption,
) portssvc.SettlementSvcFacade {
	svc := &settlementService{
		txRepo:        txRepo,
		recurringRepo: recurringRepo,
		debtRepo:      debtRepo,
		accountRepo:   accountRepo,
		now:           time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.SettlementSvcFacade = (*settlementService)(nil)

// Settle dispatches on the validated settlement kind.
func (s *settlementService) Settle(ctx context.Context, req dto.SettleRequest) (*domain.SettlementResult, error) {
	method, err := s.resolveMethod(ctx, req)
	if err != nil {
		return nil, err
	}
	today := dateutil.AtNoon(s.now().UTC())

	switch domain.SettlementKind(req.Kind) {
	case domain.SettleRecurring:
		return s.settleRecurring(ctx, req.ObligationID, method, today)
	case domain.SettleDebt:
		return s.settleDebt(ctx, req.ObligationID, method, today)
	case domain.SettleManual:
		return s.settleManual(ctx, req.ObligationID, method)
	default:
		return nil, fmt.Errorf("%w: unknown settlement kind %q", apperrors.ErrValidation, req.Kind)
	}
}

// resolveMethod picks the settling account name: a named account must exist,
// otherwise the free-form method is used as-is.
func (s *settlementService) resolveMethod(ctx context.Context, req dto.SettleRequest) (string, error) {
	if req.AccountName == "" {
		return req.Method, nil
	}
	account, err := s.accountRepo.FindAccountByName(ctx, req.AccountName)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", fmt.Errorf("%w: settling account %q does not exist", apperrors.ErrValidation, req.AccountName)
		}
		return "", fmt.Errorf("failed to resolve settling account: %w", err)
	}
	return account.Name, nil
}

// settleRecurring posts the full cycle amount as a paid expense and advances
// the definition's schedule from the scheduled date, never from today, so a
// late payment does not drift the cycle forward.
func (s *settlementService) settleRecurring(ctx context.Context, obligationID, method string, today time.Time) (*domain.SettlementResult, error) {
	definitionID := strings.TrimPrefix(obligationID, domain.VirtualIDPrefix)

	def, err := s.recurringRepo.FindRecurringByID(ctx, definitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find recurring definition %s: %w", definitionID, err)
	}

	// A schedule already advanced beyond this week's window means this is a
	// repeated click settling next cycle's obligation; reject instead of
	// silently double charging.
	_, windowEnd := dateutil.WeekWindow(today)
	if dateutil.AtNoon(def.NextDate).After(windowEnd) {
		s.LogWarn(ctx, "Rejected repeated settlement", slog.String("definition_id", def.ID))
		return nil, ErrAlreadySettled
	}

	posted := domain.Transaction{
		ID:     uuid.NewString(),
		Name:   def.Name,
		Amount: def.Amount.Abs().Neg(),
		Type:   domain.Expense,
		Date:   today,
		Status: domain.StatusPaid,
		Method: method,
		Source: domain.SourceManual,
		AuditFields: domain.AuditFields{
			CreatedAt:     s.now().UTC(),
			LastUpdatedAt: s.now().UTC(),
		},
	}
	if err := s.txRepo.SaveTransaction(ctx, posted); err != nil {
		s.LogError(ctx, err, "Failed to post settlement transaction", slog.String("definition_id", def.ID))
		return nil, fmt.Errorf("failed to post settlement transaction: %w", err)
	}

	advanced, err := domain.NextOccurrence(def.NextDate, def.Frequency)
	if err != nil {
		// The payment is posted; an unadvanced schedule only means the
		// obligation reappears next load.
		s.LogError(ctx, err, "Failed to advance schedule after posting payment", slog.String("definition_id", def.ID))
		return nil, err
	}
	def.NextDate = advanced
	def.LastUpdatedAt = s.now().UTC()
	if err := s.recurringRepo.UpdateRecurring(ctx, *def); err != nil {
		s.LogError(ctx, err, "Failed to persist advanced schedule", slog.String("definition_id", def.ID))
		return nil, fmt.Errorf("payment posted but schedule not advanced: %w", err)
	}

	s.LogInfo(ctx, "Recurring obligation settled",
		slog.String("definition_id", def.ID),
		slog.String("transaction_id", posted.ID),
		slog.String("next_date", dateutil.FormatISO(def.NextDate)))
	return &domain.SettlementResult{Transaction: posted, Recurring: def}, nil
}

// settleDebt posts one installment payment and updates the debt's counters.
// The payment amount is automatic: the even per-installment share when the
// plan length is known, else the minimum payment, else the full balance.
func (s *settlementService) settleDebt(ctx context.Context, debtID, method string, today time.Time) (*domain.SettlementResult, error) {
	debt, err := s.debtRepo.FindDebtByID(ctx, debtID)
	if err != nil {
		return nil, fmt.Errorf("failed to find debt %s: %w", debtID, err)
	}
	if debt.Finished() {
		return nil, ErrDebtFinished
	}

	payment := debt.AutomaticPayment()
	posted := domain.Transaction{
		ID:     uuid.NewString(),
		Name:   debt.Name,
		Amount: payment.Abs().Neg(),
		Type:   domain.Expense,
		Date:   today,
		Status: domain.StatusPaid,
		Method: method,
		Source: domain.SourceManual,
		AuditFields: domain.AuditFields{
			CreatedAt:     s.now().UTC(),
			LastUpdatedAt: s.now().UTC(),
		},
	}
	if err := s.txRepo.SaveTransaction(ctx, posted); err != nil {
		s.LogError(ctx, err, "Failed to post debt payment", slog.String("debt_id", debt.ID))
		return nil, fmt.Errorf("failed to post debt payment: %w", err)
	}

	debt.InstallmentsPaid++
	if _, err := debt.Summary(); err != nil {
		s.LogError(ctx, err, "Debt counters failed amortization check after payment", slog.String("debt_id", debt.ID))
		return nil, err
	}
	// The authoritative balance is the principal minus verified payments, so
	// it decrements by the actual amount charged, not by an installment-count
	// derivation that could drift under an overridden plan length.
	balance := debt.CurrentBalance.Sub(payment)
	if balance.IsNegative() {
		balance = decimal.Zero
	}
	debt.CurrentBalance = balance

	advanced, err := domain.NextOccurrence(debt.NextPaymentDate, debt.PaymentFrequency)
	if err != nil {
		s.LogError(ctx, err, "Failed to advance debt schedule after posting payment", slog.String("debt_id", debt.ID))
		return nil, err
	}
	debt.NextPaymentDate = advanced
	debt.LastUpdatedAt = s.now().UTC()
	if err := s.debtRepo.UpdateDebt(ctx, *debt); err != nil {
		s.LogError(ctx, err, "Failed to persist debt after payment", slog.String("debt_id", debt.ID))
		return nil, fmt.Errorf("payment posted but debt not updated: %w", err)
	}

	s.LogInfo(ctx, "Debt installment settled",
		slog.String("debt_id", debt.ID),
		slog.String("transaction_id", posted.ID),
		slog.Int("installments_paid", debt.InstallmentsPaid))
	return &domain.SettlementResult{Transaction: posted, Debt: debt}, nil
}

// settleManual flips a stored future-dated pending expense to paid in place:
// same id, date and amount untouched, no schedule involved.
func (s *settlementService) settleManual(ctx context.Context, transactionID, method string) (*domain.SettlementResult, error) {
	tx, err := s.txRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	if tx.Status != domain.StatusPending || tx.Source != domain.SourceManual {
		return nil, fmt.Errorf("%w: transaction %s is not a settleable pending entry", apperrors.ErrConflict, transactionID)
	}

	tx.Status = domain.StatusPaid
	if method != "" {
		tx.Method = method
	}
	tx.LastUpdatedAt = s.now().UTC()
	if err := s.txRepo.UpdateTransaction(ctx, *tx); err != nil {
		s.LogError(ctx, err, "Failed to settle pending transaction", slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to settle pending transaction: %w", err)
	}

	s.LogInfo(ctx, "Pending transaction settled in place", slog.String("transaction_id", transactionID))
	return &domain.SettlementResult{Transaction: *tx}, nil
}
