package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pesotrack/pesotrack_app/internal/apperrors"
	"github.com/pesotrack/pesotrack_app/internal/core/domain"
	portsrepo "github.com/pesotrack/pesotrack_app/internal/core/ports/repositories"
	portssvc "github.com/pesotrack/pesotrack_app/internal/core/ports/services"
	"github.com/pesotrack/pesotrack_app/internal/dto"
	"github.com/pesotrack/pesotrack_app/internal/utils/dateutil"
)

// ledgerService provides operations on stored ledger entries.
type ledgerService struct {
	BaseService
	txRepo portsrepo.TransactionRepository
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(txRepo portsrepo.TransactionRepository) portssvc.LedgerSvcFacade {
	return &ledgerService{txRepo: txRepo}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// CreateTransaction records a manual ledger entry. Expense amounts are
// stored as negative magnitudes; income keeps the sign it was given so
// reversals stay representable.
func (s *ledgerService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	date, err := dateutil.ParseISO(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	amount := req.Amount
	txType := domain.TransactionType(req.Type)
	if txType == domain.Expense {
		amount = amount.Abs().Neg()
	}

	status := domain.TransactionStatus(req.Status)
	if txType == domain.Income && status == domain.StatusPaid {
		return nil, fmt.Errorf("%w: income entries cannot have status paid", apperrors.ErrValidation)
	}
	if txType == domain.Expense && status == domain.StatusReceived {
		return nil, fmt.Errorf("%w: expense entries cannot have status received", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	tx := domain.Transaction{
		ID:       uuid.NewString(),
		Name:     req.Name,
		Amount:   amount,
		Type:     txType,
		Date:     date,
		Status:   status,
		Method:   req.Method,
		Category: req.Category,
		Source:   domain.SourceManual,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.txRepo.SaveTransaction(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to save transaction", slog.String("name", req.Name))
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	s.LogInfo(ctx, "Transaction recorded", slog.String("transaction_id", tx.ID), slog.String("type", req.Type))
	return &tx, nil
}

// GetTransaction retrieves a single stored entry.
func (s *ledgerService) GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	tx, err := s.txRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find transaction", slog.String("transaction_id", transactionID))
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	return tx, nil
}

// ListTransactions retrieves every stored entry in insertion order.
func (s *ledgerService) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	txs, err := s.txRepo.ListTransactions(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions")
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txs, nil
}

// DeleteTransaction removes a stored entry. Virtual projections are not
// stored and therefore not deletable.
func (s *ledgerService) DeleteTransaction(ctx context.Context, transactionID string) error {
	if domain.IsVirtualID(transactionID) {
		return fmt.Errorf("%w: projected entries cannot be deleted", apperrors.ErrValidation)
	}
	if err := s.txRepo.DeleteTransaction(ctx, transactionID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete transaction", slog.String("transaction_id", transactionID))
		}
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	s.LogInfo(ctx, "Transaction deleted", slog.String("transaction_id", transactionID))
	return nil
}
