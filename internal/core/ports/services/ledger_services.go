package services

import (
	"context"

	"github.com/pesotrack/pesotrack_app/internal/core/domain"
	"github.com/pesotrack/pesotrack_app/internal/dto"
)

// LedgerSvcFacade exposes operations on stored ledger entries.
type LedgerSvcFacade interface {
	// CreateTransaction records a manual ledger entry. Expense amounts are
	// normalized to negative magnitudes before persistence.
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error)

	// GetTransaction retrieves a single stored entry.
	GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves every stored entry in insertion order.
	ListTransactions(ctx context.Context) ([]domain.Transaction, error)

	// DeleteTransaction removes a stored entry. Virtual projections cannot be
	// deleted; they disappear when their definition leaves the due window.
	DeleteTransaction(ctx context.Context, transactionID string) error
}
