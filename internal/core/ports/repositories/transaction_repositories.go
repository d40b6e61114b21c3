package repositories

import (
	"context"

	"github.com/pesotrack/pesotrack_app/internal/core/domain"
)

// TransactionReader defines read operations for ledger entries.
type TransactionReader interface {
	// FindTransactionByID retrieves a single stored ledger entry.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves every stored ledger entry in insertion order.
	ListTransactions(ctx context.Context) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for ledger entries.
type TransactionWriter interface {
	// SaveTransaction persists a new ledger entry.
	SaveTransaction(ctx context.Context, tx domain.Transaction) error

	// UpdateTransaction replaces a stored ledger entry, keyed by its ID.
	UpdateTransaction(ctx context.Context, tx domain.Transaction) error

	// DeleteTransaction removes a stored ledger entry.
	DeleteTransaction(ctx context.Context, transactionID string) error
}

// TransactionRepository combines ledger read and write operations.
type TransactionRepository interface {
	TransactionReader
	TransactionWriter
}
