package repositories

import (
	"context"

	"github.com/pesotrack/pesotrack_app/internal/core/domain"
)

// AccountReader defines read operations for accounts.
type AccountReader interface {
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	FindAccountByName(ctx context.Context, name string) (*domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)
}

// AccountWriter defines write operations for accounts.
type AccountWriter interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	DeleteAccount(ctx context.Context, accountID string) error
}

// AccountRepository combines account read and write operations.
type AccountRepository interface {
	AccountReader
	AccountWriter
}
