package services

import (
	"context"

	"github.com/pesotrack/pesotrack_app/internal/core/domain"
	"github.com/pesotrack/pesotrack_app/internal/dto"
)

// AccountSvcFacade exposes lifecycle operations on balance-holding accounts.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error)
	GetAccount(ctx context.Context, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	DeleteAccount(ctx context.Context, accountID string) error
}
