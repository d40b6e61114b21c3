package services

import (
	"context"

	"github.com/pesotrack/pesotrack_app/internal/core/domain"
	"github.com/pesotrack/pesotrack_app/internal/dto"
)

// DebtSvcFacade exposes lifecycle operations on amortized debts.
type DebtSvcFacade interface {
	CreateDebt(ctx context.Context, req dto.CreateDebtRequest) (*domain.Debt, error)
	GetDebt(ctx context.Context, debtID string) (*domain.Debt, error)

	// ListDebts returns every debt with its derived amortization summary,
	// finished debts ordered last.
	ListDebts(ctx context.Context) ([]dto.DebtResponse, error)

	UpdateDebt(ctx context.Context, debtID string, req dto.UpdateDebtRequest) (*domain.Debt, error)
	DeleteDebt(ctx context.Context, debtID string) error
}
