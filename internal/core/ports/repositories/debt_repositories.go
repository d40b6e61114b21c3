package repositories

import (
	"context"

	"github.com/pesotrack/pesotrack_app/internal/core/domain"
)

// DebtReader defines read operations for debts.
type DebtReader interface {
	FindDebtByID(ctx context.Context, debtID string) (*domain.Debt, error)
	ListDebts(ctx context.Context) ([]domain.Debt, error)
}

// DebtWriter defines write operations for debts.
type DebtWriter interface {
	SaveDebt(ctx context.Context, debt domain.Debt) error
	UpdateDebt(ctx context.Context, debt domain.Debt) error
	DeleteDebt(ctx context.Context, debtID string) error
}

// DebtRepository combines debt read and write operations.
type DebtRepository interface {
	DebtReader
	DebtWriter
}
