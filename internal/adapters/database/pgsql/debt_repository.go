package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pesotrack/pesotrack_app/internal/apperrors"
	"github.com/pesotrack/pesotrack_app/internal/core/domain"
	portsrepo "github.com/pesotrack/pesotrack_app/internal/core/ports/repositories"
	"github.com/pesotrack/pesotrack_app/internal/utils/dateutil"
)

// PgxDebtRepository persists amortized debts. CurrentBalance is a cache
// column; the service layer recomputes it on every mutation.
type PgxDebtRepository struct {
	pool *pgxpool.Pool
}

// NewPgxDebtRepository creates a new repository for debts.
func NewPgxDebtRepository(pool *pgxpool.Pool) portsrepo.DebtRepository {
	return &PgxDebtRepository{pool: pool}
}

const debtColumns = `debt_id, name, total_amount, minimum_payment, next_payment_date, payment_frequency, total_installments, installments_paid, current_balance, created_at, last_updated_at`

// SaveDebt inserts a new debt.
func (r *PgxDebtRepository) SaveDebt(ctx context.Context, debt domain.Debt) error {
	query := `
		INSERT INTO debts (` + debtColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.pool.Exec(ctx, query,
		debt.ID, debt.Name, debt.TotalAmount, debt.MinimumPayment, debt.NextPaymentDate,
		debt.PaymentFrequency, debt.TotalInstallments, debt.InstallmentsPaid, debt.CurrentBalance,
		debt.CreatedAt, debt.LastUpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("debt %s: %w", debt.ID, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert debt %s: %w", debt.ID, err)
	}
	return nil
}

// UpdateDebt replaces a stored debt, keyed by its ID.
func (r *PgxDebtRepository) UpdateDebt(ctx context.Context, debt domain.Debt) error {
	query := `
		UPDATE debts
		SET name = $2, total_amount = $3, minimum_payment = $4, next_payment_date = $5,
			payment_frequency = $6, total_installments = $7, installments_paid = $8,
			current_balance = $9, last_updated_at = $10
		WHERE debt_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		debt.ID, debt.Name, debt.TotalAmount, debt.MinimumPayment, debt.NextPaymentDate,
		debt.PaymentFrequency, debt.TotalInstallments, debt.InstallmentsPaid, debt.CurrentBalance,
		debt.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update debt %s: %w", debt.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("debt %s: %w", debt.ID, apperrors.ErrNotFound)
	}
	return nil
}

// DeleteDebt removes a stored debt.
func (r *PgxDebtRepository) DeleteDebt(ctx context.Context, debtID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM debts WHERE debt_id = $1;`, debtID)
	if err != nil {
		return fmt.Errorf("failed to delete debt %s: %w", debtID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("debt %s: %w", debtID, apperrors.ErrNotFound)
	}
	return nil
}

// FindDebtByID retrieves a single stored debt.
func (r *PgxDebtRepository) FindDebtByID(ctx context.Context, debtID string) (*domain.Debt, error) {
	query := `SELECT ` + debtColumns + ` FROM debts WHERE debt_id = $1;`
	row := r.pool.QueryRow(ctx, query, debtID)
	debt, err := scanDebt(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("debt %s: %w", debtID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find debt %s: %w", debtID, err)
	}
	return debt, nil
}

// ListDebts retrieves every stored debt ordered by next payment date.
func (r *PgxDebtRepository) ListDebts(ctx context.Context) ([]domain.Debt, error) {
	query := `SELECT ` + debtColumns + ` FROM debts ORDER BY next_payment_date, debt_id;`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list debts: %w", err)
	}
	defer rows.Close()

	var debts []domain.Debt
	for rows.Next() {
		debt, err := scanDebt(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan debt row: %w", err)
		}
		debts = append(debts, *debt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating debt rows: %w", err)
	}
	return debts, nil
}

func scanDebt(row pgx.Row) (*domain.Debt, error) {
	var debt domain.Debt
	err := row.Scan(
		&debt.ID, &debt.Name, &debt.TotalAmount, &debt.MinimumPayment, &debt.NextPaymentDate,
		&debt.PaymentFrequency, &debt.TotalInstallments, &debt.InstallmentsPaid, &debt.CurrentBalance,
		&debt.CreatedAt, &debt.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	debt.NextPaymentDate = dateutil.AtNoon(debt.NextPaymentDate)
	return &debt, nil
}
