package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/pesotrack/pesotrack_app/internal/apperrors"
	"github.com/pesotrack/pesotrack_app/internal/core/domain"
	portsrepo "github.com/pesotrack/pesotrack_app/internal/core/ports/repositories"
	portssvc "github.com/pesotrack/pesotrack_app/internal/core/ports/services"
	"github.com/pesotrack/pesotrack_app/internal/dto"
	"github.com/pesotrack/pesotrack_app/internal/utils/dateutil"
)

// debtService manages amortized debts and their derived summaries.
type debtService struct {
	BaseService
	debtRepo portsrepo.DebtRepository
}

// NewDebtService creates a new debt service.
func NewDebtService(debtRepo portsrepo.DebtRepository) portssvc.DebtSvcFacade {
	return &debtService{debtRepo: debtRepo}
}

var _ portssvc.DebtSvcFacade = (*debtService)(nil)

// CreateDebt registers a new amortized obligation. The installment plan and
// cached balance are derived up front via the amortization calculator so
// invalid plans are rejected before anything is persisted.
func (s *debtService) CreateDebt(ctx context.Context, req dto.CreateDebtRequest) (*domain.Debt, error) {
	nextPayment, err := dateutil.ParseISO(req.NextPaymentDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	summary, err := domain.ComputeDebtSummary(req.TotalAmount, req.MinimumPayment, req.InstallmentsPaid, req.TotalInstallments)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	debt := domain.Debt{
		ID:                uuid.NewString(),
		Name:              req.Name,
		TotalAmount:       req.TotalAmount,
		MinimumPayment:    req.MinimumPayment,
		NextPaymentDate:   nextPayment,
		PaymentFrequency:  domain.Frequency(req.PaymentFrequency),
		TotalInstallments: summary.TotalInstallments,
		InstallmentsPaid:  req.InstallmentsPaid,
		CurrentBalance:    summary.CurrentBalance,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.debtRepo.SaveDebt(ctx, debt); err != nil {
		s.LogError(ctx, err, "Failed to save debt", slog.String("name", req.Name))
		return nil, fmt.Errorf("failed to save debt: %w", err)
	}

	s.LogInfo(ctx, "Debt created", slog.String("debt_id", debt.ID), slog.Int("installments", summary.TotalInstallments))
	return &debt, nil
}

// GetDebt retrieves a single debt.
func (s *debtService) GetDebt(ctx context.Context, debtID string) (*domain.Debt, error) {
	debt, err := s.debtRepo.FindDebtByID(ctx, debtID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find debt", slog.String("debt_id", debtID))
		}
		return nil, fmt.Errorf("failed to find debt %s: %w", debtID, err)
	}
	return debt, nil
}

// ListDebts returns every debt with its amortization summary. Active debts
// come first; finished debts are terminal and sort last.
func (s *debtService) ListDebts(ctx context.Context) ([]dto.DebtResponse, error) {
	debts, err := s.debtRepo.ListDebts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list debts")
		return nil, fmt.Errorf("failed to list debts: %w", err)
	}

	responses := make([]dto.DebtResponse, 0, len(debts))
	for i := range debts {
		summary, err := debts[i].Summary()
		if err != nil {
			// A stored debt that no longer validates is a data error; report
			// it rather than render a bogus balance.
			s.LogError(ctx, err, "Stored debt failed amortization check", slog.String("debt_id", debts[i].ID))
			return nil, fmt.Errorf("debt %s: %w", debts[i].ID, err)
		}
		responses = append(responses, dto.ToDebtResponse(&debts[i], summary))
	}

	sort.SliceStable(responses, func(i, j int) bool {
		return !responses[i].Finished && responses[j].Finished
	})
	return responses, nil
}

// UpdateDebt edits a debt's name, minimum payment or cadence. Counters and
// the cached balance only move through settlement.
func (s *debtService) UpdateDebt(ctx context.Context, debtID string, req dto.UpdateDebtRequest) (*domain.Debt, error) {
	debt, err := s.debtRepo.FindDebtByID(ctx, debtID)
	if err != nil {
		return nil, fmt.Errorf("failed to find debt %s: %w", debtID, err)
	}

	updated := false
	if req.Name != nil {
		debt.Name = *req.Name
		updated = true
	}
	if req.MinimumPayment != nil {
		if req.MinimumPayment.IsNegative() {
			return nil, fmt.Errorf("%w: minimum payment must not be negative", apperrors.ErrValidation)
		}
		debt.MinimumPayment = *req.MinimumPayment
		updated = true
	}
	if req.PaymentFrequency != nil {
		debt.PaymentFrequency = domain.Frequency(*req.PaymentFrequency)
		updated = true
	}
	if !updated {
		return debt, nil
	}

	// Re-run the calculator as a validity check only. The cached balance is
	// authoritative (principal minus actual payments) and the plan length may
	// be an explicit override, so neither is overwritten from the count
	// derivation here.
	if _, err := debt.Summary(); err != nil {
		return nil, err
	}

	debt.LastUpdatedAt = time.Now().UTC()
	if err := s.debtRepo.UpdateDebt(ctx, *debt); err != nil {
		s.LogError(ctx, err, "Failed to update debt", slog.String("debt_id", debtID))
		return nil, fmt.Errorf("failed to update debt: %w", err)
	}

	s.LogInfo(ctx, "Debt updated", slog.String("debt_id", debtID))
	return debt, nil
}

// DeleteDebt removes a debt.
func (s *debtService) DeleteDebt(ctx context.Context, debtID string) error {
	if err := s.debtRepo.DeleteDebt(ctx, debtID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete debt", slog.String("debt_id", debtID))
		}
		return fmt.Errorf("failed to delete debt %s: %w", debtID, err)
	}
	s.LogInfo(ctx, "Debt deleted", slog.String("debt_id", debtID))
	return nil
}
