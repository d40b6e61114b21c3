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

// recurringService manages recurring obligation definitions.
type recurringService struct {
	BaseService
	recurringRepo portsrepo.RecurringRepository
}

// NewRecurringService creates a new recurring definition service.
func NewRecurringService(recurringRepo portsrepo.RecurringRepository) portssvc.RecurringSvcFacade {
	return &recurringService{recurringRepo: recurringRepo}
}

var _ portssvc.RecurringSvcFacade = (*recurringService)(nil)

// CreateRecurring registers a new repeating obligation. The amount is stored
// as an unsigned magnitude; projections apply the expense sign.
func (s *recurringService) CreateRecurring(ctx context.Context, req dto.CreateRecurringRequest) (*domain.RecurringDefinition, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: recurring amount must be positive", apperrors.ErrValidation)
	}
	nextDate, err := dateutil.ParseISO(req.NextDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	now := time.Now().UTC()
	def := domain.RecurringDefinition{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Amount:    req.Amount,
		Frequency: domain.Frequency(req.Frequency),
		NextDate:  nextDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.recurringRepo.SaveRecurring(ctx, def); err != nil {
		s.LogError(ctx, err, "Failed to save recurring definition", slog.String("name", req.Name))
		return nil, fmt.Errorf("failed to save recurring definition: %w", err)
	}

	s.LogInfo(ctx, "Recurring definition created", slog.String("definition_id", def.ID))
	return &def, nil
}

// GetRecurring retrieves a single recurring definition.
func (s *recurringService) GetRecurring(ctx context.Context, definitionID string) (*domain.RecurringDefinition, error) {
	def, err := s.recurringRepo.FindRecurringByID(ctx, definitionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find recurring definition", slog.String("definition_id", definitionID))
		}
		return nil, fmt.Errorf("failed to find recurring definition %s: %w", definitionID, err)
	}
	return def, nil
}

// ListRecurring retrieves every recurring definition.
func (s *recurringService) ListRecurring(ctx context.Context) ([]domain.RecurringDefinition, error) {
	defs, err := s.recurringRepo.ListRecurring(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list recurring definitions")
		return nil, fmt.Errorf("failed to list recurring definitions: %w", err)
	}
	return defs, nil
}

// UpdateRecurring edits a definition's name, amount or frequency. NextDate
// moves only through settlement.
func (s *recurringService) UpdateRecurring(ctx context.Context, definitionID string, req dto.UpdateRecurringRequest) (*domain.RecurringDefinition, error) {
	def, err := s.recurringRepo.FindRecurringByID(ctx, definitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find recurring definition %s: %w", definitionID, err)
	}

	updated := false
	if req.Name != nil {
		def.Name = *req.Name
		updated = true
	}
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: recurring amount must be positive", apperrors.ErrValidation)
		}
		def.Amount = *req.Amount
		updated = true
	}
	if req.Frequency != nil {
		def.Frequency = domain.Frequency(*req.Frequency)
		updated = true
	}
	if !updated {
		return def, nil
	}

	def.LastUpdatedAt = time.Now().UTC()
	if err := s.recurringRepo.UpdateRecurring(ctx, *def); err != nil {
		s.LogError(ctx, err, "Failed to update recurring definition", slog.String("definition_id", definitionID))
		return nil, fmt.Errorf("failed to update recurring definition: %w", err)
	}

	s.LogInfo(ctx, "Recurring definition updated", slog.String("definition_id", definitionID))
	return def, nil
}

// DeleteRecurring removes a definition. Its projections disappear on the
// next reconciliation since the deterministic pending id has no source left.
func (s *recurringService) DeleteRecurring(ctx context.Context, definitionID string) error {
	if err := s.recurringRepo.DeleteRecurring(ctx, definitionID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete recurring definition", slog.String("definition_id", definitionID))
		}
		return fmt.Errorf("failed to delete recurring definition %s: %w", definitionID, err)
	}
	s.LogInfo(ctx, "Recurring definition deleted", slog.String("definition_id", definitionID))
	return nil
}
