package services

import (
	"context"

	"github.com/pesotrack/pesotrack_app/internal/core/domain"
	"github.com/pesotrack/pesotrack_app/internal/dto"
)

// RecurringSvcFacade exposes lifecycle operations on recurring definitions.
// NextDate is advanced only by settlement; definitions are never deleted
// implicitly.
type RecurringSvcFacade interface {
	CreateRecurring(ctx context.Context, req dto.CreateRecurringRequest) (*domain.RecurringDefinition, error)
	GetRecurring(ctx context.Context, definitionID string) (*domain.RecurringDefinition, error)
	ListRecurring(ctx context.Context) ([]domain.RecurringDefinition, error)
	UpdateRecurring(ctx context.Context, definitionID string, req dto.UpdateRecurringRequest) (*domain.RecurringDefinition, error)
	DeleteRecurring(ctx context.Context, definitionID string) error
}
