package repositories

import (
	"context"

	"github.com/pesotrack/pesotrack_app/internal/core/domain"
)

// RecurringReader defines read operations for recurring definitions.
type RecurringReader interface {
	FindRecurringByID(ctx context.Context, definitionID string) (*domain.RecurringDefinition, error)
	ListRecurring(ctx context.Context) ([]domain.RecurringDefinition, error)
}

// RecurringWriter defines write operations for recurring definitions.
type RecurringWriter interface {
	SaveRecurring(ctx context.Context, def domain.RecurringDefinition) error
	UpdateRecurring(ctx context.Context, def domain.RecurringDefinition) error
	DeleteRecurring(ctx context.Context, definitionID string) error
}

// RecurringRepository combines recurring definition read and write operations.
type RecurringRepository interface {
	RecurringReader
	RecurringWriter
}
