package services

import (
	"context"

	"github.com/pesotrack/pesotrack_app/internal/core/domain"
	"github.com/pesotrack/pesotrack_app/internal/dto"
)

// SettlementSvcFacade converts pending obligations into posted ledger
// transactions and advances their source schedules.
type SettlementSvcFacade interface {
	// Settle performs exactly one transaction write and at most one
	// definition write. The dual write is best-effort: a failed second write
	// is reported without rolling back the first.
	Settle(ctx context.Context, req dto.SettleRequest) (*domain.SettlementResult, error)
}
