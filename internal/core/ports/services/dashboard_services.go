package services

import (
	"context"

	"github.com/pesotrack/pesotrack_app/internal/core/domain"
)

// DashboardSvcFacade produces the single authoritative snapshot per request:
// stored ledger merged with fresh projections, plus folded metrics.
type DashboardSvcFacade interface {
	GetDashboard(ctx context.Context) (*domain.DashboardSnapshot, error)
}
