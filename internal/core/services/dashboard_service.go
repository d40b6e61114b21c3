package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pesotrack/pesotrack_app/internal/core/domain"
	portsrepo "github.com/pesotrack/pesotrack_app/internal/core/ports/repositories"
	portssvc "github.com/pesotrack/pesotrack_app/internal/core/ports/services"
	"github.com/pesotrack/pesotrack_app/internal/utils/dateutil"
)

// dashboardService assembles the per-request snapshot: one authoritative
// read of the store, pure projection and reconciliation over it, then the
// folded metrics. No state is cached between requests.
type dashboardService struct {
	BaseService
	txRepo        portsrepo.TransactionReader
	recurringRepo portsrepo.RecurringReader
	now           func() time.Time
}

// DashboardServiceOption configures the dashboard service.
type DashboardServiceOption func(*dashboardService)

// WithDashboardClock overrides the reference clock used for the due window.
func WithDashboardClock(now func() time.Time) DashboardServiceOption {
	return func(s *dashboardService) {
		s.now = now
	}
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(txRepo portsrepo.TransactionReader, recurringRepo portsrepo.RecurringReader, options ...DashboardServiceOption) portssvc.DashboardSvcFacade {
	svc := &dashboardService{
		txRepo:        txRepo,
		recurringRepo: recurringRepo,
		now:           time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.DashboardSvcFacade = (*dashboardService)(nil)

// GetDashboard produces the reconciled ledger for the current week window
// along with summary metrics and Monday-first day buckets.
func (s *dashboardService) GetDashboard(ctx context.Context) (*domain.DashboardSnapshot, error) {
	stored, err := s.txRepo.ListTransactions(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load ledger for dashboard")
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	defs, err := s.recurringRepo.ListRecurring(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load recurring definitions for dashboard")
		return nil, fmt.Errorf("failed to load recurring definitions: %w", err)
	}

	ref := dateutil.AtNoon(s.now().UTC())
	virtual := domain.ProjectDueWindow(defs, stored, ref)
	ledger := domain.ReconcileLedger(stored, virtual)

	snapshot := &domain.DashboardSnapshot{
		Transactions: ledger,
		Metrics:      domain.AggregateMetrics(ledger),
		Week:         domain.BucketByWeekday(ledger),
	}

	s.LogInfo(ctx, "Dashboard snapshot assembled",
		slog.Int("stored", len(stored)),
		slog.Int("projected", len(virtual)))
	return snapshot, nil
}
