package dto

import (
	"github.com/pesotrack/pesotrack_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MetricsResponse defines the folded financial metrics for the dashboard.
type MetricsResponse struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Payable decimal.Decimal `json:"payable"`
	Balance decimal.Decimal `json:"balance"`
}

// DayBucketResponse defines one Monday-first weekday bucket.
type DayBucketResponse struct {
	Day     string          `json:"day"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// DashboardResponse is the single authoritative snapshot consumed by the UI:
// the reconciled ledger plus the metrics folded from it.
type DashboardResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Metrics      MetricsResponse       `json:"metrics"`
	Week         []DayBucketResponse   `json:"week"`
}

// ToDashboardResponse converts a domain snapshot to its response DTO.
func ToDashboardResponse(snap *domain.DashboardSnapshot) DashboardResponse {
	week := make([]DayBucketResponse, len(snap.Week))
	for i, b := range snap.Week {
		week[i] = DayBucketResponse{Day: b.Day, Income: b.Income, Expense: b.Expense}
	}
	return DashboardResponse{
		Transactions: ToTransactionResponses(snap.Transactions),
		Metrics: MetricsResponse{
			Income:  snap.Metrics.Income,
			Expense: snap.Metrics.Expense,
			Payable: snap.Metrics.Payable,
			Balance: snap.Metrics.Balance,
		},
		Week: week,
	}
}
