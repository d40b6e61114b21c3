package domain

// SettlementKind tags the obligation variant being settled. Requests carry
// the tag explicitly and are validated at the boundary before reaching the
// engine.
type SettlementKind string

const (
	SettleRecurring SettlementKind = "recurring"
	SettleDebt      SettlementKind = "debt"
	SettleManual    SettlementKind = "manual"
)

// SettlementResult is the outcome of settling one obligation: exactly one
// posted transaction plus, for recurring and debt settlements, the advanced
// source definition.
type SettlementResult struct {
	Transaction Transaction          `json:"transaction"`
	Recurring   *RecurringDefinition `json:"recurring,omitempty"`
	Debt        *Debt                `json:"debt,omitempty"`
}

// DashboardSnapshot is the immutable per-request view handed to the UI: the
// reconciled ledger plus the metrics folded from it.
type DashboardSnapshot struct {
	Transactions []Transaction  `json:"transactions"`
	Metrics      MetricsSummary `json:"metrics"`
	Week         []DayBucket    `json:"week"`
}
