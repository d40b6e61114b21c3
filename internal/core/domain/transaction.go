package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a ledger entry as money in or money out.
type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// TransactionStatus tracks the settlement state of a ledger entry.
type TransactionStatus string

const (
	StatusPaid     TransactionStatus = "paid"
	StatusReceived TransactionStatus = "received"
	StatusPending  TransactionStatus = "pending"
)

// TransactionSource marks whether an entry was recorded by the user or
// synthesized from a recurring definition.
type TransactionSource string

const (
	SourceManual    TransactionSource = "manual"
	SourceRecurring TransactionSource = "recurring"
)

// Transaction is a single ledger entry. Posted entries are immutable except
// for status transitions. An entry with Source=recurring and Status=pending
// is a virtual projection: it never exists in storage and is recomputed on
// every load. Expense amounts are held as negative magnitudes internally.
type Transaction struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Amount   decimal.Decimal   `json:"amount"`
	Type     TransactionType   `json:"type"`
	Date     time.Time         `json:"date"`
	Status   TransactionStatus `json:"status"`
	Method   string            `json:"method,omitempty"`   // settling account name
	Category string            `json:"category,omitempty"`
	Source   TransactionSource `json:"source"`
	// Weekday is an optional pre-labeled day name ("Mon".."Sun") used by the
	// day bucketing fallback when Date is absent.
	Weekday string `json:"weekday,omitempty"`
	AuditFields
}

// IsVirtual reports whether the entry is a projected pending obligation
// rather than a stored ledger row.
func (t Transaction) IsVirtual() bool {
	return t.Source == SourceRecurring && t.Status == StatusPending
}
