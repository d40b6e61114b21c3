package domain

import (
	"sort"
	"strings"
	"time"

	"github.com/pesotrack/pesotrack_app/internal/utils/dateutil"
)

// VirtualIDPrefix marks projected pending entries. The ID is deterministic
// per definition so a recompute replaces, never duplicates, prior
// projections.
const VirtualIDPrefix = "pending-"

// VirtualID returns the deterministic ledger ID for a recurring definition's
// projected entry.
func VirtualID(definitionID string) string {
	return VirtualIDPrefix + definitionID
}

// IsVirtualID reports whether id belongs to a projected entry.
func IsVirtualID(id string) bool {
	return strings.HasPrefix(id, VirtualIDPrefix)
}

// ProjectDueWindow synthesizes virtual pending transactions for every
// recurring definition whose NextDate falls inside the current due window:
// from ref's day through the end of its calendar week (Sunday), inclusive.
//
// A definition is suppressed when the ledger already holds a matching manual
// expense for the period: same name, status paid or pending, and a source
// other than recurring.
//
// The function is pure and idempotent; identical inputs yield an identical,
// stably ordered set.
func ProjectDueWindow(defs []RecurringDefinition, existing []Transaction, ref time.Time) []Transaction {
	start, end := dateutil.WeekWindow(ref)

	virtual := make([]Transaction, 0, len(defs))
	for _, def := range defs {
		if !dateutil.InWindow(def.NextDate, start, end) {
			continue
		}
		if hasManualEntry(existing, def.Name) {
			continue
		}
		virtual = append(virtual, Transaction{
			ID:     VirtualID(def.ID),
			Name:   def.Name,
			Amount: def.Amount.Abs().Neg(),
			Type:   Expense,
			Date:   dateutil.AtNoon(def.NextDate),
			Status: StatusPending,
			Source: SourceRecurring,
		})
	}

	sort.SliceStable(virtual, func(i, j int) bool {
		if !virtual[i].Date.Equal(virtual[j].Date) {
			return virtual[i].Date.Before(virtual[j].Date)
		}
		return virtual[i].ID < virtual[j].ID
	})
	return virtual
}

// hasManualEntry reports whether the user already recorded this obligation
// themselves for the period.
func hasManualEntry(existing []Transaction, name string) bool {
	for _, tx := range existing {
		if tx.Name != name || tx.Type != Expense || tx.Source == SourceRecurring {
			continue
		}
		if tx.Status == StatusPaid || tx.Status == StatusPending {
			return true
		}
	}
	return false
}

// ReconcileLedger merges freshly projected virtual entries into the stored
// ledger view. Every prior projection (any ID with the pending- prefix) is
// dropped wholesale before the new set is appended; stored entries keep
// their relative order and are never mutated.
func ReconcileLedger(stored []Transaction, virtual []Transaction) []Transaction {
	merged := make([]Transaction, 0, len(stored)+len(virtual))
	for _, tx := range stored {
		if IsVirtualID(tx.ID) {
			continue
		}
		merged = append(merged, tx)
	}
	return append(merged, virtual...)
}
