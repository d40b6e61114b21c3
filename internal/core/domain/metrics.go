package domain

import (
	"github.com/pesotrack/pesotrack_app/internal/utils/dateutil"
	"github.com/shopspring/decimal"
)

// MetricsSummary holds the folded financial view of a set of ledger entries.
type MetricsSummary struct {
	Income  decimal.Decimal `json:"income"`  // realized money in
	Expense decimal.Decimal `json:"expense"` // realized money out
	Payable decimal.Decimal `json:"payable"` // pending expenses, not yet paid
	Balance decimal.Decimal `json:"balance"` // net realized cash
}

// DayBucket accumulates income and expense for one weekday.
type DayBucket struct {
	Day     string          `json:"day"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// weekdayLabels are ordered Monday-first, matching the ISO weekday index.
var weekdayLabels = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// AggregateMetrics folds transactions into summary metrics under the
// status-aware accounting rules:
//
//   - income with a positive amount counts as income; a negative income (a
//     reversal) counts as expense instead, by absolute value
//   - balance moves only on realized cash: received income, or any expense
//     that is not pending
//   - a pending expense is payable, never expense or balance
func AggregateMetrics(transactions []Transaction) MetricsSummary {
	var m MetricsSummary
	for _, tx := range transactions {
		switch tx.Type {
		case Income:
			if tx.Amount.IsNegative() {
				m.Expense = m.Expense.Add(tx.Amount.Abs())
			} else {
				m.Income = m.Income.Add(tx.Amount)
			}
			if tx.Status == StatusReceived {
				m.Balance = m.Balance.Add(tx.Amount)
			}
		case Expense:
			if tx.Status == StatusPending {
				m.Payable = m.Payable.Add(tx.Amount.Abs())
			} else {
				m.Expense = m.Expense.Add(tx.Amount.Abs())
				m.Balance = m.Balance.Sub(tx.Amount.Abs())
			}
		}
	}
	return m
}

// BucketByWeekday folds transactions into seven Monday-first day buckets.
// The weekday is derived from the entry's date at noon; entries without a
// date fall back to their pre-labeled Weekday field. Entries that resolve to
// no weekday are skipped.
func BucketByWeekday(transactions []Transaction) []DayBucket {
	buckets := make([]DayBucket, 7)
	for i := range buckets {
		buckets[i] = DayBucket{Day: weekdayLabels[i], Income: decimal.Zero, Expense: decimal.Zero}
	}

	for _, tx := range transactions {
		idx, ok := weekdayIndex(tx)
		if !ok {
			continue
		}
		switch tx.Type {
		case Income:
			buckets[idx].Income = buckets[idx].Income.Add(tx.Amount.Abs())
		case Expense:
			buckets[idx].Expense = buckets[idx].Expense.Add(tx.Amount.Abs())
		}
	}
	return buckets
}

func weekdayIndex(tx Transaction) (int, bool) {
	if !tx.Date.IsZero() {
		return dateutil.ISOWeekdayIndex(dateutil.AtNoon(tx.Date)), true
	}
	for i, label := range weekdayLabels {
		if tx.Weekday == label {
			return i, true
		}
	}
	return 0, false
}
