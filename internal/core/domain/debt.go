package domain

import (
	"fmt"
	"time"

	"github.com/pesotrack/pesotrack_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// DebtSettledEpsilon absorbs floating rounding when deciding whether a debt
// is fully paid off: a balance at or below 0.1 currency units is terminal.
var DebtSettledEpsilon = decimal.NewFromFloat(0.1)

// Debt is an amortized obligation with installment tracking. CurrentBalance
// is a persisted cache of totalAmount minus verified payments; it is always
// recomputed from payments rather than re-derived from installment counts
// alone, so an overridden TotalInstallments cannot drift the balance.
type Debt struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	TotalAmount       decimal.Decimal `json:"totalAmount"` // original principal
	MinimumPayment    decimal.Decimal `json:"minimumPayment"`
	NextPaymentDate   time.Time       `json:"nextPaymentDate"`
	PaymentFrequency  Frequency       `json:"paymentFrequency"` // weekly, biweekly or monthly
	TotalInstallments int             `json:"totalInstallments,omitempty"`
	InstallmentsPaid  int             `json:"installmentsPaid"`
	CurrentBalance    decimal.Decimal `json:"currentBalance"`
	AuditFields
}

// DebtSummary is the amortization view derived from a debt's counters.
type DebtSummary struct {
	TotalInstallments     int             `json:"totalInstallments"`
	RemainingInstallments int             `json:"remainingInstallments"`
	AmountPaid            decimal.Decimal `json:"amountPaid"`
	CurrentBalance        decimal.Decimal `json:"currentBalance"`
}

// Finished reports whether the summary's balance is within the settled
// epsilon. Finished debts order last in any display.
func (s DebtSummary) Finished() bool {
	return s.CurrentBalance.LessThanOrEqual(DebtSettledEpsilon)
}

// ComputeDebtSummary derives balance, amount paid and remaining installment
// count from partial, denormalized inputs.
//
// When totalInstallments is zero and both totalAmount and minimumPayment are
// positive, the count is inferred as ceil(totalAmount/minimumPayment): a
// partial final installment still counts as one full installment.
//
// All outputs clamp to non-negative. Negative inputs and an installments-paid
// counter exceeding the plan length are validation failures.
func ComputeDebtSummary(totalAmount, minimumPayment decimal.Decimal, installmentsPaid, totalInstallments int) (DebtSummary, error) {
	if totalAmount.IsNegative() || minimumPayment.IsNegative() {
		return DebtSummary{}, fmt.Errorf("%w: debt amounts must not be negative", apperrors.ErrValidation)
	}
	if installmentsPaid < 0 || totalInstallments < 0 {
		return DebtSummary{}, fmt.Errorf("%w: installment counts must not be negative", apperrors.ErrValidation)
	}

	if totalInstallments == 0 && totalAmount.IsPositive() && minimumPayment.IsPositive() {
		totalInstallments = int(totalAmount.Div(minimumPayment).Ceil().IntPart())
	}
	if totalInstallments > 0 && totalInstallments < installmentsPaid {
		return DebtSummary{}, fmt.Errorf("%w: %d installments paid exceeds plan of %d", apperrors.ErrValidation, installmentsPaid, totalInstallments)
	}

	amountPaid := minimumPayment.Mul(decimal.NewFromInt(int64(installmentsPaid)))
	balance := totalAmount.Sub(amountPaid)
	if balance.IsNegative() {
		balance = decimal.Zero
	}
	remaining := totalInstallments - installmentsPaid
	if remaining < 0 {
		remaining = 0
	}

	return DebtSummary{
		TotalInstallments:     totalInstallments,
		RemainingInstallments: remaining,
		AmountPaid:            amountPaid,
		CurrentBalance:        balance,
	}, nil
}

// Summary computes the amortization view for the debt's current counters.
func (d Debt) Summary() (DebtSummary, error) {
	return ComputeDebtSummary(d.TotalAmount, d.MinimumPayment, d.InstallmentsPaid, d.TotalInstallments)
}

// AutomaticPayment is the amount a settlement charges for one installment:
// the even per-installment share when a plan length is known, else the
// minimum payment, else the full remaining balance (one-shot debts with no
// installment plan).
func (d Debt) AutomaticPayment() decimal.Decimal {
	if d.TotalInstallments > 0 {
		return d.TotalAmount.Div(decimal.NewFromInt(int64(d.TotalInstallments)))
	}
	if d.MinimumPayment.IsPositive() {
		return d.MinimumPayment
	}
	return d.CurrentBalance
}

// Finished reports whether the debt's cached balance is within the settled
// epsilon.
func (d Debt) Finished() bool {
	return d.CurrentBalance.LessThanOrEqual(DebtSettledEpsilon)
}
