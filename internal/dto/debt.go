package dto

import (
	"github.com/pesotrack/pesotrack_app/internal/core/domain"
	"github.com/pesotrack/pesotrack_app/internal/utils/dateutil"
	"github.com/shopspring/decimal"
)

// CreateDebtRequest defines the payload for a new amortized debt.
// TotalInstallments may be omitted; it is derived from the minimum payment.
type CreateDebtRequest struct {
	Name              string          `json:"name" binding:"required"`
	TotalAmount       decimal.Decimal `json:"totalAmount" binding:"required"`
	MinimumPayment    decimal.Decimal `json:"minimumPayment"`
	NextPaymentDate   string          `json:"nextPaymentDate" binding:"required,datetime=2006-01-02"`
	PaymentFrequency  string          `json:"paymentFrequency" binding:"required,oneof=weekly biweekly monthly"`
	TotalInstallments int             `json:"totalInstallments" binding:"omitempty,min=0"`
	InstallmentsPaid  int             `json:"installmentsPaid" binding:"omitempty,min=0"`
}

// UpdateDebtRequest defines the editable fields of a debt. Counters and the
// cached balance only move through settlement.
type UpdateDebtRequest struct {
	Name             *string          `json:"name"`
	MinimumPayment   *decimal.Decimal `json:"minimumPayment"`
	PaymentFrequency *string          `json:"paymentFrequency" binding:"omitempty,oneof=weekly biweekly monthly"`
}

// DebtResponse defines the data returned for a debt, including its derived
// amortization summary.
type DebtResponse struct {
	ID                    string          `json:"id"`
	Name                  string          `json:"name"`
	TotalAmount           decimal.Decimal `json:"totalAmount"`
	MinimumPayment        decimal.Decimal `json:"minimumPayment"`
	NextPaymentDate       string          `json:"nextPaymentDate"`
	PaymentFrequency      string          `json:"paymentFrequency"`
	TotalInstallments     int             `json:"totalInstallments"`
	InstallmentsPaid      int             `json:"installmentsPaid"`
	RemainingInstallments int             `json:"remainingInstallments"`
	AmountPaid            decimal.Decimal `json:"amountPaid"`
	CurrentBalance        decimal.Decimal `json:"currentBalance"`
	Finished              bool            `json:"finished"`
}

// ToDebtResponse converts a debt and its amortization summary to a response
// DTO. Installment counts come from the summary; the balance is the debt's
// cached one, maintained by settlement from actual payments, so an overridden
// plan length never distorts what the caller sees. Amount paid is derived
// from that balance for the same reason.
func ToDebtResponse(debt *domain.Debt, summary domain.DebtSummary) DebtResponse {
	amountPaid := debt.TotalAmount.Sub(debt.CurrentBalance)
	if amountPaid.IsNegative() {
		amountPaid = decimal.Zero
	}
	return DebtResponse{
		ID:                    debt.ID,
		Name:                  debt.Name,
		TotalAmount:           debt.TotalAmount,
		MinimumPayment:        debt.MinimumPayment,
		NextPaymentDate:       dateutil.FormatISO(debt.NextPaymentDate),
		PaymentFrequency:      string(debt.PaymentFrequency),
		TotalInstallments:     summary.TotalInstallments,
		InstallmentsPaid:      debt.InstallmentsPaid,
		RemainingInstallments: summary.RemainingInstallments,
		AmountPaid:            amountPaid,
		CurrentBalance:        debt.CurrentBalance,
		Finished:              debt.Finished(),
	}
}
