package dto_test

import (
	"testing"
	"time"

	"github.com/pesotrack/pesotrack_app/internal/core/domain"
	"github.com/pesotrack/pesotrack_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDebtResponse_CachedBalanceIsAuthoritative(t *testing.T) {
	nextPayment := time.Date(2025, time.February, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		debt         domain.Debt
		wantBalance  string
		wantPaid     string
		wantFinished bool
	}{
		{
			name: "derived plan, counters and cache agree",
			debt: domain.Debt{
				ID:                "debt-derived",
				Name:              "Laptop loan",
				TotalAmount:       decimal.RequireFromString("1000"),
				MinimumPayment:    decimal.RequireFromString("250"),
				NextPaymentDate:   nextPayment,
				PaymentFrequency:  domain.Monthly,
				TotalInstallments: 4,
				InstallmentsPaid:  1,
				CurrentBalance:    decimal.RequireFromString("750"),
			},
			wantBalance: "750",
			wantPaid:    "250",
		},
		{
			// One 100 settlement against a 10-installment override; the
			// counter derivation would claim 700.
			name: "overridden plan reports the settlement-decremented balance",
			debt: domain.Debt{
				ID:                "debt-override",
				Name:              "Car loan",
				TotalAmount:       decimal.RequireFromString("1000"),
				MinimumPayment:    decimal.RequireFromString("300"),
				NextPaymentDate:   nextPayment,
				PaymentFrequency:  domain.Monthly,
				TotalInstallments: 10,
				InstallmentsPaid:  1,
				CurrentBalance:    decimal.RequireFromString("900"),
			},
			wantBalance: "900",
			wantPaid:    "100",
		},
		{
			name: "cached balance within epsilon marks the debt finished",
			debt: domain.Debt{
				ID:                "debt-done",
				Name:              "Paid off card",
				TotalAmount:       decimal.RequireFromString("500"),
				MinimumPayment:    decimal.RequireFromString("500"),
				NextPaymentDate:   nextPayment,
				PaymentFrequency:  domain.Monthly,
				TotalInstallments: 1,
				InstallmentsPaid:  1,
				CurrentBalance:    decimal.RequireFromString("0.05"),
			},
			wantBalance:  "0.05",
			wantPaid:     "499.95",
			wantFinished: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary, err := tt.debt.Summary()
			require.NoError(t, err)

			got := dto.ToDebtResponse(&tt.debt, summary)

			assert.True(t, got.CurrentBalance.Equal(decimal.RequireFromString(tt.wantBalance)), "balance: got %s", got.CurrentBalance)
			assert.True(t, got.AmountPaid.Equal(decimal.RequireFromString(tt.wantPaid)), "amount paid: got %s", got.AmountPaid)
			assert.Equal(t, tt.wantFinished, got.Finished)
			assert.Equal(t, tt.debt.TotalInstallments, got.TotalInstallments)
			assert.Equal(t, tt.debt.TotalInstallments-tt.debt.InstallmentsPaid, got.RemainingInstallments)
		})
	}
}

func TestToDebtResponse_ClampsAmountPaid(t *testing.T) {
	debt := domain.Debt{
		ID:               "debt-new",
		Name:             "Fresh loan",
		TotalAmount:      decimal.RequireFromString("400"),
		MinimumPayment:   decimal.RequireFromString("100"),
		NextPaymentDate:  time.Date(2025, time.February, 1, 12, 0, 0, 0, time.UTC),
		PaymentFrequency: domain.Monthly,
		// A stale cache above principal must not yield a negative paid figure.
		CurrentBalance: decimal.RequireFromString("400.50"),
	}

	summary, err := debt.Summary()
	require.NoError(t, err)

	got := dto.ToDebtResponse(&debt, summary)

	assert.True(t, got.AmountPaid.IsZero(), "amount paid: got %s", got.AmountPaid)
	assert.True(t, got.CurrentBalance.Equal(decimal.RequireFromString("400.50")))
}
