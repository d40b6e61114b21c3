package domain

import "github.com/shopspring/decimal"

// AccountType classifies a balance-holding account.
type AccountType string

const (
	AccountDebit  AccountType = "debit"
	AccountCredit AccountType = "credit"
	AccountCash   AccountType = "cash"
)

// Account is a balance-holding entity used to settle payments. Balance
// changes are implied by posted transactions; the ledger engine only selects
// the settling account by name.
type Account struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Type    AccountType     `json:"type"`
	Balance decimal.Decimal `json:"balance"`
	AuditFields
}
