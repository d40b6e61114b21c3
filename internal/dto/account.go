package dto

import (
	"github.com/pesotrack/pesotrack_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the payload for a new balance-holding account.
type CreateAccountRequest struct {
	Name    string          `json:"name" binding:"required"`
	Type    string          `json:"type" binding:"required,oneof=debit credit cash"`
	Balance decimal.Decimal `json:"balance"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Type    string          `json:"type"`
	Balance decimal.Decimal `json:"balance"`
}

// ToAccountResponse converts a domain.Account to its response DTO.
func ToAccountResponse(account *domain.Account) AccountResponse {
	return AccountResponse{
		ID:      account.ID,
		Name:    account.Name,
		Type:    string(account.Type),
		Balance: account.Balance,
	}
}

// ToAccountResponses converts a slice of domain accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses
}
