package dto

import (
	"github.com/pesotrack/pesotrack_app/internal/core/domain"
	"github.com/pesotrack/pesotrack_app/internal/utils/dateutil"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the payload for recording a manual ledger
// entry. Dates cross the boundary as ISO 8601 date-only strings.
type CreateTransactionRequest struct {
	Name     string          `json:"name" binding:"required"`
	Amount   decimal.Decimal `json:"amount" binding:"required"`
	Type     string          `json:"type" binding:"required,oneof=income expense"`
	Date     string          `json:"date" binding:"required,datetime=2006-01-02"`
	Status   string          `json:"status" binding:"required,oneof=paid received pending"`
	Method   string          `json:"method"`
	Category string          `json:"category"`
}

// TransactionResponse defines the data returned for a ledger entry.
type TransactionResponse struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Amount   decimal.Decimal `json:"amount"`
	Type     string          `json:"type"`
	Date     string          `json:"date"`
	Status   string          `json:"status"`
	Method   string          `json:"method,omitempty"`
	Category string          `json:"category,omitempty"`
	Source   string          `json:"source"`
}

// ToTransactionResponse converts a domain.Transaction to its response DTO.
func ToTransactionResponse(tx *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:       tx.ID,
		Name:     tx.Name,
		Amount:   tx.Amount,
		Type:     string(tx.Type),
		Date:     dateutil.FormatISO(tx.Date),
		Status:   string(tx.Status),
		Method:   tx.Method,
		Category: tx.Category,
		Source:   string(tx.Source),
	}
}

// ToTransactionResponses converts a slice of domain transactions.
func ToTransactionResponses(txs []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txs))
	for i := range txs {
		responses[i] = ToTransactionResponse(&txs[i])
	}
	return responses
}
