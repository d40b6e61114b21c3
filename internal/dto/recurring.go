package dto

import (
	"github.com/pesotrack/pesotrack_app/internal/core/domain"
	"github.com/pesotrack/pesotrack_app/internal/utils/dateutil"
	"github.com/shopspring/decimal"
)

// CreateRecurringRequest defines the payload for a new recurring definition.
type CreateRecurringRequest struct {
	Name      string          `json:"name" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Frequency string          `json:"frequency" binding:"required,oneof=weekly biweekly monthly yearly"`
	NextDate  string          `json:"nextDate" binding:"required,datetime=2006-01-02"`
}

// UpdateRecurringRequest defines the editable fields of a recurring
// definition. NextDate is only ever advanced by settlement, not edited here.
type UpdateRecurringRequest struct {
	Name      *string          `json:"name"`
	Amount    *decimal.Decimal `json:"amount"`
	Frequency *string          `json:"frequency" binding:"omitempty,oneof=weekly biweekly monthly yearly"`
}

// RecurringResponse defines the data returned for a recurring definition.
type RecurringResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	Frequency string          `json:"frequency"`
	NextDate  string          `json:"nextDate"`
}

// ToRecurringResponse converts a domain.RecurringDefinition to its response DTO.
func ToRecurringResponse(def *domain.RecurringDefinition) RecurringResponse {
	return RecurringResponse{
		ID:        def.ID,
		Name:      def.Name,
		Amount:    def.Amount,
		Frequency: string(def.Frequency),
		NextDate:  dateutil.FormatISO(def.NextDate),
	}
}

// ToRecurringResponses converts a slice of domain recurring definitions.
func ToRecurringResponses(defs []domain.RecurringDefinition) []RecurringResponse {
	responses := make([]RecurringResponse, len(defs))
	for i := range defs {
		responses[i] = ToRecurringResponse(&defs[i])
	}
	return responses
}
