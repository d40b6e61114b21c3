package dto

import "github.com/pesotrack/pesotrack_app/internal/core/domain"

// SettleRequest is the tagged settlement payload. Kind selects the source
// table of the obligation; it is validated here, at the boundary, before the
// request reaches the settlement engine.
type SettleRequest struct {
	Kind         string `json:"kind" binding:"required,oneof=recurring debt manual"`
	ObligationID string `json:"obligationId" binding:"required"`
	Method       string `json:"method"`
	AccountName  string `json:"accountName"`
}

// SettleResponse carries the posted transaction and, when a schedule was
// advanced, the updated source definition.
type SettleResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	Recurring   *RecurringResponse  `json:"recurring,omitempty"`
	Debt        *DebtResponse       `json:"debt,omitempty"`
}

// ToSettleResponse converts a domain settlement result to its response DTO.
func ToSettleResponse(result *domain.SettlementResult) SettleResponse {
	resp := SettleResponse{Transaction: ToTransactionResponse(&result.Transaction)}
	if result.Recurring != nil {
		r := ToRecurringResponse(result.Recurring)
		resp.Recurring = &r
	}
	if result.Debt != nil {
		summary, err := result.Debt.Summary()
		if err == nil {
			d := ToDebtResponse(result.Debt, summary)
			resp.Debt = &d
		}
	}
	return resp
}
