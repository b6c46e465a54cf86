package dto

import (
	"github.com/bskpay/bsk_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceResponse is the read-only projection consumed by the UI layer. Only
// Total is meant for display; the available/locked split supports order flows.
type BalanceResponse struct {
	BalanceType string          `json:"balanceType"`
	Available   decimal.Decimal `json:"available"`
	Locked      decimal.Decimal `json:"locked"`
	Total       decimal.Decimal `json:"total"`
}

// ToBalanceResponse converts a domain balance to its API projection.
func ToBalanceResponse(b domain.Balance) BalanceResponse {
	return BalanceResponse{
		BalanceType: string(b.BalanceType),
		Available:   b.Available,
		Locked:      b.Locked,
		Total:       b.Total(),
	}
}

// ToBalanceResponses converts a slice of domain balances.
func ToBalanceResponses(balances []domain.Balance) []BalanceResponse {
	out := make([]BalanceResponse, len(balances))
	for i, b := range balances {
		out[i] = ToBalanceResponse(b)
	}
	return out
}
