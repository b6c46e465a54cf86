package dto

import (
	"github.com/bskpay/bsk_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CommissionEventRequest is the internal trigger posted by staking, purchase
// and subscription flows after their primary operation commits.
type CommissionEventRequest struct {
	PayerAccountID string          `json:"payerAccountID" binding:"required,uuid"`
	BaseAmount     decimal.Decimal `json:"baseAmount" binding:"required,dgt0"`
	EventType      string          `json:"eventType" binding:"required,oneof=PURCHASE SUBSCRIPTION ACTIVITY"`
	IdempotencyKey string          `json:"idempotencyKey" binding:"required,min=8,max=255"`
}

// ToDomainCommissionEvent converts the request to the domain trigger.
func (r CommissionEventRequest) ToDomainCommissionEvent() domain.CommissionEvent {
	return domain.CommissionEvent{
		PayerAccountID: r.PayerAccountID,
		BaseAmount:     r.BaseAmount,
		EventType:      domain.CommissionEventType(r.EventType),
		IdempotencyKey: r.IdempotencyKey,
	}
}

// CommissionPayoutResponse is one settled credit of a fan-out run.
type CommissionPayoutResponse struct {
	AccountID string          `json:"accountID"`
	Depth     int             `json:"depth"`
	Amount    decimal.Decimal `json:"amount"`
}

// CommissionResultResponse summarizes a settled fan-out.
type CommissionResultResponse struct {
	EventKey  string                     `json:"eventKey"`
	TotalPaid decimal.Decimal            `json:"totalPaid"`
	Payouts   []CommissionPayoutResponse `json:"payouts"`
}

// ToCommissionResultResponse converts a domain fan-out result.
func ToCommissionResultResponse(res domain.CommissionResult) CommissionResultResponse {
	payouts := make([]CommissionPayoutResponse, len(res.Payouts))
	for i, p := range res.Payouts {
		payouts[i] = CommissionPayoutResponse{AccountID: p.AccountID, Depth: p.Depth, Amount: p.Amount}
	}
	return CommissionResultResponse{
		EventKey:  res.EventKey,
		TotalPaid: res.TotalPaid,
		Payouts:   payouts,
	}
}

// CommissionRuleRequest upserts one row of the badge-tier gating table.
type CommissionRuleRequest struct {
	BadgeTier string          `json:"badgeTier" binding:"required,oneof=NONE SILVER GOLD PLATINUM DIAMOND"`
	Level     int             `json:"level" binding:"required,min=1,max=50"`
	Percent   decimal.Decimal `json:"percent" binding:"required,dgt0"`
}

// CommissionRuleResponse is one row of the gating table.
type CommissionRuleResponse struct {
	BadgeTier string          `json:"badgeTier"`
	Level     int             `json:"level"`
	Percent   decimal.Decimal `json:"percent"`
}

// ToCommissionRuleResponses converts domain rules for listing.
func ToCommissionRuleResponses(rules []domain.CommissionRule) []CommissionRuleResponse {
	out := make([]CommissionRuleResponse, len(rules))
	for i, r := range rules {
		out[i] = CommissionRuleResponse{BadgeTier: string(r.BadgeTier), Level: r.Level, Percent: r.Percent}
	}
	return out
}
