package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxCommissionDepth is the hard cap on upward referral traversal. Edges are
// acyclic by construction, so the cap is a defense-in-depth bound rather than
// cycle handling.
const MaxCommissionDepth = 50

// ReferralEdge binds a child account to its sponsor. The sponsor is locked at
// creation and never reassigned, which keeps the tree acyclic without runtime
// cycle detection.
type ReferralEdge struct {
	ChildAccountID  string    `json:"childAccountID"`
	ParentAccountID string    `json:"parentAccountID"`
	LockedAt        time.Time `json:"lockedAt"`
}

// ReferralAncestor is one hop of the upward chain from a payer, carrying the
// ancestor's current badge tier for rule matching.
type ReferralAncestor struct {
	AccountID string
	Depth     int
	BadgeTier BadgeTier
}

// CommissionRule maps (badge tier, referral depth) to the fraction of the base
// amount paid to the ancestor at that depth. Absence of a rule means the tier
// does not unlock that depth. The table is data, not branching code, so
// tier/level combinations can be tested exhaustively.
type CommissionRule struct {
	BadgeTier BadgeTier       `json:"badgeTier"`
	Level     int             `json:"level"`
	Percent   decimal.Decimal `json:"percent"`
	AuditFields
}

// CommissionEventType classifies the commercial event that generated a
// commission pool.
type CommissionEventType string

const (
	EventPurchase     CommissionEventType = "PURCHASE"
	EventSubscription CommissionEventType = "SUBSCRIPTION"
	EventActivity     CommissionEventType = "ACTIVITY"
)

// CommissionEvent is the internal trigger consumed by the fan-out engine.
// Producers are the staking, purchase and subscription flows.
type CommissionEvent struct {
	PayerAccountID string              `json:"payerAccountID"`
	BaseAmount     decimal.Decimal     `json:"baseAmount"`
	EventType      CommissionEventType `json:"eventType"`
	IdempotencyKey string              `json:"idempotencyKey"`
}

// CommissionPayout is one computed credit of a fan-out run.
type CommissionPayout struct {
	AccountID string          `json:"accountID"`
	Depth     int             `json:"depth"`
	Amount    decimal.Decimal `json:"amount"`
}

// CommissionResult summarizes a settled fan-out for one triggering event.
type CommissionResult struct {
	EventKey   string             `json:"eventKey"`
	Payouts    []CommissionPayout `json:"payouts"`
	TotalPaid  decimal.Decimal    `json:"totalPaid"`
	DepthsSeen int                `json:"depthsSeen"`
}
