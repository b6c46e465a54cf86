package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReferralEdge represents a row in the write-once referral_edges table.
type ReferralEdge struct {
	ChildAccountID  string
	ParentAccountID string
	LockedAt        time.Time
}

// CommissionRule represents a row in the commission_rules table.
type CommissionRule struct {
	BadgeTier string
	Level     int
	Percent   decimal.Decimal
	AuditFields
}
