package domain

import "github.com/shopspring/decimal"

// BalanceType distinguishes the two BSK balance buckets an account can hold.
type BalanceType string

const (
	// Withdrawable balance can be transferred or withdrawn freely.
	Withdrawable BalanceType = "WITHDRAWABLE"
	// Holding balance carries bonus or promotional credits with restricted
	// withdrawal rules.
	Holding BalanceType = "HOLDING"
)

// Balance is the durable per-account, per-type state. Available and Locked are
// both non-negative; only Total (available + locked) is shown externally.
type Balance struct {
	AccountID   string          `json:"accountID"`
	BalanceType BalanceType     `json:"balanceType"`
	Available   decimal.Decimal `json:"available"`
	Locked      decimal.Decimal `json:"locked"`
	AuditFields
}

// Total returns the externally visible quantity for this balance.
func (b Balance) Total() decimal.Decimal {
	return b.Available.Add(b.Locked)
}

// BalanceAdjustment is one available/locked delta against a single balance row.
// Adjustments for one operation are applied together inside a single database
// transaction, with rows locked in canonical order (account ID, then type).
type BalanceAdjustment struct {
	AccountID      string
	BalanceType    BalanceType
	AvailableDelta decimal.Decimal
	LockedDelta    decimal.Decimal
}

// BalanceKey orders adjustments canonically to prevent deadlock between two
// operations touching the same pair of accounts in opposite order.
func (a BalanceAdjustment) BalanceKey() string {
	return a.AccountID + "/" + string(a.BalanceType)
}
