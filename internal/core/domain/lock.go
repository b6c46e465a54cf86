package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LockPurpose identifies the flow that reserved a portion of a balance.
type LockPurpose string

const (
	LockPurposeOrder      LockPurpose = "ORDER"
	LockPurposeWithdrawal LockPurpose = "WITHDRAWAL"
)

// ReferenceStatus is the lifecycle state of the order or withdrawal a lock
// points at.
type ReferenceStatus string

const (
	ReferencePending   ReferenceStatus = "PENDING"
	ReferenceCompleted ReferenceStatus = "COMPLETED"
	ReferenceCancelled ReferenceStatus = "CANCELLED"
	// ReferenceMissing means the reference row no longer exists at all.
	ReferenceMissing ReferenceStatus = "MISSING"
)

// Terminal reports whether the reference can no longer return to an active state.
func (s ReferenceStatus) Terminal() bool {
	return s == ReferenceCompleted || s == ReferenceCancelled || s == ReferenceMissing
}

// BalanceLock reserves part of a balance for an in-flight order or withdrawal.
// Creation moves the amount from available to locked in the same transaction;
// release reverses it. A lock whose reference is terminal or missing and whose
// age exceeds the safety window is a ghost lock.
type BalanceLock struct {
	LockID      string          `json:"lockID"`
	AccountID   string          `json:"accountID"`
	BalanceType BalanceType     `json:"balanceType"`
	Amount      decimal.Decimal `json:"amount"`
	Purpose     LockPurpose     `json:"purpose"`
	ReferenceID string          `json:"referenceID"`
	ReleasedAt  *time.Time      `json:"releasedAt,omitempty"`
	AuditFields
}

// Released reports whether the lock has already been released.
func (l BalanceLock) Released() bool {
	return l.ReleasedAt != nil
}

// GhostLockReport is one line of a reconciliation run, kept for audit.
type GhostLockReport struct {
	LockID   string `json:"lockID"`
	Released bool   `json:"released"`
	Reason   string `json:"reason"`
}
