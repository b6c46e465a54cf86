package dto

import (
	"time"

	"github.com/bskpay/bsk_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReserveLockRequest reserves part of a balance for an in-flight order or
// withdrawal.
type ReserveLockRequest struct {
	AccountID   string          `json:"accountID" binding:"required,uuid"`
	BalanceType string          `json:"balanceType" binding:"required,oneof=WITHDRAWABLE HOLDING"`
	Amount      decimal.Decimal `json:"amount" binding:"required,dgt0"`
	Purpose     string          `json:"purpose" binding:"required,oneof=ORDER WITHDRAWAL"`
	ReferenceID string          `json:"referenceID" binding:"required"`
}

// LockResponse describes one balance lock.
type LockResponse struct {
	LockID      string          `json:"lockID"`
	AccountID   string          `json:"accountID"`
	BalanceType string          `json:"balanceType"`
	Amount      decimal.Decimal `json:"amount"`
	Purpose     string          `json:"purpose"`
	ReferenceID string          `json:"referenceID"`
	CreatedAt   time.Time       `json:"createdAt"`
	ReleasedAt  *time.Time      `json:"releasedAt,omitempty"`
}

// ToLockResponse converts a domain lock to its API projection.
func ToLockResponse(l domain.BalanceLock) LockResponse {
	return LockResponse{
		LockID:      l.LockID,
		AccountID:   l.AccountID,
		BalanceType: string(l.BalanceType),
		Amount:      l.Amount,
		Purpose:     string(l.Purpose),
		ReferenceID: l.ReferenceID,
		CreatedAt:   l.CreatedAt,
		ReleasedAt:  l.ReleasedAt,
	}
}

// GhostLockFixResponse is the audit result of one reconciliation run.
type GhostLockFixResponse struct {
	FixedCount int                      `json:"fixedCount"`
	Details    []domain.GhostLockReport `json:"details"`
}
