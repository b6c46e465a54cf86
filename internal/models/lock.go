package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceLock represents a row in the balance_locks table.
type BalanceLock struct {
	LockID      string
	AccountID   string
	BalanceType BalanceType
	Amount      decimal.Decimal
	Purpose     string
	ReferenceID string
	ReleasedAt  *time.Time
	AuditFields
}
