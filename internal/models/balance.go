package models

import "github.com/shopspring/decimal"

// BalanceType mirrors domain.BalanceType for DB storage.
type BalanceType string

// Balance represents a row in the balances table.
type Balance struct {
	AccountID   string
	BalanceType BalanceType
	Available   decimal.Decimal
	Locked      decimal.Decimal
	AuditFields
}

// Account represents a row in the accounts table.
type Account struct {
	AccountID   string
	DisplayName string
	BadgeTier   string
	IsActive    bool
	AuditFields
}
