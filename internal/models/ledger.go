package models

import "github.com/shopspring/decimal"

// LedgerEntry represents a row in the append-only ledger_entries table.
type LedgerEntry struct {
	EntryID        string
	AccountID      string
	BalanceType    BalanceType
	Delta          decimal.Decimal
	ReasonCode     string
	ReferenceID    string
	IdempotencyKey string
	Note           string
	AuditFields
}
