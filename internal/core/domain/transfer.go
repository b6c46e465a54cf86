package domain

import "github.com/shopspring/decimal"

// TransferResult is the snapshot returned by a committed transfer. It is also
// what gets stored against the idempotency key, so a replay returns exactly
// the same values.
type TransferResult struct {
	Reference             string          `json:"reference"`
	SenderBalanceAfter    decimal.Decimal `json:"senderBalanceAfter"`
	RecipientBalanceAfter decimal.Decimal `json:"recipientBalanceAfter"`
}
