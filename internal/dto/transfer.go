package dto

import (
	"github.com/shopspring/decimal"
)

// TransferRequest is the payload for the user-to-user transfer RPC. The
// idempotency key is caller-supplied (e.g. transfer_<sender>_<recipient>_<nonce>)
// so a timed-out client can re-query the outcome with the same key.
type TransferRequest struct {
	SenderID       string          `json:"senderID" binding:"required,uuid"`
	RecipientID    string          `json:"recipientID" binding:"required,uuid"`
	Amount         decimal.Decimal `json:"amount" binding:"required,dgt0"`
	IdempotencyKey string          `json:"idempotencyKey" binding:"required,min=8,max=255"`
}

// TransferResponse is returned for both first executions and idempotent replays.
type TransferResponse struct {
	Success               bool            `json:"success"`
	Reference             string          `json:"reference"`
	SenderBalanceAfter    decimal.Decimal `json:"senderBalanceAfter"`
	RecipientBalanceAfter decimal.Decimal `json:"recipientBalanceAfter"`
}

// AdminAdjustRequest credits or debits one balance one-sidedly. Direction is
// carried by the sign of Amount being applied with the given reason.
type AdminAdjustRequest struct {
	AccountID      string          `json:"accountID" binding:"required,uuid"`
	BalanceType    string          `json:"balanceType" binding:"required,oneof=WITHDRAWABLE HOLDING"`
	Amount         decimal.Decimal `json:"amount" binding:"required,dgt0"`
	Direction      string          `json:"direction" binding:"required,oneof=CREDIT DEBIT"`
	Note           string          `json:"note" binding:"max=500"`
	IdempotencyKey string          `json:"idempotencyKey" binding:"required,min=8,max=255"`
}

// AdminAdjustResponse reports the entry written by a mint/burn.
type AdminAdjustResponse struct {
	EntryID     string          `json:"entryID"`
	AccountID   string          `json:"accountID"`
	BalanceType string          `json:"balanceType"`
	Delta       decimal.Decimal `json:"delta"`
	ReasonCode  string          `json:"reasonCode"`
	Note        string          `json:"note,omitempty"`
}

// TransferPolicyRequest toggles the platform-wide transfer gate.
type TransferPolicyRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}
