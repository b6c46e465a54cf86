package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ReasonCode identifies why a ledger entry was written.
type ReasonCode string

const (
	ReasonTransferDebit  ReasonCode = "TRANSFER_DEBIT"
	ReasonTransferCredit ReasonCode = "TRANSFER_CREDIT"
	ReasonAdminCredit    ReasonCode = "ADMIN_CREDIT"
	ReasonAdminDebit     ReasonCode = "ADMIN_DEBIT"
)

const commissionReasonPrefix = "COMMISSION_L"

// CommissionReason builds the reason code for a commission payout at a given
// referral depth, e.g. COMMISSION_L07_PURCHASE.
func CommissionReason(level int, eventType CommissionEventType) ReasonCode {
	return ReasonCode(fmt.Sprintf("%s%02d_%s", commissionReasonPrefix, level, eventType))
}

// OneSided reports whether entries with this reason are exempt from the
// double-entry sum-to-zero check. Admin mint/burn and commission payouts are
// funded outside the BSK ledger and are separately audited.
func (r ReasonCode) OneSided() bool {
	switch r {
	case ReasonAdminCredit, ReasonAdminDebit:
		return true
	}
	return strings.HasPrefix(string(r), commissionReasonPrefix)
}

// LedgerEntry is one immutable row recording a signed delta against the total
// of a single balance. Entries are append-only and never updated or deleted.
type LedgerEntry struct {
	EntryID        string          `json:"entryID"`
	AccountID      string          `json:"accountID"`
	BalanceType    BalanceType     `json:"balanceType"`
	Delta          decimal.Decimal `json:"delta"`
	ReasonCode     ReasonCode      `json:"reasonCode"`
	ReferenceID    string          `json:"referenceID"`
	IdempotencyKey string          `json:"idempotencyKey"`
	Note           string          `json:"note,omitempty"`
	AuditFields
}

// ValidateBalanced enforces the double-entry invariant: deltas of entries whose
// reason is not explicitly one-sided must sum to zero. A violation is a
// programming-error-class failure, never a user-facing one.
func ValidateBalanced(entries []LedgerEntry) error {
	sum := decimal.Zero
	for _, e := range entries {
		if e.ReasonCode.OneSided() {
			continue
		}
		sum = sum.Add(e.Delta)
	}
	if !sum.IsZero() {
		return fmt.Errorf("%w: two-sided entries sum to %s", ErrLedgerImbalance, sum.String())
	}
	return nil
}
