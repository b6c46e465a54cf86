package dto

import (
	"time"

	"github.com/bskpay/bsk_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ListEntriesParams carries pagination inputs for ledger entry listing.
type ListEntriesParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// LedgerEntryResponse is one immutable ledger row.
type LedgerEntryResponse struct {
	EntryID     string          `json:"entryID"`
	AccountID   string          `json:"accountID"`
	BalanceType string          `json:"balanceType"`
	Delta       decimal.Decimal `json:"delta"`
	ReasonCode  string          `json:"reasonCode"`
	ReferenceID string          `json:"referenceID"`
	Note        string          `json:"note,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ListEntriesResponse is a page of ledger entries plus the next-page token.
type ListEntriesResponse struct {
	Entries   []LedgerEntryResponse `json:"entries"`
	NextToken *string               `json:"nextToken,omitempty"`
}

// ToLedgerEntryResponses converts domain entries for listing.
func ToLedgerEntryResponses(entries []domain.LedgerEntry) []LedgerEntryResponse {
	out := make([]LedgerEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = LedgerEntryResponse{
			EntryID:     e.EntryID,
			AccountID:   e.AccountID,
			BalanceType: string(e.BalanceType),
			Delta:       e.Delta,
			ReasonCode:  string(e.ReasonCode),
			ReferenceID: e.ReferenceID,
			Note:        e.Note,
			CreatedAt:   e.CreatedAt,
		}
	}
	return out
}
