package mapping

import (
	"github.com/bskpay/bsk_ledger_app/internal/core/domain"
	"github.com/bskpay/bsk_ledger_app/internal/models"
)

// ToModelLedgerEntry converts a domain ledger entry to its DB representation.
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:        d.EntryID,
		AccountID:      d.AccountID,
		BalanceType:    models.BalanceType(d.BalanceType),
		Delta:          d.Delta,
		ReasonCode:     string(d.ReasonCode),
		ReferenceID:    d.ReferenceID,
		IdempotencyKey: d.IdempotencyKey,
		Note:           d.Note,
		AuditFields:    toModelAuditFields(d.AuditFields),
	}
}

// ToDomainLedgerEntry converts a DB ledger row to the domain type.
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:        m.EntryID,
		AccountID:      m.AccountID,
		BalanceType:    domain.BalanceType(m.BalanceType),
		Delta:          m.Delta,
		ReasonCode:     domain.ReasonCode(m.ReasonCode),
		ReferenceID:    m.ReferenceID,
		IdempotencyKey: m.IdempotencyKey,
		Note:           m.Note,
		AuditFields:    toDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLedgerEntrySlice converts a slice of DB ledger rows.
func ToDomainLedgerEntrySlice(ms []models.LedgerEntry) []domain.LedgerEntry {
	out := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		out[i] = ToDomainLedgerEntry(m)
	}
	return out
}
