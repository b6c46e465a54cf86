package mapping

import (
	"github.com/bskpay/bsk_ledger_app/internal/core/domain"
	"github.com/bskpay/bsk_ledger_app/internal/models"
)

// ToModelBalanceLock converts a domain lock to its DB representation.
func ToModelBalanceLock(d domain.BalanceLock) models.BalanceLock {
	return models.BalanceLock{
		LockID:      d.LockID,
		AccountID:   d.AccountID,
		BalanceType: models.BalanceType(d.BalanceType),
		Amount:      d.Amount,
		Purpose:     string(d.Purpose),
		ReferenceID: d.ReferenceID,
		ReleasedAt:  d.ReleasedAt,
		AuditFields: toModelAuditFields(d.AuditFields),
	}
}

// ToDomainBalanceLock converts a DB lock row to the domain type.
func ToDomainBalanceLock(m models.BalanceLock) domain.BalanceLock {
	return domain.BalanceLock{
		LockID:      m.LockID,
		AccountID:   m.AccountID,
		BalanceType: domain.BalanceType(m.BalanceType),
		Amount:      m.Amount,
		Purpose:     domain.LockPurpose(m.Purpose),
		ReferenceID: m.ReferenceID,
		ReleasedAt:  m.ReleasedAt,
		AuditFields: toDomainAuditFields(m.AuditFields),
	}
}
