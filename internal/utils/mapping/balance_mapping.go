package mapping

import (
	"github.com/bskpay/bsk_ledger_app/internal/core/domain"
	"github.com/bskpay/bsk_ledger_app/internal/models"
)

// ToModelBalance converts a domain balance to its DB representation.
func ToModelBalance(d domain.Balance) models.Balance {
	return models.Balance{
		AccountID:   d.AccountID,
		BalanceType: models.BalanceType(d.BalanceType),
		Available:   d.Available,
		Locked:      d.Locked,
		AuditFields: toModelAuditFields(d.AuditFields),
	}
}

// ToDomainBalance converts a DB balance row to the domain type.
func ToDomainBalance(m models.Balance) domain.Balance {
	return domain.Balance{
		AccountID:   m.AccountID,
		BalanceType: domain.BalanceType(m.BalanceType),
		Available:   m.Available,
		Locked:      m.Locked,
		AuditFields: toDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccount converts a DB account row to the domain type.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:   m.AccountID,
		DisplayName: m.DisplayName,
		BadgeTier:   domain.BadgeTier(m.BadgeTier),
		IsActive:    m.IsActive,
		AuditFields: toDomainAuditFields(m.AuditFields),
	}
}

// ToModelAccount converts a domain account to its DB representation.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:   d.AccountID,
		DisplayName: d.DisplayName,
		BadgeTier:   string(d.BadgeTier),
		IsActive:    d.IsActive,
		AuditFields: toModelAuditFields(d.AuditFields),
	}
}
