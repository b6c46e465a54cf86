package mapping

import (
	"github.com/bskpay/bsk_ledger_app/internal/core/domain"
	"github.com/bskpay/bsk_ledger_app/internal/models"
)

// ToDomainReferralEdge converts a DB referral edge row to the domain type.
func ToDomainReferralEdge(m models.ReferralEdge) domain.ReferralEdge {
	return domain.ReferralEdge{
		ChildAccountID:  m.ChildAccountID,
		ParentAccountID: m.ParentAccountID,
		LockedAt:        m.LockedAt,
	}
}

// ToDomainCommissionRule converts a DB commission rule row to the domain type.
func ToDomainCommissionRule(m models.CommissionRule) domain.CommissionRule {
	return domain.CommissionRule{
		BadgeTier:   domain.BadgeTier(m.BadgeTier),
		Level:       m.Level,
		Percent:     m.Percent,
		AuditFields: toDomainAuditFields(m.AuditFields),
	}
}
