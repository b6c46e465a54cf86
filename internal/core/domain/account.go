package domain

// BadgeTier is a purchasable or qualifiable account status. It gates which
// referral depths earn commission via the CommissionRule table.
type BadgeTier string

const (
	TierNone     BadgeTier = "NONE"
	TierSilver   BadgeTier = "SILVER"
	TierGold     BadgeTier = "GOLD"
	TierPlatinum BadgeTier = "PLATINUM"
	TierDiamond  BadgeTier = "DIAMOND"
)

// Account identifies one user in the ledger. Balance rows are created lazily
// on first credit, so a fresh account owns none.
type Account struct {
	AccountID   string    `json:"accountID"`
	DisplayName string    `json:"displayName"`
	BadgeTier   BadgeTier `json:"badgeTier"`
	IsActive    bool      `json:"isActive"`
	AuditFields
}
