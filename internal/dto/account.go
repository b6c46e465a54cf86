package dto

// CreateAccountRequest registers a new ledger account. Accounts start at tier
// NONE with no balance rows; balances are created on first credit.
type CreateAccountRequest struct {
	DisplayName string `json:"displayName" binding:"required,max=100"`
}

// BadgeTierRequest moves an account to a new badge tier.
type BadgeTierRequest struct {
	BadgeTier string `json:"badgeTier" binding:"required,oneof=NONE SILVER GOLD PLATINUM DIAMOND"`
}

// AccountResponse is the externally visible account state.
type AccountResponse struct {
	AccountID   string `json:"accountID"`
	DisplayName string `json:"displayName"`
	BadgeTier   string `json:"badgeTier"`
	IsActive    bool   `json:"isActive"`
}

// IdempotencyPurgeResponse reports how many idempotency keys a purge removed.
type IdempotencyPurgeResponse struct {
	Purged int64 `json:"purged"`
}
