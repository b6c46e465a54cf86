package dto

import (
	"time"

	"github.com/bskpay/bsk_ledger_app/internal/core/domain"
)

// BindSponsorRequest fixes the sponsor of a child account at signup-time
// resolution. The binding is write-once.
type BindSponsorRequest struct {
	ChildAccountID  string `json:"childAccountID" binding:"required,uuid"`
	ParentAccountID string `json:"parentAccountID" binding:"required,uuid"`
}

// ReferralEdgeResponse describes one sponsor binding.
type ReferralEdgeResponse struct {
	ChildAccountID  string    `json:"childAccountID"`
	ParentAccountID string    `json:"parentAccountID"`
	LockedAt        time.Time `json:"lockedAt"`
}

// ToReferralEdgeResponse converts a domain edge.
func ToReferralEdgeResponse(e domain.ReferralEdge) ReferralEdgeResponse {
	return ReferralEdgeResponse{
		ChildAccountID:  e.ChildAccountID,
		ParentAccountID: e.ParentAccountID,
		LockedAt:        e.LockedAt,
	}
}
