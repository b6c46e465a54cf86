package repositories

import (
	"context"
	"time"

	"github.com/bskpay/bsk_ledger_app/internal/core/domain"
)

// IdempotencyRepository is the durable state behind the idempotency guard.
type IdempotencyRepository interface {
	// TryBegin claims the key for first execution. It returns (nil, true) when
	// the key is fresh, or the existing record and false when the key has been
	// seen before (in flight or completed).
	TryBegin(ctx context.Context, key string, operation string, now time.Time) (*domain.IdempotencyRecord, bool, error)

	// Complete stores the result snapshot and marks the key replayable.
	Complete(ctx context.Context, key string, snapshot []byte) error

	// Remove deletes an in-flight key after a failed execution so the client
	// retry can run again.
	Remove(ctx context.Context, key string) error

	// DeleteExpired garbage-collects keys older than the retention window.
	DeleteExpired(ctx context.Context, createdBefore time.Time) (int64, error)
}

// SettingsRepository stores platform-level policy flags, read outside the
// ledger transactions they gate.
type SettingsRepository interface {
	IsTransferEnabled(ctx context.Context) (bool, error)
	SetTransferEnabled(ctx context.Context, enabled bool, updatedBy string) error
}
