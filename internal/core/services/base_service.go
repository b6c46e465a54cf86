package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/bskpay/bsk_ledger_app/internal/apperrors"
	"github.com/bskpay/bsk_ledger_app/internal/middleware"
)

// withLockRetry runs fn and retries it a bounded number of times when it hits
// a row lock wait timeout. Any other error fails immediately. Every ledger
// write that fn performs is transactional, so a retried attempt starts clean.
func withLockRetry(ctx context.Context, attempts int, backoff time.Duration, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		err = fn()
		if err == nil {
			return nil
		}
		if !errors.Is(err, apperrors.ErrLockWaitTimeout) {
			return err
		}
		if attempt == attempts {
			break
		}
		middleware.GetLoggerFromCtx(ctx).Warn("Retrying after lock wait timeout",
			slog.Int("attempt", attempt), slog.Duration("backoff", backoff))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return err
}
