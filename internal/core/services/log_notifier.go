package services

import (
	"context"
	"log/slog"

	"github.com/bskpay/bsk_ledger_app/internal/core/domain"
	portssvc "github.com/bskpay/bsk_ledger_app/internal/core/ports/services"
	"github.com/bskpay/bsk_ledger_app/internal/middleware"
)

// logNotifier is the default TransactionNotifier: it writes committed
// transactions to the structured log. A real push or projection pipeline can
// replace it without touching the ledger core.
type logNotifier struct{}

// NewLogNotifier creates a notifier that logs committed transactions.
func NewLogNotifier() portssvc.TransactionNotifier {
	return &logNotifier{}
}

// Ensure logNotifier implements the portssvc.TransactionNotifier interface
var _ portssvc.TransactionNotifier = (*logNotifier)(nil)

func (n *logNotifier) TransferCommitted(ctx context.Context, result domain.TransferResult) {
	middleware.GetLoggerFromCtx(ctx).Info("Notify: transfer committed",
		slog.String("reference", result.Reference),
	)
}

func (n *logNotifier) CommissionSettled(ctx context.Context, result domain.CommissionResult) {
	middleware.GetLoggerFromCtx(ctx).Info("Notify: commission settled",
		slog.String("event_key", result.EventKey),
		slog.Int("payout_count", len(result.Payouts)),
		slog.String("total_paid", result.TotalPaid.String()),
	)
}
