package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/bskpay/bsk_ledger_app/internal/apperrors"
	portsrepo "github.com/bskpay/bsk_ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

const transferEnabledSetting = "transfer_enabled"

type PgxSettingsRepository struct {
	pool PgxPool
}

// newPgxSettingsRepository creates a new repository for platform settings.
func newPgxSettingsRepository(pool PgxPool) portsrepo.SettingsRepository {
	return &PgxSettingsRepository{pool: pool}
}

// Ensure PgxSettingsRepository implements portsrepo.SettingsRepository
var _ portsrepo.SettingsRepository = (*PgxSettingsRepository)(nil)

// IsTransferEnabled reads the transfer policy flag. A missing row means the
// platform has never toggled the flag and transfers default to enabled.
func (r *PgxSettingsRepository) IsTransferEnabled(ctx context.Context) (bool, error) {
	query := `SELECT value FROM platform_settings WHERE name = $1;`
	var value string
	err := r.pool.QueryRow(ctx, query, transferEnabledSetting).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return true, nil
		}
		return false, apperrors.NewAppError(500, "failed to read platform setting "+transferEnabledSetting, err)
	}
	return value == "true", nil
}

func (r *PgxSettingsRepository) SetTransferEnabled(ctx context.Context, enabled bool, updatedBy string) error {
	value := "false"
	if enabled {
		value = "true"
	}
	query := `
		INSERT INTO platform_settings (name, value, updated_by, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name) DO UPDATE
		SET value = EXCLUDED.value, updated_by = EXCLUDED.updated_by, updated_at = EXCLUDED.updated_at;
	`
	if _, err := r.pool.Exec(ctx, query, transferEnabledSetting, value, updatedBy, time.Now()); err != nil {
		return apperrors.NewAppError(500, "failed to update platform setting "+transferEnabledSetting, err)
	}
	return nil
}
