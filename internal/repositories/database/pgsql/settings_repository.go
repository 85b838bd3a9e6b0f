package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/velotrack/velotrack_backend/internal/core/domain"
	portsrepo "github.com/velotrack/velotrack_backend/internal/core/ports/repositories"
	"github.com/velotrack/velotrack_backend/internal/models"
	"github.com/velotrack/velotrack_backend/internal/utils/mapping"
)

type PgxSettingsRepository struct {
	BaseRepository
}

func newPgxSettingsRepository(pool *pgxpool.Pool) portsrepo.SettingsRepository {
	return &PgxSettingsRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SettingsRepository = (*PgxSettingsRepository)(nil)

const settingsColumns = `settings_id, company_name, address, email, phone, bank_name, bank_account_number,
	bank_account_holder, signer_name, dp_percentage, updated_at, updated_by`

// GetSettings reads the single settings row, creating it with column defaults when missing.
func (r *PgxSettingsRepository) GetSettings(ctx context.Context) (*domain.Settings, error) {
	query := `
        WITH ins AS (
            INSERT INTO settings (settings_id) VALUES (1)
            ON CONFLICT (settings_id) DO NOTHING
            RETURNING ` + settingsColumns + `
        )
        SELECT ` + settingsColumns + ` FROM ins
        UNION ALL
        SELECT ` + settingsColumns + ` FROM settings WHERE settings_id = 1
        LIMIT 1;
    `
	rows, err := r.conn(ctx).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query settings: %w", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Settings])
	if err != nil {
		return nil, fmt.Errorf("failed to scan settings: %w", err)
	}
	settings := mapping.ToDomainSettings(m)
	return &settings, nil
}

func (r *PgxSettingsRepository) SaveSettings(ctx context.Context, settings domain.Settings) error {
	m := mapping.ToModelSettings(settings)
	query := `
        INSERT INTO settings (` + settingsColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        ON CONFLICT (settings_id) DO UPDATE SET
            company_name = EXCLUDED.company_name,
            address = EXCLUDED.address,
            email = EXCLUDED.email,
            phone = EXCLUDED.phone,
            bank_name = EXCLUDED.bank_name,
            bank_account_number = EXCLUDED.bank_account_number,
            bank_account_holder = EXCLUDED.bank_account_holder,
            signer_name = EXCLUDED.signer_name,
            dp_percentage = EXCLUDED.dp_percentage,
            updated_at = EXCLUDED.updated_at,
            updated_by = EXCLUDED.updated_by;
    `
	_, err := r.conn(ctx).Exec(ctx, query,
		m.SettingsID, m.CompanyName, m.Address, m.Email, m.Phone, m.BankName, m.BankAccountNumber,
		m.BankAccountHolder, m.SignerName, m.DPPercentage, m.UpdatedAt, m.UpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
