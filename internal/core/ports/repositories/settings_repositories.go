package repositories

import (
	"context"

	"github.com/velotrack/velotrack_backend/internal/core/domain"
)

// SettingsRepository reads and writes the single company settings row.
type SettingsRepository interface {
	// GetSettings returns the settings row, inserting defaults on first access.
	GetSettings(ctx context.Context) (*domain.Settings, error)
	SaveSettings(ctx context.Context, settings domain.Settings) error
}
