package services

import (
	"context"

	"github.com/velotrack/velotrack_backend/internal/core/domain"
	"github.com/velotrack/velotrack_backend/internal/dto"
)

// SettingsSvcFacade reads and updates the company profile.
type SettingsSvcFacade interface {
	GetSettings(ctx context.Context) (*domain.Settings, error)
	UpdateSettings(ctx context.Context, actor domain.Actor, req dto.UpdateSettingsRequest) (*domain.Settings, error)
}
