package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/velotrack/velotrack_backend/internal/apperrors"
	"github.com/velotrack/velotrack_backend/internal/core/domain"
	portsrepo "github.com/velotrack/velotrack_backend/internal/core/ports/repositories"
	portssvc "github.com/velotrack/velotrack_backend/internal/core/ports/services"
	"github.com/velotrack/velotrack_backend/internal/dto"
	"github.com/velotrack/velotrack_backend/internal/utils"
)

type settingsService struct {
	BaseService
	settingsRepo portsrepo.SettingsRepository
}

// NewSettingsService creates the company profile service.
func NewSettingsService(tx portsrepo.TransactionManager, settingsRepo portsrepo.SettingsRepository, auditRepo portsrepo.AuditRepositoryFacade, opts ...ServiceOption) portssvc.SettingsSvcFacade {
	return &settingsService{
		BaseService:  newBaseService(tx, auditRepo, opts),
		settingsRepo: settingsRepo,
	}
}

var _ portssvc.SettingsSvcFacade = (*settingsService)(nil)

func (s *settingsService) GetSettings(ctx context.Context) (*domain.Settings, error) {
	settings, err := s.settingsRepo.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return settings, nil
}

func (s *settingsService) UpdateSettings(ctx context.Context, actor domain.Actor, req dto.UpdateSettingsRequest) (*domain.Settings, error) {
	if err := s.RequireOwner(actor); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.CompanyName) == "" {
		return nil, apperrors.NewValidationFailedError("company name is required")
	}
	if req.DPPercentage.IsNegative() || req.DPPercentage.GreaterThan(decimal.NewFromInt(100)) {
		return nil, apperrors.NewValidationFailedError("dp percentage must be between 0 and 100")
	}

	settings := domain.Settings{
		CompanyName:       strings.TrimSpace(req.CompanyName),
		Address:           strings.TrimSpace(req.Address),
		Email:             strings.TrimSpace(req.Email),
		Phone:             utils.NormalizePhone(req.Phone),
		BankName:          strings.TrimSpace(req.BankName),
		BankAccountNumber: strings.TrimSpace(req.BankAccountNumber),
		BankAccountHolder: strings.TrimSpace(req.BankAccountHolder),
		SignerName:        strings.TrimSpace(req.SignerName),
		DPPercentage:      req.DPPercentage,
		UpdatedAt:         s.now(),
		UpdatedBy:         actor.UserID,
	}

	err := s.TxManager.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.settingsRepo.SaveSettings(ctx, settings); err != nil {
			return err
		}
		return s.RecordAudit(ctx, domain.ActionSettingsUpdated, domain.EntitySettings, "1", "company profile updated", actor.UserID)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update settings")
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}
	return &settings, nil
}
