package services

import (
	"github.com/velotrack/velotrack_backend/internal/core/ports/gateways"
	portsrepo "github.com/velotrack/velotrack_backend/internal/core/ports/repositories"
	portssvc "github.com/velotrack/velotrack_backend/internal/core/ports/services"
	"github.com/velotrack/velotrack_backend/internal/platform/config"
)

// Gateways groups the outbound integrations handed to the services.
type Gateways struct {
	Renderer gateways.DocumentRenderer
	Store    gateways.FileStore
	WhatsApp gateways.WhatsAppSender
	Google   gateways.GoogleIdentityProvider // nil when Google sign-in is not configured
}

// NewContainer creates a new service container with properly initialized dependencies
func NewContainer(repos *portsrepo.RepositoryProvider, cfg *config.Config, gw Gateways, opts ...ServiceOption) *portssvc.ServiceContainer {
	tx := repos.TxManager
	audit := repos.AuditRepo

	user := NewUserService(tx, repos.UserRepo, audit, opts...)

	return &portssvc.ServiceContainer{
		Auth:      NewAuthService(user, NewTokenService(cfg), gw.Google),
		User:      user,
		Lead:      NewLeadService(tx, repos.LeadRepo, repos.ProjectRepo, repos.UserRepo, audit, opts...),
		Converter: NewConversionService(tx, repos.LeadRepo, repos.ProjectRepo, audit, opts...),
		Project:   NewProjectService(tx, repos.ProjectRepo, repos.LeadRepo, repos.UserRepo, repos.ReportRepo, audit, opts...),
		Finance:   NewFinanceService(tx, repos.FinanceRepo, repos.ProjectRepo, audit, opts...),
		Reporting: NewReportingService(repos.ReportRepo, repos.ProjectRepo, opts...),
		Document: NewDocumentService(tx, audit, DocumentDeps{
			Documents: repos.DocumentRepo,
			Leads:     repos.LeadRepo,
			Projects:  repos.ProjectRepo,
			Users:     repos.UserRepo,
			Reports:   repos.ReportRepo,
			Settings:  repos.SettingsRepo,
			Renderer:  gw.Renderer,
			Store:     gw.Store,
		}, opts...),
		Notification: NewNotificationService(tx, repos.DocumentRepo, repos.SettingsRepo, audit, gw.WhatsApp, opts...),
		Settings:     NewSettingsService(tx, repos.SettingsRepo, audit, opts...),
		Audit:        NewAuditService(audit),
	}
}
