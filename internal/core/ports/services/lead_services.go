package services

import (
	"context"

	"github.com/velotrack/velotrack_backend/internal/core/domain"
	"github.com/velotrack/velotrack_backend/internal/dto"
)

// LeadReaderSvc defines read operations for leads.
type LeadReaderSvc interface {
	// GetLeadDetail returns nil, nil when the lead does not exist or is outside the actor's scope.
	GetLeadDetail(ctx context.Context, actor domain.Actor, leadID string) (*domain.LeadDetail, error)
	ListLeads(ctx context.Context, actor domain.Actor, filter domain.LeadFilter) ([]domain.Lead, error)
}

// LeadWriterSvc defines lead mutations. Every mutation writes an audit entry in the same transaction.
type LeadWriterSvc interface {
	CreateLead(ctx context.Context, actor domain.Actor, req dto.CreateLeadRequest) (*domain.Lead, error)
	UpdateLead(ctx context.Context, actor domain.Actor, leadID string, req dto.UpdateLeadRequest) (*domain.Lead, error)
	ChangeStatus(ctx context.Context, actor domain.Actor, leadID string, newStatus domain.LeadStatus, reason string) (*domain.Lead, error)
	DeleteLead(ctx context.Context, actor domain.Actor, leadID string) error
	AddNote(ctx context.Context, actor domain.Actor, leadID string, content string) (*domain.Note, error)
}

// LeadSvcFacade combines all lead-related service interfaces
type LeadSvcFacade interface {
	LeadReaderSvc
	LeadWriterSvc
}

// LeadConverterSvc turns a lead into a project exactly once.
type LeadConverterSvc interface {
	ConvertLead(ctx context.Context, actor domain.Actor, leadID string, req dto.ConvertLeadRequest) (*domain.Project, error)
}
