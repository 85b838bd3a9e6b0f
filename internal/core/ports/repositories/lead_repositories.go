package repositories

import (
	"context"
	"time"

	"github.com/velotrack/velotrack_backend/internal/core/domain"
)

// LeadReader defines read operations for leads and their notes.
type LeadReader interface {
	// FindLeadByID retrieves a lead, returning apperrors.ErrNotFound when absent.
	FindLeadByID(ctx context.Context, leadID string) (*domain.Lead, error)

	// FindLeadByIDForUpdate retrieves a lead and locks its row until the surrounding transaction ends.
	FindLeadByIDForUpdate(ctx context.Context, leadID string) (*domain.Lead, error)

	// ListLeads retrieves leads matching the filter, newest first.
	ListLeads(ctx context.Context, filter domain.LeadFilter) ([]domain.Lead, error)

	// ListLeadNotes retrieves notes of a lead, newest first.
	ListLeadNotes(ctx context.Context, leadID string) ([]domain.Note, error)
}

// LeadWriter defines write operations for leads and their notes.
type LeadWriter interface {
	SaveLead(ctx context.Context, lead domain.Lead) error
	UpdateLead(ctx context.Context, lead domain.Lead) error
	UpdateLeadStatus(ctx context.Context, leadID string, status domain.LeadStatus, updatedAt time.Time, updatedBy string) error
	DeleteLead(ctx context.Context, leadID string) error
	SaveLeadNote(ctx context.Context, note domain.Note) error
	DeleteLeadNotes(ctx context.Context, leadID string) error
}

// LeadRepositoryFacade combines all lead-related repository interfaces
type LeadRepositoryFacade interface {
	LeadReader
	LeadWriter
}
