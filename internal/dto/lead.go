package dto

import (
	"github.com/shopspring/decimal"
	"github.com/velotrack/velotrack_backend/internal/core/domain"
)

// CreateLeadRequest defines the data needed to create a new lead.
type CreateLeadRequest struct {
	Name    string  `json:"name" binding:"required,max=200"`
	Contact string  `json:"contact" binding:"max=200"`
	Source  string  `json:"source" binding:"max=100"`
	MitraID *string `json:"mitraID" binding:"omitempty,uuid"` // owner only; partners always create for themselves
}

// UpdateLeadRequest defines the editable non-status fields of a lead.
type UpdateLeadRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=1,max=200"`
	Contact *string `json:"contact" binding:"omitempty,max=200"`
	Source  *string `json:"source" binding:"omitempty,max=100"`
	MitraID *string `json:"mitraID" binding:"omitempty,uuid"`
}

// ChangeLeadStatusRequest moves a lead through the funnel.
type ChangeLeadStatusRequest struct {
	Status domain.LeadStatus `json:"status" binding:"required,oneof=PENDING DEAL CANCEL"`
	Reason string            `json:"reason"`
}

// AddNoteRequest appends a note to a lead or project.
type AddNoteRequest struct {
	Content string `json:"content" binding:"required,max=2000"`
}

// ConvertLeadRequest turns a lead into a project.
type ConvertLeadRequest struct {
	ProjectName string           `json:"projectName" binding:"required,max=200"`
	Description string           `json:"description"`
	Deadline    string           `json:"deadline" binding:"omitempty,datetime=2006-01-02"`
	Value       *decimal.Decimal `json:"value"`
}

// ListLeadsParams defines query parameters for listing leads.
type ListLeadsParams struct {
	Status  string `form:"status" binding:"omitempty,oneof=PENDING DEAL CANCEL"`
	MitraID string `form:"mitraID" binding:"omitempty,uuid"`
	Search  string `form:"q"`
	PageParams
}

// ToFilter converts the query parameters to a domain filter.
func (p ListLeadsParams) ToFilter() domain.LeadFilter {
	f := domain.LeadFilter{Search: p.Search, Limit: p.Limit, Offset: p.Offset}
	if p.Status != "" {
		s := domain.LeadStatus(p.Status)
		f.Status = &s
	}
	if p.MitraID != "" {
		f.MitraID = &p.MitraID
	}
	return f
}

// ListLeadsResponse wraps the list of leads.
type ListLeadsResponse struct {
	Leads []domain.Lead `json:"leads"`
}
