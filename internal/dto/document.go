package dto

import (
	"github.com/shopspring/decimal"
	"github.com/velotrack/velotrack_backend/internal/core/domain"
)

// GenerateDocumentRequest defines the inputs of document generation.
type GenerateDocumentRequest struct {
	Type           domain.DocumentType `json:"type" binding:"required,oneof=PROPOSAL INVOICE_DP INVOICE_FINAL AGREEMENT"`
	LeadID         *string             `json:"leadID" binding:"omitempty,uuid"`
	ProjectID      *string             `json:"projectID" binding:"omitempty,uuid"`
	MitraID        *string             `json:"mitraID" binding:"omitempty,uuid"`
	RecipientName  string              `json:"recipientName" binding:"max=200"`
	RecipientPhone string              `json:"recipientPhone" binding:"omitempty,phone"`
	Amount         *decimal.Decimal    `json:"amount"`
}

// ToDomain converts the request to its domain form.
func (r GenerateDocumentRequest) ToDomain() domain.GenerateDocumentRequest {
	return domain.GenerateDocumentRequest{
		Type:           r.Type,
		LeadID:         r.LeadID,
		ProjectID:      r.ProjectID,
		MitraID:        r.MitraID,
		RecipientName:  r.RecipientName,
		RecipientPhone: r.RecipientPhone,
		Amount:         r.Amount,
	}
}

// SendDocumentRequest overrides the default recipient phone or message.
type SendDocumentRequest struct {
	Phone   string `json:"phone" binding:"omitempty,phone"`
	Message string `json:"message" binding:"max=4000"`
}

// ListDocumentsParams filters document listings.
type ListDocumentsParams struct {
	Type      string `form:"type" binding:"omitempty,oneof=PROPOSAL INVOICE_DP INVOICE_FINAL AGREEMENT"`
	ProjectID string `form:"projectID" binding:"omitempty,uuid"`
	LeadID    string `form:"leadID" binding:"omitempty,uuid"`
	PageParams
}

// ToFilter converts the query parameters to a domain filter.
func (p ListDocumentsParams) ToFilter() domain.DocumentFilter {
	f := domain.DocumentFilter{Limit: p.Limit, Offset: p.Offset}
	if p.Type != "" {
		t := domain.DocumentType(p.Type)
		f.Type = &t
	}
	if p.ProjectID != "" {
		f.ProjectID = &p.ProjectID
	}
	if p.LeadID != "" {
		f.LeadID = &p.LeadID
	}
	return f
}

// GenerateDocumentResponse returns the stored document and, when rendering or upload
// failed after the record was committed, the reason.
type GenerateDocumentResponse struct {
	Document domain.Document `json:"document"`
	Error    string          `json:"error,omitempty"`
}

// ListDocumentsResponse wraps the list of documents.
type ListDocumentsResponse struct {
	Documents []domain.Document `json:"documents"`
}

// SendWhatsAppRequest is a free-text WhatsApp message.
type SendWhatsAppRequest struct {
	Phone   string `json:"phone" binding:"required,phone"`
	Message string `json:"message" binding:"required,max=4000"`
}
