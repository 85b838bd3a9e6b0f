package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/velotrack/velotrack_backend/internal/apperrors"
)

// DocumentType is the kind of generated PDF.
type DocumentType string

const (
	DocProposal     DocumentType = "PROPOSAL"
	DocInvoiceDP    DocumentType = "INVOICE_DP"
	DocInvoiceFinal DocumentType = "INVOICE_FINAL"
	DocAgreement    DocumentType = "AGREEMENT" // partnership agreement with a mitra
)

var documentPrefixes = map[DocumentType]string{
	DocProposal:     "PRP",
	DocInvoiceDP:    "INV-DP",
	DocInvoiceFinal: "INV",
	DocAgreement:    "PKS",
}

// IsValid reports whether t is a known document type.
func (t DocumentType) IsValid() bool {
	_, ok := documentPrefixes[t]
	return ok
}

// Prefix returns the number prefix for the type.
func (t DocumentType) Prefix() string {
	return documentPrefixes[t]
}

// Title is the heading printed on the document.
func (t DocumentType) Title() string {
	switch t {
	case DocProposal:
		return "PROPOSAL"
	case DocInvoiceDP:
		return "INVOICE DOWN PAYMENT"
	case DocInvoiceFinal:
		return "INVOICE"
	case DocAgreement:
		return "PERJANJIAN KERJA SAMA"
	}
	return string(t)
}

// FormatDocumentNumber renders {PREFIX}/{YEAR}/{NNN}. Sequences above 999 keep all digits.
func FormatDocumentNumber(t DocumentType, year, seq int) string {
	return fmt.Sprintf("%s/%d/%03d", t.Prefix(), year, seq)
}

// Document is a generated business document and its delivery state.
type Document struct {
	DocumentID     string           `json:"documentID"`
	Number         string           `json:"number"`
	Type           DocumentType     `json:"type"`
	RecipientName  string           `json:"recipientName"`
	RecipientPhone string           `json:"recipientPhone"`
	FileURL        *string          `json:"fileURL,omitempty"`
	IsSent         bool             `json:"isSent"`
	SentAt         *time.Time       `json:"sentAt,omitempty"`
	LastSendError  *string          `json:"lastSendError,omitempty"`
	LeadID         *string          `json:"leadID,omitempty"`
	ProjectID      *string          `json:"projectID,omitempty"`
	MitraID        *string          `json:"mitraID,omitempty"`
	Amount         *decimal.Decimal `json:"amount,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
	CreatedBy      string           `json:"createdBy"`
}

// FileName is the name used when the PDF is stored or attached to a message.
func (d Document) FileName() string {
	return fmt.Sprintf("%s-%s.pdf", d.Type, d.DocumentID)
}

// GenerateDocumentRequest carries the inputs for document generation.
type GenerateDocumentRequest struct {
	Type           DocumentType
	LeadID         *string
	ProjectID      *string
	MitraID        *string
	RecipientName  string
	RecipientPhone string
	Amount         *decimal.Decimal
}

// Validate checks that the subject references required by the type are present.
func (r GenerateDocumentRequest) Validate() error {
	if !r.Type.IsValid() {
		return apperrors.NewValidationFailedError(fmt.Sprintf("invalid document type %q", r.Type))
	}
	switch r.Type {
	case DocProposal:
		if r.LeadID == nil && r.ProjectID == nil {
			return apperrors.NewValidationFailedError("a proposal needs a lead or a project")
		}
	case DocInvoiceDP, DocInvoiceFinal:
		if r.ProjectID == nil {
			return apperrors.NewValidationFailedError("an invoice needs a project")
		}
	case DocAgreement:
		if r.MitraID == nil {
			return apperrors.NewValidationFailedError("an agreement needs a mitra")
		}
	}
	if r.Amount != nil && r.Amount.IsNegative() {
		return apperrors.NewValidationFailedError("amount cannot be negative")
	}
	return nil
}

// DocumentPayload is everything the renderer needs to lay out a document.
type DocumentPayload struct {
	Document Document
	Settings Settings
	Lead     *Lead
	Project  *Project
	Mitra    *User
	IssuedAt time.Time
}

// DocumentFilter narrows document listings.
type DocumentFilter struct {
	Type      *DocumentType
	ProjectID *string
	LeadID    *string
	Limit     int
	Offset    int
}

// SendResult is the outcome of a WhatsApp delivery attempt.
type SendResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
