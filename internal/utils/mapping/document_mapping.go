package mapping

import (
	"github.com/shopspring/decimal"
	"github.com/velotrack/velotrack_backend/internal/core/domain"
	"github.com/velotrack/velotrack_backend/internal/models"
)

// ToModelDocument converts a domain Document to a model Document
func ToModelDocument(d domain.Document) models.Document {
	amount := decimal.NullDecimal{}
	if d.Amount != nil {
		amount = decimal.NewNullDecimal(*d.Amount)
	}
	return models.Document{
		DocumentID:     d.DocumentID,
		Number:         d.Number,
		Type:           string(d.Type),
		RecipientName:  d.RecipientName,
		RecipientPhone: nullable(d.RecipientPhone),
		FileURL:        d.FileURL,
		IsSent:         d.IsSent,
		SentAt:         d.SentAt,
		LastSendError:  d.LastSendError,
		LeadID:         d.LeadID,
		ProjectID:      d.ProjectID,
		MitraID:        d.MitraID,
		Amount:         amount,
		CreatedAt:      d.CreatedAt,
		CreatedBy:      d.CreatedBy,
	}
}

// ToDomainDocument converts a model Document to a domain Document
func ToDomainDocument(m models.Document) domain.Document {
	var amount *decimal.Decimal
	if m.Amount.Valid {
		a := m.Amount.Decimal
		amount = &a
	}
	return domain.Document{
		DocumentID:     m.DocumentID,
		Number:         m.Number,
		Type:           domain.DocumentType(m.Type),
		RecipientName:  m.RecipientName,
		RecipientPhone: deref(m.RecipientPhone),
		FileURL:        m.FileURL,
		IsSent:         m.IsSent,
		SentAt:         m.SentAt,
		LastSendError:  m.LastSendError,
		LeadID:         m.LeadID,
		ProjectID:      m.ProjectID,
		MitraID:        m.MitraID,
		Amount:         amount,
		CreatedAt:      m.CreatedAt,
		CreatedBy:      m.CreatedBy,
	}
}

// ToDomainDocumentSlice converts document rows to domain documents
func ToDomainDocumentSlice(ms []models.Document) []domain.Document {
	ds := make([]domain.Document, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainDocument(m)
	}
	return ds
}
