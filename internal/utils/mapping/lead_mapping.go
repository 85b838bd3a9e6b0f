package mapping

import (
	"github.com/velotrack/velotrack_backend/internal/core/domain"
	"github.com/velotrack/velotrack_backend/internal/models"
)

// ToModelLead converts a domain Lead to a model Lead
func ToModelLead(d domain.Lead) models.Lead {
	return models.Lead{
		LeadID:      d.LeadID,
		Name:        d.Name,
		Contact:     d.Contact,
		Source:      nullable(d.Source),
		Status:      string(d.Status),
		MitraID:     d.MitraID,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLead converts a model Lead to a domain Lead
func ToDomainLead(m models.Lead) domain.Lead {
	return domain.Lead{
		LeadID:      m.LeadID,
		Name:        m.Name,
		Contact:     m.Contact,
		Source:      deref(m.Source),
		Status:      domain.LeadStatus(m.Status),
		MitraID:     m.MitraID,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLeadSlice converts a slice of model Leads to a slice of domain Leads
func ToDomainLeadSlice(ms []models.Lead) []domain.Lead {
	ds := make([]domain.Lead, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLead(m)
	}
	return ds
}

// ToModelNote converts a domain Note to a model Note
func ToModelNote(d domain.Note) models.Note {
	return models.Note(d)
}

// ToDomainNoteSlice converts note rows to domain notes
func ToDomainNoteSlice(ms []models.Note) []domain.Note {
	ds := make([]domain.Note, len(ms))
	for i, m := range ms {
		ds[i] = domain.Note(m)
	}
	return ds
}
