package mapping

import (
	"github.com/shopspring/decimal"
	"github.com/velotrack/velotrack_backend/internal/core/domain"
	"github.com/velotrack/velotrack_backend/internal/models"
)

// ToModelProject converts a domain Project to a model Project
func ToModelProject(d domain.Project) models.Project {
	value := decimal.NullDecimal{}
	if !d.Value.IsZero() {
		value = decimal.NewNullDecimal(d.Value)
	}
	return models.Project{
		ProjectID:   d.ProjectID,
		Name:        d.Name,
		Description: nullable(d.Description),
		ClientName:  d.ClientName,
		Status:      string(d.Status),
		Deadline:    d.Deadline,
		PicID:       d.PicID,
		LeadID:      d.LeadID,
		Value:       value,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainProject converts a model Project to a domain Project
func ToDomainProject(m models.Project) domain.Project {
	value := decimal.Zero
	if m.Value.Valid {
		value = m.Value.Decimal
	}
	return domain.Project{
		ProjectID:   m.ProjectID,
		Name:        m.Name,
		Description: deref(m.Description),
		ClientName:  m.ClientName,
		Status:      domain.ProjectStatus(m.Status),
		Deadline:    m.Deadline,
		PicID:       m.PicID,
		LeadID:      m.LeadID,
		Value:       value,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainProjectSlice converts a slice of model Projects to a slice of domain Projects
func ToDomainProjectSlice(ms []models.Project) []domain.Project {
	ds := make([]domain.Project, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainProject(m)
	}
	return ds
}
