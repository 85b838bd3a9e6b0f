package mapping

import (
	"github.com/velotrack/velotrack_backend/internal/core/domain"
	"github.com/velotrack/velotrack_backend/internal/models"
)

// ToModelAuditLog converts a domain AuditLog to a model AuditLog
func ToModelAuditLog(d domain.AuditLog) models.AuditLog {
	return models.AuditLog{
		AuditID:    d.AuditID,
		Action:     d.Action,
		EntityType: d.EntityType,
		EntityID:   d.EntityID,
		Details:    nullable(d.Details),
		ActorID:    d.ActorID,
		CreatedAt:  d.CreatedAt,
	}
}

// ToDomainAuditLogSlice converts audit rows to domain entries
func ToDomainAuditLogSlice(ms []models.AuditLog) []domain.AuditLog {
	ds := make([]domain.AuditLog, len(ms))
	for i, m := range ms {
		ds[i] = domain.AuditLog{
			AuditID:    m.AuditID,
			Action:     m.Action,
			EntityType: m.EntityType,
			EntityID:   m.EntityID,
			Details:    deref(m.Details),
			ActorID:    m.ActorID,
			CreatedAt:  m.CreatedAt,
		}
	}
	return ds
}
