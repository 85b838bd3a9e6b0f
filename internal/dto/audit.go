package dto

import "github.com/velotrack/velotrack_backend/internal/core/domain"

// ListAuditLogsParams defines query parameters for the audit log.
type ListAuditLogsParams struct {
	EntityType string  `form:"entityType"`
	EntityID   string  `form:"entityID"`
	Limit      int     `form:"limit,default=50" binding:"min=1,max=200"`
	NextToken  *string `form:"nextToken"`
}

// ListAuditLogsResponse is a page of audit entries.
type ListAuditLogsResponse struct {
	AuditLogs []domain.AuditLog `json:"auditLogs"`
	NextToken *string           `json:"nextToken,omitempty"`
}
