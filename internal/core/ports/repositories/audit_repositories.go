package repositories

import (
	"context"

	"github.com/velotrack/velotrack_backend/internal/core/domain"
)

// AuditRepositoryFacade persists and reads the append-only audit log.
type AuditRepositoryFacade interface {
	SaveAuditLog(ctx context.Context, entry domain.AuditLog) error

	// ListAuditLogsForEntity returns every entry of one subject, newest first.
	ListAuditLogsForEntity(ctx context.Context, entityType, entityID string) ([]domain.AuditLog, error)

	// ListAuditLogs retrieves a page of entries using token-based pagination.
	// It returns the entries, a token for the next page, and an error.
	ListAuditLogs(ctx context.Context, filter domain.AuditFilter) ([]domain.AuditLog, *string, error)
}
