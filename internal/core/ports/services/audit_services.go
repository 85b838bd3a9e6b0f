package services

import (
	"context"

	"github.com/velotrack/velotrack_backend/internal/core/domain"
)

// AuditSvcFacade exposes the audit log.
type AuditSvcFacade interface {
	ListAuditLogs(ctx context.Context, filter domain.AuditFilter) ([]domain.AuditLog, *string, error)
}
