package services

import (
	"context"
	"fmt"

	"github.com/velotrack/velotrack_backend/internal/core/domain"
	portsrepo "github.com/velotrack/velotrack_backend/internal/core/ports/repositories"
	portssvc "github.com/velotrack/velotrack_backend/internal/core/ports/services"
)

type auditService struct {
	BaseService
}

// NewAuditService exposes the audit log for reading.
func NewAuditService(auditRepo portsrepo.AuditRepositoryFacade) portssvc.AuditSvcFacade {
	return &auditService{BaseService: newBaseService(nil, auditRepo, nil)}
}

var _ portssvc.AuditSvcFacade = (*auditService)(nil)

func (s *auditService) ListAuditLogs(ctx context.Context, filter domain.AuditFilter) ([]domain.AuditLog, *string, error) {
	filter.Limit = clampLimit(filter.Limit)
	logs, next, err := s.AuditRepo.ListAuditLogs(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list audit logs")
		return nil, nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	return logs, next, nil
}
