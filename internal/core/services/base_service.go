package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/velotrack/velotrack_backend/internal/apperrors"
	"github.com/velotrack/velotrack_backend/internal/core/domain"
	portsrepo "github.com/velotrack/velotrack_backend/internal/core/ports/repositories"
	"github.com/velotrack/velotrack_backend/internal/middleware"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// BaseService provides common functionality for all services
type BaseService struct {
	TxManager portsrepo.TransactionManager
	AuditRepo portsrepo.AuditRepositoryFacade
	Clock     func() time.Time
}

// ServiceOption customizes the shared BaseService of a service.
type ServiceOption func(*BaseService)

// WithClock overrides time.Now, mainly for tests.
func WithClock(clock func() time.Time) ServiceOption {
	return func(b *BaseService) {
		b.Clock = clock
	}
}

func newBaseService(tx portsrepo.TransactionManager, auditRepo portsrepo.AuditRepositoryFacade, opts []ServiceOption) BaseService {
	b := BaseService{TxManager: tx, AuditRepo: auditRepo, Clock: time.Now}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

func (s *BaseService) now() time.Time {
	return s.Clock()
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// RecordAudit appends an audit entry. Call it with the transaction context of the mutation
// it describes so a failed write rolls the mutation back.
func (s *BaseService) RecordAudit(ctx context.Context, action, entityType, entityID, details, actorID string) error {
	entry := domain.AuditLog{
		AuditID:    uuid.NewString(),
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
		ActorID:    actorID,
		CreatedAt:  s.now(),
	}
	if err := s.AuditRepo.SaveAuditLog(ctx, entry); err != nil {
		return fmt.Errorf("failed to record audit %s for %s %s: %w", action, entityType, entityID, err)
	}
	return nil
}

// RequireOwner rejects partner actors.
func (s *BaseService) RequireOwner(actor domain.Actor) error {
	if !actor.IsOwner() {
		return apperrors.NewForbiddenError("only the owner can perform this action")
	}
	return nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}

func clampOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
