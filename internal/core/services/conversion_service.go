package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/velotrack/velotrack_backend/internal/apperrors"
	"github.com/velotrack/velotrack_backend/internal/core/domain"
	portsrepo "github.com/velotrack/velotrack_backend/internal/core/ports/repositories"
	portssvc "github.com/velotrack/velotrack_backend/internal/core/ports/services"
	"github.com/velotrack/velotrack_backend/internal/dto"
)

type conversionService struct {
	BaseService
	leadRepo    portsrepo.LeadRepositoryFacade
	projectRepo portsrepo.ProjectRepositoryFacade
}

// NewConversionService creates the lead to project converter.
func NewConversionService(
	tx portsrepo.TransactionManager,
	leadRepo portsrepo.LeadRepositoryFacade,
	projectRepo portsrepo.ProjectRepositoryFacade,
	auditRepo portsrepo.AuditRepositoryFacade,
	opts ...ServiceOption,
) portssvc.LeadConverterSvc {
	return &conversionService{
		BaseService: newBaseService(tx, auditRepo, opts),
		leadRepo:    leadRepo,
		projectRepo: projectRepo,
	}
}

var _ portssvc.LeadConverterSvc = (*conversionService)(nil)

func (s *conversionService) ConvertLead(ctx context.Context, actor domain.Actor, leadID string, req dto.ConvertLeadRequest) (*domain.Project, error) {
	name := strings.TrimSpace(req.ProjectName)
	if name == "" {
		return nil, apperrors.NewValidationFailedError("project name is required")
	}
	if req.Value != nil && req.Value.IsNegative() {
		return nil, apperrors.NewValidationFailedError("project value cannot be negative")
	}

	now := s.now()
	deadline := domain.StartOfDay(domain.DefaultDeadline(now))
	if req.Deadline != "" {
		parsed, err := dto.ParseDate(req.Deadline, now.Location())
		if err != nil {
			return nil, err
		}
		deadline = parsed
	}

	var project *domain.Project
	err := s.TxManager.WithinTx(ctx, func(ctx context.Context) error {
		lead, err := loadLead(ctx, s.leadRepo, actor, leadID, true)
		if err != nil {
			return err
		}

		_, err = s.projectRepo.FindProjectByLeadID(ctx, leadID)
		hasProject := err == nil
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("failed to check project of lead %s: %w", leadID, err)
		}
		if err := lead.ValidateConvertible(hasProject); err != nil {
			return err
		}

		if lead.Status != domain.LeadDeal {
			if err := s.leadRepo.UpdateLeadStatus(ctx, leadID, domain.LeadDeal, now, actor.UserID); err != nil {
				return err
			}
		}

		p := newConvertedProject(*lead, name, strings.TrimSpace(req.Description), deadline, req.Value, actor.UserID, now)
		if err := s.projectRepo.SaveProject(ctx, p); err != nil {
			if errors.Is(err, apperrors.ErrDuplicate) {
				return apperrors.NewInvalidStateError("lead " + leadID + " has already been converted to a project")
			}
			return err
		}

		details := fmt.Sprintf("lead %s converted to project %s", leadID, p.ProjectID)
		if err := s.RecordAudit(ctx, domain.ActionLeadConverted, domain.EntityLead, leadID, details, actor.UserID); err != nil {
			return err
		}
		if err := s.RecordAudit(ctx, domain.ActionProjectCreated, domain.EntityProject, p.ProjectID, details, actor.UserID); err != nil {
			return err
		}
		project = &p
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Lead converted", slog.String("lead_id", leadID), slog.String("project_id", project.ProjectID))
	return project, nil
}

func newConvertedProject(lead domain.Lead, name, description string, deadline time.Time, value *decimal.Decimal, actorID string, now time.Time) domain.Project {
	leadID := lead.LeadID
	p := domain.Project{
		ProjectID:   uuid.NewString(),
		Name:        name,
		Description: description,
		ClientName:  lead.Name,
		Status:      domain.ProjectTodo,
		Deadline:    deadline,
		PicID:       lead.MitraID,
		LeadID:      &leadID,
		AuditFields: domain.NewAuditFields(actorID, now),
	}
	if value != nil {
		p.Value = *value
	}
	return p
}
