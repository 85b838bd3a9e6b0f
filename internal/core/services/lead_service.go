package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/velotrack/velotrack_backend/internal/apperrors"
	"github.com/velotrack/velotrack_backend/internal/core/domain"
	portsrepo "github.com/velotrack/velotrack_backend/internal/core/ports/repositories"
	portssvc "github.com/velotrack/velotrack_backend/internal/core/ports/services"
	"github.com/velotrack/velotrack_backend/internal/dto"
)

type leadService struct {
	BaseService
	leadRepo    portsrepo.LeadRepositoryFacade
	projectRepo portsrepo.ProjectReader
	userRepo    portsrepo.UserReader
}

// NewLeadService creates the lead lifecycle service.
func NewLeadService(
	tx portsrepo.TransactionManager,
	leadRepo portsrepo.LeadRepositoryFacade,
	projectRepo portsrepo.ProjectReader,
	userRepo portsrepo.UserReader,
	auditRepo portsrepo.AuditRepositoryFacade,
	opts ...ServiceOption,
) portssvc.LeadSvcFacade {
	return &leadService{
		BaseService: newBaseService(tx, auditRepo, opts),
		leadRepo:    leadRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
	}
}

var _ portssvc.LeadSvcFacade = (*leadService)(nil)

// loadLead fetches a lead the actor may modify. lock takes a row lock and requires a transaction context.
func loadLead(ctx context.Context, repo portsrepo.LeadReader, actor domain.Actor, leadID string, lock bool) (*domain.Lead, error) {
	var (
		lead *domain.Lead
		err  error
	)
	if lock {
		lead, err = repo.FindLeadByIDForUpdate(ctx, leadID)
	} else {
		lead, err = repo.FindLeadByID(ctx, leadID)
	}
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("lead " + leadID + " not found")
		}
		return nil, fmt.Errorf("failed to load lead %s: %w", leadID, err)
	}
	if !actor.IsOwner() && !lead.IsOwnedBy(actor.UserID) {
		return nil, apperrors.NewForbiddenError("lead " + leadID + " belongs to another partner")
	}
	return lead, nil
}

func (s *leadService) CreateLead(ctx context.Context, actor domain.Actor, req dto.CreateLeadRequest) (*domain.Lead, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationFailedError("lead name is required")
	}

	var mitraID *string
	switch {
	case !actor.IsOwner():
		mitraID = &actor.UserID
	case req.MitraID != nil && *req.MitraID != "":
		if _, err := findActiveMitra(ctx, s.userRepo, *req.MitraID); err != nil {
			return nil, err
		}
		mitraID = req.MitraID
	}

	lead := domain.Lead{
		LeadID:      uuid.NewString(),
		Name:        name,
		Contact:     strings.TrimSpace(req.Contact),
		Source:      strings.TrimSpace(req.Source),
		Status:      domain.LeadPending,
		MitraID:     mitraID,
		AuditFields: domain.NewAuditFields(actor.UserID, s.now()),
	}

	err := s.TxManager.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.leadRepo.SaveLead(ctx, lead); err != nil {
			return err
		}
		return s.RecordAudit(ctx, domain.ActionLeadCreated, domain.EntityLead, lead.LeadID, fmt.Sprintf("lead %q created", name), actor.UserID)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create lead")
		return nil, fmt.Errorf("failed to create lead: %w", err)
	}

	s.LogInfo(ctx, "Lead created", slog.String("lead_id", lead.LeadID))
	return &lead, nil
}

func (s *leadService) UpdateLead(ctx context.Context, actor domain.Actor, leadID string, req dto.UpdateLeadRequest) (*domain.Lead, error) {
	if req.MitraID != nil && !actor.IsOwner() {
		return nil, apperrors.NewForbiddenError("only the owner can reassign a lead")
	}

	var updated *domain.Lead
	err := s.TxManager.WithinTx(ctx, func(ctx context.Context) error {
		lead, err := loadLead(ctx, s.leadRepo, actor, leadID, true)
		if err != nil {
			return err
		}

		var changes []string
		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return apperrors.NewValidationFailedError("lead name is required")
			}
			lead.Name = name
			changes = append(changes, "name")
		}
		if req.Contact != nil {
			lead.Contact = strings.TrimSpace(*req.Contact)
			changes = append(changes, "contact")
		}
		if req.Source != nil {
			lead.Source = strings.TrimSpace(*req.Source)
			changes = append(changes, "source")
		}
		if req.MitraID != nil {
			if *req.MitraID == "" {
				lead.MitraID = nil
			} else {
				if _, err := findActiveMitra(ctx, s.userRepo, *req.MitraID); err != nil {
					return err
				}
				lead.MitraID = req.MitraID
			}
			changes = append(changes, "mitra")
		}
		if len(changes) == 0 {
			updated = lead
			return nil
		}
		lead.Touch(actor.UserID, s.now())

		if err := s.leadRepo.UpdateLead(ctx, *lead); err != nil {
			return err
		}
		updated = lead
		return s.RecordAudit(ctx, domain.ActionLeadUpdated, domain.EntityLead, leadID, "updated "+strings.Join(changes, ", "), actor.UserID)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *leadService) ChangeStatus(ctx context.Context, actor domain.Actor, leadID string, newStatus domain.LeadStatus, reason string) (*domain.Lead, error) {
	var updated *domain.Lead
	err := s.TxManager.WithinTx(ctx, func(ctx context.Context) error {
		lead, err := loadLead(ctx, s.leadRepo, actor, leadID, true)
		if err != nil {
			return err
		}
		if err := lead.ValidateStatusChange(newStatus, reason); err != nil {
			return err
		}

		now := s.now()
		oldStatus := lead.Status
		if err := s.leadRepo.UpdateLeadStatus(ctx, leadID, newStatus, now, actor.UserID); err != nil {
			return err
		}
		if newStatus == domain.LeadCancel {
			note := domain.Note{
				NoteID:    uuid.NewString(),
				ParentID:  leadID,
				Content:   domain.CancelNoteContent(reason),
				Author:    authorLabel(ctx, s.userRepo, actor),
				CreatedAt: now,
			}
			if err := s.leadRepo.SaveLeadNote(ctx, note); err != nil {
				return err
			}
		}
		if err := s.RecordAudit(ctx, domain.ActionLeadStatusChanged, domain.EntityLead, leadID, fmt.Sprintf("%s -> %s", oldStatus, newStatus), actor.UserID); err != nil {
			return err
		}

		lead.Status = newStatus
		lead.Touch(actor.UserID, now)
		updated = lead
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *leadService) DeleteLead(ctx context.Context, actor domain.Actor, leadID string) error {
	if err := s.RequireOwner(actor); err != nil {
		return err
	}

	return s.TxManager.WithinTx(ctx, func(ctx context.Context) error {
		lead, err := loadLead(ctx, s.leadRepo, actor, leadID, true)
		if err != nil {
			return err
		}
		if _, err := s.projectRepo.FindProjectByLeadID(ctx, leadID); err == nil {
			return apperrors.NewInvalidStateError("cannot delete converted lead " + leadID)
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("failed to check project of lead %s: %w", leadID, err)
		}

		if err := s.leadRepo.DeleteLeadNotes(ctx, leadID); err != nil {
			return err
		}
		if err := s.leadRepo.DeleteLead(ctx, leadID); err != nil {
			return err
		}
		return s.RecordAudit(ctx, domain.ActionLeadDeleted, domain.EntityLead, leadID, fmt.Sprintf("lead %q deleted", lead.Name), actor.UserID)
	})
}

func (s *leadService) AddNote(ctx context.Context, actor domain.Actor, leadID string, content string) (*domain.Note, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewValidationFailedError("note content is required")
	}
	if _, err := loadLead(ctx, s.leadRepo, actor, leadID, false); err != nil {
		return nil, err
	}

	note := domain.Note{
		NoteID:    uuid.NewString(),
		ParentID:  leadID,
		Content:   content,
		Author:    authorLabel(ctx, s.userRepo, actor),
		CreatedAt: s.now(),
	}
	err := s.TxManager.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.leadRepo.SaveLeadNote(ctx, note); err != nil {
			return err
		}
		return s.RecordAudit(ctx, domain.ActionLeadNoteAdded, domain.EntityLead, leadID, "note added", actor.UserID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add note to lead %s: %w", leadID, err)
	}
	return &note, nil
}

func (s *leadService) GetLeadDetail(ctx context.Context, actor domain.Actor, leadID string) (*domain.LeadDetail, error) {
	lead, err := s.leadRepo.FindLeadByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load lead %s: %w", leadID, err)
	}
	if !actor.IsOwner() && !lead.IsOwnedBy(actor.UserID) {
		return nil, nil
	}

	detail := &domain.LeadDetail{Lead: *lead}

	project, err := s.projectRepo.FindProjectByLeadID(ctx, leadID)
	switch {
	case err == nil:
		detail.Project = &domain.ProjectSummary{ProjectID: project.ProjectID, Name: project.Name, Status: project.DisplayStatus(s.now())}
	case !errors.Is(err, apperrors.ErrNotFound):
		return nil, fmt.Errorf("failed to load project of lead %s: %w", leadID, err)
	}

	if lead.MitraID != nil {
		mitra, err := s.userRepo.FindUserByID(ctx, *lead.MitraID)
		switch {
		case err == nil:
			detail.Mitra = &domain.UserSummary{UserID: mitra.UserID, Name: mitra.Name}
		case !errors.Is(err, apperrors.ErrNotFound):
			return nil, fmt.Errorf("failed to load mitra of lead %s: %w", leadID, err)
		}
	}

	if detail.Notes, err = s.leadRepo.ListLeadNotes(ctx, leadID); err != nil {
		return nil, fmt.Errorf("failed to load notes of lead %s: %w", leadID, err)
	}
	if detail.AuditLogs, err = s.AuditRepo.ListAuditLogsForEntity(ctx, domain.EntityLead, leadID); err != nil {
		return nil, fmt.Errorf("failed to load audit of lead %s: %w", leadID, err)
	}
	return detail, nil
}

func (s *leadService) ListLeads(ctx context.Context, actor domain.Actor, filter domain.LeadFilter) ([]domain.Lead, error) {
	if !actor.IsOwner() {
		filter.MitraID = &actor.UserID
	}
	filter.Limit = clampLimit(filter.Limit)
	filter.Offset = clampOffset(filter.Offset)

	leads, err := s.leadRepo.ListLeads(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list leads")
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	return leads, nil
}
