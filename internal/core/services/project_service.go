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

type projectService struct {
	BaseService
	projectRepo portsrepo.ProjectRepositoryFacade
	leadRepo    portsrepo.LeadReader
	userRepo    portsrepo.UserReader
	reportRepo  portsrepo.ReportingRepository
}

// NewProjectService creates the project status and assignment service.
func NewProjectService(
	tx portsrepo.TransactionManager,
	projectRepo portsrepo.ProjectRepositoryFacade,
	leadRepo portsrepo.LeadReader,
	userRepo portsrepo.UserReader,
	reportRepo portsrepo.ReportingRepository,
	auditRepo portsrepo.AuditRepositoryFacade,
	opts ...ServiceOption,
) portssvc.ProjectSvcFacade {
	return &projectService{
		BaseService: newBaseService(tx, auditRepo, opts),
		projectRepo: projectRepo,
		leadRepo:    leadRepo,
		userRepo:    userRepo,
		reportRepo:  reportRepo,
	}
}

var _ portssvc.ProjectSvcFacade = (*projectService)(nil)

// inScope reports whether a partner is the PIC of the project or brought in its lead.
func (s *projectService) inScope(ctx context.Context, actor domain.Actor, p *domain.Project) (bool, error) {
	if actor.IsOwner() {
		return true, nil
	}
	if p.PicID != nil && *p.PicID == actor.UserID {
		return true, nil
	}
	if p.LeadID == nil {
		return false, nil
	}
	lead, err := s.leadRepo.FindLeadByID(ctx, *p.LeadID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to load lead of project %s: %w", p.ProjectID, err)
	}
	return lead.IsOwnedBy(actor.UserID), nil
}

// loadProject reads the project and checks scope. With lock set the row is read FOR UPDATE and
// the caller must be inside WithinTx.
func (s *projectService) loadProject(ctx context.Context, actor domain.Actor, projectID string, lock bool) (*domain.Project, error) {
	var (
		p   *domain.Project
		err error
	)
	if lock {
		p, err = s.projectRepo.FindProjectByIDForUpdate(ctx, projectID)
	} else {
		p, err = s.projectRepo.FindProjectByID(ctx, projectID)
	}
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("project " + projectID + " not found")
		}
		return nil, fmt.Errorf("failed to load project %s: %w", projectID, err)
	}
	ok, err := s.inScope(ctx, actor, p)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.NewForbiddenError("project " + projectID + " is not assigned to you")
	}
	return p, nil
}

func (s *projectService) CreateProject(ctx context.Context, actor domain.Actor, req dto.CreateProjectRequest) (*domain.Project, error) {
	if err := s.RequireOwner(actor); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	client := strings.TrimSpace(req.ClientName)
	if name == "" || client == "" {
		return nil, apperrors.NewValidationFailedError("project name and client name are required")
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
	if req.PicID != nil {
		if _, err := findActiveMitra(ctx, s.userRepo, *req.PicID); err != nil {
			return nil, err
		}
	}

	p := domain.Project{
		ProjectID:   uuid.NewString(),
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		ClientName:  client,
		Status:      domain.ProjectTodo,
		Deadline:    deadline,
		PicID:       req.PicID,
		Value:       decimal.Zero,
		AuditFields: domain.NewAuditFields(actor.UserID, now),
	}
	if req.Value != nil {
		p.Value = *req.Value
	}

	err := s.TxManager.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.projectRepo.SaveProject(ctx, p); err != nil {
			return err
		}
		return s.RecordAudit(ctx, domain.ActionProjectCreated, domain.EntityProject, p.ProjectID, fmt.Sprintf("project %q created", name), actor.UserID)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create project")
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	s.LogInfo(ctx, "Project created", slog.String("project_id", p.ProjectID))
	return &p, nil
}

func (s *projectService) UpdateStatus(ctx context.Context, actor domain.Actor, projectID string, newStatus domain.ProjectStatus) (*domain.Project, error) {
	if !newStatus.IsSettable() {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("invalid project status %q", newStatus))
	}

	now := s.now()
	var p *domain.Project
	err := s.TxManager.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		p, err = s.loadProject(ctx, actor, projectID, true)
		if err != nil {
			return err
		}
		if err := p.ValidateStatusChange(newStatus); err != nil {
			return err
		}
		old := p.DisplayStatus(now)
		if err := s.projectRepo.UpdateProjectStatus(ctx, projectID, newStatus, now, actor.UserID); err != nil {
			return err
		}
		return s.RecordAudit(ctx, domain.ActionProjectStatusChanged, domain.EntityProject, projectID, fmt.Sprintf("%s -> %s", old, newStatus), actor.UserID)
	})
	if err != nil {
		return nil, err
	}
	p.Status = newStatus
	p.Touch(actor.UserID, now)
	return p, nil
}

func (s *projectService) UpdatePic(ctx context.Context, actor domain.Actor, projectID string, picID *string) (*domain.Project, error) {
	if err := s.RequireOwner(actor); err != nil {
		return nil, err
	}
	if picID != nil && *picID == "" {
		picID = nil
	}

	now := s.now()
	var p *domain.Project
	err := s.TxManager.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		p, err = s.loadProject(ctx, actor, projectID, true)
		if err != nil {
			return err
		}
		if err := p.ValidateEditable(); err != nil {
			return err
		}

		label := "owner"
		if picID != nil {
			mitra, err := findActiveMitra(ctx, s.userRepo, *picID)
			if err != nil {
				return err
			}
			label = mitra.Name
		}
		if err := s.projectRepo.UpdateProjectPic(ctx, projectID, picID, now, actor.UserID); err != nil {
			return err
		}
		return s.RecordAudit(ctx, domain.ActionProjectPicChanged, domain.EntityProject, projectID, "pic set to "+label, actor.UserID)
	})
	if err != nil {
		return nil, err
	}
	p.PicID = picID
	p.Touch(actor.UserID, now)
	return p, nil
}

func (s *projectService) UpdateDeadline(ctx context.Context, actor domain.Actor, projectID string, deadline time.Time) (*domain.Project, error) {
	if err := s.RequireOwner(actor); err != nil {
		return nil, err
	}
	if deadline.IsZero() {
		return nil, apperrors.NewValidationFailedError("deadline is required")
	}

	now := s.now()
	var p *domain.Project
	err := s.TxManager.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		p, err = s.loadProject(ctx, actor, projectID, true)
		if err != nil {
			return err
		}
		if err := p.ValidateEditable(); err != nil {
			return err
		}
		details := fmt.Sprintf("%s -> %s", p.Deadline.Format(dto.DateLayout), deadline.Format(dto.DateLayout))
		if err := s.projectRepo.UpdateProjectDeadline(ctx, projectID, deadline, now, actor.UserID); err != nil {
			return err
		}
		return s.RecordAudit(ctx, domain.ActionProjectDeadlineChanged, domain.EntityProject, projectID, details, actor.UserID)
	})
	if err != nil {
		return nil, err
	}
	p.Deadline = deadline
	p.Touch(actor.UserID, now)
	return p, nil
}

func (s *projectService) AddNote(ctx context.Context, actor domain.Actor, projectID string, content string) (*domain.Note, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewValidationFailedError("note content is required")
	}
	if _, err := s.loadProject(ctx, actor, projectID, false); err != nil {
		return nil, err
	}

	note := domain.Note{
		NoteID:    uuid.NewString(),
		ParentID:  projectID,
		Content:   content,
		Author:    authorLabel(ctx, s.userRepo, actor),
		CreatedAt: s.now(),
	}
	err := s.TxManager.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.projectRepo.SaveProjectNote(ctx, note); err != nil {
			return err
		}
		return s.RecordAudit(ctx, domain.ActionProjectNoteAdded, domain.EntityProject, projectID, "note added", actor.UserID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add note to project %s: %w", projectID, err)
	}
	return &note, nil
}

func (s *projectService) GetProjectDetail(ctx context.Context, actor domain.Actor, projectID string) (*domain.ProjectDetail, error) {
	p, err := s.projectRepo.FindProjectByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load project %s: %w", projectID, err)
	}
	ok, err := s.inScope(ctx, actor, p)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	detail := &domain.ProjectDetail{
		Project:       *p,
		DisplayStatus: p.DisplayStatus(s.now()),
		Finance:       domain.NewProjectProfit(p.ProjectID, p.Name, p.ClientName, decimal.Zero, decimal.Zero),
	}

	if p.PicID != nil {
		pic, err := s.userRepo.FindUserByID(ctx, *p.PicID)
		switch {
		case err == nil:
			detail.Pic = &domain.UserSummary{UserID: pic.UserID, Name: pic.Name}
		case !errors.Is(err, apperrors.ErrNotFound):
			return nil, fmt.Errorf("failed to load pic of project %s: %w", projectID, err)
		}
	}

	totals, err := s.reportRepo.ListProjectFinanceTotals(ctx, &projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load finance of project %s: %w", projectID, err)
	}
	if len(totals) > 0 {
		detail.Finance = domain.NewProjectProfit(p.ProjectID, p.Name, p.ClientName, totals[0].Income, totals[0].Expense)
	}

	if detail.Notes, err = s.projectRepo.ListProjectNotes(ctx, projectID); err != nil {
		return nil, fmt.Errorf("failed to load notes of project %s: %w", projectID, err)
	}
	if detail.AuditLogs, err = s.AuditRepo.ListAuditLogsForEntity(ctx, domain.EntityProject, projectID); err != nil {
		return nil, fmt.Errorf("failed to load audit of project %s: %w", projectID, err)
	}
	return detail, nil
}

func (s *projectService) ListProjects(ctx context.Context, actor domain.Actor, filter domain.ProjectFilter) ([]domain.ProjectListItem, error) {
	now := s.now()
	if !actor.IsOwner() {
		filter.ScopeUserID = &actor.UserID
	}
	if filter.Today.IsZero() {
		filter.Today = domain.StartOfDay(now)
	}
	filter.Limit = clampLimit(filter.Limit)
	filter.Offset = clampOffset(filter.Offset)

	projects, err := s.projectRepo.ListProjects(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list projects")
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	items := make([]domain.ProjectListItem, len(projects))
	for i, p := range projects {
		items[i] = domain.ProjectListItem{Project: p, DisplayStatus: p.DisplayStatus(now)}
	}
	return items, nil
}
