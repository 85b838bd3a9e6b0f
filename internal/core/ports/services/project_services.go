package services

import (
	"context"
	"time"

	"github.com/velotrack/velotrack_backend/internal/core/domain"
	"github.com/velotrack/velotrack_backend/internal/dto"
)

// ProjectReaderSvc defines read operations for projects.
type ProjectReaderSvc interface {
	// GetProjectDetail returns nil, nil when the project does not exist or is outside the actor's scope.
	GetProjectDetail(ctx context.Context, actor domain.Actor, projectID string) (*domain.ProjectDetail, error)
	ListProjects(ctx context.Context, actor domain.Actor, filter domain.ProjectFilter) ([]domain.ProjectListItem, error)
}

// ProjectWriterSvc defines project mutations. DONE projects reject all of them except notes.
type ProjectWriterSvc interface {
	CreateProject(ctx context.Context, actor domain.Actor, req dto.CreateProjectRequest) (*domain.Project, error)
	UpdateStatus(ctx context.Context, actor domain.Actor, projectID string, newStatus domain.ProjectStatus) (*domain.Project, error)
	UpdatePic(ctx context.Context, actor domain.Actor, projectID string, picID *string) (*domain.Project, error)
	UpdateDeadline(ctx context.Context, actor domain.Actor, projectID string, deadline time.Time) (*domain.Project, error)
	AddNote(ctx context.Context, actor domain.Actor, projectID string, content string) (*domain.Note, error)
}

// ProjectSvcFacade combines all project-related service interfaces
type ProjectSvcFacade interface {
	ProjectReaderSvc
	ProjectWriterSvc
}
