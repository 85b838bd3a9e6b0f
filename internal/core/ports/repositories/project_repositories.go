package repositories

import (
	"context"
	"time"

	"github.com/velotrack/velotrack_backend/internal/core/domain"
)

// ProjectReader defines read operations for projects and their notes.
type ProjectReader interface {
	// FindProjectByID retrieves a project, returning apperrors.ErrNotFound when absent.
	FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error)

	// FindProjectByIDForUpdate is FindProjectByID holding a row lock until the surrounding transaction ends.
	FindProjectByIDForUpdate(ctx context.Context, projectID string) (*domain.Project, error)

	// FindProjectByLeadID retrieves the project converted from a lead, returning apperrors.ErrNotFound when none exists.
	FindProjectByLeadID(ctx context.Context, leadID string) (*domain.Project, error)

	// ListProjects retrieves projects matching the filter. An OVERDUE status filter is matched
	// against the deadline relative to filter.Today.
	ListProjects(ctx context.Context, filter domain.ProjectFilter) ([]domain.Project, error)

	// ListProjectNotes retrieves notes of a project, newest first.
	ListProjectNotes(ctx context.Context, projectID string) ([]domain.Note, error)
}

// ProjectWriter defines write operations for projects and their notes.
type ProjectWriter interface {
	// SaveProject persists a new project. A second project for the same lead is reported as apperrors.ErrDuplicate.
	SaveProject(ctx context.Context, project domain.Project) error
	UpdateProjectStatus(ctx context.Context, projectID string, status domain.ProjectStatus, updatedAt time.Time, updatedBy string) error
	UpdateProjectPic(ctx context.Context, projectID string, picID *string, updatedAt time.Time, updatedBy string) error
	UpdateProjectDeadline(ctx context.Context, projectID string, deadline time.Time, updatedAt time.Time, updatedBy string) error
	SaveProjectNote(ctx context.Context, note domain.Note) error
}

// ProjectRepositoryFacade combines all project-related repository interfaces
type ProjectRepositoryFacade interface {
	ProjectReader
	ProjectWriter
}
