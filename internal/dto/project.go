package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/velotrack/velotrack_backend/internal/core/domain"
)

// CreateProjectRequest defines the data needed to create a project directly.
type CreateProjectRequest struct {
	Name        string           `json:"name" binding:"required,max=200"`
	ClientName  string           `json:"clientName" binding:"required,max=200"`
	Description string           `json:"description"`
	Deadline    string           `json:"deadline" binding:"omitempty,datetime=2006-01-02"`
	PicID       *string          `json:"picID" binding:"omitempty,uuid"`
	Value       *decimal.Decimal `json:"value"`
}

// UpdateProjectStatusRequest changes a project's stored status. OVERDUE is rejected by the service.
type UpdateProjectStatusRequest struct {
	Status domain.ProjectStatus `json:"status" binding:"required"`
}

// UpdateProjectPicRequest reassigns a project. A null picID hands it back to the owner.
type UpdateProjectPicRequest struct {
	PicID *string `json:"picID" binding:"omitempty,uuid"`
}

// UpdateProjectDeadlineRequest moves the deadline.
type UpdateProjectDeadlineRequest struct {
	Deadline string `json:"deadline" binding:"required,datetime=2006-01-02"`
}

// ListProjectsParams defines query parameters for listing projects.
type ListProjectsParams struct {
	Status string `form:"status" binding:"omitempty,oneof=TODO ON_PROGRESS DONE OVERDUE"`
	PicID  string `form:"picID" binding:"omitempty,uuid"`
	Search string `form:"q"`
	PageParams
}

// ToFilter converts the query parameters to a domain filter.
func (p ListProjectsParams) ToFilter(today time.Time) domain.ProjectFilter {
	f := domain.ProjectFilter{Search: p.Search, Today: today, Limit: p.Limit, Offset: p.Offset}
	if p.Status != "" {
		s := domain.ProjectStatus(p.Status)
		f.Status = &s
	}
	if p.PicID != "" {
		f.PicID = &p.PicID
	}
	return f
}

// ListProjectsResponse wraps the list of projects.
type ListProjectsResponse struct {
	Projects []domain.ProjectListItem `json:"projects"`
}
