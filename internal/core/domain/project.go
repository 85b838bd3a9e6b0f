package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/velotrack/velotrack_backend/internal/apperrors"
)

// ProjectStatus indicates the progress of a project.
type ProjectStatus string

const (
	ProjectTodo       ProjectStatus = "TODO"
	ProjectOnProgress ProjectStatus = "ON_PROGRESS"
	ProjectDone       ProjectStatus = "DONE"
	// ProjectOverdue is derived from the deadline at read time. The service never stores it.
	ProjectOverdue ProjectStatus = "OVERDUE"
)

// IsValid reports whether s is a known project status, including the derived OVERDUE.
func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectTodo, ProjectOnProgress, ProjectDone, ProjectOverdue:
		return true
	}
	return false
}

// IsSettable reports whether s may be written through a status update.
func (s ProjectStatus) IsSettable() bool {
	return s == ProjectTodo || s == ProjectOnProgress || s == ProjectDone
}

// Project represents committed, billable work.
type Project struct {
	ProjectID   string          `json:"projectID"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	ClientName  string          `json:"clientName"`
	Status      ProjectStatus   `json:"status"`
	Deadline    time.Time       `json:"deadline"`
	PicID       *string         `json:"picID,omitempty"`  // null = handled by the owner
	LeadID      *string         `json:"leadID,omitempty"` // unique; set when converted from a lead
	Value       decimal.Decimal `json:"value"`            // contract value, zero when unknown
	AuditFields
}

// DefaultDeadline is used when a project is created without a deadline: one calendar month out.
func DefaultDeadline(now time.Time) time.Time {
	return now.AddDate(0, 1, 0)
}

// IsOverdue reports whether the project is past its deadline while still open.
// The comparison is by calendar date: a deadline of today is not overdue. Deadlines are DATE values,
// so their year/month/day are taken as stored, without converting to now's location.
func (p Project) IsOverdue(now time.Time) bool {
	switch p.Status {
	case ProjectTodo, ProjectOnProgress, ProjectOverdue:
	default:
		return false
	}
	y, m, d := p.Deadline.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location()).Before(StartOfDay(now))
}

// DisplayStatus returns the status shown to users, with OVERDUE derived from the deadline.
func (p Project) DisplayStatus(now time.Time) ProjectStatus {
	if p.IsOverdue(now) {
		return ProjectOverdue
	}
	if p.Status == ProjectOverdue {
		// legacy rows stored as OVERDUE whose deadline moved forward
		return ProjectOnProgress
	}
	return p.Status
}

// IsLocked reports whether the project accepts no further edits.
func (p Project) IsLocked() bool {
	return p.Status == ProjectDone
}

// ValidateStatusChange checks whether the project may move to newStatus.
func (p Project) ValidateStatusChange(newStatus ProjectStatus) error {
	if !newStatus.IsSettable() {
		return apperrors.NewValidationFailedError(fmt.Sprintf("invalid project status %q", newStatus))
	}
	if p.IsLocked() {
		return apperrors.NewInvalidStateError("project " + p.ProjectID + " is DONE and cannot change status")
	}
	return nil
}

// ValidateEditable checks whether assignment fields (PIC, deadline) may change.
func (p Project) ValidateEditable() error {
	if p.IsLocked() {
		return apperrors.NewInvalidStateError("project " + p.ProjectID + " is DONE and can no longer be edited")
	}
	return nil
}

// ProjectSummary is the compact reference embedded in a lead detail.
type ProjectSummary struct {
	ProjectID string        `json:"projectID"`
	Name      string        `json:"name"`
	Status    ProjectStatus `json:"status"`
}

// ProjectDetail aggregates everything shown on the project page.
type ProjectDetail struct {
	Project       Project       `json:"project"`
	DisplayStatus ProjectStatus `json:"displayStatus"`
	Pic           *UserSummary  `json:"pic,omitempty"`
	Notes         []Note        `json:"notes"`
	AuditLogs     []AuditLog    `json:"auditLogs"`
	Finance       ProjectProfit `json:"finance"`
}

// ProjectFilter narrows project listings. Status may be OVERDUE, which is resolved against
// the deadline rather than the stored column.
type ProjectFilter struct {
	Status *ProjectStatus
	PicID  *string
	// ScopeUserID limits results to projects a partner is PIC of or originated.
	ScopeUserID *string
	Search      string
	Today       time.Time
	Limit       int
	Offset      int
}

// ProjectListItem is a project row with its derived status.
type ProjectListItem struct {
	Project
	DisplayStatus ProjectStatus `json:"displayStatus"`
}
