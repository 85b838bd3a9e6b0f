package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/velotrack/velotrack_backend/internal/apperrors"
)

// LeadStatus indicates where a prospect is in the sales funnel.
type LeadStatus string

const (
	LeadPending LeadStatus = "PENDING"
	LeadDeal    LeadStatus = "DEAL"
	LeadCancel  LeadStatus = "CANCEL"
)

// CancelNotePrefix marks the note recorded automatically when a lead is cancelled.
const CancelNotePrefix = "[CANCEL] "

// IsValid reports whether s is a known lead status.
func (s LeadStatus) IsValid() bool {
	switch s {
	case LeadPending, LeadDeal, LeadCancel:
		return true
	}
	return false
}

// Lead represents a prospective client.
type Lead struct {
	LeadID  string     `json:"leadID"`
	Name    string     `json:"name"`
	Contact string     `json:"contact"`
	Source  string     `json:"source"`
	Status  LeadStatus `json:"status"`
	MitraID *string    `json:"mitraID,omitempty"` // Nullable FK -> users.user_id (partner that brought the lead)
	AuditFields
}

// ValidateStatusChange checks whether the lead may move to newStatus.
// DEAL is terminal and CANCEL needs a non-blank reason.
func (l Lead) ValidateStatusChange(newStatus LeadStatus, reason string) error {
	if l.Status == LeadDeal {
		return apperrors.NewInvalidStateError("lead " + l.LeadID + " is locked: status DEAL cannot be changed")
	}
	if !newStatus.IsValid() {
		return apperrors.NewValidationFailedError(fmt.Sprintf("invalid lead status %q", newStatus))
	}
	if newStatus == LeadCancel && strings.TrimSpace(reason) == "" {
		return apperrors.NewValidationFailedError("a reason is required to cancel a lead")
	}
	return nil
}

// ValidateConvertible checks whether the lead may become a project.
func (l Lead) ValidateConvertible(hasProject bool) error {
	if l.Status == LeadCancel {
		return apperrors.NewInvalidStateError("cancelled lead " + l.LeadID + " cannot be converted to a project")
	}
	if hasProject {
		return apperrors.NewInvalidStateError("lead " + l.LeadID + " has already been converted to a project")
	}
	return nil
}

// IsOwnedBy reports whether the lead was brought in by the given partner.
func (l Lead) IsOwnedBy(userID string) bool {
	return l.MitraID != nil && *l.MitraID == userID
}

// CancelNoteContent builds the note stored when a lead is cancelled.
func CancelNoteContent(reason string) string {
	return CancelNotePrefix + strings.TrimSpace(reason)
}

// Note is a free-text annotation attached to a lead or a project.
type Note struct {
	NoteID    string    `json:"noteID"`
	ParentID  string    `json:"parentID"` // lead_id or project_id depending on the table
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

// LeadDetail aggregates everything shown on the lead page.
type LeadDetail struct {
	Lead      Lead            `json:"lead"`
	Project   *ProjectSummary `json:"project,omitempty"`
	Mitra     *UserSummary    `json:"mitra,omitempty"`
	Notes     []Note          `json:"notes"`
	AuditLogs []AuditLog      `json:"auditLogs"`
}

// LeadFilter narrows lead listings.
type LeadFilter struct {
	Status  *LeadStatus
	MitraID *string
	Search  string
	Limit   int
	Offset  int
}
