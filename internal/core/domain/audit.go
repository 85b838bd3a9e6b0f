package domain

import "time"

// Entity types recorded in the audit log.
const (
	EntityLead     = "LEAD"
	EntityProject  = "PROJECT"
	EntityUser     = "USER"
	EntityIncome   = "INCOME"
	EntityExpense  = "EXPENSE"
	EntityDocument = "DOCUMENT"
	EntitySettings = "SETTINGS"
)

// Audit action codes.
const (
	ActionLeadCreated       = "LEAD_CREATED"
	ActionLeadUpdated       = "LEAD_UPDATED"
	ActionLeadStatusChanged = "LEAD_STATUS_CHANGED"
	ActionLeadNoteAdded     = "LEAD_NOTE_ADDED"
	ActionLeadDeleted       = "LEAD_DELETED"
	ActionLeadConverted     = "LEAD_CONVERTED"

	ActionProjectCreated         = "PROJECT_CREATED"
	ActionProjectStatusChanged   = "PROJECT_STATUS_CHANGED"
	ActionProjectPicChanged      = "PROJECT_PIC_CHANGED"
	ActionProjectDeadlineChanged = "PROJECT_DEADLINE_CHANGED"
	ActionProjectNoteAdded       = "PROJECT_NOTE_ADDED"

	ActionIncomeCreated  = "INCOME_CREATED"
	ActionIncomeUpdated  = "INCOME_UPDATED"
	ActionIncomeDeleted  = "INCOME_DELETED"
	ActionExpenseCreated = "EXPENSE_CREATED"
	ActionExpenseUpdated = "EXPENSE_UPDATED"
	ActionExpenseDeleted = "EXPENSE_DELETED"

	ActionDocumentCreated = "DOCUMENT_CREATED"
	ActionDocumentSent    = "DOCUMENT_SENT"

	ActionOwnerBootstrapped = "OWNER_BOOTSTRAPPED"
	ActionMitraCreated      = "MITRA_CREATED"
	ActionMitraUpdated      = "MITRA_UPDATED"
	ActionMitraActivated    = "MITRA_ACTIVATED"
	ActionMitraDeactivated  = "MITRA_DEACTIVATED"
	ActionPasswordChanged   = "PASSWORD_CHANGED"

	ActionSettingsUpdated = "SETTINGS_UPDATED"
)

// AuditLog is an immutable record of a state-changing operation.
type AuditLog struct {
	AuditID    string    `json:"auditID"`
	Action     string    `json:"action"`
	EntityType string    `json:"entityType"`
	EntityID   string    `json:"entityID"`
	Details    string    `json:"details"`
	ActorID    string    `json:"actorID"`
	CreatedAt  time.Time `json:"createdAt"`
}

// AuditFilter narrows audit log listings. NextToken is an opaque cursor.
type AuditFilter struct {
	EntityType string
	EntityID   string
	Limit      int
	NextToken  *string
}
