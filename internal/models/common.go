package models

import "time"

// AuditFields mirrors the created/updated columns shared by most tables.
type AuditFields struct {
	CreatedAt     time.Time `db:"created_at"`
	CreatedBy     string    `db:"created_by"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
	LastUpdatedBy string    `db:"last_updated_by"`
}

// Note is a row of lead_notes or project_notes.
type Note struct {
	NoteID    string    `db:"note_id"`
	ParentID  string    `db:"parent_id"`
	Content   string    `db:"content"`
	Author    string    `db:"author"`
	CreatedAt time.Time `db:"created_at"`
}
