package models

import "time"

// AuditLog is a row of the append-only audit_logs table.
type AuditLog struct {
	AuditID    string    `db:"audit_id"`
	Action     string    `db:"action"`
	EntityType string    `db:"entity_type"`
	EntityID   string    `db:"entity_id"`
	Details    *string   `db:"details"`
	ActorID    string    `db:"actor_id"`
	CreatedAt  time.Time `db:"created_at"`
}
