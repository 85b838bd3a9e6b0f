package models

// Lead is a row of the leads table.
type Lead struct {
	LeadID  string  `db:"lead_id"`
	Name    string  `db:"name"`
	Contact string  `db:"contact"`
	Source  *string `db:"source"`
	Status  string  `db:"status"`
	MitraID *string `db:"mitra_id"` // Nullable
	AuditFields
}
