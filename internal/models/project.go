package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Project is a row of the projects table.
type Project struct {
	ProjectID   string              `db:"project_id"`
	Name        string              `db:"name"`
	Description *string             `db:"description"`
	ClientName  string              `db:"client_name"`
	Status      string              `db:"status"`
	Deadline    time.Time           `db:"deadline"` // DATE
	PicID       *string             `db:"pic_id"`
	LeadID      *string             `db:"lead_id"`
	Value       decimal.NullDecimal `db:"value"`
	AuditFields
}
