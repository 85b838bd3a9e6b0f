package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Document is a row of the documents table.
type Document struct {
	DocumentID     string              `db:"document_id"`
	Number         string              `db:"number"`
	Type           string              `db:"type"`
	RecipientName  string              `db:"recipient_name"`
	RecipientPhone *string             `db:"recipient_phone"`
	FileURL        *string             `db:"file_url"`
	IsSent         bool                `db:"is_sent"`
	SentAt         *time.Time          `db:"sent_at"`
	LastSendError  *string             `db:"last_send_error"`
	LeadID         *string             `db:"lead_id"`
	ProjectID      *string             `db:"project_id"`
	MitraID        *string             `db:"mitra_id"`
	Amount         decimal.NullDecimal `db:"amount"`
	CreatedAt      time.Time           `db:"created_at"`
	CreatedBy      string              `db:"created_by"`
}
