package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settings is the single row of the settings table.
type Settings struct {
	SettingsID        int             `db:"settings_id"`
	CompanyName       string          `db:"company_name"`
	Address           string          `db:"address"`
	Email             string          `db:"email"`
	Phone             string          `db:"phone"`
	BankName          string          `db:"bank_name"`
	BankAccountNumber string          `db:"bank_account_number"`
	BankAccountHolder string          `db:"bank_account_holder"`
	SignerName        string          `db:"signer_name"`
	DPPercentage      decimal.Decimal `db:"dp_percentage"`
	UpdatedAt         time.Time       `db:"updated_at"`
	UpdatedBy         *string         `db:"updated_by"`
}
