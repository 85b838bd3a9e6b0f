package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settings is the single company profile printed on generated documents.
type Settings struct {
	CompanyName       string          `json:"companyName"`
	Address           string          `json:"address"`
	Email             string          `json:"email"`
	Phone             string          `json:"phone"`
	BankName          string          `json:"bankName"`
	BankAccountNumber string          `json:"bankAccountNumber"`
	BankAccountHolder string          `json:"bankAccountHolder"`
	SignerName        string          `json:"signerName"`
	DPPercentage      decimal.Decimal `json:"dpPercentage"`
	UpdatedAt         time.Time       `json:"updatedAt"`
	UpdatedBy         string          `json:"updatedBy"`
}
