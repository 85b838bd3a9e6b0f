package dto

import "github.com/shopspring/decimal"

// UpdateSettingsRequest replaces the company profile.
type UpdateSettingsRequest struct {
	CompanyName       string          `json:"companyName" binding:"required,max=200"`
	Address           string          `json:"address"`
	Email             string          `json:"email" binding:"omitempty,email"`
	Phone             string          `json:"phone" binding:"omitempty,phone"`
	BankName          string          `json:"bankName"`
	BankAccountNumber string          `json:"bankAccountNumber" binding:"omitempty,numeric"`
	BankAccountHolder string          `json:"bankAccountHolder"`
	SignerName        string          `json:"signerName"`
	DPPercentage      decimal.Decimal `json:"dpPercentage"`
}
