package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/velotrack/velotrack_backend/internal/apperrors"
)

// PaymentType classifies incoming payments.
type PaymentType string

const (
	PaymentDP        PaymentType = "DP"        // down payment
	PaymentPelunasan PaymentType = "PELUNASAN" // final settlement
	PaymentTermin    PaymentType = "TERMIN"    // instalment
	PaymentOther     PaymentType = "OTHER"
)

// IsValid reports whether t is a known payment type.
func (t PaymentType) IsValid() bool {
	switch t {
	case PaymentDP, PaymentPelunasan, PaymentTermin, PaymentOther:
		return true
	}
	return false
}

// Income is money received for a project.
type Income struct {
	IncomeID    string          `json:"incomeID"`
	ProjectID   string          `json:"projectID"`
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentType PaymentType     `json:"paymentType"`
	Note        string          `json:"note"`
	ProjectName string          `json:"projectName,omitempty"` // populated on reads
	AuditFields
}

// Validate checks the income invariants.
func (i Income) Validate() error {
	if i.ProjectID == "" {
		return apperrors.NewValidationFailedError("income requires a project")
	}
	if i.Date.IsZero() {
		return apperrors.NewValidationFailedError("income date is required")
	}
	if !i.Amount.IsPositive() {
		return apperrors.NewValidationFailedError("amount must be greater than zero")
	}
	if !i.PaymentType.IsValid() {
		return apperrors.NewValidationFailedError("invalid payment type " + string(i.PaymentType))
	}
	return nil
}

// Expense is money spent, optionally for a project. A nil ProjectID is general overhead.
type Expense struct {
	ExpenseID   string          `json:"expenseID"`
	ProjectID   *string         `json:"projectID,omitempty"`
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Note        string          `json:"note"`
	ProjectName string          `json:"projectName,omitempty"`
	AuditFields
}

// Validate checks the expense invariants.
func (e Expense) Validate() error {
	if e.Date.IsZero() {
		return apperrors.NewValidationFailedError("expense date is required")
	}
	if !e.Amount.IsPositive() {
		return apperrors.NewValidationFailedError("amount must be greater than zero")
	}
	if e.Category == "" {
		return apperrors.NewValidationFailedError("expense category is required")
	}
	return nil
}

// FinanceFilter narrows income and expense listings.
type FinanceFilter struct {
	ProjectID *string
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}
