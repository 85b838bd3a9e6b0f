package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Income is a row of the incomes table.
type Income struct {
	IncomeID    string          `db:"income_id"`
	ProjectID   string          `db:"project_id"`
	ProjectName *string         `db:"project_name"` // joined
	Date        time.Time       `db:"income_date"`
	Amount      decimal.Decimal `db:"amount"`
	PaymentType string          `db:"payment_type"`
	Note        *string         `db:"note"`
	AuditFields
}

// Expense is a row of the expenses table.
type Expense struct {
	ExpenseID   string          `db:"expense_id"`
	ProjectID   *string         `db:"project_id"` // Nullable, general overhead when null
	ProjectName *string         `db:"project_name"`
	Date        time.Time       `db:"expense_date"`
	Amount      decimal.Decimal `db:"amount"`
	Category    string          `db:"category"`
	Note        *string         `db:"note"`
	AuditFields
}
