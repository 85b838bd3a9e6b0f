package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/velotrack/velotrack_backend/internal/core/domain"
)

// IncomeRequest creates or replaces an income record.
type IncomeRequest struct {
	ProjectID   string             `json:"projectID" binding:"required,uuid"`
	Date        string             `json:"date" binding:"required,datetime=2006-01-02"`
	Amount      decimal.Decimal    `json:"amount"`
	PaymentType domain.PaymentType `json:"paymentType" binding:"required,oneof=DP PELUNASAN TERMIN OTHER"`
	Note        string             `json:"note" binding:"max=1000"`
}

// ExpenseRequest creates or replaces an expense record.
type ExpenseRequest struct {
	ProjectID *string         `json:"projectID" binding:"omitempty,uuid"`
	Date      string          `json:"date" binding:"required,datetime=2006-01-02"`
	Amount    decimal.Decimal `json:"amount"`
	Category  string          `json:"category" binding:"required,max=100"`
	Note      string          `json:"note" binding:"max=1000"`
}

// ListFinanceParams filters income and expense listings.
type ListFinanceParams struct {
	ProjectID string `form:"projectID" binding:"omitempty,uuid"`
	From      string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To        string `form:"to" binding:"omitempty,datetime=2006-01-02"`
	PageParams
}

// ToFilter converts the query parameters to a domain filter, parsing dates in loc.
func (p ListFinanceParams) ToFilter(loc *time.Location) (domain.FinanceFilter, error) {
	f := domain.FinanceFilter{Limit: p.Limit, Offset: p.Offset}
	if p.ProjectID != "" {
		f.ProjectID = &p.ProjectID
	}
	from, err := ParseOptionalDate(p.From, loc)
	if err != nil {
		return f, err
	}
	to, err := ParseOptionalDate(p.To, loc)
	if err != nil {
		return f, err
	}
	f.From, f.To = from, to
	return f, nil
}

// ListIncomesResponse wraps the list of incomes.
type ListIncomesResponse struct {
	Incomes []domain.Income `json:"incomes"`
}

// ListExpensesResponse wraps the list of expenses.
type ListExpensesResponse struct {
	Expenses []domain.Expense `json:"expenses"`
}
