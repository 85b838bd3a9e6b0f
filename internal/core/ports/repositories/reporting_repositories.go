package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/velotrack/velotrack_backend/internal/core/domain"
)

// FinanceTotals is the raw aggregate over a period.
type FinanceTotals struct {
	Income       decimal.Decimal
	Expense      decimal.Decimal
	IncomeCount  int
	ExpenseCount int
}

// ReportingRepository defines the aggregate queries behind dashboards and exports.
type ReportingRepository interface {
	// CountLeadsByStatus counts leads per status. A non-nil mitraID limits the count to that partner's leads.
	CountLeadsByStatus(ctx context.Context, mitraID *string) (map[domain.LeadStatus]int, error)

	// CountProjectsByDisplayStatus counts projects per derived status as of today.
	// A non-nil scopeUserID limits the count to projects visible to that partner.
	CountProjectsByDisplayStatus(ctx context.Context, scopeUserID *string, today time.Time) (map[domain.ProjectStatus]int, error)

	// SumFinance totals incomes and expenses dated within [from, to].
	SumFinance(ctx context.Context, from, to time.Time) (FinanceTotals, error)

	// ListProjectFinanceTotals sums income and expense per project. A non-nil projectID returns a single row.
	ListProjectFinanceTotals(ctx context.Context, projectID *string) ([]domain.ProjectFinanceTotals, error)

	// MonthlyTotals returns income and expense per calendar month of year. Months without data are omitted.
	MonthlyTotals(ctx context.Context, year int) ([]domain.MonthlyFinance, error)

	// ListTransactions returns incomes and expenses within [from, to] ordered by date.
	ListTransactions(ctx context.Context, from, to time.Time) ([]domain.TransactionRow, error)
}
