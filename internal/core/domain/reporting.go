package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ComputeProfit returns profit = income - expense and margin = profit / income * 100.
// Margin is zero when there is no income.
func ComputeProfit(income, expense decimal.Decimal) (profit decimal.Decimal, margin decimal.Decimal) {
	profit = income.Sub(expense)
	if income.IsZero() {
		return profit, decimal.Zero
	}
	return profit, profit.Mul(hundred).Div(income)
}

// ProjectProfit is the finance summary of a single project.
type ProjectProfit struct {
	ProjectID   string          `json:"projectID"`
	ProjectName string          `json:"projectName"`
	ClientName  string          `json:"clientName"`
	Income      decimal.Decimal `json:"income"`
	Expense     decimal.Decimal `json:"expense"`
	Profit      decimal.Decimal `json:"profit"`
	Margin      decimal.Decimal `json:"margin"` // percent
}

// NewProjectProfit fills profit and margin from income and expense totals.
func NewProjectProfit(projectID, name, client string, income, expense decimal.Decimal) ProjectProfit {
	profit, margin := ComputeProfit(income, expense)
	return ProjectProfit{
		ProjectID:   projectID,
		ProjectName: name,
		ClientName:  client,
		Income:      income,
		Expense:     expense,
		Profit:      profit,
		Margin:      margin,
	}
}

// ProjectFinanceTotals is the raw aggregate the repository returns per project.
type ProjectFinanceTotals struct {
	ProjectID   string
	ProjectName string
	ClientName  string
	Income      decimal.Decimal
	Expense     decimal.Decimal
}

// DashboardSummary counts leads and projects by status.
type DashboardSummary struct {
	LeadCounts    map[LeadStatus]int    `json:"leadCounts"`
	ProjectCounts map[ProjectStatus]int `json:"projectCounts"`
	TotalLeads    int                   `json:"totalLeads"`
	TotalProjects int                   `json:"totalProjects"`
}

// FinanceSummary aggregates income and expense over a period.
type FinanceSummary struct {
	From         time.Time       `json:"from"`
	To           time.Time       `json:"to"`
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	NetProfit    decimal.Decimal `json:"netProfit"`
	Margin       decimal.Decimal `json:"margin"`
	IncomeCount  int             `json:"incomeCount"`
	ExpenseCount int             `json:"expenseCount"`
}

// MonthlyFinance is one bucket of the yearly chart.
type MonthlyFinance struct {
	Month   time.Month      `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Profit  decimal.Decimal `json:"profit"`
}

// TransactionKind distinguishes rows in the transaction export.
type TransactionKind string

const (
	KindIncome  TransactionKind = "INCOME"
	KindExpense TransactionKind = "EXPENSE"
)

// TransactionRow is a flattened income or expense used for CSV export.
type TransactionRow struct {
	Date        time.Time
	Kind        TransactionKind
	ProjectName string
	Category    string
	Amount      decimal.Decimal
	Note        string
}
