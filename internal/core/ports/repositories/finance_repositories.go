package repositories

import (
	"context"

	"github.com/velotrack/velotrack_backend/internal/core/domain"
)

// IncomeRepository defines persistence for project income.
type IncomeRepository interface {
	FindIncomeByID(ctx context.Context, incomeID string) (*domain.Income, error)
	ListIncomes(ctx context.Context, filter domain.FinanceFilter) ([]domain.Income, error)
	SaveIncome(ctx context.Context, income domain.Income) error
	UpdateIncome(ctx context.Context, income domain.Income) error
	DeleteIncome(ctx context.Context, incomeID string) error
}

// ExpenseRepository defines persistence for expenses.
type ExpenseRepository interface {
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)
	ListExpenses(ctx context.Context, filter domain.FinanceFilter) ([]domain.Expense, error)
	SaveExpense(ctx context.Context, expense domain.Expense) error
	UpdateExpense(ctx context.Context, expense domain.Expense) error
	DeleteExpense(ctx context.Context, expenseID string) error
}

// FinanceRepositoryFacade combines income and expense persistence.
type FinanceRepositoryFacade interface {
	IncomeRepository
	ExpenseRepository
}
