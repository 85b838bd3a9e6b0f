package services

import (
	"context"

	"github.com/velotrack/velotrack_backend/internal/core/domain"
	"github.com/velotrack/velotrack_backend/internal/dto"
)

// IncomeSvc manages project income.
type IncomeSvc interface {
	CreateIncome(ctx context.Context, actor domain.Actor, req dto.IncomeRequest) (*domain.Income, error)
	UpdateIncome(ctx context.Context, actor domain.Actor, incomeID string, req dto.IncomeRequest) (*domain.Income, error)
	DeleteIncome(ctx context.Context, actor domain.Actor, incomeID string) error
	ListIncomes(ctx context.Context, filter domain.FinanceFilter) ([]domain.Income, error)
}

// ExpenseSvc manages expenses.
type ExpenseSvc interface {
	CreateExpense(ctx context.Context, actor domain.Actor, req dto.ExpenseRequest) (*domain.Expense, error)
	UpdateExpense(ctx context.Context, actor domain.Actor, expenseID string, req dto.ExpenseRequest) (*domain.Expense, error)
	DeleteExpense(ctx context.Context, actor domain.Actor, expenseID string) error
	ListExpenses(ctx context.Context, filter domain.FinanceFilter) ([]domain.Expense, error)
}

// FinanceSvcFacade combines income and expense services.
type FinanceSvcFacade interface {
	IncomeSvc
	ExpenseSvc
}
