package mapping

import (
	"github.com/velotrack/velotrack_backend/internal/core/domain"
	"github.com/velotrack/velotrack_backend/internal/models"
)

// ToModelIncome converts a domain Income to a model Income
func ToModelIncome(d domain.Income) models.Income {
	return models.Income{
		IncomeID:    d.IncomeID,
		ProjectID:   d.ProjectID,
		Date:        d.Date,
		Amount:      d.Amount,
		PaymentType: string(d.PaymentType),
		Note:        nullable(d.Note),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainIncome converts a model Income to a domain Income
func ToDomainIncome(m models.Income) domain.Income {
	return domain.Income{
		IncomeID:    m.IncomeID,
		ProjectID:   m.ProjectID,
		ProjectName: deref(m.ProjectName),
		Date:        m.Date,
		Amount:      m.Amount,
		PaymentType: domain.PaymentType(m.PaymentType),
		Note:        deref(m.Note),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainIncomeSlice converts a slice of model Incomes to domain Incomes
func ToDomainIncomeSlice(ms []models.Income) []domain.Income {
	ds := make([]domain.Income, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainIncome(m)
	}
	return ds
}

// ToModelExpense converts a domain Expense to a model Expense
func ToModelExpense(d domain.Expense) models.Expense {
	return models.Expense{
		ExpenseID:   d.ExpenseID,
		ProjectID:   d.ProjectID,
		Date:        d.Date,
		Amount:      d.Amount,
		Category:    d.Category,
		Note:        nullable(d.Note),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainExpense converts a model Expense to a domain Expense
func ToDomainExpense(m models.Expense) domain.Expense {
	return domain.Expense{
		ExpenseID:   m.ExpenseID,
		ProjectID:   m.ProjectID,
		ProjectName: deref(m.ProjectName),
		Date:        m.Date,
		Amount:      m.Amount,
		Category:    m.Category,
		Note:        deref(m.Note),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainExpenseSlice converts a slice of model Expenses to domain Expenses
func ToDomainExpenseSlice(ms []models.Expense) []domain.Expense {
	ds := make([]domain.Expense, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainExpense(m)
	}
	return ds
}
