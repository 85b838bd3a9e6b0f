package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/velotrack/velotrack_backend/internal/apperrors"
	"github.com/velotrack/velotrack_backend/internal/core/domain"
	portsrepo "github.com/velotrack/velotrack_backend/internal/core/ports/repositories"
	portssvc "github.com/velotrack/velotrack_backend/internal/core/ports/services"
	"github.com/velotrack/velotrack_backend/internal/dto"
	"github.com/velotrack/velotrack_backend/internal/utils"
)

type financeService struct {
	BaseService
	financeRepo portsrepo.FinanceRepositoryFacade
	projectRepo portsrepo.ProjectReader
}

// NewFinanceService creates the income and expense ledger service.
func NewFinanceService(
	tx portsrepo.TransactionManager,
	financeRepo portsrepo.FinanceRepositoryFacade,
	projectRepo portsrepo.ProjectReader,
	auditRepo portsrepo.AuditRepositoryFacade,
	opts ...ServiceOption,
) portssvc.FinanceSvcFacade {
	return &financeService{
		BaseService: newBaseService(tx, auditRepo, opts),
		financeRepo: financeRepo,
		projectRepo: projectRepo,
	}
}

var _ portssvc.FinanceSvcFacade = (*financeService)(nil)

func (s *financeService) requireProject(ctx context.Context, projectID string) error {
	if _, err := s.projectRepo.FindProjectByID(ctx, projectID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("project " + projectID + " not found")
		}
		return fmt.Errorf("failed to load project %s: %w", projectID, err)
	}
	return nil
}

func (s *financeService) buildIncome(ctx context.Context, req dto.IncomeRequest) (domain.Income, error) {
	date, err := dto.ParseDate(req.Date, s.now().Location())
	if err != nil {
		return domain.Income{}, err
	}
	income := domain.Income{
		ProjectID:   req.ProjectID,
		Date:        date,
		Amount:      req.Amount,
		PaymentType: req.PaymentType,
		Note:        strings.TrimSpace(req.Note),
	}
	if err := income.Validate(); err != nil {
		return domain.Income{}, err
	}
	return income, s.requireProject(ctx, req.ProjectID)
}

func (s *financeService) buildExpense(ctx context.Context, req dto.ExpenseRequest) (domain.Expense, error) {
	date, err := dto.ParseDate(req.Date, s.now().Location())
	if err != nil {
		return domain.Expense{}, err
	}
	expense := domain.Expense{
		ProjectID: req.ProjectID,
		Date:      date,
		Amount:    req.Amount,
		Category:  strings.TrimSpace(req.Category),
		Note:      strings.TrimSpace(req.Note),
	}
	if expense.ProjectID != nil && *expense.ProjectID == "" {
		expense.ProjectID = nil
	}
	if err := expense.Validate(); err != nil {
		return domain.Expense{}, err
	}
	if expense.ProjectID != nil {
		return expense, s.requireProject(ctx, *expense.ProjectID)
	}
	return expense, nil
}

func (s *financeService) CreateIncome(ctx context.Context, actor domain.Actor, req dto.IncomeRequest) (*domain.Income, error) {
	if err := s.RequireOwner(actor); err != nil {
		return nil, err
	}
	income, err := s.buildIncome(ctx, req)
	if err != nil {
		return nil, err
	}
	income.IncomeID = uuid.NewString()
	income.AuditFields = domain.NewAuditFields(actor.UserID, s.now())

	err = s.TxManager.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.financeRepo.SaveIncome(ctx, income); err != nil {
			return err
		}
		details := fmt.Sprintf("%s %s for project %s", income.PaymentType, utils.FormatRupiah(income.Amount), income.ProjectID)
		return s.RecordAudit(ctx, domain.ActionIncomeCreated, domain.EntityIncome, income.IncomeID, details, actor.UserID)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create income")
		return nil, fmt.Errorf("failed to create income: %w", err)
	}
	s.LogInfo(ctx, "Income recorded", slog.String("income_id", income.IncomeID), slog.String("project_id", income.ProjectID))
	return &income, nil
}

func (s *financeService) UpdateIncome(ctx context.Context, actor domain.Actor, incomeID string, req dto.IncomeRequest) (*domain.Income, error) {
	if err := s.RequireOwner(actor); err != nil {
		return nil, err
	}
	existing, err := s.financeRepo.FindIncomeByID(ctx, incomeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("income " + incomeID + " not found")
		}
		return nil, fmt.Errorf("failed to load income %s: %w", incomeID, err)
	}
	income, err := s.buildIncome(ctx, req)
	if err != nil {
		return nil, err
	}
	income.IncomeID = incomeID
	income.AuditFields = existing.AuditFields
	income.Touch(actor.UserID, s.now())

	err = s.TxManager.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.financeRepo.UpdateIncome(ctx, income); err != nil {
			return err
		}
		details := fmt.Sprintf("%s -> %s", utils.FormatRupiah(existing.Amount), utils.FormatRupiah(income.Amount))
		return s.RecordAudit(ctx, domain.ActionIncomeUpdated, domain.EntityIncome, incomeID, details, actor.UserID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update income %s: %w", incomeID, err)
	}
	return &income, nil
}

func (s *financeService) DeleteIncome(ctx context.Context, actor domain.Actor, incomeID string) error {
	if err := s.RequireOwner(actor); err != nil {
		return err
	}
	existing, err := s.financeRepo.FindIncomeByID(ctx, incomeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("income " + incomeID + " not found")
		}
		return fmt.Errorf("failed to load income %s: %w", incomeID, err)
	}
	return s.TxManager.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.financeRepo.DeleteIncome(ctx, incomeID); err != nil {
			return err
		}
		details := fmt.Sprintf("%s for project %s deleted", utils.FormatRupiah(existing.Amount), existing.ProjectID)
		return s.RecordAudit(ctx, domain.ActionIncomeDeleted, domain.EntityIncome, incomeID, details, actor.UserID)
	})
}

func (s *financeService) ListIncomes(ctx context.Context, filter domain.FinanceFilter) ([]domain.Income, error) {
	filter.Limit = clampLimit(filter.Limit)
	filter.Offset = clampOffset(filter.Offset)
	incomes, err := s.financeRepo.ListIncomes(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list incomes: %w", err)
	}
	return incomes, nil
}

func (s *financeService) CreateExpense(ctx context.Context, actor domain.Actor, req dto.ExpenseRequest) (*domain.Expense, error) {
	if err := s.RequireOwner(actor); err != nil {
		return nil, err
	}
	expense, err := s.buildExpense(ctx, req)
	if err != nil {
		return nil, err
	}
	expense.ExpenseID = uuid.NewString()
	expense.AuditFields = domain.NewAuditFields(actor.UserID, s.now())

	err = s.TxManager.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.financeRepo.SaveExpense(ctx, expense); err != nil {
			return err
		}
		details := fmt.Sprintf("%s %s", expense.Category, utils.FormatRupiah(expense.Amount))
		return s.RecordAudit(ctx, domain.ActionExpenseCreated, domain.EntityExpense, expense.ExpenseID, details, actor.UserID)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create expense")
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}
	s.LogInfo(ctx, "Expense recorded", slog.String("expense_id", expense.ExpenseID))
	return &expense, nil
}

func (s *financeService) UpdateExpense(ctx context.Context, actor domain.Actor, expenseID string, req dto.ExpenseRequest) (*domain.Expense, error) {
	if err := s.RequireOwner(actor); err != nil {
		return nil, err
	}
	existing, err := s.financeRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("expense " + expenseID + " not found")
		}
		return nil, fmt.Errorf("failed to load expense %s: %w", expenseID, err)
	}
	expense, err := s.buildExpense(ctx, req)
	if err != nil {
		return nil, err
	}
	expense.ExpenseID = expenseID
	expense.AuditFields = existing.AuditFields
	expense.Touch(actor.UserID, s.now())

	err = s.TxManager.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.financeRepo.UpdateExpense(ctx, expense); err != nil {
			return err
		}
		details := fmt.Sprintf("%s -> %s", utils.FormatRupiah(existing.Amount), utils.FormatRupiah(expense.Amount))
		return s.RecordAudit(ctx, domain.ActionExpenseUpdated, domain.EntityExpense, expenseID, details, actor.UserID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update expense %s: %w", expenseID, err)
	}
	return &expense, nil
}

func (s *financeService) DeleteExpense(ctx context.Context, actor domain.Actor, expenseID string) error {
	if err := s.RequireOwner(actor); err != nil {
		return err
	}
	existing, err := s.financeRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("expense " + expenseID + " not found")
		}
		return fmt.Errorf("failed to load expense %s: %w", expenseID, err)
	}
	return s.TxManager.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.financeRepo.DeleteExpense(ctx, expenseID); err != nil {
			return err
		}
		details := fmt.Sprintf("%s %s deleted", existing.Category, utils.FormatRupiah(existing.Amount))
		return s.RecordAudit(ctx, domain.ActionExpenseDeleted, domain.EntityExpense, expenseID, details, actor.UserID)
	})
}

func (s *financeService) ListExpenses(ctx context.Context, filter domain.FinanceFilter) ([]domain.Expense, error) {
	filter.Limit = clampLimit(filter.Limit)
	filter.Offset = clampOffset(filter.Offset)
	expenses, err := s.financeRepo.ListExpenses(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return expenses, nil
}
