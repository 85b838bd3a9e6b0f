package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/velotrack/velotrack_backend/internal/apperrors"
	"github.com/velotrack/velotrack_backend/internal/core/domain"
	portsrepo "github.com/velotrack/velotrack_backend/internal/core/ports/repositories"
	"github.com/velotrack/velotrack_backend/internal/models"
	"github.com/velotrack/velotrack_backend/internal/utils/mapping"
)

type PgxFinanceRepository struct {
	BaseRepository
}

func newPgxFinanceRepository(pool *pgxpool.Pool) portsrepo.FinanceRepositoryFacade {
	return &PgxFinanceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.FinanceRepositoryFacade = (*PgxFinanceRepository)(nil)

const fullIncomeSelectQuery = `
SELECT
	i.income_id, i.project_id, p.name AS project_name, i.income_date, i.amount, i.payment_type, i.note,
	i.created_at, i.created_by, i.last_updated_at, i.last_updated_by
FROM incomes i
LEFT JOIN projects p ON p.project_id = i.project_id
`

const fullExpenseSelectQuery = `
SELECT
	e.expense_id, e.project_id, p.name AS project_name, e.expense_date, e.amount, e.category, e.note,
	e.created_at, e.created_by, e.last_updated_at, e.last_updated_by
FROM expenses e
LEFT JOIN projects p ON p.project_id = e.project_id
`

// financeWhere builds the shared project/date conditions for the given table alias and date column.
func financeWhere(filter domain.FinanceFilter, alias, dateColumn string) (string, []any) {
	var conditions []string
	var args []any
	if filter.ProjectID != nil {
		args = append(args, *filter.ProjectID)
		conditions = append(conditions, alias+".project_id = $"+strconv.Itoa(len(args)))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		conditions = append(conditions, alias+"."+dateColumn+" >= $"+strconv.Itoa(len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		conditions = append(conditions, alias+"."+dateColumn+" <= $"+strconv.Itoa(len(args)))
	}
	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}
	args = append(args, filter.Limit, filter.Offset)
	return where, args
}

func (r *PgxFinanceRepository) FindIncomeByID(ctx context.Context, incomeID string) (*domain.Income, error) {
	rows, err := r.conn(ctx).Query(ctx, fullIncomeSelectQuery+"WHERE i.income_id = $1;", incomeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query income %s: %w", incomeID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Income])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan income %s: %w", incomeID, err)
	}
	income := mapping.ToDomainIncome(m)
	return &income, nil
}

func (r *PgxFinanceRepository) ListIncomes(ctx context.Context, filter domain.FinanceFilter) ([]domain.Income, error) {
	where, args := financeWhere(filter, "i", "income_date")
	query := fullIncomeSelectQuery + where +
		fmt.Sprintf(" ORDER BY i.income_date DESC, i.created_at DESC LIMIT $%d OFFSET $%d;", len(args)-1, len(args))

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query incomes: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Income])
	if err != nil {
		return nil, fmt.Errorf("failed to collect income rows: %w", err)
	}
	return mapping.ToDomainIncomeSlice(ms), nil
}

func (r *PgxFinanceRepository) SaveIncome(ctx context.Context, income domain.Income) error {
	m := mapping.ToModelIncome(income)
	query := `
        INSERT INTO incomes (
            income_id, project_id, income_date, amount, payment_type, note,
            created_at, created_by, last_updated_at, last_updated_by
        )
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
    `
	_, err := r.conn(ctx).Exec(ctx, query,
		m.IncomeID, m.ProjectID, m.Date, m.Amount, m.PaymentType, m.Note,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save income: %w", err)
	}
	return nil
}

func (r *PgxFinanceRepository) UpdateIncome(ctx context.Context, income domain.Income) error {
	m := mapping.ToModelIncome(income)
	query := `
        UPDATE incomes
        SET project_id = $1, income_date = $2, amount = $3, payment_type = $4, note = $5,
            last_updated_at = $6, last_updated_by = $7
        WHERE income_id = $8;
    `
	cmdTag, err := r.conn(ctx).Exec(ctx, query,
		m.ProjectID, m.Date, m.Amount, m.PaymentType, m.Note, m.LastUpdatedAt, m.LastUpdatedBy, m.IncomeID,
	)
	if err != nil {
		return fmt.Errorf("failed to update income: %w", err)
	}
	return expectOneRow(cmdTag, "income", income.IncomeID)
}

func (r *PgxFinanceRepository) DeleteIncome(ctx context.Context, incomeID string) error {
	cmdTag, err := r.conn(ctx).Exec(ctx, "DELETE FROM incomes WHERE income_id = $1;", incomeID)
	if err != nil {
		return fmt.Errorf("failed to delete income: %w", err)
	}
	return expectOneRow(cmdTag, "income", incomeID)
}

func (r *PgxFinanceRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	rows, err := r.conn(ctx).Query(ctx, fullExpenseSelectQuery+"WHERE e.expense_id = $1;", expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query expense %s: %w", expenseID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Expense])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan expense %s: %w", expenseID, err)
	}
	expense := mapping.ToDomainExpense(m)
	return &expense, nil
}

func (r *PgxFinanceRepository) ListExpenses(ctx context.Context, filter domain.FinanceFilter) ([]domain.Expense, error) {
	where, args := financeWhere(filter, "e", "expense_date")
	query := fullExpenseSelectQuery + where +
		fmt.Sprintf(" ORDER BY e.expense_date DESC, e.created_at DESC LIMIT $%d OFFSET $%d;", len(args)-1, len(args))

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Expense])
	if err != nil {
		return nil, fmt.Errorf("failed to collect expense rows: %w", err)
	}
	return mapping.ToDomainExpenseSlice(ms), nil
}

func (r *PgxFinanceRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	m := mapping.ToModelExpense(expense)
	query := `
        INSERT INTO expenses (
            expense_id, project_id, expense_date, amount, category, note,
            created_at, created_by, last_updated_at, last_updated_by
        )
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
    `
	_, err := r.conn(ctx).Exec(ctx, query,
		m.ExpenseID, m.ProjectID, m.Date, m.Amount, m.Category, m.Note,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save expense: %w", err)
	}
	return nil
}

func (r *PgxFinanceRepository) UpdateExpense(ctx context.Context, expense domain.Expense) error {
	m := mapping.ToModelExpense(expense)
	query := `
        UPDATE expenses
        SET project_id = $1, expense_date = $2, amount = $3, category = $4, note = $5,
            last_updated_at = $6, last_updated_by = $7
        WHERE expense_id = $8;
    `
	cmdTag, err := r.conn(ctx).Exec(ctx, query,
		m.ProjectID, m.Date, m.Amount, m.Category, m.Note, m.LastUpdatedAt, m.LastUpdatedBy, m.ExpenseID,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	return expectOneRow(cmdTag, "expense", expense.ExpenseID)
}

func (r *PgxFinanceRepository) DeleteExpense(ctx context.Context, expenseID string) error {
	cmdTag, err := r.conn(ctx).Exec(ctx, "DELETE FROM expenses WHERE expense_id = $1;", expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return expectOneRow(cmdTag, "expense", expenseID)
}
