package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/velotrack/velotrack_backend/internal/core/domain"
	portsrepo "github.com/velotrack/velotrack_backend/internal/core/ports/repositories"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// CountLeadsByStatus counts leads grouped by stored status
func (r *reportingRepository) CountLeadsByStatus(ctx context.Context, mitraID *string) (map[domain.LeadStatus]int, error) {
	query := `
		SELECT status, COUNT(*)
		FROM leads
		WHERE ($1::text IS NULL OR mitra_id = $1)
		GROUP BY status
	`
	rows, err := r.conn(ctx).Query(ctx, query, mitraID)
	if err != nil {
		return nil, fmt.Errorf("error querying lead counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.LeadStatus]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("error scanning lead count row: %w", err)
		}
		counts[domain.LeadStatus(status)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lead count rows: %w", err)
	}
	return counts, nil
}

// CountProjectsByDisplayStatus counts projects grouped by derived status
func (r *reportingRepository) CountProjectsByDisplayStatus(ctx context.Context, scopeUserID *string, today time.Time) (map[domain.ProjectStatus]int, error) {
	query := fmt.Sprintf(`
		SELECT %s AS display_status, COUNT(*)
		FROM projects p
		WHERE ($2::text IS NULL OR %s)
		GROUP BY display_status
	`, fmt.Sprintf(displayStatusExpr, "$1"), fmt.Sprintf(partnerScopeExpr, "$2"))

	rows, err := r.conn(ctx).Query(ctx, query, domain.StartOfDay(today), scopeUserID)
	if err != nil {
		return nil, fmt.Errorf("error querying project counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.ProjectStatus]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("error scanning project count row: %w", err)
		}
		counts[domain.ProjectStatus(status)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project count rows: %w", err)
	}
	return counts, nil
}

// SumFinance totals incomes and expenses dated within the period
func (r *reportingRepository) SumFinance(ctx context.Context, from, to time.Time) (portsrepo.FinanceTotals, error) {
	query := `
		SELECT
			(SELECT COALESCE(SUM(amount), 0) FROM incomes WHERE income_date BETWEEN $1 AND $2),
			(SELECT COUNT(*) FROM incomes WHERE income_date BETWEEN $1 AND $2),
			(SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE expense_date BETWEEN $1 AND $2),
			(SELECT COUNT(*) FROM expenses WHERE expense_date BETWEEN $1 AND $2)
	`
	var totals portsrepo.FinanceTotals
	err := r.conn(ctx).QueryRow(ctx, query, from, to).Scan(
		&totals.Income,
		&totals.IncomeCount,
		&totals.Expense,
		&totals.ExpenseCount,
	)
	if err != nil {
		return portsrepo.FinanceTotals{}, fmt.Errorf("error querying finance totals: %w", err)
	}
	return totals, nil
}

// ListProjectFinanceTotals sums income and expense per project
func (r *reportingRepository) ListProjectFinanceTotals(ctx context.Context, projectID *string) ([]domain.ProjectFinanceTotals, error) {
	query := `
		SELECT
			p.project_id,
			p.name,
			p.client_name,
			COALESCE(i.total, 0) AS income,
			COALESCE(e.total, 0) AS expense
		FROM projects p
		LEFT JOIN (SELECT project_id, SUM(amount) AS total FROM incomes GROUP BY project_id) i
			ON i.project_id = p.project_id
		LEFT JOIN (SELECT project_id, SUM(amount) AS total FROM expenses WHERE project_id IS NOT NULL GROUP BY project_id) e
			ON e.project_id = p.project_id
		WHERE ($1::text IS NULL OR p.project_id = $1)
		ORDER BY p.created_at DESC, p.project_id
	`
	rows, err := r.conn(ctx).Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("error querying project finance totals: %w", err)
	}
	defer rows.Close()

	result := []domain.ProjectFinanceTotals{}
	for rows.Next() {
		var row domain.ProjectFinanceTotals
		if err := rows.Scan(&row.ProjectID, &row.ProjectName, &row.ClientName, &row.Income, &row.Expense); err != nil {
			return nil, fmt.Errorf("error scanning project finance row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project finance rows: %w", err)
	}
	return result, nil
}

// MonthlyTotals returns income and expense per month of the year
func (r *reportingRepository) MonthlyTotals(ctx context.Context, year int) ([]domain.MonthlyFinance, error) {
	query := `
		SELECT month, SUM(income), SUM(expense)
		FROM (
			SELECT EXTRACT(MONTH FROM income_date)::int AS month, amount AS income, 0::numeric AS expense
			FROM incomes WHERE EXTRACT(YEAR FROM income_date) = $1
			UNION ALL
			SELECT EXTRACT(MONTH FROM expense_date)::int, 0::numeric, amount
			FROM expenses WHERE EXTRACT(YEAR FROM expense_date) = $1
		) t
		GROUP BY month
		ORDER BY month
	`
	rows, err := r.conn(ctx).Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("error querying monthly totals: %w", err)
	}
	defer rows.Close()

	var result []domain.MonthlyFinance
	for rows.Next() {
		var month int
		var income, expense decimal.Decimal
		if err := rows.Scan(&month, &income, &expense); err != nil {
			return nil, fmt.Errorf("error scanning monthly row: %w", err)
		}
		result = append(result, domain.MonthlyFinance{
			Month:   time.Month(month),
			Income:  income,
			Expense: expense,
			Profit:  income.Sub(expense),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating monthly rows: %w", err)
	}
	return result, nil
}

// ListTransactions flattens incomes and expenses of the period for export
func (r *reportingRepository) ListTransactions(ctx context.Context, from, to time.Time) ([]domain.TransactionRow, error) {
	query := `
		SELECT i.income_date AS tx_date, 'INCOME' AS kind, COALESCE(p.name, ''), i.payment_type AS category,
			i.amount, COALESCE(i.note, ''), i.created_at
		FROM incomes i
		LEFT JOIN projects p ON p.project_id = i.project_id
		WHERE i.income_date BETWEEN $1 AND $2
		UNION ALL
		SELECT e.expense_date, 'EXPENSE', COALESCE(p.name, ''), e.category,
			e.amount, COALESCE(e.note, ''), e.created_at
		FROM expenses e
		LEFT JOIN projects p ON p.project_id = e.project_id
		WHERE e.expense_date BETWEEN $1 AND $2
		ORDER BY tx_date, created_at
	`
	rows, err := r.conn(ctx).Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying transactions: %w", err)
	}
	defer rows.Close()

	result := []domain.TransactionRow{}
	for rows.Next() {
		var row domain.TransactionRow
		var kind string
		var createdAt time.Time
		if err := rows.Scan(&row.Date, &kind, &row.ProjectName, &row.Category, &row.Amount, &row.Note, &createdAt); err != nil {
			return nil, fmt.Errorf("error scanning transaction row: %w", err)
		}
		row.Kind = domain.TransactionKind(kind)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return result, nil
}
