package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"github.com/velotrack/velotrack_backend/internal/apperrors"
	"github.com/velotrack/velotrack_backend/internal/core/domain"
	portsrepo "github.com/velotrack/velotrack_backend/internal/core/ports/repositories"
	portssvc "github.com/velotrack/velotrack_backend/internal/core/ports/services"
	"github.com/velotrack/velotrack_backend/internal/dto"
)

// reportingService implements the ReportingSvcFacade interface
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	projectRepo   portsrepo.ProjectReader
}

// NewReportingService creates a new reporting service
func NewReportingService(repo portsrepo.ReportingRepository, projectRepo portsrepo.ProjectReader, opts ...ServiceOption) portssvc.ReportingSvcFacade {
	return &reportingService{
		BaseService:   newBaseService(nil, nil, opts),
		reportingRepo: repo,
		projectRepo:   projectRepo,
	}
}

// Ensure reportingService implements the ReportingSvcFacade interface
var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// GetDashboard counts leads and projects by status. Partners only see their own scope.
func (s *reportingService) GetDashboard(ctx context.Context, actor domain.Actor) (*domain.DashboardSummary, error) {
	var scope *string
	if !actor.IsOwner() {
		scope = &actor.UserID
	}

	leadCounts, err := s.reportingRepo.CountLeadsByStatus(ctx, scope)
	if err != nil {
		s.LogError(ctx, err, "Failed to count leads", slog.String("user_id", actor.UserID))
		return nil, fmt.Errorf("failed to count leads: %w", err)
	}
	projectCounts, err := s.reportingRepo.CountProjectsByDisplayStatus(ctx, scope, domain.StartOfDay(s.now()))
	if err != nil {
		s.LogError(ctx, err, "Failed to count projects", slog.String("user_id", actor.UserID))
		return nil, fmt.Errorf("failed to count projects: %w", err)
	}

	summary := &domain.DashboardSummary{
		LeadCounts:    map[domain.LeadStatus]int{domain.LeadPending: 0, domain.LeadDeal: 0, domain.LeadCancel: 0},
		ProjectCounts: map[domain.ProjectStatus]int{domain.ProjectTodo: 0, domain.ProjectOnProgress: 0, domain.ProjectDone: 0, domain.ProjectOverdue: 0},
	}
	for status, n := range leadCounts {
		summary.LeadCounts[status] = n
		summary.TotalLeads += n
	}
	for status, n := range projectCounts {
		summary.ProjectCounts[status] = n
		summary.TotalProjects += n
	}
	return summary, nil
}

// GetFinanceSummary totals incomes and expenses dated within [from, to].
func (s *reportingService) GetFinanceSummary(ctx context.Context, from, to time.Time) (*domain.FinanceSummary, error) {
	if to.Before(from) {
		return nil, apperrors.NewValidationFailedError("'to' must not be before 'from'")
	}

	totals, err := s.reportingRepo.SumFinance(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve finance totals",
			slog.String("from", from.Format(time.RFC3339)),
			slog.String("to", to.Format(time.RFC3339)))
		return nil, fmt.Errorf("failed to retrieve finance totals: %w", err)
	}

	profit, margin := domain.ComputeProfit(totals.Income, totals.Expense)
	summary := &domain.FinanceSummary{
		From:         from,
		To:           to,
		TotalIncome:  totals.Income,
		TotalExpense: totals.Expense,
		NetProfit:    profit,
		Margin:       margin.Round(2),
		IncomeCount:  totals.IncomeCount,
		ExpenseCount: totals.ExpenseCount,
	}

	s.LogInfo(ctx, "Finance summary generated successfully",
		slog.String("from", from.Format(time.RFC3339)),
		slog.String("to", to.Format(time.RFC3339)),
		slog.Int("incomes", totals.IncomeCount),
		slog.Int("expenses", totals.ExpenseCount))
	return summary, nil
}

// GetProjectProfits returns income, expense, profit and margin for every project.
func (s *reportingService) GetProjectProfits(ctx context.Context) ([]domain.ProjectProfit, error) {
	totals, err := s.reportingRepo.ListProjectFinanceTotals(ctx, nil)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve project finance totals")
		return nil, fmt.Errorf("failed to retrieve project finance totals: %w", err)
	}

	profits := make([]domain.ProjectProfit, len(totals))
	for i, t := range totals {
		profits[i] = toProjectProfit(t)
	}
	return profits, nil
}

// GetProjectProfit returns the finance summary of one project. A project without records reports zeros.
func (s *reportingService) GetProjectProfit(ctx context.Context, projectID string) (domain.ProjectProfit, error) {
	p, err := s.projectRepo.FindProjectByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.ProjectProfit{}, apperrors.NewNotFoundError("project " + projectID + " not found")
		}
		return domain.ProjectProfit{}, fmt.Errorf("failed to load project %s: %w", projectID, err)
	}

	totals, err := s.reportingRepo.ListProjectFinanceTotals(ctx, &projectID)
	if err != nil {
		return domain.ProjectProfit{}, fmt.Errorf("failed to retrieve finance of project %s: %w", projectID, err)
	}
	if len(totals) == 0 {
		return domain.NewProjectProfit(p.ProjectID, p.Name, p.ClientName, decimal.Zero, decimal.Zero), nil
	}
	return toProjectProfit(totals[0]), nil
}

// GetMonthlyFinance returns twelve buckets for year, zero-filled where nothing was recorded.
func (s *reportingService) GetMonthlyFinance(ctx context.Context, year int) ([]domain.MonthlyFinance, error) {
	if year < 2000 || year > 9999 {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("invalid year %d", year))
	}

	rows, err := s.reportingRepo.MonthlyTotals(ctx, year)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve monthly totals", slog.Int("year", year))
		return nil, fmt.Errorf("failed to retrieve monthly totals: %w", err)
	}

	months := make([]domain.MonthlyFinance, 12)
	for i := range months {
		months[i] = domain.MonthlyFinance{Month: time.Month(i + 1), Income: decimal.Zero, Expense: decimal.Zero, Profit: decimal.Zero}
	}
	for _, r := range rows {
		if r.Month < time.January || r.Month > time.December {
			continue
		}
		m := &months[r.Month-1]
		m.Income = m.Income.Add(r.Income)
		m.Expense = m.Expense.Add(r.Expense)
		m.Profit = m.Income.Sub(m.Expense)
	}
	return months, nil
}

var transactionCSVHeader = []string{"date", "type", "project", "category", "amount", "note"}

// ExportTransactionsCSV writes incomes and expenses within [from, to] as CSV.
func (s *reportingService) ExportTransactionsCSV(ctx context.Context, w io.Writer, from, to time.Time) error {
	if to.Before(from) {
		return apperrors.NewValidationFailedError("'to' must not be before 'from'")
	}
	rows, err := s.reportingRepo.ListTransactions(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve transactions for export")
		return fmt.Errorf("failed to retrieve transactions: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(transactionCSVHeader); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			r.Date.Format(dto.DateLayout),
			string(r.Kind),
			r.ProjectName,
			r.Category,
			r.Amount.StringFixed(2),
			r.Note,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to write transactions csv: %w", err)
	}

	s.LogInfo(ctx, "Transactions exported", slog.Int("row_count", len(rows)))
	return nil
}

var profitCSVHeader = []string{"project_id", "project", "client", "income", "expense", "profit", "margin_percent"}

// ExportProjectProfitCSV writes one row per project with its profit and margin.
func (s *reportingService) ExportProjectProfitCSV(ctx context.Context, w io.Writer) error {
	profits, err := s.GetProjectProfits(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(profitCSVHeader); err != nil {
		return err
	}
	for _, p := range profits {
		record := []string{
			p.ProjectID,
			p.ProjectName,
			p.ClientName,
			p.Income.StringFixed(2),
			p.Expense.StringFixed(2),
			p.Profit.StringFixed(2),
			p.Margin.StringFixed(2),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to write profit csv: %w", err)
	}

	s.LogInfo(ctx, "Project profit exported", slog.Int("row_count", len(profits)))
	return nil
}

func toProjectProfit(t domain.ProjectFinanceTotals) domain.ProjectProfit {
	p := domain.NewProjectProfit(t.ProjectID, t.ProjectName, t.ClientName, t.Income, t.Expense)
	p.Margin = p.Margin.Round(2)
	return p
}
