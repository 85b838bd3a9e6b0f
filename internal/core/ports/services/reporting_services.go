package services

import (
	"context"
	"io"
	"time"

	"github.com/velotrack/velotrack_backend/internal/core/domain"
)

// ReportingSvcFacade defines dashboards, profit reports and CSV exports.
type ReportingSvcFacade interface {
	// GetDashboard counts leads and projects by status within the actor's scope.
	GetDashboard(ctx context.Context, actor domain.Actor) (*domain.DashboardSummary, error)
	GetFinanceSummary(ctx context.Context, from, to time.Time) (*domain.FinanceSummary, error)
	GetProjectProfits(ctx context.Context) ([]domain.ProjectProfit, error)
	GetProjectProfit(ctx context.Context, projectID string) (domain.ProjectProfit, error)
	GetMonthlyFinance(ctx context.Context, year int) ([]domain.MonthlyFinance, error)
	ExportTransactionsCSV(ctx context.Context, w io.Writer, from, to time.Time) error
	ExportProjectProfitCSV(ctx context.Context, w io.Writer) error
}
