package dto

import (
	"time"

	"github.com/velotrack/velotrack_backend/internal/apperrors"
	"github.com/velotrack/velotrack_backend/internal/core/domain"
)

// ReportRangeParams selects a reporting period. Both ends are inclusive dates.
type ReportRangeParams struct {
	From string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To   string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

// Resolve returns the inclusive period. A missing From defaults to January 1st of now's year
// and a missing To to now's date.
func (p ReportRangeParams) Resolve(now time.Time) (from, to time.Time, err error) {
	loc := now.Location()
	from = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, loc)
	to = domain.StartOfDay(now)
	if p.From != "" {
		if from, err = ParseDate(p.From, loc); err != nil {
			return
		}
	}
	if p.To != "" {
		if to, err = ParseDate(p.To, loc); err != nil {
			return
		}
	}
	if to.Before(from) {
		err = apperrors.NewValidationFailedError("'from' must not be after 'to'")
	}
	return
}

// MonthlyReportParams selects the year of the monthly chart.
type MonthlyReportParams struct {
	Year int `form:"year" binding:"omitempty,min=2000,max=2100"`
}

// ProjectProfitResponse wraps per-project profit rows.
type ProjectProfitResponse struct {
	Projects []domain.ProjectProfit `json:"projects"`
}

// MonthlyReportResponse is the yearly chart series.
type MonthlyReportResponse struct {
	Year   int                     `json:"year"`
	Months []domain.MonthlyFinance `json:"months"`
}
