package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	portssvc "github.com/velotrack/velotrack_backend/internal/core/ports/services"
	"github.com/velotrack/velotrack_backend/internal/dto"
	"github.com/velotrack/velotrack_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

const csvContentType = "text/csv; charset=utf-8"

// reportingHandler handles dashboards, profit reports and CSV exports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
	now              func() time.Time
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
		now:              func() time.Time { return time.Now().In(dateLocation) },
	}
}

// registerReportingRoutes registers report routes. Only the dashboard is visible to partners.
func registerReportingRoutes(rg *gin.RouterGroup, rs portssvc.ReportingSvcFacade) {
	h := newReportingHandler(rs)

	reports := rg.Group("/reports")
	{
		reports.GET("/dashboard", h.getDashboard)

		owner := reports.Group("", middleware.OwnerOnly())
		owner.GET("/finance", h.getFinanceSummary)
		owner.GET("/projects/profit", h.getProjectProfits)
		owner.GET("/projects/:id/profit", h.getProjectProfit)
		owner.GET("/monthly", h.getMonthly)
		owner.GET("/export/transactions.csv", h.exportTransactions)
		owner.GET("/export/profit.csv", h.exportProjectProfit)
	}
}

// getDashboard godoc
// @Summary Dashboard counts
// @Description Counts leads by status and projects by displayed status. Partners see only their own.
// @Tags reports
// @Produce json
// @Success 200 {object} domain.DashboardSummary
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /reports/dashboard [get]
func (h *reportingHandler) getDashboard(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	summary, err := h.reportingService.GetDashboard(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err, "Failed to build dashboard")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// getFinanceSummary godoc
// @Summary Finance summary
// @Description Totals income and expense within an inclusive period. Defaults to the current year up to today.
// @Tags reports
// @Produce json
// @Param from query string false "yyyy-mm-dd"
// @Param to query string false "yyyy-mm-dd"
// @Success 200 {object} domain.FinanceSummary
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /reports/finance [get]
func (h *reportingHandler) getFinanceSummary(c *gin.Context) {
	from, to, ok := h.bindRange(c)
	if !ok {
		return
	}
	summary, err := h.reportingService.GetFinanceSummary(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, err, "Failed to build finance summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// getProjectProfits godoc
// @Summary Profit per project
// @Tags reports
// @Produce json
// @Success 200 {object} dto.ProjectProfitResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /reports/projects/profit [get]
func (h *reportingHandler) getProjectProfits(c *gin.Context) {
	profits, err := h.reportingService.GetProjectProfits(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to build project profit report")
		return
	}
	c.JSON(http.StatusOK, dto.ProjectProfitResponse{Projects: profits})
}

// getProjectProfit godoc
// @Summary Profit of one project
// @Tags reports
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} domain.ProjectProfit
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /reports/projects/{id}/profit [get]
func (h *reportingHandler) getProjectProfit(c *gin.Context) {
	profit, err := h.reportingService.GetProjectProfit(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to build project profit")
		return
	}
	c.JSON(http.StatusOK, profit)
}

// getMonthly godoc
// @Summary Monthly income and expense
// @Description Returns twelve months of totals for the year, current year by default.
// @Tags reports
// @Produce json
// @Param year query int false "Year"
// @Success 200 {object} dto.MonthlyReportResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /reports/monthly [get]
func (h *reportingHandler) getMonthly(c *gin.Context) {
	var params dto.MonthlyReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "query parameters")
		return
	}
	year := params.Year
	if year == 0 {
		year = h.now().Year()
	}

	months, err := h.reportingService.GetMonthlyFinance(c.Request.Context(), year)
	if err != nil {
		respondError(c, err, "Failed to build monthly report")
		return
	}
	c.JSON(http.StatusOK, dto.MonthlyReportResponse{Year: year, Months: months})
}

// exportTransactions godoc
// @Summary Export transactions as CSV
// @Description Incomes and expenses within the period, oldest first.
// @Tags reports
// @Produce text/csv
// @Param from query string false "yyyy-mm-dd"
// @Param to query string false "yyyy-mm-dd"
// @Success 200 {file} file
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /reports/export/transactions.csv [get]
func (h *reportingHandler) exportTransactions(c *gin.Context) {
	from, to, ok := h.bindRange(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.reportingService.ExportTransactionsCSV(c.Request.Context(), &buf, from, to); err != nil {
		respondError(c, err, "Failed to export transactions")
		return
	}

	name := fmt.Sprintf("transactions_%s_%s.csv", from.Format(dto.DateLayout), to.Format(dto.DateLayout))
	sendAttachment(c, name, csvContentType, buf.Bytes())
}

// exportProjectProfit godoc
// @Summary Export project profit as CSV
// @Tags reports
// @Produce text/csv
// @Success 200 {file} file
// @Security BearerAuth
// @Router /reports/export/profit.csv [get]
func (h *reportingHandler) exportProjectProfit(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.reportingService.ExportProjectProfitCSV(c.Request.Context(), &buf); err != nil {
		respondError(c, err, "Failed to export project profit")
		return
	}
	name := fmt.Sprintf("project_profit_%s.csv", h.now().Format(dto.DateLayout))
	sendAttachment(c, name, csvContentType, buf.Bytes())
}

func (h *reportingHandler) bindRange(c *gin.Context) (time.Time, time.Time, bool) {
	var params dto.ReportRangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "query parameters")
		return time.Time{}, time.Time{}, false
	}
	from, to, err := params.Resolve(h.now())
	if err != nil {
		respondError(c, err, "Invalid report period")
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

func sendAttachment(c *gin.Context, filename, contentType string, body []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, body)
}
