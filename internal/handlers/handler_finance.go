package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/velotrack/velotrack_backend/internal/core/ports/services"
	"github.com/velotrack/velotrack_backend/internal/dto"
	"github.com/velotrack/velotrack_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// financeHandler handles income and expense records.
type financeHandler struct {
	financeService portssvc.FinanceSvcFacade
}

func newFinanceHandler(fs portssvc.FinanceSvcFacade) *financeHandler {
	return &financeHandler{financeService: fs}
}

// registerFinanceRoutes registers the finance routes on an owner-only group.
func registerFinanceRoutes(rg *gin.RouterGroup, fs portssvc.FinanceSvcFacade) {
	h := newFinanceHandler(fs)

	incomes := rg.Group("/incomes")
	{
		incomes.GET("", h.listIncomes)
		incomes.POST("", h.createIncome)
		incomes.PUT("/:id", h.updateIncome)
		incomes.DELETE("/:id", h.deleteIncome)
	}

	expenses := rg.Group("/expenses")
	{
		expenses.GET("", h.listExpenses)
		expenses.POST("", h.createExpense)
		expenses.PUT("/:id", h.updateExpense)
		expenses.DELETE("/:id", h.deleteExpense)
	}
}

// createIncome godoc
// @Summary Record an income
// @Description Records a payment received for a project. The amount must be positive.
// @Tags finance
// @Accept json
// @Produce json
// @Param income body dto.IncomeRequest true "Income"
// @Success 201 {object} domain.Income
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Project not found"
// @Security BearerAuth
// @Router /incomes [post]
func (h *financeHandler) createIncome(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.IncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "request body")
		return
	}

	income, err := h.financeService.CreateIncome(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "Failed to create income")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Income recorded", slog.String("income_id", income.IncomeID))
	c.JSON(http.StatusCreated, income)
}

// updateIncome godoc
// @Summary Replace an income
// @Tags finance
// @Accept json
// @Produce json
// @Param id path string true "Income ID"
// @Param income body dto.IncomeRequest true "Income"
// @Success 200 {object} domain.Income
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /incomes/{id} [put]
func (h *financeHandler) updateIncome(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.IncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "request body")
		return
	}

	income, err := h.financeService.UpdateIncome(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to update income")
		return
	}
	c.JSON(http.StatusOK, income)
}

// deleteIncome godoc
// @Summary Delete an income
// @Tags finance
// @Param id path string true "Income ID"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /incomes/{id} [delete]
func (h *financeHandler) deleteIncome(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	if err := h.financeService.DeleteIncome(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete income")
		return
	}
	c.Status(http.StatusNoContent)
}

// listIncomes godoc
// @Summary List incomes
// @Description Lists incomes newest first, optionally by project and inclusive date range.
// @Tags finance
// @Produce json
// @Param projectID query string false "Project ID"
// @Param from query string false "yyyy-mm-dd"
// @Param to query string false "yyyy-mm-dd"
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListIncomesResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /incomes [get]
func (h *financeHandler) listIncomes(c *gin.Context) {
	var params dto.ListFinanceParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "query parameters")
		return
	}
	filter, err := params.ToFilter(dateLocation)
	if err != nil {
		respondError(c, err, "Invalid date range")
		return
	}

	incomes, err := h.financeService.ListIncomes(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "Failed to list incomes")
		return
	}
	c.JSON(http.StatusOK, dto.ListIncomesResponse{Incomes: incomes})
}

// createExpense godoc
// @Summary Record an expense
// @Description Records an expense, optionally tied to a project. The amount must be positive.
// @Tags finance
// @Accept json
// @Produce json
// @Param expense body dto.ExpenseRequest true "Expense"
// @Success 201 {object} domain.Expense
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Project not found"
// @Security BearerAuth
// @Router /expenses [post]
func (h *financeHandler) createExpense(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "request body")
		return
	}

	expense, err := h.financeService.CreateExpense(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "Failed to create expense")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Expense recorded", slog.String("expense_id", expense.ExpenseID))
	c.JSON(http.StatusCreated, expense)
}

// updateExpense godoc
// @Summary Replace an expense
// @Tags finance
// @Accept json
// @Produce json
// @Param id path string true "Expense ID"
// @Param expense body dto.ExpenseRequest true "Expense"
// @Success 200 {object} domain.Expense
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /expenses/{id} [put]
func (h *financeHandler) updateExpense(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "request body")
		return
	}

	expense, err := h.financeService.UpdateExpense(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to update expense")
		return
	}
	c.JSON(http.StatusOK, expense)
}

// deleteExpense godoc
// @Summary Delete an expense
// @Tags finance
// @Param id path string true "Expense ID"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /expenses/{id} [delete]
func (h *financeHandler) deleteExpense(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	if err := h.financeService.DeleteExpense(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete expense")
		return
	}
	c.Status(http.StatusNoContent)
}

// listExpenses godoc
// @Summary List expenses
// @Tags finance
// @Produce json
// @Param projectID query string false "Project ID"
// @Param from query string false "yyyy-mm-dd"
// @Param to query string false "yyyy-mm-dd"
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListExpensesResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /expenses [get]
func (h *financeHandler) listExpenses(c *gin.Context) {
	var params dto.ListFinanceParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "query parameters")
		return
	}
	filter, err := params.ToFilter(dateLocation)
	if err != nil {
		respondError(c, err, "Invalid date range")
		return
	}

	expenses, err := h.financeService.ListExpenses(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "Failed to list expenses")
		return
	}
	c.JSON(http.StatusOK, dto.ListExpensesResponse{Expenses: expenses})
}
