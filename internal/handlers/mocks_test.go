package handlers_test

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/velotrack/velotrack_backend/internal/core/domain"
	"github.com/velotrack/velotrack_backend/internal/dto"
)

type mockAuthService struct{ mock.Mock }

func (m *mockAuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*dto.LoginResponse)
	return resp, args.Error(1)
}

func (m *mockAuthService) LoginWithGoogle(ctx context.Context, req dto.GoogleLoginRequest) (*dto.LoginResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*dto.LoginResponse)
	return resp, args.Error(1)
}

type mockUserService struct{ mock.Mock }

func (m *mockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

func (m *mockUserService) GetOwner(ctx context.Context) (*domain.User, error) {
	args := m.Called(ctx)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

func (m *mockUserService) ListMitras(ctx context.Context, activeOnly bool, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, activeOnly, limit, offset)
	users, _ := args.Get(0).([]domain.User)
	return users, args.Error(1)
}

func (m *mockUserService) GetActiveMitra(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

func (m *mockUserService) CreateMitra(ctx context.Context, actor domain.Actor, req dto.CreateMitraRequest) (*domain.User, error) {
	args := m.Called(ctx, actor, req)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

func (m *mockUserService) UpdateMitra(ctx context.Context, actor domain.Actor, userID string, req dto.UpdateMitraRequest) (*domain.User, error) {
	args := m.Called(ctx, actor, userID, req)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

func (m *mockUserService) SetMitraActive(ctx context.Context, actor domain.Actor, userID string, active bool) (*domain.User, error) {
	args := m.Called(ctx, actor, userID, active)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

func (m *mockUserService) ChangePassword(ctx context.Context, actor domain.Actor, req dto.ChangePasswordRequest) error {
	return m.Called(ctx, actor, req).Error(0)
}

func (m *mockUserService) EnsureOwner(ctx context.Context, username, password, name string) (*domain.User, error) {
	args := m.Called(ctx, username, password, name)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

func (m *mockUserService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	args := m.Called(ctx, username, password)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

func (m *mockUserService) FindActiveUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

type mockLeadService struct{ mock.Mock }

func (m *mockLeadService) GetLeadDetail(ctx context.Context, actor domain.Actor, leadID string) (*domain.LeadDetail, error) {
	args := m.Called(ctx, actor, leadID)
	d, _ := args.Get(0).(*domain.LeadDetail)
	return d, args.Error(1)
}

func (m *mockLeadService) ListLeads(ctx context.Context, actor domain.Actor, filter domain.LeadFilter) ([]domain.Lead, error) {
	args := m.Called(ctx, actor, filter)
	leads, _ := args.Get(0).([]domain.Lead)
	return leads, args.Error(1)
}

func (m *mockLeadService) CreateLead(ctx context.Context, actor domain.Actor, req dto.CreateLeadRequest) (*domain.Lead, error) {
	args := m.Called(ctx, actor, req)
	l, _ := args.Get(0).(*domain.Lead)
	return l, args.Error(1)
}

func (m *mockLeadService) UpdateLead(ctx context.Context, actor domain.Actor, leadID string, req dto.UpdateLeadRequest) (*domain.Lead, error) {
	args := m.Called(ctx, actor, leadID, req)
	l, _ := args.Get(0).(*domain.Lead)
	return l, args.Error(1)
}

func (m *mockLeadService) ChangeStatus(ctx context.Context, actor domain.Actor, leadID string, newStatus domain.LeadStatus, reason string) (*domain.Lead, error) {
	args := m.Called(ctx, actor, leadID, newStatus, reason)
	l, _ := args.Get(0).(*domain.Lead)
	return l, args.Error(1)
}

func (m *mockLeadService) DeleteLead(ctx context.Context, actor domain.Actor, leadID string) error {
	return m.Called(ctx, actor, leadID).Error(0)
}

func (m *mockLeadService) AddNote(ctx context.Context, actor domain.Actor, leadID string, content string) (*domain.Note, error) {
	args := m.Called(ctx, actor, leadID, content)
	n, _ := args.Get(0).(*domain.Note)
	return n, args.Error(1)
}

type mockConverter struct{ mock.Mock }

func (m *mockConverter) ConvertLead(ctx context.Context, actor domain.Actor, leadID string, req dto.ConvertLeadRequest) (*domain.Project, error) {
	args := m.Called(ctx, actor, leadID, req)
	p, _ := args.Get(0).(*domain.Project)
	return p, args.Error(1)
}

type mockProjectService struct{ mock.Mock }

func (m *mockProjectService) GetProjectDetail(ctx context.Context, actor domain.Actor, projectID string) (*domain.ProjectDetail, error) {
	args := m.Called(ctx, actor, projectID)
	d, _ := args.Get(0).(*domain.ProjectDetail)
	return d, args.Error(1)
}

func (m *mockProjectService) ListProjects(ctx context.Context, actor domain.Actor, filter domain.ProjectFilter) ([]domain.ProjectListItem, error) {
	args := m.Called(ctx, actor, filter)
	items, _ := args.Get(0).([]domain.ProjectListItem)
	return items, args.Error(1)
}

func (m *mockProjectService) CreateProject(ctx context.Context, actor domain.Actor, req dto.CreateProjectRequest) (*domain.Project, error) {
	args := m.Called(ctx, actor, req)
	p, _ := args.Get(0).(*domain.Project)
	return p, args.Error(1)
}

func (m *mockProjectService) UpdateStatus(ctx context.Context, actor domain.Actor, projectID string, newStatus domain.ProjectStatus) (*domain.Project, error) {
	args := m.Called(ctx, actor, projectID, newStatus)
	p, _ := args.Get(0).(*domain.Project)
	return p, args.Error(1)
}

func (m *mockProjectService) UpdatePic(ctx context.Context, actor domain.Actor, projectID string, picID *string) (*domain.Project, error) {
	args := m.Called(ctx, actor, projectID, picID)
	p, _ := args.Get(0).(*domain.Project)
	return p, args.Error(1)
}

func (m *mockProjectService) UpdateDeadline(ctx context.Context, actor domain.Actor, projectID string, deadline time.Time) (*domain.Project, error) {
	args := m.Called(ctx, actor, projectID, deadline)
	p, _ := args.Get(0).(*domain.Project)
	return p, args.Error(1)
}

func (m *mockProjectService) AddNote(ctx context.Context, actor domain.Actor, projectID string, content string) (*domain.Note, error) {
	args := m.Called(ctx, actor, projectID, content)
	n, _ := args.Get(0).(*domain.Note)
	return n, args.Error(1)
}

type mockFinanceService struct{ mock.Mock }

func (m *mockFinanceService) CreateIncome(ctx context.Context, actor domain.Actor, req dto.IncomeRequest) (*domain.Income, error) {
	args := m.Called(ctx, actor, req)
	i, _ := args.Get(0).(*domain.Income)
	return i, args.Error(1)
}

func (m *mockFinanceService) UpdateIncome(ctx context.Context, actor domain.Actor, incomeID string, req dto.IncomeRequest) (*domain.Income, error) {
	args := m.Called(ctx, actor, incomeID, req)
	i, _ := args.Get(0).(*domain.Income)
	return i, args.Error(1)
}

func (m *mockFinanceService) DeleteIncome(ctx context.Context, actor domain.Actor, incomeID string) error {
	return m.Called(ctx, actor, incomeID).Error(0)
}

func (m *mockFinanceService) ListIncomes(ctx context.Context, filter domain.FinanceFilter) ([]domain.Income, error) {
	args := m.Called(ctx, filter)
	items, _ := args.Get(0).([]domain.Income)
	return items, args.Error(1)
}

func (m *mockFinanceService) CreateExpense(ctx context.Context, actor domain.Actor, req dto.ExpenseRequest) (*domain.Expense, error) {
	args := m.Called(ctx, actor, req)
	e, _ := args.Get(0).(*domain.Expense)
	return e, args.Error(1)
}

func (m *mockFinanceService) UpdateExpense(ctx context.Context, actor domain.Actor, expenseID string, req dto.ExpenseRequest) (*domain.Expense, error) {
	args := m.Called(ctx, actor, expenseID, req)
	e, _ := args.Get(0).(*domain.Expense)
	return e, args.Error(1)
}

func (m *mockFinanceService) DeleteExpense(ctx context.Context, actor domain.Actor, expenseID string) error {
	return m.Called(ctx, actor, expenseID).Error(0)
}

func (m *mockFinanceService) ListExpenses(ctx context.Context, filter domain.FinanceFilter) ([]domain.Expense, error) {
	args := m.Called(ctx, filter)
	items, _ := args.Get(0).([]domain.Expense)
	return items, args.Error(1)
}

type mockReportingService struct{ mock.Mock }

func (m *mockReportingService) GetDashboard(ctx context.Context, actor domain.Actor) (*domain.DashboardSummary, error) {
	args := m.Called(ctx, actor)
	s, _ := args.Get(0).(*domain.DashboardSummary)
	return s, args.Error(1)
}

func (m *mockReportingService) GetFinanceSummary(ctx context.Context, from, to time.Time) (*domain.FinanceSummary, error) {
	args := m.Called(ctx, from, to)
	s, _ := args.Get(0).(*domain.FinanceSummary)
	return s, args.Error(1)
}

func (m *mockReportingService) GetProjectProfits(ctx context.Context) ([]domain.ProjectProfit, error) {
	args := m.Called(ctx)
	p, _ := args.Get(0).([]domain.ProjectProfit)
	return p, args.Error(1)
}

func (m *mockReportingService) GetProjectProfit(ctx context.Context, projectID string) (domain.ProjectProfit, error) {
	args := m.Called(ctx, projectID)
	p, _ := args.Get(0).(domain.ProjectProfit)
	return p, args.Error(1)
}

func (m *mockReportingService) GetMonthlyFinance(ctx context.Context, year int) ([]domain.MonthlyFinance, error) {
	args := m.Called(ctx, year)
	months, _ := args.Get(0).([]domain.MonthlyFinance)
	return months, args.Error(1)
}

func (m *mockReportingService) ExportTransactionsCSV(ctx context.Context, w io.Writer, from, to time.Time) error {
	args := m.Called(ctx, w, from, to)
	if body, ok := args.Get(1).(string); ok {
		_, _ = io.WriteString(w, body)
	}
	return args.Error(0)
}

func (m *mockReportingService) ExportProjectProfitCSV(ctx context.Context, w io.Writer) error {
	args := m.Called(ctx, w)
	if body, ok := args.Get(1).(string); ok {
		_, _ = io.WriteString(w, body)
	}
	return args.Error(0)
}

type mockDocumentService struct{ mock.Mock }

func (m *mockDocumentService) GenerateDocument(ctx context.Context, actor domain.Actor, req domain.GenerateDocumentRequest) (*domain.Document, error) {
	args := m.Called(ctx, actor, req)
	d, _ := args.Get(0).(*domain.Document)
	return d, args.Error(1)
}

func (m *mockDocumentService) GetDocument(ctx context.Context, documentID string) (*domain.Document, error) {
	args := m.Called(ctx, documentID)
	d, _ := args.Get(0).(*domain.Document)
	return d, args.Error(1)
}

func (m *mockDocumentService) ListDocuments(ctx context.Context, filter domain.DocumentFilter) ([]domain.Document, error) {
	args := m.Called(ctx, filter)
	docs, _ := args.Get(0).([]domain.Document)
	return docs, args.Error(1)
}

func (m *mockDocumentService) RenderDocument(ctx context.Context, documentID string, w io.Writer) error {
	args := m.Called(ctx, documentID, w)
	if body, ok := args.Get(1).(string); ok {
		_, _ = io.WriteString(w, body)
	}
	return args.Error(0)
}

type mockNotificationService struct{ mock.Mock }

func (m *mockNotificationService) SendDocument(ctx context.Context, actor domain.Actor, documentID string, req dto.SendDocumentRequest) (domain.SendResult, error) {
	args := m.Called(ctx, actor, documentID, req)
	return args.Get(0).(domain.SendResult), args.Error(1)
}

func (m *mockNotificationService) SendMessage(ctx context.Context, phone, message string) domain.SendResult {
	return m.Called(ctx, phone, message).Get(0).(domain.SendResult)
}

type mockAuditService struct{ mock.Mock }

func (m *mockAuditService) ListAuditLogs(ctx context.Context, filter domain.AuditFilter) ([]domain.AuditLog, *string, error) {
	args := m.Called(ctx, filter)
	logs, _ := args.Get(0).([]domain.AuditLog)
	next, _ := args.Get(1).(*string)
	return logs, next, args.Error(2)
}
