package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/velotrack/velotrack_backend/internal/apperrors"
	"github.com/velotrack/velotrack_backend/internal/core/domain"
	portssvc "github.com/velotrack/velotrack_backend/internal/core/ports/services"
	"github.com/velotrack/velotrack_backend/internal/dto"
	"github.com/velotrack/velotrack_backend/internal/handlers"
	"github.com/velotrack/velotrack_backend/internal/platform/config"
	"github.com/velotrack/velotrack_backend/internal/utils"
)

const (
	testSecret = "handler-test-secret"
	ownerID    = "11111111-1111-1111-1111-111111111111"
	mitraID    = "22222222-2222-2222-2222-222222222222"
	leadID     = "33333333-3333-3333-3333-333333333333"
	projectID  = "44444444-4444-4444-4444-444444444444"
	documentID = "55555555-5555-5555-5555-555555555555"
)

var (
	owner = domain.Actor{UserID: ownerID, Role: domain.RoleOwner}
	mitra = domain.Actor{UserID: mitraID, Role: domain.RoleMitra}
)

type HandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	auth         *mockAuthService
	users        *mockUserService
	leads        *mockLeadService
	converter    *mockConverter
	projects     *mockProjectService
	finance      *mockFinanceService
	reporting    *mockReportingService
	documents    *mockDocumentService
	notification *mockNotificationService
	audit        *mockAuditService
	ownerToken   string
	mitraToken   string
}

func (s *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	s.auth = new(mockAuthService)
	s.users = new(mockUserService)
	s.leads = new(mockLeadService)
	s.converter = new(mockConverter)
	s.projects = new(mockProjectService)
	s.finance = new(mockFinanceService)
	s.reporting = new(mockReportingService)
	s.documents = new(mockDocumentService)
	s.notification = new(mockNotificationService)
	s.audit = new(mockAuditService)

	cfg := &config.Config{
		JWTSecret:       testSecret,
		IsProduction:    true,
		LoginRateLimit:  "100-M",
		StorageDriver:   config.StorageLocal,
		StorageLocalDir: s.T().TempDir(),
	}
	services := &portssvc.ServiceContainer{
		Auth:         s.auth,
		User:         s.users,
		Lead:         s.leads,
		Converter:    s.converter,
		Project:      s.projects,
		Finance:      s.finance,
		Reporting:    s.reporting,
		Document:     s.documents,
		Notification: s.notification,
		Audit:        s.audit,
	}

	s.router = gin.New()
	require.NoError(s.T(), handlers.RegisterRoutes(s.router, cfg, services))

	s.ownerToken = generateTestToken(s.T(), owner)
	s.mitraToken = generateTestToken(s.T(), mitra)
}

func (s *HandlerTestSuite) TearDownTest() {
	s.auth.AssertExpectations(s.T())
	s.users.AssertExpectations(s.T())
	s.leads.AssertExpectations(s.T())
	s.converter.AssertExpectations(s.T())
	s.projects.AssertExpectations(s.T())
	s.finance.AssertExpectations(s.T())
	s.reporting.AssertExpectations(s.T())
	s.documents.AssertExpectations(s.T())
	s.notification.AssertExpectations(s.T())
	s.audit.AssertExpectations(s.T())
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func generateTestToken(t *testing.T, actor domain.Actor) string {
	token, _, err := utils.GenerateJWT(actor.UserID, string(actor.Role), testSecret, time.Hour, "test")
	require.NoError(t, err)
	return token
}

func (s *HandlerTestSuite) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *HandlerTestSuite) errorBody(w *httptest.ResponseRecorder) string {
	var resp dto.ErrorResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error
}

func (s *HandlerTestSuite) TestHealth() {
	w := s.do(http.MethodGet, "/health", "", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Equal("OK", w.Body.String())
}

func (s *HandlerTestSuite) TestProtectedRouteRequiresToken() {
	w := s.do(http.MethodGet, "/api/v1/leads", "", nil)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *HandlerTestSuite) TestLogin() {
	req := dto.LoginRequest{Username: "owner", Password: "secret-pass"}
	resp := &dto.LoginResponse{Token: "jwt", User: dto.UserResponse{UserID: ownerID, Role: domain.RoleOwner}}
	s.auth.On("Login", mock.Anything, req).Return(resp, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/auth/login", "", req)

	s.Equal(http.StatusOK, w.Code)
	var got dto.LoginResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	s.Equal("jwt", got.Token)
	s.Equal(ownerID, got.User.UserID)
}

func (s *HandlerTestSuite) TestLogin_InvalidCredentials() {
	req := dto.LoginRequest{Username: "owner", Password: "wrong"}
	s.auth.On("Login", mock.Anything, req).
		Return(nil, apperrors.NewUnauthorizedError("invalid username or password")).Once()

	w := s.do(http.MethodPost, "/api/v1/auth/login", "", req)

	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal("invalid username or password", s.errorBody(w))
}

func (s *HandlerTestSuite) TestLogin_MissingFields() {
	w := s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"username": "owner"})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlerTestSuite) TestMe() {
	s.users.On("GetUserByID", mock.Anything, mitraID).
		Return(&domain.User{UserID: mitraID, Role: domain.RoleMitra, Name: "Budi", IsActive: true}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/auth/me", s.mitraToken, nil)

	s.Equal(http.StatusOK, w.Code)
	var got dto.UserResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	s.Equal("Budi", got.Name)
	s.Equal(domain.RoleMitra, got.Role)
}

func (s *HandlerTestSuite) TestCreateLead_AsMitra() {
	req := dto.CreateLeadRequest{Name: "Toko Maju", Contact: "08123456789"}
	created := &domain.Lead{LeadID: leadID, Name: "Toko Maju", Status: domain.LeadPending, MitraID: &mitra.UserID}
	s.leads.On("CreateLead", mock.Anything, mitra, req).Return(created, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/leads", s.mitraToken, req)

	s.Equal(http.StatusCreated, w.Code)
	var got domain.Lead
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	s.Equal(leadID, got.LeadID)
	s.Equal(domain.LeadPending, got.Status)
}

func (s *HandlerTestSuite) TestListLeads_InvalidStatus() {
	w := s.do(http.MethodGet, "/api/v1/leads?status=WON", s.ownerToken, nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlerTestSuite) TestListLeads_PassesFilter() {
	status := domain.LeadPending
	filter := domain.LeadFilter{Status: &status, Search: "maju", Limit: 10, Offset: 0}
	s.leads.On("ListLeads", mock.Anything, owner, filter).Return([]domain.Lead{{LeadID: leadID}}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/leads?status=PENDING&q=maju&limit=10", s.ownerToken, nil)

	s.Equal(http.StatusOK, w.Code)
	var got dto.ListLeadsResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	s.Len(got.Leads, 1)
}

func (s *HandlerTestSuite) TestGetLead_OutOfScopeIsNotFound() {
	s.leads.On("GetLeadDetail", mock.Anything, mitra, leadID).Return(nil, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/leads/"+leadID, s.mitraToken, nil)

	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("Lead not found", s.errorBody(w))
}

func (s *HandlerTestSuite) TestChangeLeadStatus_LockedLead() {
	s.leads.On("ChangeStatus", mock.Anything, owner, leadID, domain.LeadCancel, "budget").
		Return(nil, apperrors.NewInvalidStateError("lead "+leadID+" is locked: status DEAL cannot be changed")).Once()

	w := s.do(http.MethodPatch, "/api/v1/leads/"+leadID+"/status", s.ownerToken,
		dto.ChangeLeadStatusRequest{Status: domain.LeadCancel, Reason: "budget"})

	s.Equal(http.StatusConflict, w.Code)
	s.Contains(s.errorBody(w), "is locked")
}

func (s *HandlerTestSuite) TestDeleteLead() {
	s.leads.On("DeleteLead", mock.Anything, owner, leadID).Return(nil).Once()

	w := s.do(http.MethodDelete, "/api/v1/leads/"+leadID, s.ownerToken, nil)

	s.Equal(http.StatusNoContent, w.Code)
}

func (s *HandlerTestSuite) TestConvertLead() {
	req := dto.ConvertLeadRequest{ProjectName: "Website Toko Maju", Deadline: "2025-01-31"}
	s.converter.On("ConvertLead", mock.Anything, owner, leadID, req).
		Return(&domain.Project{ProjectID: projectID, LeadID: &[]string{leadID}[0], Status: domain.ProjectTodo}, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/leads/"+leadID+"/convert", s.ownerToken, req)

	s.Equal(http.StatusCreated, w.Code)
	var got domain.Project
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	s.Equal(projectID, got.ProjectID)
}

func (s *HandlerTestSuite) TestConvertLead_AlreadyConverted() {
	req := dto.ConvertLeadRequest{ProjectName: "Website"}
	s.converter.On("ConvertLead", mock.Anything, owner, leadID, req).
		Return(nil, apperrors.NewInvalidStateError("lead "+leadID+" has already been converted to a project")).Once()

	w := s.do(http.MethodPost, "/api/v1/leads/"+leadID+"/convert", s.ownerToken, req)

	s.Equal(http.StatusConflict, w.Code)
}

func (s *HandlerTestSuite) TestCreateProject_ForbiddenForMitra() {
	w := s.do(http.MethodPost, "/api/v1/projects", s.mitraToken,
		dto.CreateProjectRequest{Name: "X", ClientName: "Y"})

	s.Equal(http.StatusForbidden, w.Code)
	s.projects.AssertNotCalled(s.T(), "CreateProject", mock.Anything, mock.Anything, mock.Anything)
}

func (s *HandlerTestSuite) TestUpdateProjectDeadline() {
	deadline := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.Local)
	s.projects.On("UpdateDeadline", mock.Anything, owner, projectID, mock.MatchedBy(func(d time.Time) bool {
		return d.Equal(deadline)
	})).
		Return(&domain.Project{ProjectID: projectID, Deadline: deadline}, nil).Once()

	w := s.do(http.MethodPatch, "/api/v1/projects/"+projectID+"/deadline", s.ownerToken,
		dto.UpdateProjectDeadlineRequest{Deadline: "2025-03-10"})

	s.Equal(http.StatusOK, w.Code)
}

func (s *HandlerTestSuite) TestUpdateProjectDeadline_BadDate() {
	w := s.do(http.MethodPatch, "/api/v1/projects/"+projectID+"/deadline", s.ownerToken,
		dto.UpdateProjectDeadlineRequest{Deadline: "10/03/2025"})

	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlerTestSuite) TestUpdateProjectStatus_Done() {
	s.projects.On("UpdateStatus", mock.Anything, mitra, projectID, domain.ProjectOnProgress).
		Return(nil, apperrors.NewInvalidStateError("project "+projectID+" is DONE and cannot change status")).Once()

	w := s.do(http.MethodPatch, "/api/v1/projects/"+projectID+"/status", s.mitraToken,
		dto.UpdateProjectStatusRequest{Status: domain.ProjectOnProgress})

	s.Equal(http.StatusConflict, w.Code)
}

func (s *HandlerTestSuite) TestGetProject_NotFound() {
	s.projects.On("GetProjectDetail", mock.Anything, mitra, projectID).Return(nil, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/projects/"+projectID, s.mitraToken, nil)

	s.Equal(http.StatusNotFound, w.Code)
}

func (s *HandlerTestSuite) TestFinanceRoutesAreOwnerOnly() {
	w := s.do(http.MethodGet, "/api/v1/incomes", s.mitraToken, nil)
	s.Equal(http.StatusForbidden, w.Code)

	w = s.do(http.MethodGet, "/api/v1/expenses", s.mitraToken, nil)
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *HandlerTestSuite) TestCreateIncome() {
	req := dto.IncomeRequest{
		ProjectID:   projectID,
		Date:        "2024-05-01",
		Amount:      decimal.NewFromInt(1500000),
		PaymentType: domain.PaymentDP,
	}
	s.finance.On("CreateIncome", mock.Anything, owner, mock.MatchedBy(func(r dto.IncomeRequest) bool {
		return r.ProjectID == projectID && r.Amount.Equal(decimal.NewFromInt(1500000))
	})).Return(&domain.Income{IncomeID: "inc-1", ProjectID: projectID, Amount: req.Amount}, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/incomes", s.ownerToken, req)

	s.Equal(http.StatusCreated, w.Code)
}

func (s *HandlerTestSuite) TestListIncomes_DateRange() {
	s.finance.On("ListIncomes", mock.Anything, mock.MatchedBy(func(f domain.FinanceFilter) bool {
		return f.From != nil && f.To != nil &&
			f.From.Format(dto.DateLayout) == "2024-01-01" && f.To.Format(dto.DateLayout) == "2024-01-31"
	})).Return([]domain.Income{}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/incomes?from=2024-01-01&to=2024-01-31", s.ownerToken, nil)

	s.Equal(http.StatusOK, w.Code)
}

func (s *HandlerTestSuite) TestDashboard_VisibleToMitra() {
	s.reporting.On("GetDashboard", mock.Anything, mitra).Return(&domain.DashboardSummary{
		LeadCounts:    map[domain.LeadStatus]int{domain.LeadPending: 2},
		ProjectCounts: map[domain.ProjectStatus]int{domain.ProjectOverdue: 1},
		TotalLeads:    2,
		TotalProjects: 1,
	}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/reports/dashboard", s.mitraToken, nil)

	s.Equal(http.StatusOK, w.Code)
	var got domain.DashboardSummary
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	s.Equal(1, got.ProjectCounts[domain.ProjectOverdue])
}

func (s *HandlerTestSuite) TestFinanceReport_ForbiddenForMitra() {
	w := s.do(http.MethodGet, "/api/v1/reports/finance", s.mitraToken, nil)
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *HandlerTestSuite) TestFinanceReport_DefaultsToCurrentYear() {
	s.reporting.On("GetFinanceSummary", mock.Anything,
		mock.MatchedBy(func(from time.Time) bool {
			return from.Month() == time.January && from.Day() == 1 && from.Year() == time.Now().Year()
		}),
		mock.AnythingOfType("time.Time"),
	).Return(&domain.FinanceSummary{TotalIncome: decimal.NewFromInt(10)}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/reports/finance", s.ownerToken, nil)

	s.Equal(http.StatusOK, w.Code)
}

func (s *HandlerTestSuite) TestFinanceReport_InvertedRange() {
	w := s.do(http.MethodGet, "/api/v1/reports/finance?from=2024-02-01&to=2024-01-01", s.ownerToken, nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlerTestSuite) TestExportTransactionsCSV() {
	s.reporting.On("ExportTransactionsCSV", mock.Anything, mock.Anything, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return(nil, "Tanggal,Jenis\n").Once()

	w := s.do(http.MethodGet, "/api/v1/reports/export/transactions.csv?from=2024-01-01&to=2024-12-31", s.ownerToken, nil)

	s.Equal(http.StatusOK, w.Code)
	s.Equal("text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	s.Contains(w.Header().Get("Content-Disposition"), "transactions_2024-01-01_2024-12-31.csv")
	s.Equal("Tanggal,Jenis\n", w.Body.String())
}

func (s *HandlerTestSuite) TestMonthlyReport_DefaultYear() {
	year := time.Now().Year()
	s.reporting.On("GetMonthlyFinance", mock.Anything, year).Return(make([]domain.MonthlyFinance, 12), nil).Once()

	w := s.do(http.MethodGet, "/api/v1/reports/monthly", s.ownerToken, nil)

	s.Equal(http.StatusOK, w.Code)
	var got dto.MonthlyReportResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	s.Equal(year, got.Year)
	s.Len(got.Months, 12)
}

func (s *HandlerTestSuite) TestGenerateDocument() {
	req := dto.GenerateDocumentRequest{Type: domain.DocInvoiceDP, ProjectID: &[]string{projectID}[0]}
	url := "http://localhost:8080/files/documents/x.pdf"
	s.documents.On("GenerateDocument", mock.Anything, owner, req.ToDomain()).
		Return(&domain.Document{DocumentID: documentID, Number: "INV-DP/2024/001", FileURL: &url}, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/documents", s.ownerToken, req)

	s.Equal(http.StatusCreated, w.Code)
	var got dto.GenerateDocumentResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	s.Equal("INV-DP/2024/001", got.Document.Number)
	s.Empty(got.Error)
}

func (s *HandlerTestSuite) TestGenerateDocument_StoredWithoutFile() {
	req := dto.GenerateDocumentRequest{Type: domain.DocProposal, LeadID: &[]string{leadID}[0]}
	s.documents.On("GenerateDocument", mock.Anything, owner, req.ToDomain()).
		Return(&domain.Document{DocumentID: documentID, Number: "PRP/2024/003"},
			apperrors.NewExternalServiceError("failed to upload document", errors.New("bucket missing"))).Once()

	w := s.do(http.MethodPost, "/api/v1/documents", s.ownerToken, req)

	s.Equal(http.StatusBadGateway, w.Code)
	var got dto.GenerateDocumentResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	s.Equal("PRP/2024/003", got.Document.Number)
	s.Equal("failed to upload document: bucket missing", got.Error)
}

func (s *HandlerTestSuite) TestGenerateDocument_InvalidType() {
	w := s.do(http.MethodPost, "/api/v1/documents", s.ownerToken, map[string]string{"type": "QUOTE"})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlerTestSuite) TestDocuments_ForbiddenForMitra() {
	w := s.do(http.MethodGet, "/api/v1/documents", s.mitraToken, nil)
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *HandlerTestSuite) TestDownloadPDF() {
	s.documents.On("RenderDocument", mock.Anything, documentID, mock.Anything).Return(nil, "%PDF-1.3").Once()

	w := s.do(http.MethodGet, "/api/v1/documents/"+documentID+"/pdf", s.ownerToken, nil)

	s.Equal(http.StatusOK, w.Code)
	s.Equal("application/pdf", w.Header().Get("Content-Type"))
	s.True(bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))
}

func (s *HandlerTestSuite) TestSendDocument_WithoutBody() {
	s.notification.On("SendDocument", mock.Anything, owner, documentID, dto.SendDocumentRequest{}).
		Return(domain.SendResult{Success: true, Message: "sent"}, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/documents/"+documentID+"/send", s.ownerToken, nil)

	s.Equal(http.StatusOK, w.Code)
}

func (s *HandlerTestSuite) TestSendDocument_VendorRejected() {
	req := dto.SendDocumentRequest{Phone: "081234567890"}
	s.notification.On("SendDocument", mock.Anything, owner, documentID, req).
		Return(domain.SendResult{Success: false, Message: "invalid token"}, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/documents/"+documentID+"/send", s.ownerToken, req)

	s.Equal(http.StatusBadGateway, w.Code)
	var got domain.SendResult
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	s.False(got.Success)
	s.Equal("invalid token", got.Message)
}

func (s *HandlerTestSuite) TestSendWhatsApp_InvalidPhone() {
	w := s.do(http.MethodPost, "/api/v1/notifications/whatsapp", s.ownerToken,
		dto.SendWhatsAppRequest{Phone: "12ab", Message: "halo"})

	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlerTestSuite) TestSendWhatsApp() {
	s.notification.On("SendMessage", mock.Anything, "081234567890", "halo").
		Return(domain.SendResult{Success: true, Message: "sent"}).Once()

	w := s.do(http.MethodPost, "/api/v1/notifications/whatsapp", s.ownerToken,
		dto.SendWhatsAppRequest{Phone: "081234567890", Message: "halo"})

	s.Equal(http.StatusOK, w.Code)
}

func (s *HandlerTestSuite) TestMitras_OwnerOnly() {
	w := s.do(http.MethodGet, "/api/v1/mitras", s.mitraToken, nil)
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *HandlerTestSuite) TestCreateMitra_DuplicateUsername() {
	req := dto.CreateMitraRequest{Name: "Budi", Username: "budi", Password: "rahasia123"}
	s.users.On("CreateMitra", mock.Anything, owner, req).
		Return(nil, apperrors.NewConflictError("username budi is already taken")).Once()

	w := s.do(http.MethodPost, "/api/v1/mitras", s.ownerToken, req)

	s.Equal(http.StatusConflict, w.Code)
	s.Equal("username budi is already taken", s.errorBody(w))
}

func (s *HandlerTestSuite) TestGetMitra_RejectsOwnerAccount() {
	s.users.On("GetUserByID", mock.Anything, ownerID).
		Return(&domain.User{UserID: ownerID, Role: domain.RoleOwner}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/mitras/"+ownerID, s.ownerToken, nil)

	s.Equal(http.StatusNotFound, w.Code)
}

func (s *HandlerTestSuite) TestSetMitraActive_RequiresFlag() {
	w := s.do(http.MethodPatch, "/api/v1/mitras/"+mitraID+"/active", s.ownerToken, map[string]string{})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlerTestSuite) TestChangePassword() {
	req := dto.ChangePasswordRequest{CurrentPassword: "old-password", NewPassword: "new-password"}
	s.users.On("ChangePassword", mock.Anything, mitra, req).Return(nil).Once()

	w := s.do(http.MethodPut, "/api/v1/users/me/password", s.mitraToken, req)

	s.Equal(http.StatusOK, w.Code)
}

func (s *HandlerTestSuite) TestAuditLogs_Pagination() {
	token := "cursor"
	next := "next-cursor"
	s.audit.On("ListAuditLogs", mock.Anything, domain.AuditFilter{EntityType: "LEAD", Limit: 20, NextToken: &token}).
		Return([]domain.AuditLog{{AuditID: "a1"}}, &next, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/audit-logs?entityType=LEAD&limit=20&nextToken=cursor", s.ownerToken, nil)

	s.Equal(http.StatusOK, w.Code)
	var got dto.ListAuditLogsResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	s.Require().NotNil(got.NextToken)
	s.Equal("next-cursor", *got.NextToken)
}

func (s *HandlerTestSuite) TestInternalErrorsHideDetails() {
	s.leads.On("ListLeads", mock.Anything, owner, mock.Anything).
		Return(nil, errors.New("pq: connection refused")).Once()

	w := s.do(http.MethodGet, "/api/v1/leads", s.ownerToken, nil)

	assert.Equal(s.T(), http.StatusInternalServerError, w.Code)
	assert.Equal(s.T(), "Failed to list leads", s.errorBody(w))
}
