package services_test

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/velotrack/velotrack_backend/internal/core/domain"
	portsrepo "github.com/velotrack/velotrack_backend/internal/core/ports/repositories"
)

// --- Transaction manager ---

// passThroughTx runs fn with the caller's context. Errors returned by fn propagate.
// active is true only while fn runs.
type passThroughTx struct {
	calls  int
	active bool
}

func (t *passThroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	t.active = true
	defer func() { t.active = false }()
	return fn(ctx)
}

// --- Mock AuditRepository ---
type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) SaveAuditLog(ctx context.Context, entry domain.AuditLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditRepository) ListAuditLogsForEntity(ctx context.Context, entityType, entityID string) ([]domain.AuditLog, error) {
	args := m.Called(ctx, entityType, entityID)
	var logs []domain.AuditLog
	if args.Get(0) != nil {
		logs = args.Get(0).([]domain.AuditLog)
	}
	return logs, args.Error(1)
}

func (m *MockAuditRepository) ListAuditLogs(ctx context.Context, filter domain.AuditFilter) ([]domain.AuditLog, *string, error) {
	args := m.Called(ctx, filter)
	var logs []domain.AuditLog
	if args.Get(0) != nil {
		logs = args.Get(0).([]domain.AuditLog)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return logs, next, args.Error(2)
}

// auditAction matches an audit entry by action code.
func auditAction(action string) any {
	return mock.MatchedBy(func(e domain.AuditLog) bool { return e.Action == action })
}

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindOwner(ctx context.Context) (*domain.User, error) {
	args := m.Called(ctx)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) ListUsersByRole(ctx context.Context, role domain.UserRole, activeOnly bool, limit int, offset int) ([]domain.User, error) {
	args := m.Called(ctx, role, activeOnly, limit, offset)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, userID string, passwordHash string, updatedAt time.Time, updatedBy string) error {
	args := m.Called(ctx, userID, passwordHash, updatedAt, updatedBy)
	return args.Error(0)
}

func (m *MockUserRepository) SetUserActive(ctx context.Context, userID string, active bool, updatedAt time.Time, updatedBy string) error {
	args := m.Called(ctx, userID, active, updatedAt, updatedBy)
	return args.Error(0)
}

// --- Mock LeadRepository ---
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) FindLeadByID(ctx context.Context, leadID string) (*domain.Lead, error) {
	args := m.Called(ctx, leadID)
	var lead *domain.Lead
	if args.Get(0) != nil {
		lead = args.Get(0).(*domain.Lead)
	}
	return lead, args.Error(1)
}

func (m *MockLeadRepository) FindLeadByIDForUpdate(ctx context.Context, leadID string) (*domain.Lead, error) {
	args := m.Called(ctx, leadID)
	var lead *domain.Lead
	if args.Get(0) != nil {
		lead = args.Get(0).(*domain.Lead)
	}
	return lead, args.Error(1)
}

func (m *MockLeadRepository) ListLeads(ctx context.Context, filter domain.LeadFilter) ([]domain.Lead, error) {
	args := m.Called(ctx, filter)
	var leads []domain.Lead
	if args.Get(0) != nil {
		leads = args.Get(0).([]domain.Lead)
	}
	return leads, args.Error(1)
}

func (m *MockLeadRepository) ListLeadNotes(ctx context.Context, leadID string) ([]domain.Note, error) {
	args := m.Called(ctx, leadID)
	var notes []domain.Note
	if args.Get(0) != nil {
		notes = args.Get(0).([]domain.Note)
	}
	return notes, args.Error(1)
}

func (m *MockLeadRepository) SaveLead(ctx context.Context, lead domain.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) UpdateLead(ctx context.Context, lead domain.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) UpdateLeadStatus(ctx context.Context, leadID string, status domain.LeadStatus, updatedAt time.Time, updatedBy string) error {
	args := m.Called(ctx, leadID, status, updatedAt, updatedBy)
	return args.Error(0)
}

func (m *MockLeadRepository) DeleteLead(ctx context.Context, leadID string) error {
	args := m.Called(ctx, leadID)
	return args.Error(0)
}

func (m *MockLeadRepository) SaveLeadNote(ctx context.Context, note domain.Note) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockLeadRepository) DeleteLeadNotes(ctx context.Context, leadID string) error {
	args := m.Called(ctx, leadID)
	return args.Error(0)
}

// --- Mock ProjectRepository ---
type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	args := m.Called(ctx, projectID)
	var p *domain.Project
	if args.Get(0) != nil {
		p = args.Get(0).(*domain.Project)
	}
	return p, args.Error(1)
}

func (m *MockProjectRepository) FindProjectByIDForUpdate(ctx context.Context, projectID string) (*domain.Project, error) {
	args := m.Called(ctx, projectID)
	var p *domain.Project
	if args.Get(0) != nil {
		p = args.Get(0).(*domain.Project)
	}
	return p, args.Error(1)
}

func (m *MockProjectRepository) FindProjectByLeadID(ctx context.Context, leadID string) (*domain.Project, error) {
	args := m.Called(ctx, leadID)
	var p *domain.Project
	if args.Get(0) != nil {
		p = args.Get(0).(*domain.Project)
	}
	return p, args.Error(1)
}

func (m *MockProjectRepository) ListProjects(ctx context.Context, filter domain.ProjectFilter) ([]domain.Project, error) {
	args := m.Called(ctx, filter)
	var projects []domain.Project
	if args.Get(0) != nil {
		projects = args.Get(0).([]domain.Project)
	}
	return projects, args.Error(1)
}

func (m *MockProjectRepository) ListProjectNotes(ctx context.Context, projectID string) ([]domain.Note, error) {
	args := m.Called(ctx, projectID)
	var notes []domain.Note
	if args.Get(0) != nil {
		notes = args.Get(0).([]domain.Note)
	}
	return notes, args.Error(1)
}

func (m *MockProjectRepository) SaveProject(ctx context.Context, project domain.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) UpdateProjectStatus(ctx context.Context, projectID string, status domain.ProjectStatus, updatedAt time.Time, updatedBy string) error {
	args := m.Called(ctx, projectID, status, updatedAt, updatedBy)
	return args.Error(0)
}

func (m *MockProjectRepository) UpdateProjectPic(ctx context.Context, projectID string, picID *string, updatedAt time.Time, updatedBy string) error {
	args := m.Called(ctx, projectID, picID, updatedAt, updatedBy)
	return args.Error(0)
}

func (m *MockProjectRepository) UpdateProjectDeadline(ctx context.Context, projectID string, deadline time.Time, updatedAt time.Time, updatedBy string) error {
	args := m.Called(ctx, projectID, deadline, updatedAt, updatedBy)
	return args.Error(0)
}

func (m *MockProjectRepository) SaveProjectNote(ctx context.Context, note domain.Note) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

// --- Mock FinanceRepository ---
type MockFinanceRepository struct {
	mock.Mock
}

func (m *MockFinanceRepository) FindIncomeByID(ctx context.Context, incomeID string) (*domain.Income, error) {
	args := m.Called(ctx, incomeID)
	var i *domain.Income
	if args.Get(0) != nil {
		i = args.Get(0).(*domain.Income)
	}
	return i, args.Error(1)
}

func (m *MockFinanceRepository) ListIncomes(ctx context.Context, filter domain.FinanceFilter) ([]domain.Income, error) {
	args := m.Called(ctx, filter)
	var rows []domain.Income
	if args.Get(0) != nil {
		rows = args.Get(0).([]domain.Income)
	}
	return rows, args.Error(1)
}

func (m *MockFinanceRepository) SaveIncome(ctx context.Context, income domain.Income) error {
	return m.Called(ctx, income).Error(0)
}

func (m *MockFinanceRepository) UpdateIncome(ctx context.Context, income domain.Income) error {
	return m.Called(ctx, income).Error(0)
}

func (m *MockFinanceRepository) DeleteIncome(ctx context.Context, incomeID string) error {
	return m.Called(ctx, incomeID).Error(0)
}

func (m *MockFinanceRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	args := m.Called(ctx, expenseID)
	var e *domain.Expense
	if args.Get(0) != nil {
		e = args.Get(0).(*domain.Expense)
	}
	return e, args.Error(1)
}

func (m *MockFinanceRepository) ListExpenses(ctx context.Context, filter domain.FinanceFilter) ([]domain.Expense, error) {
	args := m.Called(ctx, filter)
	var rows []domain.Expense
	if args.Get(0) != nil {
		rows = args.Get(0).([]domain.Expense)
	}
	return rows, args.Error(1)
}

func (m *MockFinanceRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	return m.Called(ctx, expense).Error(0)
}

func (m *MockFinanceRepository) UpdateExpense(ctx context.Context, expense domain.Expense) error {
	return m.Called(ctx, expense).Error(0)
}

func (m *MockFinanceRepository) DeleteExpense(ctx context.Context, expenseID string) error {
	return m.Called(ctx, expenseID).Error(0)
}

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) CountLeadsByStatus(ctx context.Context, mitraID *string) (map[domain.LeadStatus]int, error) {
	args := m.Called(ctx, mitraID)
	var counts map[domain.LeadStatus]int
	if args.Get(0) != nil {
		counts = args.Get(0).(map[domain.LeadStatus]int)
	}
	return counts, args.Error(1)
}

func (m *MockReportingRepository) CountProjectsByDisplayStatus(ctx context.Context, scopeUserID *string, today time.Time) (map[domain.ProjectStatus]int, error) {
	args := m.Called(ctx, scopeUserID, today)
	var counts map[domain.ProjectStatus]int
	if args.Get(0) != nil {
		counts = args.Get(0).(map[domain.ProjectStatus]int)
	}
	return counts, args.Error(1)
}

func (m *MockReportingRepository) SumFinance(ctx context.Context, from, to time.Time) (portsrepo.FinanceTotals, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(portsrepo.FinanceTotals), args.Error(1)
}

func (m *MockReportingRepository) ListProjectFinanceTotals(ctx context.Context, projectID *string) ([]domain.ProjectFinanceTotals, error) {
	args := m.Called(ctx, projectID)
	var rows []domain.ProjectFinanceTotals
	if args.Get(0) != nil {
		rows = args.Get(0).([]domain.ProjectFinanceTotals)
	}
	return rows, args.Error(1)
}

func (m *MockReportingRepository) MonthlyTotals(ctx context.Context, year int) ([]domain.MonthlyFinance, error) {
	args := m.Called(ctx, year)
	var rows []domain.MonthlyFinance
	if args.Get(0) != nil {
		rows = args.Get(0).([]domain.MonthlyFinance)
	}
	return rows, args.Error(1)
}

func (m *MockReportingRepository) ListTransactions(ctx context.Context, from, to time.Time) ([]domain.TransactionRow, error) {
	args := m.Called(ctx, from, to)
	var rows []domain.TransactionRow
	if args.Get(0) != nil {
		rows = args.Get(0).([]domain.TransactionRow)
	}
	return rows, args.Error(1)
}

// --- Mock DocumentRepository ---
type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	args := m.Called(ctx, documentID)
	var d *domain.Document
	if args.Get(0) != nil {
		d = args.Get(0).(*domain.Document)
	}
	return d, args.Error(1)
}

func (m *MockDocumentRepository) ListDocuments(ctx context.Context, filter domain.DocumentFilter) ([]domain.Document, error) {
	args := m.Called(ctx, filter)
	var docs []domain.Document
	if args.Get(0) != nil {
		docs = args.Get(0).([]domain.Document)
	}
	return docs, args.Error(1)
}

func (m *MockDocumentRepository) NextDocumentSequence(ctx context.Context, docType domain.DocumentType, since time.Time) (int, error) {
	args := m.Called(ctx, docType, since)
	return args.Int(0), args.Error(1)
}

func (m *MockDocumentRepository) SaveDocument(ctx context.Context, doc domain.Document) error {
	return m.Called(ctx, doc).Error(0)
}

func (m *MockDocumentRepository) UpdateDocumentFileURL(ctx context.Context, documentID string, fileURL string) error {
	return m.Called(ctx, documentID, fileURL).Error(0)
}

func (m *MockDocumentRepository) MarkDocumentSent(ctx context.Context, documentID string, sentAt time.Time) error {
	return m.Called(ctx, documentID, sentAt).Error(0)
}

func (m *MockDocumentRepository) MarkDocumentSendFailed(ctx context.Context, documentID string, reason string) error {
	return m.Called(ctx, documentID, reason).Error(0)
}

// --- Mock SettingsRepository ---
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) GetSettings(ctx context.Context) (*domain.Settings, error) {
	args := m.Called(ctx)
	var s *domain.Settings
	if args.Get(0) != nil {
		s = args.Get(0).(*domain.Settings)
	}
	return s, args.Error(1)
}

func (m *MockSettingsRepository) SaveSettings(ctx context.Context, settings domain.Settings) error {
	return m.Called(ctx, settings).Error(0)
}

// --- Gateway mocks ---
type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) Render(w io.Writer, payload domain.DocumentPayload) error {
	args := m.Called(w, payload)
	if args.Error(0) == nil {
		_, _ = w.Write([]byte("%PDF-1.3 test"))
	}
	return args.Error(0)
}

type MockFileStore struct {
	mock.Mock
}

func (m *MockFileStore) Put(ctx context.Context, key string, contentType string, r io.Reader) (string, error) {
	args := m.Called(ctx, key, contentType, r)
	return args.String(0), args.Error(1)
}

type MockWhatsAppSender struct {
	mock.Mock
}

func (m *MockWhatsAppSender) Send(ctx context.Context, phone, message, fileURL, filename string) domain.SendResult {
	args := m.Called(ctx, phone, message, fileURL, filename)
	return args.Get(0).(domain.SendResult)
}

// testNow is the pinned service time, 2024-03-10 09:00 UTC.
var testNow = time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func strPtr(s string) *string { return &s }

var (
	ownerActor = domain.Actor{UserID: "owner-1", Role: domain.RoleOwner}
	mitraActor = domain.Actor{UserID: "mitra-1", Role: domain.RoleMitra}
)
