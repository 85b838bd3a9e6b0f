package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/velotrack/velotrack_backend/internal/apperrors"
	"github.com/velotrack/velotrack_backend/internal/core/domain"
	portssvc "github.com/velotrack/velotrack_backend/internal/core/ports/services"
	"github.com/velotrack/velotrack_backend/internal/core/services"
	"github.com/velotrack/velotrack_backend/internal/dto"
)

type ProjectServiceTestSuite struct {
	suite.Suite
	projectRepo *MockProjectRepository
	leadRepo    *MockLeadRepository
	userRepo    *MockUserRepository
	reportRepo  *MockReportingRepository
	auditRepo   *MockAuditRepository
	tx          *passThroughTx
	service     portssvc.ProjectSvcFacade
}

func (suite *ProjectServiceTestSuite) SetupTest() {
	suite.projectRepo = new(MockProjectRepository)
	suite.leadRepo = new(MockLeadRepository)
	suite.userRepo = new(MockUserRepository)
	suite.reportRepo = new(MockReportingRepository)
	suite.auditRepo = new(MockAuditRepository)
	suite.tx = &passThroughTx{}
	suite.service = services.NewProjectService(suite.tx, suite.projectRepo, suite.leadRepo, suite.userRepo, suite.reportRepo, suite.auditRepo, services.WithClock(fixedClock))
}

func project(status domain.ProjectStatus, deadline time.Time) *domain.Project {
	return &domain.Project{ProjectID: "p-1", Name: "Website", ClientName: "PT Maju", Status: status, Deadline: deadline}
}

// --- UpdateStatus Tests ---
func (suite *ProjectServiceTestSuite) TestUpdateStatus_DoneIsTerminal() {
	ctx := context.Background()
	suite.projectRepo.On("FindProjectByIDForUpdate", ctx, "p-1").Return(project(domain.ProjectDone, testNow), nil).Once()

	p, err := suite.service.UpdateStatus(ctx, ownerActor, "p-1", domain.ProjectOnProgress)

	suite.Nil(p)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.projectRepo.AssertNotCalled(suite.T(), "UpdateProjectStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ProjectServiceTestSuite) TestUpdateStatus_ReadsLockedRowInsideTransaction() {
	ctx := context.Background()
	suite.projectRepo.On("FindProjectByIDForUpdate", ctx, "p-1").Run(func(mock.Arguments) {
		suite.True(suite.tx.active, "project must be read inside the transaction")
	}).Return(project(domain.ProjectTodo, testNow), nil).Once()
	suite.projectRepo.On("UpdateProjectStatus", ctx, "p-1", domain.ProjectOnProgress, testNow, ownerActor.UserID).Return(nil).Once()
	suite.auditRepo.On("SaveAuditLog", ctx, auditAction(domain.ActionProjectStatusChanged)).Return(nil).Once()

	_, err := suite.service.UpdateStatus(ctx, ownerActor, "p-1", domain.ProjectOnProgress)

	suite.Require().NoError(err)
	suite.projectRepo.AssertNotCalled(suite.T(), "FindProjectByID", mock.Anything, mock.Anything)
	suite.projectRepo.AssertExpectations(suite.T())
}

func (suite *ProjectServiceTestSuite) TestUpdateDeadline_DoneRejectedUnderLock() {
	ctx := context.Background()
	suite.projectRepo.On("FindProjectByIDForUpdate", ctx, "p-1").Run(func(mock.Arguments) {
		suite.True(suite.tx.active)
	}).Return(project(domain.ProjectDone, testNow), nil).Once()

	_, err := suite.service.UpdateDeadline(ctx, ownerActor, "p-1", testNow.AddDate(0, 1, 0))

	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.projectRepo.AssertNotCalled(suite.T(), "UpdateProjectDeadline", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ProjectServiceTestSuite) TestUpdateStatus_OverdueIsNotSettable() {
	_, err := suite.service.UpdateStatus(context.Background(), ownerActor, "p-1", domain.ProjectOverdue)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ProjectServiceTestSuite) TestUpdateStatus_PicPartnerMayUpdate() {
	ctx := context.Background()
	p := project(domain.ProjectTodo, testNow.AddDate(0, 0, -3))
	p.PicID = strPtr(mitraActor.UserID)
	suite.projectRepo.On("FindProjectByIDForUpdate", ctx, "p-1").Return(p, nil).Once()
	suite.projectRepo.On("UpdateProjectStatus", ctx, "p-1", domain.ProjectDone, testNow, mitraActor.UserID).Return(nil).Once()
	suite.auditRepo.On("SaveAuditLog", ctx, mock.MatchedBy(func(e domain.AuditLog) bool {
		return e.Action == domain.ActionProjectStatusChanged && e.Details == "OVERDUE -> DONE"
	})).Return(nil).Once()

	updated, err := suite.service.UpdateStatus(ctx, mitraActor, "p-1", domain.ProjectDone)

	suite.Require().NoError(err)
	suite.Equal(domain.ProjectDone, updated.Status)
	suite.auditRepo.AssertExpectations(suite.T())
}

func (suite *ProjectServiceTestSuite) TestUpdateStatus_OutOfScopePartner() {
	ctx := context.Background()
	p := project(domain.ProjectTodo, testNow)
	p.LeadID = strPtr("lead-1")
	suite.projectRepo.On("FindProjectByIDForUpdate", ctx, "p-1").Return(p, nil).Once()
	suite.leadRepo.On("FindLeadByID", ctx, "lead-1").Return(&domain.Lead{LeadID: "lead-1", MitraID: strPtr("mitra-2")}, nil).Once()

	_, err := suite.service.UpdateStatus(ctx, mitraActor, "p-1", domain.ProjectOnProgress)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

// --- UpdatePic / UpdateDeadline Tests ---
func (suite *ProjectServiceTestSuite) TestUpdatePic_DoneRejected() {
	ctx := context.Background()
	suite.projectRepo.On("FindProjectByIDForUpdate", ctx, "p-1").Return(project(domain.ProjectDone, testNow), nil).Once()

	_, err := suite.service.UpdatePic(ctx, ownerActor, "p-1", strPtr(mitraActor.UserID))
	suite.ErrorIs(err, apperrors.ErrInvalidState)
}

func (suite *ProjectServiceTestSuite) TestUpdatePic_ToActiveMitra() {
	ctx := context.Background()
	suite.projectRepo.On("FindProjectByIDForUpdate", ctx, "p-1").Return(project(domain.ProjectTodo, testNow), nil).Once()
	suite.userRepo.On("FindUserByID", ctx, mitraActor.UserID).Return(&domain.User{UserID: mitraActor.UserID, Name: "Sari", Role: domain.RoleMitra, IsActive: true}, nil).Once()
	suite.projectRepo.On("UpdateProjectPic", ctx, "p-1", strPtr(mitraActor.UserID), testNow, ownerActor.UserID).Return(nil).Once()
	suite.auditRepo.On("SaveAuditLog", ctx, auditAction(domain.ActionProjectPicChanged)).Return(nil).Once()

	updated, err := suite.service.UpdatePic(ctx, ownerActor, "p-1", strPtr(mitraActor.UserID))

	suite.Require().NoError(err)
	suite.Equal(mitraActor.UserID, *updated.PicID)
}

func (suite *ProjectServiceTestSuite) TestUpdatePic_PartnerForbidden() {
	_, err := suite.service.UpdatePic(context.Background(), mitraActor, "p-1", nil)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *ProjectServiceTestSuite) TestUpdateDeadline_Success() {
	ctx := context.Background()
	newDeadline := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	suite.projectRepo.On("FindProjectByIDForUpdate", ctx, "p-1").Return(project(domain.ProjectOnProgress, testNow), nil).Once()
	suite.projectRepo.On("UpdateProjectDeadline", ctx, "p-1", newDeadline, testNow, ownerActor.UserID).Return(nil).Once()
	suite.auditRepo.On("SaveAuditLog", ctx, mock.MatchedBy(func(e domain.AuditLog) bool {
		return e.Action == domain.ActionProjectDeadlineChanged && e.Details == "2024-03-10 -> 2024-05-01"
	})).Return(nil).Once()

	updated, err := suite.service.UpdateDeadline(ctx, ownerActor, "p-1", newDeadline)

	suite.Require().NoError(err)
	suite.True(updated.Deadline.Equal(newDeadline))
}

// --- CreateProject Tests ---
func (suite *ProjectServiceTestSuite) TestCreateProject_DefaultsDeadline() {
	ctx := context.Background()
	suite.projectRepo.On("SaveProject", ctx, mock.MatchedBy(func(p domain.Project) bool {
		return p.Status == domain.ProjectTodo && p.Deadline.Equal(time.Date(2024, time.April, 10, 0, 0, 0, 0, time.UTC)) && p.LeadID == nil
	})).Return(nil).Once()
	suite.auditRepo.On("SaveAuditLog", ctx, auditAction(domain.ActionProjectCreated)).Return(nil).Once()

	p, err := suite.service.CreateProject(ctx, ownerActor, dto.CreateProjectRequest{Name: "Landing page", ClientName: "CV Jaya"})

	suite.Require().NoError(err)
	suite.Equal("CV Jaya", p.ClientName)
	suite.projectRepo.AssertExpectations(suite.T())
}

// --- Read Tests ---
func (suite *ProjectServiceTestSuite) TestGetProjectDetail_IncludesFinance() {
	ctx := context.Background()
	p := project(domain.ProjectOnProgress, testNow.AddDate(0, 0, 5))
	suite.projectRepo.On("FindProjectByID", ctx, "p-1").Return(p, nil).Once()
	suite.reportRepo.On("ListProjectFinanceTotals", ctx, strPtr("p-1")).Return([]domain.ProjectFinanceTotals{{
		ProjectID: "p-1", Income: decimal.NewFromInt(10000000), Expense: decimal.NewFromInt(4000000),
	}}, nil).Once()
	suite.projectRepo.On("ListProjectNotes", ctx, "p-1").Return([]domain.Note{}, nil).Once()
	suite.auditRepo.On("ListAuditLogsForEntity", ctx, domain.EntityProject, "p-1").Return([]domain.AuditLog{}, nil).Once()

	detail, err := suite.service.GetProjectDetail(ctx, ownerActor, "p-1")

	suite.Require().NoError(err)
	suite.Equal(domain.ProjectOnProgress, detail.DisplayStatus)
	suite.True(detail.Finance.Profit.Equal(decimal.NewFromInt(6000000)))
	suite.True(detail.Finance.Margin.Equal(decimal.NewFromInt(60)))
}

func (suite *ProjectServiceTestSuite) TestGetProjectDetail_OutOfScopeIsNil() {
	ctx := context.Background()
	suite.projectRepo.On("FindProjectByID", ctx, "p-1").Return(project(domain.ProjectTodo, testNow), nil).Once()

	detail, err := suite.service.GetProjectDetail(ctx, mitraActor, "p-1")

	suite.NoError(err)
	suite.Nil(detail)
}

func (suite *ProjectServiceTestSuite) TestListProjects_DerivesOverdue() {
	ctx := context.Background()
	suite.projectRepo.On("ListProjects", ctx, mock.MatchedBy(func(f domain.ProjectFilter) bool {
		return f.ScopeUserID != nil && *f.ScopeUserID == mitraActor.UserID && f.Today.Equal(time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC))
	})).Return([]domain.Project{
		*project(domain.ProjectTodo, testNow.AddDate(0, 0, -1)),
		*project(domain.ProjectTodo, testNow),
	}, nil).Once()

	items, err := suite.service.ListProjects(ctx, mitraActor, domain.ProjectFilter{})

	suite.Require().NoError(err)
	suite.Require().Len(items, 2)
	suite.Equal(domain.ProjectOverdue, items[0].DisplayStatus)
	suite.Equal(domain.ProjectTodo, items[0].Status)
	suite.Equal(domain.ProjectTodo, items[1].DisplayStatus)
}

func TestProjectService(t *testing.T) {
	suite.Run(t, new(ProjectServiceTestSuite))
}
