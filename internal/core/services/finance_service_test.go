package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/velotrack/velotrack_backend/internal/apperrors"
	"github.com/velotrack/velotrack_backend/internal/core/domain"
	portssvc "github.com/velotrack/velotrack_backend/internal/core/ports/services"
	"github.com/velotrack/velotrack_backend/internal/core/services"
	"github.com/velotrack/velotrack_backend/internal/dto"
)

type FinanceServiceTestSuite struct {
	suite.Suite
	financeRepo *MockFinanceRepository
	projectRepo *MockProjectRepository
	auditRepo   *MockAuditRepository
	service     portssvc.FinanceSvcFacade
}

func (suite *FinanceServiceTestSuite) SetupTest() {
	suite.financeRepo = new(MockFinanceRepository)
	suite.projectRepo = new(MockProjectRepository)
	suite.auditRepo = new(MockAuditRepository)
	suite.service = services.NewFinanceService(&passThroughTx{}, suite.financeRepo, suite.projectRepo, suite.auditRepo, services.WithClock(fixedClock))
}

func (suite *FinanceServiceTestSuite) TestCreateIncome_Success() {
	ctx := context.Background()
	suite.projectRepo.On("FindProjectByID", ctx, "p-1").Return(&domain.Project{ProjectID: "p-1", Status: domain.ProjectDone}, nil).Once()
	suite.financeRepo.On("SaveIncome", ctx, mock.MatchedBy(func(i domain.Income) bool {
		return i.IncomeID != "" && i.Amount.Equal(decimal.NewFromInt(5000000)) &&
			i.Date.Equal(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC))
	})).Return(nil).Once()
	suite.auditRepo.On("SaveAuditLog", ctx, mock.MatchedBy(func(e domain.AuditLog) bool {
		return e.Action == domain.ActionIncomeCreated && e.Details == "DP Rp 5.000.000 for project p-1"
	})).Return(nil).Once()

	income, err := suite.service.CreateIncome(ctx, ownerActor, dto.IncomeRequest{
		ProjectID: "p-1", Date: "2024-03-01", Amount: decimal.NewFromInt(5000000), PaymentType: domain.PaymentDP,
	})

	suite.Require().NoError(err)
	suite.Equal(ownerActor.UserID, income.CreatedBy)
	suite.financeRepo.AssertExpectations(suite.T())
	suite.auditRepo.AssertExpectations(suite.T())
}

func (suite *FinanceServiceTestSuite) TestCreateIncome_NonPositiveAmount() {
	_, err := suite.service.CreateIncome(context.Background(), ownerActor, dto.IncomeRequest{
		ProjectID: "p-1", Date: "2024-03-01", Amount: decimal.Zero, PaymentType: domain.PaymentDP,
	})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *FinanceServiceTestSuite) TestCreateIncome_UnknownProject() {
	ctx := context.Background()
	suite.projectRepo.On("FindProjectByID", ctx, "p-x").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateIncome(ctx, ownerActor, dto.IncomeRequest{
		ProjectID: "p-x", Date: "2024-03-01", Amount: decimal.NewFromInt(1), PaymentType: domain.PaymentOther,
	})
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *FinanceServiceTestSuite) TestCreateIncome_PartnerForbidden() {
	_, err := suite.service.CreateIncome(context.Background(), mitraActor, dto.IncomeRequest{})
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *FinanceServiceTestSuite) TestCreateExpense_Overhead() {
	ctx := context.Background()
	suite.financeRepo.On("SaveExpense", ctx, mock.MatchedBy(func(e domain.Expense) bool {
		return e.ProjectID == nil && e.Category == "Hosting"
	})).Return(nil).Once()
	suite.auditRepo.On("SaveAuditLog", ctx, auditAction(domain.ActionExpenseCreated)).Return(nil).Once()

	expense, err := suite.service.CreateExpense(ctx, ownerActor, dto.ExpenseRequest{
		ProjectID: strPtr(""), Date: "2024-03-02", Amount: decimal.NewFromInt(250000), Category: " Hosting ",
	})

	suite.Require().NoError(err)
	suite.Nil(expense.ProjectID)
	suite.projectRepo.AssertNotCalled(suite.T(), "FindProjectByID", mock.Anything, mock.Anything)
}

func (suite *FinanceServiceTestSuite) TestUpdateExpense_AuditFailureAborts() {
	ctx := context.Background()
	existing := &domain.Expense{ExpenseID: "e-1", Amount: decimal.NewFromInt(100), Category: "Ads"}
	suite.financeRepo.On("FindExpenseByID", ctx, "e-1").Return(existing, nil).Once()
	suite.financeRepo.On("UpdateExpense", ctx, mock.Anything).Return(nil).Once()
	suite.auditRepo.On("SaveAuditLog", ctx, mock.Anything).Return(assert.AnError).Once()

	_, err := suite.service.UpdateExpense(ctx, ownerActor, "e-1", dto.ExpenseRequest{Date: "2024-03-02", Amount: decimal.NewFromInt(200), Category: "Ads"})

	suite.ErrorIs(err, assert.AnError)
}

func (suite *FinanceServiceTestSuite) TestDeleteIncome_NotFound() {
	ctx := context.Background()
	suite.financeRepo.On("FindIncomeByID", ctx, "i-x").Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.DeleteIncome(ctx, ownerActor, "i-x")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *FinanceServiceTestSuite) TestDeleteIncome_Success() {
	ctx := context.Background()
	suite.financeRepo.On("FindIncomeByID", ctx, "i-1").Return(&domain.Income{IncomeID: "i-1", ProjectID: "p-1", Amount: decimal.NewFromInt(10)}, nil).Once()
	suite.financeRepo.On("DeleteIncome", ctx, "i-1").Return(nil).Once()
	suite.auditRepo.On("SaveAuditLog", ctx, auditAction(domain.ActionIncomeDeleted)).Return(nil).Once()

	suite.NoError(suite.service.DeleteIncome(ctx, ownerActor, "i-1"))
	suite.financeRepo.AssertExpectations(suite.T())
}

func (suite *FinanceServiceTestSuite) TestListIncomes_ClampsLimit() {
	ctx := context.Background()
	suite.financeRepo.On("ListIncomes", ctx, mock.MatchedBy(func(f domain.FinanceFilter) bool {
		return f.Limit == 200 && f.Offset == 0
	})).Return([]domain.Income{}, nil).Once()

	_, err := suite.service.ListIncomes(ctx, domain.FinanceFilter{Limit: 1000, Offset: -5})
	suite.NoError(err)
	suite.financeRepo.AssertExpectations(suite.T())
}

func TestFinanceService(t *testing.T) {
	suite.Run(t, new(FinanceServiceTestSuite))
}
