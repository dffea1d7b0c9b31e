package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/bizledger/bizledger_app/internal/apperrors"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/core/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type FinancialYearServiceTestSuite struct {
	suite.Suite
	mockFYRepo     *MockFinancialYearRepository
	mockAuthorizer *MockBusinessAuthorizer
	service        portssvc.FinancialYearSvcFacade

	businessID string
	userID     string
	existing   domain.FinancialYear
}

func (suite *FinancialYearServiceTestSuite) SetupTest() {
	suite.mockFYRepo = new(MockFinancialYearRepository)
	suite.mockAuthorizer = new(MockBusinessAuthorizer)
	suite.service = services.NewFinancialYearService(suite.mockFYRepo, suite.mockAuthorizer)

	suite.businessID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.existing = domain.FinancialYear{
		FinancialYearID: uuid.NewString(),
		BusinessID:      suite.businessID,
		Name:            "FY 2025-26",
		StartDate:       time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		EndDate:         time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		IsCurrent:       true,
	}
}

func (suite *FinancialYearServiceTestSuite) expectAdmin() {
	suite.mockAuthorizer.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.businessID, domain.RoleAdmin).
		Return(nil).Once()
}

func (suite *FinancialYearServiceTestSuite) TestCreateFinancialYear_FirstYearBecomesCurrent() {
	ctx := context.Background()
	req := dto.CreateFinancialYearRequest{
		Name:      "FY 2025-26",
		StartDate: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
	}

	suite.expectAdmin()
	suite.mockFYRepo.On("ListFinancialYears", ctx, suite.businessID).
		Return([]domain.FinancialYear{}, nil).Once()
	suite.mockFYRepo.On("SaveFinancialYear", ctx, mock.AnythingOfType("domain.FinancialYear")).
		Run(func(args mock.Arguments) {
			fy := args.Get(1).(domain.FinancialYear)
			suite.True(fy.IsCurrent)
			suite.False(fy.IsLocked)
		}).
		Return(nil).Once()

	fy, err := suite.service.CreateFinancialYear(ctx, suite.businessID, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(fy.IsCurrent)
	suite.mockFYRepo.AssertExpectations(suite.T())
}

func (suite *FinancialYearServiceTestSuite) TestCreateFinancialYear_SecondYearNotCurrent() {
	ctx := context.Background()
	req := dto.CreateFinancialYearRequest{
		Name:      "FY 2026-27",
		StartDate: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2027, 3, 31, 0, 0, 0, 0, time.UTC),
	}

	suite.expectAdmin()
	suite.mockFYRepo.On("ListFinancialYears", ctx, suite.businessID).
		Return([]domain.FinancialYear{suite.existing}, nil).Once()
	suite.mockFYRepo.On("SaveFinancialYear", ctx, mock.AnythingOfType("domain.FinancialYear")).
		Run(func(args mock.Arguments) {
			fy := args.Get(1).(domain.FinancialYear)
			suite.False(fy.IsCurrent)
		}).
		Return(nil).Once()

	fy, err := suite.service.CreateFinancialYear(ctx, suite.businessID, req, suite.userID)

	suite.Require().NoError(err)
	suite.False(fy.IsCurrent)
}

func (suite *FinancialYearServiceTestSuite) TestCreateFinancialYear_Overlap() {
	ctx := context.Background()
	req := dto.CreateFinancialYearRequest{
		Name:      "Calendar 2026",
		StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
	}

	suite.expectAdmin()
	suite.mockFYRepo.On("ListFinancialYears", ctx, suite.businessID).
		Return([]domain.FinancialYear{suite.existing}, nil).Once()

	_, err := suite.service.CreateFinancialYear(ctx, suite.businessID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.ErrorContains(err, services.ErrYearOverlap.Error())
	suite.mockFYRepo.AssertNotCalled(suite.T(), "SaveFinancialYear")
}

func (suite *FinancialYearServiceTestSuite) TestCreateFinancialYear_InvertedDates() {
	ctx := context.Background()
	req := dto.CreateFinancialYearRequest{
		Name:      "Backwards",
		StartDate: time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
	}

	suite.expectAdmin()

	_, err := suite.service.CreateFinancialYear(ctx, suite.businessID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorContains(err, services.ErrYearDatesInverted.Error())
}

func (suite *FinancialYearServiceTestSuite) TestLockFinancialYear_Success() {
	ctx := context.Background()

	suite.expectAdmin()
	suite.mockFYRepo.On("FindFinancialYearByID", ctx, suite.existing.FinancialYearID).
		Return(&suite.existing, nil).Once()
	suite.mockFYRepo.On("SetFinancialYearLocked", ctx, suite.existing.FinancialYearID, true, suite.userID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	err := suite.service.LockFinancialYear(ctx, suite.businessID, suite.existing.FinancialYearID, suite.userID)

	suite.Require().NoError(err)
	suite.mockFYRepo.AssertExpectations(suite.T())
}

func (suite *FinancialYearServiceTestSuite) TestLockFinancialYear_AlreadyLockedIsNoOp() {
	ctx := context.Background()
	locked := suite.existing
	locked.IsLocked = true

	suite.expectAdmin()
	suite.mockFYRepo.On("FindFinancialYearByID", ctx, locked.FinancialYearID).
		Return(&locked, nil).Once()

	err := suite.service.LockFinancialYear(ctx, suite.businessID, locked.FinancialYearID, suite.userID)

	suite.Require().NoError(err)
	suite.mockFYRepo.AssertNotCalled(suite.T(), "SetFinancialYearLocked")
}

func (suite *FinancialYearServiceTestSuite) TestSetCurrentFinancialYear_OtherBusinessHidden() {
	ctx := context.Background()
	foreign := suite.existing
	foreign.BusinessID = uuid.NewString()

	suite.expectAdmin()
	suite.mockFYRepo.On("FindFinancialYearByID", ctx, foreign.FinancialYearID).
		Return(&foreign, nil).Once()

	err := suite.service.SetCurrentFinancialYear(ctx, suite.businessID, foreign.FinancialYearID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockFYRepo.AssertNotCalled(suite.T(), "SetCurrentFinancialYear")
}

func TestFinancialYearServiceTestSuite(t *testing.T) {
	suite.Run(t, new(FinancialYearServiceTestSuite))
}
