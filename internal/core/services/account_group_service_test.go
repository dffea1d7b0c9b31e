package services_test

import (
	"context"
	"testing"

	"github.com/bizledger/bizledger_app/internal/apperrors"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/core/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AccountGroupServiceTestSuite struct {
	suite.Suite
	mockGroupRepo   *MockAccountGroupRepository
	mockAccountRepo *MockLedgerAccountRepository
	mockAuthorizer  *MockBusinessAuthorizer
	service         portssvc.AccountGroupSvcFacade

	businessID string
	userID     string
	rootGroup  domain.AccountGroup
}

func (suite *AccountGroupServiceTestSuite) SetupTest() {
	suite.mockGroupRepo = new(MockAccountGroupRepository)
	suite.mockAccountRepo = new(MockLedgerAccountRepository)
	suite.mockAuthorizer = new(MockBusinessAuthorizer)
	suite.service = services.NewAccountGroupService(
		suite.mockGroupRepo,
		suite.mockAccountRepo,
		suite.mockAuthorizer,
	)

	suite.businessID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.rootGroup = domain.AccountGroup{
		AccountGroupID: uuid.NewString(),
		BusinessID:     suite.businessID,
		Name:           "Current Assets",
		Nature:         domain.NatureAssets,
	}
}

func (suite *AccountGroupServiceTestSuite) expectAdmin() {
	suite.mockAuthorizer.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.businessID, domain.RoleAdmin).
		Return(nil).Once()
}

func (suite *AccountGroupServiceTestSuite) TestCreateAccountGroup_RootWithNature() {
	ctx := context.Background()
	req := dto.CreateAccountGroupRequest{
		Name:   "Fixed Assets",
		Nature: domain.NatureAssets,
	}

	suite.expectAdmin()
	suite.mockGroupRepo.On("SaveAccountGroup", ctx, mock.AnythingOfType("domain.AccountGroup")).
		Run(func(args mock.Arguments) {
			group := args.Get(1).(domain.AccountGroup)
			suite.Equal(domain.NatureAssets, group.Nature)
			suite.Nil(group.ParentGroupID)
		}).
		Return(nil).Once()

	group, err := suite.service.CreateAccountGroup(ctx, suite.businessID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("Fixed Assets", group.Name)
	suite.mockGroupRepo.AssertExpectations(suite.T())
}

func (suite *AccountGroupServiceTestSuite) TestCreateAccountGroup_RootWithoutNature() {
	ctx := context.Background()
	req := dto.CreateAccountGroupRequest{Name: "Mystery Group"}

	suite.expectAdmin()

	_, err := suite.service.CreateAccountGroup(ctx, suite.businessID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorContains(err, services.ErrGroupNatureRequired.Error())
	suite.mockGroupRepo.AssertNotCalled(suite.T(), "SaveAccountGroup")
}

func (suite *AccountGroupServiceTestSuite) TestCreateAccountGroup_ChildInheritsNature() {
	ctx := context.Background()
	req := dto.CreateAccountGroupRequest{
		Name:          "Bank Accounts",
		ParentGroupID: &suite.rootGroup.AccountGroupID,
		// Even a mismatching nature on the request is overridden by the parent
		Nature: domain.NatureIncome,
	}

	suite.expectAdmin()
	suite.mockGroupRepo.On("FindAccountGroupByID", ctx, suite.rootGroup.AccountGroupID).
		Return(&suite.rootGroup, nil).Once()
	suite.mockGroupRepo.On("SaveAccountGroup", ctx, mock.AnythingOfType("domain.AccountGroup")).
		Run(func(args mock.Arguments) {
			group := args.Get(1).(domain.AccountGroup)
			suite.Equal(domain.NatureAssets, group.Nature)
		}).
		Return(nil).Once()

	group, err := suite.service.CreateAccountGroup(ctx, suite.businessID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.NatureAssets, group.Nature)
}

func (suite *AccountGroupServiceTestSuite) TestUpdateAccountGroup_ReparentCycle() {
	ctx := context.Background()
	child := domain.AccountGroup{
		AccountGroupID: uuid.NewString(),
		BusinessID:     suite.businessID,
		Name:           "Bank Accounts",
		ParentGroupID:  &suite.rootGroup.AccountGroupID,
		Nature:         domain.NatureAssets,
	}
	req := dto.UpdateAccountGroupRequest{ParentGroupID: &child.AccountGroupID}

	suite.expectAdmin()
	suite.mockGroupRepo.On("FindAccountGroupByID", ctx, suite.rootGroup.AccountGroupID).
		Return(&suite.rootGroup, nil).Once()
	suite.mockGroupRepo.On("FindAccountGroupByID", ctx, child.AccountGroupID).
		Return(&child, nil).Once()
	// Walking up from the proposed parent reaches the group being moved
	suite.mockGroupRepo.On("FindAccountGroupByID", ctx, suite.rootGroup.AccountGroupID).
		Return(&suite.rootGroup, nil).Once()

	_, err := suite.service.UpdateAccountGroup(ctx, suite.businessID, suite.rootGroup.AccountGroupID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorContains(err, services.ErrGroupCycle.Error())
	suite.mockGroupRepo.AssertNotCalled(suite.T(), "UpdateAccountGroup")
}

func (suite *AccountGroupServiceTestSuite) TestUpdateAccountGroup_ReparentNatureMismatch() {
	ctx := context.Background()
	incomeRoot := domain.AccountGroup{
		AccountGroupID: uuid.NewString(),
		BusinessID:     suite.businessID,
		Name:           "Direct Income",
		Nature:         domain.NatureIncome,
	}
	child := domain.AccountGroup{
		AccountGroupID: uuid.NewString(),
		BusinessID:     suite.businessID,
		Name:           "Bank Accounts",
		ParentGroupID:  &suite.rootGroup.AccountGroupID,
		Nature:         domain.NatureAssets,
	}
	req := dto.UpdateAccountGroupRequest{ParentGroupID: &incomeRoot.AccountGroupID}

	suite.expectAdmin()
	suite.mockGroupRepo.On("FindAccountGroupByID", ctx, child.AccountGroupID).
		Return(&child, nil).Once()
	suite.mockGroupRepo.On("FindAccountGroupByID", ctx, incomeRoot.AccountGroupID).
		Return(&incomeRoot, nil).Once()

	_, err := suite.service.UpdateAccountGroup(ctx, suite.businessID, child.AccountGroupID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorContains(err, services.ErrGroupNatureChange.Error())
}

func (suite *AccountGroupServiceTestSuite) TestDeleteAccountGroup_SystemGroup() {
	ctx := context.Background()
	system := suite.rootGroup
	system.IsSystem = true

	suite.expectAdmin()
	suite.mockGroupRepo.On("FindAccountGroupByID", ctx, system.AccountGroupID).
		Return(&system, nil).Once()

	err := suite.service.DeleteAccountGroup(ctx, suite.businessID, system.AccountGroupID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.ErrorContains(err, services.ErrGroupIsSystem.Error())
}

func (suite *AccountGroupServiceTestSuite) TestDeleteAccountGroup_BlockedByAccounts() {
	ctx := context.Background()

	suite.expectAdmin()
	suite.mockGroupRepo.On("FindAccountGroupByID", ctx, suite.rootGroup.AccountGroupID).
		Return(&suite.rootGroup, nil).Once()
	suite.mockGroupRepo.On("ListAccountGroups", ctx, suite.businessID).
		Return([]domain.AccountGroup{suite.rootGroup}, nil).Once()
	suite.mockAccountRepo.On("ListLedgerAccounts", ctx, suite.businessID, false).
		Return([]domain.LedgerAccount{{
			LedgerAccountID: uuid.NewString(),
			BusinessID:      suite.businessID,
			AccountGroupID:  suite.rootGroup.AccountGroupID,
		}}, nil).Once()

	err := suite.service.DeleteAccountGroup(ctx, suite.businessID, suite.rootGroup.AccountGroupID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorContains(err, services.ErrGroupNotEmpty.Error())
	suite.mockGroupRepo.AssertNotCalled(suite.T(), "DeleteAccountGroup")
}

func (suite *AccountGroupServiceTestSuite) TestDeleteAccountGroup_Success() {
	ctx := context.Background()

	suite.expectAdmin()
	suite.mockGroupRepo.On("FindAccountGroupByID", ctx, suite.rootGroup.AccountGroupID).
		Return(&suite.rootGroup, nil).Once()
	suite.mockGroupRepo.On("ListAccountGroups", ctx, suite.businessID).
		Return([]domain.AccountGroup{suite.rootGroup}, nil).Once()
	suite.mockAccountRepo.On("ListLedgerAccounts", ctx, suite.businessID, false).
		Return([]domain.LedgerAccount{}, nil).Once()
	suite.mockGroupRepo.On("DeleteAccountGroup", ctx, suite.rootGroup.AccountGroupID).
		Return(nil).Once()

	err := suite.service.DeleteAccountGroup(ctx, suite.businessID, suite.rootGroup.AccountGroupID, suite.userID)

	suite.Require().NoError(err)
	suite.mockGroupRepo.AssertExpectations(suite.T())
}

func TestAccountGroupServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountGroupServiceTestSuite))
}
