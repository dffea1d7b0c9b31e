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
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type VoucherServiceTestSuite struct {
	suite.Suite
	mockVoucherRepo *MockVoucherRepository
	mockTypeRepo    *MockVoucherTypeRepository
	mockFYRepo      *MockFinancialYearRepository
	mockAccountRepo *MockLedgerAccountRepository
	mockCCRepo      *MockCostCenterRepository
	mockPartyRepo   *MockPartyRepository
	mockReconRepo   *MockReconciliationRepository
	mockAuthorizer  *MockBusinessAuthorizer
	service         portssvc.VoucherSvcFacade

	businessID string
	userID     string
	cashID     string
	salesID    string
	vtAuto     domain.VoucherType
	vtManual   domain.VoucherType
	openYear   domain.FinancialYear
	accounts   map[string]domain.LedgerAccount
}

func (suite *VoucherServiceTestSuite) SetupTest() {
	suite.mockVoucherRepo = new(MockVoucherRepository)
	suite.mockTypeRepo = new(MockVoucherTypeRepository)
	suite.mockFYRepo = new(MockFinancialYearRepository)
	suite.mockAccountRepo = new(MockLedgerAccountRepository)
	suite.mockCCRepo = new(MockCostCenterRepository)
	suite.mockPartyRepo = new(MockPartyRepository)
	suite.mockReconRepo = new(MockReconciliationRepository)
	suite.mockAuthorizer = new(MockBusinessAuthorizer)
	suite.service = services.NewVoucherService(
		suite.mockVoucherRepo,
		suite.mockTypeRepo,
		suite.mockFYRepo,
		suite.mockAccountRepo,
		suite.mockCCRepo,
		suite.mockPartyRepo,
		suite.mockReconRepo,
		suite.mockAuthorizer,
	)

	suite.businessID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.cashID = uuid.NewString()
	suite.salesID = uuid.NewString()

	suite.vtAuto = domain.VoucherType{
		VoucherTypeID:  uuid.NewString(),
		BusinessID:     suite.businessID,
		Code:           "RCPT",
		Name:           "Receipt",
		Nature:         domain.NatureReceipt,
		Prefix:         "RC",
		AutoNumbering:  true,
		StartingNumber: 1,
		IsSystem:       true,
	}
	suite.vtManual = domain.VoucherType{
		VoucherTypeID:  uuid.NewString(),
		BusinessID:     suite.businessID,
		Code:           "JRNL",
		Name:           "Journal",
		Nature:         domain.NatureJournal,
		Prefix:         "JV",
		AutoNumbering:  false,
		StartingNumber: 1,
		IsSystem:       true,
	}
	suite.openYear = domain.FinancialYear{
		FinancialYearID: uuid.NewString(),
		BusinessID:      suite.businessID,
		Name:            "FY 2026-27",
		StartDate:       time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		EndDate:         time.Date(2027, 3, 31, 0, 0, 0, 0, time.UTC),
		IsCurrent:       true,
	}
	suite.accounts = map[string]domain.LedgerAccount{
		suite.cashID: {
			LedgerAccountID: suite.cashID,
			BusinessID:      suite.businessID,
			Name:            "Cash in Hand",
			IsCashAccount:   true,
			IsActive:        true,
		},
		suite.salesID: {
			LedgerAccountID: suite.salesID,
			BusinessID:      suite.businessID,
			Name:            "Sales",
			IsActive:        true,
		},
	}
}

func (suite *VoucherServiceTestSuite) balancedRequest() dto.CreateVoucherRequest {
	return dto.CreateVoucherRequest{
		VoucherTypeID: suite.vtAuto.VoucherTypeID,
		Date:          time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
		Narration:     "Cash sale",
		Items: []dto.VoucherItemRequest{
			{LedgerAccountID: suite.cashID, DebitAmount: decimal.NewFromInt(500)},
			{LedgerAccountID: suite.salesID, CreditAmount: decimal.NewFromInt(500)},
		},
	}
}

func (suite *VoucherServiceTestSuite) expectAuthorized(role domain.UserBusinessRole) {
	suite.mockAuthorizer.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.businessID, role).
		Return(nil).Once()
}

func (suite *VoucherServiceTestSuite) TestCreateVoucher_Success() {
	ctx := context.Background()
	req := suite.balancedRequest()

	suite.expectAuthorized(domain.RoleMember)
	suite.mockTypeRepo.On("FindVoucherTypeByID", ctx, suite.vtAuto.VoucherTypeID).
		Return(&suite.vtAuto, nil).Once()
	suite.mockAccountRepo.On("FindLedgerAccountsByIDs", ctx, []string{suite.cashID, suite.salesID}).
		Return(suite.accounts, nil).Once()
	suite.mockFYRepo.On("FindFinancialYearForDate", ctx, suite.businessID, req.Date).
		Return(&suite.openYear, nil).Once()
	suite.mockVoucherRepo.On("SaveVoucher", ctx, mock.AnythingOfType("domain.Voucher"), mock.AnythingOfType("[]domain.VoucherItem"), true).
		Run(func(args mock.Arguments) {
			v := args.Get(1).(domain.Voucher)
			suite.Equal(suite.openYear.FinancialYearID, v.FinancialYearID)
			suite.True(v.TotalAmount.Equal(decimal.NewFromInt(500)))
			suite.True(v.IsPosted)
			items := args.Get(2).([]domain.VoucherItem)
			suite.Len(items, 2)
			suite.Equal(1, items[0].Sequence)
			suite.Equal(2, items[1].Sequence)
		}).
		Return(&domain.Voucher{
			VoucherID:     uuid.NewString(),
			BusinessID:    suite.businessID,
			VoucherNumber: "RC-1",
			TotalAmount:   decimal.NewFromInt(500),
		}, nil).Once()

	voucher, err := suite.service.CreateVoucher(ctx, suite.businessID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("RC-1", voucher.VoucherNumber)
	suite.Len(voucher.Items, 2)
	suite.mockVoucherRepo.AssertExpectations(suite.T())
	suite.mockAuthorizer.AssertExpectations(suite.T())
}

func (suite *VoucherServiceTestSuite) TestCreateVoucher_Unbalanced() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Items[1].CreditAmount = decimal.NewFromInt(499)

	suite.expectAuthorized(domain.RoleMember)
	suite.mockTypeRepo.On("FindVoucherTypeByID", ctx, suite.vtAuto.VoucherTypeID).
		Return(&suite.vtAuto, nil).Once()

	_, err := suite.service.CreateVoucher(ctx, suite.businessID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorContains(err, services.ErrVoucherUnbalanced.Error())
	suite.mockVoucherRepo.AssertNotCalled(suite.T(), "SaveVoucher")
}

func (suite *VoucherServiceTestSuite) TestCreateVoucher_SingleItem() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Items = req.Items[:1]

	suite.expectAuthorized(domain.RoleMember)
	suite.mockTypeRepo.On("FindVoucherTypeByID", ctx, suite.vtAuto.VoucherTypeID).
		Return(&suite.vtAuto, nil).Once()

	_, err := suite.service.CreateVoucher(ctx, suite.businessID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorContains(err, services.ErrVoucherMinItems.Error())
}

func (suite *VoucherServiceTestSuite) TestCreateVoucher_SingleAccount() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Items[1].LedgerAccountID = suite.cashID

	suite.expectAuthorized(domain.RoleMember)
	suite.mockTypeRepo.On("FindVoucherTypeByID", ctx, suite.vtAuto.VoucherTypeID).
		Return(&suite.vtAuto, nil).Once()

	_, err := suite.service.CreateVoucher(ctx, suite.businessID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorContains(err, services.ErrVoucherMinAccounts.Error())
}

func (suite *VoucherServiceTestSuite) TestCreateVoucher_TwoSidedItem() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Items[0].CreditAmount = decimal.NewFromInt(1)

	suite.expectAuthorized(domain.RoleMember)
	suite.mockTypeRepo.On("FindVoucherTypeByID", ctx, suite.vtAuto.VoucherTypeID).
		Return(&suite.vtAuto, nil).Once()

	_, err := suite.service.CreateVoucher(ctx, suite.businessID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorContains(err, services.ErrVoucherItemTwoSided.Error())
}

func (suite *VoucherServiceTestSuite) TestCreateVoucher_LockedYear() {
	ctx := context.Background()
	req := suite.balancedRequest()
	lockedYear := suite.openYear
	lockedYear.IsLocked = true

	suite.expectAuthorized(domain.RoleMember)
	suite.mockTypeRepo.On("FindVoucherTypeByID", ctx, suite.vtAuto.VoucherTypeID).
		Return(&suite.vtAuto, nil).Once()
	suite.mockAccountRepo.On("FindLedgerAccountsByIDs", ctx, mock.Anything).
		Return(suite.accounts, nil).Once()
	suite.mockFYRepo.On("FindFinancialYearForDate", ctx, suite.businessID, req.Date).
		Return(&lockedYear, nil).Once()

	_, err := suite.service.CreateVoucher(ctx, suite.businessID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.ErrorContains(err, services.ErrVoucherYearLocked.Error())
	suite.mockVoucherRepo.AssertNotCalled(suite.T(), "SaveVoucher")
}

func (suite *VoucherServiceTestSuite) TestCreateVoucher_NoYearForDate() {
	ctx := context.Background()
	req := suite.balancedRequest()

	suite.expectAuthorized(domain.RoleMember)
	suite.mockTypeRepo.On("FindVoucherTypeByID", ctx, suite.vtAuto.VoucherTypeID).
		Return(&suite.vtAuto, nil).Once()
	suite.mockAccountRepo.On("FindLedgerAccountsByIDs", ctx, mock.Anything).
		Return(suite.accounts, nil).Once()
	suite.mockFYRepo.On("FindFinancialYearForDate", ctx, suite.businessID, req.Date).
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateVoucher(ctx, suite.businessID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorContains(err, services.ErrVoucherNoYear.Error())
}

func (suite *VoucherServiceTestSuite) TestCreateVoucher_NumberForbiddenForAutoType() {
	ctx := context.Background()
	req := suite.balancedRequest()
	number := "RC-99"
	req.VoucherNumber = &number

	suite.expectAuthorized(domain.RoleMember)
	suite.mockTypeRepo.On("FindVoucherTypeByID", ctx, suite.vtAuto.VoucherTypeID).
		Return(&suite.vtAuto, nil).Once()

	_, err := suite.service.CreateVoucher(ctx, suite.businessID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorContains(err, services.ErrVoucherNumberForbade.Error())
}

func (suite *VoucherServiceTestSuite) TestCreateVoucher_NumberRequiredForManualType() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.VoucherTypeID = suite.vtManual.VoucherTypeID

	suite.expectAuthorized(domain.RoleMember)
	suite.mockTypeRepo.On("FindVoucherTypeByID", ctx, suite.vtManual.VoucherTypeID).
		Return(&suite.vtManual, nil).Once()

	_, err := suite.service.CreateVoucher(ctx, suite.businessID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorContains(err, services.ErrVoucherNumberManual.Error())
}

func (suite *VoucherServiceTestSuite) TestCreateVoucher_InactiveAccount() {
	ctx := context.Background()
	req := suite.balancedRequest()
	inactive := suite.accounts[suite.salesID]
	inactive.IsActive = false
	accounts := map[string]domain.LedgerAccount{
		suite.cashID:  suite.accounts[suite.cashID],
		suite.salesID: inactive,
	}

	suite.expectAuthorized(domain.RoleMember)
	suite.mockTypeRepo.On("FindVoucherTypeByID", ctx, suite.vtAuto.VoucherTypeID).
		Return(&suite.vtAuto, nil).Once()
	suite.mockAccountRepo.On("FindLedgerAccountsByIDs", ctx, mock.Anything).
		Return(accounts, nil).Once()

	_, err := suite.service.CreateVoucher(ctx, suite.businessID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorContains(err, "inactive")
}

func (suite *VoucherServiceTestSuite) TestCreateVoucher_AuthorizationFailure() {
	ctx := context.Background()
	req := suite.balancedRequest()

	suite.mockAuthorizer.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.businessID, domain.RoleMember).
		Return(apperrors.ErrForbidden).Once()

	_, err := suite.service.CreateVoucher(ctx, suite.businessID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockTypeRepo.AssertNotCalled(suite.T(), "FindVoucherTypeByID")
}

func (suite *VoucherServiceTestSuite) TestCreateVoucher_DuplicateManualNumber() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.VoucherTypeID = suite.vtManual.VoucherTypeID
	number := "JV-7"
	req.VoucherNumber = &number

	suite.expectAuthorized(domain.RoleMember)
	suite.mockTypeRepo.On("FindVoucherTypeByID", ctx, suite.vtManual.VoucherTypeID).
		Return(&suite.vtManual, nil).Once()
	suite.mockAccountRepo.On("FindLedgerAccountsByIDs", ctx, mock.Anything).
		Return(suite.accounts, nil).Once()
	suite.mockFYRepo.On("FindFinancialYearForDate", ctx, suite.businessID, req.Date).
		Return(&suite.openYear, nil).Once()
	suite.mockVoucherRepo.On("SaveVoucher", ctx, mock.AnythingOfType("domain.Voucher"), mock.AnythingOfType("[]domain.VoucherItem"), false).
		Return(nil, apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateVoucher(ctx, suite.businessID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *VoucherServiceTestSuite) TestGetVoucherByID_OtherBusinessHidden() {
	ctx := context.Background()
	voucherID := uuid.NewString()
	foreign := &domain.Voucher{
		VoucherID:  voucherID,
		BusinessID: uuid.NewString(),
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.businessID, domain.RoleReadOnly).
		Return(nil).Once()
	suite.mockVoucherRepo.On("FindVoucherByID", ctx, voucherID).
		Return(foreign, nil).Once()

	_, err := suite.service.GetVoucherByID(ctx, suite.businessID, voucherID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *VoucherServiceTestSuite) TestDeleteVoucher_BlockedByCompletedReconciliation() {
	ctx := context.Background()
	voucherID := uuid.NewString()
	entryID := uuid.NewString()
	voucher := &domain.Voucher{
		VoucherID:       voucherID,
		BusinessID:      suite.businessID,
		FinancialYearID: suite.openYear.FinancialYearID,
		Date:            time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
	}

	suite.expectAuthorized(domain.RoleMember)
	suite.mockVoucherRepo.On("FindVoucherByID", ctx, voucherID).
		Return(voucher, nil).Once()
	suite.mockVoucherRepo.On("FindJournalEntriesByVoucherID", ctx, voucherID).
		Return([]domain.JournalEntry{{JournalEntryID: entryID, VoucherID: voucherID}}, nil).Once()
	suite.mockReconRepo.On("AnyEntryInCompletedReconciliation", ctx, []string{entryID}).
		Return(true, nil).Once()

	err := suite.service.DeleteVoucher(ctx, suite.businessID, voucherID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.ErrorContains(err, services.ErrVoucherReconciled.Error())
	suite.mockVoucherRepo.AssertNotCalled(suite.T(), "SoftDeleteVoucher")
}

func (suite *VoucherServiceTestSuite) TestDeleteVoucher_Success() {
	ctx := context.Background()
	voucherID := uuid.NewString()
	voucher := &domain.Voucher{
		VoucherID:       voucherID,
		BusinessID:      suite.businessID,
		FinancialYearID: suite.openYear.FinancialYearID,
		Date:            time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
	}

	suite.expectAuthorized(domain.RoleMember)
	suite.mockVoucherRepo.On("FindVoucherByID", ctx, voucherID).
		Return(voucher, nil).Once()
	suite.mockVoucherRepo.On("FindJournalEntriesByVoucherID", ctx, voucherID).
		Return([]domain.JournalEntry{}, nil).Once()
	suite.mockFYRepo.On("FindFinancialYearForDate", ctx, suite.businessID, voucher.Date).
		Return(&suite.openYear, nil).Once()
	suite.mockVoucherRepo.On("SoftDeleteVoucher", ctx, voucherID, suite.userID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	err := suite.service.DeleteVoucher(ctx, suite.businessID, voucherID, suite.userID)

	suite.Require().NoError(err)
	suite.mockVoucherRepo.AssertExpectations(suite.T())
}

func (suite *VoucherServiceTestSuite) TestUpdateVoucher_DateCannotCrossYear() {
	ctx := context.Background()
	voucherID := uuid.NewString()
	voucher := &domain.Voucher{
		VoucherID:       voucherID,
		BusinessID:      suite.businessID,
		FinancialYearID: suite.openYear.FinancialYearID,
		Date:            time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
	}
	newDate := time.Date(2027, 5, 1, 0, 0, 0, 0, time.UTC)

	suite.expectAuthorized(domain.RoleMember)
	suite.mockVoucherRepo.On("FindVoucherByID", ctx, voucherID).
		Return(voucher, nil).Once()
	suite.mockVoucherRepo.On("FindJournalEntriesByVoucherID", ctx, voucherID).
		Return([]domain.JournalEntry{}, nil).Once()
	suite.mockFYRepo.On("FindFinancialYearForDate", ctx, suite.businessID, voucher.Date).
		Return(&suite.openYear, nil).Once()

	_, err := suite.service.UpdateVoucher(ctx, suite.businessID, voucherID, dto.UpdateVoucherRequest{Date: &newDate}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockVoucherRepo.AssertNotCalled(suite.T(), "ReplaceVoucherItems")
}

func (suite *VoucherServiceTestSuite) TestUpdateVoucher_YearLockedDuringWrite() {
	ctx := context.Background()
	voucherID := uuid.NewString()
	voucher := &domain.Voucher{
		VoucherID:       voucherID,
		BusinessID:      suite.businessID,
		FinancialYearID: suite.openYear.FinancialYearID,
		Date:            time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
	}
	narration := "Adjusted narration"
	existingItems := []domain.VoucherItem{
		{VoucherItemID: uuid.NewString(), VoucherID: voucherID, LedgerAccountID: suite.cashID, DebitAmount: decimal.NewFromInt(500), Sequence: 1},
		{VoucherItemID: uuid.NewString(), VoucherID: voucherID, LedgerAccountID: suite.salesID, CreditAmount: decimal.NewFromInt(500), Sequence: 2},
	}

	suite.expectAuthorized(domain.RoleMember)
	suite.mockVoucherRepo.On("FindVoucherByID", ctx, voucherID).
		Return(voucher, nil).Once()
	suite.mockVoucherRepo.On("FindJournalEntriesByVoucherID", ctx, voucherID).
		Return([]domain.JournalEntry{}, nil).Once()
	suite.mockFYRepo.On("FindFinancialYearForDate", ctx, suite.businessID, voucher.Date).
		Return(&suite.openYear, nil).Once()
	suite.mockVoucherRepo.On("FindVoucherItems", ctx, voucherID).
		Return(existingItems, nil).Once()
	// The year was locked between the service check and the write; the
	// repository detects it inside the transaction
	suite.mockVoucherRepo.On("ReplaceVoucherItems", ctx, mock.AnythingOfType("domain.Voucher"), existingItems).
		Return(apperrors.NewConflictError("financial year "+suite.openYear.FinancialYearID+" is locked")).Once()

	_, err := suite.service.UpdateVoucher(ctx, suite.businessID, voucherID,
		dto.UpdateVoucherRequest{Narration: &narration}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func TestVoucherServiceTestSuite(t *testing.T) {
	suite.Run(t, new(VoucherServiceTestSuite))
}
