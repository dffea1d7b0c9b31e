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

type ReconciliationServiceTestSuite struct {
	suite.Suite
	mockReconRepo   *MockReconciliationRepository
	mockAccountRepo *MockLedgerAccountRepository
	mockAuthorizer  *MockBusinessAuthorizer
	service         portssvc.ReconciliationSvcFacade

	businessID    string
	userID        string
	bankAccount   domain.LedgerAccount
	statementDate time.Time
	openRecon     domain.AccountReconciliation
}

func (suite *ReconciliationServiceTestSuite) SetupTest() {
	suite.mockReconRepo = new(MockReconciliationRepository)
	suite.mockAccountRepo = new(MockLedgerAccountRepository)
	suite.mockAuthorizer = new(MockBusinessAuthorizer)
	suite.service = services.NewReconciliationService(
		suite.mockReconRepo,
		suite.mockAccountRepo,
		suite.mockAuthorizer,
	)

	suite.businessID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.statementDate = time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	suite.bankAccount = domain.LedgerAccount{
		LedgerAccountID: uuid.NewString(),
		BusinessID:      suite.businessID,
		Name:            "HDFC Current Account",
		IsBankAccount:   true,
		IsActive:        true,
	}
	suite.openRecon = domain.AccountReconciliation{
		ReconciliationID:  uuid.NewString(),
		BusinessID:        suite.businessID,
		LedgerAccountID:   suite.bankAccount.LedgerAccountID,
		StatementDate:     suite.statementDate,
		StatementBalance:  decimal.NewFromInt(10000),
		AccountBalance:    decimal.NewFromInt(10250),
		ReconciledBalance: decimal.Zero,
	}
}

func (suite *ReconciliationServiceTestSuite) expectAuthorized(role domain.UserBusinessRole) {
	suite.mockAuthorizer.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.businessID, role).
		Return(nil).Once()
}

func (suite *ReconciliationServiceTestSuite) TestCreateReconciliation_Success() {
	ctx := context.Background()
	req := dto.CreateReconciliationRequest{
		LedgerAccountID:  suite.bankAccount.LedgerAccountID,
		StatementDate:    suite.statementDate,
		StatementBalance: decimal.NewFromInt(10000),
		Notes:            "June statement",
	}

	suite.expectAuthorized(domain.RoleMember)
	suite.mockAccountRepo.On("FindLedgerAccountByID", ctx, suite.bankAccount.LedgerAccountID).
		Return(&suite.bankAccount, nil).Once()
	suite.mockReconRepo.On("BookBalance", ctx, suite.bankAccount.LedgerAccountID, suite.statementDate).
		Return(decimal.NewFromInt(10250), nil).Once()
	suite.mockReconRepo.On("SaveReconciliation", ctx, mock.AnythingOfType("domain.AccountReconciliation")).
		Run(func(args mock.Arguments) {
			rec := args.Get(1).(domain.AccountReconciliation)
			suite.True(rec.AccountBalance.Equal(decimal.NewFromInt(10250)))
			suite.False(rec.IsCompleted)
			suite.Equal("June statement", rec.Notes)
		}).
		Return(nil).Once()

	rec, err := suite.service.CreateReconciliation(ctx, suite.businessID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(suite.bankAccount.LedgerAccountID, rec.LedgerAccountID)
	suite.mockReconRepo.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestCreateReconciliation_NonReconcilableAccount() {
	ctx := context.Background()
	expense := domain.LedgerAccount{
		LedgerAccountID: uuid.NewString(),
		BusinessID:      suite.businessID,
		Name:            "Office Rent",
		IsActive:        true,
	}
	req := dto.CreateReconciliationRequest{
		LedgerAccountID:  expense.LedgerAccountID,
		StatementDate:    suite.statementDate,
		StatementBalance: decimal.NewFromInt(10000),
	}

	suite.expectAuthorized(domain.RoleMember)
	suite.mockAccountRepo.On("FindLedgerAccountByID", ctx, expense.LedgerAccountID).
		Return(&expense, nil).Once()

	_, err := suite.service.CreateReconciliation(ctx, suite.businessID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorContains(err, services.ErrReconNotReconcilable.Error())
	suite.mockReconRepo.AssertNotCalled(suite.T(), "SaveReconciliation")
}

func (suite *ReconciliationServiceTestSuite) TestLinkEntries_Success() {
	ctx := context.Background()
	entryID := uuid.NewString()
	rec := suite.openRecon
	updated := rec
	updated.ReconciledBalance = decimal.NewFromInt(9800)

	suite.expectAuthorized(domain.RoleMember)
	suite.mockReconRepo.On("FindReconciliationByID", ctx, rec.ReconciliationID).
		Return(&rec, nil).Once()
	suite.mockReconRepo.On("ListUnreconciledEntries", ctx, suite.businessID, rec.LedgerAccountID, rec.StatementDate).
		Return([]domain.JournalEntry{{JournalEntryID: entryID, LedgerAccountID: rec.LedgerAccountID}}, nil).Once()
	suite.mockReconRepo.On("LinkEntries", ctx, mock.AnythingOfType("[]domain.ReconciliationItem")).
		Run(func(args mock.Arguments) {
			items := args.Get(1).([]domain.ReconciliationItem)
			suite.Require().Len(items, 1)
			suite.Equal(rec.ReconciliationID, items[0].ReconciliationID)
			suite.Equal(entryID, items[0].JournalEntryID)
			suite.Equal(suite.userID, items[0].LinkedBy)
		}).
		Return(nil).Once()
	suite.mockReconRepo.On("FindReconciliationByID", ctx, rec.ReconciliationID).
		Return(&updated, nil).Once()

	result, err := suite.service.LinkEntries(ctx, suite.businessID, rec.ReconciliationID,
		dto.LinkReconciliationEntriesRequest{JournalEntryIDs: []string{entryID}}, suite.userID)

	suite.Require().NoError(err)
	suite.True(result.ReconciledBalance.Equal(decimal.NewFromInt(9800)))
	suite.mockReconRepo.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestLinkEntries_CompletedReconciliation() {
	ctx := context.Background()
	rec := suite.openRecon
	rec.IsCompleted = true

	suite.expectAuthorized(domain.RoleMember)
	suite.mockReconRepo.On("FindReconciliationByID", ctx, rec.ReconciliationID).
		Return(&rec, nil).Once()

	_, err := suite.service.LinkEntries(ctx, suite.businessID, rec.ReconciliationID,
		dto.LinkReconciliationEntriesRequest{JournalEntryIDs: []string{uuid.NewString()}}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.ErrorContains(err, services.ErrReconCompleted.Error())
	suite.mockReconRepo.AssertNotCalled(suite.T(), "LinkEntries")
}

func (suite *ReconciliationServiceTestSuite) TestLinkEntries_EntryAlreadyLinked() {
	ctx := context.Background()
	entryID := uuid.NewString()
	rec := suite.openRecon

	suite.expectAuthorized(domain.RoleMember)
	suite.mockReconRepo.On("FindReconciliationByID", ctx, rec.ReconciliationID).
		Return(&rec, nil).Once()
	suite.mockReconRepo.On("ListUnreconciledEntries", ctx, suite.businessID, rec.LedgerAccountID, rec.StatementDate).
		Return([]domain.JournalEntry{}, nil).Once()
	suite.mockReconRepo.On("IsEntryLinked", ctx, entryID).
		Return(true, false, nil).Once()

	_, err := suite.service.LinkEntries(ctx, suite.businessID, rec.ReconciliationID,
		dto.LinkReconciliationEntriesRequest{JournalEntryIDs: []string{entryID}}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.ErrorContains(err, services.ErrReconEntryLinked.Error())
}

func (suite *ReconciliationServiceTestSuite) TestLinkEntries_EntryOfAnotherAccount() {
	ctx := context.Background()
	entryID := uuid.NewString()
	rec := suite.openRecon

	suite.expectAuthorized(domain.RoleMember)
	suite.mockReconRepo.On("FindReconciliationByID", ctx, rec.ReconciliationID).
		Return(&rec, nil).Once()
	suite.mockReconRepo.On("ListUnreconciledEntries", ctx, suite.businessID, rec.LedgerAccountID, rec.StatementDate).
		Return([]domain.JournalEntry{}, nil).Once()
	suite.mockReconRepo.On("IsEntryLinked", ctx, entryID).
		Return(false, false, nil).Once()
	suite.mockReconRepo.On("ListUnreconciledEntries", ctx, suite.businessID, rec.LedgerAccountID, rec.StatementDate.AddDate(100, 0, 0)).
		Return([]domain.JournalEntry{}, nil).Once()

	_, err := suite.service.LinkEntries(ctx, suite.businessID, rec.ReconciliationID,
		dto.LinkReconciliationEntriesRequest{JournalEntryIDs: []string{entryID}}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorContains(err, services.ErrReconEntryNotOfAcct.Error())
	suite.mockReconRepo.AssertNotCalled(suite.T(), "LinkEntries")
}

func (suite *ReconciliationServiceTestSuite) TestLinkEntries_EntryAfterStatementDate() {
	ctx := context.Background()
	entryID := uuid.NewString()
	rec := suite.openRecon

	suite.expectAuthorized(domain.RoleMember)
	suite.mockReconRepo.On("FindReconciliationByID", ctx, rec.ReconciliationID).
		Return(&rec, nil).Once()
	suite.mockReconRepo.On("ListUnreconciledEntries", ctx, suite.businessID, rec.LedgerAccountID, rec.StatementDate).
		Return([]domain.JournalEntry{}, nil).Once()
	suite.mockReconRepo.On("IsEntryLinked", ctx, entryID).
		Return(false, false, nil).Once()
	suite.mockReconRepo.On("ListUnreconciledEntries", ctx, suite.businessID, rec.LedgerAccountID, rec.StatementDate.AddDate(100, 0, 0)).
		Return([]domain.JournalEntry{{JournalEntryID: entryID, LedgerAccountID: rec.LedgerAccountID, Date: rec.StatementDate.AddDate(0, 0, 3)}}, nil).Once()

	_, err := suite.service.LinkEntries(ctx, suite.businessID, rec.ReconciliationID,
		dto.LinkReconciliationEntriesRequest{JournalEntryIDs: []string{entryID}}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorContains(err, services.ErrReconEntryAfterStmt.Error())
	suite.mockReconRepo.AssertNotCalled(suite.T(), "LinkEntries")
}

func (suite *ReconciliationServiceTestSuite) TestLinkEntries_OneBadEntryWritesNothing() {
	ctx := context.Background()
	goodID := uuid.NewString()
	badID := uuid.NewString()
	rec := suite.openRecon

	suite.expectAuthorized(domain.RoleMember)
	suite.mockReconRepo.On("FindReconciliationByID", ctx, rec.ReconciliationID).
		Return(&rec, nil).Once()
	suite.mockReconRepo.On("ListUnreconciledEntries", ctx, suite.businessID, rec.LedgerAccountID, rec.StatementDate).
		Return([]domain.JournalEntry{{JournalEntryID: goodID, LedgerAccountID: rec.LedgerAccountID}}, nil).Once()
	suite.mockReconRepo.On("IsEntryLinked", ctx, badID).
		Return(false, false, nil).Once()
	suite.mockReconRepo.On("ListUnreconciledEntries", ctx, suite.businessID, rec.LedgerAccountID, rec.StatementDate.AddDate(100, 0, 0)).
		Return([]domain.JournalEntry{}, nil).Once()

	_, err := suite.service.LinkEntries(ctx, suite.businessID, rec.ReconciliationID,
		dto.LinkReconciliationEntriesRequest{JournalEntryIDs: []string{goodID, badID}}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockReconRepo.AssertNotCalled(suite.T(), "LinkEntries")
}

func (suite *ReconciliationServiceTestSuite) TestLinkEntries_ConcurrentLinkSurfacesConflict() {
	ctx := context.Background()
	entryID := uuid.NewString()
	rec := suite.openRecon

	suite.expectAuthorized(domain.RoleMember)
	suite.mockReconRepo.On("FindReconciliationByID", ctx, rec.ReconciliationID).
		Return(&rec, nil).Once()
	suite.mockReconRepo.On("ListUnreconciledEntries", ctx, suite.businessID, rec.LedgerAccountID, rec.StatementDate).
		Return([]domain.JournalEntry{{JournalEntryID: entryID, LedgerAccountID: rec.LedgerAccountID}}, nil).Once()
	suite.mockReconRepo.On("LinkEntries", ctx, mock.AnythingOfType("[]domain.ReconciliationItem")).
		Return(apperrors.NewDuplicateError("a journal entry in the batch is already linked")).Once()

	_, err := suite.service.LinkEntries(ctx, suite.businessID, rec.ReconciliationID,
		dto.LinkReconciliationEntriesRequest{JournalEntryIDs: []string{entryID}}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.ErrorContains(err, services.ErrReconEntryLinked.Error())
}

func (suite *ReconciliationServiceTestSuite) TestCompleteReconciliation_InBalance() {
	ctx := context.Background()
	rec := suite.openRecon
	rec.ReconciledBalance = decimal.NewFromFloat(9999.995)
	completed := rec
	completed.IsCompleted = true

	suite.expectAuthorized(domain.RoleMember)
	suite.mockReconRepo.On("FindReconciliationByID", ctx, rec.ReconciliationID).
		Return(&rec, nil).Once()
	suite.mockReconRepo.On("MarkCompleted", ctx, rec.ReconciliationID, suite.userID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()
	suite.mockReconRepo.On("FindReconciliationByID", ctx, rec.ReconciliationID).
		Return(&completed, nil).Once()

	result, err := suite.service.CompleteReconciliation(ctx, suite.businessID, rec.ReconciliationID,
		dto.CompleteReconciliationRequest{}, suite.userID)

	suite.Require().NoError(err)
	suite.True(result.IsCompleted)
	suite.mockReconRepo.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestCompleteReconciliation_OutOfBalance() {
	ctx := context.Background()
	rec := suite.openRecon
	rec.ReconciledBalance = decimal.NewFromInt(9800)

	suite.expectAuthorized(domain.RoleMember)
	suite.mockReconRepo.On("FindReconciliationByID", ctx, rec.ReconciliationID).
		Return(&rec, nil).Once()

	_, err := suite.service.CompleteReconciliation(ctx, suite.businessID, rec.ReconciliationID,
		dto.CompleteReconciliationRequest{}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.ErrorContains(err, services.ErrReconOutOfBalance.Error())
	suite.mockReconRepo.AssertNotCalled(suite.T(), "MarkCompleted")
}

func (suite *ReconciliationServiceTestSuite) TestCompleteReconciliation_AllowDifference() {
	ctx := context.Background()
	rec := suite.openRecon
	rec.ReconciledBalance = decimal.NewFromInt(9800)
	completed := rec
	completed.IsCompleted = true

	suite.expectAuthorized(domain.RoleMember)
	suite.mockReconRepo.On("FindReconciliationByID", ctx, rec.ReconciliationID).
		Return(&rec, nil).Once()
	suite.mockReconRepo.On("MarkCompleted", ctx, rec.ReconciliationID, suite.userID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()
	suite.mockReconRepo.On("FindReconciliationByID", ctx, rec.ReconciliationID).
		Return(&completed, nil).Once()

	result, err := suite.service.CompleteReconciliation(ctx, suite.businessID, rec.ReconciliationID,
		dto.CompleteReconciliationRequest{AllowDifference: true}, suite.userID)

	suite.Require().NoError(err)
	suite.True(result.IsCompleted)
}

func (suite *ReconciliationServiceTestSuite) TestReopenReconciliation_RequiresAdmin() {
	ctx := context.Background()
	rec := suite.openRecon
	rec.IsCompleted = true

	suite.mockAuthorizer.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.businessID, domain.RoleAdmin).
		Return(apperrors.ErrForbidden).Once()

	_, err := suite.service.ReopenReconciliation(ctx, suite.businessID, rec.ReconciliationID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockReconRepo.AssertNotCalled(suite.T(), "MarkReopened")
}

func (suite *ReconciliationServiceTestSuite) TestReopenReconciliation_NotCompleted() {
	ctx := context.Background()
	rec := suite.openRecon

	suite.mockAuthorizer.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.businessID, domain.RoleAdmin).
		Return(nil).Once()
	suite.mockReconRepo.On("FindReconciliationByID", ctx, rec.ReconciliationID).
		Return(&rec, nil).Once()

	_, err := suite.service.ReopenReconciliation(ctx, suite.businessID, rec.ReconciliationID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.ErrorContains(err, services.ErrReconNotCompleted.Error())
}

func (suite *ReconciliationServiceTestSuite) TestReopenReconciliation_Success() {
	ctx := context.Background()
	rec := suite.openRecon
	rec.IsCompleted = true
	reopened := suite.openRecon

	suite.mockAuthorizer.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.businessID, domain.RoleAdmin).
		Return(nil).Once()
	suite.mockReconRepo.On("FindReconciliationByID", ctx, rec.ReconciliationID).
		Return(&rec, nil).Once()
	suite.mockReconRepo.On("MarkReopened", ctx, rec.ReconciliationID, suite.userID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()
	suite.mockReconRepo.On("FindReconciliationByID", ctx, rec.ReconciliationID).
		Return(&reopened, nil).Once()

	result, err := suite.service.ReopenReconciliation(ctx, suite.businessID, rec.ReconciliationID, suite.userID)

	suite.Require().NoError(err)
	suite.False(result.IsCompleted)
	suite.mockReconRepo.AssertExpectations(suite.T())
}

func TestReconciliationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReconciliationServiceTestSuite))
}
