package services_test

import (
	"context"
	"time"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock BusinessAuthorizer ---

type MockBusinessAuthorizer struct {
	mock.Mock
}

var _ portssvc.BusinessAuthorizerSvc = (*MockBusinessAuthorizer)(nil)

func (m *MockBusinessAuthorizer) AuthorizeUserAction(ctx context.Context, userID, businessID string, requiredRole domain.UserBusinessRole) error {
	args := m.Called(ctx, userID, businessID, requiredRole)
	return args.Error(0)
}

// --- Mock VoucherRepository ---

type MockVoucherRepository struct {
	mock.Mock
}

var _ portsrepo.VoucherRepositoryWithTx = (*MockVoucherRepository)(nil)

func (m *MockVoucherRepository) FindVoucherByID(ctx context.Context, voucherID string) (*domain.Voucher, error) {
	args := m.Called(ctx, voucherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}

func (m *MockVoucherRepository) FindVoucherItems(ctx context.Context, voucherID string) ([]domain.VoucherItem, error) {
	args := m.Called(ctx, voucherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VoucherItem), args.Error(1)
}

func (m *MockVoucherRepository) ListVouchers(ctx context.Context, businessID string, filter portsrepo.ListVouchersFilter, limit int, nextToken *string) ([]domain.Voucher, *string, error) {
	args := m.Called(ctx, businessID, filter, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		v := args.Get(1).(string)
		token = &v
	}
	return args.Get(0).([]domain.Voucher), token, args.Error(2)
}

func (m *MockVoucherRepository) ListJournalEntriesByAccount(ctx context.Context, businessID, accountID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, businessID, accountID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		v := args.Get(1).(string)
		token = &v
	}
	return args.Get(0).([]domain.JournalEntry), token, args.Error(2)
}

func (m *MockVoucherRepository) FindJournalEntriesByVoucherID(ctx context.Context, voucherID string) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, voucherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockVoucherRepository) SaveVoucher(ctx context.Context, voucher domain.Voucher, items []domain.VoucherItem, assignNumber bool) (*domain.Voucher, error) {
	args := m.Called(ctx, voucher, items, assignNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}

func (m *MockVoucherRepository) ReplaceVoucherItems(ctx context.Context, voucher domain.Voucher, items []domain.VoucherItem) error {
	args := m.Called(ctx, voucher, items)
	return args.Error(0)
}

func (m *MockVoucherRepository) SoftDeleteVoucher(ctx context.Context, voucherID string, userID string, now time.Time) error {
	args := m.Called(ctx, voucherID, userID, now)
	return args.Error(0)
}

func (m *MockVoucherRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockVoucherRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockVoucherRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock VoucherTypeRepository ---

type MockVoucherTypeRepository struct {
	mock.Mock
}

var _ portsrepo.VoucherTypeRepositoryFacade = (*MockVoucherTypeRepository)(nil)

func (m *MockVoucherTypeRepository) FindVoucherTypeByID(ctx context.Context, voucherTypeID string) (*domain.VoucherType, error) {
	args := m.Called(ctx, voucherTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VoucherType), args.Error(1)
}

func (m *MockVoucherTypeRepository) FindVoucherTypeByCode(ctx context.Context, businessID, code string) (*domain.VoucherType, error) {
	args := m.Called(ctx, businessID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VoucherType), args.Error(1)
}

func (m *MockVoucherTypeRepository) ListVoucherTypes(ctx context.Context, businessID string) ([]domain.VoucherType, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VoucherType), args.Error(1)
}

func (m *MockVoucherTypeRepository) SaveVoucherType(ctx context.Context, vt domain.VoucherType) error {
	args := m.Called(ctx, vt)
	return args.Error(0)
}

func (m *MockVoucherTypeRepository) SaveVoucherTypes(ctx context.Context, vts []domain.VoucherType) error {
	args := m.Called(ctx, vts)
	return args.Error(0)
}

func (m *MockVoucherTypeRepository) UpdateVoucherType(ctx context.Context, vt domain.VoucherType) error {
	args := m.Called(ctx, vt)
	return args.Error(0)
}

// --- Mock FinancialYearRepository ---

type MockFinancialYearRepository struct {
	mock.Mock
}

var _ portsrepo.FinancialYearRepositoryFacade = (*MockFinancialYearRepository)(nil)

func (m *MockFinancialYearRepository) FindFinancialYearByID(ctx context.Context, financialYearID string) (*domain.FinancialYear, error) {
	args := m.Called(ctx, financialYearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialYear), args.Error(1)
}

func (m *MockFinancialYearRepository) FindFinancialYearForDate(ctx context.Context, businessID string, date time.Time) (*domain.FinancialYear, error) {
	args := m.Called(ctx, businessID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialYear), args.Error(1)
}

func (m *MockFinancialYearRepository) FindCurrentFinancialYear(ctx context.Context, businessID string) (*domain.FinancialYear, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialYear), args.Error(1)
}

func (m *MockFinancialYearRepository) ListFinancialYears(ctx context.Context, businessID string) ([]domain.FinancialYear, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FinancialYear), args.Error(1)
}

func (m *MockFinancialYearRepository) SaveFinancialYear(ctx context.Context, fy domain.FinancialYear) error {
	args := m.Called(ctx, fy)
	return args.Error(0)
}

func (m *MockFinancialYearRepository) SetCurrentFinancialYear(ctx context.Context, businessID, financialYearID string, updatedBy string, now time.Time) error {
	args := m.Called(ctx, businessID, financialYearID, updatedBy, now)
	return args.Error(0)
}

func (m *MockFinancialYearRepository) SetFinancialYearLocked(ctx context.Context, financialYearID string, locked bool, updatedBy string, now time.Time) error {
	args := m.Called(ctx, financialYearID, locked, updatedBy, now)
	return args.Error(0)
}

// --- Mock LedgerAccountRepository ---

type MockLedgerAccountRepository struct {
	mock.Mock
}

var _ portsrepo.LedgerAccountRepositoryFacade = (*MockLedgerAccountRepository)(nil)

func (m *MockLedgerAccountRepository) FindLedgerAccountByID(ctx context.Context, accountID string) (*domain.LedgerAccount, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerAccount), args.Error(1)
}

func (m *MockLedgerAccountRepository) FindLedgerAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.LedgerAccount, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.LedgerAccount), args.Error(1)
}

func (m *MockLedgerAccountRepository) FindLedgerAccountByCode(ctx context.Context, businessID, code string) (*domain.LedgerAccount, error) {
	args := m.Called(ctx, businessID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerAccount), args.Error(1)
}

func (m *MockLedgerAccountRepository) ListLedgerAccounts(ctx context.Context, businessID string, activeOnly bool) ([]domain.LedgerAccount, error) {
	args := m.Called(ctx, businessID, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerAccount), args.Error(1)
}

func (m *MockLedgerAccountRepository) HasJournalEntries(ctx context.Context, accountID string) (bool, error) {
	args := m.Called(ctx, accountID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLedgerAccountRepository) SaveLedgerAccount(ctx context.Context, account domain.LedgerAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockLedgerAccountRepository) SaveLedgerAccountInTx(ctx context.Context, tx pgx.Tx, account domain.LedgerAccount) error {
	args := m.Called(ctx, tx, account)
	return args.Error(0)
}

func (m *MockLedgerAccountRepository) UpdateLedgerAccount(ctx context.Context, account domain.LedgerAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockLedgerAccountRepository) DeactivateLedgerAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

func (m *MockLedgerAccountRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockLedgerAccountRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockLedgerAccountRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock AccountGroupRepository ---

type MockAccountGroupRepository struct {
	mock.Mock
}

var _ portsrepo.AccountGroupRepositoryFacade = (*MockAccountGroupRepository)(nil)

func (m *MockAccountGroupRepository) FindAccountGroupByID(ctx context.Context, groupID string) (*domain.AccountGroup, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountGroup), args.Error(1)
}

func (m *MockAccountGroupRepository) ListAccountGroups(ctx context.Context, businessID string) ([]domain.AccountGroup, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountGroup), args.Error(1)
}

func (m *MockAccountGroupRepository) SaveAccountGroup(ctx context.Context, group domain.AccountGroup) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *MockAccountGroupRepository) UpdateAccountGroup(ctx context.Context, group domain.AccountGroup) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *MockAccountGroupRepository) DeleteAccountGroup(ctx context.Context, groupID string) error {
	args := m.Called(ctx, groupID)
	return args.Error(0)
}

// --- Mock CostCenterRepository ---

type MockCostCenterRepository struct {
	mock.Mock
}

var _ portsrepo.CostCenterRepositoryFacade = (*MockCostCenterRepository)(nil)

func (m *MockCostCenterRepository) FindCostCenterByID(ctx context.Context, costCenterID string) (*domain.CostCenter, error) {
	args := m.Called(ctx, costCenterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CostCenter), args.Error(1)
}

func (m *MockCostCenterRepository) ListCostCenters(ctx context.Context, businessID string, activeOnly bool) ([]domain.CostCenter, error) {
	args := m.Called(ctx, businessID, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CostCenter), args.Error(1)
}

func (m *MockCostCenterRepository) SaveCostCenter(ctx context.Context, cc domain.CostCenter) error {
	args := m.Called(ctx, cc)
	return args.Error(0)
}

func (m *MockCostCenterRepository) UpdateCostCenter(ctx context.Context, cc domain.CostCenter) error {
	args := m.Called(ctx, cc)
	return args.Error(0)
}

func (m *MockCostCenterRepository) DeactivateCostCenter(ctx context.Context, costCenterID string, userID string, now time.Time) error {
	args := m.Called(ctx, costCenterID, userID, now)
	return args.Error(0)
}

// --- Mock PartyRepository ---

type MockPartyRepository struct {
	mock.Mock
}

var _ portsrepo.PartyRepositoryFacade = (*MockPartyRepository)(nil)

func (m *MockPartyRepository) FindPartyByID(ctx context.Context, partyID string) (*domain.Party, error) {
	args := m.Called(ctx, partyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Party), args.Error(1)
}

func (m *MockPartyRepository) ListParties(ctx context.Context, businessID string, partyType *domain.PartyType, activeOnly bool) ([]domain.Party, error) {
	args := m.Called(ctx, businessID, partyType, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Party), args.Error(1)
}

func (m *MockPartyRepository) OutstandingBalance(ctx context.Context, partyID string) (decimal.Decimal, error) {
	args := m.Called(ctx, partyID)
	if args.Get(0) == nil {
		return decimal.Zero, args.Error(1)
	}
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockPartyRepository) SavePartyWithAccount(ctx context.Context, party domain.Party, account domain.LedgerAccount) error {
	args := m.Called(ctx, party, account)
	return args.Error(0)
}

func (m *MockPartyRepository) UpdateParty(ctx context.Context, party domain.Party) error {
	args := m.Called(ctx, party)
	return args.Error(0)
}

func (m *MockPartyRepository) DeactivateParty(ctx context.Context, partyID string, userID string, now time.Time) error {
	args := m.Called(ctx, partyID, userID, now)
	return args.Error(0)
}

// --- Mock ReconciliationRepository ---

type MockReconciliationRepository struct {
	mock.Mock
}

var _ portsrepo.ReconciliationRepositoryFacade = (*MockReconciliationRepository)(nil)

func (m *MockReconciliationRepository) FindReconciliationByID(ctx context.Context, reconciliationID string) (*domain.AccountReconciliation, error) {
	args := m.Called(ctx, reconciliationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountReconciliation), args.Error(1)
}

func (m *MockReconciliationRepository) ListReconciliations(ctx context.Context, businessID, ledgerAccountID string) ([]domain.AccountReconciliation, error) {
	args := m.Called(ctx, businessID, ledgerAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountReconciliation), args.Error(1)
}

func (m *MockReconciliationRepository) ListLinkedEntries(ctx context.Context, reconciliationID string) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, reconciliationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockReconciliationRepository) ListUnreconciledEntries(ctx context.Context, businessID, ledgerAccountID string, upTo time.Time) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, businessID, ledgerAccountID, upTo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockReconciliationRepository) IsEntryLinked(ctx context.Context, journalEntryID string) (bool, bool, error) {
	args := m.Called(ctx, journalEntryID)
	return args.Bool(0), args.Bool(1), args.Error(2)
}

func (m *MockReconciliationRepository) AnyEntryInCompletedReconciliation(ctx context.Context, journalEntryIDs []string) (bool, error) {
	args := m.Called(ctx, journalEntryIDs)
	return args.Bool(0), args.Error(1)
}

func (m *MockReconciliationRepository) BookBalance(ctx context.Context, ledgerAccountID string, upTo time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, ledgerAccountID, upTo)
	if args.Get(0) == nil {
		return decimal.Zero, args.Error(1)
	}
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockReconciliationRepository) SaveReconciliation(ctx context.Context, rec domain.AccountReconciliation) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockReconciliationRepository) LinkEntries(ctx context.Context, items []domain.ReconciliationItem) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}

func (m *MockReconciliationRepository) UnlinkEntry(ctx context.Context, reconciliationID, journalEntryID string) error {
	args := m.Called(ctx, reconciliationID, journalEntryID)
	return args.Error(0)
}

func (m *MockReconciliationRepository) MarkCompleted(ctx context.Context, reconciliationID string, completedBy string, completedAt time.Time) error {
	args := m.Called(ctx, reconciliationID, completedBy, completedAt)
	return args.Error(0)
}

func (m *MockReconciliationRepository) MarkReopened(ctx context.Context, reconciliationID string, updatedBy string, now time.Time) error {
	args := m.Called(ctx, reconciliationID, updatedBy, now)
	return args.Error(0)
}
