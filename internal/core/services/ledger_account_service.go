package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bizledger/bizledger_app/internal/apperrors"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrAccountHasEntries   = errors.New("account is referenced by journal entries")
	ErrOpeningBalanceSign  = errors.New("opening balance must not be negative")
	ErrAccountCodeConflict = errors.New("account code is already in use")
)

// ledgerAccountService implements the LedgerAccountSvcFacade interface
type ledgerAccountService struct {
	BaseService
	accountRepo portsrepo.LedgerAccountRepositoryFacade
	groupRepo   portsrepo.AccountGroupReader
	reconRepo   portsrepo.ReconciliationReader
}

// NewLedgerAccountService creates a new ledger account service
func NewLedgerAccountService(
	accountRepo portsrepo.LedgerAccountRepositoryFacade,
	groupRepo portsrepo.AccountGroupReader,
	reconRepo portsrepo.ReconciliationReader,
	authorizer portssvc.BusinessAuthorizerSvc,
) portssvc.LedgerAccountSvcFacade {
	return &ledgerAccountService{
		BaseService: BaseService{BusinessAuthorizer: authorizer},
		accountRepo: accountRepo,
		groupRepo:   groupRepo,
		reconRepo:   reconRepo,
	}
}

// Ensure ledgerAccountService implements the LedgerAccountSvcFacade interface
var _ portssvc.LedgerAccountSvcFacade = (*ledgerAccountService)(nil)

// findAccountInBusiness loads an account, hiding accounts of other businesses
// as not found.
func (s *ledgerAccountService) findAccountInBusiness(ctx context.Context, businessID, accountID string) (*domain.LedgerAccount, error) {
	account, err := s.accountRepo.FindLedgerAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.BusinessID != businessID {
		return nil, apperrors.ErrNotFound
	}
	return account, nil
}

// GetLedgerAccountByID retrieves a specific ledger account
func (s *ledgerAccountService) GetLedgerAccountByID(ctx context.Context, businessID string, accountID string, requestingUserID string) (*domain.LedgerAccount, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, businessID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.findAccountInBusiness(ctx, businessID, accountID)
}

// ListLedgerAccounts retrieves accounts of a business, optionally limited to a group
func (s *ledgerAccountService) ListLedgerAccounts(ctx context.Context, businessID string, groupID *string, requestingUserID string) ([]domain.LedgerAccount, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, businessID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	accounts, err := s.accountRepo.ListLedgerAccounts(ctx, businessID, false)
	if err != nil {
		s.LogError(ctx, err, "Failed to list ledger accounts",
			slog.String("business_id", businessID))
		return nil, err
	}

	if groupID == nil {
		return accounts, nil
	}
	filtered := make([]domain.LedgerAccount, 0, len(accounts))
	for _, a := range accounts {
		if a.AccountGroupID == *groupID {
			filtered = append(filtered, a)
		}
	}
	return filtered, nil
}

// GetAccountBalance computes the account's current balance from the journal
// plus its opening balance.
func (s *ledgerAccountService) GetAccountBalance(ctx context.Context, businessID string, accountID string, requestingUserID string) (*dto.AccountBalanceResponse, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, businessID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	account, err := s.findAccountInBusiness(ctx, businessID, accountID)
	if err != nil {
		return nil, err
	}

	signed, err := s.reconRepo.BookBalance(ctx, accountID, time.Now())
	if err != nil {
		s.LogError(ctx, err, "Failed to compute account balance",
			slog.String("ledger_account_id", accountID))
		return nil, err
	}

	resp := &dto.AccountBalanceResponse{
		LedgerAccountID: account.LedgerAccountID,
		Balance:         signed.Abs(),
		BalanceType:     domain.BalanceDebit,
	}
	if signed.IsNegative() {
		resp.BalanceType = domain.BalanceCredit
	}
	return resp, nil
}

// CreateLedgerAccount persists a new ledger account
func (s *ledgerAccountService) CreateLedgerAccount(ctx context.Context, businessID string, req dto.CreateLedgerAccountRequest, creatorUserID string) (*domain.LedgerAccount, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, businessID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	group, err := s.groupRepo.FindAccountGroupByID(ctx, req.AccountGroupID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: account group %s not found", apperrors.ErrValidation, req.AccountGroupID)
		}
		return nil, err
	}
	if group.BusinessID != businessID {
		return nil, fmt.Errorf("%w: account group %s not found", apperrors.ErrValidation, req.AccountGroupID)
	}

	if req.OpeningBalance.IsNegative() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrOpeningBalanceSign)
	}

	balanceType := req.OpeningBalanceType
	if balanceType == "" {
		if group.Nature.DebitNormal() {
			balanceType = domain.BalanceDebit
		} else {
			balanceType = domain.BalanceCredit
		}
	}

	now := time.Now()
	account := domain.LedgerAccount{
		LedgerAccountID:    uuid.NewString(),
		BusinessID:         businessID,
		AccountGroupID:     req.AccountGroupID,
		Code:               req.Code,
		Name:               req.Name,
		IsBankAccount:      req.IsBankAccount,
		IsCashAccount:      req.IsCashAccount,
		OpeningBalance:     req.OpeningBalance,
		OpeningBalanceType: balanceType,
		IsActive:           true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveLedgerAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrDuplicate, ErrAccountCodeConflict)
		}
		s.LogError(ctx, err, "Failed to save ledger account",
			slog.String("business_id", businessID),
			slog.String("account_name", req.Name))
		return nil, err
	}

	s.LogInfo(ctx, "Ledger account created",
		slog.String("ledger_account_id", account.LedgerAccountID),
		slog.String("business_id", businessID))
	return &account, nil
}

// UpdateLedgerAccount updates an existing ledger account. The opening balance
// may only change while the account has no posted entries.
func (s *ledgerAccountService) UpdateLedgerAccount(ctx context.Context, businessID string, accountID string, req dto.UpdateLedgerAccountRequest, requestingUserID string) (*domain.LedgerAccount, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, businessID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	account, err := s.findAccountInBusiness(ctx, businessID, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Code != nil {
		account.Code = req.Code
	}
	if req.AccountGroupID != nil && *req.AccountGroupID != account.AccountGroupID {
		group, err := s.groupRepo.FindAccountGroupByID(ctx, *req.AccountGroupID)
		if err != nil || group.BusinessID != businessID {
			return nil, fmt.Errorf("%w: account group %s not found", apperrors.ErrValidation, *req.AccountGroupID)
		}
		account.AccountGroupID = *req.AccountGroupID
	}

	if req.OpeningBalance != nil || req.OpeningBalanceType != nil {
		hasEntries, err := s.accountRepo.HasJournalEntries(ctx, accountID)
		if err != nil {
			return nil, err
		}
		if hasEntries {
			return nil, fmt.Errorf("%w: opening balance cannot change once entries exist", apperrors.ErrConflict)
		}
		if req.OpeningBalance != nil {
			if req.OpeningBalance.LessThan(decimal.Zero) {
				return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrOpeningBalanceSign)
			}
			account.OpeningBalance = *req.OpeningBalance
		}
		if req.OpeningBalanceType != nil {
			account.OpeningBalanceType = *req.OpeningBalanceType
		}
	}

	account.LastUpdatedAt = time.Now()
	account.LastUpdatedBy = requestingUserID

	if err := s.accountRepo.UpdateLedgerAccount(ctx, *account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrDuplicate, ErrAccountCodeConflict)
		}
		s.LogError(ctx, err, "Failed to update ledger account",
			slog.String("ledger_account_id", accountID))
		return nil, err
	}
	return account, nil
}

// DeactivateLedgerAccount marks an account inactive
func (s *ledgerAccountService) DeactivateLedgerAccount(ctx context.Context, businessID string, accountID string, requestingUserID string) error {
	if err := s.AuthorizeUser(ctx, requestingUserID, businessID, domain.RoleAdmin); err != nil {
		return err
	}

	if _, err := s.findAccountInBusiness(ctx, businessID, accountID); err != nil {
		return err
	}

	if err := s.accountRepo.DeactivateLedgerAccount(ctx, accountID, requestingUserID, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate ledger account",
			slog.String("ledger_account_id", accountID))
		return err
	}

	s.LogInfo(ctx, "Ledger account deactivated",
		slog.String("ledger_account_id", accountID),
		slog.String("business_id", businessID))
	return nil
}
