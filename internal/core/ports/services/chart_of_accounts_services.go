package services

import (
	"context"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/bizledger/bizledger_app/internal/dto"
)

// AccountGroupReaderSvc defines read operations for account groups
type AccountGroupReaderSvc interface {
	// GetAccountGroupByID retrieves a specific account group by its ID.
	GetAccountGroupByID(ctx context.Context, businessID string, groupID string, requestingUserID string) (*domain.AccountGroup, error)

	// ListAccountGroups retrieves all account groups in a business, ordered for tree display.
	ListAccountGroups(ctx context.Context, businessID string, requestingUserID string) ([]domain.AccountGroup, error)
}

// AccountGroupWriterSvc defines write operations for account groups
type AccountGroupWriterSvc interface {
	// CreateAccountGroup persists a new account group.
	// Child groups inherit their parent's nature.
	CreateAccountGroup(ctx context.Context, businessID string, req dto.CreateAccountGroupRequest, creatorUserID string) (*domain.AccountGroup, error)

	// UpdateAccountGroup updates an account group. Re-parenting that would
	// change the nature or create a cycle is rejected.
	UpdateAccountGroup(ctx context.Context, businessID string, groupID string, req dto.UpdateAccountGroupRequest, requestingUserID string) (*domain.AccountGroup, error)

	// DeleteAccountGroup removes an empty, non-system account group.
	DeleteAccountGroup(ctx context.Context, businessID string, groupID string, requestingUserID string) error
}

// AccountGroupSvcFacade combines all account group service interfaces
type AccountGroupSvcFacade interface {
	AccountGroupReaderSvc
	AccountGroupWriterSvc
}

// LedgerAccountReaderSvc defines read operations for ledger accounts
type LedgerAccountReaderSvc interface {
	// GetLedgerAccountByID retrieves a specific ledger account by its ID.
	GetLedgerAccountByID(ctx context.Context, businessID string, accountID string, requestingUserID string) (*domain.LedgerAccount, error)

	// ListLedgerAccounts retrieves ledger accounts in a business, optionally
	// filtered to a single account group.
	ListLedgerAccounts(ctx context.Context, businessID string, groupID *string, requestingUserID string) ([]domain.LedgerAccount, error)

	// GetAccountBalance computes the account's current balance including its
	// opening balance.
	GetAccountBalance(ctx context.Context, businessID string, accountID string, requestingUserID string) (*dto.AccountBalanceResponse, error)
}

// LedgerAccountWriterSvc defines write operations for ledger accounts
type LedgerAccountWriterSvc interface {
	// CreateLedgerAccount persists a new ledger account.
	CreateLedgerAccount(ctx context.Context, businessID string, req dto.CreateLedgerAccountRequest, creatorUserID string) (*domain.LedgerAccount, error)

	// UpdateLedgerAccount updates an existing ledger account.
	UpdateLedgerAccount(ctx context.Context, businessID string, accountID string, req dto.UpdateLedgerAccountRequest, requestingUserID string) (*domain.LedgerAccount, error)

	// DeactivateLedgerAccount marks an account inactive. Accounts with posted
	// entries cannot be removed, only deactivated.
	DeactivateLedgerAccount(ctx context.Context, businessID string, accountID string, requestingUserID string) error
}

// LedgerAccountSvcFacade combines all ledger account service interfaces
type LedgerAccountSvcFacade interface {
	LedgerAccountReaderSvc
	LedgerAccountWriterSvc
}

// CostCenterReaderSvc defines read operations for cost centers
type CostCenterReaderSvc interface {
	// GetCostCenterByID retrieves a specific cost center by its ID.
	GetCostCenterByID(ctx context.Context, businessID string, costCenterID string, requestingUserID string) (*domain.CostCenter, error)

	// ListCostCenters retrieves all cost centers in a business.
	ListCostCenters(ctx context.Context, businessID string, requestingUserID string) ([]domain.CostCenter, error)
}

// CostCenterWriterSvc defines write operations for cost centers
type CostCenterWriterSvc interface {
	// CreateCostCenter persists a new cost center.
	CreateCostCenter(ctx context.Context, businessID string, req dto.CreateCostCenterRequest, creatorUserID string) (*domain.CostCenter, error)

	// UpdateCostCenter updates an existing cost center.
	UpdateCostCenter(ctx context.Context, businessID string, costCenterID string, req dto.UpdateCostCenterRequest, requestingUserID string) (*domain.CostCenter, error)

	// DeactivateCostCenter marks a cost center inactive.
	DeactivateCostCenter(ctx context.Context, businessID string, costCenterID string, requestingUserID string) error
}

// CostCenterSvcFacade combines all cost center service interfaces
type CostCenterSvcFacade interface {
	CostCenterReaderSvc
	CostCenterWriterSvc
}
