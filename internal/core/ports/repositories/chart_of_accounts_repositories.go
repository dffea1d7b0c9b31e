package repositories

import (
	"context"
	"time"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// AccountGroupReader defines read operations for account group data.
type AccountGroupReader interface {
	// FindAccountGroupByID retrieves a group by its unique identifier.
	FindAccountGroupByID(ctx context.Context, groupID string) (*domain.AccountGroup, error)

	// ListAccountGroups retrieves all groups of a business ordered by sequence.
	ListAccountGroups(ctx context.Context, businessID string) ([]domain.AccountGroup, error)
}

// AccountGroupWriter defines write operations for account group data.
type AccountGroupWriter interface {
	// SaveAccountGroup persists a new group.
	SaveAccountGroup(ctx context.Context, group domain.AccountGroup) error

	// UpdateAccountGroup updates name, parent, nature, sequence and the
	// gross-profit flag of a group.
	UpdateAccountGroup(ctx context.Context, group domain.AccountGroup) error

	// DeleteAccountGroup removes an empty, non-system group.
	DeleteAccountGroup(ctx context.Context, groupID string) error
}

// AccountGroupRepositoryFacade combines all account-group repository interfaces.
type AccountGroupRepositoryFacade interface {
	AccountGroupReader
	AccountGroupWriter
}

// LedgerAccountReader defines read operations for ledger account data.
type LedgerAccountReader interface {
	// FindLedgerAccountByID retrieves an account by its unique identifier.
	FindLedgerAccountByID(ctx context.Context, accountID string) (*domain.LedgerAccount, error)

	// FindLedgerAccountsByIDs retrieves multiple accounts keyed by ID.
	FindLedgerAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.LedgerAccount, error)

	// FindLedgerAccountByCode retrieves an account by its per-business code.
	FindLedgerAccountByCode(ctx context.Context, businessID, code string) (*domain.LedgerAccount, error)

	// ListLedgerAccounts retrieves accounts of a business, optionally only active ones.
	ListLedgerAccounts(ctx context.Context, businessID string, activeOnly bool) ([]domain.LedgerAccount, error)

	// HasJournalEntries reports whether the account is referenced by any journal entry.
	HasJournalEntries(ctx context.Context, accountID string) (bool, error)
}

// LedgerAccountWriter defines write operations for ledger account data.
type LedgerAccountWriter interface {
	// SaveLedgerAccount persists a new ledger account.
	SaveLedgerAccount(ctx context.Context, account domain.LedgerAccount) error

	// SaveLedgerAccountInTx persists a new ledger account inside an existing transaction.
	SaveLedgerAccountInTx(ctx context.Context, tx pgx.Tx, account domain.LedgerAccount) error

	// UpdateLedgerAccount updates an existing ledger account's details.
	UpdateLedgerAccount(ctx context.Context, account domain.LedgerAccount) error

	// DeactivateLedgerAccount marks an account as inactive.
	DeactivateLedgerAccount(ctx context.Context, accountID string, userID string, now time.Time) error
}

// LedgerAccountRepositoryFacade combines all ledger-account repository interfaces.
type LedgerAccountRepositoryFacade interface {
	LedgerAccountReader
	LedgerAccountWriter
	TransactionManager
}

// CostCenterReader defines read operations for cost center data.
type CostCenterReader interface {
	// FindCostCenterByID retrieves a cost center by its unique identifier.
	FindCostCenterByID(ctx context.Context, costCenterID string) (*domain.CostCenter, error)

	// ListCostCenters retrieves all cost centers of a business.
	ListCostCenters(ctx context.Context, businessID string, activeOnly bool) ([]domain.CostCenter, error)
}

// CostCenterWriter defines write operations for cost center data.
type CostCenterWriter interface {
	// SaveCostCenter persists a new cost center.
	SaveCostCenter(ctx context.Context, cc domain.CostCenter) error

	// UpdateCostCenter updates an existing cost center.
	UpdateCostCenter(ctx context.Context, cc domain.CostCenter) error

	// DeactivateCostCenter marks a cost center as inactive.
	DeactivateCostCenter(ctx context.Context, costCenterID string, userID string, now time.Time) error
}

// CostCenterRepositoryFacade combines all cost-center repository interfaces.
type CostCenterRepositoryFacade interface {
	CostCenterReader
	CostCenterWriter
}
