package repositories

import (
	"context"
	"time"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReconciliationReader defines read operations for reconciliation data.
type ReconciliationReader interface {
	// FindReconciliationByID retrieves a reconciliation by its unique
	// identifier. ReconciledBalance is derived from the linked journal
	// entries, not read from the stored column.
	FindReconciliationByID(ctx context.Context, reconciliationID string) (*domain.AccountReconciliation, error)

	// ListReconciliations retrieves the reconciliations of a ledger account,
	// newest statement first.
	ListReconciliations(ctx context.Context, businessID, ledgerAccountID string) ([]domain.AccountReconciliation, error)

	// ListLinkedEntries retrieves the journal entries linked to a reconciliation.
	ListLinkedEntries(ctx context.Context, reconciliationID string) ([]domain.JournalEntry, error)

	// ListUnreconciledEntries retrieves entries of the account up to the
	// statement date that are not linked to any reconciliation of the account.
	ListUnreconciledEntries(ctx context.Context, businessID, ledgerAccountID string, upTo time.Time) ([]domain.JournalEntry, error)

	// IsEntryLinked reports whether the journal entry is linked to any
	// reconciliation of its account, and whether that reconciliation is completed.
	IsEntryLinked(ctx context.Context, journalEntryID string) (linked bool, completed bool, err error)

	// AnyEntryInCompletedReconciliation reports whether any of the journal
	// entries is linked to a completed reconciliation.
	AnyEntryInCompletedReconciliation(ctx context.Context, journalEntryIDs []string) (bool, error)

	// BookBalance returns the signed balance (opening balance plus entries up
	// to and including the date) of the ledger account.
	BookBalance(ctx context.Context, ledgerAccountID string, upTo time.Time) (decimal.Decimal, error)
}

// ReconciliationWriter defines write operations for reconciliation data.
type ReconciliationWriter interface {
	// SaveReconciliation persists a new reconciliation.
	SaveReconciliation(ctx context.Context, rec domain.AccountReconciliation) error

	// LinkEntries inserts the reconciliation items and refreshes the stored
	// reconciled balance in one transaction. When any insert fails no link
	// is written.
	LinkEntries(ctx context.Context, items []domain.ReconciliationItem) error

	// UnlinkEntry deletes the reconciliation item and refreshes the stored
	// reconciled balance in one transaction.
	UnlinkEntry(ctx context.Context, reconciliationID, journalEntryID string) error

	// MarkCompleted transitions the reconciliation to COMPLETED.
	MarkCompleted(ctx context.Context, reconciliationID string, completedBy string, completedAt time.Time) error

	// MarkReopened transitions the reconciliation back to OPEN, keeping links.
	MarkReopened(ctx context.Context, reconciliationID string, updatedBy string, now time.Time) error
}

// ReconciliationRepositoryFacade combines all reconciliation repository interfaces.
type ReconciliationRepositoryFacade interface {
	ReconciliationReader
	ReconciliationWriter
}
