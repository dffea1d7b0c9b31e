package services

import (
	"context"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/bizledger/bizledger_app/internal/dto"
)

// ReconciliationReaderSvc defines read operations for reconciliation sessions
type ReconciliationReaderSvc interface {
	// GetReconciliationByID retrieves a reconciliation with its derived
	// reconciled balance.
	GetReconciliationByID(ctx context.Context, businessID string, reconciliationID string, requestingUserID string) (*domain.AccountReconciliation, error)

	// ListReconciliations retrieves reconciliation sessions for an account.
	ListReconciliations(ctx context.Context, businessID string, accountID string, requestingUserID string) ([]domain.AccountReconciliation, error)

	// ListLinkedEntries retrieves the journal entries linked to a reconciliation.
	ListLinkedEntries(ctx context.Context, businessID string, reconciliationID string, requestingUserID string) ([]domain.JournalEntry, error)

	// ListUnreconciledEntries retrieves the account's journal entries not yet
	// linked to any completed reconciliation.
	ListUnreconciledEntries(ctx context.Context, businessID string, accountID string, requestingUserID string) ([]domain.JournalEntry, error)
}

// ReconciliationWriterSvc defines write operations for reconciliation sessions
type ReconciliationWriterSvc interface {
	// CreateReconciliation starts a reconciliation session for a bank or cash
	// account, snapshotting the book balance as of the statement date.
	CreateReconciliation(ctx context.Context, businessID string, req dto.CreateReconciliationRequest, creatorUserID string) (*domain.AccountReconciliation, error)

	// LinkEntries links journal entries to an open reconciliation.
	LinkEntries(ctx context.Context, businessID string, reconciliationID string, req dto.LinkReconciliationEntriesRequest, requestingUserID string) (*domain.AccountReconciliation, error)

	// UnlinkEntry removes a journal entry from an open reconciliation.
	UnlinkEntry(ctx context.Context, businessID string, reconciliationID string, journalEntryID string, requestingUserID string) (*domain.AccountReconciliation, error)

	// CompleteReconciliation closes an open session. Unless allowDifference is
	// set, the reconciled balance must match the statement balance within the
	// accepted tolerance.
	CompleteReconciliation(ctx context.Context, businessID string, reconciliationID string, req dto.CompleteReconciliationRequest, requestingUserID string) (*domain.AccountReconciliation, error)

	// ReopenReconciliation returns a completed session to the open state.
	ReopenReconciliation(ctx context.Context, businessID string, reconciliationID string, requestingUserID string) (*domain.AccountReconciliation, error)
}

// ReconciliationSvcFacade combines all reconciliation service interfaces
type ReconciliationSvcFacade interface {
	ReconciliationReaderSvc
	ReconciliationWriterSvc
}
