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
)

var (
	ErrReconNotReconcilable = errors.New("only bank and cash accounts can be reconciled")
	ErrReconCompleted       = errors.New("reconciliation is completed; reopen it first")
	ErrReconNotCompleted    = errors.New("reconciliation is not completed")
	ErrReconOutOfBalance    = errors.New("reconciled balance does not match the statement balance")
	ErrReconEntryLinked     = errors.New("journal entry is already linked to a reconciliation")
	ErrReconEntryNotOfAcct  = errors.New("journal entry does not belong to the reconciled account")
	ErrReconEntryAfterStmt  = errors.New("journal entry is dated after the statement date")
)

// reconciliationService implements the ReconciliationSvcFacade interface.
//
// A reconciliation is OPEN or COMPLETED. Linking and unlinking are only
// possible while OPEN; completing requires the difference to be inside the
// currency epsilon unless explicitly overridden.
type reconciliationService struct {
	BaseService
	reconRepo   portsrepo.ReconciliationRepositoryFacade
	accountRepo portsrepo.LedgerAccountReader
}

// NewReconciliationService creates a new reconciliation service
func NewReconciliationService(
	reconRepo portsrepo.ReconciliationRepositoryFacade,
	accountRepo portsrepo.LedgerAccountReader,
	authorizer portssvc.BusinessAuthorizerSvc,
) portssvc.ReconciliationSvcFacade {
	return &reconciliationService{
		BaseService: BaseService{BusinessAuthorizer: authorizer},
		reconRepo:   reconRepo,
		accountRepo: accountRepo,
	}
}

// Ensure reconciliationService implements the ReconciliationSvcFacade interface
var _ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)

func (s *reconciliationService) findReconInBusiness(ctx context.Context, businessID, reconciliationID string) (*domain.AccountReconciliation, error) {
	rec, err := s.reconRepo.FindReconciliationByID(ctx, reconciliationID)
	if err != nil {
		return nil, err
	}
	if rec.BusinessID != businessID {
		return nil, apperrors.ErrNotFound
	}
	return rec, nil
}

// GetReconciliationByID retrieves a reconciliation with its derived balance
func (s *reconciliationService) GetReconciliationByID(ctx context.Context, businessID string, reconciliationID string, requestingUserID string) (*domain.AccountReconciliation, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, businessID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.findReconInBusiness(ctx, businessID, reconciliationID)
}

// ListReconciliations retrieves reconciliation sessions for an account
func (s *reconciliationService) ListReconciliations(ctx context.Context, businessID string, accountID string, requestingUserID string) ([]domain.AccountReconciliation, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, businessID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	recs, err := s.reconRepo.ListReconciliations(ctx, businessID, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list reconciliations",
			slog.String("ledger_account_id", accountID))
		return nil, err
	}
	if recs == nil {
		return []domain.AccountReconciliation{}, nil
	}
	return recs, nil
}

// ListLinkedEntries retrieves the journal entries linked to a reconciliation
func (s *reconciliationService) ListLinkedEntries(ctx context.Context, businessID string, reconciliationID string, requestingUserID string) ([]domain.JournalEntry, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, businessID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	if _, err := s.findReconInBusiness(ctx, businessID, reconciliationID); err != nil {
		return nil, err
	}

	entries, err := s.reconRepo.ListLinkedEntries(ctx, reconciliationID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list linked entries",
			slog.String("reconciliation_id", reconciliationID))
		return nil, err
	}
	if entries == nil {
		return []domain.JournalEntry{}, nil
	}
	return entries, nil
}

// ListUnreconciledEntries retrieves the account's entries not yet reconciled
func (s *reconciliationService) ListUnreconciledEntries(ctx context.Context, businessID string, accountID string, requestingUserID string) ([]domain.JournalEntry, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, businessID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindLedgerAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.BusinessID != businessID {
		return nil, apperrors.ErrNotFound
	}

	entries, err := s.reconRepo.ListUnreconciledEntries(ctx, businessID, accountID, time.Now())
	if err != nil {
		s.LogError(ctx, err, "Failed to list unreconciled entries",
			slog.String("ledger_account_id", accountID))
		return nil, err
	}
	if entries == nil {
		return []domain.JournalEntry{}, nil
	}
	return entries, nil
}

// CreateReconciliation starts a reconciliation session for a bank or cash
// account, snapshotting the book balance as of the statement date.
func (s *reconciliationService) CreateReconciliation(ctx context.Context, businessID string, req dto.CreateReconciliationRequest, creatorUserID string) (*domain.AccountReconciliation, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, businessID, domain.RoleMember); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindLedgerAccountByID(ctx, req.LedgerAccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: ledger account %s not found", apperrors.ErrValidation, req.LedgerAccountID)
		}
		return nil, err
	}
	if account.BusinessID != businessID {
		return nil, fmt.Errorf("%w: ledger account %s not found", apperrors.ErrValidation, req.LedgerAccountID)
	}
	if !account.Reconcilable() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrReconNotReconcilable)
	}

	bookBalance, err := s.reconRepo.BookBalance(ctx, account.LedgerAccountID, req.StatementDate)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute book balance",
			slog.String("ledger_account_id", account.LedgerAccountID))
		return nil, err
	}

	now := time.Now()
	rec := domain.AccountReconciliation{
		ReconciliationID: uuid.NewString(),
		BusinessID:       businessID,
		LedgerAccountID:  account.LedgerAccountID,
		StatementDate:    req.StatementDate,
		StatementBalance: req.StatementBalance,
		AccountBalance:   bookBalance,
		Notes:            req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.reconRepo.SaveReconciliation(ctx, rec); err != nil {
		s.LogError(ctx, err, "Failed to save reconciliation",
			slog.String("ledger_account_id", account.LedgerAccountID))
		return nil, err
	}

	s.LogInfo(ctx, "Reconciliation created",
		slog.String("reconciliation_id", rec.ReconciliationID),
		slog.String("ledger_account_id", account.LedgerAccountID),
		slog.String("statement_balance", rec.StatementBalance.String()))
	return &rec, nil
}

// LinkEntries links journal entries to an open reconciliation. Each entry
// must belong to the reconciled account, be dated on or before the statement
// date, and not be linked elsewhere.
func (s *reconciliationService) LinkEntries(ctx context.Context, businessID string, reconciliationID string, req dto.LinkReconciliationEntriesRequest, requestingUserID string) (*domain.AccountReconciliation, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, businessID, domain.RoleMember); err != nil {
		return nil, err
	}

	rec, err := s.findReconInBusiness(ctx, businessID, reconciliationID)
	if err != nil {
		return nil, err
	}
	if rec.IsCompleted {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrReconCompleted)
	}

	// Entries of the account up to the statement date, for membership checks
	candidates, err := s.reconRepo.ListUnreconciledEntries(ctx, businessID, rec.LedgerAccountID, rec.StatementDate)
	if err != nil {
		return nil, err
	}
	candidateSet := make(map[string]domain.JournalEntry, len(candidates))
	for _, e := range candidates {
		candidateSet[e.JournalEntryID] = e
	}

	// Unlinked entries of the account dated after the statement, loaded on
	// the first miss to tell a late entry apart from one of another account
	var afterSet map[string]struct{}

	// Validate every entry before writing anything; the batch is linked in
	// one repository transaction or not at all
	now := time.Now()
	items := make([]domain.ReconciliationItem, 0, len(req.JournalEntryIDs))
	for _, entryID := range req.JournalEntryIDs {
		if _, ok := candidateSet[entryID]; !ok {
			linked, _, err := s.reconRepo.IsEntryLinked(ctx, entryID)
			if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
				return nil, err
			}
			if linked {
				return nil, fmt.Errorf("%w: %s (%s)", apperrors.ErrConflict, ErrReconEntryLinked, entryID)
			}
			if afterSet == nil {
				later, err := s.reconRepo.ListUnreconciledEntries(ctx, businessID, rec.LedgerAccountID, rec.StatementDate.AddDate(100, 0, 0))
				if err != nil {
					return nil, err
				}
				afterSet = make(map[string]struct{}, len(later))
				for _, e := range later {
					afterSet[e.JournalEntryID] = struct{}{}
				}
			}
			if _, ok := afterSet[entryID]; ok {
				return nil, fmt.Errorf("%w: %s (%s)", apperrors.ErrValidation, ErrReconEntryAfterStmt, entryID)
			}
			return nil, fmt.Errorf("%w: %s (%s)", apperrors.ErrValidation, ErrReconEntryNotOfAcct, entryID)
		}

		items = append(items, domain.ReconciliationItem{
			ReconciliationID: reconciliationID,
			JournalEntryID:   entryID,
			LinkedAt:         now,
			LinkedBy:         requestingUserID,
		})
	}

	if err := s.reconRepo.LinkEntries(ctx, items); err != nil {
		// A concurrent link into another reconciliation lands here as a
		// unique violation on the entry index
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrReconEntryLinked)
		}
		s.LogError(ctx, err, "Failed to link journal entries",
			slog.String("reconciliation_id", reconciliationID),
			slog.Int("count", len(items)))
		return nil, err
	}

	updated, err := s.reconRepo.FindReconciliationByID(ctx, reconciliationID)
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Journal entries linked to reconciliation",
		slog.String("reconciliation_id", reconciliationID),
		slog.Int("count", len(req.JournalEntryIDs)),
		slog.String("reconciled_balance", updated.ReconciledBalance.String()))
	return updated, nil
}

// UnlinkEntry removes a journal entry from an open reconciliation
func (s *reconciliationService) UnlinkEntry(ctx context.Context, businessID string, reconciliationID string, journalEntryID string, requestingUserID string) (*domain.AccountReconciliation, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, businessID, domain.RoleMember); err != nil {
		return nil, err
	}

	rec, err := s.findReconInBusiness(ctx, businessID, reconciliationID)
	if err != nil {
		return nil, err
	}
	if rec.IsCompleted {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrReconCompleted)
	}

	if err := s.reconRepo.UnlinkEntry(ctx, reconciliationID, journalEntryID); err != nil {
		s.LogError(ctx, err, "Failed to unlink journal entry",
			slog.String("reconciliation_id", reconciliationID),
			slog.String("journal_entry_id", journalEntryID))
		return nil, err
	}

	return s.reconRepo.FindReconciliationByID(ctx, reconciliationID)
}

// CompleteReconciliation closes an open session. The derived reconciled
// balance must match the statement balance within the currency epsilon,
// unless the caller explicitly allows a difference.
func (s *reconciliationService) CompleteReconciliation(ctx context.Context, businessID string, reconciliationID string, req dto.CompleteReconciliationRequest, requestingUserID string) (*domain.AccountReconciliation, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, businessID, domain.RoleMember); err != nil {
		return nil, err
	}

	rec, err := s.findReconInBusiness(ctx, businessID, reconciliationID)
	if err != nil {
		return nil, err
	}
	if rec.IsCompleted {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrReconCompleted)
	}

	if !rec.InBalance() && !req.AllowDifference {
		return nil, fmt.Errorf("%w: %s (difference %s)",
			apperrors.ErrConflict, ErrReconOutOfBalance, rec.Difference().String())
	}

	now := time.Now()
	if err := s.reconRepo.MarkCompleted(ctx, reconciliationID, requestingUserID, now); err != nil {
		s.LogError(ctx, err, "Failed to complete reconciliation",
			slog.String("reconciliation_id", reconciliationID))
		return nil, err
	}

	s.LogInfo(ctx, "Reconciliation completed",
		slog.String("reconciliation_id", reconciliationID),
		slog.String("difference", rec.Difference().String()),
		slog.Bool("allow_difference", req.AllowDifference))

	return s.reconRepo.FindReconciliationByID(ctx, reconciliationID)
}

// ReopenReconciliation returns a completed session to the open state,
// keeping its entry links.
func (s *reconciliationService) ReopenReconciliation(ctx context.Context, businessID string, reconciliationID string, requestingUserID string) (*domain.AccountReconciliation, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, businessID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	rec, err := s.findReconInBusiness(ctx, businessID, reconciliationID)
	if err != nil {
		return nil, err
	}
	if !rec.IsCompleted {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrReconNotCompleted)
	}

	if err := s.reconRepo.MarkReopened(ctx, reconciliationID, requestingUserID, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to reopen reconciliation",
			slog.String("reconciliation_id", reconciliationID))
		return nil, err
	}

	s.LogInfo(ctx, "Reconciliation reopened",
		slog.String("reconciliation_id", reconciliationID))

	return s.reconRepo.FindReconciliationByID(ctx, reconciliationID)
}
