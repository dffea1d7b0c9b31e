package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/bizledger/bizledger_app/internal/apperrors"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	"github.com/bizledger/bizledger_app/internal/models"
	"github.com/bizledger/bizledger_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxReconciliationRepository struct {
	BaseRepository
}

// newPgxReconciliationRepository creates a new repository for reconciliation data.
func newPgxReconciliationRepository(pool *pgxpool.Pool) portsrepo.ReconciliationRepositoryFacade {
	return &PgxReconciliationRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxReconciliationRepository implements portsrepo.ReconciliationRepositoryFacade
var _ portsrepo.ReconciliationRepositoryFacade = (*PgxReconciliationRepository)(nil)

// The reconciled balance is always derived from the linked entries on read.
// The stored column is refreshed inside link/unlink transactions but a crash
// between the two statements can never make reads drift.
var fullReconciliationSelectQuery = `
SELECT
	ar.reconciliation_id, ar.business_id, ar.ledger_account_id,
	ar.statement_date, ar.statement_balance, ar.account_balance,
	COALESCE((
		SELECT SUM(je.debit_amount - je.credit_amount)
		FROM reconciliation_items ri
		JOIN journal_entries je ON je.journal_entry_id = ri.journal_entry_id
		WHERE ri.reconciliation_id = ar.reconciliation_id
	), 0) AS reconciled_balance,
	ar.notes, ar.is_completed, ar.completed_at, ar.completed_by,
	ar.created_at, ar.created_by, ar.last_updated_at, ar.last_updated_by
FROM account_reconciliations ar
`

const refreshReconciledBalanceQuery = `
	UPDATE account_reconciliations ar
	SET reconciled_balance = COALESCE((
		SELECT SUM(je.debit_amount - je.credit_amount)
		FROM reconciliation_items ri
		JOIN journal_entries je ON je.journal_entry_id = ri.journal_entry_id
		WHERE ri.reconciliation_id = ar.reconciliation_id
	), 0)
	WHERE ar.reconciliation_id = $1;
`

func (r *PgxReconciliationRepository) getReconciliations(ctx context.Context, filterQuery string, args ...any) ([]domain.AccountReconciliation, error) {
	query := fullReconciliationSelectQuery + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query reconciliations", err)
	}
	defer rows.Close()

	modelRecs, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.AccountReconciliation])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.AccountReconciliation{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect reconciliation rows", err)
	}
	return mapping.ToDomainReconciliationSlice(modelRecs), nil
}

func (r *PgxReconciliationRepository) FindReconciliationByID(ctx context.Context, reconciliationID string) (*domain.AccountReconciliation, error) {
	recs, err := r.getReconciliations(ctx, `WHERE ar.reconciliation_id = $1`, reconciliationID)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &recs[0], nil
}

func (r *PgxReconciliationRepository) ListReconciliations(ctx context.Context, businessID, ledgerAccountID string) ([]domain.AccountReconciliation, error) {
	return r.getReconciliations(ctx,
		`WHERE ar.business_id = $1 AND ar.ledger_account_id = $2 ORDER BY ar.statement_date DESC, ar.created_at DESC`,
		businessID, ledgerAccountID)
}

func (r *PgxReconciliationRepository) ListLinkedEntries(ctx context.Context, reconciliationID string) ([]domain.JournalEntry, error) {
	query := `
		SELECT je.journal_entry_id, je.business_id, je.financial_year_id, je.voucher_id, je.voucher_item_id,
		       je.ledger_account_id, je.cost_center_id, je.date, je.debit_amount, je.credit_amount,
		       je.created_at, je.created_by, je.last_updated_at, je.last_updated_by
		FROM reconciliation_items ri
		JOIN journal_entries je ON je.journal_entry_id = ri.journal_entry_id
		WHERE ri.reconciliation_id = $1
		ORDER BY je.date, je.created_at;
	`
	rows, err := r.Pool.Query(ctx, query, reconciliationID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query linked entries for reconciliation "+reconciliationID, err)
	}
	defer rows.Close()

	modelEntries, err := collectJournalEntryRows(rows)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainJournalEntrySlice(modelEntries), nil
}

// ListUnreconciledEntries returns candidate entries for matching: entries of
// the account dated on or before the statement date that are not yet linked
// to any reconciliation of that account.
func (r *PgxReconciliationRepository) ListUnreconciledEntries(ctx context.Context, businessID, ledgerAccountID string, upTo time.Time) ([]domain.JournalEntry, error) {
	query := `
		SELECT je.journal_entry_id, je.business_id, je.financial_year_id, je.voucher_id, je.voucher_item_id,
		       je.ledger_account_id, je.cost_center_id, je.date, je.debit_amount, je.credit_amount,
		       je.created_at, je.created_by, je.last_updated_at, je.last_updated_by
		FROM journal_entries je
		JOIN vouchers v ON v.voucher_id = je.voucher_id
		WHERE je.business_id = $1 AND je.ledger_account_id = $2 AND je.date <= $3
		  AND v.is_deleted = FALSE
		  AND NOT EXISTS (
			SELECT 1
			FROM reconciliation_items ri
			JOIN account_reconciliations ar ON ar.reconciliation_id = ri.reconciliation_id
			WHERE ri.journal_entry_id = je.journal_entry_id AND ar.ledger_account_id = $2
		  )
		ORDER BY je.date, je.created_at;
	`
	rows, err := r.Pool.Query(ctx, query, businessID, ledgerAccountID, upTo)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query unreconciled entries for account "+ledgerAccountID, err)
	}
	defer rows.Close()

	modelEntries, err := collectJournalEntryRows(rows)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainJournalEntrySlice(modelEntries), nil
}

func (r *PgxReconciliationRepository) IsEntryLinked(ctx context.Context, journalEntryID string) (bool, bool, error) {
	query := `
		SELECT ar.is_completed
		FROM reconciliation_items ri
		JOIN account_reconciliations ar ON ar.reconciliation_id = ri.reconciliation_id
		WHERE ri.journal_entry_id = $1
		LIMIT 1;
	`
	var completed bool
	err := r.Pool.QueryRow(ctx, query, journalEntryID).Scan(&completed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, false, nil
		}
		return false, false, apperrors.NewAppError(500, "failed to check link state of journal entry "+journalEntryID, err)
	}
	return true, completed, nil
}

func (r *PgxReconciliationRepository) AnyEntryInCompletedReconciliation(ctx context.Context, journalEntryIDs []string) (bool, error) {
	if len(journalEntryIDs) == 0 {
		return false, nil
	}
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM reconciliation_items ri
			JOIN account_reconciliations ar ON ar.reconciliation_id = ri.reconciliation_id
			WHERE ri.journal_entry_id = ANY($1) AND ar.is_completed = TRUE
		);
	`
	var exists bool
	err := r.Pool.QueryRow(ctx, query, journalEntryIDs).Scan(&exists)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to check completed reconciliation links", err)
	}
	return exists, nil
}

// BookBalance returns the account's signed balance up to and including the
// date: opening balance plus the sum of entries of non-deleted vouchers.
func (r *PgxReconciliationRepository) BookBalance(ctx context.Context, ledgerAccountID string, upTo time.Time) (decimal.Decimal, error) {
	query := `
		SELECT
			CASE WHEN a.opening_balance_type = 'DEBIT' THEN a.opening_balance ELSE -a.opening_balance END
			+ COALESCE((
				SELECT SUM(je.debit_amount - je.credit_amount)
				FROM journal_entries je
				JOIN vouchers v ON v.voucher_id = je.voucher_id
				WHERE je.ledger_account_id = a.ledger_account_id AND je.date <= $2 AND v.is_deleted = FALSE
			), 0) AS balance
		FROM ledger_accounts a
		WHERE a.ledger_account_id = $1;
	`
	var balance decimal.Decimal
	err := r.Pool.QueryRow(ctx, query, ledgerAccountID, upTo).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, apperrors.ErrNotFound
		}
		return decimal.Zero, apperrors.NewAppError(500, "failed to compute book balance for account "+ledgerAccountID, err)
	}
	return balance, nil
}

func (r *PgxReconciliationRepository) SaveReconciliation(ctx context.Context, rec domain.AccountReconciliation) error {
	m := mapping.ToModelReconciliation(rec)
	query := `
		INSERT INTO account_reconciliations (
			reconciliation_id, business_id, ledger_account_id,
			statement_date, statement_balance, account_balance, reconciled_balance,
			notes, is_completed, completed_at, completed_by,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ReconciliationID,
		m.BusinessID,
		m.LedgerAccountID,
		m.StatementDate,
		m.StatementBalance,
		m.AccountBalance,
		m.ReconciledBalance,
		m.Notes,
		m.IsCompleted,
		m.CompletedAt,
		m.CompletedBy,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewDuplicateError("a reconciliation for this account and statement date already exists")
		}
		return apperrors.NewAppError(500, "failed to save reconciliation "+m.ReconciliationID, err)
	}
	return nil
}

// LinkEntries batches the join row inserts and refreshes the stored running
// balance, all in the same transaction. A failing insert rolls back every
// link in the batch.
func (r *PgxReconciliationRepository) LinkEntries(ctx context.Context, items []domain.ReconciliationItem) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	batch := &pgx.Batch{}
	for _, item := range items {
		batch.Queue(`
			INSERT INTO reconciliation_items (reconciliation_id, journal_entry_id, linked_at, linked_by)
			VALUES ($1, $2, $3, $4);
		`, item.ReconciliationID, item.JournalEntryID, item.LinkedAt, item.LinkedBy)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewDuplicateError("a journal entry in the batch is already linked")
		}
		return apperrors.NewAppError(500, "failed to link journal entries to "+items[0].ReconciliationID, err)
	}

	if _, err := tx.Exec(ctx, refreshReconciledBalanceQuery, items[0].ReconciliationID); err != nil {
		return apperrors.NewAppError(500, "failed to refresh reconciled balance for "+items[0].ReconciliationID, err)
	}

	return r.Commit(ctx, tx)
}

// UnlinkEntry deletes the join row and refreshes the stored running balance
// in the same transaction.
func (r *PgxReconciliationRepository) UnlinkEntry(ctx context.Context, reconciliationID, journalEntryID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	tag, err := tx.Exec(ctx, `
		DELETE FROM reconciliation_items
		WHERE reconciliation_id = $1 AND journal_entry_id = $2;
	`, reconciliationID, journalEntryID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to unlink journal entry "+journalEntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if _, err := tx.Exec(ctx, refreshReconciledBalanceQuery, reconciliationID); err != nil {
		return apperrors.NewAppError(500, "failed to refresh reconciled balance for "+reconciliationID, err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxReconciliationRepository) MarkCompleted(ctx context.Context, reconciliationID string, completedBy string, completedAt time.Time) error {
	query := `
		UPDATE account_reconciliations
		SET is_completed = TRUE, completed_at = $2, completed_by = $3,
		    last_updated_at = $2, last_updated_by = $3
		WHERE reconciliation_id = $1 AND is_completed = FALSE;
	`
	tag, err := r.Pool.Exec(ctx, query, reconciliationID, completedAt, completedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to complete reconciliation "+reconciliationID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxReconciliationRepository) MarkReopened(ctx context.Context, reconciliationID string, updatedBy string, now time.Time) error {
	query := `
		UPDATE account_reconciliations
		SET is_completed = FALSE, completed_at = NULL, completed_by = NULL,
		    last_updated_at = $2, last_updated_by = $3
		WHERE reconciliation_id = $1 AND is_completed = TRUE;
	`
	tag, err := r.Pool.Exec(ctx, query, reconciliationID, now, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to reopen reconciliation "+reconciliationID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
