package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/bizledger/bizledger_app/internal/apperrors"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	"github.com/bizledger/bizledger_app/internal/models"
	"github.com/bizledger/bizledger_app/internal/utils/mapping"
	"github.com/bizledger/bizledger_app/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxVoucherRepository struct {
	BaseRepository
}

// newPgxVoucherRepository creates a new repository for voucher and journal data.
func newPgxVoucherRepository(pool *pgxpool.Pool) portsrepo.VoucherRepositoryWithTx {
	return &PgxVoucherRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxVoucherRepository implements portsrepo.VoucherRepositoryWithTx
var _ portsrepo.VoucherRepositoryWithTx = (*PgxVoucherRepository)(nil)

const voucherColumns = `
	v.voucher_id, v.business_id, v.voucher_type_id, v.financial_year_id,
	v.voucher_number, v.sequence, v.date, v.party_id, v.narration,
	v.total_amount, v.is_posted, v.is_deleted,
	v.created_at, v.created_by, v.last_updated_at, v.last_updated_by
`

const insertVoucherItemQuery = `
	INSERT INTO voucher_items (
		voucher_item_id, voucher_id, ledger_account_id, cost_center_id,
		debit_amount, credit_amount, narration, sequence,
		created_at, created_by, last_updated_at, last_updated_by
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
`

const insertJournalEntryQuery = `
	INSERT INTO journal_entries (
		journal_entry_id, business_id, financial_year_id, voucher_id, voucher_item_id,
		ledger_account_id, cost_center_id, date, debit_amount, credit_amount,
		created_at, created_by, last_updated_at, last_updated_by
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
`

// ensureYearUnlocked re-reads the financial year lock inside the write
// transaction, so an admin locking the year concurrently cannot race a
// voucher into it. FOR SHARE holds the row until the write commits.
func ensureYearUnlocked(ctx context.Context, tx pgx.Tx, financialYearID string) error {
	var locked bool
	err := tx.QueryRow(ctx, `
		SELECT is_locked FROM financial_years
		WHERE financial_year_id = $1
		FOR SHARE;
	`, financialYearID).Scan(&locked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return apperrors.NewAppError(500, "failed to check lock on financial year "+financialYearID, err)
	}
	if locked {
		return apperrors.NewConflictError("financial year " + financialYearID + " is locked")
	}
	return nil
}

// SaveVoucher persists the header, its items and the mirrored journal entries
// within one DB transaction. When assignNumber is true the voucher type row is
// locked and the next sequence for (business, type, financial year) is taken,
// so concurrent posts cannot allocate the same number.
func (r *PgxVoucherRepository) SaveVoucher(ctx context.Context, voucher domain.Voucher, items []domain.VoucherItem, assignNumber bool) (*domain.Voucher, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if err := ensureYearUnlocked(ctx, tx, voucher.FinancialYearID); err != nil {
		return nil, err
	}

	if assignNumber {
		var prefix string
		var startingNumber int64
		err = tx.QueryRow(ctx, `
			SELECT prefix, starting_number FROM voucher_types
			WHERE voucher_type_id = $1
			FOR UPDATE;
		`, voucher.VoucherTypeID).Scan(&prefix, &startingNumber)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.ErrNotFound
			}
			return nil, apperrors.NewAppError(500, "failed to lock voucher type "+voucher.VoucherTypeID, err)
		}

		var sequence int64
		err = tx.QueryRow(ctx, `
			SELECT COALESCE(MAX(sequence), $4 - 1) + 1
			FROM vouchers
			WHERE business_id = $1 AND voucher_type_id = $2 AND financial_year_id = $3;
		`, voucher.BusinessID, voucher.VoucherTypeID, voucher.FinancialYearID, startingNumber).Scan(&sequence)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to allocate voucher sequence", err)
		}

		voucher.Sequence = sequence
		voucher.VoucherNumber = prefix + "-" + strconv.FormatInt(sequence, 10)
	}

	m := mapping.ToModelVoucher(voucher)
	_, err = tx.Exec(ctx, `
		INSERT INTO vouchers (
			voucher_id, business_id, voucher_type_id, financial_year_id,
			voucher_number, sequence, date, party_id, narration,
			total_amount, is_posted, is_deleted,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`,
		m.VoucherID,
		m.BusinessID,
		m.VoucherTypeID,
		m.FinancialYearID,
		m.VoucherNumber,
		m.Sequence,
		m.Date,
		m.PartyID,
		m.Narration,
		m.TotalAmount,
		m.IsPosted,
		m.IsDeleted,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.NewDuplicateError("voucher number " + m.VoucherNumber + " already exists for this type and year")
		}
		return nil, apperrors.NewAppError(500, "failed to insert voucher "+m.VoucherID, err)
	}

	if err := insertVoucherLines(ctx, tx, voucher, items); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &voucher, nil
}

// insertVoucherLines batches the item inserts and their mirrored journal
// entries and sends them on the transaction.
func insertVoucherLines(ctx context.Context, tx pgx.Tx, voucher domain.Voucher, items []domain.VoucherItem) error {
	batch := &pgx.Batch{}
	for _, item := range items {
		mi := mapping.ToModelVoucherItem(item)
		batch.Queue(insertVoucherItemQuery,
			mi.VoucherItemID,
			voucher.VoucherID,
			mi.LedgerAccountID,
			mi.CostCenterID,
			mi.DebitAmount,
			mi.CreditAmount,
			mi.Narration,
			mi.Sequence,
			mi.CreatedAt,
			mi.CreatedBy,
			mi.LastUpdatedAt,
			mi.LastUpdatedBy,
		)
		batch.Queue(insertJournalEntryQuery,
			uuid.NewString(),
			voucher.BusinessID,
			voucher.FinancialYearID,
			voucher.VoucherID,
			mi.VoucherItemID,
			mi.LedgerAccountID,
			mi.CostCenterID,
			voucher.Date,
			mi.DebitAmount,
			mi.CreditAmount,
			mi.CreatedAt,
			mi.CreatedBy,
			mi.LastUpdatedAt,
			mi.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute line batch for voucher "+voucher.VoucherID, err)
	}
	return nil
}

// ReplaceVoucherItems rewrites the voucher's lines: journal entries and items
// are deleted, the header is updated, and the new set is inserted, all in one
// transaction.
func (r *PgxVoucherRepository) ReplaceVoucherItems(ctx context.Context, voucher domain.Voucher, items []domain.VoucherItem) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if err := ensureYearUnlocked(ctx, tx, voucher.FinancialYearID); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM journal_entries WHERE voucher_id = $1;`, voucher.VoucherID); err != nil {
		return apperrors.NewAppError(500, "failed to clear journal entries for voucher "+voucher.VoucherID, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM voucher_items WHERE voucher_id = $1;`, voucher.VoucherID); err != nil {
		return apperrors.NewAppError(500, "failed to clear items for voucher "+voucher.VoucherID, err)
	}

	m := mapping.ToModelVoucher(voucher)
	tag, err := tx.Exec(ctx, `
		UPDATE vouchers
		SET date = $2, party_id = $3, narration = $4, total_amount = $5,
		    financial_year_id = $6, last_updated_at = $7, last_updated_by = $8
		WHERE voucher_id = $1 AND is_deleted = FALSE;
	`,
		m.VoucherID,
		m.Date,
		m.PartyID,
		m.Narration,
		m.TotalAmount,
		m.FinancialYearID,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update voucher "+m.VoucherID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := insertVoucherLines(ctx, tx, voucher, items); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// SoftDeleteVoucher flags the voucher deleted. Journal entries stay in place
// for audit; every read path filters on the voucher flag.
func (r *PgxVoucherRepository) SoftDeleteVoucher(ctx context.Context, voucherID string, userID string, now time.Time) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE vouchers
		SET is_deleted = TRUE, last_updated_at = $2, last_updated_by = $3
		WHERE voucher_id = $1 AND is_deleted = FALSE;
	`, voucherID, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete voucher "+voucherID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxVoucherRepository) FindVoucherByID(ctx context.Context, voucherID string) (*domain.Voucher, error) {
	query := `SELECT ` + voucherColumns + ` FROM vouchers v WHERE v.voucher_id = $1;`
	m, err := scanVoucherRow(r.Pool.QueryRow(ctx, query, voucherID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find voucher by ID "+voucherID, err)
	}
	voucher := mapping.ToDomainVoucher(*m)
	return &voucher, nil
}

func scanVoucherRow(row pgx.Row) (*models.Voucher, error) {
	var m models.Voucher
	err := row.Scan(
		&m.VoucherID,
		&m.BusinessID,
		&m.VoucherTypeID,
		&m.FinancialYearID,
		&m.VoucherNumber,
		&m.Sequence,
		&m.Date,
		&m.PartyID,
		&m.Narration,
		&m.TotalAmount,
		&m.IsPosted,
		&m.IsDeleted,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxVoucherRepository) FindVoucherItems(ctx context.Context, voucherID string) ([]domain.VoucherItem, error) {
	query := `
		SELECT voucher_item_id, voucher_id, ledger_account_id, cost_center_id,
		       debit_amount, credit_amount, narration, sequence,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM voucher_items
		WHERE voucher_id = $1
		ORDER BY sequence;
	`
	rows, err := r.Pool.Query(ctx, query, voucherID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query items for voucher "+voucherID, err)
	}
	defer rows.Close()

	modelItems, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.VoucherItem])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect item rows for voucher "+voucherID, err)
	}
	return mapping.ToDomainVoucherItemSlice(modelItems), nil
}

// ListVouchers retrieves a filtered page of vouchers ordered by date then
// creation time, newest first. The returned token resumes after the last row.
func (r *PgxVoucherRepository) ListVouchers(ctx context.Context, businessID string, filter portsrepo.ListVouchersFilter, limit int, nextToken *string) ([]domain.Voucher, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	filterClause := `WHERE v.business_id = $1`
	args := []any{businessID}
	if !filter.IncludeDeleted {
		filterClause += ` AND v.is_deleted = FALSE`
	}
	if filter.VoucherTypeID != nil {
		args = append(args, *filter.VoucherTypeID)
		filterClause += ` AND v.voucher_type_id = $` + strconv.Itoa(len(args))
	}
	if filter.FinancialYearID != nil {
		args = append(args, *filter.FinancialYearID)
		filterClause += ` AND v.financial_year_id = $` + strconv.Itoa(len(args))
	}
	if filter.PartyID != nil {
		args = append(args, *filter.PartyID)
		filterClause += ` AND v.party_id = $` + strconv.Itoa(len(args))
	}
	if filter.FromDate != nil {
		args = append(args, *filter.FromDate)
		filterClause += ` AND v.date >= $` + strconv.Itoa(len(args))
	}
	if filter.ToDate != nil {
		args = append(args, *filter.ToDate)
		filterClause += ` AND v.date <= $` + strconv.Itoa(len(args))
	}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastDate, lastCreatedAt)
		filterClause += ` AND (v.date, v.created_at) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, fetchLimit)
	query := `SELECT ` + voucherColumns + `
		FROM vouchers v
		` + filterClause + `
		ORDER BY v.date DESC, v.created_at DESC
		LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query vouchers for business "+businessID, err)
	}
	defer rows.Close()

	modelVouchers := make([]models.Voucher, 0, fetchLimit)
	for rows.Next() {
		m, err := scanVoucherRow(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan voucher row", err)
		}
		modelVouchers = append(modelVouchers, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating voucher rows", err)
	}

	var nextTokenVal *string
	if len(modelVouchers) > limit {
		last := modelVouchers[limit-1]
		token := pagination.EncodeToken(last.Date, last.CreatedAt)
		nextTokenVal = &token
		modelVouchers = modelVouchers[:limit]
	}

	vouchers := make([]domain.Voucher, len(modelVouchers))
	for i, m := range modelVouchers {
		vouchers[i] = mapping.ToDomainVoucher(m)
	}
	return vouchers, nextTokenVal, nil
}

// ListJournalEntriesByAccount retrieves one account's ledger feed, newest
// first, skipping entries of soft-deleted vouchers.
func (r *PgxVoucherRepository) ListJournalEntriesByAccount(ctx context.Context, businessID, accountID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `
		SELECT je.journal_entry_id, je.business_id, je.financial_year_id, je.voucher_id, je.voucher_item_id,
		       je.ledger_account_id, je.cost_center_id, je.date, je.debit_amount, je.credit_amount,
		       je.created_at, je.created_by, je.last_updated_at, je.last_updated_by
		FROM journal_entries je
		JOIN vouchers v ON v.voucher_id = je.voucher_id
		WHERE je.ledger_account_id = $1 AND je.business_id = $2 AND v.is_deleted = FALSE
	`
	orderByClause := `ORDER BY je.date DESC, je.created_at DESC`
	args := []any{accountID, businessID}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastDate, lastCreatedAt)
		baseQuery += ` AND (je.date, je.created_at) < ($3, $4)`
	}

	args = append(args, fetchLimit)
	query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query journal entries for account "+accountID, err)
	}
	defer rows.Close()

	modelEntries, err := collectJournalEntryRows(rows)
	if err != nil {
		return nil, nil, err
	}

	var nextTokenVal *string
	if len(modelEntries) > limit {
		last := modelEntries[limit-1]
		token := pagination.EncodeToken(last.Date, last.CreatedAt)
		nextTokenVal = &token
		modelEntries = modelEntries[:limit]
	}

	return mapping.ToDomainJournalEntrySlice(modelEntries), nextTokenVal, nil
}

func (r *PgxVoucherRepository) FindJournalEntriesByVoucherID(ctx context.Context, voucherID string) ([]domain.JournalEntry, error) {
	query := `
		SELECT je.journal_entry_id, je.business_id, je.financial_year_id, je.voucher_id, je.voucher_item_id,
		       je.ledger_account_id, je.cost_center_id, je.date, je.debit_amount, je.credit_amount,
		       je.created_at, je.created_by, je.last_updated_at, je.last_updated_by
		FROM journal_entries je
		WHERE je.voucher_id = $1
		ORDER BY je.created_at;
	`
	rows, err := r.Pool.Query(ctx, query, voucherID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal entries for voucher "+voucherID, err)
	}
	defer rows.Close()

	modelEntries, err := collectJournalEntryRows(rows)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainJournalEntrySlice(modelEntries), nil
}

func collectJournalEntryRows(rows pgx.Rows) ([]models.JournalEntry, error) {
	entries := []models.JournalEntry{}
	for rows.Next() {
		var e models.JournalEntry
		err := rows.Scan(
			&e.JournalEntryID,
			&e.BusinessID,
			&e.FinancialYearID,
			&e.VoucherID,
			&e.VoucherItemID,
			&e.LedgerAccountID,
			&e.CostCenterID,
			&e.Date,
			&e.DebitAmount,
			&e.CreditAmount,
			&e.CreatedAt,
			&e.CreatedBy,
			&e.LastUpdatedAt,
			&e.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal entry row", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal entry rows", err)
	}
	return entries, nil
}
