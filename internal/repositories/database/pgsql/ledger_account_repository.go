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
)

type PgxLedgerAccountRepository struct {
	BaseRepository
}

// newPgxLedgerAccountRepository creates a new repository for ledger account data.
func newPgxLedgerAccountRepository(pool *pgxpool.Pool) portsrepo.LedgerAccountRepositoryFacade {
	return &PgxLedgerAccountRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxLedgerAccountRepository implements portsrepo.LedgerAccountRepositoryFacade
var _ portsrepo.LedgerAccountRepositoryFacade = (*PgxLedgerAccountRepository)(nil)

var fullLedgerAccountSelectQuery = `
SELECT
	a.ledger_account_id, a.business_id, a.account_group_id, a.code, a.name,
	a.is_bank_account, a.is_cash_account, a.opening_balance, a.opening_balance_type,
	a.is_active,
	a.created_at, a.created_by, a.last_updated_at, a.last_updated_by
FROM ledger_accounts a
`

const insertLedgerAccountQuery = `
	INSERT INTO ledger_accounts (
		ledger_account_id, business_id, account_group_id, code, name,
		is_bank_account, is_cash_account, opening_balance, opening_balance_type,
		is_active,
		created_at, created_by, last_updated_at, last_updated_by
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
`

func (r *PgxLedgerAccountRepository) getLedgerAccounts(ctx context.Context, filterQuery string, args ...any) ([]domain.LedgerAccount, error) {
	query := fullLedgerAccountSelectQuery + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query ledger accounts", err)
	}
	defer rows.Close()

	modelAccounts, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.LedgerAccount])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.LedgerAccount{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect ledger account rows", err)
	}
	return mapping.ToDomainLedgerAccountSlice(modelAccounts), nil
}

func (r *PgxLedgerAccountRepository) FindLedgerAccountByID(ctx context.Context, accountID string) (*domain.LedgerAccount, error) {
	accounts, err := r.getLedgerAccounts(ctx, `WHERE a.ledger_account_id = $1`, accountID)
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &accounts[0], nil
}

func (r *PgxLedgerAccountRepository) FindLedgerAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.LedgerAccount, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.LedgerAccount{}, nil
	}
	accounts, err := r.getLedgerAccounts(ctx, `WHERE a.ledger_account_id = ANY($1)`, accountIDs)
	if err != nil {
		return nil, err
	}
	result := make(map[string]domain.LedgerAccount, len(accounts))
	for _, account := range accounts {
		result[account.LedgerAccountID] = account
	}
	return result, nil
}

func (r *PgxLedgerAccountRepository) FindLedgerAccountByCode(ctx context.Context, businessID, code string) (*domain.LedgerAccount, error) {
	accounts, err := r.getLedgerAccounts(ctx, `WHERE a.business_id = $1 AND a.code = $2`, businessID, code)
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &accounts[0], nil
}

func (r *PgxLedgerAccountRepository) ListLedgerAccounts(ctx context.Context, businessID string, activeOnly bool) ([]domain.LedgerAccount, error) {
	filter := `WHERE a.business_id = $1`
	if activeOnly {
		filter += ` AND a.is_active = TRUE`
	}
	filter += ` ORDER BY a.name`
	return r.getLedgerAccounts(ctx, filter, businessID)
}

func (r *PgxLedgerAccountRepository) HasJournalEntries(ctx context.Context, accountID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM journal_entries WHERE ledger_account_id = $1);`
	err := r.Pool.QueryRow(ctx, query, accountID).Scan(&exists)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to check journal entries for account "+accountID, err)
	}
	return exists, nil
}

func (r *PgxLedgerAccountRepository) SaveLedgerAccount(ctx context.Context, account domain.LedgerAccount) error {
	m := mapping.ToModelLedgerAccount(account)
	_, err := r.Pool.Exec(ctx, insertLedgerAccountQuery, ledgerAccountInsertArgs(m)...)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewDuplicateError("account code already in use for this business")
		}
		return apperrors.NewAppError(500, "failed to save ledger account "+m.LedgerAccountID, err)
	}
	return nil
}

func (r *PgxLedgerAccountRepository) SaveLedgerAccountInTx(ctx context.Context, tx pgx.Tx, account domain.LedgerAccount) error {
	m := mapping.ToModelLedgerAccount(account)
	_, err := tx.Exec(ctx, insertLedgerAccountQuery, ledgerAccountInsertArgs(m)...)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewDuplicateError("account code already in use for this business")
		}
		return apperrors.NewAppError(500, "failed to save ledger account "+m.LedgerAccountID, err)
	}
	return nil
}

func ledgerAccountInsertArgs(m models.LedgerAccount) []any {
	return []any{
		m.LedgerAccountID,
		m.BusinessID,
		m.AccountGroupID,
		m.Code,
		m.Name,
		m.IsBankAccount,
		m.IsCashAccount,
		m.OpeningBalance,
		m.OpeningBalanceType,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	}
}

func (r *PgxLedgerAccountRepository) UpdateLedgerAccount(ctx context.Context, account domain.LedgerAccount) error {
	m := mapping.ToModelLedgerAccount(account)
	query := `
		UPDATE ledger_accounts
		SET account_group_id = $2, code = $3, name = $4,
		    is_bank_account = $5, is_cash_account = $6,
		    opening_balance = $7, opening_balance_type = $8, is_active = $9,
		    last_updated_at = $10, last_updated_by = $11
		WHERE ledger_account_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.LedgerAccountID,
		m.AccountGroupID,
		m.Code,
		m.Name,
		m.IsBankAccount,
		m.IsCashAccount,
		m.OpeningBalance,
		m.OpeningBalanceType,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewDuplicateError("account code already in use for this business")
		}
		return apperrors.NewAppError(500, "failed to update ledger account "+m.LedgerAccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxLedgerAccountRepository) DeactivateLedgerAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	query := `
		UPDATE ledger_accounts
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE ledger_account_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, accountID, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate ledger account "+accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
