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

type PgxPartyRepository struct {
	BaseRepository
	accountWriter portsrepo.LedgerAccountWriter
}

// newPgxPartyRepository creates a new repository for party data. The ledger
// account writer is used to create the party's control account in the same
// transaction as the party row.
func newPgxPartyRepository(pool *pgxpool.Pool, accountWriter portsrepo.LedgerAccountWriter) portsrepo.PartyRepositoryFacade {
	return &PgxPartyRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountWriter:  accountWriter,
	}
}

// Ensure PgxPartyRepository implements portsrepo.PartyRepositoryFacade
var _ portsrepo.PartyRepositoryFacade = (*PgxPartyRepository)(nil)

var fullPartySelectQuery = `
SELECT
	p.party_id, p.business_id, p.ledger_account_id, p.name, p.type,
	p.phone, p.email, p.address, p.tax_id,
	p.credit_limit, p.credit_period, p.is_active,
	p.created_at, p.created_by, p.last_updated_at, p.last_updated_by
FROM parties p
`

func (r *PgxPartyRepository) getParties(ctx context.Context, filterQuery string, args ...any) ([]domain.Party, error) {
	query := fullPartySelectQuery + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query parties", err)
	}
	defer rows.Close()

	modelParties, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Party])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Party{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect party rows", err)
	}
	return mapping.ToDomainPartySlice(modelParties), nil
}

func (r *PgxPartyRepository) FindPartyByID(ctx context.Context, partyID string) (*domain.Party, error) {
	parties, err := r.getParties(ctx, `WHERE p.party_id = $1`, partyID)
	if err != nil {
		return nil, err
	}
	if len(parties) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &parties[0], nil
}

func (r *PgxPartyRepository) ListParties(ctx context.Context, businessID string, partyType *domain.PartyType, activeOnly bool) ([]domain.Party, error) {
	filter := `WHERE p.business_id = $1`
	args := []any{businessID}
	if partyType != nil {
		args = append(args, string(*partyType))
		filter += ` AND p.type = $2`
	}
	if activeOnly {
		filter += ` AND p.is_active = TRUE`
	}
	filter += ` ORDER BY p.name`
	return r.getParties(ctx, filter, args...)
}

// OutstandingBalance folds the control account's opening balance and the
// signed sum of its journal entries. Entries of soft-deleted vouchers are
// excluded. Debit balances are positive.
func (r *PgxPartyRepository) OutstandingBalance(ctx context.Context, partyID string) (decimal.Decimal, error) {
	query := `
		SELECT
			CASE WHEN a.opening_balance_type = 'DEBIT' THEN a.opening_balance ELSE -a.opening_balance END
			+ COALESCE((
				SELECT SUM(je.debit_amount - je.credit_amount)
				FROM journal_entries je
				JOIN vouchers v ON v.voucher_id = je.voucher_id
				WHERE je.ledger_account_id = a.ledger_account_id AND v.is_deleted = FALSE
			), 0) AS balance
		FROM parties p
		JOIN ledger_accounts a ON a.ledger_account_id = p.ledger_account_id
		WHERE p.party_id = $1;
	`
	var balance decimal.Decimal
	err := r.Pool.QueryRow(ctx, query, partyID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, apperrors.ErrNotFound
		}
		return decimal.Zero, apperrors.NewAppError(500, "failed to compute outstanding balance for party "+partyID, err)
	}
	return balance, nil
}

func (r *PgxPartyRepository) SavePartyWithAccount(ctx context.Context, party domain.Party, account domain.LedgerAccount) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if err := r.accountWriter.SaveLedgerAccountInTx(ctx, tx, account); err != nil {
		return err
	}

	m := mapping.ToModelParty(party)
	query := `
		INSERT INTO parties (
			party_id, business_id, ledger_account_id, name, type,
			phone, email, address, tax_id,
			credit_limit, credit_period, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err = tx.Exec(ctx, query,
		m.PartyID,
		m.BusinessID,
		m.LedgerAccountID,
		m.Name,
		m.Type,
		m.Phone,
		m.Email,
		m.Address,
		m.TaxID,
		m.CreditLimit,
		m.CreditPeriod,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewDuplicateError("party " + m.Name + " already exists for this business")
		}
		return apperrors.NewAppError(500, "failed to save party "+m.PartyID, err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxPartyRepository) UpdateParty(ctx context.Context, party domain.Party) error {
	m := mapping.ToModelParty(party)
	query := `
		UPDATE parties
		SET name = $2, type = $3, phone = $4, email = $5, address = $6, tax_id = $7,
		    credit_limit = $8, credit_period = $9, is_active = $10,
		    last_updated_at = $11, last_updated_by = $12
		WHERE party_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.PartyID,
		m.Name,
		m.Type,
		m.Phone,
		m.Email,
		m.Address,
		m.TaxID,
		m.CreditLimit,
		m.CreditPeriod,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewDuplicateError("party " + m.Name + " already exists for this business")
		}
		return apperrors.NewAppError(500, "failed to update party "+m.PartyID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateParty flags the party and its control account inactive in one
// transaction.
func (r *PgxPartyRepository) DeactivateParty(ctx context.Context, partyID string, userID string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	tag, err := tx.Exec(ctx, `
		UPDATE parties
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE party_id = $1;
	`, partyID, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate party "+partyID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	_, err = tx.Exec(ctx, `
		UPDATE ledger_accounts
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE ledger_account_id = (SELECT ledger_account_id FROM parties WHERE party_id = $1);
	`, partyID, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate control account of party "+partyID, err)
	}

	return r.Commit(ctx, tx)
}
