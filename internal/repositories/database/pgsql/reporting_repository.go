package pgsql

import (
	"context"
	"time"

	"github.com/bizledger/bizledger_app/internal/apperrors"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxReportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates a new repository for reporting aggregations.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxReportingRepository implements portsrepo.ReportingRepository
var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// TrialBalance aggregates every account of the business into its net balance
// up to the date, shown on the debit or the credit side. Opening balances are
// folded in and entries of soft-deleted vouchers are excluded.
func (r *PgxReportingRepository) TrialBalance(ctx context.Context, businessID string, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT a.ledger_account_id, a.name, a.code, g.nature,
		       CASE WHEN net.balance > 0 THEN net.balance ELSE 0 END AS debit,
		       CASE WHEN net.balance < 0 THEN -net.balance ELSE 0 END AS credit
		FROM ledger_accounts a
		JOIN account_groups g ON g.account_group_id = a.account_group_id
		CROSS JOIN LATERAL (
			SELECT CASE WHEN a.opening_balance_type = 'DEBIT' THEN a.opening_balance ELSE -a.opening_balance END
			       + COALESCE((
					SELECT SUM(je.debit_amount - je.credit_amount)
					FROM journal_entries je
					JOIN vouchers v ON v.voucher_id = je.voucher_id
					WHERE je.ledger_account_id = a.ledger_account_id AND je.date <= $2 AND v.is_deleted = FALSE
			       ), 0) AS balance
		) net
		WHERE a.business_id = $1
		ORDER BY g.sequence, a.name;
	`
	rows, err := r.Pool.Query(ctx, query, businessID, asOf)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query trial balance for business "+businessID, err)
	}
	defer rows.Close()

	results := []domain.TrialBalanceRow{}
	for rows.Next() {
		var row domain.TrialBalanceRow
		err := rows.Scan(
			&row.LedgerAccountID,
			&row.AccountName,
			&row.AccountCode,
			&row.Nature,
			&row.Debit,
			&row.Credit,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan trial balance row", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating trial balance rows", err)
	}
	return results, nil
}

// AccountNetAmounts aggregates the movement of every account under groups of
// the given nature within [from, to]. Amounts come back positive on the
// account's normal side: debit minus credit for assets and expenses, credit
// minus debit otherwise. Opening balances count only for lifetime windows
// (zero from date), which is how the balance sheet calls this.
func (r *PgxReportingRepository) AccountNetAmounts(ctx context.Context, businessID string, nature domain.AccountNature, affectsGrossProfit *bool, from, to time.Time) ([]domain.AccountAmount, error) {
	sign := `(je.credit_amount - je.debit_amount)`
	opening := `CASE WHEN a.opening_balance_type = 'CREDIT' THEN a.opening_balance ELSE -a.opening_balance END`
	if nature.DebitNormal() {
		sign = `(je.debit_amount - je.credit_amount)`
		opening = `CASE WHEN a.opening_balance_type = 'DEBIT' THEN a.opening_balance ELSE -a.opening_balance END`
	}
	if !from.IsZero() {
		opening = `0`
	}

	filterClause := `WHERE a.business_id = $1 AND g.nature = $2`
	args := []any{businessID, string(nature), from, to}
	if affectsGrossProfit != nil {
		filterClause += ` AND g.affects_gross_profit = $5`
		args = append(args, *affectsGrossProfit)
	}

	query := `
		SELECT a.ledger_account_id, a.name,
		       ` + opening + `
		       + COALESCE((
				SELECT SUM` + sign + `
				FROM journal_entries je
				JOIN vouchers v ON v.voucher_id = je.voucher_id
				WHERE je.ledger_account_id = a.ledger_account_id
				  AND je.date >= $3 AND je.date <= $4
				  AND v.is_deleted = FALSE
		       ), 0) AS net_amount
		FROM ledger_accounts a
		JOIN account_groups g ON g.account_group_id = a.account_group_id
		` + filterClause + `
		ORDER BY a.name;
	`
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query account net amounts for business "+businessID, err)
	}
	defer rows.Close()

	results := []domain.AccountAmount{}
	for rows.Next() {
		var row domain.AccountAmount
		if err := rows.Scan(&row.LedgerAccountID, &row.Name, &row.NetAmount); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account net amount row", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account net amount rows", err)
	}
	return results, nil
}

// CostCenterTotals aggregates income and expense movement per cost center
// within [from, to]. Entries without a cost center tag are left out.
func (r *PgxReportingRepository) CostCenterTotals(ctx context.Context, businessID string, from, to time.Time) ([]domain.CostCenterPAndLRow, error) {
	query := `
		SELECT cc.cost_center_id, cc.name,
		       COALESCE(SUM(CASE WHEN g.nature = 'INCOME' THEN je.credit_amount - je.debit_amount ELSE 0 END), 0) AS income,
		       COALESCE(SUM(CASE WHEN g.nature = 'EXPENSE' THEN je.debit_amount - je.credit_amount ELSE 0 END), 0) AS expenses
		FROM cost_centers cc
		LEFT JOIN journal_entries je ON je.cost_center_id = cc.cost_center_id
			AND je.date >= $2 AND je.date <= $3
		LEFT JOIN vouchers v ON v.voucher_id = je.voucher_id AND v.is_deleted = FALSE
		LEFT JOIN ledger_accounts a ON a.ledger_account_id = je.ledger_account_id
		LEFT JOIN account_groups g ON g.account_group_id = a.account_group_id
		WHERE cc.business_id = $1 AND (je.journal_entry_id IS NULL OR v.voucher_id IS NOT NULL)
		GROUP BY cc.cost_center_id, cc.name
		ORDER BY cc.name;
	`
	rows, err := r.Pool.Query(ctx, query, businessID, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query cost center totals for business "+businessID, err)
	}
	defer rows.Close()

	results := []domain.CostCenterPAndLRow{}
	for rows.Next() {
		var row domain.CostCenterPAndLRow
		if err := rows.Scan(&row.CostCenterID, &row.Name, &row.Income, &row.Expenses); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan cost center row", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating cost center rows", err)
	}
	return results, nil
}
