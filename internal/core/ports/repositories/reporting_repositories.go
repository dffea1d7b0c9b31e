package repositories

import (
	"context"
	"time"

	"github.com/bizledger/bizledger_app/internal/core/domain"
)

// ReportingRepository defines the read-only aggregations over journal
// entries. No write path exists back into the core.
type ReportingRepository interface {
	// TrialBalance aggregates per-account debit and credit totals, including
	// opening balances, up to the given date.
	TrialBalance(ctx context.Context, businessID string, asOf time.Time) ([]domain.TrialBalanceRow, error)

	// AccountNetAmounts aggregates signed net movement per account for
	// accounts under groups of the given nature within the date range.
	AccountNetAmounts(ctx context.Context, businessID string, nature domain.AccountNature, affectsGrossProfit *bool, from, to time.Time) ([]domain.AccountAmount, error)

	// CostCenterTotals aggregates income and expense per cost center within
	// the date range.
	CostCenterTotals(ctx context.Context, businessID string, from, to time.Time) ([]domain.CostCenterPAndLRow, error)
}
