package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReconciliationEpsilon is the smallest currency unit; a reconciliation may
// only complete when the absolute difference is below it.
var ReconciliationEpsilon = decimal.NewFromFloat(0.01)

// AccountReconciliation matches a subset of journal entries for one bank or
// cash ledger account against an external statement balance.
//
// State machine: OPEN -> COMPLETED (Complete) -> OPEN (Reopen).
type AccountReconciliation struct {
	ReconciliationID string          `json:"reconciliationID"` // Primary Key (UUID)
	BusinessID       string          `json:"businessID"`
	LedgerAccountID  string          `json:"ledgerAccountID"`
	StatementDate    time.Time       `json:"statementDate"`
	StatementBalance decimal.Decimal `json:"statementBalance"`
	AccountBalance   decimal.Decimal `json:"accountBalance"` // Book balance snapshot at creation
	// ReconciledBalance is derived on read as the signed sum over linked
	// journal entries; the stored column is kept in step inside the same
	// transaction but is never the source of truth.
	ReconciledBalance decimal.Decimal `json:"reconciledBalance"`
	Notes             string          `json:"notes"`
	IsCompleted       bool            `json:"isCompleted"`
	CompletedAt       *time.Time      `json:"completedAt"`
	CompletedBy       *string         `json:"completedBy"`
	AuditFields
}

// Difference returns statement balance minus reconciled balance. The
// reconciliation converges when this reaches zero.
func (r AccountReconciliation) Difference() decimal.Decimal {
	return r.StatementBalance.Sub(r.ReconciledBalance)
}

// InBalance reports whether the difference is within the currency epsilon.
func (r AccountReconciliation) InBalance() bool {
	return r.Difference().Abs().LessThan(ReconciliationEpsilon)
}

// ReconciliationItem links one journal entry into a reconciliation. A journal
// entry is linked to at most one reconciliation of its account at a time.
type ReconciliationItem struct {
	ReconciliationID string    `json:"reconciliationID"`
	JournalEntryID   string    `json:"journalEntryID"`
	LinkedAt         time.Time `json:"linkedAt"`
	LinkedBy         string    `json:"linkedBy"`
}
