package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountReconciliation maps to the account_reconciliations table.
type AccountReconciliation struct {
	ReconciliationID  string          `json:"reconciliationID"`
	BusinessID        string          `json:"businessID"`
	LedgerAccountID   string          `json:"ledgerAccountID"`
	StatementDate     time.Time       `json:"statementDate"`
	StatementBalance  decimal.Decimal `json:"statementBalance"`
	AccountBalance    decimal.Decimal `json:"accountBalance"`
	ReconciledBalance decimal.Decimal `json:"reconciledBalance"`
	Notes             string          `json:"notes"`
	IsCompleted       bool            `json:"isCompleted"`
	CompletedAt       *time.Time      `json:"completedAt"`
	CompletedBy       *string         `json:"completedBy"`
	AuditFields
}

// ReconciliationItem maps to the reconciliation_items join table.
type ReconciliationItem struct {
	ReconciliationID string    `json:"reconciliationID"`
	JournalEntryID   string    `json:"journalEntryID"`
	LinkedAt         time.Time `json:"linkedAt"`
	LinkedBy         string    `json:"linkedBy"`
}
