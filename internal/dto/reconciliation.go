package dto

import (
	"time"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateReconciliationRequest defines the payload for starting a reconciliation.
type CreateReconciliationRequest struct {
	LedgerAccountID  string          `json:"ledgerAccountID" binding:"required"`
	StatementDate    time.Time       `json:"statementDate" binding:"required"`
	StatementBalance decimal.Decimal `json:"statementBalance"`
	Notes            string          `json:"notes"`
}

// LinkReconciliationEntriesRequest links journal entries to a reconciliation.
type LinkReconciliationEntriesRequest struct {
	JournalEntryIDs []string `json:"journalEntryIDs" binding:"required,min=1"`
}

// CompleteReconciliationRequest completes a reconciliation. AllowDifference
// overrides the balance check for sessions finished with a known difference.
type CompleteReconciliationRequest struct {
	AllowDifference bool `json:"allowDifference"`
}

// ReconciliationResponse defines the data returned for a reconciliation.
type ReconciliationResponse struct {
	ReconciliationID  string          `json:"reconciliationID"`
	LedgerAccountID   string          `json:"ledgerAccountID"`
	StatementDate     time.Time       `json:"statementDate"`
	StatementBalance  decimal.Decimal `json:"statementBalance"`
	AccountBalance    decimal.Decimal `json:"accountBalance"`
	ReconciledBalance decimal.Decimal `json:"reconciledBalance"`
	Difference        decimal.Decimal `json:"difference"`
	Notes             string          `json:"notes"`
	IsCompleted       bool            `json:"isCompleted"`
	CompletedAt       *time.Time      `json:"completedAt"`
	CompletedBy       *string         `json:"completedBy"`
}

// ToReconciliationResponse converts a domain reconciliation to its response DTO.
func ToReconciliationResponse(r *domain.AccountReconciliation) ReconciliationResponse {
	return ReconciliationResponse{
		ReconciliationID:  r.ReconciliationID,
		LedgerAccountID:   r.LedgerAccountID,
		StatementDate:     r.StatementDate,
		StatementBalance:  r.StatementBalance,
		AccountBalance:    r.AccountBalance,
		ReconciledBalance: r.ReconciledBalance,
		Difference:        r.Difference(),
		Notes:             r.Notes,
		IsCompleted:       r.IsCompleted,
		CompletedAt:       r.CompletedAt,
		CompletedBy:       r.CompletedBy,
	}
}

// ListReconciliationsResponse is a list of reconciliations for an account.
type ListReconciliationsResponse struct {
	Reconciliations []ReconciliationResponse `json:"reconciliations"`
}

// UnreconciledEntriesResponse lists journal entries not yet linked to any
// completed reconciliation on the account.
type UnreconciledEntriesResponse struct {
	Entries []JournalEntryResponse `json:"entries"`
}
