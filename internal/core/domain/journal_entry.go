package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry mirrors one VoucherItem into the immutable journal feed,
// denormalized for fast per-account and per-date queries. Entries are created
// and removed only together with their parent voucher item set, inside the
// same database transaction.
type JournalEntry struct {
	JournalEntryID  string          `json:"journalEntryID"` // Primary Key (UUID)
	BusinessID      string          `json:"businessID"`
	FinancialYearID string          `json:"financialYearID"`
	VoucherID       string          `json:"voucherID"`
	VoucherItemID   string          `json:"voucherItemID"`
	LedgerAccountID string          `json:"ledgerAccountID"`
	CostCenterID    *string         `json:"costCenterID"`
	Date            time.Time       `json:"date"`
	DebitAmount     decimal.Decimal `json:"debitAmount"`
	CreditAmount    decimal.Decimal `json:"creditAmount"`
	AuditFields
}

// SignedAmount returns debit minus credit. For a bank or other asset account a
// positive value increases the book balance.
func (e JournalEntry) SignedAmount() decimal.Decimal {
	return e.DebitAmount.Sub(e.CreditAmount)
}
