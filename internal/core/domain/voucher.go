package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Voucher is the root record of one balanced double-entry transaction.
// It owns an ordered set of VoucherItem lines; the sum of debit amounts
// across those lines always equals the sum of credit amounts.
type Voucher struct {
	VoucherID       string          `json:"voucherID"` // Primary Key (UUID)
	BusinessID      string          `json:"businessID"`
	VoucherTypeID   string          `json:"voucherTypeID"`
	FinancialYearID string          `json:"financialYearID"`
	VoucherNumber   string          `json:"voucherNumber"` // Unique per business+type+year
	Sequence        int64           `json:"sequence"`      // Numeric part behind VoucherNumber
	Date            time.Time       `json:"date"`
	PartyID         *string         `json:"partyID"` // Nullable
	Narration       string          `json:"narration"`
	TotalAmount     decimal.Decimal `json:"totalAmount"` // Sum of one side (debit == credit)
	IsPosted        bool            `json:"isPosted"`
	IsDeleted       bool            `json:"isDeleted"` // Soft delete flag
	AuditFields

	Items []VoucherItem `json:"items,omitempty"` // Loaded on demand
}

// VoucherItem is one line of a voucher. Exactly one of DebitAmount and
// CreditAmount is positive; the other is zero.
type VoucherItem struct {
	VoucherItemID   string          `json:"voucherItemID"` // Primary Key (UUID)
	VoucherID       string          `json:"voucherID"`
	LedgerAccountID string          `json:"ledgerAccountID"`
	CostCenterID    *string         `json:"costCenterID"` // Optional reporting tag
	DebitAmount     decimal.Decimal `json:"debitAmount"`
	CreditAmount    decimal.Decimal `json:"creditAmount"`
	Narration       string          `json:"narration"`
	Sequence        int             `json:"sequence"`
	AuditFields
}

// OneSided reports whether exactly one of the two amounts is positive and the
// other is zero, the required shape for every voucher line.
func (i VoucherItem) OneSided() bool {
	debitSet := i.DebitAmount.IsPositive() && i.CreditAmount.IsZero()
	creditSet := i.CreditAmount.IsPositive() && i.DebitAmount.IsZero()
	return debitSet || creditSet
}

// SignedAmount returns debit minus credit for the line.
func (i VoucherItem) SignedAmount() decimal.Decimal {
	return i.DebitAmount.Sub(i.CreditAmount)
}

// SumSides returns the total debit and total credit across items.
func SumSides(items []VoucherItem) (debits, credits decimal.Decimal) {
	debits, credits = decimal.Zero, decimal.Zero
	for _, it := range items {
		debits = debits.Add(it.DebitAmount)
		credits = credits.Add(it.CreditAmount)
	}
	return debits, credits
}

// Balanced reports whether the items satisfy the double-entry invariant:
// the signed amounts net to exactly zero. Comparison is exact decimal
// arithmetic, never float.
func Balanced(items []VoucherItem) bool {
	net := decimal.Zero
	for _, it := range items {
		net = net.Add(it.SignedAmount())
	}
	return net.IsZero()
}
