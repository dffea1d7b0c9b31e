package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// VoucherNature mirrors domain.VoucherNature for storage.
type VoucherNature string

// VoucherType maps to the voucher_types table.
type VoucherType struct {
	VoucherTypeID  string        `json:"voucherTypeID"`
	BusinessID     string        `json:"businessID"`
	Code           string        `json:"code"`
	Name           string        `json:"name"`
	Nature         VoucherNature `json:"nature"`
	Prefix         string        `json:"prefix"`
	AutoNumbering  bool          `json:"autoNumbering"`
	StartingNumber int64         `json:"startingNumber"`
	IsSystem       bool          `json:"isSystem"`
	AuditFields
}

// Voucher maps to the vouchers table.
type Voucher struct {
	VoucherID       string          `json:"voucherID"`
	BusinessID      string          `json:"businessID"`
	VoucherTypeID   string          `json:"voucherTypeID"`
	FinancialYearID string          `json:"financialYearID"`
	VoucherNumber   string          `json:"voucherNumber"`
	Sequence        int64           `json:"sequence"`
	Date            time.Time       `json:"date"`
	PartyID         *string         `json:"partyID"`
	Narration       string          `json:"narration"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	IsPosted        bool            `json:"isPosted"`
	IsDeleted       bool            `json:"isDeleted"`
	AuditFields
}

// VoucherItem maps to the voucher_items table.
type VoucherItem struct {
	VoucherItemID   string          `json:"voucherItemID"`
	VoucherID       string          `json:"voucherID"`
	LedgerAccountID string          `json:"ledgerAccountID"`
	CostCenterID    *string         `json:"costCenterID"`
	DebitAmount     decimal.Decimal `json:"debitAmount"`
	CreditAmount    decimal.Decimal `json:"creditAmount"`
	Narration       string          `json:"narration"`
	Sequence        int             `json:"sequence"`
	AuditFields
}

// JournalEntry maps to the journal_entries table.
type JournalEntry struct {
	JournalEntryID  string          `json:"journalEntryID"`
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

// FinancialYear maps to the financial_years table.
type FinancialYear struct {
	FinancialYearID string    `json:"financialYearID"`
	BusinessID      string    `json:"businessID"`
	Name            string    `json:"name"`
	StartDate       time.Time `json:"startDate"`
	EndDate         time.Time `json:"endDate"`
	IsCurrent       bool      `json:"isCurrent"`
	IsLocked        bool      `json:"isLocked"`
	AuditFields
}
