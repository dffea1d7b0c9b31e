package domain

import "github.com/shopspring/decimal"

// BalanceType indicates on which side an opening balance sits.
type BalanceType string

const (
	BalanceDebit  BalanceType = "DEBIT"
	BalanceCredit BalanceType = "CREDIT"
)

// LedgerAccount is a leaf posting account within an AccountGroup.
// Once referenced by a journal entry it is only ever deactivated, never deleted.
type LedgerAccount struct {
	LedgerAccountID    string          `json:"ledgerAccountID"` // Primary Key (UUID)
	BusinessID         string          `json:"businessID"`
	AccountGroupID     string          `json:"accountGroupID"`
	Code               *string         `json:"code"` // Unique per business when set
	Name               string          `json:"name"`
	IsBankAccount      bool            `json:"isBankAccount"`
	IsCashAccount      bool            `json:"isCashAccount"`
	OpeningBalance     decimal.Decimal `json:"openingBalance"` // Magnitude, >= 0
	OpeningBalanceType BalanceType     `json:"openingBalanceType"`
	IsActive           bool            `json:"isActive"`
	AuditFields
}

// SignedOpeningBalance returns the opening balance with debit positive, credit negative.
func (a LedgerAccount) SignedOpeningBalance() decimal.Decimal {
	if a.OpeningBalanceType == BalanceCredit {
		return a.OpeningBalance.Neg()
	}
	return a.OpeningBalance
}

// Reconcilable reports whether the account may be the subject of a bank reconciliation.
func (a LedgerAccount) Reconcilable() bool {
	return a.IsBankAccount || a.IsCashAccount
}
